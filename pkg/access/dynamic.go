package access

import (
	"context"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/session"
)

// DynamicContainer reads windowed statistics. Each populated blob holds the
// statistics of one swap chain.
type DynamicContainer struct {
	Container
	windowMs float64
	offsetMs float64
	query    *session.DynamicQuery
}

// NewDynamic creates an empty container. Element slots passed to Add are
// 1-based indices into slots, with 0 meaning the universal device. When no
// slots are given, Add takes device ids directly.
func NewDynamic(s *session.Session, windowMs, offsetMs float64, nBlobs uint32, slots ...uint32) *DynamicContainer {
	return &DynamicContainer{
		Container: newContainer(s, nBlobs, slots),
		windowMs:  windowMs,
		offsetMs:  offsetMs,
	}
}

// Add declares a statistic to read. It panics if the container is already
// finalized.
func (c *DynamicContainer) Add(metric pm.Metric, stat pm.Stat, slot, index uint32) *Element {
	return c.add(metric, stat, slot, index)
}

// Finalize registers the query. Elements that are not available on their
// device stay in place and read as ErrUnavailable.
func (c *DynamicContainer) Finalize(ctx context.Context) error {
	if c.Finalized() {
		return ErrFinalized
	}
	root, err := c.session.Introspection(ctx)
	if err != nil {
		return err
	}
	q, err := c.session.RegisterDynamicQuery(ctx, c.requests(), c.windowMs, c.offsetMs, c.slots...)
	if err != nil {
		return err
	}
	c.query = q
	c.bind(root, q.Schema(), q.MakeBlobContainer(c.nBlobs))
	return nil
}

// Poll refreshes the blobs and selects the first one.
func (c *DynamicContainer) Poll(ctx context.Context, tracker *session.ProcessTracker) error {
	if !c.Finalized() {
		return ErrNotFinalized
	}
	if c.blobs == nil {
		return ErrNoBlobs
	}
	c.active = 0
	return c.query.Poll(ctx, tracker, c.blobs)
}

// MakeBlobContainer allocates extra blobs compatible with Inject and Swap.
func (c *DynamicContainer) MakeBlobContainer(n uint32) (*blob.Container, error) {
	if !c.Finalized() {
		return nil, ErrNotFinalized
	}
	return c.query.MakeBlobContainer(n), nil
}

func (c *DynamicContainer) Query() *session.DynamicQuery { return c.query }

// Reset frees the query. The container cannot be finalized again.
func (c *DynamicContainer) Reset(ctx context.Context) error {
	if c.query == nil {
		return nil
	}
	c.blobs = nil
	return c.query.Reset(ctx)
}
