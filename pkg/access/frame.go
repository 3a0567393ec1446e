package access

import (
	"context"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/session"
)

// FrameContainer reads per-frame events in batches of up to nBlobs frames.
type FrameContainer struct {
	Container
	query *session.FrameQuery
}

func NewFrame(s *session.Session, nBlobs uint32, slots ...uint32) *FrameContainer {
	return &FrameContainer{Container: newContainer(s, nBlobs, slots)}
}

// Add declares a frame field to read. It panics if the container is
// already finalized.
func (c *FrameContainer) Add(metric pm.Metric, slot, index uint32) *Element {
	return c.add(metric, pm.StatNone, slot, index)
}

func (c *FrameContainer) Finalize(ctx context.Context) error {
	if c.Finalized() {
		return ErrFinalized
	}
	root, err := c.session.Introspection(ctx)
	if err != nil {
		return err
	}
	q, err := c.session.RegisterFrameQuery(ctx, c.requests(), c.slots...)
	if err != nil {
		return err
	}
	c.query = q
	c.bind(root, q.Schema(), q.MakeBlobContainer(c.nBlobs))
	return nil
}

// Consume fetches the next batch of frames and selects the first one.
func (c *FrameContainer) Consume(ctx context.Context, tracker *session.ProcessTracker) error {
	if !c.Finalized() {
		return ErrNotFinalized
	}
	if c.blobs == nil {
		return ErrNoBlobs
	}
	c.active = 0
	return c.query.Consume(ctx, tracker, c.blobs)
}

// ForEachConsume drains queued frames, selecting each one as the active
// blob before calling fn. It returns the number of frames visited.
func (c *FrameContainer) ForEachConsume(ctx context.Context, tracker *session.ProcessTracker, fn func()) (int, error) {
	if !c.Finalized() {
		return 0, ErrNotFinalized
	}
	if c.blobs == nil {
		return 0, ErrNoBlobs
	}
	return c.query.ForEachConsume(ctx, tracker, c.blobs, func(i int, _ blob.Buffer) {
		c.active = uint32(i)
		fn()
	})
}

func (c *FrameContainer) MakeBlobContainer(n uint32) (*blob.Container, error) {
	if !c.Finalized() {
		return nil, ErrNotFinalized
	}
	return c.query.MakeBlobContainer(n), nil
}

func (c *FrameContainer) Query() *session.FrameQuery { return c.query }

func (c *FrameContainer) Reset(ctx context.Context) error {
	if c.query == nil {
		return nil
	}
	c.blobs = nil
	return c.query.Reset(ctx)
}
