// Package access builds typed views over query blobs. Callers add elements
// to a DynamicContainer or FrameContainer, finalize it once to register the
// query, and then read each Element of the active blob with As, Lookup or
// MustAs after every poll or consume.
package access

import (
	"errors"
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
	"github.com/xnaught/PresentMon-sub004/pkg/session"
)

var (
	ErrUnavailable    = errors.New("element is not available")
	ErrNotFinalized   = errors.New("container has not been finalized")
	ErrFinalized      = errors.New("container is already finalized")
	ErrNoBlobs        = errors.New("container holds no blobs")
	ErrHandleMismatch = errors.New("blob container belongs to a different query")
)

// Container holds the elements, device slots and blobs shared by the
// dynamic and frame containers.
type Container struct {
	session  *session.Session
	slots    []uint32
	elements []*Element
	nBlobs   uint32

	root   *intro.Root
	handle pm.QueryHandle
	blobs  *blob.Container
	active uint32
}

func newContainer(s *session.Session, nBlobs uint32, slots []uint32) Container {
	if nBlobs == 0 {
		nBlobs = 1
	}
	return Container{session: s, slots: slots, nBlobs: nBlobs}
}

// Finalized reports whether the query has been registered.
func (c *Container) Finalized() bool { return c.root != nil }

// Slots returns the device id bound to each 1-based slot.
func (c *Container) Slots() []uint32 { return append([]uint32(nil), c.slots...) }

func (c *Container) Elements() []*Element { return append([]*Element(nil), c.elements...) }

func (c *Container) add(metric pm.Metric, stat pm.Stat, slot, index uint32) *Element {
	if c.Finalized() {
		panic(fmt.Sprintf("access: %s added after Finalize", metric))
	}
	el := &Element{owner: c, metric: metric, stat: stat, slot: slot, index: index}
	c.elements = append(c.elements, el)
	return el
}

func (c *Container) requests() []query.Element {
	out := make([]query.Element, len(c.elements))
	for i, el := range c.elements {
		out[i] = query.Element{Metric: el.metric, Stat: el.stat, Device: el.slot, ArrayIndex: el.index}
	}
	return out
}

// bind copies the resolved layout into the elements.
func (c *Container) bind(root *intro.Root, schema *query.Schema, blobs *blob.Container) {
	for i, el := range c.elements {
		el.resolved = schema.Elements[i]
	}
	c.root = root
	c.handle = blobs.Handle()
	c.blobs = blobs
	c.active = 0
}

// Populated returns how many blobs the last poll or consume filled.
func (c *Container) Populated() uint32 {
	if c.blobs == nil {
		return 0
	}
	return c.blobs.Populated()
}

// ActiveBlobIndex is the blob elements currently read from.
func (c *Container) ActiveBlobIndex() uint32 { return c.active }

// SetActiveBlobIndex selects the blob elements read from.
func (c *Container) SetActiveBlobIndex(i uint32) error {
	if c.blobs == nil {
		return ErrNoBlobs
	}
	if i >= c.blobs.Capacity() {
		return fmt.Errorf("%w: blob index %d, capacity %d", blob.ErrOutOfBounds, i, c.blobs.Capacity())
	}
	c.active = i
	return nil
}

// ActiveBlob returns the blob elements currently read from. It fails with
// blob.ErrNotPopulated when the last poll or consume left that blob empty.
func (c *Container) ActiveBlob() (blob.Buffer, error) {
	if c.blobs == nil || c.blobs.Empty() {
		return blob.Buffer{}, ErrNoBlobs
	}
	return c.blobs.PopulatedBlob(c.active)
}

// Peek returns the blob container without giving up ownership.
func (c *Container) Peek() *blob.Container { return c.blobs }

// Extract hands the blob container to the caller and leaves this container
// without blobs until Inject.
func (c *Container) Extract() *blob.Container {
	b := c.blobs
	c.blobs = nil
	c.active = 0
	return b
}

// Inject installs a blob container made for the same query.
func (c *Container) Inject(b *blob.Container) error {
	if !c.Finalized() {
		return ErrNotFinalized
	}
	if !b.CheckHandle(c.handle) {
		return ErrHandleMismatch
	}
	c.blobs = b
	c.active = 0
	return nil
}

// Swap exchanges the contents of this container's blobs with b.
func (c *Container) Swap(b *blob.Container) error {
	if c.blobs == nil {
		return ErrNoBlobs
	}
	if !b.CheckHandle(c.handle) {
		return ErrHandleMismatch
	}
	*c.blobs, *b = *b, *c.blobs
	c.active = 0
	return nil
}
