package blob

import (
	"errors"
	"fmt"
	"iter"

	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// ErrNotPopulated is returned when a blob outside the populated prefix is
// read as data.
var ErrNotPopulated = errors.New("blob was not populated by the last fill")

// Container owns capacity blobs of blobSize bytes in a single allocation,
// along with the number of blobs filled by the most recent poll or consume.
//
// A Container is not synchronized. The goroutine running Fill is its only
// writer; readers may look at it only between fills.
type Container struct {
	handle    pm.QueryHandle
	blobSize  uint64
	capacity  uint32
	populated uint32
	data      []byte
}

// NewContainer allocates a container for blobs produced by the query
// registered under handle.
func NewContainer(handle pm.QueryHandle, blobSize uint64, capacity uint32) *Container {
	return &Container{
		handle:   handle,
		blobSize: blobSize,
		capacity: capacity,
		data:     make([]byte, blobSize*uint64(capacity)),
	}
}

func (c *Container) Handle() pm.QueryHandle { return c.handle }

func (c *Container) BlobSize() uint64 { return c.blobSize }

// Capacity is the number of blobs the container can hold.
func (c *Container) Capacity() uint32 { return c.capacity }

// TotalSize is BlobSize * Capacity.
func (c *Container) TotalSize() uint64 { return c.blobSize * uint64(c.capacity) }

// Populated returns how many blobs the last fill wrote. It never exceeds
// Capacity.
func (c *Container) Populated() uint32 { return c.populated }

// AllPopulated reports whether the last fill used every blob, which for
// frame consumption means more data may be waiting.
func (c *Container) AllPopulated() bool { return c.populated == c.capacity }

// Blob returns the blob at index i, populated or not.
func (c *Container) Blob(i uint32) (Buffer, error) {
	if i >= c.capacity {
		return Buffer{}, fmt.Errorf("%w: blob index %d, capacity %d", ErrOutOfBounds, i, c.capacity)
	}
	start := uint64(i) * c.blobSize
	return Wrap(c.data[start : start+c.blobSize : start+c.blobSize]), nil
}

// PopulatedBlob is Blob restricted to the populated prefix.
func (c *Container) PopulatedBlob(i uint32) (Buffer, error) {
	if i >= c.populated {
		return Buffer{}, fmt.Errorf("%w: blob index %d, %d populated", ErrNotPopulated, i, c.populated)
	}
	return c.Blob(i)
}

// All iterates the populated blobs only.
func (c *Container) All() iter.Seq2[int, Buffer] {
	return func(yield func(int, Buffer) bool) {
		for i := uint32(0); i < c.populated; i++ {
			b, _ := c.Blob(i)
			if !yield(int(i), b) {
				return
			}
		}
	}
}

// Bytes returns the whole backing allocation.
func (c *Container) Bytes() []byte { return c.data }

// Fill hands the backing bytes and capacity to fn, which writes blobs and
// returns how many it populated. On error the previous populated count is
// cleared; a count above capacity is rejected.
func (c *Container) Fill(fn func(data []byte, capacity uint32) (uint32, error)) error {
	n, err := fn(c.data, c.capacity)
	if err != nil {
		c.populated = 0
		return err
	}
	if n > c.capacity {
		c.populated = 0
		return fmt.Errorf("%w: provider reported %d blobs, capacity %d", ErrOutOfBounds, n, c.capacity)
	}
	c.populated = n
	return nil
}

// CheckHandle reports whether the container was made for handle.
func (c *Container) CheckHandle(handle pm.QueryHandle) bool {
	return c.handle == handle
}

// Clone returns a deep copy, including blob contents.
func (c *Container) Clone() *Container {
	out := *c
	out.data = append([]byte(nil), c.data...)
	return &out
}

// Reset releases the allocation and returns the container to its empty
// state.
func (c *Container) Reset() {
	*c = Container{}
}

// Empty reports whether the container holds no allocation.
func (c *Container) Empty() bool {
	return c.data == nil
}
