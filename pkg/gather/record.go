package gather

import (
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// FrameRecord is one encoded frame event laid out by a Layout.
type FrameRecord struct {
	layout *Layout
	buf    blob.Buffer
}

func NewFrameRecord(layout *Layout) *FrameRecord {
	return &FrameRecord{layout: layout, buf: blob.NewBuffer(int(layout.Size()))}
}

// Set stores v as element index of metric. The value's type must match the
// layout's type for the field.
func (r *FrameRecord) Set(metric pm.Metric, index uint32, v bridge.Value) error {
	off, dt, ok := r.layout.Lookup(metric, index)
	if !ok {
		return fmt.Errorf("%w: %s[%d]", ErrUnknownField, metric, index)
	}
	if dt != v.Type {
		return fmt.Errorf("%w: %s is %s, value is %s", ErrFieldMismatch, metric, dt, v.Type)
	}
	return bridge.Encode(r.buf, off, v)
}

// Get decodes element index of metric.
func (r *FrameRecord) Get(metric pm.Metric, index uint32, enumID pm.Enum) (bridge.Value, error) {
	off, dt, ok := r.layout.Lookup(metric, index)
	if !ok {
		return bridge.Value{}, fmt.Errorf("%w: %s[%d]", ErrUnknownField, metric, index)
	}
	return bridge.Decode(r.buf, off, dt, enumID)
}

func (r *FrameRecord) Layout() *Layout { return r.layout }

// Bytes returns the encoded record. The slice aliases the record.
func (r *FrameRecord) Bytes() []byte { return r.buf.Bytes() }

// Clone returns an independent copy.
func (r *FrameRecord) Clone() *FrameRecord {
	b := make([]byte, r.buf.Len())
	copy(b, r.buf.Bytes())
	return &FrameRecord{layout: r.layout, buf: blob.Wrap(b)}
}
