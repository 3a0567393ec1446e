// Package query lays out blobs. Given an ordered list of requested
// (metric, stat, device, array index) elements it validates each one
// against introspection, resolves its concrete type and size for the read
// mode, and assigns byte offsets.
//
// Offsets are computed from the running write position: each element is
// preceded by the padding needed to bring that position to the natural
// alignment of its type. Unavailable elements keep their slot in the list
// with the void type and take no bytes. Frame blobs are additionally padded
// at the tail to FrameBlobAlignment so consecutive blobs in a container
// stay aligned.
package query

import (
	"errors"
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// FrameBlobAlignment is the alignment of the total size of a frame blob.
const FrameBlobAlignment = 16

var (
	ErrBadSlot           = errors.New("device slot out of range")
	ErrMetricMode        = errors.New("metric cannot be queried in this mode")
	ErrMultipleGPUDevice = errors.New("multiple GPU devices not allowed in single query")
	ErrMultipleDevices   = errors.New("2 different non-universal devices in same query")
	ErrEmptyQuery        = errors.New("query has no elements")
)

// Mode selects which data type of a metric is used.
type Mode int

const (
	// Polled queries read windowed statistics (polled type).
	Polled Mode = iota
	// Frame queries read individual frame events (frame type).
	Frame
)

func (m Mode) String() string {
	switch m {
	case Polled:
		return "polled"
	case Frame:
		return "frame"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Element is one requested field. Device is a slot index when the schema is
// built with slots, otherwise a device id.
type Element struct {
	Metric     pm.Metric
	Stat       pm.Stat
	Device     uint32
	ArrayIndex uint32

	// resolved by Build
	DeviceID  uint32
	Offset    uint64
	Size      uint64
	Padding   uint64
	DataType  pm.DataType
	EnumID    pm.Enum
	Available bool
	Static    bool
}

// Options controls Build.
type Options struct {
	Mode Mode
	// Slots maps 1-based device slots to device ids. When nil, Element.Device
	// is taken as a device id directly.
	Slots []uint32
}

// Schema is a finished blob layout.
type Schema struct {
	Mode        Mode
	Elements    []Element
	BlobSize    uint64
	TailPadding uint64
}

// Build lays out elems in order. All validation errors are reported here;
// a schema that builds successfully never fails later for layout reasons.
func Build(root *intro.Root, elems []Element, opts Options) (*Schema, error) {
	if root == nil {
		return nil, errors.New("query build requires introspection")
	}
	if len(elems) == 0 {
		return nil, ErrEmptyQuery
	}

	s := &Schema{Mode: opts.Mode, Elements: make([]Element, len(elems))}
	var pos uint64
	var gpuDevice, frameDevice uint32

	for i, in := range elems {
		e := Element{
			Metric:     in.Metric,
			Stat:       in.Stat,
			Device:     in.Device,
			ArrayIndex: in.ArrayIndex,
			DataType:   pm.DataTypeVoid,
			EnumID:     pm.EnumNull,
		}

		deviceID, err := resolveDevice(in.Device, opts.Slots)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		e.DeviceID = deviceID

		metric, err := root.FindMetric(in.Metric)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		e.Static = metric.Type() == pm.MetricTypeStatic
		if err := checkMode(metric, opts.Mode); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		if deviceID != pm.UniversalDevice {
			dev, err := root.FindDevice(deviceID)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			switch opts.Mode {
			case Polled:
				if dev.Type() == pm.DeviceTypeGraphicsAdapter {
					if gpuDevice != 0 && gpuDevice != deviceID {
						return nil, fmt.Errorf("element %d: %w", i, ErrMultipleGPUDevice)
					}
					gpuDevice = deviceID
				}
			case Frame:
				if frameDevice != 0 && frameDevice != deviceID {
					return nil, fmt.Errorf("element %d: %w", i, ErrMultipleDevices)
				}
				frameDevice = deviceID
			}
		}

		info := metric.DataTypeInfo()
		dt := info.PolledType
		if opts.Mode == Frame {
			dt = info.FrameType
		}
		if !dt.Valid() {
			return nil, fmt.Errorf("element %d: metric %s has invalid %s type %d", i, in.Metric, opts.Mode, int32(dt))
		}
		if dt == pm.DataTypeEnum {
			if _, err := root.FindEnum(info.EnumID); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}

		if metric.IsAvailable(deviceID, in.ArrayIndex) && dt != pm.DataTypeVoid {
			e.Available = true
			e.DataType = dt
			if dt == pm.DataTypeEnum {
				e.EnumID = info.EnumID
			}
			e.Size = dt.Size()
			e.Padding = blob.Padding(pos, dt.Alignment())
		}
		e.Offset = pos + e.Padding
		pos = e.Offset + e.Size
		s.Elements[i] = e
	}

	s.BlobSize = pos
	if opts.Mode == Frame {
		s.TailPadding = blob.Padding(pos, FrameBlobAlignment)
		s.BlobSize += s.TailPadding
	}
	return s, nil
}

func resolveDevice(device uint32, slots []uint32) (uint32, error) {
	if slots == nil || device == 0 {
		return device, nil
	}
	if int(device) > len(slots) {
		return 0, fmt.Errorf("%w: slot %d, %d slots defined", ErrBadSlot, device, len(slots))
	}
	return slots[device-1], nil
}

func checkMode(metric intro.Metric, mode Mode) error {
	t := metric.Type()
	switch mode {
	case Polled:
		if t.IsDynamic() || t == pm.MetricTypeStatic {
			return nil
		}
	case Frame:
		if t.IsFrameEvent() || t == pm.MetricTypeStatic {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is %s, query is %s", ErrMetricMode, metric.ID(), t, mode)
}

// Descriptors returns the provider-facing element descriptors in order,
// with device ids resolved and offsets filled in.
func (s *Schema) Descriptors() []pm.QueryElement {
	out := make([]pm.QueryElement, len(s.Elements))
	for i, e := range s.Elements {
		out[i] = pm.QueryElement{
			Metric:     e.Metric,
			Stat:       e.Stat,
			DeviceID:   e.DeviceID,
			ArrayIndex: e.ArrayIndex,
			DataOffset: e.Offset,
			DataSize:   e.Size,
		}
	}
	return out
}

// Available returns the elements that will carry data.
func (s *Schema) Available() []Element {
	out := make([]Element, 0, len(s.Elements))
	for _, e := range s.Elements {
		if e.Available {
			out = append(out, e)
		}
	}
	return out
}

// MustBuild is like Build but panics on error. It is meant for element
// lists fixed at compile time, where a failure is a programming error.
func MustBuild(root *intro.Root, elems []Element, opts Options) *Schema {
	s, err := Build(root, elems, opts)
	if err != nil {
		panic(fmt.Sprintf("query: %v", err))
	}
	return s
}
