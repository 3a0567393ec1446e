// Package gather compiles frame queries into copy programs. A Layout
// describes where each metric lives in a live frame record; Compile turns a
// frame schema into one CopyCommand per available element, and
// Program.Gather replays those commands with plain byte copies.
package gather

import (
	"fmt"
	"sort"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// Field declares Count consecutive values of one metric in a record.
type Field struct {
	Metric pm.Metric
	Type   pm.DataType
	Count  uint32
}

type slot struct {
	offset uint64
	typ    pm.DataType
	count  uint32
}

// Layout is the static offset table of a frame record.
type Layout struct {
	fields []Field
	slots  map[pm.Metric]slot
	size   uint64
}

// NewLayout lays out fields in order with natural alignment. A Count of 0 is
// treated as 1. Declaring the same metric twice panics.
func NewLayout(fields ...Field) *Layout {
	l := &Layout{slots: make(map[pm.Metric]slot, len(fields))}
	var pos uint64
	for _, f := range fields {
		if f.Count == 0 {
			f.Count = 1
		}
		if _, dup := l.slots[f.Metric]; dup {
			panic(fmt.Sprintf("gather: duplicate layout field %s", f.Metric))
		}
		pos += blob.Padding(pos, f.Type.Alignment())
		l.slots[f.Metric] = slot{offset: pos, typ: f.Type, count: f.Count}
		pos += f.Type.Size() * uint64(f.Count)
		l.fields = append(l.fields, f)
	}
	l.size = pos + blob.Padding(pos, 8)
	return l
}

// Size is the encoded size of one record.
func (l *Layout) Size() uint64 { return l.size }

// Lookup returns the offset and type of element index of metric.
func (l *Layout) Lookup(metric pm.Metric, index uint32) (uint64, pm.DataType, bool) {
	s, ok := l.slots[metric]
	if !ok || index >= s.count {
		return 0, pm.DataTypeVoid, false
	}
	return s.offset + uint64(index)*s.typ.Size(), s.typ, true
}

// Count returns how many values of metric a record holds.
func (l *Layout) Count(metric pm.Metric) uint32 {
	return l.slots[metric].count
}

// Fields returns the declared fields in declaration order.
func (l *Layout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Metrics returns the metrics carried by the layout, sorted by id.
func (l *Layout) Metrics() []pm.Metric {
	out := make([]pm.Metric, 0, len(l.slots))
	for m := range l.slots {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FanCount is the number of fan speed readings carried per frame.
const FanCount = 2

// DefaultLayout describes the frame record produced by the built-in
// simulated provider.
func DefaultLayout() *Layout {
	return defaultLayout
}

var defaultLayout = NewLayout(
	Field{Metric: pm.MetricApplication, Type: pm.DataTypeString},
	Field{Metric: pm.MetricSwapChainAddress, Type: pm.DataTypeUint64},
	Field{Metric: pm.MetricCPUFrameQPC, Type: pm.DataTypeUint64},
	Field{Metric: pm.MetricTime, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricPresentRuntime, Type: pm.DataTypeEnum},
	Field{Metric: pm.MetricSyncInterval, Type: pm.DataTypeInt32},
	Field{Metric: pm.MetricPresentFlags, Type: pm.DataTypeUint32},
	Field{Metric: pm.MetricPresentMode, Type: pm.DataTypeEnum},
	Field{Metric: pm.MetricAllowsTearing, Type: pm.DataTypeBool},
	Field{Metric: pm.MetricDroppedFrames, Type: pm.DataTypeBool},
	Field{Metric: pm.MetricFrameTime, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricCPUBusy, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricCPUWait, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPULatency, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUTime, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUBusy, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUWait, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricDisplayLatency, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricDisplayedTime, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricClickToPhotonLatency, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUPower, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUVoltage, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUFrequency, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUTemperature, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUFanSpeed, Type: pm.DataTypeDouble, Count: FanCount},
	Field{Metric: pm.MetricGPUUtilization, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPURenderComputeUtilization, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUMediaUtilization, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUPowerLimited, Type: pm.DataTypeBool},
	Field{Metric: pm.MetricGPUTemperatureLimited, Type: pm.DataTypeBool},
	Field{Metric: pm.MetricGPUMemPower, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUMemFrequency, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUMemTemperature, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricGPUMemUsed, Type: pm.DataTypeUint64},
	Field{Metric: pm.MetricGPUMemUtilization, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricCPUUtilization, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricCPUPower, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricCPUTemperature, Type: pm.DataTypeDouble},
	Field{Metric: pm.MetricCPUFrequency, Type: pm.DataTypeDouble},
)
