package session

import (
	"context"
	"fmt"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// StaticResult is the value of a static metric.
type StaticResult struct {
	Metric pm.Metric
	Value  bridge.Value
	enums  bridge.EnumResolver
}

// StaticAs converts a static result to T.
func StaticAs[T bridge.Target](r StaticResult) (T, error) {
	return bridge.Convert[T](r.Value, r.enums)
}

func (r StaticResult) String() string {
	if r.Value.Type == pm.DataTypeEnum {
		s, _ := bridge.EnumText(r.Value, r.enums, bridge.NameStyleName)
		return s
	}
	return r.Value.String()
}

// PollStatic reads one static metric, such as the GPU name, for the
// tracked process.
func (s *Session) PollStatic(ctx context.Context, tracker *ProcessTracker, metric pm.Metric, deviceID, arrayIndex uint32) (StaticResult, error) {
	if !s.Connected() {
		return StaticResult{}, ErrNotConnected
	}
	if tracker.Empty() {
		return StaticResult{}, ErrEmptyTracker
	}
	root, err := s.Introspection(ctx)
	if err != nil {
		return StaticResult{}, err
	}
	m, err := root.FindMetric(metric)
	if err != nil {
		return StaticResult{}, err
	}
	if m.Type() != pm.MetricTypeStatic {
		return StaticResult{}, fmt.Errorf("%w: %s is %s", ErrNotStatic, metric, m.Type())
	}
	if !m.IsAvailable(deviceID, arrayIndex) {
		return StaticResult{Metric: metric, Value: bridge.Void(), enums: s.enums}, nil
	}

	info := m.DataTypeInfo()
	dt := info.FrameType
	buf := blob.NewBuffer(pm.StringCapacity)
	elem := pm.QueryElement{
		Metric:     metric,
		Stat:       pm.StatNone,
		DeviceID:   deviceID,
		ArrayIndex: arrayIndex,
		DataSize:   dt.Size(),
	}
	if err := s.provider.PollStatic(ctx, elem, tracker.Pid(), buf.Bytes()); err != nil {
		return StaticResult{}, s.fail(OpPollStatic, newFailure(OpPollStatic, err, s.enums), telemetry.ErrorSeverityWarning)
	}
	v, err := bridge.Decode(buf, 0, dt, info.EnumID)
	if err != nil {
		return StaticResult{}, err
	}
	return StaticResult{Metric: metric, Value: v, enums: s.enums}, nil
}
