package gather_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/gather"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/provider/sim"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
)

var scenario = []query.Element{
	{Metric: pm.MetricGPUPower, Device: sim.GPUDevice},
	{Metric: pm.MetricPresentMode},
	{Metric: pm.MetricCPUUtilization},
}

func frameSchema(t *testing.T, elems []query.Element) *query.Schema {
	t.Helper()
	s, err := query.Build(intro.NewRoot(sim.Catalog()), elems, query.Options{Mode: query.Frame})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}

func TestNewLayout(t *testing.T) {
	l := gather.NewLayout(
		gather.Field{Metric: pm.MetricAllowsTearing, Type: pm.DataTypeBool},
		gather.Field{Metric: pm.MetricFrameTime, Type: pm.DataTypeDouble},
		gather.Field{Metric: pm.MetricGPUFanSpeed, Type: pm.DataTypeDouble, Count: 2},
		gather.Field{Metric: pm.MetricSyncInterval, Type: pm.DataTypeInt32},
	)

	tests := []struct {
		metric pm.Metric
		index  uint32
		offset uint64
		ok     bool
	}{
		{pm.MetricAllowsTearing, 0, 0, true},
		{pm.MetricFrameTime, 0, 8, true},
		{pm.MetricGPUFanSpeed, 0, 16, true},
		{pm.MetricGPUFanSpeed, 1, 24, true},
		{pm.MetricGPUFanSpeed, 2, 0, false},
		{pm.MetricSyncInterval, 0, 32, true},
		{pm.MetricCPUPower, 0, 0, false},
	}
	for _, tt := range tests {
		off, _, ok := l.Lookup(tt.metric, tt.index)
		if ok != tt.ok || (ok && off != tt.offset) {
			t.Errorf("%s[%d]: expected (%d, %v), got (%d, %v)", tt.metric, tt.index, tt.offset, tt.ok, off, ok)
		}
	}
	if l.Size() != 40 {
		t.Errorf("expected record size 40, got %d", l.Size())
	}
	if l.Count(pm.MetricGPUFanSpeed) != 2 {
		t.Errorf("expected 2 fan speeds, got %d", l.Count(pm.MetricGPUFanSpeed))
	}
}

func TestNewLayoutDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected duplicate field to panic")
		}
	}()
	gather.NewLayout(
		gather.Field{Metric: pm.MetricFrameTime, Type: pm.DataTypeDouble},
		gather.Field{Metric: pm.MetricFrameTime, Type: pm.DataTypeDouble},
	)
}

func TestFrameRecord(t *testing.T) {
	r := gather.NewFrameRecord(gather.DefaultLayout())

	if err := r.Set(pm.MetricPresentMode, 0, bridge.EnumValue(pm.EnumPresentMode, int32(pm.PresentModeComposedFlip))); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := r.Set(pm.MetricFrameTime, 0, bridge.Int32(3)); !errors.Is(err, gather.ErrFieldMismatch) {
		t.Errorf("expected ErrFieldMismatch, got %v", err)
	}
	if err := r.Set(pm.MetricGPUMemVoltage, 0, bridge.Float64(1)); !errors.Is(err, gather.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}

	clone := r.Clone()
	_ = r.Set(pm.MetricPresentMode, 0, bridge.EnumValue(pm.EnumPresentMode, int32(pm.PresentModeHardwareLegacyFlip)))

	v, err := clone.Get(pm.MetricPresentMode, 0, pm.EnumPresentMode)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw, _ := bridge.Convert[int32](v, nil); raw != int32(pm.PresentModeComposedFlip) {
		t.Errorf("expected clone to be independent, got %d", raw)
	}
}

func TestCompileAndGather(t *testing.T) {
	schema := frameSchema(t, scenario)
	p, err := gather.Compile(schema, gather.DefaultLayout())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(p.Commands()) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(p.Commands()))
	}

	r := gather.NewFrameRecord(gather.DefaultLayout())
	_ = r.Set(pm.MetricGPUPower, 0, bridge.Float64(150.5))
	_ = r.Set(pm.MetricPresentMode, 0, bridge.EnumValue(pm.EnumPresentMode, int32(pm.PresentModeComposedFlip)))
	_ = r.Set(pm.MetricCPUUtilization, 0, bridge.Float64(42))

	dst := bytes.Repeat([]byte{0xFF}, int(schema.BlobSize))
	if err := p.Gather(r.Bytes(), dst); err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	buf := blob.Wrap(dst)
	if v, _ := buf.Float64At(0); v != 150.5 {
		t.Errorf("expected GPU power 150.5, got %v", v)
	}
	if v, _ := buf.Int32At(8); v != int32(pm.PresentModeComposedFlip) {
		t.Errorf("expected present mode %d, got %d", pm.PresentModeComposedFlip, v)
	}
	if v, _ := buf.Float64At(16); v != 42 {
		t.Errorf("expected CPU utilization 42, got %v", v)
	}
	if !bytes.Equal(dst[12:16], make([]byte, 4)) {
		t.Errorf("expected alignment padding to be zeroed, got %x", dst[12:16])
	}
	if !bytes.Equal(dst[24:32], make([]byte, 8)) {
		t.Errorf("expected tail padding to be zeroed, got %x", dst[24:32])
	}
}

func TestCompileSkipsUnavailable(t *testing.T) {
	schema := frameSchema(t, []query.Element{
		{Metric: pm.MetricGPUMemVoltage, Device: sim.GPUDevice},
		{Metric: pm.MetricCPUFrameQPC},
	})
	p, err := gather.Compile(schema, gather.DefaultLayout())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	cmds := p.Commands()
	if len(cmds) != 1 || cmds[0].DestOffset != 0 {
		t.Errorf("expected a single command at offset 0, got %+v", cmds)
	}
}

func TestCompileStatics(t *testing.T) {
	schema := frameSchema(t, []query.Element{
		{Metric: pm.MetricCPUFrameQPC},
		{Metric: pm.MetricGPUName, Device: sim.GPUDevice},
	})
	p, err := gather.Compile(schema, gather.DefaultLayout())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	statics := p.Statics()
	if len(statics) != 1 || statics[0].Metric != pm.MetricGPUName || statics[0].Offset != 8 {
		t.Fatalf("expected GPU name as uncopied static at 8, got %+v", statics)
	}

	dst := bytes.Repeat([]byte{0xFF}, int(schema.BlobSize))
	r := gather.NewFrameRecord(gather.DefaultLayout())
	if err := p.Gather(r.Bytes(), dst); err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if !bytes.Equal(dst[8:8+pm.StringCapacity], make([]byte, pm.StringCapacity)) {
		t.Errorf("expected static slot to be zeroed")
	}
}

func TestCompileErrors(t *testing.T) {
	noCPU := gather.NewLayout(
		gather.Field{Metric: pm.MetricGPUPower, Type: pm.DataTypeDouble},
		gather.Field{Metric: pm.MetricPresentMode, Type: pm.DataTypeEnum},
	)
	wide := gather.NewLayout(
		gather.Field{Metric: pm.MetricGPUPower, Type: pm.DataTypeDouble},
		gather.Field{Metric: pm.MetricPresentMode, Type: pm.DataTypeUint64},
		gather.Field{Metric: pm.MetricCPUUtilization, Type: pm.DataTypeDouble},
	)
	retyped := gather.NewLayout(
		gather.Field{Metric: pm.MetricGPUPower, Type: pm.DataTypeUint64},
		gather.Field{Metric: pm.MetricPresentMode, Type: pm.DataTypeEnum},
		gather.Field{Metric: pm.MetricCPUUtilization, Type: pm.DataTypeDouble},
	)
	polled, err := query.Build(intro.NewRoot(sim.Catalog()), scenario, query.Options{Mode: query.Polled})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		name   string
		schema *query.Schema
		layout *gather.Layout
		target error
	}{
		{"missing field", frameSchema(t, scenario), noCPU, gather.ErrUnknownField},
		{"size mismatch", frameSchema(t, scenario), wide, gather.ErrFieldMismatch},
		{"type mismatch same size", frameSchema(t, scenario), retyped, gather.ErrFieldMismatch},
		{"polled schema", polled, gather.DefaultLayout(), gather.ErrNotFrameQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gather.Compile(tt.schema, tt.layout); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestGatherBounds(t *testing.T) {
	schema := frameSchema(t, scenario)
	p, err := gather.Compile(schema, gather.DefaultLayout())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	src := gather.NewFrameRecord(gather.DefaultLayout()).Bytes()

	if err := p.Gather(src[:8], make([]byte, schema.BlobSize)); !errors.Is(err, blob.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for short source, got %v", err)
	}
	if err := p.Gather(src, make([]byte, 4)); !errors.Is(err, blob.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for short destination, got %v", err)
	}
}
