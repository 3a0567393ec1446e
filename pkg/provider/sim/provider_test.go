package sim_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/provider/sim"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
	"github.com/xnaught/PresentMon-sub004/pkg/session"
)

var _ session.Provider = (*sim.Provider)(nil)

const testPid = 1234

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestProvider() (*sim.Provider, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	p := sim.New(
		sim.WithClock(clock.Now),
		sim.WithProcessName(func(context.Context, uint32) (string, error) { return "Game.exe", nil }),
	)
	return p, clock
}

func statusOf(err error) pm.Status {
	var se *pm.StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return pm.StatusSuccess
}

func newTrackedSession(t *testing.T) (*sim.Provider, *fakeClock, *session.Session, *session.ProcessTracker) {
	t.Helper()
	p, clock := newTestProvider()
	s := session.New(p)
	tr, err := s.TrackProcess(context.Background(), testPid)
	if err != nil {
		t.Fatalf("TrackProcess failed: %v", err)
	}
	return p, clock, s, tr
}

func TestIntrospectCatalog(t *testing.T) {
	p, _ := newTestProvider()
	tree, err := p.Introspect(context.Background())
	if err != nil {
		t.Fatalf("Introspect failed: %v", err)
	}
	root := intro.NewRoot(tree)

	gpu, err := root.FindDevice(sim.GPUDevice)
	if err != nil || gpu.Type() != pm.DeviceTypeGraphicsAdapter {
		t.Errorf("expected GPU adapter at device %d, got %v (err %v)", sim.GPUDevice, gpu, err)
	}
	for _, e := range []pm.Enum{pm.EnumStatus, pm.EnumMetric, pm.EnumPresentMode, pm.EnumUnit} {
		if _, err := root.FindEnum(e); err != nil {
			t.Errorf("expected enum %s in catalog: %v", e, err)
		}
	}
	for _, m := range root.Metrics() {
		if _, err := m.Key(); err != nil {
			t.Errorf("metric %s has no enum key: %v", m.ID(), err)
		}
	}
	factor, err := mustUnit(t, root, pm.UnitMegahertz).ConversionFactor(pm.UnitGigahertz)
	if err != nil || math.Abs(factor-1e-3) > 1e-12 {
		t.Errorf("expected MHz to GHz factor 0.001, got %v (err %v)", factor, err)
	}
}

func TestWithCatalog(t *testing.T) {
	captured := sim.Catalog()
	for i := range captured.Devices {
		if captured.Devices[i].ID == sim.GPUDevice {
			captured.Devices[i].Name = "Captured Adapter"
		}
	}
	data, err := intro.Encode(captured)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	tree, err := intro.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	p := sim.New(sim.WithCatalog(tree))
	served, err := p.Introspect(context.Background())
	if err != nil {
		t.Fatalf("Introspect failed: %v", err)
	}
	gpu, err := intro.NewRoot(served).FindDevice(sim.GPUDevice)
	if err != nil {
		t.Fatalf("FindDevice failed: %v", err)
	}
	if gpu.Name() != "Captured Adapter" {
		t.Errorf("expected the supplied catalog to be served, got device %q", gpu.Name())
	}

	served.Devices = nil
	again, _ := p.Introspect(context.Background())
	if len(again.Devices) == 0 {
		t.Errorf("expected Introspect to return an independent copy")
	}
}

func mustUnit(t *testing.T, root *intro.Root, u pm.Unit) intro.Unit {
	t.Helper()
	unit, err := root.FindUnit(u)
	if err != nil {
		t.Fatalf("FindUnit failed: %v", err)
	}
	return unit
}

func TestTrackingErrors(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	if err := p.StartTracking(ctx, 0); statusOf(err) != pm.StatusInvalidPid {
		t.Errorf("expected invalid pid, got %v", err)
	}
	if err := p.StartTracking(ctx, testPid); err != nil {
		t.Fatalf("StartTracking failed: %v", err)
	}
	if err := p.StartTracking(ctx, testPid); statusOf(err) != pm.StatusAlreadyTrackingProcess {
		t.Errorf("expected already tracking, got %v", err)
	}
	if err := p.StopTracking(ctx, testPid); err != nil {
		t.Fatalf("StopTracking failed: %v", err)
	}
	if err := p.StopTracking(ctx, testPid); statusOf(err) != pm.StatusInvalidPid {
		t.Errorf("expected invalid pid after stop, got %v", err)
	}
}

func TestDynamicPoll(t *testing.T) {
	_, clock, s, tr := newTrackedSession(t)
	ctx := context.Background()

	q, err := s.RegisterDynamicQuery(ctx, []query.Element{
		{Metric: pm.MetricGPUPower, Stat: pm.StatAvg, Device: sim.GPUDevice},
		{Metric: pm.MetricPresentMode, Stat: pm.StatNewestPoint},
		{Metric: pm.MetricCPUUtilization, Stat: pm.StatAvg},
		{Metric: pm.MetricDisplayedFPS, Stat: pm.StatAvg},
		{Metric: pm.MetricGPUName, Device: sim.GPUDevice},
	}, 1000, 0)
	if err != nil {
		t.Fatalf("RegisterDynamicQuery failed: %v", err)
	}
	c := q.MakeBlobContainer(1)

	clock.Advance(2 * time.Second)
	if err := q.Poll(ctx, tr, c); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if c.Populated() != 1 {
		t.Fatalf("expected 1 populated blob, got %d", c.Populated())
	}

	b, _ := c.Blob(0)
	el := q.Schema().Elements
	read := func(i int) bridge.Value {
		v, err := bridge.Decode(b, el[i].Offset, el[i].DataType, el[i].EnumID)
		if err != nil {
			t.Fatalf("Decode element %d failed: %v", i, err)
		}
		return v
	}

	if power, _ := bridge.Convert[float64](read(0), nil); power < 125 || power > 175 {
		t.Errorf("expected GPU power within the generated range, got %v", power)
	}
	if mode, _ := bridge.Convert[int32](read(1), nil); mode != int32(pm.PresentModeHardwareIndependentFlip) {
		t.Errorf("expected independent flip, got %d", mode)
	}
	if cpu, _ := bridge.Convert[float64](read(2), nil); cpu < 25 || cpu > 45 {
		t.Errorf("expected CPU utilization within the generated range, got %v", cpu)
	}
	if fps, _ := bridge.Convert[float64](read(3), nil); math.Abs(fps-sim.DefaultFPS) > 5 {
		t.Errorf("expected about %v fps, got %v", sim.DefaultFPS, fps)
	}
	if name, _ := bridge.Convert[string](read(4), nil); name != sim.GPUName {
		t.Errorf("expected static GPU name %q, got %q", sim.GPUName, name)
	}
}

func TestDynamicPollEmptyWindow(t *testing.T) {
	_, clock, s, tr := newTrackedSession(t)
	ctx := context.Background()
	q, err := s.RegisterDynamicQuery(ctx, []query.Element{
		{Metric: pm.MetricCPUUtilization, Stat: pm.StatAvg},
	}, 100, 5000)
	if err != nil {
		t.Fatalf("RegisterDynamicQuery failed: %v", err)
	}

	clock.Advance(time.Second)
	c := q.MakeBlobContainer(1)
	if err := q.Poll(ctx, tr, c); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if c.Populated() != 0 {
		t.Errorf("expected nothing populated before the offset window has data, got %d", c.Populated())
	}
}

func TestFrameConsume(t *testing.T) {
	p, _, s, tr := newTrackedSession(t)
	ctx := context.Background()

	q, err := s.RegisterFrameQuery(ctx, []query.Element{
		{Metric: pm.MetricCPUFrameQPC},
		{Metric: pm.MetricApplication},
		{Metric: pm.MetricGPUName, Device: sim.GPUDevice},
		{Metric: pm.MetricGPUFanSpeed, Device: sim.GPUDevice, ArrayIndex: 1},
	})
	if err != nil {
		t.Fatalf("RegisterFrameQuery failed: %v", err)
	}
	if err := p.Produce(testPid, 10); err != nil {
		t.Fatalf("Produce failed: %v", err)
	}

	el := q.Schema().Elements
	var qpcs []uint64
	total, err := q.ForEachConsume(ctx, tr, q.MakeBlobContainer(4), func(i int, b blob.Buffer) {
		qpc, _ := b.Uint64At(el[0].Offset)
		qpcs = append(qpcs, qpc)

		app, _ := bridge.Decode(b, el[1].Offset, el[1].DataType, el[1].EnumID)
		if s, _ := bridge.Convert[string](app, nil); s != "Game.exe" {
			t.Errorf("frame %d: expected application Game.exe, got %q", i, s)
		}
		gpu, _ := bridge.Decode(b, el[2].Offset, el[2].DataType, el[2].EnumID)
		if s, _ := bridge.Convert[string](gpu, nil); s != sim.GPUName {
			t.Errorf("frame %d: expected patched GPU name, got %q", i, s)
		}
		fan, _ := b.Float64At(el[3].Offset)
		if fan < 1350 || fan > 1550 {
			t.Errorf("frame %d: expected second fan speed, got %v", i, fan)
		}
	})
	if err != nil {
		t.Fatalf("ForEachConsume failed: %v", err)
	}
	if total != 10 {
		t.Fatalf("expected 10 frames, got %d", total)
	}
	for i := 1; i < len(qpcs); i++ {
		if qpcs[i] <= qpcs[i-1] {
			t.Errorf("expected increasing QPC values, got %v", qpcs)
			break
		}
	}

	again, err := q.ForEachConsume(ctx, tr, q.MakeBlobContainer(4), func(int, blob.Buffer) {})
	if err != nil || again != 0 {
		t.Errorf("expected consumed frames not to be delivered twice, got %d (err %v)", again, err)
	}
}

func TestFrameRingOverflow(t *testing.T) {
	p, _, s, tr := newTrackedSession(t)
	ctx := context.Background()
	q, err := s.RegisterFrameQuery(ctx, []query.Element{{Metric: pm.MetricCPUFrameQPC}})
	if err != nil {
		t.Fatalf("RegisterFrameQuery failed: %v", err)
	}
	_ = p.Produce(testPid, sim.RingSize+100)

	total, err := q.ForEachConsume(ctx, tr, q.MakeBlobContainer(256), func(int, blob.Buffer) {})
	if err != nil {
		t.Fatalf("ForEachConsume failed: %v", err)
	}
	if total != sim.RingSize {
		t.Errorf("expected only the last %d frames, got %d", sim.RingSize, total)
	}
}

func TestRegistrationValidation(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	tests := []struct {
		name  string
		elems []pm.QueryElement
	}{
		{"wrong offset", []pm.QueryElement{
			{Metric: pm.MetricCPUUtilization, Stat: pm.StatAvg, DataOffset: 4, DataSize: 8},
		}},
		{"wrong size", []pm.QueryElement{
			{Metric: pm.MetricCPUUtilization, Stat: pm.StatAvg, DataOffset: 0, DataSize: 4},
		}},
		{"unsupported stat", []pm.QueryElement{
			{Metric: pm.MetricCPUUtilization, Stat: pm.StatCount, DataOffset: 0, DataSize: 8},
		}},
		{"frame event", []pm.QueryElement{
			{Metric: pm.MetricCPUFrameQPC, DataOffset: 0, DataSize: 8},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.RegisterDynamic(ctx, tt.elems, 1000, 0)
			if statusOf(err) != pm.StatusBadArgument {
				t.Errorf("expected bad argument, got %v", err)
			}
		})
	}

	_, err := p.RegisterFrame(ctx, []pm.QueryElement{
		{Metric: pm.MetricCPUFrameQPC, DataOffset: 0, DataSize: 8},
	}, 8)
	if statusOf(err) != pm.StatusBadArgument {
		t.Errorf("expected unpadded frame blob size to be rejected, got %v", err)
	}

	if err := p.Free(ctx, 99); statusOf(err) != pm.StatusBadHandle {
		t.Errorf("expected bad handle, got %v", err)
	}
}

func TestFailNext(t *testing.T) {
	p, clock, s, tr := newTrackedSession(t)
	ctx := context.Background()
	q, err := s.RegisterDynamicQuery(ctx, []query.Element{
		{Metric: pm.MetricCPUUtilization, Stat: pm.StatAvg},
	}, 1000, 0)
	if err != nil {
		t.Fatalf("RegisterDynamicQuery failed: %v", err)
	}
	clock.Advance(time.Second)

	p.FailNext(sim.OpPollDynamic, pm.StatusPipeError)
	c := q.MakeBlobContainer(1)
	err = q.Poll(ctx, tr, c)
	var f *session.ProviderCallFailure
	if !errors.As(err, &f) || f.Status != pm.StatusPipeError {
		t.Fatalf("expected injected pipe error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Pipe Error") {
		t.Errorf("expected decoded status name in %q", err.Error())
	}

	if err := q.Poll(ctx, tr, c); err != nil {
		t.Errorf("expected failure to be injected once, got %v", err)
	}
}

func TestPollStatic(t *testing.T) {
	_, _, s, tr := newTrackedSession(t)
	ctx := context.Background()

	tests := []struct {
		metric   pm.Metric
		device   uint32
		expected string
	}{
		{pm.MetricApplication, sim.CPUDevice, "Game.exe"},
		{pm.MetricCPUName, sim.CPUDevice, sim.CPUName},
		{pm.MetricGPUName, sim.GPUDevice, sim.GPUName},
		{pm.MetricGPUVendor, sim.GPUDevice, "Intel"},
		{pm.MetricGPUSustainedPowerLimit, sim.GPUDevice, "225"},
	}
	for _, tt := range tests {
		t.Run(tt.metric.String(), func(t *testing.T) {
			r, err := s.PollStatic(ctx, tr, tt.metric, tt.device, 0)
			if err != nil {
				t.Fatalf("PollStatic failed: %v", err)
			}
			if got := r.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTelemetryPollingPeriod(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	if err := p.SetTelemetryPollingPeriod(ctx, sim.CPUDevice, 100); statusOf(err) != pm.StatusInvalidAdapterID {
		t.Errorf("expected invalid adapter for the CPU device, got %v", err)
	}
	if err := p.SetTelemetryPollingPeriod(ctx, sim.GPUDevice, 0); statusOf(err) != pm.StatusOutOfRange {
		t.Errorf("expected out of range, got %v", err)
	}
	if err := p.SetTelemetryPollingPeriod(ctx, sim.GPUDevice, 250); err != nil {
		t.Fatalf("SetTelemetryPollingPeriod failed: %v", err)
	}
	if got := p.TelemetryPollingPeriod(sim.GPUDevice); got != 250 {
		t.Errorf("expected 250ms, got %d", got)
	}
}
