// Package sim is an in-process telemetry provider. It serves the
// introspection catalog of one CPU and one graphics adapter and generates
// deterministic frame records for every tracked process, so queries can be
// exercised without the presentation monitoring service.
package sim

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/bridge"
	"github.com/xnaught/PresentMon-sub004/pkg/gather"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
)

// Call names accepted by FailNext.
const (
	OpIntrospect      = "introspect"
	OpStartTracking   = "start_tracking"
	OpStopTracking    = "stop_tracking"
	OpRegisterDynamic = "register_dynamic"
	OpRegisterFrame   = "register_frame"
	OpFree            = "free"
	OpPollDynamic     = "dynamic_poll"
	OpConsume         = "consume"
	OpPollStatic      = "static_poll"
	OpTelemetryPeriod = "telemetry_period"
)

const (
	// DefaultTelemetryPeriodMs is the initial device sampling period.
	DefaultTelemetryPeriodMs = 16
	maxTelemetryPeriodMs     = 5000
	defaultProcessName       = "Presenter.exe"
)

type registration struct {
	handle  pm.QueryHandle
	schema  *query.Schema
	program *gather.Program
	window  time.Duration
	offset  time.Duration
}

type Provider struct {
	mu sync.Mutex

	logger      *log.Logger
	now         func() time.Time
	fps         float64
	processName func(ctx context.Context, pid uint32) (string, error)

	catalog *intro.Tree
	root    *intro.Root
	layout  *gather.Layout
	streams map[uint32]*stream
	queries map[pm.QueryHandle]*registration
	periods map[uint32]uint32
	failing map[string]pm.Status
	handles pm.QueryHandle
}

type Option func(*Provider)

func WithLogger(logger *log.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces the wall clock used to pace frame generation.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

func WithFPS(fps float64) Option {
	return func(p *Provider) {
		if fps > 0 {
			p.fps = fps
		}
	}
}

// WithProcessName sets how the application name of a tracked pid is found.
// Lookup failures fall back to a placeholder name.
func WithProcessName(fn func(ctx context.Context, pid uint32) (string, error)) Option {
	return func(p *Provider) {
		if fn != nil {
			p.processName = fn
		}
	}
}

// WithCatalog serves tree as the introspection catalog instead of Catalog(),
// typically one captured from another provider with intro.Encode. Polls of
// metrics the simulator does not synthesize fail.
func WithCatalog(tree *intro.Tree) Option {
	return func(p *Provider) {
		if tree != nil {
			p.catalog = tree
		}
	}
}

func New(opts ...Option) *Provider {
	p := &Provider{
		logger:  log.New(io.Discard, "[sim] ", log.LstdFlags|log.Lmicroseconds),
		now:     time.Now,
		fps:     DefaultFPS,
		catalog: Catalog(),
		layout:  gather.DefaultLayout(),
		streams: make(map[uint32]*stream),
		queries: make(map[pm.QueryHandle]*registration),
		periods: map[uint32]uint32{GPUDevice: DefaultTelemetryPeriodMs},
		failing: make(map[string]pm.Status),
	}
	p.processName = func(context.Context, uint32) (string, error) { return defaultProcessName, nil }
	for _, opt := range opts {
		opt(p)
	}
	p.root = intro.NewRoot(p.catalog)
	return p
}

// FailNext makes the next call named op fail with status.
func (p *Provider) FailNext(op string, status pm.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing[op] = status
}

// enter must be called with p.mu held.
func (p *Provider) enter(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st, ok := p.failing[op]; ok {
		delete(p.failing, op)
		p.logger.Printf("Injected failure for %s: %s", op, st)
		return st.Err()
	}
	return nil
}

func (p *Provider) Introspect(ctx context.Context) (*intro.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpIntrospect); err != nil {
		return nil, err
	}
	return p.root.Tree(), nil
}

func (p *Provider) StartTracking(ctx context.Context, pid uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpStartTracking); err != nil {
		return err
	}
	if pid == 0 {
		return pm.StatusInvalidPid.Err()
	}
	if _, ok := p.streams[pid]; ok {
		return pm.StatusAlreadyTrackingProcess.Err()
	}
	name, err := p.processName(ctx, pid)
	if err != nil || name == "" {
		name = defaultProcessName
	}
	p.streams[pid] = newStream(pid, name, p.now(), p.fps, p.layout)
	p.logger.Printf("Tracking pid %d (%s)", pid, name)
	return nil
}

func (p *Provider) StopTracking(ctx context.Context, pid uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpStopTracking); err != nil {
		return err
	}
	if _, ok := p.streams[pid]; !ok {
		return pm.StatusInvalidPid.Err()
	}
	delete(p.streams, pid)
	p.logger.Printf("Stopped tracking pid %d", pid)
	return nil
}

// Produce generates n frames for pid immediately, independent of the clock.
func (p *Provider) Produce(pid uint32, n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.streams[pid]
	if !ok {
		return pm.StatusInvalidPid.Err()
	}
	s.produce(n)
	return nil
}

// validate rebuilds the layout from the descriptors and checks the caller
// computed the same offsets.
func (p *Provider) validate(elems []pm.QueryElement, mode query.Mode) (*query.Schema, error) {
	in := make([]query.Element, len(elems))
	for i, e := range elems {
		in[i] = query.Element{Metric: e.Metric, Stat: e.Stat, Device: e.DeviceID, ArrayIndex: e.ArrayIndex}
	}
	schema, err := query.Build(p.root, in, query.Options{Mode: mode})
	if err != nil {
		p.logger.Printf("ERROR: rejected %s query: %v", mode, err)
		return nil, pm.StatusBadArgument.Err()
	}
	for i, e := range schema.Elements {
		if e.Offset != elems[i].DataOffset || e.Size != elems[i].DataSize {
			p.logger.Printf("ERROR: element %d of %s query at %d+%d, expected %d+%d",
				i, mode, elems[i].DataOffset, elems[i].DataSize, e.Offset, e.Size)
			return nil, pm.StatusBadArgument.Err()
		}
		if mode == query.Polled && e.Available && !e.Static {
			m, _ := p.root.FindMetric(e.Metric)
			if !m.SupportsStat(e.Stat) {
				p.logger.Printf("ERROR: %s does not support %s", e.Metric, e.Stat)
				return nil, pm.StatusBadArgument.Err()
			}
		}
	}
	return schema, nil
}

func (p *Provider) RegisterDynamic(ctx context.Context, elems []pm.QueryElement, windowMs, offsetMs float64) (pm.QueryHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpRegisterDynamic); err != nil {
		return 0, err
	}
	if windowMs <= 0 || offsetMs < 0 {
		return 0, pm.StatusOutOfRange.Err()
	}
	schema, err := p.validate(elems, query.Polled)
	if err != nil {
		return 0, err
	}
	p.handles++
	reg := &registration{
		handle: p.handles,
		schema: schema,
		window: time.Duration(windowMs * float64(time.Millisecond)),
		offset: time.Duration(offsetMs * float64(time.Millisecond)),
	}
	p.queries[reg.handle] = reg
	p.logger.Printf("Registered dynamic query %d (%d elements, window %.0fms)", reg.handle, len(elems), windowMs)
	return reg.handle, nil
}

func (p *Provider) RegisterFrame(ctx context.Context, elems []pm.QueryElement, blobSize uint64) (pm.QueryHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpRegisterFrame); err != nil {
		return 0, err
	}
	schema, err := p.validate(elems, query.Frame)
	if err != nil {
		return 0, err
	}
	if schema.BlobSize != blobSize {
		p.logger.Printf("ERROR: frame blob size %d, expected %d", blobSize, schema.BlobSize)
		return 0, pm.StatusBadArgument.Err()
	}
	program, err := gather.Compile(schema, p.layout)
	if err != nil {
		p.logger.Printf("ERROR: failed to compile frame query: %v", err)
		return 0, pm.StatusBadArgument.Err()
	}
	p.handles++
	reg := &registration{handle: p.handles, schema: schema, program: program}
	p.queries[reg.handle] = reg
	p.logger.Printf("Registered frame query %d (%d elements, %d copy commands)", reg.handle, len(elems), len(program.Commands()))
	return reg.handle, nil
}

func (p *Provider) Free(ctx context.Context, h pm.QueryHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpFree); err != nil {
		return err
	}
	if _, ok := p.queries[h]; !ok {
		return pm.StatusBadHandle.Err()
	}
	delete(p.queries, h)
	for _, s := range p.streams {
		delete(s.cursors, h)
	}
	return nil
}

// lookup must be called with p.mu held.
func (p *Provider) lookup(h pm.QueryHandle, pid uint32, frameQuery bool) (*registration, *stream, error) {
	reg, ok := p.queries[h]
	if !ok || (reg.program != nil) != frameQuery {
		return nil, nil, pm.StatusBadHandle.Err()
	}
	s, ok := p.streams[pid]
	if !ok {
		return nil, nil, pm.StatusInvalidPid.Err()
	}
	return reg, s, nil
}

func (p *Provider) Consume(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpConsume); err != nil {
		return 0, err
	}
	reg, s, err := p.lookup(h, pid, true)
	if err != nil {
		return 0, err
	}
	size := reg.schema.BlobSize
	if uint64(len(dst)) < size*uint64(capacity) {
		return 0, pm.StatusInsufficientBuffer.Err()
	}

	s.catchUp(p.now())
	frames := s.frames(s.cursors[h])
	if uint32(len(frames)) > capacity {
		frames = frames[:capacity]
	}
	for i, f := range frames {
		out := dst[uint64(i)*size : uint64(i+1)*size]
		if err := reg.program.Gather(f.record.Bytes(), out); err != nil {
			return 0, fmt.Errorf("gather frame %d: %w", f.seq, err)
		}
		for _, e := range reg.program.Statics() {
			v, ok := p.staticValue(e.Metric, s)
			if !ok {
				continue
			}
			if err := bridge.Encode(blob.Wrap(out), e.Offset, v); err != nil {
				return 0, err
			}
		}
		s.cursors[h] = f.seq
	}
	return uint32(len(frames)), nil
}

func (p *Provider) PollDynamic(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpPollDynamic); err != nil {
		return 0, err
	}
	reg, s, err := p.lookup(h, pid, false)
	if err != nil {
		return 0, err
	}
	size := reg.schema.BlobSize
	if capacity == 0 || uint64(len(dst)) < size {
		return 0, pm.StatusInsufficientBuffer.Err()
	}

	now := p.now()
	s.catchUp(now)
	to := now.Add(-reg.offset)
	frames := s.window(to.Add(-reg.window), to)
	if len(frames) == 0 {
		return 0, nil
	}

	out := blob.Wrap(dst[:size])
	clear(out.Bytes())
	for _, e := range reg.schema.Elements {
		if !e.Available {
			continue
		}
		v, err := p.polledValue(e, s, frames)
		if err != nil {
			return 0, err
		}
		if err := bridge.Encode(out, e.Offset, v); err != nil {
			return 0, err
		}
	}
	return 1, nil
}

func (p *Provider) polledValue(e query.Element, s *stream, frames []frame) (bridge.Value, error) {
	if e.Static {
		if v, ok := p.staticValue(e.Metric, s); ok {
			return v, nil
		}
		return bridge.Value{}, pm.StatusBadArgument.Err()
	}
	if e.DataType != pm.DataTypeDouble {
		return frames[len(frames)-1].record.Get(e.Metric, e.ArrayIndex, e.EnumID)
	}

	values := make([]float64, 0, len(frames))
	for _, f := range frames {
		x, err := p.sample(e, f)
		if err != nil {
			return bridge.Value{}, err
		}
		values = append(values, x)
	}
	return bridge.Float64(statistic(e.Stat, values)), nil
}

// sample reads one frame's contribution to a double statistic.
func (p *Provider) sample(e query.Element, f frame) (float64, error) {
	switch e.Metric {
	case pm.MetricDisplayedFPS, pm.MetricPresentedFPS:
		v, err := f.record.Get(pm.MetricFrameTime, 0, pm.EnumNull)
		if err != nil {
			return 0, err
		}
		ms, _ := bridge.Convert[float64](v, nil)
		if ms == 0 {
			return 0, nil
		}
		return 1000 / ms, nil
	}
	v, err := f.record.Get(e.Metric, e.ArrayIndex, pm.EnumNull)
	if err != nil {
		return 0, err
	}
	if v.Type == pm.DataTypeBool {
		// boolean frame flags are polled as the percentage of frames set
		b, _ := bridge.Convert[bool](v, nil)
		if b {
			return 100, nil
		}
		return 0, nil
	}
	return bridge.Convert[float64](v, nil)
}

func (p *Provider) staticValue(metric pm.Metric, s *stream) (bridge.Value, bool) {
	switch metric {
	case pm.MetricApplication:
		if s == nil {
			return bridge.Value{}, false
		}
		return bridge.String(s.name), true
	case pm.MetricGPUName:
		return bridge.String(GPUName), true
	case pm.MetricCPUName:
		return bridge.String(CPUName), true
	case pm.MetricGPUVendor, pm.MetricCPUVendor:
		return bridge.EnumValue(pm.EnumDeviceVendor, int32(pm.DeviceVendorIntel)), true
	case pm.MetricGPUSustainedPowerLimit:
		return bridge.Float64(GPUSustainedPowerCap), true
	case pm.MetricCPUPowerLimit:
		return bridge.Float64(CPUPowerLimitWatts), true
	case pm.MetricGPUMemSize:
		return bridge.Uint64(GPUMemSizeBytes), true
	default:
		return bridge.Value{}, false
	}
}

func (p *Provider) PollStatic(ctx context.Context, elem pm.QueryElement, pid uint32, dst []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpPollStatic); err != nil {
		return err
	}
	m, err := p.root.FindMetric(elem.Metric)
	if err != nil || m.Type() != pm.MetricTypeStatic || !m.IsAvailable(elem.DeviceID, elem.ArrayIndex) {
		return pm.StatusBadArgument.Err()
	}
	s, ok := p.streams[pid]
	if !ok {
		return pm.StatusInvalidPid.Err()
	}
	v, ok := p.staticValue(elem.Metric, s)
	if !ok {
		return pm.StatusBadArgument.Err()
	}
	if uint64(len(dst)) < v.Type.Size() {
		return pm.StatusInsufficientBuffer.Err()
	}
	return bridge.Encode(blob.Wrap(dst), 0, v)
}

func (p *Provider) SetTelemetryPollingPeriod(ctx context.Context, deviceID uint32, periodMs uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter(ctx, OpTelemetryPeriod); err != nil {
		return err
	}
	dev, err := p.root.FindDevice(deviceID)
	if err != nil || dev.Type() != pm.DeviceTypeGraphicsAdapter {
		return pm.StatusInvalidAdapterID.Err()
	}
	if periodMs == 0 || periodMs > maxTelemetryPeriodMs {
		return pm.StatusOutOfRange.Err()
	}
	p.periods[deviceID] = periodMs
	p.logger.Printf("Telemetry period for device %d set to %dms", deviceID, periodMs)
	return nil
}

// TelemetryPollingPeriod returns the sampling period of deviceID.
func (p *Provider) TelemetryPollingPeriod(deviceID uint32) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.periods[deviceID]
}
