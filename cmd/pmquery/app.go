package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/access"
	"github.com/xnaught/PresentMon-sub004/pkg/config"
	"github.com/xnaught/PresentMon-sub004/pkg/export"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/provider/sim"
	"github.com/xnaught/PresentMon-sub004/pkg/session"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// column is one polled value shown per row. A zero unit keeps the metric's
// native unit.
type column struct {
	label  string
	metric pm.Metric
	stat   pm.Stat
	slot   uint32
	index  uint32
	unit   pm.Unit
}

var defaultColumns = []column{
	{label: "FPS", metric: pm.MetricDisplayedFPS, stat: pm.StatAvg},
	{label: "Frame ms", metric: pm.MetricFrameTime, stat: pm.StatAvg},
	{label: "Frame ms p99", metric: pm.MetricFrameTime, stat: pm.StatPercentile99},
	{label: "CPU %", metric: pm.MetricCPUUtilization, stat: pm.StatAvg},
	{label: "GPU W", metric: pm.MetricGPUPower, stat: pm.StatAvg, slot: 1},
	{label: "GPU GHz", metric: pm.MetricGPUFrequency, stat: pm.StatAvg, slot: 1, unit: pm.UnitGigahertz},
	{label: "Fan 0 RPM", metric: pm.MetricGPUFanSpeed, stat: pm.StatAvg, slot: 1},
	{label: "Fan 1 RPM", metric: pm.MetricGPUFanSpeed, stat: pm.StatAvg, slot: 1, index: 1},
	{label: "VRAM GB", metric: pm.MetricGPUMemUsed, stat: pm.StatNewestPoint, slot: 1, unit: pm.UnitGigabytes},
	{label: "Mem V", metric: pm.MetricGPUMemVoltage, stat: pm.StatAvg, slot: 1},
	{label: "Dropped %", metric: pm.MetricDroppedFrames, stat: pm.StatAvg},
	{label: "Present Mode", metric: pm.MetricPresentMode, stat: pm.StatNewestPoint},
	{label: "Runtime", metric: pm.MetricPresentRuntime, stat: pm.StatNewestPoint},
}

var staticMetrics = []struct {
	label  string
	metric pm.Metric
	gpu    bool
}{
	{"Application", pm.MetricApplication, false},
	{"CPU", pm.MetricCPUName, false},
	{"GPU", pm.MetricGPUName, true},
	{"GPU Power Limit", pm.MetricGPUSustainedPowerLimit, true},
}

// Row is the result of one poll.
type Row struct {
	Time   time.Time
	Values map[string]float64
	Labels map[string]string
	// Missing lists columns the device cannot report.
	Missing []string
	// Frames counts frame events consumed since the previous poll.
	Frames     int
	MaxFrameMs float64
}

type staticLine struct {
	label string
	value string
}

// App owns the session and the containers polled by the runners.
type App struct {
	cfg     *config.Config
	logger  *log.Logger
	session *session.Session
	tracker *session.ProcessTracker

	dynamic   *access.DynamicContainer
	elements  []*access.Element
	columns   []column
	frames    *access.FrameContainer
	frameTime *access.Element

	statics []staticLine
	relay   *export.RelayPublisher
}

// NewApp starts tracking the configured process and registers the queries.
func NewApp(ctx context.Context, cfg *config.Config, provider session.Provider, pub telemetry.TelemetryPublisher, logger *log.Logger) (*App, error) {
	s := session.New(provider,
		session.WithLogger(log.New(logger.Writer(), "[session] ", logger.Flags())),
		session.WithPublisher(pub),
	)
	a := &App{cfg: cfg, logger: logger, session: s, columns: defaultColumns}

	pid := cfg.Pid
	if pid == 0 {
		pid = uint32(os.Getpid())
	}
	tracker, err := s.TrackProcess(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to track process %d: %w", pid, err)
	}
	a.tracker = tracker

	if err := s.SetTelemetryPollingPeriod(ctx, cfg.Query.GPUDeviceID, uint32(cfg.TelemetryPeriodMs)); err != nil {
		logger.Printf("ERROR: %v", err)
	}

	a.dynamic = access.NewDynamic(s, cfg.Query.WindowMs, cfg.Query.MetricOffsetMs, 1, cfg.Query.GPUDeviceID)
	for _, c := range a.columns {
		a.elements = append(a.elements, a.dynamic.Add(c.metric, c.stat, c.slot, c.index))
	}
	if err := a.dynamic.Finalize(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("failed to register dynamic query: %w", err)
	}

	if cfg.Query.FrameCapacity > 0 {
		a.frames = access.NewFrame(s, uint32(cfg.Query.FrameCapacity))
		a.frameTime = a.frames.Add(pm.MetricFrameTime, 0, 0)
		if err := a.frames.Finalize(ctx); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to register frame query: %w", err)
		}
	}

	a.statics = a.pollStatics(ctx)
	return a, nil
}

func (a *App) pollStatics(ctx context.Context) []staticLine {
	var out []staticLine
	for _, sm := range staticMetrics {
		device := pm.UniversalDevice
		if sm.gpu {
			device = a.cfg.Query.GPUDeviceID
		}
		r, err := a.session.PollStatic(ctx, a.tracker, sm.metric, device, 0)
		if err != nil {
			a.logger.Printf("ERROR: %v", err)
			continue
		}
		if r.Value.Type == pm.DataTypeVoid {
			continue
		}
		out = append(out, staticLine{label: sm.label, value: r.String()})
	}
	return out
}

// SetRelay makes Poll publish every row.
func (a *App) SetRelay(p *export.RelayPublisher) { a.relay = p }

func (a *App) Session() *session.Session { return a.session }

func (a *App) Pid() uint32 { return a.tracker.Pid() }

// Poll reads the dynamic query and drains queued frames.
func (a *App) Poll(ctx context.Context) (Row, error) {
	row := Row{
		Time:   time.Now(),
		Values: make(map[string]float64),
		Labels: make(map[string]string),
	}

	if err := a.dynamic.Poll(ctx, a.tracker); err != nil {
		return row, err
	}
	if a.dynamic.Populated() > 0 {
		for i, el := range a.elements {
			c := a.columns[i]
			if !el.IsAvailable() {
				row.Missing = append(row.Missing, c.label)
				continue
			}
			if err := readColumn(el, c, &row); err != nil {
				return row, fmt.Errorf("%s: %w", c.label, err)
			}
		}
	}

	if a.frames != nil {
		n, err := a.frames.ForEachConsume(ctx, a.tracker, func() {
			if ms, ok := access.Lookup[float64](a.frameTime); ok && ms > row.MaxFrameMs {
				row.MaxFrameMs = ms
			}
		})
		row.Frames = n
		if err != nil {
			return row, err
		}
	}

	if a.relay != nil {
		if err := a.relay.Publish(ctx, a.Sample(row)); err != nil {
			a.logger.Printf("ERROR: %v", err)
		}
	}
	return row, nil
}

func readColumn(el *access.Element, c column, row *Row) error {
	if el.DataType() == pm.DataTypeEnum || el.DataType() == pm.DataTypeString {
		s, err := access.As[string](el)
		if err != nil {
			return err
		}
		row.Labels[c.label] = s
		return nil
	}

	var v float64
	var err error
	if c.unit != pm.UnitDimensionless {
		v, err = el.Convert(c.unit)
	} else {
		v, err = access.As[float64](el)
	}
	if err != nil {
		return err
	}
	row.Values[c.label] = v
	return nil
}

// Sample converts row for relay publishing.
func (a *App) Sample(row Row) export.Sample {
	sample := export.Sample{
		Pid:    a.tracker.Pid(),
		Time:   row.Time,
		Values: row.Values,
		Labels: row.Labels,
	}
	for _, st := range a.statics {
		if st.label == "Application" {
			sample.Process = st.value
		}
	}
	return sample
}

// Close frees the queries and stops tracking.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.frames != nil {
		errs = append(errs, a.frames.Reset(ctx))
	}
	if a.dynamic != nil {
		errs = append(errs, a.dynamic.Reset(ctx))
	}
	errs = append(errs, a.session.Close(ctx))
	return errors.Join(errs...)
}

// newProvider builds the simulated provider. A configured introspection
// file replaces its built-in catalog.
func newProvider(cfg *config.Config, logger *log.Logger) (*sim.Provider, error) {
	opts := []sim.Option{
		sim.WithLogger(log.New(logger.Writer(), "[sim] ", logger.Flags())),
		sim.WithProcessName(session.ProcessName),
	}
	if cfg.IntrospectionFile != "" {
		data, err := os.ReadFile(cfg.IntrospectionFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read introspection file: %w", err)
		}
		tree, err := intro.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.IntrospectionFile, err)
		}
		logger.Printf("Loaded catalog from %s: %d metrics, %d devices", cfg.IntrospectionFile, len(tree.Metrics), len(tree.Devices))
		opts = append(opts, sim.WithCatalog(tree))
	}
	return sim.New(opts...), nil
}

// dumpIntrospection writes the provider's introspection tree to path in the
// format read back by newProvider.
func dumpIntrospection(ctx context.Context, provider session.Provider, path string, logger *log.Logger) error {
	s := session.New(provider, session.WithLogger(log.New(logger.Writer(), "[session] ", logger.Flags())))
	defer s.Close(ctx)

	root, err := s.Introspection(ctx)
	if err != nil {
		return err
	}
	data, err := intro.Encode(root.Tree())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write introspection dump: %w", err)
	}
	logger.Printf("Wrote introspection to %s (%d bytes)", path, len(data))
	return nil
}
