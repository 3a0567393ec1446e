package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rivo/tview"

	"github.com/xnaught/PresentMon-sub004/pkg/config"
	"github.com/xnaught/PresentMon-sub004/pkg/export"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/provider/sim"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
	"github.com/xnaught/PresentMon-sub004/pkg/testutil"
)

const testPid = 4242

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubReader struct{ snapshot telemetry.Snapshot }

func (r stubReader) Snapshot() telemetry.Snapshot { return r.snapshot }

type fakePoller struct {
	mu    sync.Mutex
	calls int
	row   Row
	err   error
}

func (p *fakePoller) Poll(ctx context.Context) (Row, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.row, p.err
}

func (p *fakePoller) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testConfig(frameCapacity int) *config.Config {
	return &config.Config{
		Pid: testPid,
		Query: config.QueryConfig{
			WindowMs:       config.DefaultWindowMs,
			MetricOffsetMs: config.DefaultMetricOffsetMs,
			PollIntervalMs: config.DefaultPollIntervalMs,
			FrameCapacity:  frameCapacity,
			GPUDeviceID:    sim.GPUDevice,
		},
		TelemetryPeriodMs: config.DefaultTelemetryPeriodMs,
	}
}

func newTestApp(t *testing.T, frameCapacity int) (*App, *sim.Provider, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	provider := sim.New(sim.WithClock(clock.Now))
	logger := log.New(io.Discard, "", 0)

	app, err := NewApp(context.Background(), testConfig(frameCapacity), provider, telemetry.NewNoopPublisher(), logger)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	t.Cleanup(func() { app.Close(context.Background()) })
	return app, provider, clock
}

func TestAppPoll(t *testing.T) {
	app, _, clock := newTestApp(t, 4)
	clock.Advance(time.Second)

	row, err := app.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if w, ok := row.Values["GPU W"]; !ok || w < 100 || w > 200 {
		t.Errorf("expected GPU power near 150W, got %v (present %v)", w, ok)
	}
	if fps := row.Values["FPS"]; fps <= 0 {
		t.Errorf("expected positive FPS, got %v", fps)
	}
	if ghz, ok := row.Values["GPU GHz"]; !ok || ghz <= 0 || ghz > 10 {
		t.Errorf("expected GPU frequency in GHz, got %v", ghz)
	}
	if mode := row.Labels["Present Mode"]; mode != "Hardware: Independent Flip" {
		t.Errorf("expected present mode name, got %q", mode)
	}
	if len(row.Missing) != 1 || row.Missing[0] != "Mem V" {
		t.Errorf("expected only Mem V to be unavailable, got %v", row.Missing)
	}
	if row.Frames == 0 {
		t.Error("expected frames to be consumed")
	}
	if row.MaxFrameMs <= 0 {
		t.Errorf("expected max frame time, got %v", row.MaxFrameMs)
	}

	// everything already consumed
	row, err = app.Poll(context.Background())
	if err != nil {
		t.Fatalf("second Poll failed: %v", err)
	}
	if row.Frames != 0 {
		t.Errorf("expected no new frames without clock movement, got %d", row.Frames)
	}
}

func TestAppStatics(t *testing.T) {
	app, _, _ := newTestApp(t, 0)

	got := make(map[string]string)
	for _, st := range app.statics {
		got[st.label] = st.value
	}
	if got["Application"] != "Presenter.exe" {
		t.Errorf("expected application name, got %q", got["Application"])
	}
	if got["GPU"] != sim.GPUName {
		t.Errorf("expected GPU name %q, got %q", sim.GPUName, got["GPU"])
	}
	if app.Pid() != testPid {
		t.Errorf("expected pid %d, got %d", testPid, app.Pid())
	}
	if app.frames != nil {
		t.Error("expected no frame container when capacity is 0")
	}
}

func TestAppTrackFailure(t *testing.T) {
	provider := sim.New()
	provider.FailNext(sim.OpStartTracking, pm.StatusInvalidPid)

	_, err := NewApp(context.Background(), testConfig(0), provider, telemetry.NewNoopPublisher(), log.New(io.Discard, "", 0))
	if err == nil {
		t.Fatal("expected error when tracking fails")
	}
	if !strings.Contains(err.Error(), "failed to track process 4242") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAppRelayPublish(t *testing.T) {
	app, _, clock := newTestApp(t, 0)
	relay := &testutil.MockRelay{}
	kp, err := export.DeriveKeyPair(testutil.TestSKHex)
	if err != nil {
		t.Fatalf("DeriveKeyPair failed: %v", err)
	}
	app.SetRelay(export.NewRelayPublisher(relay, *kp, app.Session().ID().String()))

	clock.Advance(time.Second)
	if _, err := app.Poll(context.Background()); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}

	if len(relay.PublishCalls) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(relay.PublishCalls))
	}
	ev := relay.PublishCalls[0]
	if ev.PubKey != testutil.TestPKHex {
		t.Errorf("expected pubkey %s, got %s", testutil.TestPKHex, ev.PubKey)
	}
	var sample export.Sample
	if err := json.Unmarshal([]byte(ev.Content), &sample); err != nil {
		t.Fatalf("failed to decode content: %v", err)
	}
	if sample.Pid != testPid || sample.Process != "Presenter.exe" {
		t.Errorf("unexpected sample identity: pid %d process %q", sample.Pid, sample.Process)
	}
	if _, ok := sample.Values["GPU W"]; !ok {
		t.Error("expected GPU W in published values")
	}
}

func TestFormatRow(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		expected string
	}{
		{
			name:     "empty",
			row:      Row{},
			expected: "no data in window",
		},
		{
			name: "column order",
			row: Row{
				Values: map[string]float64{"GPU W": 151.234, "FPS": 60},
				Labels: map[string]string{"Present Mode": "Composed: Flip"},
			},
			expected: `FPS=60.00 GPU W=151.23 Present Mode="Composed: Flip"`,
		},
		{
			name: "frames and missing",
			row: Row{
				Values:     map[string]float64{"FPS": 30},
				Frames:     12,
				MaxFrameMs: 40.5,
				Missing:    []string{"Mem V", "Fan 1 RPM"},
			},
			expected: "FPS=30.00 frames=12 max_frame_ms=40.50 unavailable=Fan 1 RPM,Mem V",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRow(tt.row); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestShouldPrintStatus(t *testing.T) {
	tests := []struct {
		name     string
		last     telemetry.Snapshot
		current  telemetry.Snapshot
		expected bool
	}{
		{"first status", telemetry.Snapshot{}, telemetry.Snapshot{}, true},
		{"unchanged", telemetry.Snapshot{PollsTotal: 5}, telemetry.Snapshot{PollsTotal: 5}, false},
		{"new polls", telemetry.Snapshot{PollsTotal: 5}, telemetry.Snapshot{PollsTotal: 6}, true},
		{"new errors", telemetry.Snapshot{PollsTotal: 5}, telemetry.Snapshot{PollsTotal: 5, ErrorsTotal: 1}, true},
		{"pid set changed", telemetry.Snapshot{PollsTotal: 5}, telemetry.Snapshot{PollsTotal: 5, TrackedPids: []uint32{1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{lastSnapshot: tt.last}
			if got := c.shouldPrintStatus(tt.current); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCLIRun(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := log.New(&lockedWriter{w: &buf, mu: &mu}, "", 0)
	source := &fakePoller{row: Row{Values: map[string]float64{"FPS": 60}}}

	cli := NewCLI(source, stubReader{}, 5*time.Millisecond, logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for source.Calls() < 2 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for polls")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	if !strings.Contains(out, "FPS=60.00") {
		t.Errorf("expected formatted row in output, got %q", out)
	}
	if !strings.Contains(out, "Shutting down...") {
		t.Errorf("expected shutdown message, got %q", out)
	}
}

func TestCLIPollError(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logger := log.New(&lockedWriter{w: &buf, mu: &mu}, "", 0)
	source := &fakePoller{err: errors.New("dynamic poll call failed: PM_STATUS_SERVICE_ERROR")}

	cli := NewCLI(source, stubReader{}, 5*time.Millisecond, logger)
	done := make(chan error, 1)
	go func() { done <- cli.Run(context.Background()) }()

	deadline := time.After(2 * time.Second)
	for source.Calls() < 1 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for poll")
		case <-time.After(time.Millisecond):
		}
	}
	cli.Stop()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(buf.String(), "ERROR: dynamic poll call failed") {
		t.Errorf("expected error to be logged, got %q", buf.String())
	}
}

type lockedWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func TestWatchViewDraw(t *testing.T) {
	source := &fakePoller{row: Row{
		Values:  map[string]float64{"FPS": 59.94},
		Labels:  map[string]string{"Present Mode": "Hardware: Independent Flip"},
		Missing: []string{"Mem V"},
	}}
	reader := stubReader{snapshot: telemetry.Snapshot{PollsTotal: 3, FramesTotal: 180}}
	statics := []staticLine{{label: "Application", value: "Presenter.exe"}}

	ui := NewWatchView(tview.NewApplication(), source, reader, statics, testPid, time.Second)
	ui.Refresh(context.Background())
	ui.draw()

	cellText := func(label string) string {
		for i, c := range defaultColumns {
			if c.label == label {
				return ui.table.GetCell(i, 1).Text
			}
		}
		t.Fatalf("no column %q", label)
		return ""
	}
	if got := cellText("FPS"); got != "59.94" {
		t.Errorf("expected FPS cell 59.94, got %q", got)
	}
	if got := cellText("Present Mode"); got != "Hardware: Independent Flip" {
		t.Errorf("expected present mode cell, got %q", got)
	}
	if got := cellText("Mem V"); got != "n/a" {
		t.Errorf("expected n/a for unavailable column, got %q", got)
	}
	if got := cellText("GPU W"); got != "-" {
		t.Errorf("expected placeholder for empty column, got %q", got)
	}
	if status := ui.status.GetText(true); !strings.Contains(status, "polls 3") {
		t.Errorf("expected poll count in status, got %q", status)
	}

	source.err = errors.New("boom")
	ui.Refresh(context.Background())
	ui.draw()
	if status := ui.status.GetText(true); !strings.Contains(status, "boom") {
		t.Errorf("expected error in status, got %q", status)
	}
	if got := cellText("FPS"); got != "59.94" {
		t.Errorf("expected last good row to stay on screen, got %q", got)
	}
}

func TestHeaderText(t *testing.T) {
	got := headerText([]staticLine{{"Application", "Game.exe"}, {"GPU", "Arc"}}, 7)
	for _, want := range []string{"pid [green]7[-]", "Application: [green]Game.exe[-]", "GPU: [green]Arc[-]"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in header %q", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("expected no trailing newline")
	}
}

func TestRunDumpIntrospection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.msgpack")
	cfg := testConfig(0)
	cfg.DumpIntrospection = path

	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected dump at %s: %v", path, err)
	}
	tree, err := intro.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := sim.Catalog()
	if len(tree.Metrics) != len(want.Metrics) || len(tree.Devices) != len(want.Devices) {
		t.Errorf("expected %d metrics and %d devices, got %d and %d",
			len(want.Metrics), len(want.Devices), len(tree.Metrics), len(tree.Devices))
	}
}

func TestNewProviderIntrospectionFile(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	dir := t.TempDir()

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
	good := filepath.Join(dir, "captured.msgpack")
	if err := os.WriteFile(good, data, 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(dir, "corrupt.msgpack")
	if err := os.WriteFile(corrupt, []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("loads catalog", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.IntrospectionFile = good
		provider, err := newProvider(cfg, logger)
		if err != nil {
			t.Fatalf("newProvider failed: %v", err)
		}

		dump := filepath.Join(dir, "dump.msgpack")
		if err := dumpIntrospection(context.Background(), provider, dump, logger); err != nil {
			t.Fatalf("dumpIntrospection failed: %v", err)
		}
		out, err := os.ReadFile(dump)
		if err != nil {
			t.Fatal(err)
		}
		tree, err := intro.Decode(out)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		gpu, err := intro.NewRoot(tree).FindDevice(sim.GPUDevice)
		if err != nil {
			t.Fatalf("FindDevice failed: %v", err)
		}
		if gpu.Name() != "Captured Adapter" {
			t.Errorf("expected the loaded catalog to be served, got %q", gpu.Name())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.IntrospectionFile = filepath.Join(dir, "absent.msgpack")
		if _, err := newProvider(cfg, logger); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		cfg := testConfig(0)
		cfg.IntrospectionFile = corrupt
		if _, err := newProvider(cfg, logger); err == nil || !strings.Contains(err.Error(), "decode introspection") {
			t.Errorf("expected a decode error, got %v", err)
		}
	})
}
