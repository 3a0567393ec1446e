package export

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/dgo/v210/protos/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/provider/sim"
)

// fakeTxn returns the queued errors in order, then succeeds.
type fakeTxn struct {
	errs     []error
	requests []*api.Request
}

func (f *fakeTxn) Do(ctx context.Context, req *api.Request) (*api.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.requests) <= len(f.errs) {
		return nil, f.errs[len(f.requests)-1]
	}
	return &api.Response{}, nil
}

func testExporter(txn *fakeTxn) *DgraphExporter {
	return &DgraphExporter{
		newTxn:     func() txnDoer { return txn },
		logger:     log.New(io.Discard, "", 0),
		maxRetries: defaultMaxRetries,
		debug:      true,
	}
}

func noRetryBackoff(t *testing.T) {
	t.Helper()
	old := retryBackoff
	retryBackoff = func(int) time.Duration { return 0 }
	t.Cleanup(func() { retryBackoff = old })
}

func TestMetricRecords(t *testing.T) {
	records := MetricRecords(intro.NewRoot(sim.Catalog()))
	if len(records) == 0 {
		t.Fatal("expected metric records")
	}

	bySymbol := make(map[string]MetricRecord)
	for _, rec := range records {
		bySymbol[rec.Symbol] = rec
	}

	power, ok := bySymbol[pm.MetricGPUPower.String()]
	if !ok {
		t.Fatalf("expected %s in records", pm.MetricGPUPower)
	}
	if len(power.Devices) != 1 || power.Devices[0] != sim.GPUDevice {
		t.Errorf("expected GPU power on device %d only, got %v", sim.GPUDevice, power.Devices)
	}
	if power.Unit != pm.UnitWatts.String() {
		t.Errorf("expected unit %s, got %s", pm.UnitWatts, power.Unit)
	}
	if len(power.Stats) == 0 {
		t.Error("expected GPU power to list stats")
	}
}

func TestUpsertRequest(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	req := upsertRequest([]MetricRecord{
		{Symbol: "PM_METRIC_GPU_POWER", Name: "GPU Power", Type: "PM_METRIC_TYPE_DYNAMIC_FRAME", Unit: "PM_UNIT_WATTS", Stats: []string{"PM_STAT_AVG"}, Devices: []uint32{1}},
		{Symbol: "PM_METRIC_APPLICATION", Name: `App "name"`, Type: "PM_METRIC_TYPE_STATIC", Unit: "PM_UNIT_DIMENSIONLESS"},
	}, now)

	if !req.CommitNow {
		t.Error("expected CommitNow upsert")
	}
	for _, want := range []string{
		`m0 as var(func: eq(metric_symbol, "PM_METRIC_GPU_POWER"))`,
		`m1 as var(func: eq(metric_symbol, "PM_METRIC_APPLICATION"))`,
	} {
		if !strings.Contains(req.Query, want) {
			t.Errorf("expected query to contain %q, got:\n%s", want, req.Query)
		}
	}

	if len(req.Mutations) != 1 {
		t.Fatalf("expected 1 mutation, got %d", len(req.Mutations))
	}
	nquads := string(req.Mutations[0].SetNquads)
	for _, want := range []string{
		`uid(m0) <metric_name> "GPU Power" .`,
		`uid(m0) <metric_stats> "PM_STAT_AVG" .`,
		`uid(m0) <metric_devices> "1" .`,
		`uid(m1) <metric_name> "App \"name\"" .`,
		`uid(m1) <last_db_update> "2026-01-02T03:04:05Z" .`,
	} {
		if !strings.Contains(nquads, want) {
			t.Errorf("expected nquads to contain %q, got:\n%s", want, nquads)
		}
	}
	if strings.Contains(nquads, "uid(m1) <metric_devices>") {
		t.Error("expected no device edges for a metric without devices")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "down"), true},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), true},
		{"exhausted", status.Error(codes.ResourceExhausted, "busy"), true},
		{"aborted", status.Error(codes.Aborted, "conflict"), false},
		{"invalid", status.Error(codes.InvalidArgument, "bad"), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDoWithRetries(t *testing.T) {
	noRetryBackoff(t)
	unavailable := status.Error(codes.Unavailable, "down")

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"first attempt", nil, 1, false},
		{"recovers", []error{unavailable, unavailable}, 3, false},
		{"exhausted", []error{unavailable, unavailable, unavailable}, 3, true},
		{"non-retryable", []error{status.Error(codes.InvalidArgument, "bad")}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := &fakeTxn{errs: tt.errs}
			e := testExporter(txn)

			_, err := e.doWithRetries(context.Background(), &api.Request{}, defaultMaxRetries)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(txn.requests) != tt.wantCalls {
				t.Errorf("expected %d attempts, got %d", tt.wantCalls, len(txn.requests))
			}
		})
	}
}

func TestExportMetrics(t *testing.T) {
	txn := &fakeTxn{}
	e := testExporter(txn)

	n, err := e.ExportMetrics(context.Background(), intro.NewRoot(sim.Catalog()))
	if err != nil {
		t.Fatalf("ExportMetrics failed: %v", err)
	}
	if n != len(sim.Catalog().Metrics) {
		t.Errorf("expected %d metrics exported, got %d", len(sim.Catalog().Metrics), n)
	}
	if len(txn.requests) != 1 {
		t.Errorf("expected a single upsert request, got %d", len(txn.requests))
	}

	empty, err := e.ExportMetrics(context.Background(), intro.NewRoot(&intro.Tree{}))
	if err != nil || empty != 0 {
		t.Errorf("expected empty export to be a no-op, got %d, %v", empty, err)
	}
}
