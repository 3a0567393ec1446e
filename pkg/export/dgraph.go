package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/dgo/v210"
	"github.com/dgraph-io/dgo/v210/protos/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// Stores the introspected metric catalog. Metric nodes are unique by symbol
// through the @upsert index and upsert blocks, so exporting the same catalog
// twice updates nodes in place.
//
// Schema used:
//
//	metric_symbol: string @index(exact) @upsert .
//	metric_name: string .
//	metric_type: string .
//	metric_unit: string .
//	metric_stats: [string] .
//	metric_devices: [int] .
//	last_db_update: datetime .
const metricSchema = `metric_symbol: string @index(exact) @upsert .
metric_name: string .
metric_type: string .
metric_unit: string .
metric_stats: [string] .
metric_devices: [int] .
last_db_update: datetime .`

const defaultMaxRetries = 3

// txnDoer is the part of *dgo.Txn used for upserts.
type txnDoer interface {
	Do(ctx context.Context, req *api.Request) (*api.Response, error)
}

type DgraphExporter struct {
	dg         *dgo.Dgraph
	conn       *grpc.ClientConn
	newTxn     func() txnDoer
	logger     *log.Logger
	maxRetries int
	debug      bool
}

// NewDgraphExporter connects to the dgraph gRPC address (eg "localhost:9080").
func NewDgraphExporter(addr string, logger *log.Logger) (*DgraphExporter, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	dg := dgo.NewDgraphClient(api.NewDgraphClient(conn))
	return &DgraphExporter{
		dg:         dg,
		conn:       conn,
		newTxn:     func() txnDoer { return dg.NewTxn() },
		logger:     logger,
		maxRetries: defaultMaxRetries,
	}, nil
}

// SetDebug enables per-attempt retry logging.
func (e *DgraphExporter) SetDebug(debug bool) { e.debug = debug }

// Close closes the gRPC connection, call this with defer.
func (e *DgraphExporter) Close() error {
	return e.conn.Close()
}

func (e *DgraphExporter) EnsureSchema(ctx context.Context) error {
	return e.dg.Alter(ctx, &api.Operation{Schema: metricSchema})
}

// MetricRecord is the stored form of one metric descriptor.
type MetricRecord struct {
	Symbol  string
	Name    string
	Type    string
	Unit    string
	Stats   []string
	Devices []uint32
}

// MetricRecords flattens the catalog. Only devices on which the metric is
// available are listed.
func MetricRecords(root *intro.Root) []MetricRecord {
	metrics := root.Metrics()
	out := make([]MetricRecord, 0, len(metrics))
	for _, m := range metrics {
		rec := MetricRecord{
			Symbol: m.ID().String(),
			Name:   m.Name(),
			Type:   m.Type().String(),
			Unit:   m.Unit().String(),
		}
		for _, s := range m.Stats() {
			rec.Stats = append(rec.Stats, s.String())
		}
		for _, dmi := range m.DeviceInfo() {
			if dmi.Availability == pm.MetricAvailabilityAvailable {
				rec.Devices = append(rec.Devices, dmi.DeviceID)
			}
		}
		out = append(out, rec)
	}
	return out
}

// upsertRequest builds one upsert block covering every record. Record i is
// bound to variable mi; an empty variable creates a new node.
func upsertRequest(records []MetricRecord, now time.Time) *api.Request {
	var q, nquads strings.Builder
	q.WriteString("query {\n")
	for i, rec := range records {
		v := "m" + strconv.Itoa(i)
		fmt.Fprintf(&q, "  %s as var(func: eq(metric_symbol, %s))\n", v, strconv.Quote(rec.Symbol))

		subject := "uid(" + v + ")"
		fmt.Fprintf(&nquads, "%s <metric_symbol> %s .\n", subject, strconv.Quote(rec.Symbol))
		fmt.Fprintf(&nquads, "%s <metric_name> %s .\n", subject, strconv.Quote(rec.Name))
		fmt.Fprintf(&nquads, "%s <metric_type> %s .\n", subject, strconv.Quote(rec.Type))
		fmt.Fprintf(&nquads, "%s <metric_unit> %s .\n", subject, strconv.Quote(rec.Unit))
		for _, s := range rec.Stats {
			fmt.Fprintf(&nquads, "%s <metric_stats> %s .\n", subject, strconv.Quote(s))
		}
		for _, d := range rec.Devices {
			fmt.Fprintf(&nquads, "%s <metric_devices> \"%d\" .\n", subject, d)
		}
		fmt.Fprintf(&nquads, "%s <last_db_update> %q .\n", subject, now.Format(time.RFC3339))
	}
	q.WriteString("}")

	return &api.Request{
		Query:     q.String(),
		Mutations: []*api.Mutation{{SetNquads: []byte(nquads.String())}},
		CommitNow: true,
	}
}

// ExportMetrics upserts every metric in root and returns the number stored.
func (e *DgraphExporter) ExportMetrics(ctx context.Context, root *intro.Root) (int, error) {
	records := MetricRecords(root)
	if len(records) == 0 {
		return 0, nil
	}
	if _, err := e.doWithRetries(ctx, upsertRequest(records, time.Now()), e.maxRetries); err != nil {
		return 0, err
	}
	e.logger.Printf("Exported %d metric descriptors to dgraph", len(records))
	return len(records), nil
}
