package session

import (
	"context"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// DynamicQuery is a registered set of windowed statistics.
type DynamicQuery struct {
	session  *Session
	handle   pm.QueryHandle
	schema   *query.Schema
	windowMs float64
	offsetMs float64
}

// RegisterDynamicQuery lays out elems as a polled blob and registers it.
// When slots are given, element devices are 1-based indices into slots.
func (s *Session) RegisterDynamicQuery(ctx context.Context, elems []query.Element, windowMs, offsetMs float64, slots ...uint32) (*DynamicQuery, error) {
	if !s.Connected() {
		return nil, ErrNotConnected
	}
	root, err := s.Introspection(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := query.Build(root, elems, query.Options{Mode: query.Polled, Slots: slots})
	if err != nil {
		return nil, err
	}

	h, err := s.provider.RegisterDynamic(ctx, schema.Descriptors(), windowMs, offsetMs)
	if err != nil {
		return nil, s.fail(OpRegisterDynamic, newFailure(OpRegisterDynamic, err, s.enums), telemetry.ErrorSeverityError)
	}
	s.logger.Printf("Registered dynamic query %d: %d elements, %d byte blobs", h, len(elems), schema.BlobSize)
	s.publisher.Publish(telemetry.NewQueryRegistered("dynamic", uint64(h), len(elems), schema.BlobSize))

	return &DynamicQuery{
		session:  s,
		handle:   h,
		schema:   schema,
		windowMs: windowMs,
		offsetMs: offsetMs,
	}, nil
}

func (q *DynamicQuery) Handle() pm.QueryHandle { return q.handle }

func (q *DynamicQuery) Schema() *query.Schema { return q.schema }

func (q *DynamicQuery) WindowMs() float64 { return q.windowMs }

func (q *DynamicQuery) OffsetMs() float64 { return q.offsetMs }

func (q *DynamicQuery) BlobSize() uint64 {
	if q.schema == nil {
		return 0
	}
	return q.schema.BlobSize
}

// Empty reports whether the query has been reset.
func (q *DynamicQuery) Empty() bool { return q == nil || q.handle == 0 }

// MakeBlobContainer allocates a container of n blobs for this query.
func (q *DynamicQuery) MakeBlobContainer(n uint32) *blob.Container {
	return blob.NewContainer(q.handle, q.BlobSize(), n)
}

// Poll fills c with the current statistics for the tracked process. One
// blob is populated per swap chain the process is presenting on.
func (q *DynamicQuery) Poll(ctx context.Context, tracker *ProcessTracker, c *blob.Container) error {
	if q.Empty() {
		return ErrEmptyQuery
	}
	if tracker.Empty() {
		return ErrEmptyTracker
	}
	if !c.CheckHandle(q.handle) {
		return ErrHandleMismatch
	}
	s := q.session
	if !s.Connected() {
		return ErrNotConnected
	}

	start := time.Now()
	err := c.Fill(func(data []byte, capacity uint32) (uint32, error) {
		return s.provider.PollDynamic(ctx, q.handle, tracker.Pid(), data, capacity)
	})
	if err != nil {
		return s.fail(OpPollDynamic, newFailure(OpPollDynamic, err, s.enums), telemetry.ErrorSeverityWarning)
	}
	s.publisher.Publish(telemetry.NewPollCompleted(uint64(q.handle), tracker.Pid(), c.Populated(), time.Since(start)))
	return nil
}

// Reset frees the provider registration. The query is empty afterwards
// even if freeing fails.
func (q *DynamicQuery) Reset(ctx context.Context) error {
	if q.Empty() {
		return nil
	}
	s := q.session
	h := q.handle
	q.handle = 0
	q.schema = nil
	if !s.Connected() {
		return nil
	}
	if err := s.provider.Free(ctx, h); err != nil {
		return s.fail(OpFree, newFailure(OpFree, err, s.enums), telemetry.ErrorSeverityWarning)
	}
	return nil
}
