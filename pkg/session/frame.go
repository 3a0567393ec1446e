package session

import (
	"context"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/blob"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
	"github.com/xnaught/PresentMon-sub004/pkg/query"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// FrameQuery is a registered per-frame query. Each consumed blob is one
// frame event.
type FrameQuery struct {
	session *Session
	handle  pm.QueryHandle
	schema  *query.Schema
}

// RegisterFrameQuery lays out elems as a frame blob and registers it.
func (s *Session) RegisterFrameQuery(ctx context.Context, elems []query.Element, slots ...uint32) (*FrameQuery, error) {
	if !s.Connected() {
		return nil, ErrNotConnected
	}
	root, err := s.Introspection(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := query.Build(root, elems, query.Options{Mode: query.Frame, Slots: slots})
	if err != nil {
		return nil, err
	}

	h, err := s.provider.RegisterFrame(ctx, schema.Descriptors(), schema.BlobSize)
	if err != nil {
		return nil, s.fail(OpRegisterFrame, newFailure(OpRegisterFrame, err, s.enums), telemetry.ErrorSeverityError)
	}
	s.logger.Printf("Registered frame query %d: %d elements, %d byte blobs", h, len(elems), schema.BlobSize)
	s.publisher.Publish(telemetry.NewQueryRegistered("frame", uint64(h), len(elems), schema.BlobSize))

	return &FrameQuery{session: s, handle: h, schema: schema}, nil
}

func (q *FrameQuery) Handle() pm.QueryHandle { return q.handle }

func (q *FrameQuery) Schema() *query.Schema { return q.schema }

func (q *FrameQuery) BlobSize() uint64 {
	if q.schema == nil {
		return 0
	}
	return q.schema.BlobSize
}

func (q *FrameQuery) Empty() bool { return q == nil || q.handle == 0 }

func (q *FrameQuery) MakeBlobContainer(n uint32) *blob.Container {
	return blob.NewContainer(q.handle, q.BlobSize(), n)
}

// Consume moves up to c.Capacity() queued frames into c.
func (q *FrameQuery) Consume(ctx context.Context, tracker *ProcessTracker, c *blob.Container) error {
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
		return s.provider.Consume(ctx, q.handle, tracker.Pid(), data, capacity)
	})
	if err != nil {
		return s.fail(OpConsume, newFailure(OpConsume, err, s.enums), telemetry.ErrorSeverityWarning)
	}
	s.publisher.Publish(telemetry.NewFramesConsumed(uint64(q.handle), tracker.Pid(), c.Populated(), time.Since(start)))
	return nil
}

// ForEachConsume consumes repeatedly while the container comes back full,
// calling fn on every populated blob. It returns the number of frames
// handed to fn.
func (q *FrameQuery) ForEachConsume(ctx context.Context, tracker *ProcessTracker, c *blob.Container, fn func(i int, b blob.Buffer)) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if err := q.Consume(ctx, tracker, c); err != nil {
			return total, err
		}
		for i, b := range c.All() {
			fn(i, b)
			total++
		}
		if c.Populated() == 0 || !c.AllPopulated() {
			return total, nil
		}
	}
}

func (q *FrameQuery) Reset(ctx context.Context) error {
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
