package testutil

import (
	"context"
	"sync"

	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// MockProvider implements session.Provider. Each call is recorded; the
// matching Func field, when set, decides the result.
type MockProvider struct {
	mu sync.Mutex

	Tree *intro.Tree

	IntrospectFunc     func(ctx context.Context) (*intro.Tree, error)
	StartTrackingFunc  func(ctx context.Context, pid uint32) error
	StopTrackingFunc   func(ctx context.Context, pid uint32) error
	RegisterFunc       func(ctx context.Context, elems []pm.QueryElement) (pm.QueryHandle, error)
	FreeFunc           func(ctx context.Context, h pm.QueryHandle) error
	PollDynamicFunc    func(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error)
	ConsumeFunc        func(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error)
	PollStaticFunc     func(ctx context.Context, elem pm.QueryElement, pid uint32, dst []byte) error
	TelemetryPeriodErr error

	IntrospectCalls    int
	StartTrackingCalls []uint32
	StopTrackingCalls  []uint32
	RegisterCalls      [][]pm.QueryElement
	FrameBlobSizes     []uint64
	FreeCalls          []pm.QueryHandle
	PollDynamicCalls   int
	ConsumeCalls       int
	PollStaticCalls    []pm.QueryElement
	TelemetryPeriods   map[uint32]uint32

	nextHandle pm.QueryHandle
}

func NewMockProvider(tree *intro.Tree) *MockProvider {
	return &MockProvider{Tree: tree, TelemetryPeriods: make(map[uint32]uint32)}
}

func (m *MockProvider) Introspect(ctx context.Context) (*intro.Tree, error) {
	m.mu.Lock()
	m.IntrospectCalls++
	fn := m.IntrospectFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return m.Tree, nil
}

func (m *MockProvider) StartTracking(ctx context.Context, pid uint32) error {
	m.mu.Lock()
	m.StartTrackingCalls = append(m.StartTrackingCalls, pid)
	fn := m.StartTrackingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, pid)
	}
	return nil
}

func (m *MockProvider) StopTracking(ctx context.Context, pid uint32) error {
	m.mu.Lock()
	m.StopTrackingCalls = append(m.StopTrackingCalls, pid)
	fn := m.StopTrackingFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, pid)
	}
	return nil
}

func (m *MockProvider) register(ctx context.Context, elems []pm.QueryElement) (pm.QueryHandle, error) {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, append([]pm.QueryElement(nil), elems...))
	fn := m.RegisterFunc
	m.nextHandle++
	h := m.nextHandle
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, elems)
	}
	return h, nil
}

func (m *MockProvider) RegisterDynamic(ctx context.Context, elems []pm.QueryElement, windowMs, offsetMs float64) (pm.QueryHandle, error) {
	return m.register(ctx, elems)
}

func (m *MockProvider) RegisterFrame(ctx context.Context, elems []pm.QueryElement, blobSize uint64) (pm.QueryHandle, error) {
	m.mu.Lock()
	m.FrameBlobSizes = append(m.FrameBlobSizes, blobSize)
	m.mu.Unlock()
	return m.register(ctx, elems)
}

func (m *MockProvider) Free(ctx context.Context, h pm.QueryHandle) error {
	m.mu.Lock()
	m.FreeCalls = append(m.FreeCalls, h)
	fn := m.FreeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, h)
	}
	return nil
}

func (m *MockProvider) PollDynamic(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error) {
	m.mu.Lock()
	m.PollDynamicCalls++
	fn := m.PollDynamicFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, h, pid, dst, capacity)
	}
	return 0, nil
}

func (m *MockProvider) Consume(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error) {
	m.mu.Lock()
	m.ConsumeCalls++
	fn := m.ConsumeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, h, pid, dst, capacity)
	}
	return 0, nil
}

func (m *MockProvider) PollStatic(ctx context.Context, elem pm.QueryElement, pid uint32, dst []byte) error {
	m.mu.Lock()
	m.PollStaticCalls = append(m.PollStaticCalls, elem)
	fn := m.PollStaticFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, elem, pid, dst)
	}
	return nil
}

func (m *MockProvider) SetTelemetryPollingPeriod(ctx context.Context, deviceID uint32, periodMs uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TelemetryPeriodErr != nil {
		return m.TelemetryPeriodErr
	}
	m.TelemetryPeriods[deviceID] = periodMs
	return nil
}

// Calls returns the number of poll and consume calls made so far.
func (m *MockProvider) Calls() (polls, consumes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PollDynamicCalls, m.ConsumeCalls
}
