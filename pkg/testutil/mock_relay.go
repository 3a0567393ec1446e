package testutil

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// MockRelay is a reusable mock that implements export.Relay for tests.
type MockRelay struct {
	QuerySyncReturn []*nostr.Event
	QuerySyncError  error
	PublishError    error
	CloseError      error

	QuerySyncCalls []nostr.Filter
	PublishCalls   []nostr.Event
	CloseCalled    bool
}

func (m *MockRelay) QuerySync(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	m.QuerySyncCalls = append(m.QuerySyncCalls, filter)
	return m.QuerySyncReturn, m.QuerySyncError
}

func (m *MockRelay) Publish(ctx context.Context, event nostr.Event) error {
	m.PublishCalls = append(m.PublishCalls, event)
	return m.PublishError
}

func (m *MockRelay) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
