// Package session binds queries and process tracking to a telemetry
// provider. A Session caches the provider's introspection tree, registers
// dynamic and frame queries laid out by package query, and hands out
// ProcessTrackers that scope polling to one process.
//
// A Session is not safe for concurrent query calls. Poll and consume calls
// on one session must be serialized by the caller; only the introspection
// cache is safe to read from several goroutines.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/xnaught/PresentMon-sub004/pkg/enums"
	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

const defaultMaxRetries = 3

type Session struct {
	id         uuid.UUID
	provider   Provider
	logger     *log.Logger
	publisher  telemetry.TelemetryPublisher
	enums      *enums.Map
	maxRetries int
	backoff    func(attempt int) time.Duration

	validatePids bool
	pidExists    func(ctx context.Context, pid uint32) (bool, error)

	// fetchMu serializes introspection fetches. Readers load root without it.
	fetchMu sync.Mutex
	root    atomic.Pointer[intro.Root]

	trackers map[uint32]*ProcessTracker
}

type Option func(*Session)

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithPublisher(pub telemetry.TelemetryPublisher) Option {
	return func(s *Session) {
		if pub != nil {
			s.publisher = pub
		}
	}
}

// WithEnumCache shares an enum cache with other consumers. The session
// refreshes it whenever introspection is fetched.
func WithEnumCache(m *enums.Map) Option {
	return func(s *Session) {
		if m != nil {
			s.enums = m
		}
	}
}

// WithRetries sets how many attempts transient failures of tracking and
// introspection calls get, and the delay before each retry.
func WithRetries(maxAttempts int, backoff func(attempt int) time.Duration) Option {
	return func(s *Session) {
		if maxAttempts > 0 {
			s.maxRetries = maxAttempts
		}
		if backoff != nil {
			s.backoff = backoff
		}
	}
}

// WithProcessValidation makes TrackProcess check that the pid exists on
// this machine before asking the provider to track it.
func WithProcessValidation() Option {
	return func(s *Session) { s.validatePids = true }
}

// New creates a session on provider. A nil provider yields a session whose
// calls fail with ErrNotConnected.
func New(provider Provider, opts ...Option) *Session {
	s := &Session{
		id:         uuid.New(),
		provider:   provider,
		logger:     log.New(io.Discard, "[session] ", log.LstdFlags|log.Lmicroseconds),
		publisher:  telemetry.NewNoopPublisher(),
		enums:      enums.New(),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		pidExists:  processExists,
		trackers:   make(map[uint32]*ProcessTracker),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// Connected reports whether the session has a provider.
func (s *Session) Connected() bool { return s != nil && s.provider != nil }

// Enums returns the session's enum cache. It is empty until introspection
// has been fetched once.
func (s *Session) Enums() *enums.Map { return s.enums }

func (s *Session) Logger() *log.Logger { return s.logger }

func (s *Session) Publisher() telemetry.TelemetryPublisher { return s.publisher }

// Introspection returns the cached introspection root, fetching it from the
// provider on first use. Concurrent first calls share one fetch.
func (s *Session) Introspection(ctx context.Context) (*intro.Root, error) {
	if !s.Connected() {
		return nil, ErrEmptySession
	}
	if root := s.root.Load(); root != nil {
		return root, nil
	}
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	if root := s.root.Load(); root != nil {
		return root, nil
	}
	return s.fetchIntrospection(ctx)
}

// RefreshIntrospection fetches a new root and replaces the cached one.
// Readers keep getting the previous root until the fetch succeeds, and a
// failed refresh leaves it cached. Views obtained from the previous root
// remain valid but stale.
func (s *Session) RefreshIntrospection(ctx context.Context) (*intro.Root, error) {
	if !s.Connected() {
		return nil, ErrEmptySession
	}
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	return s.fetchIntrospection(ctx)
}

// fetchIntrospection must be called with s.fetchMu held.
func (s *Session) fetchIntrospection(ctx context.Context) (*intro.Root, error) {
	var tree *intro.Tree
	err := s.withRetries(ctx, OpIntrospect, func(ctx context.Context) error {
		t, err := s.provider.Introspect(ctx)
		if err != nil {
			return newFailure(OpIntrospect, err, s.enums)
		}
		tree = t
		return nil
	})
	if err != nil {
		s.fail(OpIntrospect, err, telemetry.ErrorSeverityCritical)
		return nil, err
	}

	root := intro.NewRoot(tree)
	s.enums.Refresh(root)
	s.root.Store(root)
	s.logger.Printf("Introspection loaded: %d metrics, %d devices", len(tree.Metrics), len(tree.Devices))
	s.publisher.Publish(telemetry.NewIntrospectionRefreshed(len(tree.Metrics), len(tree.Devices)))
	return root, nil
}

// SetTelemetryPollingPeriod sets how often the provider samples device
// telemetry.
func (s *Session) SetTelemetryPollingPeriod(ctx context.Context, deviceID uint32, periodMs uint32) error {
	if !s.Connected() {
		return ErrNotConnected
	}
	if err := s.provider.SetTelemetryPollingPeriod(ctx, deviceID, periodMs); err != nil {
		return s.fail(OpTelemetryPeriod, newFailure(OpTelemetryPeriod, err, s.enums), telemetry.ErrorSeverityWarning)
	}
	return nil
}

// Close stops every tracker created by the session and disconnects it.
// Queries registered through the session must be reset by their owners
// before Close.
func (s *Session) Close(ctx context.Context) error {
	if !s.Connected() {
		return nil
	}
	var firstErr error
	for _, t := range s.trackers {
		if err := t.Reset(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.provider = nil
	s.root.Store(nil)
	if firstErr != nil {
		return fmt.Errorf("failed to close session: %w", firstErr)
	}
	return nil
}

// fail logs and publishes err, returning it unchanged.
func (s *Session) fail(op Op, err error, severity telemetry.ErrorSeverity) error {
	s.logger.Printf("ERROR: %v", err)
	s.publisher.Publish(telemetry.NewProviderFailed(err, string(op), severity))
	return err
}
