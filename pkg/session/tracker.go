package session

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// ProcessTracker keeps the provider streaming telemetry for one process
// until Reset is called.
type ProcessTracker struct {
	session *Session
	pid     uint32
	active  bool
}

func (t *ProcessTracker) Pid() uint32 { return t.pid }

// Empty reports whether the tracker has been reset or was never started.
func (t *ProcessTracker) Empty() bool { return t == nil || !t.active }

// Reset stops tracking. Calling it again is a no-op.
func (t *ProcessTracker) Reset(ctx context.Context) error {
	if t.Empty() {
		return nil
	}
	s := t.session
	t.active = false
	delete(s.trackers, t.pid)
	s.publisher.Publish(telemetry.NewProcessTracked(t.pid, false))

	if !s.Connected() {
		return nil
	}
	if err := s.provider.StopTracking(ctx, t.pid); err != nil {
		return s.fail(OpStopTracking, newFailure(OpStopTracking, err, s.enums), telemetry.ErrorSeverityWarning)
	}
	s.logger.Printf("Stopped tracking pid %d", t.pid)
	return nil
}

// TrackProcess starts telemetry for pid. If the session already tracks pid,
// the existing tracker is returned.
func (s *Session) TrackProcess(ctx context.Context, pid uint32) (*ProcessTracker, error) {
	if !s.Connected() {
		return nil, ErrNotConnected
	}
	if t, ok := s.trackers[pid]; ok && !t.Empty() {
		return t, nil
	}

	if s.validatePids {
		exists, err := s.pidExists(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("failed to look up pid %d: %w", pid, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: pid %d", ErrNoSuchProcess, pid)
		}
	}

	err := s.withRetries(ctx, OpStartTracking, func(ctx context.Context) error {
		if err := s.provider.StartTracking(ctx, pid); err != nil {
			return newFailure(OpStartTracking, err, s.enums)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(OpStartTracking, err, telemetry.ErrorSeverityError)
	}

	t := &ProcessTracker{session: s, pid: pid, active: true}
	s.trackers[pid] = t
	s.logger.Printf("Tracking pid %d", pid)
	s.publisher.Publish(telemetry.NewProcessTracked(pid, true))
	return t, nil
}

func processExists(ctx context.Context, pid uint32) (bool, error) {
	return process.PidExistsWithContext(ctx, int32(pid))
}

// ProcessName returns the executable name of pid on this machine.
func ProcessName(ctx context.Context, pid uint32) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", err
	}
	return p.NameWithContext(ctx)
}
