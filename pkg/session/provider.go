package session

import (
	"context"

	"github.com/xnaught/PresentMon-sub004/pkg/intro"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

// Provider is the telemetry service a Session talks to. Implementations
// report non-success statuses as *pm.StatusError; any other error is
// treated as a transport failure.
//
// Poll and Consume write whole blobs into dst, which holds capacity blobs
// back to back, and return how many they populated.
type Provider interface {
	Introspect(ctx context.Context) (*intro.Tree, error)

	StartTracking(ctx context.Context, pid uint32) error
	StopTracking(ctx context.Context, pid uint32) error

	RegisterDynamic(ctx context.Context, elems []pm.QueryElement, windowMs, offsetMs float64) (pm.QueryHandle, error)
	RegisterFrame(ctx context.Context, elems []pm.QueryElement, blobSize uint64) (pm.QueryHandle, error)
	Free(ctx context.Context, h pm.QueryHandle) error

	PollDynamic(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error)
	Consume(ctx context.Context, h pm.QueryHandle, pid uint32, dst []byte, capacity uint32) (uint32, error)
	PollStatic(ctx context.Context, elem pm.QueryElement, pid uint32, dst []byte) error

	SetTelemetryPollingPeriod(ctx context.Context, deviceID uint32, periodMs uint32) error
}
