package session

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xnaught/PresentMon-sub004/pkg/enums"
	"github.com/xnaught/PresentMon-sub004/pkg/pm"
)

var (
	// ErrNotConnected is returned by calls made on a session that has no
	// provider or has been closed.
	ErrNotConnected = errors.New("session is not connected to a provider")

	// ErrEmptySession is the introspection flavor of ErrNotConnected.
	ErrEmptySession = fmt.Errorf("introspection call failed due to empty session object: %w", ErrNotConnected)

	ErrEmptyQuery     = errors.New("query is not registered")
	ErrEmptyTracker   = errors.New("process tracker is not active")
	ErrHandleMismatch = errors.New("blob container was made for a different query")
	ErrNoSuchProcess  = errors.New("process does not exist")
	ErrNotStatic      = errors.New("metric is not static")
)

// Op names a provider call.
type Op string

const (
	OpIntrospect      Op = "introspect"
	OpStartTracking   Op = "start_tracking"
	OpStopTracking    Op = "stop_tracking"
	OpRegisterDynamic Op = "register_dynamic"
	OpRegisterFrame   Op = "register_frame"
	OpFree            Op = "free"
	OpPollDynamic     Op = "dynamic_poll"
	OpConsume         Op = "consume"
	OpPollStatic      Op = "static_poll"
	OpTelemetryPeriod Op = "telemetry_period"
)

var failureText = map[Op]string{
	OpIntrospect:      "introspection call failed",
	OpStartTracking:   "start tracking call failed",
	OpStopTracking:    "stop tracking call failed",
	OpRegisterDynamic: "dynamic query register call failed",
	OpRegisterFrame:   "register frame query call failed",
	OpFree:            "free query call failed",
	OpPollDynamic:     "dynamic poll call failed",
	OpConsume:         "consume frame call failed",
	OpPollStatic:      "static poll call failed",
	OpTelemetryPeriod: "set telemetry polling period call failed",
}

func (o Op) FailureText() string {
	if s, ok := failureText[o]; ok {
		return s
	}
	return string(o) + " call failed"
}

// ProviderCallFailure reports a provider call that did not succeed. Name
// and Description are filled from the status enum when the session's enum
// cache knows the status; otherwise only the numeric code is reported.
type ProviderCallFailure struct {
	Op          Op
	Status      pm.Status
	Name        string
	Description string
	Err         error
}

func newFailure(op Op, err error, cache *enums.Map) *ProviderCallFailure {
	f := &ProviderCallFailure{Op: op, Status: pm.StatusFailure, Err: err}
	var se *pm.StatusError
	if errors.As(err, &se) {
		f.Status = se.Status
		if key, ok := cache.Key(pm.EnumStatus, int32(se.Status)); ok {
			f.Name = key.Name
			f.Description = key.Description
		}
	}
	return f
}

func (f *ProviderCallFailure) Error() string {
	text := f.Op.FailureText()
	var se *pm.StatusError
	switch {
	case f.Name != "" && f.Description != "":
		return fmt.Sprintf("%s: %s (%s)", text, f.Name, f.Description)
	case f.Name != "":
		return fmt.Sprintf("%s: %s", text, f.Name)
	case errors.As(f.Err, &se):
		return fmt.Sprintf("%s: status code %d", text, int32(f.Status))
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", text, f.Err)
	default:
		return text
	}
}

func (f *ProviderCallFailure) Unwrap() error { return f.Err }

// Code maps the failure onto a gRPC status code.
func (f *ProviderCallFailure) Code() codes.Code {
	switch {
	case errors.Is(f.Err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(f.Err, context.Canceled):
		return codes.Canceled
	}
	var se *pm.StatusError
	if !errors.As(f.Err, &se) {
		return codes.Unavailable
	}
	switch f.Status {
	case pm.StatusPipeError, pm.StatusServiceError:
		return codes.Unavailable
	case pm.StatusInsufficientBuffer:
		return codes.ResourceExhausted
	case pm.StatusBadArgument, pm.StatusInvalidPid, pm.StatusInvalidAdapterID,
		pm.StatusOutOfRange, pm.StatusInvalidEtlFile, pm.StatusNonexistentFilePath:
		return codes.InvalidArgument
	case pm.StatusBadHandle:
		return codes.NotFound
	case pm.StatusAlreadyTrackingProcess:
		return codes.AlreadyExists
	case pm.StatusSessionNotOpen, pm.StatusMiddlewareMissingPath, pm.StatusMiddlewareInvalidSignature,
		pm.StatusMiddlewareMissingEndpoint, pm.StatusMiddlewareVersionLow, pm.StatusMiddlewareVersionHigh,
		pm.StatusMiddlewareServiceMismatch, pm.StatusUnableToCreateNsm:
		return codes.FailedPrecondition
	default:
		return codes.Unknown
	}
}

// GRPCStatus lets status.FromError and status.Code classify the failure.
func (f *ProviderCallFailure) GRPCStatus() *status.Status {
	return status.New(f.Code(), f.Error())
}

// Transient reports whether retrying the call may succeed.
func (f *ProviderCallFailure) Transient() bool {
	return isTransient(f)
}

func isTransient(err error) bool {
	switch status.Code(err) {
	case codes.DeadlineExceeded, codes.Unavailable, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}
