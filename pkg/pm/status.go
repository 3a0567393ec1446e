package pm

import "fmt"

// StatusError is the error form of a non-success Status, as returned by
// providers.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned %s", e.Status)
}

// Err returns nil for StatusSuccess and a *StatusError otherwise.
func (s Status) Err() error {
	if s == StatusSuccess {
		return nil
	}
	return &StatusError{Status: s}
}
