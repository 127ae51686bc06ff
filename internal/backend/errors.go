package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoTripID is returned when a save succeeds but the response names no trip.
var ErrNoTripID = errors.New("backend: save trip returned no trip id")

// Error is a transport failure: the request could not be sent, or the
// backend answered with a non-success status or an unreadable body.
type Error struct {
	Op         string
	StatusCode int // zero for network-level failures
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.StatusCode == http.StatusNotFound
}

func statusError(op string, status int, body string) *Error {
	return &Error{
		Op:         op,
		StatusCode: status,
		Body:       body,
		Err:        fmt.Errorf("%s failed: %s", op, http.StatusText(status)),
	}
}
