package timetable

import (
	"errors"
	"fmt"
	"net"
)

// UpstreamError describes a failed call to the mobility service.
type UpstreamError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("mobility service %s: HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("mobility service %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call failed because it ran out of time.
func (e *UpstreamError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// retryable reports whether another attempt could succeed: transport
// failures and server-side errors are retried, client errors are not.
func (e *UpstreamError) retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}
