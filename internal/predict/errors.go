package predict

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 2xx response whose body is not a valid result list.
var ErrMalformedResponse = errors.New("predict: malformed response")

// StatusError is a non-2xx response from /predict.
// Body is the trimmed response text, possibly empty.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error returns the server's explanation verbatim, or "HTTP <code>" when it sent none.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// TransportError is a request that could not be sent or whose response could not be read.
type TransportError struct {
	Err error
}

// Error returns the underlying fault's description, which may be empty.
func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedError describes why a success body was rejected at the trust boundary.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed response: " + e.Reason
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func malformed(format string, args ...any) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}
