package tripclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind string

// All fetch failure kinds.
const (
	NetworkError  ErrorKind = "network"  // request could not be sent or no response was read
	ResponseError ErrorKind = "response" // backend answered with a non-success status
	DecodeError   ErrorKind = "decode"   // body is not the expected structured data
)

// Sentinels matching each kind with errors.Is.
var (
	ErrNetwork  = errors.New("network error")
	ErrResponse = errors.New("response error")
	ErrDecode   = errors.New("decode error")
)

// FetchError is the single error type returned by the client.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int    // Set for ResponseError
	Body       string // Leading part of the response body, set for ResponseError
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch e.Kind {
	case ResponseError:
		if e.Body != "" {
			return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == NetworkError
	case ErrResponse:
		return e.Kind == ResponseError
	case ErrDecode:
		return e.Kind == DecodeError
	}
	return false
}

// KindOf returns the failure kind of err, or "" when err is not a FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
