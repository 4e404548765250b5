package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork is matched by every NetworkError.
	ErrNetwork = errors.New("network error")

	// ErrNotHTML indicates the response is not an HTML document.
	ErrNotHTML = errors.New("response is not HTML")
)

// NetworkError reports a failed fetch.
type NetworkError struct {
	// URL is the requested URL.
	URL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}
