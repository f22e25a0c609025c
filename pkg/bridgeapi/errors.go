package bridgeapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRequestFailed matches every failure returned by this package: transport
// errors, non-success statuses and undecodable bodies alike.
var ErrRequestFailed = errors.New("bridge request failed")

// StatusError reports a response whose status code is outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	snippet := strings.TrimSpace(string(e.Body))
	if len(snippet) > 512 {
		snippet = snippet[:512] + "..."
	}
	if snippet == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, snippet)
}

// RequestError carries the path of the failed call and the underlying cause
// untouched. errors.Unwrap returns the cause as produced by the HTTP client.
type RequestError struct {
	Path string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: GET %s: %v", ErrRequestFailed, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is reports ErrRequestFailed as matching.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

func requestFailed(path string, err error) error {
	return &RequestError{Path: path, Err: err}
}
