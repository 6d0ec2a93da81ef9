package client

import (
	"fmt"
)

// RequestError reports a non-2xx response from a reporting endpoint. The
// original status and body are kept for diagnosis.
type RequestError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

// TokenError reports that a valid bearer token could not be established
// before a reporting call.
type TokenError struct {
	Err error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("establishing bearer token: %v", e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed time filter string.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time filter %q: want an epoch value, \"now\" or -<N><minute|hour|day|week>", e.Input)
}
