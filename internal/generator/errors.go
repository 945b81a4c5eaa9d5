package generator

import (
	"errors"
	"fmt"
)

// failure class of a generation error
type Kind string

const (
	KindInput     Kind = "input"      // prompt missing, too short or too long
	KindConfig    Kind = "config"     // missing or rejected API key
	KindRateLimit Kind = "rate_limit" // upstream answered 429
	KindUpstream  Kind = "upstream"   // 5xx, timeout, transport failure or empty response
	KindContent   Kind = "content"    // extracted code failed validation
	KindProvider  Kind = "provider"   // provider error with no usable content
	KindAPI       Kind = "api"        // any other non-2xx upstream status
	KindCanceled  Kind = "canceled"   // caller went away
)

type Error struct {
	Kind       Kind
	Message    string
	StatusCode int // upstream HTTP status, when there was one
	Attempts   int // attempts made before giving up
	Details    []string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// true when err is a generation error of the given kind
func IsKind(err error, kind Kind) bool {
	var genErr *Error
	return errors.As(err, &genErr) && genErr.Kind == kind
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
