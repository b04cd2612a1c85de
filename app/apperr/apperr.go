package apperr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories surfaced by the service.
type Kind string

const (
	KindInvalidURL          Kind = "invalid_url"
	KindMalformedResponse   Kind = "malformed_response"
	KindContentUnavailable  Kind = "content_unavailable"
	KindRateLimited         Kind = "rate_limited"
	KindTimeout             Kind = "timeout"
	KindTranscriptionFailed Kind = "transcription_failed"
	KindExtraction          Kind = "extraction"
	KindInternal            Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match on kind, so callers can compare against
// sentinel errors built with New.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for errors that did not
// originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// UserMessage returns the diagnostic message suitable for an HTTP error
// envelope. Foreign errors fall back to their Error() string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
