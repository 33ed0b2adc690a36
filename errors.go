package balance

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on it, typically to prompt
// for a credential instead of showing a generic failure.
type Kind int

const (
	MissingCredential Kind = iota + 1 // no secret configured for the provider
	InvalidTarget                     // the request URL could not be built
	UnexpectedStatus                  // HTTP status outside the 2xx range
	DecodingFailed                    // every schema attempt was exhausted
	EmptyResponse                     // no response at all, or a body that could not be read
	GenericMessage                    // upstream error string, surfaced verbatim
)

func (k Kind) String() string {
	switch k {
	case MissingCredential:
		return "missing credential"
	case InvalidTarget:
		return "invalid request target"
	case UnexpectedStatus:
		return "unexpected status"
	case DecodingFailed:
		return "decoding failed"
	case EmptyResponse:
		return "empty response"
	case GenericMessage:
		return "message"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels to be used with errors.Is.
var (
	ErrMissingCredential = &Error{Kind: MissingCredential}
	ErrInvalidTarget     = &Error{Kind: InvalidTarget}
	ErrUnexpectedStatus  = &Error{Kind: UnexpectedStatus}
	ErrDecodingFailed    = &Error{Kind: DecodingFailed}
	ErrEmptyResponse     = &Error{Kind: EmptyResponse}
	ErrGenericMessage    = &Error{Kind: GenericMessage}
)

// Error is the classified failure returned by every provider pipeline.
type Error struct {
	Kind     Kind
	Provider Provider
	Status   int    // HTTP status, only for UnexpectedStatus
	Message  string // diagnostic, or the upstream message for GenericMessage
	Err      error  // optional cause
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingCredential:
		return fmt.Sprintf("%s: no credential configured", e.Provider)
	case UnexpectedStatus:
		return fmt.Sprintf("%s: unexpected http status %d", e.Provider, e.Status)
	case GenericMessage:
		return e.Message
	}
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so that the sentinels above work
// regardless of provider, status or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error found in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, p Provider, format string, args ...any) *Error {
	return &Error{Kind: kind, Provider: p, Message: fmt.Sprintf(format, args...)}
}

// MissingCredentialError reports that no secret is configured for p.
func MissingCredentialError(p Provider) error { return &Error{Kind: MissingCredential, Provider: p} }

// InvalidTargetError reports that the request URL for p could not be built.
func InvalidTargetError(p Provider, err error) error {
	return &Error{Kind: InvalidTarget, Provider: p, Err: err}
}

// DecodingError reports that no schema attempt produced a usable result.
func DecodingError(p Provider, format string, args ...any) error {
	return newError(DecodingFailed, p, format, args...)
}

// MessageError surfaces an upstream supplied message verbatim.
func MessageError(p Provider, msg string) error {
	return &Error{Kind: GenericMessage, Provider: p, Message: msg}
}
