package midtrans

import (
	"errors"
	"fmt"
)

// Kind classifies every failure returned by this package.
type Kind int

const (
	KindConfiguration Kind = iota + 1
	KindValidation
	KindMalformedInput
	KindTransport
	KindAPI
	KindInvalidSignature
	KindVerification
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindMalformedInput:
		return "malformed_input"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindInvalidSignature:
		return "invalid_signature"
	case KindVerification:
		return "verification"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrConfiguration    = &Error{Kind: KindConfiguration}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrMalformedInput   = &Error{Kind: KindMalformedInput}
	ErrTransport        = &Error{Kind: KindTransport}
	ErrAPI              = &Error{Kind: KindAPI}
	ErrInvalidSignature = &Error{Kind: KindInvalidSignature}
	ErrVerification     = &Error{Kind: KindVerification}
)

// Error is the single error type produced by the SDK.
//
// HTTPStatusCode is zero when no status applies. APIResponse holds the decoded
// upstream body when it was JSON; RawBody always holds the bytes as received.
type Error struct {
	Kind           Kind
	Message        string
	HTTPStatusCode int
	APIResponse    Payload
	RawBody        []byte
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind != KindAPI {
		return fmt.Sprintf("midtrans: %s: %v", e.Message, e.Err)
	}
	return "midtrans: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel (or any *Error) of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}
