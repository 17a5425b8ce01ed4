package crypto

import (
	"errors"
	"fmt"
)

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind (or the matching sentinel via errors.Is)
// rather than on error strings.
type Kind string

const (
	KindInvalidParameter Kind = "InvalidParameter"
	KindUnexpected       Kind = "Unexpected"
	KindFailure          Kind = "Failure"
	KindBufferTooSmall   Kind = "BufferTooSmall"
	KindVerifyFailed     Kind = "VerifyFailed"
	KindUnsupported      Kind = "Unsupported"
)

// Sentinels matched by errors.Is against any *Error of the same Kind.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnexpected       = errors.New("unexpected error")
	ErrFailure          = errors.New("crypto provider failure")
	ErrBufferTooSmall   = errors.New("buffer too small")
	ErrVerifyFailed     = errors.New("signature verification failed")
	ErrUnsupported      = errors.New("unsupported")
)

func sentinel(kind Kind) error {
	switch kind {
	case KindInvalidParameter:
		return ErrInvalidParameter
	case KindFailure:
		return ErrFailure
	case KindBufferTooSmall:
		return ErrBufferTooSmall
	case KindVerifyFailed:
		return ErrVerifyFailed
	case KindUnsupported:
		return ErrUnsupported
	default:
		return ErrUnexpected
	}
}

// Error is the structured error returned by every operation of the layer.
//
// Required is only meaningful for KindBufferTooSmall: it carries the buffer
// size the caller must supply on retry.
type Error struct {
	Kind     Kind
	Op       string
	Required int
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := sentinel(e.Kind).Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Kind == KindBufferTooSmall {
		msg = fmt.Sprintf("%s (required %d bytes)", msg, e.Required)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel of the error's Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == sentinel(e.Kind)
}

// NewError returns an *Error of the given kind for operation op.
func NewError(kind Kind, op string, cause error) error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// InvalidParameter is shorthand for a KindInvalidParameter error with a message.
func InvalidParameter(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidParameter, Op: op, Err: fmt.Errorf(format, args...)}
}

// BufferTooSmall returns the size-negotiation signal carrying the required size.
func BufferTooSmall(op string, required int) error {
	return &Error{Kind: KindBufferTooSmall, Op: op, Required: required}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RequiredSize extracts the required buffer size from a BufferTooSmall error.
func RequiredSize(err error) (int, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindBufferTooSmall {
		return 0, false
	}
	return e.Required, true
}
