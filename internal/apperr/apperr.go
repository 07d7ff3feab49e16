// Package apperr defines the error taxonomy shared by the stores, the
// services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error. Callers match kinds with errors.Is against the
// sentinel values below.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "internal"
	}
}

var (
	ErrValidation       = &Error{kind: KindValidation, code: "VALIDATION_FAILED", msg: "validation error"}
	ErrNotFound         = &Error{kind: KindNotFound, code: "NOT_FOUND", msg: "resource not found"}
	ErrStoreUnavailable = &Error{kind: KindStoreUnavailable, code: "STORE_UNAVAILABLE", msg: "store unavailable"}
)

// FieldError describes one failed field of a validated struct.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	kind    Kind
	code    string
	msg     string
	details []FieldError
	parent  error
}

func New(kind Kind, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func Validation(code, msg string) *Error {
	return New(KindValidation, code, msg)
}

func NotFound(code, msg string) *Error {
	return New(KindNotFound, code, msg)
}

// StoreUnavailable wraps a failure of a persistence backend.
func StoreUnavailable(op string, parent error) *Error {
	return &Error{
		kind:   KindStoreUnavailable,
		code:   ErrStoreUnavailable.code,
		msg:    fmt.Sprintf("%s: store unavailable", op),
		parent: parent,
	}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("code=%s, msg=%s, parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("code=%s, msg=%s", e.code, e.msg)
}

func (e *Error) Unwrap() error { return e.parent }

// Is matches the bare kind sentinels (ErrValidation, ErrNotFound,
// ErrStoreUnavailable) on kind alone. Any other *Error target matches only
// when kind and code are both equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if isKindSentinel(t) {
		return e.kind == t.kind
	}
	return e.kind == t.kind && e.code == t.code
}

func isKindSentinel(t *Error) bool {
	return t == ErrValidation || t == ErrNotFound || t == ErrStoreUnavailable
}

// Wrap returns a copy of e carrying parent as its cause.
func (e *Error) Wrap(parent error) *Error {
	c := *e
	c.parent = parent
	return &c
}

// WithDetails returns a copy of e carrying per-field details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	c := *e
	c.details = append([]FieldError(nil), details...)
	return &c
}

func (e *Error) Kind() Kind            { return e.kind }
func (e *Error) Code() string          { return e.code }
func (e *Error) Msg() string           { return e.msg }
func (e *Error) Details() []FieldError { return e.details }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}
