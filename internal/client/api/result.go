package api

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Kind classifies a failed API call.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindUnauthorized
	KindApplication
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindApplication:
		return "application"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrTransport   = errors.New("transport failure")
	ErrApplication = errors.New("request rejected")
	ErrDecode      = errors.New("malformed response")
)

// Error is the failure half of a Result. Message is always safe to show.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case KindTransport:
		sentinel = ErrTransport
	case KindUnauthorized:
		sentinel = common.ErrUnauthorized
	case KindApplication:
		sentinel = ErrApplication
	case KindDecode:
		sentinel = ErrDecode
	}
	out := make([]error, 0, 2)
	if sentinel != nil {
		out = append(out, sentinel)
	}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// Result is either a value or an *Error, never both.
type Result[T any] struct {
	value T
	err   *Error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](kind Kind, status int, message string, cause error) Result[T] {
	return Result[T]{err: &Error{Kind: kind, Status: status, Message: message, cause: cause}}
}

func failWith[T any](err *Error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) IsOk() bool { return r.err == nil }

func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Err() *Error { return r.err }

// Get adapts the result to the usual (value, error) pair.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
