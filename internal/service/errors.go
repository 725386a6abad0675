package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.
type Kind int

// Failure kinds.
const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store_error"
	default:
		return "internal_error"
	}
}

// Error is returned by every ItemService operation.
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

// KindOf returns the kind of err. Errors that did not come from the service
// are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}

func invalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func notFound() *Error {
	return &Error{Kind: KindNotFound, Message: "Item not found"}
}

// storeError passes the underlying message through to the client.
func storeError(err error) *Error {
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}
