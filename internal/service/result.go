package service

import "encoding/json"

type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeInternal        Code = "INTERNAL"
)

type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error is the failure half of a Result.
type Error struct {
	Code    Code          `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newError(code Code, message string, details ...ErrorDetail) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// Result holds either data or an error, never both. Construct it with OK or
// Fail; the zero value is a successful result carrying the zero T.
type Result[T any] struct {
	data T
	err  *Error
}

func OK[T any](data T) Result[T] {
	return Result[T]{data: data}
}

func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = newError(CodeInternal, "unknown error")
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsOK() bool { return r.err == nil }

// Data returns the payload; it is the zero value on failure.
func (r Result[T]) Data() T { return r.data }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *Error { return r.err }

func (r Result[T]) Unwrap() (T, *Error) { return r.data, r.err }

// MarshalJSON encodes {"data": ...} on success and {"error": {...}} on failure.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(struct {
			Error *Error `json:"error"`
		}{r.err})
	}
	return json.Marshal(struct {
		Data T `json:"data"`
	}{r.data})
}

// Deleted is returned by delete operations.
type Deleted struct {
	ID string `json:"id"`
}
