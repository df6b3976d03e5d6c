package http

import (
	"errors"
	"strconv"
)

// Handler turns a request context into a response.
type Handler interface {
	Handle(ctx *Context) (*Response, error)
}

// HandlerFunc lets an ordinary function serve as a Handler.
type HandlerFunc func(ctx *Context) (*Response, error)

func (f HandlerFunc) Handle(ctx *Context) (*Response, error) {
	return f(ctx)
}

// Error is a handler failure that maps onto a response status. Err, when
// set, is the underlying cause.
type Error struct {
	Status  StatusCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Status.ReasonPhrase()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrNotFound         = &Error{Status: StatusNotFound}
	ErrMethodNotAllowed = &Error{Status: StatusMethodNotAllowed}
	ErrUnauthorized     = &Error{Status: StatusUnauthorized}
	ErrForbidden        = &Error{Status: StatusForbidden}
)

func NewError(status StatusCode, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return NewError(StatusBadRequest, message)
}

func Internal(message string) *Error {
	return NewError(StatusInternalServerError, message)
}

// ErrorResponse renders err as a plain text response. Errors that are not
// an *Error become 500. Server errors show only status and message, never
// the text of their cause.
func ErrorResponse(err error) *Response {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal("")
	}
	if e.Status.IsServerError() && e.Err != nil {
		e = NewError(e.Status, e.Message)
	}
	return Text(e.Status, e.Error())
}

// Text builds a text/plain response with Content-Length set.
func Text(status StatusCode, body string) *Response {
	return NewResponseBuilder().
		Status(status).
		Header(HeaderContentType, "text/plain; charset=utf-8").
		Header(HeaderContentLength, strconv.Itoa(len(body))).
		BodyString(body).
		Build()
}

// Empty builds a bodyless response.
func Empty(status StatusCode) *Response {
	b := NewResponseBuilder().Status(status)
	if status != StatusNoContent && !status.IsInformational() {
		b.Header(HeaderContentLength, "0")
	}
	return b.Build()
}
