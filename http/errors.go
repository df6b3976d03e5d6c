package http

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidHeaderName  = errors.New("http: invalid header name")
	ErrInvalidHeaderValue = errors.New("http: invalid header value")
	ErrInvalidMethod      = errors.New("http: invalid method")
	ErrInvalidStatusCode  = errors.New("http: invalid status code")
	ErrIncomplete         = errors.New("http: incomplete request")
	ErrTooManyHeaders     = errors.New("http: too many headers")
)

// HeaderError is returned when a header name or value fails validation.
// Err is ErrInvalidHeaderName or ErrInvalidHeaderValue.
type HeaderError struct {
	Name string
	Err  error
}

func (e *HeaderError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + strconv.Quote(e.Name)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// MethodError reports a request-line method outside the known set.
type MethodError struct {
	Token string
}

func (e *MethodError) Error() string {
	return ErrInvalidMethod.Error() + ": " + strconv.Quote(e.Token)
}

func (e *MethodError) Is(target error) bool {
	return target == ErrInvalidMethod
}

// ParseError reports a malformed request head.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "http: parse error: " + e.Msg + ": " + e.Err.Error()
	}
	return "http: parse error: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
