package http

import (
	"fmt"
	"strconv"
)

// StatusCode is an HTTP status code in the range [100, 599].
//
// The named constants below are valid by construction. Codes coming from
// untrusted input should go through NewStatusCode.
type StatusCode uint16

const (
	StatusContinue           StatusCode = 100 // RFC 7231, 6.2.1
	StatusSwitchingProtocols StatusCode = 101 // RFC 7231, 6.2.2
	StatusProcessing         StatusCode = 102 // RFC 2518, 10.1
	StatusEarlyHints         StatusCode = 103 // RFC 8297

	StatusOK                   StatusCode = 200 // RFC 7231, 6.3.1
	StatusCreated              StatusCode = 201 // RFC 7231, 6.3.2
	StatusAccepted             StatusCode = 202 // RFC 7231, 6.3.3
	StatusNonAuthoritativeInfo StatusCode = 203 // RFC 7231, 6.3.4
	StatusNoContent            StatusCode = 204 // RFC 7231, 6.3.5
	StatusResetContent         StatusCode = 205 // RFC 7231, 6.3.6
	StatusPartialContent       StatusCode = 206 // RFC 7233, 4.1

	StatusMultipleChoices   StatusCode = 300 // RFC 7231, 6.4.1
	StatusMovedPermanently  StatusCode = 301 // RFC 7231, 6.4.2
	StatusFound             StatusCode = 302 // RFC 7231, 6.4.3
	StatusSeeOther          StatusCode = 303 // RFC 7231, 6.4.4
	StatusNotModified       StatusCode = 304 // RFC 7232, 4.1
	StatusTemporaryRedirect StatusCode = 307 // RFC 7231, 6.4.7
	StatusPermanentRedirect StatusCode = 308 // RFC 7538, 3

	StatusBadRequest                  StatusCode = 400 // RFC 7231, 6.5.1
	StatusUnauthorized                StatusCode = 401 // RFC 7235, 3.1
	StatusPaymentRequired             StatusCode = 402 // RFC 7231, 6.5.2
	StatusForbidden                   StatusCode = 403 // RFC 7231, 6.5.3
	StatusNotFound                    StatusCode = 404 // RFC 7231, 6.5.4
	StatusMethodNotAllowed            StatusCode = 405 // RFC 7231, 6.5.5
	StatusNotAcceptable               StatusCode = 406 // RFC 7231, 6.5.6
	StatusRequestTimeout              StatusCode = 408 // RFC 7231, 6.5.7
	StatusConflict                    StatusCode = 409 // RFC 7231, 6.5.8
	StatusGone                        StatusCode = 410 // RFC 7231, 6.5.9
	StatusUnprocessableEntity         StatusCode = 422 // RFC 4918, 11.2
	StatusTooManyRequests             StatusCode = 429 // RFC 6585, 4
	StatusRequestHeaderFieldsTooLarge StatusCode = 431 // RFC 6585, 5

	StatusInternalServerError     StatusCode = 500 // RFC 7231, 6.6.1
	StatusNotImplemented          StatusCode = 501 // RFC 7231, 6.6.2
	StatusBadGateway              StatusCode = 502 // RFC 7231, 6.6.3
	StatusServiceUnavailable      StatusCode = 503 // RFC 7231, 6.6.4
	StatusGatewayTimeout          StatusCode = 504 // RFC 7231, 6.6.5
	StatusHTTPVersionNotSupported StatusCode = 505 // RFC 7231, 6.6.6
)

const (
	minStatusCode = 100
	maxStatusCode = 599

	unknownReasonPhrase = "Unknown"
)

var reasonPhrases = [...]string{
	StatusContinue:           "Continue",
	StatusSwitchingProtocols: "Switching Protocols",
	StatusProcessing:         "Processing",
	StatusEarlyHints:         "Early Hints",

	StatusOK:                   "OK",
	StatusCreated:              "Created",
	StatusAccepted:             "Accepted",
	StatusNonAuthoritativeInfo: "Non-Authoritative Information",
	StatusNoContent:            "No Content",
	StatusResetContent:         "Reset Content",
	StatusPartialContent:       "Partial Content",

	StatusMultipleChoices:   "Multiple Choices",
	StatusMovedPermanently:  "Moved Permanently",
	StatusFound:             "Found",
	StatusSeeOther:          "See Other",
	StatusNotModified:       "Not Modified",
	StatusTemporaryRedirect: "Temporary Redirect",
	StatusPermanentRedirect: "Permanent Redirect",

	StatusBadRequest:                  "Bad Request",
	StatusUnauthorized:                "Unauthorized",
	StatusPaymentRequired:             "Payment Required",
	StatusForbidden:                   "Forbidden",
	StatusNotFound:                    "Not Found",
	StatusMethodNotAllowed:            "Method Not Allowed",
	StatusNotAcceptable:               "Not Acceptable",
	StatusRequestTimeout:              "Request Timeout",
	StatusConflict:                    "Conflict",
	StatusGone:                        "Gone",
	StatusUnprocessableEntity:         "Unprocessable Entity",
	StatusTooManyRequests:             "Too Many Requests",
	StatusRequestHeaderFieldsTooLarge: "Request Header Fields Too Large",

	StatusInternalServerError:     "Internal Server Error",
	StatusNotImplemented:          "Not Implemented",
	StatusBadGateway:              "Bad Gateway",
	StatusServiceUnavailable:      "Service Unavailable",
	StatusGatewayTimeout:          "Gateway Timeout",
	StatusHTTPVersionNotSupported: "HTTP Version Not Supported",
}

// NewStatusCode validates code and returns it as a StatusCode.
func NewStatusCode(code uint16) (StatusCode, error) {
	if code < minStatusCode || code > maxStatusCode {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStatusCode, code)
	}
	return StatusCode(code), nil
}

func (s StatusCode) Code() uint16 {
	return uint16(s)
}

// ReasonPhrase returns the canonical phrase for s, or "Unknown" when the
// code is valid but not tabulated.
func (s StatusCode) ReasonPhrase() string {
	if int(s) < len(reasonPhrases) {
		if phrase := reasonPhrases[s]; phrase != "" {
			return phrase
		}
	}
	return unknownReasonPhrase
}

func (s StatusCode) IsInformational() bool { return s >= 100 && s < 200 }
func (s StatusCode) IsSuccess() bool       { return s >= 200 && s < 300 }
func (s StatusCode) IsRedirection() bool   { return s >= 300 && s < 400 }
func (s StatusCode) IsClientError() bool   { return s >= 400 && s < 500 }
func (s StatusCode) IsServerError() bool   { return s >= 500 && s < 600 }

// IsError reports whether s is a client or server error.
func (s StatusCode) IsError() bool { return s >= 400 && s < 600 }

func (s StatusCode) String() string {
	return strconv.Itoa(int(s)) + " " + s.ReasonPhrase()
}
