package http

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	crlf       = []byte("\r\n")
	colonSpace = []byte(": ")
)

// Response is a complete HTTP response ready to be serialized.
type Response struct {
	Status  StatusCode
	Version Version
	Headers Headers
	Body    []byte
}

// NewResponse builds an HTTP/1.1 response holding a copy of headers.
func NewResponse(status StatusCode, headers Headers, body []byte) *Response {
	return newResponse(status, headers.Clone(), body)
}

func newResponse(status StatusCode, headers Headers, body []byte) *Response {
	if body == nil {
		body = []byte{}
	}
	return &Response{
		Status:  status,
		Version: HTTP11,
		Headers: headers,
		Body:    body,
	}
}

// Clone returns a copy of res whose headers can be changed without
// affecting res. The body is shared and must not be modified in place.
func (res *Response) Clone() *Response {
	c := *res
	c.Headers = res.Headers.Clone()
	return &c
}

// WriteTo writes the status line, headers, blank line and body to w.
// Content-Length is only sent if the caller set it.
func (res *Response) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(cw, DefaultWriteBufferSize)

	bw.WriteString(res.Version.String())
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(int(res.Status)))
	bw.WriteByte(' ')
	bw.WriteString(res.Status.ReasonPhrase())
	bw.Write(crlf)

	for name, value := range res.Headers.All() {
		bw.WriteString(name.String())
		bw.Write(colonSpace)
		bw.WriteString(value.String())
		bw.Write(crlf)
	}
	bw.Write(crlf)
	bw.Write(res.Body)

	// bufio.Writer keeps the first error and reports it on Flush.
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("http: write response: %w", err)
	}
	return cw.n, nil
}

// Bytes returns the wire form of the response.
func (res *Response) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 + len(res.Body))
	if _, err := res.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// ResponseBuilder accumulates a status, headers and body. Header never
// fails: an invalid header is left out and its error kept for Err.
type ResponseBuilder struct {
	status  StatusCode
	headers Headers
	body    []byte
	errs    []error
}

func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{
		status:  StatusOK,
		headers: NewHeaders(4),
	}
}

func (b *ResponseBuilder) Status(status StatusCode) *ResponseBuilder {
	b.status = status
	return b
}

func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	if err := b.headers.Insert(name, value); err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

func (b *ResponseBuilder) Body(body []byte) *ResponseBuilder {
	b.body = body
	return b
}

func (b *ResponseBuilder) BodyString(body string) *ResponseBuilder {
	b.body = []byte(body)
	return b
}

// Err joins the errors of every header that was dropped, or returns nil.
func (b *ResponseBuilder) Err() error {
	return errors.Join(b.errs...)
}

// Build hands the accumulated state to a new Response. The builder must
// not be used afterwards.
func (b *ResponseBuilder) Build() *Response {
	res := newResponse(b.status, b.headers, b.body)
	b.headers = Headers{}
	b.body = nil
	return res
}
