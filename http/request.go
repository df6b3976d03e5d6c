package http

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxHeaders bounds the number of header lines accepted in a request head.
const MaxHeaders = 64

// Version is an HTTP protocol version.
type Version struct {
	Major uint8
	Minor uint8
}

var (
	HTTP10 = Version{Major: 1, Minor: 0}
	HTTP11 = Version{Major: 1, Minor: 1}
)

func (v Version) String() string {
	return "HTTP/" + strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor))
}

// Request is a parsed HTTP/1.x request. The URI is the raw request-target.
type Request struct {
	Method  Method
	URI     string
	Version Version
	Headers Headers
	Body    []byte
}

// NewRequest builds an HTTP/1.1 request holding a copy of headers.
func NewRequest(method Method, uri string, headers Headers, body []byte) *Request {
	return &Request{
		Method:  method,
		URI:     uri,
		Version: HTTP11,
		Headers: headers.Clone(),
		Body:    body,
	}
}

func (req *Request) Header(name string) (string, bool) {
	return req.Headers.Get(name)
}

// Path returns the request-target up to the query string.
func (req *Request) Path() string {
	path, _, _ := strings.Cut(req.URI, "?")
	return path
}

// Query returns the raw query string of the request-target.
func (req *Request) Query() string {
	_, query, _ := strings.Cut(req.URI, "?")
	return query
}

// ContentLength reports the declared Content-Length. It is informational
// only: ParseRequest never frames the body with it.
func (req *Request) ContentLength() (int64, bool) {
	v, found := req.Headers.Get(HeaderContentLength)
	if !found {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

type rawHeader struct {
	name  []byte
	value []byte
}

// requestHead holds the slices of a scanned head. Nothing in it is
// validated beyond the wire grammar.
type requestHead struct {
	method  []byte
	target  []byte
	minor   byte
	headers []rawHeader
	size    int
}

// ParseRequest parses one request out of data. Bytes following the head
// become the body verbatim; Content-Length and Transfer-Encoding are not
// consulted.
//
// If data does not yet hold a complete head the error wraps ErrIncomplete
// and the caller should retry with more bytes. Either a complete Request or
// an error is returned, never both.
func ParseRequest(data []byte) (*Request, error) {
	var head requestHead
	if err := head.scan(data); err != nil {
		return nil, err
	}

	method, err := ParseMethod(string(head.method))
	if err != nil {
		return nil, err
	}

	version := HTTP10
	if head.minor == '1' {
		version = HTTP11
	}

	headers := NewHeaders(len(head.headers))
	for _, h := range head.headers {
		if !utf8.Valid(h.value) {
			return nil, &ParseError{Msg: "invalid header value encoding"}
		}
		if err := headers.Insert(string(h.name), string(h.value)); err != nil {
			return nil, err
		}
	}

	body := make([]byte, len(data)-head.size)
	copy(body, data[head.size:])

	return &Request{
		Method:  method,
		URI:     string(head.target),
		Version: version,
		Headers: headers,
		Body:    body,
	}, nil
}

var (
	errIncompleteHead = &ParseError{Msg: "incomplete request head", Err: ErrIncomplete}
	errTooManyHeaders = &ParseError{Msg: "header limit exceeded", Err: ErrTooManyHeaders}
)

const versionPrefix = "HTTP/1."

func (head *requestHead) scan(buf []byte) error {
	pos := 0

	// Tolerate empty lines ahead of the request line (RFC 7230, 3.5).
	for pos < len(buf) && (buf[pos] == '\r' || buf[pos] == '\n') {
		pos++
	}

	start := pos
	for pos < len(buf) && isTokenChar(buf[pos]) {
		pos++
	}
	if pos == len(buf) {
		return errIncompleteHead
	}
	if pos == start || buf[pos] != ' ' {
		return &ParseError{Msg: "invalid method token"}
	}
	head.method = buf[start:pos]
	pos++

	start = pos
	for pos < len(buf) && isTargetChar(buf[pos]) {
		pos++
	}
	if pos == len(buf) {
		return errIncompleteHead
	}
	if pos == start || buf[pos] != ' ' {
		return &ParseError{Msg: "invalid request target"}
	}
	head.target = buf[start:pos]
	pos++

	for i := 0; i < len(versionPrefix); i++ {
		if pos == len(buf) {
			return errIncompleteHead
		}
		if buf[pos] != versionPrefix[i] {
			return &ParseError{Msg: "invalid HTTP version"}
		}
		pos++
	}
	if pos == len(buf) {
		return errIncompleteHead
	}
	if buf[pos] < '0' || buf[pos] > '9' {
		return &ParseError{Msg: "invalid HTTP version"}
	}
	head.minor = buf[pos]
	pos++

	n, err := skipNewline(buf[pos:])
	if err != nil {
		return err
	}
	pos += n

	for {
		if pos == len(buf) {
			return errIncompleteHead
		}
		if buf[pos] == '\r' || buf[pos] == '\n' {
			n, err := skipNewline(buf[pos:])
			if err != nil {
				return err
			}
			head.size = pos + n
			return nil
		}

		if len(head.headers) == MaxHeaders {
			return errTooManyHeaders
		}

		var h rawHeader
		n, err := scanHeaderLine(buf[pos:], &h)
		if err != nil {
			return err
		}
		head.headers = append(head.headers, h)
		pos += n
	}
}

// scanHeaderLine reads one "name: value" line including its line ending.
func scanHeaderLine(buf []byte, h *rawHeader) (int, error) {
	pos := 0
	for pos < len(buf) && isTokenChar(buf[pos]) {
		pos++
	}
	if pos == len(buf) {
		return 0, errIncompleteHead
	}
	if pos == 0 || buf[pos] != ':' {
		return 0, &ParseError{Msg: "invalid header name"}
	}
	h.name = buf[:pos]
	pos++

	for pos < len(buf) && (buf[pos] == ' ' || buf[pos] == '\t') {
		pos++
	}

	start := pos
	for pos < len(buf) && buf[pos] != '\r' && buf[pos] != '\n' {
		if c := buf[pos]; c != '\t' && (c < 0x20 || c == 0x7f) {
			return 0, &ParseError{Msg: "invalid header value"}
		}
		pos++
	}
	if pos == len(buf) {
		return 0, errIncompleteHead
	}

	end := pos
	for end > start && (buf[end-1] == ' ' || buf[end-1] == '\t') {
		end--
	}
	h.value = buf[start:end]

	n, err := skipNewline(buf[pos:])
	if err != nil {
		return 0, err
	}
	return pos + n, nil
}

// skipNewline consumes a CRLF or a bare LF at the start of buf.
func skipNewline(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errIncompleteHead
	}
	switch buf[0] {
	case '\n':
		return 1, nil
	case '\r':
		if len(buf) == 1 {
			return 0, errIncompleteHead
		}
		if buf[1] == '\n' {
			return 2, nil
		}
	}
	return 0, &ParseError{Msg: "invalid new line"}
}
