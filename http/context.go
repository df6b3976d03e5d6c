package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/freekieb7/rin/validation"
)

// Context carries one request through the handler chain together with
// path parameters and request scoped values.
type Context struct {
	Request *Request
	Params  map[string]string

	ctx    context.Context
	logger *slog.Logger
	values map[reflect.Type]any
}

func NewContext(ctx context.Context, req *Request) *Context {
	c := &Context{}
	c.reset(ctx, req, nil)
	return c
}

func (c *Context) reset(ctx context.Context, req *Request, logger *slog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	c.Request = req
	c.ctx = ctx
	c.logger = logger
	clear(c.Params)
	clear(c.values)
}

func (c *Context) Context() context.Context {
	return c.ctx
}

// SetContext replaces the context.Context, e.g. to carry a span.
func (c *Context) SetContext(ctx context.Context) {
	c.ctx = ctx
}

func (c *Context) Logger() *slog.Logger {
	return c.logger
}

func (c *Context) Param(name string) string {
	return c.Params[name]
}

func (c *Context) setParam(name, value string) {
	if c.Params == nil {
		c.Params = make(map[string]string)
	}
	c.Params[name] = value
}

func (c *Context) Method() Method {
	return c.Request.Method
}

func (c *Context) URI() string {
	return c.Request.URI
}

func (c *Context) Header(name string) (string, bool) {
	return c.Request.Headers.Get(name)
}

func (c *Context) Body() []byte {
	return c.Request.Body
}

func (c *Context) Path() string {
	return c.Request.Path()
}

func (c *Context) RawQuery() string {
	return c.Request.Query()
}

// Query returns the raw, still percent-encoded value of the first
// parameter whose raw key equals key.
func (c *Context) Query(key string) (string, bool) {
	for _, pair := range strings.Split(c.RawQuery(), "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// BindQuery decodes every query parameter as a string into dst, which is
// filled the way encoding/json fills it from an object. Later duplicates
// win. Bound structs are validated.
func (c *Context) BindQuery(dst any) error {
	params := make(map[string]string)
	if query := c.RawQuery(); query != "" {
		for _, pair := range strings.Split(query, "&") {
			if pair == "" {
				continue
			}
			k, v, _ := strings.Cut(pair, "=")
			params[decodeQueryComponent(k)] = decodeQueryComponent(v)
		}
	}

	data, err := json.Marshal(params)
	if err != nil {
		return Internal(err.Error())
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &Error{Status: StatusBadRequest, Message: "invalid query parameters", Err: err}
	}
	return validate(dst)
}

// decodeQueryComponent unescapes s, keeping it as is when malformed.
func decodeQueryComponent(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// BindJSON decodes the request body into dst and validates it.
func (c *Context) BindJSON(dst any) error {
	if len(c.Request.Body) == 0 {
		return BadRequest("request body is empty")
	}
	if err := json.Unmarshal(c.Request.Body, dst); err != nil {
		c.logger.WarnContext(c.ctx, "failed to parse json body", "error", err)
		return &Error{Status: StatusBadRequest, Message: "invalid json body", Err: err}
	}
	return validate(dst)
}

func validate(dst any) error {
	if err := validation.Struct(dst); err != nil {
		return &Error{Status: StatusBadRequest, Message: "validation failed", Err: err}
	}
	return nil
}

// JSON encodes v as the response body.
func (c *Context) JSON(status StatusCode, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		c.logger.ErrorContext(c.ctx, "failed to encode json response", "error", err)
		return nil, &Error{Status: StatusInternalServerError, Message: "failed to encode json", Err: err}
	}

	return NewResponseBuilder().
		Status(status).
		Header(HeaderContentType, "application/json").
		Header(HeaderContentLength, strconv.Itoa(len(body))).
		Body(body).
		Build(), nil
}

func (c *Context) Text(status StatusCode, body string) *Response {
	return Text(status, body)
}

// SetValue stores v under its type. A later value of the same type
// replaces it.
func SetValue[T any](c *Context, v T) {
	if c.values == nil {
		c.values = make(map[reflect.Type]any)
	}
	c.values[reflect.TypeFor[T]()] = v
}

// Value returns the value stored for T, reporting false when none is set.
func Value[T any](c *Context) (T, bool) {
	v, found := c.values[reflect.TypeFor[T]()]
	if !found {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
