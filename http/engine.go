package http

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Engine drives the whole message flow for one buffered request: parse,
// dispatch to a Handler, serialize. It owns no connections; the transport
// feeding it bytes decides when to read more and where to write.
type Engine struct {
	handler Handler
	logger  *slog.Logger
	pool    *contextPool

	requests      metric.Int64Counter
	parseFailures metric.Int64Counter
	duration      metric.Float64Histogram
}

type Option func(*engineOptions)

type engineOptions struct {
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	poolSize      int
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *engineOptions) { o.meterProvider = provider }
}

func WithPoolSize(size int) Option {
	return func(o *engineOptions) { o.poolSize = size }
}

func NewEngine(handler Handler, opts ...Option) (*Engine, error) {
	o := engineOptions{poolSize: ContextPoolSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = otelslog.NewLogger(instrumentationName)
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	meter := o.meterProvider.Meter(instrumentationName)

	requests, err := meter.Int64Counter("rin.requests",
		metric.WithDescription("Requests handled by status code and method"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	parseFailures, err := meter.Int64Counter("rin.parse.failures",
		metric.WithDescription("Request heads rejected by the parser"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("rin.request.duration",
		metric.WithDescription("Time from parse to serialized response"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Engine{
		handler:       handler,
		logger:        o.logger,
		pool:          newContextPool(o.poolSize),
		requests:      requests,
		parseFailures: parseFailures,
		duration:      duration,
	}, nil
}

// HandleBytes parses raw as one request and returns the serialized
// response. An error wrapping ErrIncomplete is returned as is so the
// caller can retry once more bytes arrived. Any other parse failure is
// answered with a 4xx response instead of an error.
func (e *Engine) HandleBytes(ctx context.Context, raw []byte) ([]byte, error) {
	start := time.Now()

	req, err := ParseRequest(raw)
	if errors.Is(err, ErrIncomplete) {
		return nil, err
	}

	var res *Response
	if err != nil {
		e.logger.WarnContext(ctx, "rejected request", "error", err)
		e.parseFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", failureReason(err))))
		res = rejection(err)
	} else {
		res = e.Handle(ctx, req)
	}

	out, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	attrs := metric.WithAttributes(
		attribute.Int("http.response.status_code", int(res.Status)),
		attribute.String("http.request.method", methodAttr(req)),
	)
	e.requests.Add(ctx, 1, attrs)
	e.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	return out, nil
}

// Handle runs the handler for req and always produces a response: handler
// errors are rendered with ErrorResponse and a missing response becomes
// 204 No Content. The returned response may be a copy of the handler's.
func (e *Engine) Handle(ctx context.Context, req *Request) *Response {
	c := e.pool.acquire()
	defer e.pool.release(c)
	c.reset(ctx, req, e.logger)

	res, err := e.handler.Handle(c)
	switch {
	case err != nil:
		var handlerErr *Error
		if !errors.As(err, &handlerErr) || handlerErr.Status.IsServerError() {
			e.logger.ErrorContext(ctx, "handler failed", "uri", req.URI, "error", err)
		}
		res = ErrorResponse(err)
	case res == nil:
		res = Empty(StatusNoContent)
	}

	return finalize(req, res)
}

// finalize fits res to the request it answers. HEAD responses lose their
// body and 1xx/204 responses lose both body and Content-Length. res itself
// is never modified.
func finalize(req *Request, res *Response) *Response {
	head := req.Method == MethodHead
	bodiless := res.Status == StatusNoContent || res.Status.IsInformational()
	if !head && !(bodiless && (len(res.Body) > 0 || res.Headers.Has(HeaderContentLength))) {
		return res
	}

	res = res.Clone()
	res.Body = []byte{}
	if bodiless {
		res.Headers.Del(HeaderContentLength)
	}
	return res
}

func rejection(err error) *Response {
	if errors.Is(err, ErrTooManyHeaders) {
		return Text(StatusRequestHeaderFieldsTooLarge, StatusRequestHeaderFieldsTooLarge.ReasonPhrase())
	}
	return Text(StatusBadRequest, StatusBadRequest.ReasonPhrase())
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrTooManyHeaders):
		return "too_many_headers"
	case errors.Is(err, ErrInvalidMethod):
		return "invalid_method"
	case errors.Is(err, ErrInvalidHeaderName), errors.Is(err, ErrInvalidHeaderValue):
		return "invalid_header"
	}
	return "malformed"
}

func methodAttr(req *Request) string {
	if req == nil {
		return "_OTHER"
	}
	return req.Method.String()
}
