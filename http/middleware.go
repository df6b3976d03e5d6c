package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RecoverMiddleware turns a panic in next into a 500 response.
func RecoverMiddleware(next Handler) Handler {
	return HandlerFunc(func(ctx *Context) (res *Response, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				ctx.Logger().ErrorContext(ctx.Context(), "handler panicked",
					"panic", fmt.Sprint(recovered),
					"method", ctx.Method().String(),
					"uri", ctx.URI(),
				)
				res, err = nil, Internal("something went wrong")
			}
		}()

		return next.Handle(ctx)
	})
}

// LoggerMiddleware writes one access log record per request.
func LoggerMiddleware(next Handler) Handler {
	return HandlerFunc(func(ctx *Context) (*Response, error) {
		start := time.Now()
		res, err := next.Handle(ctx)

		attrs := []any{
			"method", ctx.Method().String(),
			"uri", ctx.URI(),
			"duration", time.Since(start),
		}
		if res != nil {
			attrs = append(attrs, "status", res.Status.Code())
		}
		if err != nil {
			attrs = append(attrs, "error", err)
			ctx.Logger().WarnContext(ctx.Context(), "request failed", attrs...)
			return res, err
		}

		ctx.Logger().InfoContext(ctx.Context(), "request handled", attrs...)
		return res, nil
	})
}

// RequestID is the identifier RequestIDMiddleware assigns to a request.
type RequestID string

// RequestIDMiddleware reuses an inbound X-Request-Id or generates one,
// stores it as a RequestID value and echoes it on the response.
func RequestIDMiddleware(next Handler) Handler {
	return HandlerFunc(func(ctx *Context) (*Response, error) {
		id, found := ctx.Header(HeaderRequestID)
		if !found || id == "" {
			id = uuid.NewString()
		}
		SetValue(ctx, RequestID(id))
		ctx.logger = ctx.logger.With(slog.String("request_id", id))

		res, err := next.Handle(ctx)
		if res != nil && !res.Headers.Has(HeaderRequestID) {
			res = res.Clone()
			if err := res.Headers.Insert(HeaderRequestID, id); err != nil {
				ctx.Logger().WarnContext(ctx.Context(), "request id not echoed", "error", err)
			}
		}
		return res, err
	})
}

// TracingMiddleware starts a server span around next using the global
// tracer provider and propagator.
func TracingMiddleware(next Handler) Handler {
	return TracingMiddlewareWith(otel.GetTracerProvider(), otel.GetTextMapPropagator())(next)
}

// TracingMiddlewareWith continues the trace carried by the request headers,
// as read by propagator, in a server span from provider.
func TracingMiddlewareWith(provider trace.TracerProvider, propagator propagation.TextMapPropagator) Middleware {
	tracer := provider.Tracer(instrumentationName)

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *Context) (*Response, error) {
			parent := propagator.Extract(ctx.Context(), HeaderCarrier{Headers: &ctx.Request.Headers})
			spanCtx, span := tracer.Start(parent, ctx.Method().String()+" "+ctx.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", ctx.Method().String()),
					attribute.String("url.path", ctx.Path()),
					attribute.String("network.protocol.version", versionAttr(ctx.Request.Version)),
				),
			)
			defer span.End()

			ctx.SetContext(spanCtx)
			res, err := next.Handle(ctx)

			status := statusOf(res, err)
			span.SetAttributes(attribute.Int("http.response.status_code", int(status)))
			if err != nil {
				span.RecordError(err)
			}
			if status.IsServerError() {
				span.SetStatus(codes.Error, status.ReasonPhrase())
			}
			return res, err
		})
	}
}

// HeaderCarrier lets otel propagators read and write Headers.
type HeaderCarrier struct {
	Headers *Headers
}

var _ propagation.TextMapCarrier = HeaderCarrier{}

func (c HeaderCarrier) Get(key string) string {
	v, _ := c.Headers.Get(key)
	return v
}

// Set drops pairs that are not valid header fields.
func (c HeaderCarrier) Set(key, value string) {
	_ = c.Headers.Insert(key, value)
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, c.Headers.Len())
	for name := range c.Headers.All() {
		keys = append(keys, name.String())
	}
	return keys
}

func versionAttr(v Version) string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// statusOf is the status that res or err will be rendered with.
func statusOf(res *Response, err error) StatusCode {
	if err != nil {
		return ErrorResponse(err).Status
	}
	if res == nil {
		return StatusNoContent
	}
	return res.Status
}
