package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/freekieb7/rin/config"
)

// Telemetry owns the SDK providers installed by Setup.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	LoggerProvider *sdklog.LoggerProvider

	exporting bool
	cfg       config.Config
}

// Setup builds trace, metric and log providers and installs them as the
// otel globals. OTLP/gRPC exporters are attached only when an endpoint is
// configured; otherwise the providers record nothing.
func Setup(ctx context.Context, cfg config.Config) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	metricOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	logOpts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}

	exporting := cfg.OTLPEndpoint != ""
	if exporting {
		var traceExpOpts []otlptracegrpc.Option
		var metricExpOpts []otlpmetricgrpc.Option
		var logExpOpts []otlploggrpc.Option
		if cfg.OTLPInsecure {
			traceExpOpts = append(traceExpOpts, otlptracegrpc.WithInsecure())
			metricExpOpts = append(metricExpOpts, otlpmetricgrpc.WithInsecure())
			logExpOpts = append(logExpOpts, otlploggrpc.WithInsecure())
		}

		traceExporter, err := otlptracegrpc.New(ctx, traceExpOpts...)
		if err != nil {
			return nil, err
		}
		metricExporter, err := otlpmetricgrpc.New(ctx, metricExpOpts...)
		if err != nil {
			return nil, errors.Join(err, traceExporter.Shutdown(ctx))
		}
		logExporter, err := otlploggrpc.New(ctx, logExpOpts...)
		if err != nil {
			return nil, errors.Join(err, traceExporter.Shutdown(ctx), metricExporter.Shutdown(ctx))
		}

		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))
		logOpts = append(logOpts, sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)))
	}

	t := &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(traceOpts...),
		MeterProvider:  sdkmetric.NewMeterProvider(metricOpts...),
		LoggerProvider: sdklog.NewLoggerProvider(logOpts...),
		exporting:      exporting,
		cfg:            cfg,
	}

	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	global.SetLoggerProvider(t.LoggerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return t, nil
}

// Logger returns the otel bridged logger when exporting, and a text logger
// on stderr otherwise.
func (t *Telemetry) Logger(name string) *slog.Logger {
	if t.exporting {
		return otelslog.NewLogger(name, otelslog.WithLoggerProvider(t.LoggerProvider))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: t.cfg.LogLevel}))
}

// Shutdown flushes and stops every provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
		t.LoggerProvider.Shutdown(ctx),
	)
}
