package telemetry

import (
	"context"
	"ctchen222/minimax-tictactoe/internal/config"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ShutdownFunc flushes and stops the providers installed by InitOtel.
type ShutdownFunc func(context.Context) error

type exporters struct {
	trace  sdktrace.SpanExporter
	metric metric.Exporter
	log    sdklog.Exporter
	closer io.Closer
}

// InitOtel installs global tracer, meter and logger providers for the
// configured exporter. With the "none" exporter the globals stay no-op.
func InitOtel(ctx context.Context, conf config.Telemetry) (ShutdownFunc, error) {
	var (
		exp exporters
		err error
	)
	switch conf.Exporter {
	case config.ExporterNone, "":
		return func(context.Context) error { return nil }, nil
	case config.ExporterStdout:
		exp, err = newStdoutExporters(conf.Output)
	case config.ExporterOTLP:
		exp, err = newOTLPExporters(ctx, conf.Endpoint)
	default:
		return nil, fmt.Errorf("unknown telemetry exporter %q", conf.Exporter)
	}
	if err != nil {
		return nil, err
	}

	// --- Create shared resource ---
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.ServiceName),
			semconv.ServiceVersion(conf.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp.trace),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exp.metric)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp.log)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		var errs []error
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown TracerProvider: %w", err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown MeterProvider: %w", err))
		}
		if err := lp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown LoggerProvider: %w", err))
		}
		if err := exp.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close exporter transport: %w", err))
		}
		return errors.Join(errs...)
	}

	return shutdown, nil
}

// newStdoutExporters writes all signals as JSON lines to the file at path;
// stdout itself is owned by the terminal UI.
func newStdoutExporters(path string) (exporters, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return exporters{}, fmt.Errorf("failed to open telemetry output: %w", err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return exporters{}, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(f))
	if err != nil {
		f.Close()
		return exporters{}, fmt.Errorf("failed to create stdout metric exporter: %w", err)
	}
	logExporter, err := stdoutlog.New(stdoutlog.WithWriter(f))
	if err != nil {
		f.Close()
		return exporters{}, fmt.Errorf("failed to create stdout log exporter: %w", err)
	}

	return exporters{trace: traceExporter, metric: metricExporter, log: logExporter, closer: f}, nil
}

func newOTLPExporters(ctx context.Context, endpoint string) (exporters, error) {
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return exporters{}, fmt.Errorf("failed to create gRPC connection to OTLP collector: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		conn.Close()
		return exporters{}, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		conn.Close()
		return exporters{}, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}
	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		conn.Close()
		return exporters{}, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	return exporters{trace: traceExporter, metric: metricExporter, log: logExporter, closer: conn}, nil
}
