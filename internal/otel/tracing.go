package otel

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"kycapi/internal/logging"
)

// Settings mirrors the standard OTEL_* environment variables the service honours.
type Settings struct {
	Disabled    bool
	ServiceName string
	Protocol    string
	Endpoint    string
	Sampler     string
	SamplerArg  string
}

// SettingsFromEnv reads Settings using the OpenTelemetry defaults.
func SettingsFromEnv() Settings {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	return Settings{
		Disabled:    os.Getenv("OTEL_SDK_DISABLED") == "true",
		ServiceName: getEnv("OTEL_SERVICE_NAME", "kycapi"),
		Protocol:    getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Endpoint:    endpoint,
		Sampler:     getEnv("OTEL_TRACES_SAMPLER", "parentbased_traceidratio"),
		SamplerArg:  getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),
	}
}

var propagator = propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

func noopShutdown(context.Context) error { return nil }

// Init installs the global tracer provider with an OTLP exporter. Exporter
// failures degrade to propagation only; the returned shutdown is never nil.
func Init(ctx context.Context, s Settings) (func(context.Context) error, error) {
	logger := logging.From(ctx)

	if s.Disabled {
		otel.SetTextMapPropagator(propagator)
		logger.Info("tracing_configured", "tracing_enabled", false)
		return noopShutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(s.ServiceName),
		),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := newExporter(ctx, s.Protocol)
	if err != nil {
		logger.Error("tracing_init_failed", "error", err.Error())
		otel.SetTextMapPropagator(propagator)
		return noopShutdown, nil
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(sampler(s.Sampler, s.SamplerArg)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	logger.Info("tracing_configured",
		"tracing_enabled", true,
		"otlp_protocol", s.Protocol,
		"otlp_endpoint", s.Endpoint,
		"sampler", s.Sampler,
		"sampler_arg", s.SamplerArg,
	)
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, protocol string) (*otlptrace.Exporter, error) {
	switch protocol {
	case "grpc":
		return otlptracegrpc.New(ctx)
	case "http/protobuf":
		return otlptracehttp.New(ctx)
	}
	return nil, fmt.Errorf("unsupported OTLP protocol: %s", protocol)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseRatio(arg string) float64 {
	ratio, err := strconv.ParseFloat(arg, 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return 1.0
	}
	return ratio
}

func sampler(name, arg string) trace.Sampler {
	switch name {
	case "always_on":
		return trace.AlwaysSample()
	case "always_off":
		return trace.NeverSample()
	case "traceidratio":
		return trace.TraceIDRatioBased(parseRatio(arg))
	case "parentbased_always_on":
		return trace.ParentBased(trace.AlwaysSample())
	case "parentbased_always_off":
		return trace.ParentBased(trace.NeverSample())
	case "parentbased_traceidratio":
		return trace.ParentBased(trace.TraceIDRatioBased(parseRatio(arg)))
	default:
		return trace.ParentBased(trace.AlwaysSample())
	}
}
