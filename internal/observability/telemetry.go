package observability

import (
	"context"
	"time"

	"github.com/annel0/vector1/internal/config"
	"github.com/annel0/vector1/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownFunc завершает работу TracerProvider
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Фабрики экспортера и ресурса подменяются в тестах
var (
	newExporter = func(ctx context.Context) (trace.SpanExporter, error) {
		return otlptracehttp.New(ctx)
	}
	newResource = func(ctx context.Context, serviceName string) (*resource.Resource, error) {
		return resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	}
)

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// При cfg.Enabled == false оставляет no-op провайдер otel и возвращает пустой shutdown.
func InitTelemetry(ctx context.Context, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logging.Debug("OpenTelemetry выключен")
		return noopShutdown, nil
	}

	// OTLP HTTP экспортер (по умолчанию localhost:4318, настраивается OTEL_EXPORTER_OTLP_*)
	exp, err := newExporter(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		if shutdownErr := exp.Shutdown(ctx); shutdownErr != nil {
			logging.Warn("Не удалось остановить OTLP экспортер: %v", shutdownErr)
		}
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logging.Info("📡 OpenTelemetry инициализирован (OTLP → 4318, service=%s)", cfg.ServiceName)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}
