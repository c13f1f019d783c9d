package cache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/tigoviajes/catalog/internal/cache"

// Lookup outcomes recorded on spans and the lookups counter
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultStale = "stale"
)

type instruments struct {
	tracer  trace.Tracer
	lookups metric.Int64Counter
	backend string
}

func newInstruments(backend string) instruments {
	meter := otel.Meter(instrumentationName)
	lookups, err := meter.Int64Counter("cache.lookups",
		metric.WithDescription("Read-through cache lookups by outcome"),
	)
	if err != nil {
		lookups = nil
	}
	return instruments{
		tracer:  otel.Tracer(instrumentationName),
		lookups: lookups,
		backend: backend,
	}
}

func (i instruments) startGet(ctx context.Context, key string, tags []string) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, "cache.GetOrPopulate",
		trace.WithAttributes(
			attribute.String("cache.backend", i.backend),
			attribute.String("cache.key", key),
			attribute.StringSlice("cache.tags", tags),
		),
	)
}

func (i instruments) record(ctx context.Context, span trace.Span, result string) {
	span.SetAttributes(attribute.String("cache.result", result))
	if i.lookups != nil {
		i.lookups.Add(ctx, 1, metric.WithAttributes(
			attribute.String("cache.backend", i.backend),
			attribute.String("cache.result", result),
		))
	}
}
