package telemetry

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "catalog-api"

// FiberMiddleware traces every request. The span is stored as the request's
// user context, so cache and store spans started from c.UserContext() nest under it.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	propagator := otel.GetTextMapPropagator()

	return func(c *fiber.Ctx) error {
		ctx := propagator.Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.url", c.OriginalURL()),
				attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)
		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		err := c.Next()

		// rename with the matched route template
		route := c.Route().Path
		span.SetName(c.Method() + " " + route)
		statusCode := c.Response().StatusCode()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", statusCode),
			attribute.Int("http.response_content_length", len(c.Response().Body())),
		)

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case statusCode >= 500:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}

// MarkFallback records on the request span that the response was served from
// the built-in catalog instead of the content store
func MarkFallback(c *fiber.Ctx, operation string, cause error) {
	span := trace.SpanFromContext(c.UserContext())
	attrs := []attribute.KeyValue{attribute.String("catalog.operation", operation)}
	if cause != nil {
		attrs = append(attrs, attribute.String("catalog.fallback_cause", cause.Error()))
	}
	span.AddEvent("catalog.fallback", trace.WithAttributes(attrs...))
	span.SetAttributes(attribute.Bool("catalog.fallback", true))
}
