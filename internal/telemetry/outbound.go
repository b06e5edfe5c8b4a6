package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	outboundEnabled bool
	outboundTotal   metric.Int64Counter
	outboundSeconds metric.Float64Histogram
)

func initOutboundInstruments(serviceName string) {
	meter := otel.Meter(serviceName)

	var err error
	outboundTotal, err = meter.Int64Counter(
		"comparaprecos_api_requests_total",
		metric.WithDescription("Total de requisicoes ao backend"),
	)
	if err != nil {
		return
	}

	outboundSeconds, err = meter.Float64Histogram(
		"comparaprecos_api_request_duration_seconds",
		metric.WithDescription("Latencia das requisicoes ao backend"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}

	outboundEnabled = true
}

// RecordOutbound counts one backend call. Status zero means the
// transport failed before any response arrived.
func RecordOutbound(ctx context.Context, method, endpoint string, status int, elapsed time.Duration) {
	if !outboundEnabled {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("api.endpoint", endpoint),
		attribute.Int("http.status_code", status),
	}
	outboundTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	outboundSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}
