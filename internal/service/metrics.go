package service

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "recap.summary"

// summaryMetrics holds the instruments the summary service reports on. With
// no meter provider configured these are no-ops.
type summaryMetrics struct {
	generations        metric.Int64Counter
	cacheHits          metric.Int64Counter
	upstreamFailures   metric.Int64Counter
	generationDuration metric.Float64Histogram
}

func newSummaryMetrics() *summaryMetrics {
	meter := otel.Meter(meterName)

	generations, _ := meter.Int64Counter("recap.summary.generations",
		metric.WithDescription("Summary generations completed"))
	cacheHits, _ := meter.Int64Counter("recap.summary.cache_hits",
		metric.WithDescription("Generate requests served from the cache"))
	upstreamFailures, _ := meter.Int64Counter("recap.summary.upstream_failures",
		metric.WithDescription("Completion provider call failures"))
	generationDuration, _ := meter.Float64Histogram("recap.summary.generation_duration",
		metric.WithDescription("Wall-clock duration of one summary generation"),
		metric.WithUnit("s"))

	return &summaryMetrics{
		generations:        generations,
		cacheHits:          cacheHits,
		upstreamFailures:   upstreamFailures,
		generationDuration: generationDuration,
	}
}
