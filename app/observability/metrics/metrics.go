package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationRequestsTotal   metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	TemplateCacheHitsTotal    metric.Int64Counter
	ProviderErrorsTotal       metric.Int64Counter
	GeneratedContentRunes     metric.Int64Histogram
	PublicationsTotal         metric.Int64Counter
	DbQueryErrorsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TourismContent")
		var err error
		m := &AppMetrics{}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"content_generation_requests_total",
			metric.WithDescription("Total number of content generation requests by provider and outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create content_generation_requests_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"content_generation_duration_seconds",
			metric.WithDescription("Duration of content generation in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create content_generation_duration_seconds: %v", err)
		}

		m.TemplateCacheHitsTotal, err = meter.Int64Counter(
			"template_cache_hits_total",
			metric.WithDescription("Total number of requests served from the template cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create template_cache_hits_total: %v", err)
		}

		m.ProviderErrorsTotal, err = meter.Int64Counter(
			"llm_provider_errors_total",
			metric.WithDescription("Total number of failed LLM provider calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_provider_errors_total: %v", err)
		}

		m.GeneratedContentRunes, err = meter.Int64Histogram(
			"generated_content_length",
			metric.WithDescription("Length of generated content in characters"),
			metric.WithUnit("{char}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generated_content_length: %v", err)
		}

		m.PublicationsTotal, err = meter.Int64Counter(
			"publications_total",
			metric.WithDescription("Total number of simulated publications"),
			metric.WithUnit("{publication}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create publications_total: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
