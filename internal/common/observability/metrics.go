package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records proposal dispatch metrics through an OpenTelemetry
// meter exported to Prometheus. A nil *Observability is valid and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	offerCounter  otelmetric.Int64Counter
	offerDuration otelmetric.Float64Histogram
	pdfSize       otelmetric.Int64Histogram
}

// New registers the exporter with the default Prometheus registerer.
func New(serviceName string) *Observability {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer)
}

func NewWithRegisterer(serviceName string, reg promclient.Registerer) *Observability {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	offerCounter, _ := meter.Int64Counter(
		"offers_dispatched",
		otelmetric.WithDescription("Number of proposal dispatch attempts"),
	)

	offerDuration, _ := meter.Float64Histogram(
		"offers_duration",
		otelmetric.WithDescription("Proposal build and send duration"),
		otelmetric.WithUnit("ms"),
	)

	pdfSize, _ := meter.Int64Histogram(
		"offers_pdf_size",
		otelmetric.WithDescription("Rendered proposal size"),
		otelmetric.WithUnit("By"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		offerCounter:  offerCounter,
		offerDuration: offerDuration,
		pdfSize:       pdfSize,
	}
}

func (o *Observability) RecordOfferDispatched(ctx context.Context, provider, status string) {
	if o == nil || o.offerCounter == nil {
		return
	}
	o.offerCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordOfferDuration(ctx context.Context, duration time.Duration, status string) {
	if o == nil || o.offerDuration == nil {
		return
	}
	o.offerDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) RecordProposalSize(ctx context.Context, bytes int) {
	if o == nil || o.pdfSize == nil {
		return
	}
	o.pdfSize.Record(ctx, int64(bytes))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
