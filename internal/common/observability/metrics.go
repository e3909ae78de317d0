package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Outcome labels recorded per submission.
const (
	OutcomeStored   = "stored"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
)

// Observability records submission counters and durations through an OTel meter
// exported to Prometheus. A nil *Observability is valid and records nothing.
type Observability struct {
	meterProvider      *metric.MeterProvider
	submissions        otelmetric.Int64Counter
	submissionDuration otelmetric.Float64Histogram
}

// New registers the OTel exporter on reg and returns the submission instruments.
func New(serviceName string, reg prometheus.Registerer) (*Observability, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	submissions, err := meter.Int64Counter(
		"form.submissions",
		otelmetric.WithDescription("Number of form submissions handled, by flow and outcome"),
	)
	if err != nil {
		return nil, err
	}

	submissionDuration, err := meter.Float64Histogram(
		"form.submission.duration",
		otelmetric.WithDescription("End-to-end handling time of a form submission"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider:      provider,
		submissions:        submissions,
		submissionDuration: submissionDuration,
	}, nil
}

// RecordSubmission counts one handled submission.
func (o *Observability) RecordSubmission(ctx context.Context, flow, outcome string) {
	if o == nil || o.submissions == nil {
		return
	}
	o.submissions.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordSubmissionDuration(ctx context.Context, flow string, duration time.Duration, outcome string) {
	if o == nil || o.submissionDuration == nil {
		return
	}
	o.submissionDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
