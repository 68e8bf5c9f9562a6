package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordsOfferMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := NewWithRegisterer("notch-test", reg)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordOfferDispatched(ctx, "sendgrid", "success")
	obs.RecordOfferDuration(ctx, 120*time.Millisecond, "success")
	obs.RecordProposalSize(ctx, 2048)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}
	for _, name := range []string{"offers_dispatched_total", "offers_duration_milliseconds", "offers_pdf_size_bytes"} {
		assert.Contains(t, byName, name)
	}
	for name := range byName {
		assert.False(t, strings.Contains(name, "."), "metric name %q is not a legacy Prometheus name", name)
	}

	dispatched := byName["offers_dispatched_total"]
	require.NotNil(t, dispatched)
	require.Len(t, dispatched.GetMetric(), 1)
	assert.Equal(t, 1.0, dispatched.GetMetric()[0].GetCounter().GetValue())
}

func TestObservability_NilIsNoop(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordOfferDispatched(context.Background(), "ses", "error")
		obs.RecordOfferDuration(context.Background(), time.Second, "error")
		obs.RecordProposalSize(context.Background(), 1)
		obs.Shutdown()
	})
}
