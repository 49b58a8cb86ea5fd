package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, families []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestObserveRecordsCountAndDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	httpMetrics := NewHTTPMetrics(registry)

	httpMetrics.Observe("GET", "/api/items", 200, 150*time.Millisecond)
	httpMetrics.Observe("GET", "/api/items", 200, 50*time.Millisecond)
	httpMetrics.Observe("POST", "/api/cart/add", 404, 10*time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	total := findMetric(t, families, "http_requests_total")
	require.NotNil(t, total)
	require.Len(t, total.Metric, 2)

	duration := findMetric(t, families, "http_request_duration_seconds")
	require.NotNil(t, duration)

	var listCount float64
	for _, metric := range total.Metric {
		labels := map[string]string{}
		for _, pair := range metric.Label {
			labels[pair.GetName()] = pair.GetValue()
		}
		if labels["route"] == "/api/items" {
			listCount = metric.GetCounter().GetValue()
			assert.Equal(t, "GET", labels["method"])
			assert.Equal(t, "200", labels["status"])
		}
	}
	assert.Equal(t, float64(2), listCount)
}

func TestObserveNormalizesEmptyLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	httpMetrics := NewHTTPMetrics(registry)

	httpMetrics.Observe("", "", 500, time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	total := findMetric(t, families, "http_requests_total")
	require.NotNil(t, total)
	require.Len(t, total.Metric, 1)

	labels := map[string]string{}
	for _, pair := range total.Metric[0].Label {
		labels[pair.GetName()] = pair.GetValue()
	}
	assert.Equal(t, "unknown", labels["method"])
	assert.Equal(t, "unknown", labels["route"])
}

func TestObserveOnNilMetricsIsSafe(t *testing.T) {
	var httpMetrics *HTTPMetrics
	httpMetrics.Observe("GET", "/", 200, time.Second)

	unregistered := NewHTTPMetrics(nil)
	unregistered.Observe("GET", "/", 200, time.Second)
}
