package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newIsolatedMetrics() *GatewayMetrics {
	return newGatewayMetricsWithRegisterer(prometheus.NewRegistry())
}

func TestNewGatewayMetrics(t *testing.T) {
	metrics := newIsolatedMetrics()

	if metrics == nil {
		t.Fatal("metrics should not be nil")
	}
	if metrics.ordersListed == nil || metrics.ordersFetched == nil || metrics.ordersCreated == nil {
		t.Error("order counters should not be nil")
	}
	if metrics.orderCreateRejected == nil {
		t.Error("orderCreateRejected counter should not be nil")
	}
	if metrics.productBulkLookups == nil || metrics.referentialDrift == nil {
		t.Error("catalog counters should not be nil")
	}
	if metrics.eventsPublished == nil || metrics.eventPublishFailed == nil {
		t.Error("event counters should not be nil")
	}
	if metrics.enrichDuration == nil || metrics.createDuration == nil {
		t.Error("histograms should not be nil")
	}
}

func TestRecordCounters(t *testing.T) {
	metrics := newIsolatedMetrics()

	metrics.RecordOrdersListed()
	metrics.RecordOrderFetched()
	metrics.RecordOrderCreated()
	metrics.RecordOrderCreateRejected()
	metrics.RecordProductBulkLookup()
	metrics.RecordReferentialDrift()
	metrics.RecordEventPublished()
	metrics.RecordEventPublishFailed()

	if got := testutil.ToFloat64(metrics.ordersListed); got != 1 {
		t.Fatalf("expected ordersListed 1, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.referentialDrift); got != 1 {
		t.Fatalf("expected referentialDrift 1, got %v", got)
	}
}

func TestRecordDurations(t *testing.T) {
	metrics := newIsolatedMetrics()

	// Не должно паниковать и должно принимать нулевые длительности.
	metrics.RecordEnrichDuration(125 * time.Millisecond)
	metrics.RecordEnrichDuration(0)
	metrics.RecordCreateDuration(10 * time.Millisecond)
}

func TestRegisterTwiceReturnsExisting(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newGatewayMetricsWithRegisterer(registry)
	second := newGatewayMetricsWithRegisterer(registry)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	if got := testutil.ToFloat64(first.ordersCreated); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}
