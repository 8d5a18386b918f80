package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics содержит метрики операций шлюза с заказами и каталогом.
type GatewayMetrics struct {
	// Счётчики операций
	ordersListed        prometheus.Counter
	ordersFetched       prometheus.Counter
	ordersCreated       prometheus.Counter
	orderCreateRejected prometheus.Counter

	// Взаимодействие с каталогом
	productBulkLookups prometheus.Counter
	referentialDrift   prometheus.Counter

	// События
	eventsPublished     prometheus.Counter
	eventPublishFailed  prometheus.Counter

	// Гистограммы времени выполнения
	enrichDuration prometheus.Histogram
	createDuration prometheus.Histogram
}

// NewGatewayMetrics создаёт новый экземпляр метрик шлюза.
func NewGatewayMetrics() *GatewayMetrics {
	return newGatewayMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newGatewayMetricsWithRegisterer(registerer prometheus.Registerer) *GatewayMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &GatewayMetrics{
		ordersListed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_orders_listed_total",
			Help: "Total number of order page listings served",
		}),
		ordersFetched: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_orders_fetched_total",
			Help: "Total number of single order fetches served",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_orders_created_total",
			Help: "Total number of orders created",
		}),
		orderCreateRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_order_create_rejected_total",
			Help: "Total number of order creations rejected on product validation",
		}),
		productBulkLookups: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_product_bulk_lookups_total",
			Help: "Total number of bulk product catalog lookups issued",
		}),
		referentialDrift: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_referential_drift_total",
			Help: "Total number of enrichments that hit a missing product",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_events_published_total",
			Help: "Total number of order events published",
		}),
		eventPublishFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shipstore_event_publish_failed_total",
			Help: "Total number of order event publications that failed",
		}),
		enrichDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shipstore_enrichment_duration_seconds",
			Help:    "Duration of order enrichment operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shipstore_order_create_duration_seconds",
			Help:    "Duration of order creation operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrdersListed увеличивает счётчик отданных страниц заказов.
func (m *GatewayMetrics) RecordOrdersListed() {
	m.ordersListed.Inc()
}

// RecordOrderFetched увеличивает счётчик отданных одиночных заказов.
func (m *GatewayMetrics) RecordOrderFetched() {
	m.ordersFetched.Inc()
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *GatewayMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderCreateRejected увеличивает счётчик отклонённых заказов.
func (m *GatewayMetrics) RecordOrderCreateRejected() {
	m.orderCreateRejected.Inc()
}

// RecordProductBulkLookup увеличивает счётчик bulk-запросов к каталогу.
func (m *GatewayMetrics) RecordProductBulkLookup() {
	m.productBulkLookups.Inc()
}

// RecordReferentialDrift увеличивает счётчик расхождений между хранилищами.
func (m *GatewayMetrics) RecordReferentialDrift() {
	m.referentialDrift.Inc()
}

// RecordEventPublished увеличивает счётчик опубликованных событий.
func (m *GatewayMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}

// RecordEventPublishFailed увеличивает счётчик неудачных публикаций.
func (m *GatewayMetrics) RecordEventPublishFailed() {
	m.eventPublishFailed.Inc()
}

// RecordEnrichDuration записывает время обогащения.
func (m *GatewayMetrics) RecordEnrichDuration(duration time.Duration) {
	m.enrichDuration.Observe(duration.Seconds())
}

// RecordCreateDuration записывает время создания заказа.
func (m *GatewayMetrics) RecordCreateDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}
