package orchestrator

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/marrcelo/shipstore/internal/domain"
	"github.com/marrcelo/shipstore/internal/messaging/kafka"
	"github.com/marrcelo/shipstore/internal/metrics"
)

// Orchestrator создаёт заказы по схеме validate-then-write: сначала одна
// bulk-проверка существования всех товаров, затем запись в хранилище заказов
// и fire-and-forget публикация события. Сервис не хранит состояния и
// безопасен для конкурентных вызовов.
type Orchestrator struct {
	orders   domain.OrderStore
	products domain.ProductStore
	events   domain.EventPublisher
	logger   *log.Entry
	metrics  *metrics.GatewayMetrics
}

// New создаёт рабочий экземпляр оркестратора.
func New(orders domain.OrderStore, products domain.ProductStore, events domain.EventPublisher, logger *log.Entry) *Orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "orchestrator")
	}
	return &Orchestrator{
		orders:   orders,
		products: products,
		events:   events,
		logger:   logger,
		metrics:  metrics.NewGatewayMetrics(),
	}
}

// NewWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewWithoutMetrics(orders domain.OrderStore, products domain.ProductStore, events domain.EventPublisher, logger *log.Entry) *Orchestrator {
	o := New(orders, products, events, logger)
	o.metrics = nil
	return o
}

// CreateOrder валидирует все product_id одним bulk-запросом, создаёт заказ и
// публикует событие order_created. Валидация падает на первом неизвестном ID
// (в порядке входных позиций) до какой-либо записи — при отказе состояние
// хранилища не меняется.
func (o *Orchestrator) CreateOrder(ctx context.Context, details []domain.NewOrderDetail) (int64, error) {
	start := time.Now()
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	if err := o.checkOrderProducts(ctx, details); err != nil {
		if o.metrics != nil {
			o.metrics.RecordOrderCreateRejected()
		}
		return 0, err
	}

	order, err := o.orders.Create(ctx, details)
	if err != nil {
		return 0, err
	}

	o.publishOrderCreated(ctx, order)

	if o.metrics != nil {
		o.metrics.RecordOrderCreated()
	}
	return order.ID, nil
}

// checkOrderProducts проверяет существование каждого товара из входных позиций
// по результату одного bulk-запроса к каталогу.
func (o *Orchestrator) checkOrderProducts(ctx context.Context, details []domain.NewOrderDetail) error {
	seen := make(map[string]struct{}, len(details))
	ids := make([]string, 0, len(details))
	for _, detail := range details {
		if _, dup := seen[detail.ProductID]; dup {
			continue
		}
		seen[detail.ProductID] = struct{}{}
		ids = append(ids, detail.ProductID)
	}

	if o.metrics != nil {
		o.metrics.RecordProductBulkLookup()
	}
	products, err := o.products.List(ctx, ids...)
	if err != nil {
		return err
	}

	valid := make(map[string]struct{}, len(products))
	for _, product := range products {
		valid[product.ID] = struct{}{}
	}

	for _, detail := range details {
		if _, ok := valid[detail.ProductID]; !ok {
			o.logger.WithField("product_id", detail.ProductID).
				Warn("order rejected: unknown product id")
			return domain.ProductNotFound(detail.ProductID)
		}
	}
	return nil
}

// publishOrderCreated отправляет событие о созданном заказе. Публикация —
// побочный эффект вне границы консистентности: её отказ логируется, но не
// откатывает уже созданный заказ.
func (o *Orchestrator) publishOrderCreated(ctx context.Context, order domain.Order) {
	if o.events == nil {
		return
	}

	payload := kafka.NewOrderCreatedEvent(order)
	if err := o.events.Publish(ctx, kafka.EventTypeOrderCreated, payload.Key(), payload); err != nil {
		if o.metrics != nil {
			o.metrics.RecordEventPublishFailed()
		}
		o.logger.WithError(err).WithField("order_id", order.ID).
			Warn("failed to publish order_created event")
		return
	}
	if o.metrics != nil {
		o.metrics.RecordEventPublished()
	}
}
