package aggregator

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/marrcelo/shipstore/internal/domain"
	"github.com/marrcelo/shipstore/internal/metrics"
)

// Config — настройки обогащения. ImageRoot передаётся явно при конструировании,
// а не читается из глобального состояния, чтобы сервис был тестируемым.
type Config struct {
	// ImageRoot — префикс URL изображений товаров.
	ImageRoot string
}

// Aggregator собирает клиентское представление заказов: страница или одиночный
// заказ обогащаются актуальными данными каталога за один bulk-запрос.
// Сервис не хранит состояния и безопасен для конкурентных вызовов.
type Aggregator struct {
	orders   domain.OrderStore
	products domain.ProductStore
	cfg      Config
	logger   *log.Entry
	metrics  *metrics.GatewayMetrics
}

// New создаёт рабочий экземпляр агрегатора.
func New(orders domain.OrderStore, products domain.ProductStore, cfg Config, logger *log.Entry) *Aggregator {
	if logger == nil {
		logger = log.New().WithField("component", "aggregator")
	}
	return &Aggregator{
		orders:   orders,
		products: products,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.NewGatewayMetrics(),
	}
}

// NewWithoutMetrics создаёт агрегатор без метрик (для тестов).
func NewWithoutMetrics(orders domain.OrderStore, products domain.ProductStore, cfg Config, logger *log.Entry) *Aggregator {
	a := New(orders, products, cfg, logger)
	a.metrics = nil
	return a
}

// ListOrders возвращает страницу заказов с обогащёнными позициями.
// Пустая страница возвращается сразу, без обращения к каталогу, но с
// полностью вычисленными метаданными пагинации.
func (a *Aggregator) ListOrders(ctx context.Context, page, limit int) (domain.Page, error) {
	start := time.Now()
	defer func() {
		if a.metrics != nil {
			a.metrics.RecordEnrichDuration(time.Since(start))
		}
	}()

	rows, total, err := a.orders.List(ctx, page, limit)
	if err != nil {
		return domain.Page{}, err
	}

	if len(rows) == 0 {
		return domain.NewPage(nil, page, limit, total), nil
	}

	productMap, err := a.lookupProducts(ctx, rows)
	if err != nil {
		return domain.Page{}, err
	}

	data := make([]domain.EnrichedOrder, 0, len(rows))
	for _, order := range rows {
		enriched, err := a.enrichOrder(order, productMap)
		if err != nil {
			return domain.Page{}, err
		}
		data = append(data, enriched)
	}

	if a.metrics != nil {
		a.metrics.RecordOrdersListed()
	}
	return domain.NewPage(data, page, limit, total), nil
}

// GetOrder возвращает один заказ с обогащёнными позициями или ErrOrderNotFound.
func (a *Aggregator) GetOrder(ctx context.Context, orderID int64) (domain.EnrichedOrder, error) {
	start := time.Now()
	defer func() {
		if a.metrics != nil {
			a.metrics.RecordEnrichDuration(time.Since(start))
		}
	}()

	order, err := a.orders.Get(ctx, orderID)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}

	productMap, err := a.lookupProducts(ctx, []domain.Order{order})
	if err != nil {
		return domain.EnrichedOrder{}, err
	}

	enriched, err := a.enrichOrder(order, productMap)
	if err != nil {
		return domain.EnrichedOrder{}, err
	}

	if a.metrics != nil {
		a.metrics.RecordOrderFetched()
	}
	return enriched, nil
}

// lookupProducts собирает уникальные product_id по всем позициям и выполняет
// ровно один bulk-запрос к каталогу — O(1) обращений на запрос независимо от
// количества заказов и позиций.
func (a *Aggregator) lookupProducts(ctx context.Context, orders []domain.Order) (map[string]domain.Product, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, order := range orders {
		for _, detail := range order.Details {
			if _, dup := seen[detail.ProductID]; dup {
				continue
			}
			seen[detail.ProductID] = struct{}{}
			ids = append(ids, detail.ProductID)
		}
	}

	if a.metrics != nil {
		a.metrics.RecordProductBulkLookup()
	}
	products, err := a.products.List(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("bulk product lookup: %w", err)
	}

	productMap := make(map[string]domain.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}
	return productMap, nil
}

// enrichOrder присоединяет к каждой позиции данные товара и производный URL
// изображения. Отсутствие товара в карте означает расхождение между
// хранилищами (товар удалён после создания заказа) — это ошибка целостности
// данных, не ошибка клиента, поэтому логируется отдельно и громче.
func (a *Aggregator) enrichOrder(order domain.Order, productMap map[string]domain.Product) (domain.EnrichedOrder, error) {
	enriched := domain.EnrichedOrder{
		ID:      order.ID,
		Details: make([]domain.EnrichedDetail, 0, len(order.Details)),
	}

	for _, detail := range order.Details {
		product, ok := productMap[detail.ProductID]
		if !ok {
			if a.metrics != nil {
				a.metrics.RecordReferentialDrift()
			}
			a.logger.WithFields(log.Fields{
				"order_id":   order.ID,
				"product_id": detail.ProductID,
			}).Error("referential drift: order references a product missing from the catalog")
			return domain.EnrichedOrder{}, domain.ProductNotFound(detail.ProductID)
		}

		enriched.Details = append(enriched.Details, domain.EnrichedDetail{
			OrderDetail: detail,
			Product:     product,
			Image:       fmt.Sprintf("%s/%s.jpg", a.cfg.ImageRoot, detail.ProductID),
		})
	}

	return enriched, nil
}
