package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/marrcelo/shipstore/internal/domain"
	"github.com/marrcelo/shipstore/internal/service/aggregator"
	"github.com/marrcelo/shipstore/internal/service/orchestrator"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

// Handler обслуживает HTTP-интерфейс шлюза: каталог товаров и заказы.
type Handler struct {
	aggregator   *aggregator.Aggregator
	orchestrator *orchestrator.Orchestrator
	products     domain.ProductStore
	logger       *log.Entry
}

// NewHandler создаёт обработчик HTTP-запросов шлюза.
func NewHandler(agg *aggregator.Aggregator, orch *orchestrator.Orchestrator, products domain.ProductStore, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "gateway")
	}
	return &Handler{
		aggregator:   agg,
		orchestrator: orch,
		products:     products,
		logger:       logger,
	}
}

// GetProduct возвращает товар по его ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.products.Get(r.Context(), productID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct создаёт или перезаписывает товар в каталоге.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product := domain.Product{
		ID:                req.ID,
		Title:             req.Title,
		PassengerCapacity: req.PassengerCapacity,
		MaximumSpeed:      req.MaximumSpeed,
		InStock:           req.InStock,
	}
	if err := h.products.Create(r.Context(), product); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CreateProductResponse{ID: product.ID})
}

// DeleteProduct удаляет товар; отсутствие товара даёт 404.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if err := h.products.Delete(r.Context(), productID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders возвращает страницу заказов, обогащённых данными каталога.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	result, err := h.aggregator.ListOrders(r.Context(), page, limit)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetOrder возвращает один обогащённый заказ.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "order_not_found", "order id must be an integer")
		return
	}

	order, err := h.aggregator.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CreateOrder создаёт заказ из списка позиций.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	details := make([]domain.NewOrderDetail, 0, len(req.OrderDetails))
	for _, item := range req.OrderDetails {
		details = append(details, domain.NewOrderDetail{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := h.orchestrator.CreateOrder(r.Context(), details)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CreateOrderResponse{ID: orderID})
}

// writeDomainError транслирует доменные ошибки в HTTP-статусы.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidQueryParam):
		writeError(w, http.StatusUnprocessableEntity, "invalid_query_param", err.Error())
	default:
		h.logger.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// queryInt читает целочисленный query-параметр с значением по умолчанию.
// Нечисловые значения отдаются сервису как есть отрицательным маркером,
// чтобы сработала доменная валидация параметров пагинации.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
