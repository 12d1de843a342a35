package order

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gocatalog/internal/api/response"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

const maxBodyBytes = 1 << 20

// OrderService define o contrato que o Handler espera da camada de Serviço.
type OrderService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderProfile, error)
	ListOrders(ctx context.Context) ([]domain.OrderProfile, error)
	GetOrderByID(ctx context.Context, id string) (domain.OrderProfile, error)
}

// Handler agrupa os Handlers HTTP de pedidos.
type Handler struct {
	Service OrderService
	Logger  logger.Logger
}

func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateOrderHandler lida com POST /orders.
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	// 1. Decodificação (stockQuantity ausente fica com o padrão)
	req := domain.NewCreateOrderRequest()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.Error(w, r, h.Logger, apperror.NewBadRequestError("Request body is not valid JSON."))
		return
	}

	// 2. Serviço
	created, err := h.Service.CreateOrder(r.Context(), req)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	// 3. 201 + Location
	w.Header().Set("Location", "/orders/"+created.ID)
	response.JSON(w, http.StatusCreated, created)
}

// ListOrdersHandler lida com GET /orders.
func (h *Handler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListOrders(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, orders)
}

// GetOrderHandler lida com GET /orders/{id}.
func (h *Handler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, order)
}
