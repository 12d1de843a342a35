package product

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

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (domain.ProductProfile, error)
	ListProducts(ctx context.Context) ([]domain.ProductProfile, error)
	GetProductByID(ctx context.Context, id string) (domain.ProductProfile, error)
}

// Handler agrupa os Handlers HTTP de produtos.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateProductHandler lida com POST /products.
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	req := domain.NewCreateProductRequest()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		response.Error(w, r, h.Logger, apperror.NewBadRequestError("Request body is not valid JSON."))
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), req)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Location", "/products/"+created.ID)
	response.JSON(w, http.StatusCreated, created)
}

// ListProductsHandler lida com GET /products.
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

// GetProductHandler lida com GET /products/{id}.
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}
