package book

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gocatalog/internal/api/response"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/service/bookservice"
)

const (
	maxBodyBytes    = 1 << 20
	defaultPage     = 1
	defaultPageSize = 10
)

// BookService define o contrato que o Handler espera da camada de Serviço.
type BookService interface {
	List(ctx context.Context) ([]domain.Book, error)
	ListPaged(ctx context.Context, filter domain.BookFilter) (domain.PagedResult[domain.Book], error)
	Get(ctx context.Context, id int) (domain.Book, error)
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
	Update(ctx context.Context, id int, book domain.Book) error
	Delete(ctx context.Context, id int) error
}

// Handler agrupa os Handlers de /api/books.
type Handler struct {
	Service BookService
	Logger  logger.Logger
}

func NewHandler(svc BookService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListBooksHandler lida com GET /api/books.
func (h *Handler) ListBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, books)
}

// ListBooksPaginatedHandler lida com GET /api/books/paginated?page=1&pageSize=10.
func (h *Handler) ListBooksPaginatedHandler(w http.ResponseWriter, r *http.Request) {
	page, errPage := queryInt(r, "page", defaultPage)
	size, errSize := queryInt(r, "pageSize", defaultPageSize)
	if errPage != nil || errSize != nil {
		response.Error(w, r, h.Logger, apperror.NewBadRequestError(bookservice.InvalidPagingMessage))
		return
	}

	result, err := h.Service.ListPaged(r.Context(), domain.BookFilter{Page: page, PageSize: size})
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// GetBookHandler lida com GET /api/books/{id}.
func (h *Handler) GetBookHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	book, err := h.Service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, book)
}

// CreateBookHandler lida com POST /api/books.
func (h *Handler) CreateBookHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.Book
	if !h.decode(w, r, &in) {
		return
	}

	created, err := h.Service.Create(r.Context(), in)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/books/%d", created.ID))
	response.JSON(w, http.StatusCreated, created)
}

// UpdateBookHandler lida com PUT /api/books/{id}.
func (h *Handler) UpdateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}
	var in domain.Book
	if !h.decode(w, r, &in) {
		return
	}

	if err := h.Service.Update(r.Context(), id, in); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

// DeleteBookHandler lida com DELETE /api/books/{id}.
func (h *Handler) DeleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

// --- Auxiliares ---

func (h *Handler) bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, apperror.NewBadRequestError("Book ID must be an integer."))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst *domain.Book) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		response.Error(w, r, h.Logger, apperror.NewBadRequestError("Request body is not valid JSON."))
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
