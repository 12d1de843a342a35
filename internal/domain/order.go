package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStockQuantity é usado quando o payload de criação omite o estoque.
const DefaultStockQuantity = 1

// Order é a entidade persistida de pedido (um título do catálogo).
type Order struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn"`
	Category      OrderCategory   `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate time.Time       `json:"publishedDate"`
	CoverImageURL *string         `json:"coverImageUrl,omitempty"`
	IsAvailable   bool            `json:"isAvailable"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// CreateOrderRequest é o payload de POST /orders.
type CreateOrderRequest struct {
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn"`
	Category      OrderCategory   `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate time.Time       `json:"publishedDate"`
	CoverImageURL *string         `json:"coverImageUrl,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
}

// NewCreateOrderRequest retorna o payload com os valores padrão aplicados antes do decode.
func NewCreateOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{StockQuantity: DefaultStockQuantity}
}

// OrderProfile é a projeção de resposta de um pedido. Os campos derivados
// são recalculados a cada leitura e nunca persistidos.
type OrderProfile struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Author              string          `json:"author"`
	ISBN                string          `json:"isbn"`
	CategoryDisplayName string          `json:"categoryDisplayName"`
	Price               decimal.Decimal `json:"price"`
	FormattedPrice      string          `json:"formattedPrice"`
	PublishedDate       time.Time       `json:"publishedDate"`
	CreatedAt           time.Time       `json:"createdAt"`
	CoverImageURL       *string         `json:"coverImageUrl"`
	IsAvailable         bool            `json:"isAvailable"`
	StockQuantity       int             `json:"stockQuantity"`
	PublishedAge        string          `json:"publishedAge"`
	AuthorInitials      string          `json:"authorInitials"`
	AvailabilityStatus  string          `json:"availabilityStatus"`
}
