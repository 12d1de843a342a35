package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa o item do catálogo de produtos (a Entidade).
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	SKU           string          `json:"sku"` // Stock Keeping Unit (código único)
	Category      ProductCategory `json:"category"`
	Price         decimal.Decimal `json:"price"`
	ReleaseDate   time.Time       `json:"releaseDate"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	IsAvailable   bool            `json:"isAvailable"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// CreateProductRequest é o payload de POST /products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	SKU           string          `json:"sku"`
	Category      ProductCategory `json:"category"`
	Price         decimal.Decimal `json:"price"`
	ReleaseDate   time.Time       `json:"releaseDate"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
}

func NewCreateProductRequest() CreateProductRequest {
	return CreateProductRequest{StockQuantity: DefaultStockQuantity}
}

// ProductProfile é a projeção de resposta de um produto.
type ProductProfile struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Brand               string          `json:"brand"`
	SKU                 string          `json:"sku"`
	CategoryDisplayName string          `json:"categoryDisplayName"`
	Price               decimal.Decimal `json:"price"`
	FormattedPrice      string          `json:"formattedPrice"`
	ReleaseDate         time.Time       `json:"releaseDate"`
	CreatedAt           time.Time       `json:"createdAt"`
	ImageURL            *string         `json:"imageUrl"`
	IsAvailable         bool            `json:"isAvailable"`
	StockQuantity       int             `json:"stockQuantity"`
	ProductAge          string          `json:"productAge"`
	BrandInitials       string          `json:"brandInitials"`
	AvailabilityStatus  string          `json:"availabilityStatus"`
}
