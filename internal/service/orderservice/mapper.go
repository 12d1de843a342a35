package orderservice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gocatalog/internal/display"
	"gocatalog/internal/domain"
)

var categoryLabels = map[domain.OrderCategory]string{
	domain.Fiction:    "Fiction & Literature",
	domain.NonFiction: "Non-Fiction",
	domain.Technical:  "Technical & Professional",
	domain.Children:   "Children's Orders",
}

var childrenDiscount = decimal.RequireFromString("0.9")

// Mapper projeta entidades Order em OrderProfile. Todas as derivações são puras em (order, now).
type Mapper struct {
	prices *display.PriceFormatter
}

func NewMapper(prices *display.PriceFormatter) *Mapper {
	return &Mapper{prices: prices}
}

// ToProfile calcula os campos derivados sem alterar a entidade.
func (m *Mapper) ToProfile(o domain.Order, now time.Time) domain.OrderProfile {
	price := EffectivePrice(o)

	cover := o.CoverImageURL
	if o.Category == domain.Children {
		cover = nil
	}

	return domain.OrderProfile{
		ID:                  o.ID,
		Title:               o.Title,
		Author:              o.Author,
		ISBN:                o.ISBN,
		CategoryDisplayName: display.CategoryLabel(categoryLabels, o.Category),
		Price:               price,
		FormattedPrice:      m.prices.Format(price),
		PublishedDate:       o.PublishedDate,
		CreatedAt:           o.CreatedAt,
		CoverImageURL:       cover,
		IsAvailable:         o.IsAvailable,
		StockQuantity:       o.StockQuantity,
		PublishedAge:        PublishedAge(o.PublishedDate, now),
		AuthorInitials:      display.Initials(o.Author),
		AvailabilityStatus:  display.Availability(o.IsAvailable, o.StockQuantity, "Last Copy"),
	}
}

// EffectivePrice aplica 10% de desconto a pedidos infantis.
func EffectivePrice(o domain.Order) decimal.Decimal {
	if o.Category == domain.Children {
		return o.Price.Mul(childrenDiscount)
	}
	return o.Price
}

// PublishedAge classifica a idade da publicação em dias fracionários.
func PublishedAge(published, now time.Time) string {
	days := now.Sub(published).Hours() / 24

	switch {
	case days < 0:
		return "Releases Soon"
	case days < 30:
		return "New Release"
	case days < 365:
		return fmt.Sprintf("%d months old", max(1, int(days/30)))
	case days < 1825:
		return fmt.Sprintf("%d years old", max(1, int(days/365)))
	default:
		return "Classic"
	}
}
