package productservice

import (
	"fmt"
	"time"

	"gocatalog/internal/display"
	"gocatalog/internal/domain"
)

var categoryLabels = map[domain.ProductCategory]string{
	domain.Electronics: "Electronics & Technology",
	domain.Clothing:    "Clothing & Fashion",
	domain.Books:       "Books & Media",
	domain.Home:        "Home & Garden",
}

// Mapper projeta entidades Product em ProductProfile.
type Mapper struct {
	prices *display.PriceFormatter
}

func NewMapper(prices *display.PriceFormatter) *Mapper {
	return &Mapper{prices: prices}
}

func (m *Mapper) ToProfile(p domain.Product, now time.Time) domain.ProductProfile {
	return domain.ProductProfile{
		ID:                  p.ID,
		Name:                p.Name,
		Brand:               p.Brand,
		SKU:                 p.SKU,
		CategoryDisplayName: display.CategoryLabel(categoryLabels, p.Category),
		Price:               p.Price,
		FormattedPrice:      m.prices.Format(p.Price),
		ReleaseDate:         p.ReleaseDate,
		CreatedAt:           p.CreatedAt,
		ImageURL:            p.ImageURL,
		IsAvailable:         p.IsAvailable,
		StockQuantity:       p.StockQuantity,
		ProductAge:          ProductAge(p.ReleaseDate, now),
		BrandInitials:       display.Initials(p.Brand),
		AvailabilityStatus:  display.Availability(p.IsAvailable, p.StockQuantity, "Last Item"),
	}
}

// ProductAge classifica a idade do lançamento. Produtos não têm "Releases Soon":
// datas futuras caem em "New Release". "Classic" só sai com exatamente 1825 dias;
// acima disso continua em anos.
func ProductAge(released, now time.Time) string {
	days := now.Sub(released).Hours() / 24

	switch {
	case days < 30:
		return "New Release"
	case days < 365:
		return fmt.Sprintf("%d months old", int(days/30))
	case days < 1825:
		return fmt.Sprintf("%d years old", int(days/365))
	case days == 1825:
		return "Classic"
	default:
		return fmt.Sprintf("%d years old", int(days/365))
	}
}
