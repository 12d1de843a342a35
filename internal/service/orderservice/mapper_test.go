package orderservice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gocatalog/internal/display"
	"gocatalog/internal/domain"
	"gocatalog/internal/service/orderservice"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:            "7a0c5a55-1f0b-4a4f-8d4c-2b5f1f2f3e4d",
		Title:         "Cloud Data Architecture",
		Author:        "Martin Kleppmann",
		ISBN:          "9781449373320",
		Category:      domain.Technical,
		Price:         decimal.NewFromInt(45),
		PublishedDate: fixedNow.AddDate(0, 0, -400),
		CoverImageURL: strPtr("https://cdn.example.com/covers/cloud.png"),
		IsAvailable:   true,
		StockQuantity: 8,
		CreatedAt:     fixedNow,
	}
}

func TestToProfile_Technical(t *testing.T) {
	m := orderservice.NewMapper(display.NewPriceFormatter("en-US"))

	p := m.ToProfile(sampleOrder(), fixedNow)

	assert.Equal(t, "Technical & Professional", p.CategoryDisplayName)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, "$45.00", p.FormattedPrice)
	assert.Equal(t, "1 years old", p.PublishedAge)
	assert.Equal(t, "MK", p.AuthorInitials)
	assert.Equal(t, "In Stock", p.AvailabilityStatus)
	assert.NotNil(t, p.CoverImageURL)
}

func TestToProfile_ChildrenDiscountAndHiddenCover(t *testing.T) {
	m := orderservice.NewMapper(display.NewPriceFormatter("en-US"))
	o := sampleOrder()
	o.Category = domain.Children
	o.Price = decimal.NewFromInt(30)

	p := m.ToProfile(o, fixedNow)

	assert.True(t, p.Price.Equal(decimal.NewFromInt(27)))
	assert.Equal(t, "$27.00", p.FormattedPrice)
	assert.Equal(t, "Children's Orders", p.CategoryDisplayName)
	assert.Nil(t, p.CoverImageURL)
	// a entidade não é alterada
	assert.True(t, o.Price.Equal(decimal.NewFromInt(30)))
	assert.NotNil(t, o.CoverImageURL)
}

func TestToProfile_UnknownCategoryAndAvailability(t *testing.T) {
	m := orderservice.NewMapper(display.NewPriceFormatter("en-US"))
	o := sampleOrder()
	o.Category = domain.OrderCategory(9)
	o.StockQuantity = 1

	p := m.ToProfile(o, fixedNow)
	assert.Equal(t, "Uncategorized", p.CategoryDisplayName)
	assert.Equal(t, "Last Copy", p.AvailabilityStatus)

	o.IsAvailable = false
	assert.Equal(t, "Out of Stock", m.ToProfile(o, fixedNow).AvailabilityStatus)
}

func TestToProfile_Idempotent(t *testing.T) {
	m := orderservice.NewMapper(display.NewPriceFormatter("en-US"))
	o := sampleOrder()

	assert.Equal(t, m.ToProfile(o, fixedNow), m.ToProfile(o, fixedNow))
}

func TestPublishedAge(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		age  time.Duration
		want string
	}{
		{-2 * day, "Releases Soon"},
		{10 * day, "New Release"},
		{29 * day, "New Release"},
		{30 * day, "1 months old"},
		{180 * day, "6 months old"},
		{364 * day, "12 months old"},
		{400 * day, "1 years old"},
		{800 * day, "2 years old"},
		{2000 * day, "Classic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderservice.PublishedAge(fixedNow.Add(-tt.age), fixedNow), tt.age.String())
	}
}

func TestPublishedAge_VeryOldDate(t *testing.T) {
	published := time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Classic", orderservice.PublishedAge(published, fixedNow))
}
