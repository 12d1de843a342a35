package productservice

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/rules"
)

// DailyCreationLimit é o máximo de produtos criados por dia (UTC).
const DailyCreationLimit = 500

var (
	brandPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-'\.]+$`)
	skuPattern   = regexp.MustCompile(`^[a-zA-Z0-9\-]{5,20}$`)

	inappropriateNameWords = []string{"spam", "scam", "fake", "illegal"}
	homeRestrictedWords    = []string{"weapon", "dangerous", "hazardous"}

	maxPrice            = decimal.NewFromInt(10000)
	minElectronicsPrice = decimal.NewFromInt(50)
	premiumPrice        = decimal.NewFromInt(500)

	earliestReleaseDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Validator aplica as regras de criação de produto.
type Validator struct {
	repo  ProductRepository
	now   func() time.Time
	log   logger.Logger
	rules rules.Set[domain.CreateProductRequest]
}

func NewValidator(repo ProductRepository, now func() time.Time, log logger.Logger) *Validator {
	v := &Validator{repo: repo, now: now, log: log}
	v.rules = v.buildRules()
	return v
}

// Validate devolve as mensagens violadas, na ordem das regras.
func (v *Validator) Validate(ctx context.Context, req domain.CreateProductRequest) ([]string, error) {
	return v.rules.Evaluate(ctx, req)
}

type request = domain.CreateProductRequest

func (v *Validator) buildRules() rules.Set[request] {
	return rules.Set[request]{
		// --- Nome ---
		{Name: "name.required", Message: "Product name is required",
			Check: rules.Pure(func(r request) bool { return rules.NotBlank(r.Name) })},
		{Name: "name.length", Message: "Product name must be between 1 and 200 characters",
			Check: rules.Pure(func(r request) bool { return rules.LengthBetween(r.Name, 1, 200) })},
		{Name: "name.appropriate", Message: "Product name contains inappropriate content",
			Check: rules.Pure(func(r request) bool { return !rules.ContainsAnyFold(r.Name, inappropriateNameWords) })},
		{Name: "name.unique", Message: "Product name must be unique for the same brand",
			Check: v.uniqueNameAndBrand},

		// --- Marca ---
		{Name: "brand.required", Message: "Brand is required",
			Check: rules.Pure(func(r request) bool { return rules.NotBlank(r.Brand) })},
		{Name: "brand.length", Message: "Brand must be between 2 and 100 characters",
			Check: rules.Pure(func(r request) bool { return rules.LengthBetween(r.Brand, 2, 100) })},
		{Name: "brand.characters", Message: "Brand contains invalid characters",
			Check: rules.Pure(func(r request) bool { return rules.Matches(brandPattern, r.Brand) })},

		// --- SKU ---
		{Name: "sku.required", Message: "SKU is required",
			Check: rules.Pure(func(r request) bool { return rules.NotBlank(r.SKU) })},
		{Name: "sku.format", Message: "SKU must be alphanumeric with hyphens, 5-20 characters",
			Check: rules.Pure(func(r request) bool { return rules.Matches(skuPattern, r.SKU) })},
		{Name: "sku.unique", Message: "SKU already exists in system",
			Check: v.uniqueSKU},

		// --- Categoria ---
		{Name: "category.valid", Message: "Category must be a valid enum value",
			Check: rules.Pure(func(r request) bool { return r.Category.IsValid() })},

		// --- Preço ---
		{Name: "price.positive", Message: "Price must be greater than 0",
			Check: rules.Pure(func(r request) bool { return r.Price.IsPositive() })},
		{Name: "price.max", Message: "Price must be less than $10,000",
			Check: rules.Pure(func(r request) bool { return r.Price.LessThan(maxPrice) })},

		// --- Lançamento ---
		{Name: "release.not_future", Message: "Release date cannot be in the future",
			Check: rules.Pure(func(r request) bool { return !r.ReleaseDate.After(v.now().UTC()) })},
		{Name: "release.floor", Message: "Release date cannot be before year 1900",
			Check: rules.Pure(func(r request) bool { return !r.ReleaseDate.Before(earliestReleaseDate) })},

		// --- Estoque ---
		{Name: "stock.non_negative", Message: "Stock quantity cannot be negative",
			Check: rules.Pure(func(r request) bool { return r.StockQuantity >= 0 })},
		{Name: "stock.max", Message: "Stock quantity cannot exceed 100,000",
			Check: rules.Pure(func(r request) bool { return r.StockQuantity <= 100000 })},

		// --- Imagem (opcional) ---
		{Name: "image.url", Message: "Image URL must be valid and end with .jpg, .jpeg, .png, .gif, or .webp",
			When:  func(r request) bool { return r.ImageURL != nil && *r.ImageURL != "" },
			Check: rules.Pure(func(r request) bool { return rules.IsImageURLSuffix(*r.ImageURL) })},

		// --- Regras de negócio ---
		{Name: "business", Message: "Product does not meet business rules",
			Check: v.businessRules},
	}
}

func (v *Validator) uniqueSKU(ctx context.Context, r request) (bool, error) {
	exists, err := v.repo.ExistsBySKU(ctx, r.SKU)
	return !exists, err
}

func (v *Validator) uniqueNameAndBrand(ctx context.Context, r request) (bool, error) {
	exists, err := v.repo.ExistsByNameAndBrand(ctx, r.Name, r.Brand)
	return !exists, err
}

// businessRules loga cada motivo de falha; o cliente recebe só a mensagem genérica.
func (v *Validator) businessRules(ctx context.Context, r request) (bool, error) {
	log := v.log.WithContext(ctx)

	y, m, d := v.now().UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	count, err := v.repo.CountCreatedBetween(ctx, from, from.Add(24*time.Hour))
	if err != nil {
		return false, err
	}

	ok := true
	if count >= DailyCreationLimit {
		log.Warn("daily product creation limit reached", map[string]interface{}{"count": count, "limit": DailyCreationLimit})
		ok = false
	}
	if r.Category == domain.Electronics && r.Price.LessThan(minElectronicsPrice) {
		log.Warn("electronics product below minimum price", map[string]interface{}{"price": r.Price.String()})
		ok = false
	}
	if r.Category == domain.Home && rules.ContainsAnyFold(r.Name, homeRestrictedWords) {
		log.Warn("home product name contains restricted words", map[string]interface{}{"name": r.Name})
		ok = false
	}
	if r.Price.GreaterThan(premiumPrice) && r.StockQuantity > 10 {
		log.Warn("premium product exceeds stock limit", map[string]interface{}{"price": r.Price.String(), "stock_quantity": r.StockQuantity})
		ok = false
	}
	return ok, nil
}
