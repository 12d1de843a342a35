package orderservice

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/rules"
)

// DailyCreationLimit é o máximo de pedidos criados por dia (UTC).
const DailyCreationLimit = 500

var (
	authorPattern = regexp.MustCompile(`^[A-Za-z\s\-\.'’]+$`)

	inappropriateTitleWords = []string{"banned", "explicit", "forbidden", "violent"}
	childrenRestrictedWords = []string{"violence", "horror", "adult", "war", "blood"}
	technicalKeywords       = []string{
		"cloud", "data", "ai", "machine", "network", "programming",
		"security", "database", "architecture", "algorithm", "software", "hardware",
	}

	maxPrice          = decimal.NewFromInt(10000)
	minTechnicalPrice = decimal.NewFromInt(20)
	maxChildrenPrice  = decimal.NewFromInt(50)
	highValuePrice    = decimal.NewFromInt(100)
	premiumPrice      = decimal.NewFromInt(500)

	earliestPublishedDate = time.Date(1400, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Validator aplica as regras de criação de pedido na ordem de reporte.
type Validator struct {
	repo  OrderRepository
	now   func() time.Time
	log   logger.Logger
	rules rules.Set[domain.CreateOrderRequest]
}

// NewValidator monta a lista de regras. As regras com consulta ao repositório
// fazem exatamente uma consulta cada.
func NewValidator(repo OrderRepository, now func() time.Time, log logger.Logger) *Validator {
	v := &Validator{repo: repo, now: now, log: log}
	v.rules = v.buildRules()
	return v
}

// Validate devolve as mensagens violadas (vazio = válido). Erro = falha de infraestrutura.
func (v *Validator) Validate(ctx context.Context, req domain.CreateOrderRequest) ([]string, error) {
	return v.rules.Evaluate(ctx, req)
}

type request = domain.CreateOrderRequest

func (v *Validator) buildRules() rules.Set[request] {
	isTechnical := func(r request) bool { return r.Category == domain.Technical }
	isChildren := func(r request) bool { return r.Category == domain.Children }
	isFiction := func(r request) bool { return r.Category == domain.Fiction }

	return rules.Set[request]{
		// --- Título ---
		{Name: "title.required", Message: "Title is required.",
			Check: rules.Pure(func(r request) bool { return rules.NotBlank(r.Title) })},
		{Name: "title.length", Message: "Title must be between 1 and 200 characters.",
			Check: rules.Pure(func(r request) bool { return rules.LengthBetween(r.Title, 1, 200) })},
		{Name: "title.appropriate", Message: "Title contains inappropriate content.",
			Check: rules.Pure(func(r request) bool { return !rules.ContainsAnyFold(r.Title, inappropriateTitleWords) })},
		{Name: "title.unique", Message: "An order with the same title and author already exists.",
			Check: v.uniqueTitleAndAuthor},

		// --- Autor ---
		{Name: "author.required", Message: "Author is required.",
			Check: rules.Pure(func(r request) bool { return rules.NotBlank(r.Author) })},
		{Name: "author.length", Message: "Author must be between 2 and 100 characters.",
			Check: rules.Pure(func(r request) bool { return rules.LengthBetween(r.Author, 2, 100) })},
		{Name: "author.characters", Message: "Author contains invalid characters.",
			Check: rules.Pure(func(r request) bool { return rules.Matches(authorPattern, r.Author) })},

		// --- ISBN ---
		{Name: "isbn.required", Message: "ISBN is required.",
			Check: rules.Pure(func(r request) bool { return rules.NotBlank(r.ISBN) })},
		{Name: "isbn.format", Message: "ISBN must be 10 or 13 digits (hyphens optional).",
			Check: rules.Pure(func(r request) bool { return validISBN(r.ISBN) })},
		{Name: "isbn.unique", Message: "An order with this ISBN already exists.",
			Check: v.uniqueISBN},

		// --- Categoria ---
		{Name: "category.valid", Message: "Category must be a valid value.",
			Check: rules.Pure(func(r request) bool { return r.Category.IsValid() })},

		// --- Preço ---
		{Name: "price.positive", Message: "Price must be greater than 0.",
			Check: rules.Pure(func(r request) bool { return r.Price.IsPositive() })},
		{Name: "price.max", Message: "Price must be less than $10,000.",
			Check: rules.Pure(func(r request) bool { return r.Price.LessThan(maxPrice) })},

		// --- Data de publicação ---
		{Name: "published.not_future", Message: "Published date cannot be in the future.",
			Check: rules.Pure(func(r request) bool { return !r.PublishedDate.After(v.now().UTC()) })},
		{Name: "published.floor", Message: "Published date cannot be before year 1400.",
			Check: rules.Pure(func(r request) bool { return !r.PublishedDate.Before(earliestPublishedDate) })},

		// --- Estoque ---
		{Name: "stock.non_negative", Message: "Stock quantity cannot be negative.",
			Check: rules.Pure(func(r request) bool { return r.StockQuantity >= 0 })},
		{Name: "stock.max", Message: "Stock quantity cannot exceed 100,000.",
			Check: rules.Pure(func(r request) bool { return r.StockQuantity <= 100000 })},

		// --- Capa (opcional) ---
		{Name: "cover.url", Message: "Cover image URL must be a valid HTTP/HTTPS image URL (.jpg, .jpeg, .png, .gif, .webp).",
			When:  func(r request) bool { return r.CoverImageURL != nil && rules.NotBlank(*r.CoverImageURL) },
			Check: rules.Pure(func(r request) bool { return rules.IsImageURL(*r.CoverImageURL) })},

		// --- Regras de negócio (composta, mensagem única) ---
		{Name: "business", Message: "Order violates business rules. Check logs for details.",
			Check: v.businessRules},

		// --- Técnicos ---
		{Name: "technical.min_price", Message: "Technical orders must cost at least $20.00.", When: isTechnical,
			Check: rules.Pure(func(r request) bool { return r.Price.GreaterThanOrEqual(minTechnicalPrice) })},
		{Name: "technical.keywords", Message: "Technical orders must contain technical keywords in the title.", When: isTechnical,
			Check: rules.Pure(func(r request) bool { return rules.ContainsAnyFold(r.Title, technicalKeywords) })},
		{Name: "technical.recent", Message: "Technical orders must be published within the last 5 years.", When: isTechnical,
			Check: rules.Pure(func(r request) bool { return !r.PublishedDate.Before(v.now().UTC().AddDate(-5, 0, 0)) })},

		// --- Infantis ---
		{Name: "children.max_price", Message: "Children's orders cannot exceed $50.00.", When: isChildren,
			Check: rules.Pure(func(r request) bool { return r.Price.LessThanOrEqual(maxChildrenPrice) })},
		{Name: "children.title", Message: "Children's orders must have child-appropriate titles.", When: isChildren,
			Check: rules.Pure(func(r request) bool { return !rules.ContainsAnyFold(r.Title, childrenRestrictedWords) })},

		// --- Ficção ---
		{Name: "fiction.author", Message: "Fiction orders require author names of at least 5 characters.", When: isFiction,
			Check: rules.Pure(func(r request) bool { return rules.MinLength(r.Author, 5) })},

		// --- Cruzada final ---
		{Name: "high_value.stock", Message: "Orders over $100 must have stock quantity of 20 or less.",
			Check: rules.Pure(func(r request) bool { return !r.Price.GreaterThan(highValuePrice) || r.StockQuantity <= 20 })},
	}
}

func validISBN(isbn string) bool {
	clean, ok := rules.DigitsOnly(isbn)
	return ok && (len(clean) == 10 || len(clean) == 13)
}

func (v *Validator) uniqueISBN(ctx context.Context, r request) (bool, error) {
	exists, err := v.repo.ExistsByISBN(ctx, r.ISBN)
	return !exists, err
}

func (v *Validator) uniqueTitleAndAuthor(ctx context.Context, r request) (bool, error) {
	exists, err := v.repo.ExistsByTitleAndAuthor(ctx, r.Title, r.Author)
	return !exists, err
}

// businessRules avalia as regras compostas. O motivo da falha só vai para o log.
func (v *Validator) businessRules(ctx context.Context, r request) (bool, error) {
	log := v.log.WithContext(ctx)

	from, to := dayBounds(v.now())
	count, err := v.repo.CountCreatedBetween(ctx, from, to)
	if err != nil {
		return false, err
	}

	ok := true
	if count >= DailyCreationLimit {
		log.Warn("daily order creation limit reached", map[string]interface{}{"count": count, "limit": DailyCreationLimit})
		ok = false
	}
	if r.Category == domain.Technical && r.Price.LessThan(minTechnicalPrice) {
		log.Warn("technical order below minimum price", map[string]interface{}{"price": r.Price.String()})
		ok = false
	}
	if r.Category == domain.Children && rules.ContainsAnyFold(r.Title, childrenRestrictedWords) {
		log.Warn("children order title contains restricted content", map[string]interface{}{"title": r.Title})
		ok = false
	}
	if r.Price.GreaterThan(premiumPrice) && r.StockQuantity > 10 {
		log.Warn("premium order exceeds stock limit", map[string]interface{}{"price": r.Price.String(), "stock_quantity": r.StockQuantity})
		ok = false
	}
	return ok, nil
}

// dayBounds devolve [00:00, 24:00) do dia UTC de now.
func dayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return from, from.Add(24 * time.Hour)
}
