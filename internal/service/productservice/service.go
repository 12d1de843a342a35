package productservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"go.opentelemetry.io/otel/attribute"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
	"gocatalog/internal/pkg/tracing"
)

// AllProductsCacheKey guarda a lista de entidades de produto.
const AllProductsCacheKey = "all_products"

const tracerName = "productservice"

// ProductRepository define o contrato que este Serviço espera da camada de Persistência.
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// Service orquestra criação e leitura de produtos.
type Service struct {
	repo      ProductRepository
	cache     cache.Client
	cacheTTL  time.Duration
	validator *Validator
	mapper    *Mapper
	metrics   metrics.Recorder
	logger    logger.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock troca o relógio do serviço (testes).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ProductRepository, cacheClient cache.Client, cacheTTL time.Duration, mapper *Mapper, recorder metrics.Recorder, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		mapper:   mapper,
		metrics:  recorder,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = NewValidator(repo, s.now, log)
	return s
}

// --- Implementação: CreateProduct ---

// CreateProduct valida, persiste, invalida "all_products" e devolve o perfil.
func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (domain.ProductProfile, error) {
	operationID := ksuid.New().String()
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"operation_id": operationID,
		"sku":          req.SKU,
	})
	ctx, span := tracing.Start(ctx, tracerName, "CreateProduct",
		attribute.String("operation.id", operationID),
		attribute.String("product.sku", req.SKU),
	)
	defer span.End()

	log := s.logger.WithContext(ctx)
	began := time.Now()
	rec := metrics.CreationRecord{
		OperationID: operationID,
		Entity:      "product",
		Title:       req.Name,
		Code:        req.SKU,
		Category:    metricsCategory(req),
	}
	finish := func(err error) {
		rec.TotalDuration = time.Since(began)
		rec.Success = err == nil
		if err != nil {
			rec.ErrorReason = errorReason(err)
			tracing.Fail(span, err)
		}
		s.metrics.RecordCreation(ctx, rec)
	}

	log.Info("product creation started", map[string]interface{}{
		"name":     req.Name,
		"brand":    req.Brand,
		"category": req.Category.String(),
	})

	// 1. Validação
	validationStart := time.Now()
	violations, err := s.validator.Validate(ctx, req)
	rec.ValidationDuration = time.Since(validationStart)
	if err != nil {
		err = apperror.NewInternalError("product validation could not complete", err)
		log.Error("product validation aborted", err)
		finish(err)
		return domain.ProductProfile{}, err
	}
	if len(violations) > 0 {
		log.Warn("product validation failed", map[string]interface{}{"errors": violations})
		err := apperror.NewValidationError(violations...)
		finish(err)
		return domain.ProductProfile{}, err
	}
	log.Info("sku validation performed", nil)
	log.Info("stock validation performed", map[string]interface{}{"stock_quantity": req.StockQuantity})

	// 2. Entidade
	product := domain.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		ReleaseDate:   req.ReleaseDate,
		ImageURL:      normalizeURL(req.ImageURL),
		IsAvailable:   req.StockQuantity > 0,
		StockQuantity: req.StockQuantity,
		CreatedAt:     s.now().UTC(),
	}

	// 3. Persistência
	log.Info("database operation started", map[string]interface{}{"name": req.Name})
	persistStart := time.Now()
	saved, err := s.repo.Save(ctx, product)
	rec.PersistDuration = time.Since(persistStart)
	rec.PersistAttempted = true
	if err != nil {
		log.Error("failed to persist product", err)
		finish(err)
		return domain.ProductProfile{}, err
	}
	log.Info("database operation completed", map[string]interface{}{"product_id": saved.ID})

	// 4. Cache
	if err := s.cache.Delete(ctx, AllProductsCacheKey); err != nil {
		err = apperror.NewInternalError("failed to invalidate product list cache", err)
		log.Error("cache invalidation failed", err)
		finish(err)
		return domain.ProductProfile{}, err
	}
	log.Debug("cache operation performed", map[string]interface{}{"key": AllProductsCacheKey})

	// 5. Derivação
	profile := s.mapper.ToProfile(saved, s.now())

	finish(nil)
	log.Info("product created", map[string]interface{}{
		"product_id": saved.ID,
		"total_ms":   rec.TotalDuration.Milliseconds(),
	})
	return profile, nil
}

// --- Leitura ---

// ListProducts devolve todos os produtos; a lista de entidades fica em cache por cacheTTL.
func (s *Service) ListProducts(ctx context.Context) ([]domain.ProductProfile, error) {
	ctx, span := tracing.Start(ctx, tracerName, "ListProducts")
	defer span.End()

	products, err := s.loadAll(ctx)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	now := s.now()
	profiles := make([]domain.ProductProfile, 0, len(products))
	for _, p := range products {
		profiles = append(profiles, s.mapper.ToProfile(p, now))
	}
	return profiles, nil
}

func (s *Service) GetProductByID(ctx context.Context, id string) (domain.ProductProfile, error) {
	ctx, span := tracing.Start(ctx, tracerName, "GetProduct", attribute.String("product.id", id))
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return domain.ProductProfile{}, apperror.NewNotFoundError(fmt.Sprintf("Product with ID %s not found.", id))
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var notFound *apperror.NotFoundError
		if !errors.As(err, &notFound) {
			tracing.Fail(span, err)
		}
		return domain.ProductProfile{}, err
	}
	return s.mapper.ToProfile(product, s.now()), nil
}

func (s *Service) loadAll(ctx context.Context) ([]domain.Product, error) {
	log := s.logger.WithContext(ctx)

	cached, err := s.cache.Get(ctx, AllProductsCacheKey)
	if err == nil {
		var products []domain.Product
		if jsonErr := json.Unmarshal([]byte(cached), &products); jsonErr == nil {
			log.Debug("product list served from cache", map[string]interface{}{"count": len(products)})
			return products, nil
		}
		log.Warn("discarding undecodable product list cache entry", nil)
	} else if !cache.IsMiss(err) {
		log.Warn("product list cache read failed", map[string]interface{}{"error": err.Error()})
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, AllProductsCacheKey, payload, s.cacheTTL); err != nil {
			log.Warn("product list cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return products, nil
}

func normalizeURL(u *string) *string {
	if u == nil || strings.TrimSpace(*u) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*u)
	return &trimmed
}

func errorReason(err error) string {
	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		return "validation failed: " + strings.Join(vErr.Details, "; ")
	}
	return err.Error()
}

// metricsCategory limita o rótulo de categoria aos valores do enum.
func metricsCategory(req domain.CreateProductRequest) string {
	if !req.Category.IsValid() {
		return metrics.InvalidCategory
	}
	return req.Category.String()
}
