package orderservice

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

// AllOrdersCacheKey guarda a lista de entidades; invalidada a cada criação bem-sucedida.
const AllOrdersCacheKey = "all_orders"

const tracerName = "orderservice"

// OrderRepository define o contrato que este Serviço espera da camada de Persistência.
type OrderRepository interface {
	Save(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id string) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// Service orquestra criação e leitura de pedidos.
type Service struct {
	repo      OrderRepository
	cache     cache.Client
	cacheTTL  time.Duration
	validator *Validator
	mapper    *Mapper
	metrics   metrics.Recorder
	logger    logger.Logger
	now       func() time.Time
}

// Option ajusta o Service na construção.
type Option func(*Service)

// WithClock troca o relógio usado nas datas de criação, validação e derivação.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService monta o Service com suas dependências.
func NewService(repo OrderRepository, cacheClient cache.Client, cacheTTL time.Duration, mapper *Mapper, recorder metrics.Recorder, log logger.Logger, opts ...Option) *Service {
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

// --- Implementação: CreateOrder ---

// CreateOrder valida, persiste, invalida o cache e devolve o perfil derivado.
// Emite exatamente um registro de métricas por chamada.
func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderProfile, error) {
	operationID := ksuid.New().String()
	ctx = logger.WithFields(ctx, map[string]interface{}{"operation_id": operationID})
	ctx, span := tracing.Start(ctx, tracerName, "CreateOrder",
		attribute.String("operation.id", operationID),
		attribute.String("order.isbn", req.ISBN),
	)
	defer span.End()

	log := s.logger.WithContext(ctx)
	began := time.Now()
	rec := metrics.CreationRecord{
		OperationID: operationID,
		Entity:      "order",
		Title:       req.Title,
		Code:        req.ISBN,
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

	log.Info("order creation started", map[string]interface{}{
		"title":    req.Title,
		"author":   req.Author,
		"category": req.Category.String(),
		"isbn":     req.ISBN,
	})

	// 1. Validação
	validationStart := time.Now()
	violations, err := s.validator.Validate(ctx, req)
	rec.ValidationDuration = time.Since(validationStart)
	if err != nil {
		err = apperror.NewInternalError("order validation could not complete", err)
		log.Error("order validation aborted", err)
		finish(err)
		return domain.OrderProfile{}, err
	}
	if len(violations) > 0 {
		log.Warn("order validation failed", map[string]interface{}{"errors": violations})
		err := apperror.NewValidationError(violations...)
		finish(err)
		return domain.OrderProfile{}, err
	}
	log.Info("order validation passed", nil)

	// 2. Nova verificação do ISBN (reduz a janela de corrida entre validação e insert)
	exists, err := s.repo.ExistsByISBN(ctx, req.ISBN)
	if err != nil {
		log.Error("isbn re-check failed", err)
		finish(err)
		return domain.OrderProfile{}, err
	}
	if exists {
		log.Warn("duplicate isbn detected after validation", map[string]interface{}{"isbn": req.ISBN})
		err := apperror.NewValidationError(fmt.Sprintf("An order with ISBN '%s' already exists.", req.ISBN))
		finish(err)
		return domain.OrderProfile{}, err
	}
	log.Debug("stock validation performed", map[string]interface{}{"stock_quantity": req.StockQuantity})

	// 3. Montagem da entidade
	order := domain.Order{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Category:      req.Category,
		Price:         req.Price,
		PublishedDate: req.PublishedDate,
		CoverImageURL: normalizeURL(req.CoverImageURL),
		IsAvailable:   req.StockQuantity > 0,
		StockQuantity: req.StockQuantity,
		CreatedAt:     s.now().UTC(),
	}

	// 4. Persistência
	persistStart := time.Now()
	saved, err := s.repo.Save(ctx, order)
	rec.PersistDuration = time.Since(persistStart)
	rec.PersistAttempted = true
	if err != nil {
		log.Error("failed to persist order", err)
		finish(err)
		return domain.OrderProfile{}, err
	}
	log.Info("order persisted", map[string]interface{}{"order_id": saved.ID})

	// 5. Invalidação do cache. O pedido já está salvo; a falha é propagada sem rollback.
	if err := s.cache.Delete(ctx, AllOrdersCacheKey); err != nil {
		err = apperror.NewInternalError("failed to invalidate order list cache", err)
		log.Error("cache invalidation failed", err)
		finish(err)
		return domain.OrderProfile{}, err
	}

	// 6. Derivação
	profile := s.mapper.ToProfile(saved, s.now())

	finish(nil)
	log.Info("order created", map[string]interface{}{
		"order_id": saved.ID,
		"total_ms": rec.TotalDuration.Milliseconds(),
	})
	return profile, nil
}

// --- Leitura ---

// ListOrders devolve todos os pedidos, com a lista de entidades cacheada por cacheTTL.
// Os campos derivados são recalculados a cada chamada.
func (s *Service) ListOrders(ctx context.Context) ([]domain.OrderProfile, error) {
	ctx, span := tracing.Start(ctx, tracerName, "ListOrders")
	defer span.End()

	orders, err := s.loadAll(ctx)
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	now := s.now()
	profiles := make([]domain.OrderProfile, 0, len(orders))
	for _, o := range orders {
		profiles = append(profiles, s.mapper.ToProfile(o, now))
	}
	return profiles, nil
}

// GetOrderByID busca um pedido. IDs que não são UUID são tratados como inexistentes.
func (s *Service) GetOrderByID(ctx context.Context, id string) (domain.OrderProfile, error) {
	ctx, span := tracing.Start(ctx, tracerName, "GetOrder", attribute.String("order.id", id))
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return domain.OrderProfile{}, apperror.NewNotFoundError(fmt.Sprintf("Order with ID %s not found.", id))
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var notFound *apperror.NotFoundError
		if !errors.As(err, &notFound) {
			tracing.Fail(span, err)
		}
		return domain.OrderProfile{}, err
	}
	return s.mapper.ToProfile(order, s.now()), nil
}

// loadAll implementa cache-aside sobre a lista de entidades.
func (s *Service) loadAll(ctx context.Context) ([]domain.Order, error) {
	log := s.logger.WithContext(ctx)

	cached, err := s.cache.Get(ctx, AllOrdersCacheKey)
	if err == nil {
		var orders []domain.Order
		if jsonErr := json.Unmarshal([]byte(cached), &orders); jsonErr == nil {
			log.Debug("order list served from cache", map[string]interface{}{"count": len(orders)})
			return orders, nil
		}
		log.Warn("discarding undecodable order list cache entry", nil)
	} else if !cache.IsMiss(err) {
		log.Warn("order list cache read failed", map[string]interface{}{"error": err.Error()})
	}

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(orders); err == nil {
		if err := s.cache.Set(ctx, AllOrdersCacheKey, payload, s.cacheTTL); err != nil {
			log.Warn("order list cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return orders, nil
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
func metricsCategory(req domain.CreateOrderRequest) string {
	if !req.Category.IsValid() {
		return metrics.InvalidCategory
	}
	return req.Category.String()
}
