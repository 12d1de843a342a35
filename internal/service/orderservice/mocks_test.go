package orderservice_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/metrics"
)

// MockOrderRepository é uma implementação mock da interface OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	args := m.Called(ctx, order)
	if fn, ok := args.Get(0).(func(context.Context, domain.Order) domain.Order); ok {
		return fn(ctx, order), args.Error(1)
	}
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	args := m.Called(ctx, title, author)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

// cleanRepo devolve um repositório sem duplicatas e sem pedidos no dia.
func cleanRepo() *MockOrderRepository {
	repo := new(MockOrderRepository)
	repo.On("ExistsByTitleAndAuthor", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("ExistsByISBN", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CountCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	return repo
}

// spyRecorder guarda os registros de métricas emitidos.
type spyRecorder struct {
	mu      sync.Mutex
	records []metrics.CreationRecord
}

func (s *spyRecorder) RecordCreation(_ context.Context, rec metrics.CreationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *spyRecorder) all() []metrics.CreationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]metrics.CreationRecord(nil), s.records...)
}

// failingCache falha em Delete; o restante se comporta como cache vazio.
type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, error) { return "", errors.New("unreachable") }
func (failingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("unreachable")
}
func (failingCache) Delete(context.Context, string) error { return errors.New("connection refused") }
func (failingCache) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("unreachable")
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

// validTechnicalRequest passa por todas as regras.
func validTechnicalRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Title:         "Cloud Data Architecture",
		Author:        "Martin Kleppmann",
		ISBN:          "978-1-4493-7332-0",
		Category:      domain.Technical,
		Price:         decimal.NewFromInt(45),
		PublishedDate: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		CoverImageURL: strPtr("https://cdn.example.com/covers/cloud.png"),
		StockQuantity: 8,
	}
}
