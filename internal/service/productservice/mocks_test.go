package productservice_test

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

// MockProductRepository é uma implementação mock da interface ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	if fn, ok := args.Get(0).(func(context.Context, domain.Product) domain.Product); ok {
		return fn(ctx, product), args.Error(1)
	}
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error) {
	args := m.Called(ctx, name, brand)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func cleanRepo() *MockProductRepository {
	repo := new(MockProductRepository)
	repo.On("ExistsByNameAndBrand", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("ExistsBySKU", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CountCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	return repo
}

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

func validElectronicsRequest() domain.CreateProductRequest {
	return domain.CreateProductRequest{
		Name:          "Wireless Headphones",
		Brand:         "Sony",
		SKU:           "SONY-WH1000",
		Category:      domain.Electronics,
		Price:         decimal.RequireFromString("299.99"),
		ReleaseDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		ImageURL:      strPtr("https://img.example.com/wh1000.jpg"),
		StockQuantity: 8,
	}
}
