package productrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/repository/productrepo"
)

var columns = []string{"id", "name", "brand", "sku", "category", "price", "release_date", "image_url", "is_available", "stock_quantity", "created_at", "updated_at"}

func setupProductRepo(t *testing.T) (*productrepo.ProductRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel)))
	return productrepo.NewProductRepository(db, time.Second, log), mock
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:            "0b8f6f0e-4a1d-4a8e-9f55-7b0e0f6c2d10",
		Name:          "Noise Cancelling Headphones",
		Brand:         "Acme Audio",
		SKU:           "ACM-HP-001",
		Category:      domain.Electronics,
		Price:         decimal.RequireFromString("199.90"),
		ReleaseDate:   time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		IsAvailable:   true,
		StockQuantity: 15,
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSave_Success(t *testing.T) {
	repo, mock := setupProductRepo(t)
	p := sampleProduct()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Brand, p.SKU, 0, sqlmock.AnyArg(), p.ReleaseDate, nil, true, 15, p.CreatedAt, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.Save(context.Background(), p)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_DuplicateSKU(t *testing.T) {
	repo, mock := setupProductRepo(t)

	mock.ExpectExec("INSERT INTO products").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_sku_key"})

	_, err := repo.Save(context.Background(), sampleProduct())

	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"SKU already exists in system"}, vErr.Details)
}

func TestSave_DuplicateNameBrand(t *testing.T) {
	repo, mock := setupProductRepo(t)

	mock.ExpectExec("INSERT INTO products").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_name_brand_key"})

	_, err := repo.Save(context.Background(), sampleProduct())

	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Product name must be unique for the same brand"}, vErr.Details)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := setupProductRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	var nf *apperror.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestFindAll(t *testing.T) {
	repo, mock := setupProductRepo(t)
	p := sampleProduct()

	rows := sqlmock.NewRows(columns).
		AddRow(p.ID, p.Name, p.Brand, p.SKU, 0, "199.90", p.ReleaseDate, "https://img.example.com/hp.jpg", true, 15, p.CreatedAt, nil)
	mock.ExpectQuery("SELECT (.+) FROM products ORDER BY created_at").WillReturnRows(rows)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Electronics, products[0].Category)
	require.NotNil(t, products[0].ImageURL)
	assert.Equal(t, "https://img.example.com/hp.jpg", *products[0].ImageURL)
}

func TestExistsBySKU_And_Count(t *testing.T) {
	repo, mock := setupProductRepo(t)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("ACM-HP-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").WithArgs(from, from.Add(24*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	found, err := repo.ExistsBySKU(context.Background(), "ACM-HP-001")
	require.NoError(t, err)
	assert.False(t, found)

	n, err := repo.CountCreatedBetween(context.Background(), from, from.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
