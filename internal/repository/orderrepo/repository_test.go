package orderrepo_test

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

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/repository/orderrepo"
)

var columns = []string{"id", "title", "author", "isbn", "category", "price", "published_date", "cover_image_url", "is_available", "stock_quantity", "created_at", "updated_at"}

func setupOrderRepo(t *testing.T) (*orderrepo.OrderRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return orderrepo.NewOrderRepository(db, time.Second), mock
}

func sampleOrder() domain.Order {
	cover := "https://cdn.example.com/covers/cloud.png"
	return domain.Order{
		ID:            "5f1c1a7e-8f3e-4a55-9a1e-0c7d9a1f1b11",
		Title:         "Cloud Data Architecture",
		Author:        "Martin Kleppmann",
		ISBN:          "9781449373320",
		Category:      domain.Technical,
		Price:         decimal.RequireFromString("45.00"),
		PublishedDate: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		CoverImageURL: &cover,
		IsAvailable:   true,
		StockQuantity: 8,
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSave_Success(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	order := sampleOrder()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.Title, order.Author, order.ISBN, int(domain.Technical), sqlmock.AnyArg(),
			order.PublishedDate, sqlmock.AnyArg(), true, 8, order.CreatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_UniqueViolationBecomesValidationError(t *testing.T) {
	repo, mock := setupOrderRepo(t)

	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_isbn_key"})

	_, err := repo.Save(context.Background(), sampleOrder())

	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"An order with this ISBN already exists."}, vErr.Details)
}

func TestSave_TitleAuthorViolation(t *testing.T) {
	repo, mock := setupOrderRepo(t)

	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_title_author_key"})

	_, err := repo.Save(context.Background(), sampleOrder())

	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"An order with the same title and author already exists."}, vErr.Details)
}

func TestSave_DBFailureIsInternal(t *testing.T) {
	repo, mock := setupOrderRepo(t)

	mock.ExpectExec("INSERT INTO orders").WillReturnError(sql.ErrConnDone)

	_, err := repo.Save(context.Background(), sampleOrder())

	var iErr *apperror.InternalError
	assert.True(t, errors.As(err, &iErr))
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestFindByID_Found(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	o := sampleOrder()

	rows := sqlmock.NewRows(columns).
		AddRow(o.ID, o.Title, o.Author, o.ISBN, 2, "45.00", o.PublishedDate, *o.CoverImageURL, true, 8, o.CreatedAt, nil)
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").WithArgs(o.ID).WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Technical, got.Category)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(45)))
	require.NotNil(t, got.CoverImageURL)
	assert.Equal(t, *o.CoverImageURL, *got.CoverImageURL)
	assert.Nil(t, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := setupOrderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")

	var nf *apperror.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestFindAll(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	o := sampleOrder()

	rows := sqlmock.NewRows(columns).
		AddRow(o.ID, o.Title, o.Author, o.ISBN, 2, "45.00", o.PublishedDate, nil, true, 8, o.CreatedAt, nil).
		AddRow("b2", "Gardens", "Ann Lee", "1234567890", 0, "12.50", o.PublishedDate, nil, false, 0, o.CreatedAt, o.CreatedAt)
	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_at").WillReturnRows(rows)

	orders, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Nil(t, orders[0].CoverImageURL)
	require.NotNil(t, orders[1].UpdatedAt)
	assert.Equal(t, domain.Fiction, orders[1].Category)
}

func TestExistsByISBN(t *testing.T) {
	repo, mock := setupOrderRepo(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("9781449373320").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.ExistsByISBN(context.Background(), "9781449373320")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestExistsByTitleAndAuthor_Error(t *testing.T) {
	repo, mock := setupOrderRepo(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs("T", "A").WillReturnError(errors.New("timeout"))

	_, err := repo.ExistsByTitleAndAuthor(context.Background(), "T", "A")
	var iErr *apperror.InternalError
	assert.True(t, errors.As(err, &iErr))
}

func TestCountCreatedBetween(t *testing.T) {
	repo, mock := setupOrderRepo(t)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders").WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.CountCreatedBetween(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}
