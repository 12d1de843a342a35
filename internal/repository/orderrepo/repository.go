package orderrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/database"
)

// Mensagens devolvidas quando a constraint do banco barra uma duplicata que passou pela validação.
const (
	duplicateISBNMessage        = "An order with this ISBN already exists."
	duplicateTitleAuthorMessage = "An order with the same title and author already exists."
)

const orderColumns = `id, title, author, isbn, category, price, published_date, cover_image_url, is_available, stock_quantity, created_at, updated_at`

// OrderRepository é o acesso a dados de pedidos no PostgreSQL.
type OrderRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

func NewOrderRepository(db *sql.DB, dbTimeout time.Duration) *OrderRepository {
	return &OrderRepository{DB: db, DBTimeout: dbTimeout}
}

// Save persiste um novo pedido.
func (r *OrderRepository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const q = `INSERT INTO orders (` + orderColumns + `)
               VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	_, err := r.DB.ExecContext(ctx, q,
		order.ID,
		order.Title,
		order.Author,
		order.ISBN,
		int(order.Category),
		order.Price,
		order.PublishedDate,
		order.CoverImageURL,
		order.IsAvailable,
		order.StockQuantity,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return domain.Order{}, duplicateError(constraint)
		}
		return domain.Order{}, apperror.NewDBError("failed to insert order", err)
	}

	return order, nil
}

func duplicateError(constraint string) error {
	switch constraint {
	case "orders_title_author_key":
		return apperror.NewValidationError(duplicateTitleAuthorMessage)
	default:
		return apperror.NewValidationError(duplicateISBNMessage)
	}
}

// FindByID busca um pedido; ausência vira NotFoundError.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return domain.Order{}, apperror.NewNotFoundError(fmt.Sprintf("Order with ID %s not found.", id))
	}
	if err != nil {
		return domain.Order{}, apperror.NewDBError("failed to fetch order", err)
	}
	return order, nil
}

// FindAll lista todos os pedidos em ordem de criação.
func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, apperror.NewDBError("failed to list orders", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate orders", err)
	}
	return orders, nil
}

// ExistsByISBN compara o ISBN exatamente como informado.
func (r *OrderRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE isbn = $1)`, isbn)
}

func (r *OrderRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE title = $1 AND author = $2)`, title, author)
}

// CountCreatedBetween conta pedidos com created_at em [from, to).
func (r *OrderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&n)
	if err != nil {
		return 0, apperror.NewDBError("failed to count orders", err)
	}
	return n, nil
}

func (r *OrderRepository) exists(ctx context.Context, q string, args ...interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var found bool
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&found); err != nil {
		return false, apperror.NewDBError("failed to check order existence", err)
	}
	return found, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (domain.Order, error) {
	var (
		order     domain.Order
		cover     sql.NullString
		updatedAt sql.NullTime
	)
	err := s.Scan(
		&order.ID,
		&order.Title,
		&order.Author,
		&order.ISBN,
		&order.Category,
		&order.Price,
		&order.PublishedDate,
		&cover,
		&order.IsAvailable,
		&order.StockQuantity,
		&order.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	if cover.Valid {
		order.CoverImageURL = &cover.String
	}
	if updatedAt.Valid {
		order.UpdatedAt = &updatedAt.Time
	}
	return order, nil
}
