package productrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gocatalog/internal/domain"
	"gocatalog/internal/errors"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
)

const productColumns = `id, name, brand, sku, category, price, release_date, image_url, is_available, stock_quantity, created_at, updated_at`

// ProductRepository é o acesso a dados de produtos no PostgreSQL.
type ProductRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository injeta o pool de conexões, o timeout por consulta e o logger.
func NewProductRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save persiste um novo produto. Violações de UNIQUE voltam como ValidationError.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const productSQL = `INSERT INTO products (` + productColumns + `)
                        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	_, err := r.DB.ExecContext(ctxTimeout, productSQL,
		product.ID,
		product.Name,
		product.Brand,
		product.SKU,
		int(product.Category),
		product.Price,
		product.ReleaseDate,
		product.ImageURL,
		product.IsAvailable,
		product.StockQuantity,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			r.logger.WithContext(ctx).Warn("product insert hit unique constraint", map[string]interface{}{"constraint": constraint, "sku": product.SKU})
			if constraint == "products_name_brand_key" {
				return domain.Product{}, errors.NewValidationError("Product name must be unique for the same brand")
			}
			return domain.Product{}, errors.NewValidationError("SKU already exists in system")
		}
		return domain.Product{}, errors.NewDBError("failed to insert product", err)
	}

	return product, nil
}

// FindByID busca um produto pelo ID.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Product with ID %s not found.", id))
	}
	if err != nil {
		return domain.Product{}, errors.NewDBError("failed to fetch product", err)
	}
	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+productColumns+` FROM products ORDER BY created_at`)
	if err != nil {
		return nil, errors.NewDBError("failed to list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.NewDBError("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("failed to iterate products", err)
	}

	r.logger.Debug("products loaded from database", map[string]interface{}{"count": len(products)})
	return products, nil
}

func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, sku)
}

func (r *ProductRepository) ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND brand = $2)`, name, brand)
}

// CountCreatedBetween conta produtos com created_at em [from, to).
func (r *ProductRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM products WHERE created_at >= $1 AND created_at < $2`, from, to,
	).Scan(&n)
	if err != nil {
		return 0, errors.NewDBError("failed to count products", err)
	}
	return n, nil
}

func (r *ProductRepository) exists(ctx context.Context, q string, args ...interface{}) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var found bool
	if err := r.DB.QueryRowContext(ctxTimeout, q, args...).Scan(&found); err != nil {
		return false, errors.NewDBError("failed to check product existence", err)
	}
	return found, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p         domain.Product
		imageURL  sql.NullString
		updatedAt sql.NullTime
	)
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.SKU,
		&p.Category,
		&p.Price,
		&p.ReleaseDate,
		&imageURL,
		&p.IsAvailable,
		&p.StockQuantity,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return p, nil
}
