package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gocatalog/internal/domain"
	"gocatalog/internal/errors"
)

// BookRepository é o acesso a dados de livros no PostgreSQL.
type BookRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

func NewBookRepository(db *sql.DB, dbTimeout time.Duration) *BookRepository {
	return &BookRepository{DB: db, DBTimeout: dbTimeout}
}

func notFound(id int) error {
	return errors.NewNotFoundError(fmt.Sprintf("Book with ID %d not found.", id))
}

func (r *BookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id, title, author, year FROM books ORDER BY id`)
	if err != nil {
		return nil, errors.NewDBError("failed to list books", err)
	}
	return collect(rows)
}

// FindPage devolve a página pedida e o total de livros.
func (r *BookRepository) FindPage(ctx context.Context, filter domain.BookFilter) ([]domain.Book, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, errors.NewDBError("failed to count books", err)
	}

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, title, author, year FROM books ORDER BY id LIMIT $1 OFFSET $2`,
		filter.PageSize, filter.Offset(),
	)
	if err != nil {
		return nil, 0, errors.NewDBError("failed to page books", err)
	}
	books, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id int) (domain.Book, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var b domain.Book
	err := r.DB.QueryRowContext(ctxTimeout, `SELECT id, title, author, year FROM books WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year)
	if err == sql.ErrNoRows {
		return domain.Book{}, notFound(id)
	}
	if err != nil {
		return domain.Book{}, errors.NewDBError("failed to fetch book", err)
	}
	return b, nil
}

// Create insere o livro e devolve o ID gerado pelo banco.
func (r *BookRepository) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO books (title, author, year) VALUES ($1, $2, $3) RETURNING id`,
		book.Title, book.Author, book.Year,
	).Scan(&book.ID)
	if err != nil {
		return domain.Book{}, errors.NewDBError("failed to insert book", err)
	}
	return book, nil
}

func (r *BookRepository) Update(ctx context.Context, book domain.Book) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE books SET title = $1, author = $2, year = $3 WHERE id = $4`,
		book.Title, book.Author, book.Year, book.ID,
	)
	if err != nil {
		return errors.NewDBError("failed to update book", err)
	}
	return requireAffected(res, book.ID)
}

func (r *BookRepository) Delete(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return errors.NewDBError("failed to delete book", err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewDBError("failed to read affected rows", err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func collect(rows *sql.Rows) ([]domain.Book, error) {
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year); err != nil {
			return nil, errors.NewDBError("failed to scan book", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("failed to iterate books", err)
	}
	return books, nil
}
