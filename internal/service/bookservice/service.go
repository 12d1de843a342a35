package bookservice

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// Mensagens de erro de requisição.
const (
	InvalidPagingMessage = "Page and pageSize must be greater than 0."
	IDMismatchMessage    = "ID mismatch."
)

// fieldMessages traduz "Campo.tag" do validator para a mensagem exposta ao cliente.
var fieldMessages = map[string]string{
	"Title.required":  "Title is required.",
	"Title.max":       "Title cannot exceed 200 characters.",
	"Author.required": "Author is required.",
	"Author.max":      "Author name cannot exceed 100 characters.",
	"Year.gt":         "Year must be greater than 0.",
	"Year.notfuture":  "Year cannot be in the future.",
}

// BookRepository define o contrato esperado da camada de Persistência.
type BookRepository interface {
	FindAll(ctx context.Context) ([]domain.Book, error)
	FindPage(ctx context.Context, filter domain.BookFilter) ([]domain.Book, int, error)
	FindByID(ctx context.Context, id int) (domain.Book, error)
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
	Update(ctx context.Context, book domain.Book) error
	Delete(ctx context.Context, id int) error
}

// Service implementa o CRUD de livros.
type Service struct {
	repo     BookRepository
	validate *validator.Validate
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo BookRepository, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.validate = validator.New(validator.WithRequiredStructEnabled())
	// notfuture: o ano não pode passar do ano corrente.
	_ = s.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(s.now().Year())
	})
	return s
}

// Validate devolve as mensagens de regra violadas, na ordem dos campos.
func (s *Service) Validate(book domain.Book) []string {
	err := s.validate.Struct(book)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fe.Error())
	}
	return msgs
}

// --- Leitura ---

func (s *Service) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.FindAll(ctx)
}

// ListPaged pagina no banco; page e pageSize precisam ser >= 1.
func (s *Service) ListPaged(ctx context.Context, filter domain.BookFilter) (domain.PagedResult[domain.Book], error) {
	if filter.Page < 1 || filter.PageSize < 1 {
		return domain.PagedResult[domain.Book]{}, apperror.NewBadRequestError(InvalidPagingMessage)
	}

	books, total, err := s.repo.FindPage(ctx, filter)
	if err != nil {
		return domain.PagedResult[domain.Book]{}, err
	}
	return domain.NewPagedResult(books, total, filter), nil
}

func (s *Service) Get(ctx context.Context, id int) (domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

// --- Escrita ---

// Create valida e insere; o ID é sempre gerado pelo banco.
func (s *Service) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	log := s.logger.WithContext(ctx)

	if msgs := s.Validate(book); len(msgs) > 0 {
		log.Warn("book validation failed", map[string]interface{}{"errors": msgs})
		return domain.Book{}, apperror.NewValidationError(msgs...)
	}

	book.ID = 0
	created, err := s.repo.Create(ctx, book)
	if err != nil {
		log.Error("failed to create book", err)
		return domain.Book{}, err
	}
	log.Info("book created", map[string]interface{}{"book_id": created.ID})
	return created, nil
}

// Update substitui título, autor e ano. O ID da rota precisa bater com o do corpo.
func (s *Service) Update(ctx context.Context, id int, book domain.Book) error {
	log := s.logger.WithContext(ctx)

	if id != book.ID {
		return apperror.NewBadRequestError(IDMismatchMessage)
	}
	if msgs := s.Validate(book); len(msgs) > 0 {
		log.Warn("book validation failed", map[string]interface{}{"book_id": id, "errors": msgs})
		return apperror.NewValidationError(msgs...)
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return err
	}
	log.Info("book updated", map[string]interface{}{"book_id": id})
	return nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithContext(ctx).Info("book deleted", map[string]interface{}{"book_id": id})
	return nil
}
