package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError é a interface central para todos os erros tipados do catálogo.
// O Handler usa Category/HTTPStatus para montar a resposta ao cliente.
type AppError interface {
	Error() string
	Category() string // e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_SERVER_ERROR"
	HTTPStatus() int
	Unwrap() error
}

// Mensagens expostas ao cliente.
const (
	ValidationFailedMessage = "Validation failed"
	InternalErrorMessage    = "An unexpected error occurred."
)

// --- Erros de Domínio ---

// ValidationError carrega todas as mensagens de regras violadas, na ordem de avaliação.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Details, "; "))
}
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um erro de validação com uma ou mais mensagens.
func NewValidationError(details ...string) AppError {
	return &ValidationError{Details: details}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// BadRequestError é uma requisição malformada que não passa pelo pipeline de regras
// (e.g., ID divergente no PUT, paginação inválida).
type BadRequestError struct {
	Msg string
}

func (e *BadRequestError) Error() string    { return e.Msg }
func (e *BadRequestError) Category() string { return "BAD_REQUEST" }
func (e *BadRequestError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *BadRequestError) Unwrap() error    { return nil }

func NewBadRequestError(msg string) AppError {
	return &BadRequestError{Msg: msg}
}

// UnauthorizedError é usado pelo middleware de autenticação.
type UnauthorizedError struct {
	Msg    string
	Status int // 401 ou 403
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusUnauthorized
	}
	return e.Status
}
func (e *UnauthorizedError) Unwrap() error { return nil }

func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

func NewForbiddenError(msg string) AppError {
	return &UnauthorizedError{Msg: msg, Status: http.StatusForbidden}
}

// --- Erros de Infraestrutura ---

// InternalError representa falhas inesperadas no serviço, cache ou repositório.
// Msg e Err ficam apenas nos logs; o cliente recebe sempre InternalErrorMessage.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_SERVER_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para InternalError originado no banco de dados.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (db)", err)
}

// --- Tradução Final para o Handler ---

// Mapped é o resultado da tradução de um erro para a resposta HTTP.
type Mapped struct {
	Status   int
	Code     string
	Message  string
	Details  []string
	Internal bool
}

// MapToHTTPStatus traduz qualquer erro para status, código e mensagem de cliente.
// Erros não tipados viram um 500 genérico.
func MapToHTTPStatus(err error) Mapped {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return Mapped{
			Status:  validationErr.HTTPStatus(),
			Code:    validationErr.Category(),
			Message: ValidationFailedMessage,
			Details: validationErr.Details,
		}
	}

	var internalErr *InternalError
	if errors.As(err, &internalErr) {
		return internal()
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return Mapped{
			Status:  appErr.HTTPStatus(),
			Code:    appErr.Category(),
			Message: appErr.Error(),
		}
	}

	return internal()
}

func internal() Mapped {
	return Mapped{
		Status:   http.StatusInternalServerError,
		Code:     "INTERNAL_SERVER_ERROR",
		Message:  InternalErrorMessage,
		Internal: true,
	}
}
