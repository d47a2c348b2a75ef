package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an application error.
type Type string

const (
	TypeNotFound     Type = "NOT_FOUND"
	TypeValidation   Type = "VALIDATION"
	TypeConflict     Type = "CONFLICT"
	TypeUnauthorized Type = "UNAUTHORIZED"
	TypeForbidden    Type = "FORBIDDEN"
	TypeInternal     Type = "INTERNAL"
)

// AppError carries a type, a user-facing message and an optional cause.
type AppError struct {
	Type    Type
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches sentinel AppErrors by type and message so wrapped copies still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

func New(t Type, message string) *AppError {
	return &AppError{Type: t, Message: message}
}

func NotFound(message string) *AppError   { return New(TypeNotFound, message) }
func Validation(message string) *AppError { return New(TypeValidation, message) }
func Conflict(message string) *AppError   { return New(TypeConflict, message) }
func Forbidden(message string) *AppError  { return New(TypeForbidden, message) }

// Domain errors. Messages are shown to the end user as-is.
var (
	ErrUnauthenticated    = New(TypeUnauthorized, "Usuário não logado!")
	ErrInvalidCredentials = New(TypeUnauthorized, "Email ou senha incorretos!")
	ErrDuplicateEmail     = Conflict("Email já cadastrado!")
	ErrAlreadyRated       = Conflict("Você já avaliou este contador!")
	ErrInvalidTransition  = Conflict("Esta proposta já foi respondida!")
	ErrAccountantOnly     = Forbidden("Acesso restrito a contadores!")
	ErrProfileOnly        = Forbidden("Apenas contadores podem cadastrar perfis!")
	ErrProposalNotOwned   = Forbidden("Proposta não encontrada!")
	ErrAccountantNotFound = NotFound("Contador não encontrado!")
	ErrProfileNotFound    = Forbidden("Perfil de contador não encontrado!")
	ErrProposalNotFound   = NotFound("Proposta não encontrada!")
	ErrUserNotFound       = NotFound("Usuário não encontrado!")
)

// TypeOf returns the AppError type of err, TypeInternal for anything else.
func TypeOf(err error) Type {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type
	}
	return TypeInternal
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Type != TypeInternal {
		return ae.Message
	}
	return "Erro interno do servidor"
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case TypeNotFound:
		return http.StatusNotFound
	case TypeValidation:
		return http.StatusBadRequest
	case TypeConflict:
		return http.StatusConflict
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
