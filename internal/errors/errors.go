package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoStore.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa uma sessão ausente, expirada ou inválida.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// RateLimitError indica que o cliente excedeu a cota de requisições.
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string    { return fmt.Sprintf("Limite de requisições: %s", e.Msg) }
func (e *RateLimitError) Category() string { return "RATE_LIMITED" }
func (e *RateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *RateLimitError) Unwrap() error    { return nil }

// NewRateLimitError cria um novo erro de limite de requisições.
func NewRateLimitError(msg string) AppError {
	return &RateLimitError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// UpstreamError representa falhas de transporte ou respostas 5xx do catálogo externo.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Falha no catálogo externo: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Falha no catálogo externo: %s", e.Msg)
}
func (e *UpstreamError) Category() string { return "UPSTREAM_ERROR" }
func (e *UpstreamError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *UpstreamError) Unwrap() error    { return e.Err }

// NewUpstreamError cria um erro de falha do catálogo externo.
func NewUpstreamError(msg string, err error) AppError {
	return &UpstreamError{Msg: msg, Err: err}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL ou do Redis)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB)", msg), err)
}

// NewCacheError é um atalho para criar um InternalError específico de falhas no Redis.
func NewCacheError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (Cache)", msg), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
// Erros embrulhados com fmt.Errorf("%w") também são reconhecidos.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		// O erro é tipado (ValidationError, NotFoundError, etc.)
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			// Não expõe a causa raiz de falhas de infraestrutura ao cliente.
			return appErr.HTTPStatus(), appErr.Category(), "Ocorreu um erro ao processar a requisição."
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado (e.g., erro simples de pacote Go que não implementa AppError)
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
