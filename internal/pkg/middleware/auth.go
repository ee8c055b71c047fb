package middleware

import (
	"context"
	"net/http"
	"strings"

	apperror "gostore/internal/errors"
	"gostore/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote (evita colisão com strings).
type ContextKey int

const (
	SessionKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.SessionClaims, error)
}

// NewSessionMiddleware valida o JWT de sessão (Authorization: Bearer <token>)
// e anexa o ID da sessão ao contexto da requisição.
func NewSessionMiddleware(tokenSvc TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				writeError(w, apperror.NewUnauthorizedError("Token de sessão ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Token de sessão inválido ou expirado."))
				return
			}

			// 3. Anexar a sessão ao contexto
			ctx := WithSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID devolve um contexto carregando a sessão.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionKey, sessionID)
}

// GetSessionID extrai a sessão anexada pelo middleware.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionKey).(string)
	return id, ok && id != ""
}
