package sessionservice

import (
	"context"

	"github.com/google/uuid"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"
)

// Service emite sessões anônimas de comprador.
type Service struct {
	tokens token.TokenService
	logger logger.Logger
}

// NewService cria o serviço de sessão.
func NewService(tokens token.TokenService, log logger.Logger) *Service {
	return &Service{tokens: tokens, logger: log}
}

// Start gera um novo ID de sessão e o JWT que o carrega.
func (s *Service) Start(ctx context.Context) (domain.Session, error) {
	sessionID := uuid.NewString()

	signed, expiresAt, err := s.tokens.GenerateToken(sessionID)
	if err != nil {
		s.logger.Error("Falha ao assinar token de sessão", err)
		return domain.Session{}, apperror.NewInternalError("Falha ao iniciar sessão", err)
	}

	s.logger.Info("Sessão de comprador iniciada", map[string]interface{}{"session_id": sessionID})
	return domain.Session{Token: signed, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}
