package session

import (
	"context"
	"net/http"

	"gostore/internal/api/respond"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
)

// SessionService define o contrato que o Handler espera da camada de Serviço.
type SessionService interface {
	Start(ctx context.Context) (domain.Session, error)
}

// Handler emite sessões anônimas.
type Handler struct {
	Service SessionService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SessionService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// StartHandler lida com a requisição POST /v1/session.
// @Summary Inicia uma sessão de comprador
// @Description Devolve um JWT cujo ID de sessão indexa carrinho e lista de desejos.
// @Tags session
// @Produce json
// @Success 201 {object} domain.Session
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /session [post]
func (h *Handler) StartHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Start(r.Context())
	respond.ServiceResponse(w, r, h.Logger, session, err, http.StatusCreated)
}
