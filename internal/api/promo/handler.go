package promo

import (
	"context"
	"net/http"

	"gostore/internal/api/respond"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
)

// PromoService define o contrato que o Handler espera da camada de Serviço.
type PromoService interface {
	Validate(ctx context.Context, req domain.PromoValidationRequest) (domain.PromoResult, error)
	Hints(ctx context.Context) domain.PromoHints
}

// Handler agrupa os handlers de códigos promocionais.
type Handler struct {
	Service PromoService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PromoService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ValidateHandler lida com a requisição POST /v1/promocodes.
// @Summary Valida um código promocional
// @Description Código desconhecido é respondido com valid=false e status 200.
// @Tags promocodes
// @Accept json
// @Produce json
// @Param promo body domain.PromoValidationRequest true "Código e subtotal"
// @Success 200 {object} domain.PromoResult
// @Failure 400 {object} domain.ErrorResponse "Promo code is required"
// @Router /promocodes [post]
func (h *Handler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.PromoValidationRequest
	if err := respond.DecodeJSON(w, r, &req, true); err != nil {
		respond.ServiceResponse(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Validate(r.Context(), req)
	respond.ServiceResponse(w, r, h.Logger, result, err, http.StatusOK)
}

// HintsHandler lida com a requisição GET /v1/promocodes.
// @Summary Lista os códigos disponíveis
// @Tags promocodes
// @Produce json
// @Success 200 {object} domain.PromoHints
// @Router /promocodes [get]
func (h *Handler) HintsHandler(w http.ResponseWriter, r *http.Request) {
	respond.ServiceResponse(w, r, h.Logger, h.Service.Hints(r.Context()), nil, http.StatusOK)
}
