package checkout

import (
	"context"
	"net/http"

	"gostore/internal/api/respond"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

// CheckoutService define o contrato que o Handler espera da camada de Serviço.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, sessionID string, form domain.CheckoutForm) (domain.Order, error)
}

// Handler lida com o checkout simulado.
type Handler struct {
	Service CheckoutService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CheckoutService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// PlaceOrderHandler lida com a requisição POST /v1/checkout.
// @Summary Confirma o pedido
// @Description Valida o formulário, processa o pagamento simulado e esvazia o carrinho. O pedido não é persistido.
// @Tags checkout
// @Accept json
// @Produce json
// @Param form body domain.CheckoutForm true "Dados de entrega e pagamento"
// @Success 201 {object} domain.Order
// @Failure 400 {object} domain.ErrorResponse "Formulário inválido ou carrinho vazio"
// @Failure 409 {object} domain.ErrorResponse "Carrinho esvaziado durante o checkout"
// @Security BearerAuth
// @Router /checkout [post]
func (h *Handler) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.CheckoutForm
	if err := respond.DecodeJSON(w, r, &form, false); err != nil {
		respond.ServiceResponse(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	sessionID, _ := middleware.GetSessionID(r.Context())
	order, err := h.Service.PlaceOrder(r.Context(), sessionID, form)
	respond.ServiceResponse(w, r, h.Logger, order, err, http.StatusCreated)
}
