package cart

import (
	"context"
	"net/http"

	"gostore/internal/api/respond"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

// CartService define o contrato que o Handler espera da camada de Serviço.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (domain.CartView, error)
	AddItem(ctx context.Context, sessionID string, req domain.AddToCartRequest) (domain.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID string, req domain.UpdateQuantityRequest) (domain.CartView, error)
	RemoveItem(ctx context.Context, sessionID string, req domain.RemoveFromCartRequest) (domain.CartView, error)
	Clear(ctx context.Context, sessionID string) (domain.CartView, error)
	ApplyPromo(ctx context.Context, sessionID string, code string) (domain.ApplyPromoResponse, error)
	RemovePromo(ctx context.Context, sessionID string) (domain.CartView, error)
}

// Handler agrupa os handlers do carrinho. Todas as rotas exigem sessão.
type Handler struct {
	Service CartService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	respond.ServiceResponse(w, r, h.Logger, data, err, successStatus)
}

func sessionOf(r *http.Request) string {
	id, _ := middleware.GetSessionID(r.Context())
	return id
}

// GetCartHandler lida com a requisição GET /v1/cart.
// @Summary Obtém o carrinho
// @Tags cart
// @Produce json
// @Success 200 {object} domain.CartView
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou inválida"
// @Security BearerAuth
// @Router /cart [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.GetCart(r.Context(), sessionOf(r))
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// AddItemHandler lida com a requisição POST /v1/cart/items.
// @Summary Adiciona um produto ao carrinho
// @Description Soma a quantidade na linha (produto, cor, tamanho) existente ou cria uma nova.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body domain.AddToCartRequest true "Produto e variante"
// @Success 200 {object} domain.CartView
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security BearerAuth
// @Router /cart/items [post]
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.AddToCartRequest
	if err := respond.DecodeJSON(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	view, err := h.Service.AddItem(r.Context(), sessionOf(r), req)
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// UpdateQuantityHandler lida com a requisição PATCH /v1/cart/items.
// @Summary Altera a quantidade de uma linha
// @Description Quantidade <= 0 remove a linha.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body domain.UpdateQuantityRequest true "Linha e nova quantidade"
// @Success 200 {object} domain.CartView
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Security BearerAuth
// @Router /cart/items [patch]
func (h *Handler) UpdateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateQuantityRequest
	if err := respond.DecodeJSON(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	view, err := h.Service.UpdateQuantity(r.Context(), sessionOf(r), req)
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// RemoveItemHandler lida com a requisição DELETE /v1/cart/items.
// @Summary Remove uma linha do carrinho
// @Tags cart
// @Accept json
// @Produce json
// @Param item body domain.RemoveFromCartRequest true "Linha a remover"
// @Success 200 {object} domain.CartView
// @Security BearerAuth
// @Router /cart/items [delete]
func (h *Handler) RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RemoveFromCartRequest
	if err := respond.DecodeJSON(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	view, err := h.Service.RemoveItem(r.Context(), sessionOf(r), req)
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// ClearHandler lida com a requisição DELETE /v1/cart.
// @Summary Esvazia o carrinho
// @Tags cart
// @Produce json
// @Success 200 {object} domain.CartView
// @Security BearerAuth
// @Router /cart [delete]
func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Clear(r.Context(), sessionOf(r))
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// ApplyPromoHandler lida com a requisição POST /v1/cart/promo.
// @Summary Aplica um código promocional
// @Description Valida contra o subtotal atual. Código desconhecido devolve valid=false com o carrinho intacto.
// @Tags cart
// @Accept json
// @Produce json
// @Param promo body domain.ApplyPromoRequest true "Código"
// @Success 200 {object} domain.ApplyPromoResponse
// @Failure 400 {object} domain.ErrorResponse "Promo code is required"
// @Security BearerAuth
// @Router /cart/promo [post]
func (h *Handler) ApplyPromoHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyPromoRequest
	if err := respond.DecodeJSON(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.ApplyPromo(r.Context(), sessionOf(r), req.Code)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// RemovePromoHandler lida com a requisição DELETE /v1/cart/promo.
// @Summary Remove o código promocional
// @Tags cart
// @Produce json
// @Success 200 {object} domain.CartView
// @Security BearerAuth
// @Router /cart/promo [delete]
func (h *Handler) RemovePromoHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.RemovePromo(r.Context(), sessionOf(r))
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}
