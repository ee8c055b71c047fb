package wishlist

import (
	"context"
	"net/http"
	"strconv"

	"gostore/internal/api/respond"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

// WishlistService define o contrato que o Handler espera da camada de Serviço.
type WishlistService interface {
	Get(ctx context.Context, sessionID string) (domain.WishlistView, error)
	Add(ctx context.Context, sessionID string, req domain.WishlistRequest) (domain.WishlistView, error)
	Remove(ctx context.Context, sessionID string, productID int) (domain.WishlistView, error)
	Toggle(ctx context.Context, sessionID string, req domain.WishlistRequest) (domain.ToggleResult, error)
	Clear(ctx context.Context, sessionID string) (domain.WishlistView, error)
}

// Handler agrupa os handlers da lista de desejos.
type Handler struct {
	Service WishlistService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc WishlistService, log logger.Logger) *Handler {
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

// GetHandler lida com a requisição GET /v1/wishlist.
// @Summary Obtém a lista de desejos
// @Tags wishlist
// @Produce json
// @Success 200 {object} domain.WishlistView
// @Security BearerAuth
// @Router /wishlist [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Get(r.Context(), sessionOf(r))
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// AddHandler lida com a requisição POST /v1/wishlist/items.
// @Summary Adiciona um produto à lista
// @Tags wishlist
// @Accept json
// @Produce json
// @Param item body domain.WishlistRequest true "Produto"
// @Success 200 {object} domain.WishlistView
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security BearerAuth
// @Router /wishlist/items [post]
func (h *Handler) AddHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.WishlistRequest
	if err := respond.DecodeJSON(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	view, err := h.Service.Add(r.Context(), sessionOf(r), req)
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// ToggleHandler lida com a requisição POST /v1/wishlist/toggle.
// @Summary Alterna um produto na lista
// @Tags wishlist
// @Accept json
// @Produce json
// @Param item body domain.WishlistRequest true "Produto"
// @Success 200 {object} domain.ToggleResult
// @Security BearerAuth
// @Router /wishlist/toggle [post]
func (h *Handler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.WishlistRequest
	if err := respond.DecodeJSON(w, r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Toggle(r.Context(), sessionOf(r), req)
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// RemoveHandler lida com a requisição DELETE /v1/wishlist/items/{id}.
// @Summary Remove um produto da lista
// @Tags wishlist
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.WishlistView
// @Security BearerAuth
// @Router /wishlist/items/{id} [delete]
func (h *Handler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do produto deve ser um inteiro."), http.StatusOK)
		return
	}

	view, err := h.Service.Remove(r.Context(), sessionOf(r), id)
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}

// ClearHandler lida com a requisição DELETE /v1/wishlist.
// @Summary Esvazia a lista de desejos
// @Tags wishlist
// @Produce json
// @Success 200 {object} domain.WishlistView
// @Security BearerAuth
// @Router /wishlist [delete]
func (h *Handler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Clear(r.Context(), sessionOf(r))
	h.handleServiceResponse(w, r, view, err, http.StatusOK)
}
