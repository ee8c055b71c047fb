package product

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"gostore/internal/api/respond"
	"gostore/internal/catalog"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// CatalogService define o contrato que o Handler espera da camada de Serviço.
type CatalogService interface {
	Browse(ctx context.Context, spec domain.FilterSpec) (domain.BrowseResult, error)
	GetProduct(ctx context.Context, id int) (domain.ProductDetail, error)
	Related(ctx context.Context, id int) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Handler agrupa todos os métodos de Handler do catálogo.
type Handler struct {
	Service CatalogService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CatalogService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	respond.ServiceResponse(w, r, h.Logger, data, err, successStatus)
}

// BrowseHandler lida com a requisição GET /v1/products.
// @Summary Navega pelo catálogo
// @Description Filtra, ordena e pagina o catálogo. Devolve também as categorias e marcas disponíveis.
// @Tags products
// @Produce json
// @Param category query string false "Slug da categoria ou 'all'"
// @Param brand query string false "Marca ou 'all'"
// @Param minPrice query number false "Preço mínimo (padrão 0)"
// @Param maxPrice query number false "Preço máximo (padrão 2000)"
// @Param rating query number false "Avaliação mínima"
// @Param q query string false "Busca textual"
// @Param sort query string false "relevance, price-asc, price-desc, newest, rating"
// @Param page query int false "Página (1-based)"
// @Success 200 {object} domain.BrowseResult
// @Failure 400 {object} domain.ErrorResponse "Parâmetro inválido"
// @Failure 502 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /products [get]
func (h *Handler) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	spec, err := ParseFilterSpec(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Browse(r.Context(), spec)
	h.handleServiceResponse(w, r, result, err, http.StatusOK)
}

// GetProductHandler lida com a requisição GET /v1/products/{id}.
// @Summary Obtém um produto por ID
// @Tags products
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.ProductDetail
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 502 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /products/{id} [get]
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	product, err := h.Service.GetProduct(r.Context(), id)
	h.handleServiceResponse(w, r, product, err, http.StatusOK)
}

// RelatedHandler lida com a requisição GET /v1/products/{id}/related.
// @Summary Lista produtos relacionados
// @Tags products
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {array} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id}/related [get]
func (h *Handler) RelatedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	related, err := h.Service.Related(r.Context(), id)
	h.handleServiceResponse(w, r, related, err, http.StatusOK)
}

// CategoriesHandler lida com a requisição GET /v1/categories.
// @Summary Lista as categorias
// @Tags products
// @Produce json
// @Success 200 {array} domain.Category
// @Failure 502 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /categories [get]
func (h *Handler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.Categories(r.Context())
	h.handleServiceResponse(w, r, categories, err, http.StatusOK)
}

// ParseFilterSpec monta o FilterSpec a partir da query string. Parâmetros
// ausentes assumem os valores padrão.
func ParseFilterSpec(r *http.Request) (domain.FilterSpec, error) {
	q := r.URL.Query()
	spec := domain.DefaultFilterSpec()

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		spec.Category = v
	}
	if v := strings.TrimSpace(q.Get("brand")); v != "" {
		spec.Brand = v
	}

	search := q.Get("q")
	if search == "" {
		search = q.Get("search")
	}
	spec.Query = strings.TrimSpace(search)
	spec.SortBy = catalog.ParseSortKey(q.Get("sort"))

	var err error
	if spec.PriceMin, err = floatParam(q.Get("minPrice"), spec.PriceMin, "minPrice"); err != nil {
		return spec, err
	}
	if spec.PriceMax, err = floatParam(q.Get("maxPrice"), spec.PriceMax, "maxPrice"); err != nil {
		return spec, err
	}
	if spec.MinRating, err = floatParam(q.Get("rating"), spec.MinRating, "rating"); err != nil {
		return spec, err
	}
	if v := q.Get("page"); v != "" {
		page, convErr := strconv.Atoi(v)
		if convErr != nil {
			return spec, apperror.NewValidationError("O parâmetro 'page' deve ser um inteiro.")
		}
		spec.Page = page
	}
	return spec, nil
}

func floatParam(raw string, fallback float64, name string) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	// NaN e ±Inf passam pelo ParseFloat mas anulariam os filtros de faixa.
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback, apperror.NewValidationError("O parâmetro '" + name + "' deve ser numérico.")
	}
	return v, nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("O ID do produto deve ser um inteiro positivo.")
	}
	return id, nil
}
