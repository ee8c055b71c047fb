package catalogservice

import (
	"context"
	"fmt"

	"gostore/internal/catalog"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pricing"
)

// Service expõe a vitrine: navegação filtrada, detalhe, relacionados e categorias.
type Service struct {
	gateway    domain.CatalogGateway
	fetchLimit int
	logger     logger.Logger
}

// NewService cria o serviço de catálogo. fetchLimit é a quantidade de produtos
// buscada do catálogo para alimentar o pipeline de filtro.
func NewService(gateway domain.CatalogGateway, fetchLimit int, log logger.Logger) *Service {
	return &Service{gateway: gateway, fetchLimit: fetchLimit, logger: log}
}

// Browse busca o catálogo e aplica o pipeline de filtro, ordenação e paginação.
// As opções de categoria e marca refletem os dados vivos do catálogo.
func (s *Service) Browse(ctx context.Context, spec domain.FilterSpec) (domain.BrowseResult, error) {
	s.logger.Debug("Iniciando navegação no catálogo", map[string]interface{}{
		"category": spec.Category,
		"brand":    spec.Brand,
		"query":    spec.Query,
		"sort":     spec.SortBy,
		"page":     spec.Page,
	})

	page, err := s.gateway.ListProducts(ctx, s.fetchLimit, 0, "")
	if err != nil {
		return domain.BrowseResult{}, fmt.Errorf("falha ao listar produtos do catálogo: %w", err)
	}

	result := domain.BrowseResult{
		FilterResult: catalog.Apply(page.Products, spec),
		Categories:   categoryOptions(catalog.Categories(page.Products)),
		Brands:       catalog.Brands(page.Products, spec.Category),
	}

	s.logger.Info("Navegação no catálogo concluída", map[string]interface{}{
		"total":       result.Total,
		"total_pages": result.TotalPages,
	})
	return result, nil
}

// GetProduct devolve o detalhe de um produto com os campos de exibição.
func (s *Service) GetProduct(ctx context.Context, id int) (domain.ProductDetail, error) {
	if id <= 0 {
		return domain.ProductDetail{}, apperror.NewValidationError("O ID do produto deve ser positivo.")
	}

	product, err := s.gateway.FindByID(ctx, id)
	if err != nil {
		return domain.ProductDetail{}, fmt.Errorf("falha ao buscar produto %d: %w", id, err)
	}
	return pricing.Detail(product), nil
}

// Related devolve até 6 produtos da mesma categoria.
func (s *Service) Related(ctx context.Context, id int) ([]domain.Product, error) {
	if id <= 0 {
		return nil, apperror.NewValidationError("O ID do produto deve ser positivo.")
	}

	related, err := s.gateway.Related(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar relacionados de %d: %w", id, err)
	}
	return related, nil
}

// Categories lista as categorias do catálogo.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.gateway.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar categorias: %w", err)
	}

	out := make([]domain.Category, len(categories))
	for i, c := range categories {
		out[i] = pricing.DescribeCategory(c)
	}
	return out, nil
}

func categoryOptions(slugs []string) []domain.Category {
	out := make([]domain.Category, len(slugs))
	for i, slug := range slugs {
		out[i] = pricing.DescribeCategory(domain.Category{Slug: slug})
	}
	return out
}
