// Package catalog implementa o pipeline de filtro, ordenação e paginação da vitrine.
// Todas as funções são puras e nunca falham: entradas incoerentes (faixa de preço
// invertida, página fora do intervalo) apenas produzem um resultado vazio.
package catalog

import (
	"sort"
	"strings"

	"gostore/internal/domain"
)

// Filter aplica busca textual, categoria, marca, faixa de preço e nota mínima,
// e ordena o resultado de forma estável. A coleção de entrada não é alterada.
func Filter(products []domain.Product, spec domain.FilterSpec) []domain.Product {
	query := strings.ToLower(spec.Query)
	brand := strings.ToLower(spec.Brand)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		// 1. Busca textual
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		// 2. Categoria (slug exato)
		if isSelected(spec.Category) && p.Category != spec.Category {
			continue
		}
		// 3. Marca (sem diferenciar maiúsculas)
		if isSelected(spec.Brand) && strings.ToLower(p.Brand) != brand {
			continue
		}
		// 4. Faixa de preço (inclusiva)
		if p.Price < spec.PriceMin || p.Price > spec.PriceMax {
			continue
		}
		// 5. Nota mínima
		if spec.MinRating > 0 && p.Rating < spec.MinRating {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, spec.SortBy)
	return out
}

// Paginate devolve a página (1-based) de tamanho domain.PageSize.
// Páginas fora do intervalo devolvem um slice vazio.
func Paginate(products []domain.Product, page int) []domain.Product {
	if page < 1 || page > TotalPages(len(products)) {
		return []domain.Product{}
	}
	start := (page - 1) * domain.PageSize
	end := start + domain.PageSize
	if end > len(products) {
		end = len(products)
	}

	out := make([]domain.Product, end-start)
	copy(out, products[start:end])
	return out
}

// TotalPages é ceil(count / PageSize).
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + domain.PageSize - 1) / domain.PageSize
}

// Apply executa o pipeline completo e devolve a visão paginada.
func Apply(products []domain.Product, spec domain.FilterSpec) domain.FilterResult {
	filtered := Filter(products, spec)
	return domain.FilterResult{
		Items:      Paginate(filtered, spec.Page),
		Total:      len(filtered),
		Page:       spec.Page,
		PageSize:   domain.PageSize,
		TotalPages: TotalPages(len(filtered)),
	}
}

// Categories devolve os slugs distintos, ordenados, de toda a coleção.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// Brands devolve as marcas distintas, não vazias e ordenadas, restritas à
// categoria selecionada ("all" considera a coleção inteira).
func Brands(products []domain.Product, category string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if isSelected(category) && p.Category != category {
			continue
		}
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	sort.Strings(out)
	return out
}

// ParseSortKey converte o texto recebido; valores desconhecidos viram relevance.
func ParseSortKey(s string) domain.SortKey {
	switch k := domain.SortKey(s); k {
	case domain.SortPriceAsc, domain.SortPriceDesc, domain.SortNewest, domain.SortRating:
		return k
	default:
		return domain.SortRelevance
	}
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), query)) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// isSelected indica se o seletor restringe o resultado ("" e "all" não restringem).
func isSelected(selector string) bool {
	return selector != "" && selector != domain.SelectorAll
}

func sortProducts(products []domain.Product, key domain.SortKey) {
	var less func(i, j int) bool
	switch key {
	case domain.SortPriceAsc:
		less = func(i, j int) bool { return products[i].Price < products[j].Price }
	case domain.SortPriceDesc:
		less = func(i, j int) bool { return products[i].Price > products[j].Price }
	case domain.SortNewest:
		less = func(i, j int) bool { return products[i].ID > products[j].ID }
	case domain.SortRating:
		less = func(i, j int) bool { return products[i].Rating > products[j].Rating }
	default:
		// relevance: mantém a ordem da coleção.
		return
	}
	sort.SliceStable(products, less)
}
