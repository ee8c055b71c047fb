package domain

// SortKey é a chave de ordenação do catálogo.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
	SortRating    SortKey = "rating"
)

// Valores padrão do filtro do catálogo.
const (
	PageSize        = 12
	SelectorAll     = "all"
	DefaultPriceMin = 0
	DefaultPriceMax = 2000
)

// FilterSpec é o conjunto completo de parâmetros de filtro, ordenação e página.
type FilterSpec struct {
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	PriceMin  float64 `json:"priceMin"`
	PriceMax  float64 `json:"priceMax"`
	MinRating float64 `json:"rating"`
	Query     string  `json:"searchQuery"`
	SortBy    SortKey `json:"sortBy"`
	Page      int     `json:"page"` // 1-based
}

// DefaultFilterSpec devolve o filtro inicial da vitrine.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Category: SelectorAll,
		Brand:    SelectorAll,
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		SortBy:   SortRelevance,
		Page:     1,
	}
}

// FilterResult é a visão paginada do catálogo.
type FilterResult struct {
	Items      []Product `json:"items"`
	Total      int       `json:"total"` // quantidade filtrada (não paginada)
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// BrowseResult acrescenta as opções de filtro derivadas do catálogo.
// Categories traz slug, nome de exibição e ícone de cada categoria presente.
type BrowseResult struct {
	FilterResult
	Categories []Category `json:"categories"`
	Brands     []string   `json:"brands"`
}
