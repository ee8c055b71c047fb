package domain

import "context"

// Product representa um item do catálogo externo (somente leitura para a loja).
// Price já é o preço com desconto; o MRP é sempre derivado, nunca armazenado.
type Product struct {
	ID                   int          `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Price                float64      `json:"price"`
	DiscountPercentage   float64      `json:"discountPercentage"` // 0-100, já aplicado em Price
	Rating               float64      `json:"rating"`
	Stock                int          `json:"stock"`
	Brand                string       `json:"brand,omitempty"`
	Category             string       `json:"category"` // slug
	Thumbnail            string       `json:"thumbnail"`
	Images               []string     `json:"images"`
	Tags                 []string     `json:"tags,omitempty"`
	SKU                  string       `json:"sku,omitempty"`
	Weight               float64      `json:"weight,omitempty"`
	AvailabilityStatus   string       `json:"availabilityStatus,omitempty"`
	MinimumOrderQuantity int          `json:"minimumOrderQuantity,omitempty"`
	Meta                 *ProductMeta `json:"meta,omitempty"`
}

// ProductMeta agrupa metadados opcionais do catálogo.
type ProductMeta struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	QRCode    string `json:"qrCode,omitempty"`
}

// ProductPage é a resposta paginada do catálogo externo.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Category descreve uma categoria do catálogo.
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Emoji string `json:"emoji,omitempty"`
}

// Stars é a decomposição de uma nota para exibição em estrelas.
type Stars struct {
	Full  int  `json:"full"`
	Half  bool `json:"half"`
	Empty int  `json:"empty"`
}

// ProductDetail é o produto acompanhado dos campos de exibição da página de detalhe.
// MRP e MRPDisplay ficam zerados quando o desconto é de 100%.
type ProductDetail struct {
	Product
	MRP           float64 `json:"mrp"`
	PriceDisplay  string  `json:"priceDisplay"`
	MRPDisplay    string  `json:"mrpDisplay,omitempty"`
	PriceINR      string  `json:"priceInr"`
	Stars         Stars   `json:"stars"`
	CategoryName  string  `json:"categoryName"`
	CategoryEmoji string  `json:"categoryEmoji"`
}

// CatalogGateway é o contrato do catálogo externo de produtos.
// "Não encontrado" (apperror.NotFoundError) é distinto de falha de transporte (apperror.UpstreamError).
type CatalogGateway interface {
	ListProducts(ctx context.Context, limit, skip int, category string) (ProductPage, error)
	FindByID(ctx context.Context, id int) (Product, error)
	Related(ctx context.Context, id int) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
}
