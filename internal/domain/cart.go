package domain

// CartItem é uma linha do carrinho. O produto é uma cópia congelada no momento da adição.
// A identidade da linha é (Product.ID, SelectedColor, SelectedSize).
type CartItem struct {
	Product       Product  `json:"product"`
	Quantity      int      `json:"quantity"`
	SelectedColor Selector `json:"selectedColor"`
	SelectedSize  Selector `json:"selectedSize"`
}

// LineKey identifica uma linha do carrinho.
type LineKey struct {
	ProductID int
	Color     Selector
	Size      Selector
}

// Key devolve a chave de identidade da linha.
func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.Product.ID, Color: i.SelectedColor, Size: i.SelectedSize}
}

// Matches compara a linha com uma chave.
func (i CartItem) Matches(k LineKey) bool {
	return i.Product.ID == k.ProductID && i.SelectedColor.Equal(k.Color) && i.SelectedSize.Equal(k.Size)
}

// CartState é o registro persistido do carrinho: {items, promoCode, promoDiscount}.
// PromoDiscount é 0 sempre que PromoCode está ausente.
type CartState struct {
	Items         []CartItem `json:"items"`
	PromoCode     Selector   `json:"promoCode"`
	PromoDiscount float64    `json:"promoDiscount"`
}

// WishlistState é o registro persistido da lista de desejos: {items}, único por ID.
type WishlistState struct {
	Items []Product `json:"items"`
}

// CartTotals é o agregado derivado do carrinho, recalculado a cada leitura.
type CartTotals struct {
	MRP             float64 `json:"mrp"`
	Subtotal        float64 `json:"subtotal"`
	ProductDiscount float64 `json:"productDiscount"`
	PromoDiscount   float64 `json:"promoDiscount"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
	Savings         float64 `json:"savings"`
}

// DisplayTotals são os totais já formatados para exibição ("$1,234.50").
type DisplayTotals struct {
	MRP             string `json:"mrp"`
	Subtotal        string `json:"subtotal"`
	ProductDiscount string `json:"productDiscount"`
	PromoDiscount   string `json:"promoDiscount"`
	Tax             string `json:"tax"`
	Total           string `json:"total"`
	Savings         string `json:"savings"`
	TotalINR        string `json:"totalInr"`
}

// CartView é o carrinho com os totais calculados, como devolvido pela API.
type CartView struct {
	CartState
	Totals    CartTotals    `json:"totals"`
	Display   DisplayTotals `json:"display"`
	ItemCount int           `json:"itemCount"`
}

// AddToCartRequest é o payload de adição ao carrinho.
type AddToCartRequest struct {
	ProductID     int      `json:"productId" validate:"required,gt=0"`
	Quantity      int      `json:"quantity" validate:"omitempty,gt=0"`
	SelectedColor Selector `json:"selectedColor"`
	SelectedSize  Selector `json:"selectedSize"`
}

// UpdateQuantityRequest é o payload de alteração de quantidade (<= 0 remove a linha).
type UpdateQuantityRequest struct {
	ProductID     int      `json:"productId" validate:"required,gt=0"`
	Quantity      int      `json:"quantity"`
	SelectedColor Selector `json:"selectedColor"`
	SelectedSize  Selector `json:"selectedSize"`
}

// RemoveFromCartRequest identifica a linha a remover.
type RemoveFromCartRequest struct {
	ProductID     int      `json:"productId" validate:"required,gt=0"`
	SelectedColor Selector `json:"selectedColor"`
	SelectedSize  Selector `json:"selectedSize"`
}

// WishlistRequest identifica um produto da lista de desejos.
type WishlistRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
}

// WishlistView é a lista de desejos devolvida pela API.
type WishlistView struct {
	WishlistState
	Count int `json:"count"`
}

// ToggleResult informa o estado final após um toggle.
type ToggleResult struct {
	WishlistView
	InWishlist bool `json:"inWishlist"`
}
