package domain

// PromoType é o tipo de desconto de um código promocional.
type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
)

// PromoCode é uma entrada do registro fixo de códigos promocionais.
type PromoCode struct {
	Code     string    `json:"code"`
	Discount float64   `json:"discount"`
	Type     PromoType `json:"type"`
}

// PromoResult é o resultado (não excepcional) da validação de um código.
type PromoResult struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

// PromoValidationRequest é o payload de validação: {code, subtotal}.
type PromoValidationRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

// PromoHints lista os códigos disponíveis.
type PromoHints struct {
	Hint  string      `json:"hint"`
	Codes []PromoCode `json:"codes"`
}

// ApplyPromoRequest é o payload de aplicação de um código ao carrinho.
type ApplyPromoRequest struct {
	Code string `json:"code"`
}

// ApplyPromoResponse devolve o resultado da validação e o carrinho resultante.
type ApplyPromoResponse struct {
	Promo PromoResult `json:"promo"`
	Cart  CartView    `json:"cart"`
}
