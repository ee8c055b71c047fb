// Package promotion mantém o registro fixo de códigos promocionais e a
// validação de um código contra um subtotal.
package promotion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gostore/internal/domain"
)

// InvalidCodeMessage é a mensagem devolvida para códigos desconhecidos.
const InvalidCodeMessage = "Invalid promo code"

// registry é carregado uma única vez e nunca alterado.
var registry = []domain.PromoCode{
	{Code: "SAVE10", Discount: 10, Type: domain.PromoPercentage},
	{Code: "FLAT20", Discount: 20, Type: domain.PromoFixed},
	{Code: "WELCOME15", Discount: 15, Type: domain.PromoPercentage},
	{Code: "SUMMER30", Discount: 30, Type: domain.PromoPercentage},
	{Code: "NEWUSER50", Discount: 50, Type: domain.PromoFixed},
}

// Canonical normaliza o código para a forma do registro (maiúsculas, sem espaços nas pontas).
func Canonical(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup procura o código (sem diferenciar maiúsculas).
func Lookup(code string) (domain.PromoCode, bool) {
	c := Canonical(code)
	for _, p := range registry {
		if p.Code == c {
			return p, true
		}
	}
	return domain.PromoCode{}, false
}

// Codes devolve uma cópia do registro, na ordem de cadastro.
func Codes() []domain.PromoCode {
	out := make([]domain.PromoCode, len(registry))
	copy(out, registry)
	return out
}

// Hint devolve a dica exibida ao comprador: "Try: SAVE10, FLAT20, ...".
func Hint() string {
	names := make([]string, len(registry))
	for i, p := range registry {
		names[i] = p.Code
	}
	return "Try: " + strings.Join(names, ", ")
}

// Validate calcula o desconto do código sobre o subtotal.
// Não tem efeitos colaterais: chamadas repetidas com os mesmos argumentos
// devolvem o mesmo resultado. O desconto nunca excede o subtotal.
func Validate(code string, subtotal float64) domain.PromoResult {
	promo, ok := Lookup(code)
	if !ok {
		return domain.PromoResult{Valid: false, Discount: 0, Message: InvalidCodeMessage}
	}

	var discount float64
	switch promo.Type {
	case domain.PromoPercentage:
		discount = subtotal * promo.Discount / 100
	default:
		discount = promo.Discount
	}

	return domain.PromoResult{
		Valid:    true,
		Discount: math.Min(discount, subtotal),
		Message:  fmt.Sprintf("%s discount applied!", describe(promo)),
	}
}

// describe devolve "10%" para percentuais e "$20" para valores fixos.
func describe(p domain.PromoCode) string {
	n := strconv.FormatFloat(p.Discount, 'f', -1, 64)
	if p.Type == domain.PromoPercentage {
		return n + "%"
	}
	return "$" + n
}
