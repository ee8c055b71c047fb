// Package pricing reúne as funções puras de preço da loja: desconto, MRP,
// formatação monetária e agregação dos totais do carrinho.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gostore/internal/domain"
)

// TaxRate é a alíquota fixa aplicada sobre o valor após o código promocional.
const TaxRate = 0.18

// USDToINR é a taxa fixa usada na exibição em rúpias.
const USDToINR = 84

var (
	taxRate  = decimal.NewFromFloat(TaxRate)
	usLocale = language.AmericanEnglish
	inLocale = language.MustParse("en-IN")
)

// DiscountedPrice aplica o percentual de desconto ao preço.
// Percentuais acima de 100 produzem valor negativo; não há validação.
func DiscountedPrice(price, discountPercentage float64) float64 {
	return price * (1 - discountPercentage/100)
}

// MRP deriva o preço cheio a partir do preço com desconto.
// discountPercentage == 100 resulta em +Inf.
func MRP(price, discountPercentage float64) float64 {
	return price / (1 - discountPercentage/100)
}

// Round arredonda meio para longe do zero com a quantidade de casas informada.
func Round(amount float64, places int32) float64 {
	if !isFinite(amount) {
		return amount
	}
	return decimal.NewFromFloat(amount).Round(places).InexactFloat64()
}

// FormatCurrency formata em dólar com duas casas e separador de milhar (en-US).
// Ex.: 59.97 -> "$59.97", 1234.5 -> "$1,234.50", -3 -> "-$3.00".
func FormatCurrency(amount float64) string {
	p := message.NewPrinter(usLocale)
	if !isFinite(amount) {
		return p.Sprintf("$%f", amount)
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + p.Sprintf("$%.2f", d.InexactFloat64())
}

// FormatINR converte o valor em dólar para rúpias e formata sem casas decimais.
func FormatINR(amount float64) string {
	p := message.NewPrinter(inLocale)
	if !isFinite(amount) {
		return p.Sprintf("₹%f", amount)
	}

	d := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(USDToINR)).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + p.Sprintf("₹%.0f", d.InexactFloat64())
}

// CartTotals agrega os totais do carrinho.
//
//	mrp             = Σ MRP(preço, desconto) * quantidade
//	subtotal        = Σ preço * quantidade
//	productDiscount = mrp - subtotal
//	afterPromo      = max(0, subtotal - promoDiscount)
//	tax             = afterPromo * TaxRate
//	total           = afterPromo + tax
//	savings         = productDiscount + promoDiscount
//
// Carrinho vazio devolve todos os campos zerados. A acumulação é decimal para
// não haver deriva de ponto flutuante entre muitas linhas.
func CartTotals(items []domain.CartItem, promoDiscount float64) domain.CartTotals {
	if len(items) == 0 {
		return domain.CartTotals{}
	}

	mrp := decimal.Zero
	subtotal := decimal.Zero
	mrpDiverged := false

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))

		lineMRP := MRP(item.Product.Price, item.Product.DiscountPercentage)
		if isFinite(lineMRP) {
			mrp = mrp.Add(decimal.NewFromFloat(lineMRP).Mul(qty))
		} else {
			mrpDiverged = true
		}

		subtotal = subtotal.Add(decimal.NewFromFloat(item.Product.Price).Mul(qty))
	}

	promo := decimal.Zero
	if isFinite(promoDiscount) {
		promo = decimal.NewFromFloat(promoDiscount)
	}

	afterPromo := subtotal.Sub(promo)
	if afterPromo.IsNegative() {
		afterPromo = decimal.Zero
	}
	tax := afterPromo.Mul(taxRate)
	total := afterPromo.Add(tax)

	totals := domain.CartTotals{
		Subtotal:      subtotal.InexactFloat64(),
		PromoDiscount: promoDiscount,
		Tax:           tax.InexactFloat64(),
		Total:         total.InexactFloat64(),
	}

	if mrpDiverged {
		// Desconto de 100% em alguma linha: o MRP diverge e contamina os derivados.
		totals.MRP = math.Inf(1)
		totals.ProductDiscount = math.Inf(1)
		totals.Savings = math.Inf(1)
		return totals
	}

	productDiscount := mrp.Sub(subtotal)
	totals.MRP = mrp.InexactFloat64()
	totals.ProductDiscount = productDiscount.InexactFloat64()
	totals.Savings = productDiscount.Add(promo).InexactFloat64()
	return totals
}

// ItemCount soma as quantidades de todas as linhas.
func ItemCount(items []domain.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// FormatCategoryName transforma o slug em título: "home-decoration" -> "Home Decoration".
func FormatCategoryName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Stars é a decomposição de uma nota para exibição em estrelas.
type Stars = domain.Stars

// RatingStars decompõe a nota (0-5) em estrelas cheias, meia e vazias.
func RatingStars(rating float64) Stars {
	full := int(math.Floor(rating))
	half := math.Mod(rating, 1) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}
	return Stars{Full: full, Half: half, Empty: empty}
}

var categoryEmoji = map[string]string{
	"smartphones":        "📱",
	"laptops":            "💻",
	"fragrances":         "🌸",
	"skincare":           "✨",
	"groceries":          "🛒",
	"home-decoration":    "🏠",
	"furniture":          "🪑",
	"tops":               "👕",
	"womens-dresses":     "👗",
	"womens-shoes":       "👠",
	"mens-shirts":        "👔",
	"mens-shoes":         "👟",
	"mens-watches":       "⌚",
	"womens-watches":     "⌚",
	"womens-bags":        "👜",
	"womens-jewellery":   "💍",
	"sunglasses":         "🕶️",
	"automotive":         "🚗",
	"motorcycle":         "🏍️",
	"lighting":           "💡",
	"beauty":             "💄",
	"sports-accessories": "⚽",
	"tablets":            "📱",
	"vehicle":            "🚙",
}

// CategoryEmoji devolve o ícone da categoria, com fallback genérico.
func CategoryEmoji(slug string) string {
	if e, ok := categoryEmoji[slug]; ok {
		return e
	}
	return "🛍️"
}

// DisplayTotals formata os totais do carrinho para exibição. Valores não finitos
// (MRP divergente) saem vazios.
func DisplayTotals(t domain.CartTotals) domain.DisplayTotals {
	return domain.DisplayTotals{
		MRP:             displayAmount(t.MRP),
		Subtotal:        displayAmount(t.Subtotal),
		ProductDiscount: displayAmount(t.ProductDiscount),
		PromoDiscount:   displayAmount(t.PromoDiscount),
		Tax:             displayAmount(t.Tax),
		Total:           displayAmount(t.Total),
		Savings:         displayAmount(t.Savings),
		TotalINR:        FormatINR(t.Total),
	}
}

// Detail monta a visão de detalhe do produto: MRP arredondado, preços
// formatados, estrelas e nome/ícone da categoria.
func Detail(p domain.Product) domain.ProductDetail {
	d := domain.ProductDetail{
		Product:       p,
		PriceDisplay:  FormatCurrency(p.Price),
		PriceINR:      FormatINR(p.Price),
		Stars:         RatingStars(p.Rating),
		CategoryName:  FormatCategoryName(p.Category),
		CategoryEmoji: CategoryEmoji(p.Category),
	}
	if mrp := MRP(p.Price, p.DiscountPercentage); isFinite(mrp) {
		d.MRP = Round(mrp, 2)
		d.MRPDisplay = FormatCurrency(mrp)
	}
	return d
}

// DescribeCategory completa nome (a partir do slug, se vazio) e ícone da categoria.
func DescribeCategory(c domain.Category) domain.Category {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = FormatCategoryName(c.Slug)
	}
	c.Emoji = CategoryEmoji(c.Slug)
	return c
}

func displayAmount(v float64) string {
	if !isFinite(v) {
		return ""
	}
	return FormatCurrency(v)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
