package pricing_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gostore/internal/domain"
	"gostore/internal/pricing"
)

func item(id int, price, discount float64, qty int) domain.CartItem {
	return domain.CartItem{
		Product:  domain.Product{ID: id, Price: price, DiscountPercentage: discount},
		Quantity: qty,
	}
}

func TestDiscountedPriceAndMRP(t *testing.T) {
	assert.InDelta(t, 90.0, pricing.DiscountedPrice(100, 10), 1e-9)
	assert.InDelta(t, 100.0, pricing.MRP(90, 10), 1e-9)

	// Sem desconto o MRP é o próprio preço.
	assert.Equal(t, 19.99, pricing.MRP(19.99, 0))

	// 100% diverge e não é tratado.
	assert.True(t, math.IsInf(pricing.MRP(10, 100), 1))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$59.97", pricing.FormatCurrency(19.99*3))
	assert.Equal(t, "$1,234.50", pricing.FormatCurrency(1234.5))
	assert.Equal(t, "$0.00", pricing.FormatCurrency(0))
	assert.Equal(t, "$70.76", pricing.FormatCurrency(70.7646))
	assert.Equal(t, "$0.13", pricing.FormatCurrency(0.125))
	assert.Equal(t, "-$3.00", pricing.FormatCurrency(-3))
}

func TestFormatINR(t *testing.T) {
	assert.True(t, strings.HasPrefix(pricing.FormatINR(10), "₹"))
	assert.Contains(t, pricing.FormatINR(10), "840")
}

func TestCartTotals_Empty(t *testing.T) {
	assert.Equal(t, domain.CartTotals{}, pricing.CartTotals(nil, 0))
	assert.Equal(t, domain.CartTotals{}, pricing.CartTotals([]domain.CartItem{}, 25))
}

func TestCartTotals_SingleItemNoPromo(t *testing.T) {
	totals := pricing.CartTotals([]domain.CartItem{item(1, 19.99, 0, 3)}, 0)

	assert.Equal(t, 59.97, totals.Subtotal)
	assert.Equal(t, 59.97, totals.MRP)
	assert.Equal(t, 0.0, totals.ProductDiscount)
	assert.InDelta(t, 10.7946, totals.Tax, 1e-9)
	assert.InDelta(t, 70.7646, totals.Total, 1e-9)
	assert.Equal(t, "$70.76", pricing.FormatCurrency(totals.Total))
}

func TestCartTotals_NoDriftAcrossManyLines(t *testing.T) {
	items := make([]domain.CartItem, 0, 100)
	for i := 0; i < 100; i++ {
		items = append(items, item(i+1, 0.1, 0, 1))
	}

	totals := pricing.CartTotals(items, 0)

	assert.Equal(t, 10.0, totals.Subtotal)
	assert.Equal(t, "$10.00", pricing.FormatCurrency(totals.Subtotal))
}

func TestCartTotals_PromoAndProductDiscount(t *testing.T) {
	// Preço 90 com 10% de desconto: MRP 100.
	items := []domain.CartItem{item(1, 90, 10, 1), item(2, 10, 0, 1)}

	totals := pricing.CartTotals(items, 10)

	assert.InDelta(t, 110.0, totals.MRP, 1e-9)
	assert.InDelta(t, 100.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 10.0, totals.ProductDiscount, 1e-9)
	assert.InDelta(t, 16.2, totals.Tax, 1e-9)
	assert.InDelta(t, 106.2, totals.Total, 1e-9)
	assert.InDelta(t, 20.0, totals.Savings, 1e-9)
}

func TestCartTotals_PromoClampedToSubtotal(t *testing.T) {
	totals := pricing.CartTotals([]domain.CartItem{item(1, 15, 0, 1)}, 20)

	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 0.0, totals.Total)
	assert.Equal(t, 20.0, totals.PromoDiscount)
}

func TestCartTotals_Invariants(t *testing.T) {
	items := []domain.CartItem{item(1, 12.49, 7.5, 2), item(2, 3.33, 0, 5), item(3, 999.99, 12.96, 1)}

	for _, promo := range []float64{0, 5, 250.75, 5000} {
		totals := pricing.CartTotals(items, promo)

		afterPromo := math.Max(0, totals.Subtotal-promo)
		assert.InDelta(t, afterPromo*pricing.TaxRate, totals.Tax, 1e-6)
		assert.InDelta(t, afterPromo+totals.Tax, totals.Total, 1e-6)
		assert.InDelta(t, totals.ProductDiscount+promo, totals.Savings, 1e-6)
		assert.GreaterOrEqual(t, totals.ProductDiscount, 0.0)
	}
}

func TestCartTotals_FullDiscountDiverges(t *testing.T) {
	totals := pricing.CartTotals([]domain.CartItem{item(1, 10, 100, 1)}, 0)

	assert.True(t, math.IsInf(totals.MRP, 1))
	assert.True(t, math.IsInf(totals.Savings, 1))
	assert.InDelta(t, 11.8, totals.Total, 1e-9)
}

func TestItemCount(t *testing.T) {
	assert.Equal(t, 6, pricing.ItemCount([]domain.CartItem{item(1, 1, 0, 2), item(2, 1, 0, 4)}))
}

func TestFormatCategoryName(t *testing.T) {
	assert.Equal(t, "Home Decoration", pricing.FormatCategoryName("home-decoration"))
	assert.Equal(t, "Laptops", pricing.FormatCategoryName("laptops"))
}

func TestRatingStars(t *testing.T) {
	assert.Equal(t, pricing.Stars{Full: 4, Half: true, Empty: 0}, pricing.RatingStars(4.56))
	assert.Equal(t, pricing.Stars{Full: 3, Half: false, Empty: 2}, pricing.RatingStars(3.2))
	assert.Equal(t, pricing.Stars{Full: 5, Half: false, Empty: 0}, pricing.RatingStars(5))
}

func TestCategoryEmoji(t *testing.T) {
	assert.Equal(t, "💻", pricing.CategoryEmoji("laptops"))
	assert.Equal(t, "🛍️", pricing.CategoryEmoji("desconhecida"))
}

func TestDisplayTotals(t *testing.T) {
	totals := pricing.CartTotals([]domain.CartItem{item(1, 100, 0, 2)}, 20)

	display := pricing.DisplayTotals(totals)

	assert.Equal(t, "$200.00", display.Subtotal)
	assert.Equal(t, "$20.00", display.PromoDiscount)
	assert.Equal(t, "$32.40", display.Tax)
	assert.Equal(t, "$212.40", display.Total)
	assert.Equal(t, "$20.00", display.Savings)
	assert.True(t, strings.HasPrefix(display.TotalINR, "₹"))
	assert.Contains(t, display.TotalINR, "17,842")
}

func TestDisplayTotals_DivergedMRPIsBlank(t *testing.T) {
	totals := pricing.CartTotals([]domain.CartItem{item(1, 10, 100, 1)}, 0)

	display := pricing.DisplayTotals(totals)

	assert.Empty(t, display.MRP)
	assert.Empty(t, display.Savings)
	assert.Equal(t, "$11.80", display.Total)
}

func TestDetail(t *testing.T) {
	p := domain.Product{ID: 4, Price: 90, DiscountPercentage: 10, Rating: 4.5, Category: "home-decoration"}

	d := pricing.Detail(p)

	assert.Equal(t, p, d.Product)
	assert.Equal(t, 100.0, d.MRP)
	assert.Equal(t, "$100.00", d.MRPDisplay)
	assert.Equal(t, "$90.00", d.PriceDisplay)
	assert.True(t, strings.HasPrefix(d.PriceINR, "₹"))
	assert.Equal(t, pricing.Stars{Full: 4, Half: true, Empty: 0}, d.Stars)
	assert.Equal(t, "Home Decoration", d.CategoryName)
	assert.Equal(t, "🏠", d.CategoryEmoji)
}

func TestDetail_FullDiscountOmitsMRP(t *testing.T) {
	d := pricing.Detail(domain.Product{ID: 1, Price: 10, DiscountPercentage: 100})

	assert.Zero(t, d.MRP)
	assert.Empty(t, d.MRPDisplay)
}

func TestDescribeCategory(t *testing.T) {
	c := pricing.DescribeCategory(domain.Category{Slug: "mens-watches"})
	assert.Equal(t, "Mens Watches", c.Name)
	assert.Equal(t, "⌚", c.Emoji)

	c = pricing.DescribeCategory(domain.Category{Slug: "laptops", Name: "Notebooks"})
	assert.Equal(t, "Notebooks", c.Name)
	assert.Equal(t, "💻", c.Emoji)
}
