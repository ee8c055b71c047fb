package promotion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gostore/internal/domain"
	"gostore/internal/promotion"
)

func TestValidate_PercentageCode(t *testing.T) {
	result := promotion.Validate("SAVE10", 100)

	assert.True(t, result.Valid)
	assert.InDelta(t, 10.0, result.Discount, 1e-9)
	assert.Equal(t, "10% discount applied!", result.Message)
}

func TestValidate_FixedCodeClampedToSubtotal(t *testing.T) {
	result := promotion.Validate("FLAT20", 15)

	assert.True(t, result.Valid)
	assert.Equal(t, 15.0, result.Discount)
	assert.Equal(t, "$20 discount applied!", result.Message)
}

func TestValidate_UnknownCode(t *testing.T) {
	result := promotion.Validate("FOO123", 250)

	assert.Equal(t, domain.PromoResult{Valid: false, Discount: 0, Message: "Invalid promo code"}, result)
}

func TestValidate_CaseInsensitive(t *testing.T) {
	assert.Equal(t, promotion.Validate("SUMMER30", 80), promotion.Validate("summer30", 80))
	assert.True(t, promotion.Validate("  welcome15 ", 80).Valid)
}

func TestValidate_Idempotent(t *testing.T) {
	first := promotion.Validate("NEWUSER50", 120)
	second := promotion.Validate("NEWUSER50", 120)

	assert.Equal(t, first, second)
	assert.Len(t, promotion.Codes(), 5)
}

func TestValidate_DiscountNeverExceedsSubtotal(t *testing.T) {
	for _, code := range promotion.Codes() {
		for _, subtotal := range []float64{0, 0.01, 9.99, 20, 49.99, 50, 1000} {
			result := promotion.Validate(code.Code, subtotal)

			assert.True(t, result.Valid)
			assert.LessOrEqual(t, result.Discount, subtotal, "código %s, subtotal %v", code.Code, subtotal)
			assert.GreaterOrEqual(t, result.Discount, 0.0)
		}
	}
}

func TestCodes_ReturnsCopy(t *testing.T) {
	codes := promotion.Codes()
	codes[0].Discount = 99

	p, ok := promotion.Lookup("SAVE10")
	assert.True(t, ok)
	assert.Equal(t, 10.0, p.Discount)
}

func TestHint(t *testing.T) {
	assert.Equal(t, "Try: SAVE10, FLAT20, WELCOME15, SUMMER30, NEWUSER50", promotion.Hint())
}
