package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/validation"
)

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		FirstName:     "Ana",
		LastName:      "Souza",
		Email:         "ana@example.com",
		Phone:         "9876543210",
		Address:       "Rua das Flores, 10",
		City:          "Recife",
		State:         "PE",
		Pincode:       "50030",
		PaymentMethod: domain.PaymentUPI,
	}
}

func TestStruct_ValidCheckoutForm(t *testing.T) {
	assert.NoError(t, validation.Struct(validForm()))

	form := validForm()
	form.Pincode = "500301"
	assert.NoError(t, validation.Struct(form))
}

func TestStruct_InvalidCheckoutForm(t *testing.T) {
	form := validForm()
	form.Email = "ana@"
	form.Phone = "12345"
	form.Pincode = "12a45"
	form.PaymentMethod = "boleto"

	err := validation.Struct(form)

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), "pincode")
	assert.Contains(t, err.Error(), "paymentMethod")
}

func TestStruct_AddToCartRequest(t *testing.T) {
	assert.NoError(t, validation.Struct(domain.AddToCartRequest{ProductID: 3}))
	assert.Error(t, validation.Struct(domain.AddToCartRequest{ProductID: 0}))
	assert.Error(t, validation.Struct(domain.AddToCartRequest{ProductID: 3, Quantity: -1}))
}
