package checkoutservice_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/service/checkoutservice"
	"gostore/internal/state"
)

// MockPersister é uma implementação mock de state.Persister.
type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) LoadCart(ctx context.Context, sessionID string) (domain.CartState, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.CartState), args.Error(1)
}

func (m *MockPersister) SaveCart(ctx context.Context, sessionID string, cart domain.CartState) error {
	return m.Called(ctx, sessionID, cart).Error(0)
}

func (m *MockPersister) LoadWishlist(ctx context.Context, sessionID string) (domain.WishlistState, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.WishlistState), args.Error(1)
}

func (m *MockPersister) SaveWishlist(ctx context.Context, sessionID string, wishlist domain.WishlistState) error {
	return m.Called(ctx, sessionID, wishlist).Error(0)
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		FirstName:     "Ana",
		LastName:      "Silva",
		Email:         "ana@example.com",
		Phone:         "9876543210",
		Address:       "Rua das Flores, 10",
		City:          "Mumbai",
		State:         "MH",
		Pincode:       "400001",
		PaymentMethod: domain.PaymentUPI,
	}
}

func seededPersister(cart domain.CartState) *MockPersister {
	p := new(MockPersister)
	p.On("LoadCart", mock.Anything, "s1").Return(cart, nil)
	p.On("LoadWishlist", mock.Anything, "s1").Return(domain.WishlistState{}, nil)
	p.On("SaveCart", mock.Anything, "s1", mock.Anything).Return(nil)
	p.On("SaveWishlist", mock.Anything, "s1", mock.Anything).Return(nil)
	return p
}

func fullCart() domain.CartState {
	return domain.CartState{
		Items: []domain.CartItem{{
			Product:  domain.Product{ID: 1, Title: "Phone", Price: 100},
			Quantity: 2,
		}},
		PromoCode:     domain.Some("FLAT20"),
		PromoDiscount: 20,
	}
}

func TestPlaceOrder_ConfirmsAndClearsCart(t *testing.T) {
	persister := seededPersister(fullCart())
	registry := state.NewRegistry(persister)
	svc := checkoutservice.NewService(registry, 0, logger.NewNop())
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, "s1", validForm())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SZ\d{8}$`), order.ID)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, domain.OrderConfirmed, order.Status)
	assert.Equal(t, domain.PaymentUPI, order.PaymentMethod)
	assert.Equal(t, "Ana", order.Customer.FirstName)
	assert.Equal(t, domain.Some("FLAT20"), order.PromoCode)
	require.Len(t, order.Items, 1)
	// (200 - 20) * 1.18
	assert.InDelta(t, 212.4, order.Totals.Total, 1e-9)

	c, err := registry.Acquire(ctx, "s1")
	require.NoError(t, err)
	cart := c.Cart()
	assert.Empty(t, cart.Items)
	assert.False(t, cart.PromoCode.Valid)
	persister.AssertCalled(t, "SaveCart", mock.Anything, "s1", domain.CartState{Items: []domain.CartItem{}})
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc := checkoutservice.NewService(state.NewRegistry(seededPersister(domain.CartState{})), 0, logger.NewNop())

	_, err := svc.PlaceOrder(context.Background(), "s1", validForm())

	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), checkoutservice.EmptyCartMessage)
}

func TestPlaceOrder_InvalidForm(t *testing.T) {
	persister := seededPersister(fullCart())
	svc := checkoutservice.NewService(state.NewRegistry(persister), 0, logger.NewNop())

	cases := map[string]func(f *domain.CheckoutForm){
		"telefone curto":     func(f *domain.CheckoutForm) { f.Phone = "12345" },
		"telefone com sinal": func(f *domain.CheckoutForm) { f.Phone = "+987654321" },
		"pincode longo":      func(f *domain.CheckoutForm) { f.Pincode = "1234567" },
		"email inválido":     func(f *domain.CheckoutForm) { f.Email = "ana" },
		"pagamento inválido": func(f *domain.CheckoutForm) { f.PaymentMethod = "pix" },
		"nome ausente":       func(f *domain.CheckoutForm) { f.FirstName = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(&form)

			_, err := svc.PlaceOrder(context.Background(), "s1", form)

			assert.IsType(t, &apperror.ValidationError{}, err)
		})
	}
	persister.AssertNotCalled(t, "LoadCart", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CancelledDuringProcessing(t *testing.T) {
	registry := state.NewRegistry(seededPersister(fullCart()))
	svc := checkoutservice.NewService(registry, time.Minute, logger.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.PlaceOrder(ctx, "s1", validForm())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	c, err := registry.Acquire(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, c.Cart().Items, 1)
}

func TestOrderID(t *testing.T) {
	at := time.UnixMilli(1_700_000_123_456)
	assert.Equal(t, "SZ00123456", checkoutservice.OrderID(at))
}
