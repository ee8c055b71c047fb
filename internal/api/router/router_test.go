package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/api/cart"
	"gostore/internal/api/checkout"
	"gostore/internal/api/product"
	"gostore/internal/api/promo"
	"gostore/internal/api/router"
	"gostore/internal/api/session"
	"gostore/internal/api/wishlist"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"
	"gostore/internal/service/cartservice"
	"gostore/internal/service/catalogservice"
	"gostore/internal/service/checkoutservice"
	"gostore/internal/service/promoservice"
	"gostore/internal/service/sessionservice"
	"gostore/internal/service/wishlistservice"
	"gostore/internal/state"
)

// fakeCatalog é um catálogo fixo em memória.
type fakeCatalog struct {
	products []domain.Product
}

func (f *fakeCatalog) ListProducts(_ context.Context, limit, skip int, category string) (domain.ProductPage, error) {
	return domain.ProductPage{Products: f.products, Total: len(f.products), Limit: limit}, nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id int) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperror.NewNotFoundError("Produto não encontrado.")
}

func (f *fakeCatalog) Related(_ context.Context, id int) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeCatalog) Categories(_ context.Context) ([]domain.Category, error) {
	return []domain.Category{{Slug: "smartphones", Name: "Smartphones"}, {Slug: "fragrances"}}, nil
}

type memoryPersister struct {
	carts     map[string]domain.CartState
	wishlists map[string]domain.WishlistState
}

func (m *memoryPersister) LoadCart(_ context.Context, id string) (domain.CartState, error) {
	return m.carts[id], nil
}

func (m *memoryPersister) SaveCart(_ context.Context, id string, c domain.CartState) error {
	m.carts[id] = c
	return nil
}

func (m *memoryPersister) LoadWishlist(_ context.Context, id string) (domain.WishlistState, error) {
	return m.wishlists[id], nil
}

func (m *memoryPersister) SaveWishlist(_ context.Context, id string, w domain.WishlistState) error {
	m.wishlists[id] = w
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NewNop()
	catalog := &fakeCatalog{products: []domain.Product{
		{ID: 1, Title: "iPhone 9", Price: 100, DiscountPercentage: 10, Rating: 4.7, Category: "smartphones", Brand: "Apple"},
		{ID: 2, Title: "Galaxy", Price: 50, Rating: 4.1, Category: "smartphones", Brand: "Samsung"},
		{ID: 3, Title: "Perfume", Price: 20, Rating: 3.9, Category: "fragrances", Brand: "Dior"},
	}}
	registry := state.NewRegistry(&memoryPersister{carts: map[string]domain.CartState{}, wishlists: map[string]domain.WishlistState{}})
	tokens := token.NewService("segredo-de-teste", time.Hour)

	handlers := router.Handlers{
		Product:  product.NewHandler(catalogservice.NewService(catalog, 100, log), log),
		Cart:     cart.NewHandler(cartservice.NewService(registry, catalog, log), log),
		Wishlist: wishlist.NewHandler(wishlistservice.NewService(registry, catalog, log), log),
		Promo:    promo.NewHandler(promoservice.NewService(log), log),
		Checkout: checkout.NewHandler(checkoutservice.NewService(registry, 0, log), log),
		Session:  session.NewHandler(sessionservice.NewService(tokens, log), log),
	}
	srv := httptest.NewServer(router.NewRouter(handlers, tokens, nil, router.Options{AllowedOrigins: []string{"*"}}, log))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func startSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/v1/session", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var s domain.Session
	decode(t, resp, &s)
	require.NotEmpty(t, s.Token)
	return s.Token
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestBrowse(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/v1/products?category=smartphones&sort=price-asc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.BrowseResult
	decode(t, resp, &result)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 2, result.Items[0].ID)
	assert.Equal(t, []string{"Apple", "Samsung"}, result.Brands)
	require.Len(t, result.Categories, 2)
	assert.Equal(t, domain.Category{Slug: "fragrances", Name: "Fragrances", Emoji: "🌸"}, result.Categories[0])
}

func TestCategories(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []domain.Category
	decode(t, resp, &categories)
	assert.Equal(t, []domain.Category{
		{Slug: "smartphones", Name: "Smartphones", Emoji: "📱"},
		{Slug: "fragrances", Name: "Fragrances", Emoji: "🌸"},
	}, categories)
}

func TestBrowse_InvalidParam(t *testing.T) {
	srv := newTestServer(t)

	for _, query := range []string{"minPrice=abc", "maxPrice=NaN", "rating=Inf"} {
		resp := do(t, srv, http.MethodGet, "/v1/products?"+query, "", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestBrowse_HugePageIsEmpty(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/v1/products?page=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.BrowseResult
	decode(t, resp, &result)
	assert.Empty(t, result.Items)
	assert.Equal(t, 3, result.Total)
}

func TestGetProduct(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/v1/products/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail domain.ProductDetail
	decode(t, resp, &detail)
	assert.Equal(t, "iPhone 9", detail.Title)
	assert.Equal(t, "$100.00", detail.PriceDisplay)
	assert.Equal(t, domain.Stars{Full: 4, Half: true, Empty: 0}, detail.Stars)
	assert.Equal(t, "Smartphones", detail.CategoryName)

	resp = do(t, srv, http.MethodGet, "/v1/products/99", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body domain.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Category)

	resp = do(t, srv, http.MethodGet, "/v1/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPromoCodes(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/v1/promocodes", "", map[string]interface{}{"code": "", "subtotal": 50})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody domain.ErrorResponse
	decode(t, resp, &errBody)
	assert.Contains(t, errBody.Message, "Promo code is required")

	resp = do(t, srv, http.MethodPost, "/v1/promocodes", "", map[string]interface{}{"code": "FOO123", "subtotal": 50})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result domain.PromoResult
	decode(t, resp, &result)
	assert.False(t, result.Valid)

	resp = do(t, srv, http.MethodGet, "/v1/promocodes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hints domain.PromoHints
	decode(t, resp, &hints)
	assert.Len(t, hints.Codes, 5)
}

func TestCart_RequiresSession(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/v1/cart", "token-falso", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestShoppingFlow(t *testing.T) {
	srv := newTestServer(t)
	bearer := startSession(t, srv)

	// 1. Adiciona 2 unidades
	resp := do(t, srv, http.MethodPost, "/v1/cart/items", bearer, domain.AddToCartRequest{ProductID: 1, Quantity: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 2. Aplica o promo
	resp = do(t, srv, http.MethodPost, "/v1/cart/promo", bearer, domain.ApplyPromoRequest{Code: "save10"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var applied domain.ApplyPromoResponse
	decode(t, resp, &applied)
	assert.True(t, applied.Promo.Valid)
	assert.InDelta(t, 20.0, applied.Cart.PromoDiscount, 1e-9)

	// 3. Lê o carrinho
	resp = do(t, srv, http.MethodGet, "/v1/cart", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view domain.CartView
	decode(t, resp, &view)
	assert.Equal(t, 2, view.ItemCount)
	// (200 - 20) * 1.18
	assert.InDelta(t, 212.4, view.Totals.Total, 1e-9)
	assert.Equal(t, "$212.40", view.Display.Total)
	assert.Equal(t, "$20.00", view.Display.PromoDiscount)

	// 4. Lista de desejos
	resp = do(t, srv, http.MethodPost, "/v1/wishlist/toggle", bearer, domain.WishlistRequest{ProductID: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled domain.ToggleResult
	decode(t, resp, &toggled)
	assert.True(t, toggled.InWishlist)

	resp = do(t, srv, http.MethodDelete, "/v1/wishlist/items/3", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 5. Checkout
	form := domain.CheckoutForm{
		FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", Phone: "9876543210",
		Address: "Rua A, 1", City: "Pune", State: "MH", Pincode: "411001", PaymentMethod: domain.PaymentCard,
	}
	resp = do(t, srv, http.MethodPost, "/v1/checkout", bearer, form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order domain.Order
	decode(t, resp, &order)
	assert.Equal(t, domain.OrderConfirmed, order.Status)
	assert.InDelta(t, 212.4, order.Totals.Total, 1e-9)
	assert.Equal(t, "$212.40", order.Display.Total)

	// 6. Carrinho vazio após o pedido; novo checkout é rejeitado
	resp = do(t, srv, http.MethodGet, "/v1/cart", bearer, nil)
	var after domain.CartView
	decode(t, resp, &after)
	assert.Empty(t, after.Items)
	assert.False(t, after.PromoCode.Valid)

	resp = do(t, srv, http.MethodPost, "/v1/checkout", bearer, form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCart_MalformedPayload(t *testing.T) {
	srv := newTestServer(t)
	bearer := startSession(t, srv)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/cart/items", bytes.NewBufferString("{"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearer)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
