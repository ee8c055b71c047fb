package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gostore/docs" // registra o documento swagger

	"gostore/internal/api/cart"
	"gostore/internal/api/checkout"
	"gostore/internal/api/product"
	"gostore/internal/api/promo"
	"gostore/internal/api/session"
	"gostore/internal/api/wishlist"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Product  *product.Handler
	Cart     *cart.Handler
	Wishlist *wishlist.Handler
	Promo    *promo.Handler
	Checkout *checkout.Handler
	Session  *session.Handler
}

// Options configura os middlewares globais.
type Options struct {
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitPeriod time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// cacheClient nil desliga o rate limit.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, cacheClient cache.Client, opts Options, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Rotas públicas (v1) ---
	mux.HandleFunc("GET /v1/products", h.Product.BrowseHandler)
	mux.HandleFunc("GET /v1/products/{id}", h.Product.GetProductHandler)
	mux.HandleFunc("GET /v1/products/{id}/related", h.Product.RelatedHandler)
	mux.HandleFunc("GET /v1/categories", h.Product.CategoriesHandler)

	mux.HandleFunc("GET /v1/promocodes", h.Promo.HintsHandler)
	mux.HandleFunc("POST /v1/promocodes", h.Promo.ValidateHandler)

	mux.HandleFunc("POST /v1/session", h.Session.StartHandler)

	// --- 3. Rotas da sessão (exigem Bearer) ---
	withSession := middleware.NewSessionMiddleware(tokenSvc)
	protect := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, withSession(fn))
	}

	protect("GET /v1/cart", h.Cart.GetCartHandler)
	protect("DELETE /v1/cart", h.Cart.ClearHandler)
	protect("POST /v1/cart/items", h.Cart.AddItemHandler)
	protect("PATCH /v1/cart/items", h.Cart.UpdateQuantityHandler)
	protect("DELETE /v1/cart/items", h.Cart.RemoveItemHandler)
	protect("POST /v1/cart/promo", h.Cart.ApplyPromoHandler)
	protect("DELETE /v1/cart/promo", h.Cart.RemovePromoHandler)

	protect("GET /v1/wishlist", h.Wishlist.GetHandler)
	protect("DELETE /v1/wishlist", h.Wishlist.ClearHandler)
	protect("POST /v1/wishlist/items", h.Wishlist.AddHandler)
	protect("DELETE /v1/wishlist/items/{id}", h.Wishlist.RemoveHandler)
	protect("POST /v1/wishlist/toggle", h.Wishlist.ToggleHandler)

	protect("POST /v1/checkout", h.Checkout.PlaceOrderHandler)

	// --- 4. Middlewares globais (de fora para dentro) ---
	var handler http.Handler = mux
	if cacheClient != nil && opts.RateLimitMax > 0 {
		handler = middleware.RateLimiter(cacheClient, opts.RateLimitMax, opts.RateLimitPeriod, log)(handler)
	}
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.NewCORS(opts.AllowedOrigins)(handler)
	handler = middleware.RequestLogger(log)(handler)

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
