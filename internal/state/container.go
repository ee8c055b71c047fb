// Package state contém o dono exclusivo do carrinho e da lista de desejos de
// uma sessão. Todas as mutações passam por um único mutex, de modo que nenhum
// leitor observa um estado intermediário (itens alterados sem o promo coerente).
package state

import (
	"context"
	"fmt"
	"sync"

	"gostore/internal/domain"
	"gostore/internal/pricing"
)

// Persister é o armazenamento chave-valor onde os registros "cart" e "wishlist"
// são lidos na inicialização e gravados após cada mutação.
type Persister interface {
	LoadCart(ctx context.Context, sessionID string) (domain.CartState, error)
	SaveCart(ctx context.Context, sessionID string, cart domain.CartState) error
	LoadWishlist(ctx context.Context, sessionID string) (domain.WishlistState, error)
	SaveWishlist(ctx context.Context, sessionID string, wishlist domain.WishlistState) error
}

// Container guarda CartState e WishlistState de uma sessão.
type Container struct {
	mu       sync.RWMutex
	flushMu  sync.Mutex // serializa gravações para que a última vença
	session  string
	cart     domain.CartState
	wishlist domain.WishlistState
}

// NewContainer cria um container vazio para a sessão.
func NewContainer(sessionID string) *Container {
	return &Container{
		session:  sessionID,
		cart:     domain.CartState{Items: []domain.CartItem{}},
		wishlist: domain.WishlistState{Items: []domain.Product{}},
	}
}

// SessionID devolve a sessão dona do container.
func (c *Container) SessionID() string { return c.session }

// --- Ciclo de vida ---

// Load semeia o container com os registros persistidos, substituindo o estado atual.
func (c *Container) Load(ctx context.Context, p Persister) error {
	cart, err := p.LoadCart(ctx, c.session)
	if err != nil {
		return fmt.Errorf("falha ao carregar carrinho da sessão %s: %w", c.session, err)
	}
	wishlist, err := p.LoadWishlist(ctx, c.session)
	if err != nil {
		return fmt.Errorf("falha ao carregar lista de desejos da sessão %s: %w", c.session, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart = normalizeCart(cart)
	c.wishlist = normalizeWishlist(wishlist)
	return nil
}

// Flush grava os dois registros com um snapshot consistente.
func (c *Container) Flush(ctx context.Context, p Persister) error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	cart, wishlist := c.Snapshot()
	if err := p.SaveCart(ctx, c.session, cart); err != nil {
		return fmt.Errorf("falha ao gravar carrinho da sessão %s: %w", c.session, err)
	}
	if err := p.SaveWishlist(ctx, c.session, wishlist); err != nil {
		return fmt.Errorf("falha ao gravar lista de desejos da sessão %s: %w", c.session, err)
	}
	return nil
}

// --- Mutações do carrinho ---

// AddToCart soma a quantidade na linha (id, cor, tamanho) existente ou acrescenta
// uma nova linha com uma cópia congelada do produto. Quantidade < 1 vale 1.
func (c *Container) AddToCart(product domain.Product, quantity int, color, size domain.Selector) {
	if quantity < 1 {
		quantity = 1
	}
	key := domain.LineKey{ProductID: product.ID, Color: color, Size: size}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(key); i >= 0 {
		c.cart.Items[i].Quantity += quantity
		return
	}
	c.cart.Items = append(c.cart.Items, domain.CartItem{
		Product:       cloneProduct(product),
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
	})
}

// RemoveFromCart remove a linha exata; não faz nada se ela não existir.
func (c *Container) RemoveFromCart(key domain.LineKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// UpdateQuantity define a quantidade absoluta da linha; <= 0 remove.
// Não faz nada se a linha não existir.
func (c *Container) UpdateQuantity(key domain.LineKey, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(key)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.removeLocked(key)
		return
	}
	c.cart.Items[i].Quantity = quantity
}

// ClearCart esvazia os itens e o código promocional de uma só vez.
func (c *Container) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart = domain.CartState{Items: []domain.CartItem{}}
}

// DrainCart devolve o carrinho com os totais e o esvazia sob o mesmo lock.
func (c *Container) DrainCart() domain.CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.viewLocked()
	c.cart = domain.CartState{Items: []domain.CartItem{}}
	return view
}

// ApplyPromoCode substitui qualquer código anterior (um único código ativo).
func (c *Container) ApplyPromoCode(code string, discount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.PromoCode = domain.Some(code)
	c.cart.PromoDiscount = discount
}

// ApplyPromo valida o código contra o subtotal atual e, se válido, o aplica,
// tudo sob o mesmo lock: nenhuma mutação concorrente cabe entre a leitura do
// subtotal e a gravação do desconto.
func (c *Container) ApplyPromo(code string, validate func(subtotal float64) domain.PromoResult) domain.PromoResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := pricing.CartTotals(c.cart.Items, c.cart.PromoDiscount).Subtotal
	result := validate(subtotal)
	if result.Valid {
		c.cart.PromoCode = domain.Some(code)
		c.cart.PromoDiscount = result.Discount
	}
	return result
}

// RemovePromoCode limpa código e desconto.
func (c *Container) RemovePromoCode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.PromoCode = domain.None()
	c.cart.PromoDiscount = 0
}

// --- Mutações da lista de desejos ---

// AddToWishlist acrescenta o produto se o ID ainda não estiver presente.
func (c *Container) AddToWishlist(product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wishlistIndex(product.ID) < 0 {
		c.wishlist.Items = append(c.wishlist.Items, cloneProduct(product))
	}
}

// RemoveFromWishlist remove o produto pelo ID.
func (c *Container) RemoveFromWishlist(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.wishlistIndex(productID); i >= 0 {
		c.wishlist.Items = append(c.wishlist.Items[:i], c.wishlist.Items[i+1:]...)
	}
}

// ToggleWishlist remove se presente, senão acrescenta. Devolve a presença final.
func (c *Container) ToggleWishlist(product domain.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.wishlistIndex(product.ID); i >= 0 {
		c.wishlist.Items = append(c.wishlist.Items[:i], c.wishlist.Items[i+1:]...)
		return false
	}
	c.wishlist.Items = append(c.wishlist.Items, cloneProduct(product))
	return true
}

// ToggleWishlistFunc é o ToggleWishlist para quem só tem o ID: fetch é chamado
// apenas quando o produto precisa ser acrescentado. Decisão e mutação acontecem
// sob o mesmo lock; um erro de fetch deixa a lista intacta.
func (c *Container) ToggleWishlistFunc(productID int, fetch func() (domain.Product, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.wishlistIndex(productID); i >= 0 {
		c.wishlist.Items = append(c.wishlist.Items[:i], c.wishlist.Items[i+1:]...)
		return false, nil
	}
	product, err := fetch()
	if err != nil {
		return false, err
	}
	c.wishlist.Items = append(c.wishlist.Items, cloneProduct(product))
	return true, nil
}

// ClearWishlist esvazia a lista.
func (c *Container) ClearWishlist() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wishlist = domain.WishlistState{Items: []domain.Product{}}
}

// --- Leituras ---

// Cart devolve uma cópia profunda do carrinho.
func (c *Container) Cart() domain.CartState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCart(c.cart)
}

// Wishlist devolve uma cópia profunda da lista de desejos.
func (c *Container) Wishlist() domain.WishlistState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneWishlist(c.wishlist)
}

// Snapshot devolve os dois registros lidos sob o mesmo lock.
func (c *Container) Snapshot() (domain.CartState, domain.WishlistState) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCart(c.cart), cloneWishlist(c.wishlist)
}

// InWishlist indica se o produto está na lista.
func (c *Container) InWishlist(productID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.wishlistIndex(productID) >= 0
}

// Totals recalcula os totais a partir do estado atual.
func (c *Container) Totals() domain.CartTotals {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pricing.CartTotals(c.cart.Items, c.cart.PromoDiscount)
}

// View devolve carrinho e totais calculados sobre o mesmo snapshot.
func (c *Container) View() domain.CartView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewLocked()
}

// WishlistView devolve a lista de desejos com a contagem.
func (c *Container) WishlistView() domain.WishlistView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.WishlistView{
		WishlistState: cloneWishlist(c.wishlist),
		Count:         len(c.wishlist.Items),
	}
}

// --- Helpers (chamados com o lock adquirido) ---

func (c *Container) viewLocked() domain.CartView {
	totals := pricing.CartTotals(c.cart.Items, c.cart.PromoDiscount)
	return domain.CartView{
		CartState: cloneCart(c.cart),
		Totals:    totals,
		Display:   pricing.DisplayTotals(totals),
		ItemCount: pricing.ItemCount(c.cart.Items),
	}
}

func (c *Container) indexOf(key domain.LineKey) int {
	for i, item := range c.cart.Items {
		if item.Matches(key) {
			return i
		}
	}
	return -1
}

func (c *Container) removeLocked(key domain.LineKey) {
	kept := c.cart.Items[:0]
	for _, item := range c.cart.Items {
		if !item.Matches(key) {
			kept = append(kept, item)
		}
	}
	c.cart.Items = kept
}

func (c *Container) wishlistIndex(productID int) int {
	for i, p := range c.wishlist.Items {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func normalizeCart(cart domain.CartState) domain.CartState {
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	if !cart.PromoCode.Valid {
		cart.PromoDiscount = 0
	}
	return cart
}

func normalizeWishlist(w domain.WishlistState) domain.WishlistState {
	if w.Items == nil {
		w.Items = []domain.Product{}
	}
	return w
}

func cloneCart(cart domain.CartState) domain.CartState {
	out := cart
	out.Items = make([]domain.CartItem, len(cart.Items))
	for i, item := range cart.Items {
		item.Product = cloneProduct(item.Product)
		out.Items[i] = item
	}
	return out
}

func cloneWishlist(w domain.WishlistState) domain.WishlistState {
	out := domain.WishlistState{Items: make([]domain.Product, len(w.Items))}
	for i, p := range w.Items {
		out.Items[i] = cloneProduct(p)
	}
	return out
}

func cloneProduct(p domain.Product) domain.Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	if p.Meta != nil {
		meta := *p.Meta
		p.Meta = &meta
	}
	return p
}
