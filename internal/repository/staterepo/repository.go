// Package staterepo persiste os registros "cart" e "wishlist" de cada sessão.
// Há dois backends com o mesmo layout JSON: Redis (padrão) e PostgreSQL.
package staterepo

import (
	"context"
	"encoding/json"
	"fmt"

	"gostore/internal/domain"
)

// Namespaces dos registros persistidos.
const (
	NamespaceCart     = "cart"
	NamespaceWishlist = "wishlist"
)

// recordStore é o armazenamento bruto de um registro JSON por (sessão, namespace).
// found=false indica registro inexistente (sessão nova).
type recordStore interface {
	load(ctx context.Context, sessionID, namespace string) (data []byte, found bool, err error)
	save(ctx context.Context, sessionID, namespace string, data []byte) error
}

// codec implementa state.Persister sobre qualquer recordStore.
type codec struct {
	store recordStore
}

// LoadCart lê o registro do carrinho; sessão nova devolve carrinho vazio.
func (c codec) LoadCart(ctx context.Context, sessionID string) (domain.CartState, error) {
	cart := domain.CartState{Items: []domain.CartItem{}}
	if err := c.read(ctx, sessionID, NamespaceCart, &cart); err != nil {
		return domain.CartState{}, err
	}
	return cart, nil
}

// SaveCart grava {items, promoCode, promoDiscount}.
func (c codec) SaveCart(ctx context.Context, sessionID string, cart domain.CartState) error {
	return c.write(ctx, sessionID, NamespaceCart, cart)
}

// LoadWishlist lê o registro da lista de desejos; sessão nova devolve lista vazia.
func (c codec) LoadWishlist(ctx context.Context, sessionID string) (domain.WishlistState, error) {
	wishlist := domain.WishlistState{Items: []domain.Product{}}
	if err := c.read(ctx, sessionID, NamespaceWishlist, &wishlist); err != nil {
		return domain.WishlistState{}, err
	}
	return wishlist, nil
}

// SaveWishlist grava {items}.
func (c codec) SaveWishlist(ctx context.Context, sessionID string, wishlist domain.WishlistState) error {
	return c.write(ctx, sessionID, NamespaceWishlist, wishlist)
}

func (c codec) read(ctx context.Context, sessionID, namespace string, out interface{}) error {
	data, found, err := c.store.load(ctx, sessionID, namespace)
	if err != nil || !found {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("registro %s da sessão %s corrompido: %w", namespace, sessionID, err)
	}
	return nil
}

func (c codec) write(ctx context.Context, sessionID, namespace string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("falha ao serializar registro %s: %w", namespace, err)
	}
	return c.store.save(ctx, sessionID, namespace, data)
}
