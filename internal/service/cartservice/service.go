package cartservice

import (
	"context"
	"fmt"
	"strings"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/validation"
	"gostore/internal/promotion"
	"gostore/internal/state"
)

// ProductFinder é a parte do catálogo que o carrinho usa para congelar o produto.
type ProductFinder interface {
	FindByID(ctx context.Context, id int) (domain.Product, error)
}

// Service aplica as operações do carrinho ao container da sessão e grava
// os registros após cada mutação.
type Service struct {
	registry *state.Registry
	catalog  ProductFinder
	logger   logger.Logger
}

// NewService cria o serviço de carrinho.
func NewService(registry *state.Registry, catalog ProductFinder, log logger.Logger) *Service {
	return &Service{registry: registry, catalog: catalog, logger: log}
}

// GetCart devolve o carrinho da sessão com os totais.
func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.CartView, error) {
	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}
	return c.View(), nil
}

// AddItem busca o produto no catálogo e o adiciona (ou soma) na linha da variante.
func (s *Service) AddItem(ctx context.Context, sessionID string, req domain.AddToCartRequest) (domain.CartView, error) {
	if err := validation.Struct(req); err != nil {
		return domain.CartView{}, err
	}

	product, err := s.catalog.FindByID(ctx, req.ProductID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("falha ao buscar produto %d para o carrinho: %w", req.ProductID, err)
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	c.AddToCart(product, quantity, req.SelectedColor, req.SelectedSize)
	s.flush(ctx, c)

	s.logger.Info("Produto adicionado ao carrinho", map[string]interface{}{
		"session_id": sessionID,
		"product_id": product.ID,
		"quantity":   quantity,
	})
	return c.View(), nil
}

// UpdateQuantity define a quantidade da linha; <= 0 remove a linha.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, req domain.UpdateQuantityRequest) (domain.CartView, error) {
	if err := validation.Struct(req); err != nil {
		return domain.CartView{}, err
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}

	c.UpdateQuantity(domain.LineKey{ProductID: req.ProductID, Color: req.SelectedColor, Size: req.SelectedSize}, req.Quantity)
	s.flush(ctx, c)
	return c.View(), nil
}

// RemoveItem remove a linha exata (sem efeito se ela não existir).
func (s *Service) RemoveItem(ctx context.Context, sessionID string, req domain.RemoveFromCartRequest) (domain.CartView, error) {
	if err := validation.Struct(req); err != nil {
		return domain.CartView{}, err
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}

	c.RemoveFromCart(domain.LineKey{ProductID: req.ProductID, Color: req.SelectedColor, Size: req.SelectedSize})
	s.flush(ctx, c)
	return c.View(), nil
}

// Clear esvazia o carrinho e remove o código promocional.
func (s *Service) Clear(ctx context.Context, sessionID string) (domain.CartView, error) {
	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}

	c.ClearCart()
	s.flush(ctx, c)
	return c.View(), nil
}

// ApplyPromo valida o código contra o subtotal atual e, se válido, substitui o
// código ativo. Código desconhecido devolve valid=false e o carrinho intacto.
func (s *Service) ApplyPromo(ctx context.Context, sessionID string, code string) (domain.ApplyPromoResponse, error) {
	if strings.TrimSpace(code) == "" {
		return domain.ApplyPromoResponse{}, apperror.NewValidationError("Promo code is required")
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.ApplyPromoResponse{}, err
	}

	canonical := promotion.Canonical(code)
	result := c.ApplyPromo(canonical, func(subtotal float64) domain.PromoResult {
		return promotion.Validate(code, subtotal)
	})
	if !result.Valid {
		s.logger.Warn("Código promocional recusado", map[string]interface{}{"session_id": sessionID, "code": code})
		return domain.ApplyPromoResponse{Promo: result, Cart: c.View()}, nil
	}
	s.flush(ctx, c)

	s.logger.Info("Código promocional aplicado", map[string]interface{}{
		"session_id": sessionID,
		"code":       canonical,
		"discount":   result.Discount,
	})
	return domain.ApplyPromoResponse{Promo: result, Cart: c.View()}, nil
}

// RemovePromo remove o código ativo.
func (s *Service) RemovePromo(ctx context.Context, sessionID string) (domain.CartView, error) {
	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}

	c.RemovePromoCode()
	s.flush(ctx, c)
	return c.View(), nil
}

func (s *Service) acquire(ctx context.Context, sessionID string) (*state.Container, error) {
	if sessionID == "" {
		return nil, apperror.NewUnauthorizedError("Sessão ausente.")
	}
	c, err := s.registry.Acquire(ctx, sessionID)
	if err != nil {
		s.logger.Error("Falha ao carregar estado da sessão", err)
		return nil, fmt.Errorf("falha ao carregar carrinho: %w", err)
	}
	return c, nil
}

// flush grava os registros da sessão. A mutação em memória já está aplicada e
// continua valendo; a próxima gravação (ou o Shutdown) reenvia o estado.
func (s *Service) flush(ctx context.Context, c *state.Container) {
	if err := s.registry.Flush(ctx, c); err != nil {
		s.logger.Error("Falha ao persistir estado da sessão", err)
	}
}
