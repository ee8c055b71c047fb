package wishlistservice

import (
	"context"
	"fmt"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/validation"
	"gostore/internal/state"
)

// ProductFinder busca o produto a ser guardado na lista.
type ProductFinder interface {
	FindByID(ctx context.Context, id int) (domain.Product, error)
}

// Service gerencia a lista de desejos da sessão.
type Service struct {
	registry *state.Registry
	catalog  ProductFinder
	logger   logger.Logger
}

// NewService cria o serviço de lista de desejos.
func NewService(registry *state.Registry, catalog ProductFinder, log logger.Logger) *Service {
	return &Service{registry: registry, catalog: catalog, logger: log}
}

// Get devolve a lista da sessão.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.WishlistView, error) {
	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.WishlistView{}, err
	}
	return c.WishlistView(), nil
}

// Add guarda o produto; repetido é ignorado.
func (s *Service) Add(ctx context.Context, sessionID string, req domain.WishlistRequest) (domain.WishlistView, error) {
	product, c, err := s.resolve(ctx, sessionID, req)
	if err != nil {
		return domain.WishlistView{}, err
	}

	c.AddToWishlist(product)
	s.flush(ctx, c)
	return c.WishlistView(), nil
}

// Remove tira o produto da lista pelo ID.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int) (domain.WishlistView, error) {
	if productID <= 0 {
		return domain.WishlistView{}, apperror.NewValidationError("O ID do produto deve ser positivo.")
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.WishlistView{}, err
	}

	c.RemoveFromWishlist(productID)
	s.flush(ctx, c)
	return c.WishlistView(), nil
}

// Toggle alterna a presença do produto e informa o estado final.
func (s *Service) Toggle(ctx context.Context, sessionID string, req domain.WishlistRequest) (domain.ToggleResult, error) {
	if err := validation.Struct(req); err != nil {
		return domain.ToggleResult{}, err
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.ToggleResult{}, err
	}

	// O catálogo só é consultado quando o produto vai entrar na lista.
	in, err := c.ToggleWishlistFunc(req.ProductID, func() (domain.Product, error) {
		return s.catalog.FindByID(ctx, req.ProductID)
	})
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("falha ao buscar produto %d para a lista: %w", req.ProductID, err)
	}
	s.flush(ctx, c)

	s.logger.Info("Lista de desejos alternada", map[string]interface{}{
		"session_id":  sessionID,
		"product_id":  req.ProductID,
		"in_wishlist": in,
	})
	return domain.ToggleResult{WishlistView: c.WishlistView(), InWishlist: in}, nil
}

// Clear esvazia a lista.
func (s *Service) Clear(ctx context.Context, sessionID string) (domain.WishlistView, error) {
	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.WishlistView{}, err
	}

	c.ClearWishlist()
	s.flush(ctx, c)
	return c.WishlistView(), nil
}

func (s *Service) resolve(ctx context.Context, sessionID string, req domain.WishlistRequest) (domain.Product, *state.Container, error) {
	if err := validation.Struct(req); err != nil {
		return domain.Product{}, nil, err
	}

	product, err := s.catalog.FindByID(ctx, req.ProductID)
	if err != nil {
		return domain.Product{}, nil, fmt.Errorf("falha ao buscar produto %d para a lista: %w", req.ProductID, err)
	}

	c, err := s.acquire(ctx, sessionID)
	if err != nil {
		return domain.Product{}, nil, err
	}
	return product, c, nil
}

func (s *Service) acquire(ctx context.Context, sessionID string) (*state.Container, error) {
	if sessionID == "" {
		return nil, apperror.NewUnauthorizedError("Sessão ausente.")
	}
	c, err := s.registry.Acquire(ctx, sessionID)
	if err != nil {
		s.logger.Error("Falha ao carregar estado da sessão", err)
		return nil, fmt.Errorf("falha ao carregar lista de desejos: %w", err)
	}
	return c, nil
}

func (s *Service) flush(ctx context.Context, c *state.Container) {
	if err := s.registry.Flush(ctx, c); err != nil {
		s.logger.Error("Falha ao persistir estado da sessão", err)
	}
}
