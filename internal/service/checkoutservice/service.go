package checkoutservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/validation"
	"gostore/internal/state"
)

// EmptyCartMessage é devolvida quando o checkout chega com o carrinho vazio.
const EmptyCartMessage = "O carrinho está vazio."

// Service conduz o checkout simulado: valida o formulário, aguarda o
// processamento e confirma o pedido esvaziando o carrinho. Pedidos não são persistidos.
type Service struct {
	registry   *state.Registry
	processing time.Duration
	logger     logger.Logger
	now        func() time.Time
}

// NewService cria o serviço de checkout com o tempo de processamento simulado.
func NewService(registry *state.Registry, processing time.Duration, log logger.Logger) *Service {
	return &Service{registry: registry, processing: processing, logger: log, now: time.Now}
}

// PlaceOrder valida o formulário e confirma o pedido com os itens do carrinho.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, form domain.CheckoutForm) (domain.Order, error) {
	// 1. Validação do formulário
	if err := validation.Struct(form); err != nil {
		s.logger.Warn("Formulário de checkout inválido", map[string]interface{}{"session_id": sessionID})
		return domain.Order{}, err
	}
	if sessionID == "" {
		return domain.Order{}, apperror.NewUnauthorizedError("Sessão ausente.")
	}

	c, err := s.registry.Acquire(ctx, sessionID)
	if err != nil {
		s.logger.Error("Falha ao carregar estado da sessão", err)
		return domain.Order{}, fmt.Errorf("falha ao carregar carrinho para checkout: %w", err)
	}

	// 2. Carrinho vazio é rejeitado antes do processamento
	if len(c.Cart().Items) == 0 {
		return domain.Order{}, apperror.NewValidationError(EmptyCartMessage)
	}

	// 3. Processamento simulado, respeitando o cancelamento da requisição
	if s.processing > 0 {
		timer := time.NewTimer(s.processing)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.logger.Warn("Checkout cancelado durante o processamento", map[string]interface{}{"session_id": sessionID})
			return domain.Order{}, fmt.Errorf("checkout cancelado: %w", ctx.Err())
		case <-timer.C:
		}
	}

	// 4. Snapshot e limpeza atômicos; o carrinho pode ter sido esvaziado durante a espera
	drained := c.DrainCart()
	if len(drained.Items) == 0 {
		return domain.Order{}, apperror.NewConflictError("O carrinho foi esvaziado durante o checkout.")
	}
	if err := s.registry.Flush(ctx, c); err != nil {
		s.logger.Error("Falha ao persistir carrinho após checkout", err)
	}

	placedAt := s.now()
	order := domain.Order{
		ID:            OrderID(placedAt),
		Reference:     uuid.NewString(),
		Items:         drained.Items,
		PromoCode:     drained.PromoCode,
		Totals:        drained.Totals,
		Display:       drained.Display,
		Customer:      customerFrom(form),
		PaymentMethod: form.PaymentMethod,
		Status:        domain.OrderConfirmed,
		PlacedAt:      placedAt,
	}

	s.logger.Info("Pedido confirmado", map[string]interface{}{
		"session_id": sessionID,
		"order_id":   order.ID,
		"total":      order.Totals.Total,
		"payment":    order.PaymentMethod,
	})
	return order, nil
}

// OrderID monta o identificador "SZ" + últimos 8 dígitos do epoch em milissegundos.
func OrderID(t time.Time) string {
	return fmt.Sprintf("SZ%08d", t.UnixMilli()%100_000_000)
}

func customerFrom(form domain.CheckoutForm) domain.Customer {
	return domain.Customer{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		Address:   form.Address,
		City:      form.City,
		State:     form.State,
		Pincode:   form.Pincode,
	}
}
