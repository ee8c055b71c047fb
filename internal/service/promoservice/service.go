package promoservice

import (
	"context"
	"strings"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/promotion"
)

// CodeRequiredMessage é devolvida quando a requisição não traz código.
const CodeRequiredMessage = "Promo code is required"

// Service é a fronteira de requisição/resposta do motor de promoções.
type Service struct {
	logger logger.Logger
}

// NewService cria o serviço de promoções.
func NewService(log logger.Logger) *Service {
	return &Service{logger: log}
}

// Validate valida {code, subtotal}. Código ausente é erro de requisição (400);
// código desconhecido é um resultado com valid=false, nunca um erro.
func (s *Service) Validate(ctx context.Context, req domain.PromoValidationRequest) (domain.PromoResult, error) {
	if strings.TrimSpace(req.Code) == "" {
		s.logger.Warn("Validação de promo sem código", nil)
		return domain.PromoResult{}, apperror.NewValidationError(CodeRequiredMessage)
	}
	if req.Subtotal < 0 {
		return domain.PromoResult{}, apperror.NewValidationError("O subtotal não pode ser negativo.")
	}

	result := promotion.Validate(req.Code, req.Subtotal)
	s.logger.Info("Código promocional validado", map[string]interface{}{
		"code":     promotion.Canonical(req.Code),
		"valid":    result.Valid,
		"discount": result.Discount,
	})
	return result, nil
}

// Hints devolve a dica e o registro de códigos disponíveis.
func (s *Service) Hints(ctx context.Context) domain.PromoHints {
	return domain.PromoHints{Hint: promotion.Hint(), Codes: promotion.Codes()}
}
