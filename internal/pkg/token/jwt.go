package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer identifica os tokens emitidos pela loja.
const Issuer = "GoStore-API"

// TokenService define o contrato para manipulação dos JWTs de sessão do comprador.
type TokenService interface {
	GenerateToken(sessionID string) (string, time.Time, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims carrega a sessão anônima que indexa carrinho e lista de desejos.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Service implementa a interface TokenService com HS256.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken cria um JWT assinado para a sessão e devolve também a expiração.
func (s *Service) GenerateToken(sessionID string) (string, time.Time, error) {
	if sessionID == "" {
		return "", time.Time{}, errors.New("sessão vazia")
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   sessionID,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken valida o token e devolve as claims da sessão.
func (s *Service) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verifica se o método de assinatura é o esperado (HMAC)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid || claims.SessionID == "" {
		return nil, errors.New("token não é válido")
	}
	return claims, nil
}
