package staterepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
)

// redisKey segue o layout "gostore:{sessão}:{namespace}".
const redisKey = "gostore:%s:%s"

// RedisRepository guarda os registros no Redis, sem expiração.
type RedisRepository struct {
	codec
}

type redisStore struct {
	cache   cache.Client
	timeout time.Duration
	logger  logger.Logger
}

// NewRedisRepository cria o backend de estado sobre o cliente de cache.
func NewRedisRepository(client cache.Client, timeout time.Duration, log logger.Logger) *RedisRepository {
	return &RedisRepository{codec: codec{store: &redisStore{cache: client, timeout: timeout, logger: log}}}
}

func (s *redisStore) load(ctx context.Context, sessionID, namespace string) ([]byte, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	key := fmt.Sprintf(redisKey, sessionID, namespace)
	val, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Debug("Registro de estado inexistente, iniciando vazio", map[string]interface{}{"key": key})
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Falha ao ler registro de estado no Redis", err)
		return nil, false, apperror.NewCacheError("Falha ao carregar estado da sessão", err)
	}
	return []byte(val), true, nil
}

func (s *redisStore) save(ctx context.Context, sessionID, namespace string, data []byte) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	key := fmt.Sprintf(redisKey, sessionID, namespace)
	if err := s.cache.Set(ctx, key, data, 0); err != nil {
		s.logger.Error("Falha ao gravar registro de estado no Redis", err)
		return apperror.NewCacheError("Falha ao salvar estado da sessão", err)
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
