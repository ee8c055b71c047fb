package staterepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// PostgresRepository guarda os registros na tabela storefront_state (payload JSONB).
type PostgresRepository struct {
	codec
}

type postgresStore struct {
	db      *sql.DB
	timeout time.Duration
	logger  logger.Logger
}

const (
	selectStateSQL = `SELECT payload FROM storefront_state WHERE session_id = $1 AND namespace = $2`

	upsertStateSQL = `INSERT INTO storefront_state (session_id, namespace, payload, updated_at)
                      VALUES ($1, $2, $3, $4)
                      ON CONFLICT (session_id, namespace)
                      DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

// NewPostgresRepository cria o backend de estado sobre o pool PostgreSQL.
func NewPostgresRepository(db *sql.DB, timeout time.Duration, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{codec: codec{store: &postgresStore{db: db, timeout: timeout, logger: log}}}
}

func (s *postgresStore) load(ctx context.Context, sessionID, namespace string) ([]byte, bool, error) {
	// 1. Configura Contexto com Timeout
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// 2. Executa a busca
	var payload []byte
	err := s.db.QueryRowContext(ctx, selectStateSQL, sessionID, namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("Registro de estado inexistente no DB", map[string]interface{}{"session_id": sessionID, "namespace": namespace})
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Falha ao ler registro de estado no DB.", err)
		return nil, false, apperror.NewDBError("Falha ao carregar estado da sessão", err)
	}
	return payload, true, nil
}

func (s *postgresStore) save(ctx context.Context, sessionID, namespace string, data []byte) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, upsertStateSQL, sessionID, namespace, data, time.Now().UTC()); err != nil {
		s.logger.Error("Falha ao gravar registro de estado no DB.", err)
		return apperror.NewDBError("Falha ao salvar estado da sessão", err)
	}
	return nil
}
