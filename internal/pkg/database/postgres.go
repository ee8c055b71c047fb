package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver PostgreSQL registrado em database/sql
	_ "github.com/lib/pq"

	"gostore/internal/pkg/logger"
)

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL
// usado pelo backend de estado "postgres".
func NewPostgresDB(ctx context.Context, dataSourceName string, log logger.Logger) (*sql.DB, error) {
	// 1. Abrir a Conexão
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Testar a Conexão Imediatamente
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 3. Configuração do Connection Pool
	// O estado do carrinho é um upsert pequeno por mutação; poucas conexões bastam.
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	log.Info("Pool de Conexões PostgreSQL configurado e pronto.", map[string]interface{}{
		"max_open_conns": 15,
	})

	return db, nil
}
