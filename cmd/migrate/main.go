package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gostore/config"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/logger"
)

func main() {
	// Carrega o .env, se existir
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: arquivo .env não encontrado. Usando apenas o ambiente do sistema: %v", err)
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	defer logger.Sync(appLog)

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com os arquivos de migração")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		log.Fatalf("goose: DATABASE_URL não definido")
	}

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, appLog)
	if err != nil {
		log.Fatalf("goose: falha ao conectar ao DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o DB: %v\n", err)
		}
	}()

	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: dialeto inválido: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
