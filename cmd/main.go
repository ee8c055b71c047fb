package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gostore/config"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"

	// Camadas da vitrine para Injeção de Dependências
	"gostore/internal/api/cart"
	"gostore/internal/api/checkout"
	"gostore/internal/api/product"
	"gostore/internal/api/promo"
	"gostore/internal/api/router"
	"gostore/internal/api/session"
	"gostore/internal/api/wishlist"
	"gostore/internal/repository/catalogrepo"
	"gostore/internal/repository/staterepo"
	"gostore/internal/service/cartservice"
	"gostore/internal/service/catalogservice"
	"gostore/internal/service/checkoutservice"
	"gostore/internal/service/promoservice"
	"gostore/internal/service/sessionservice"
	"gostore/internal/service/wishlistservice"
	"gostore/internal/state"
)

// @title GoStore API
// @version 1.0
// @description Vitrine: catálogo, carrinho, lista de desejos, códigos promocionais e checkout simulado.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoStore...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	defer logger.Sync(appLog)
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"env":           cfg.Environment,
		"state_backend": cfg.StateBackend,
		"catalog":       cfg.CatalogBaseURL,
	})

	ctx := context.Background()

	// 2. Conexão com Recursos de Infraestrutura

	// A. Cache (Redis): cache do catálogo, rate limit e backend padrão do estado
	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	switch {
	case err == nil:
		cacheClient = redisClient
		defer redisClient.Close()
		appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	case cfg.StateBackend == "redis":
		appLog.Fatal("Falha ao conectar ao Redis (backend de estado).", err)
	default:
		_ = redisClient.Close()
		appLog.Warn("Redis indisponível: cache do catálogo e rate limit desligados.", map[string]interface{}{"error": err.Error()})
	}

	// B. Backend de estado do cliente (carrinho e lista de desejos)
	var persister state.Persister
	switch cfg.StateBackend {
	case "postgres":
		var db *sql.DB
		db, err = database.NewPostgresDB(ctx, cfg.DatabaseURL, appLog)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		persister = staterepo.NewPostgresRepository(db, cfg.DBTimeout, appLog)
		appLog.Info("Backend de estado PostgreSQL inicializado.", nil)
	case "redis":
		persister = staterepo.NewRedisRepository(cacheClient, cfg.CacheTimeout, appLog)
		appLog.Info("Backend de estado Redis inicializado.", nil)
	default:
		appLog.Fatal("STATE_BACKEND inválido.", errors.New(cfg.StateBackend))
	}
	registry := state.NewRegistry(persister)

	// Sessões ociosas são gravadas e liberadas da memória em segundo plano.
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go registry.Janitor(janitorCtx, cfg.SessionIdleTTL, cfg.SessionSweepInterval, appLog)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositório do catálogo externo
	catalogRepo := catalogrepo.NewRepository(catalogrepo.Options{
		BaseURL:     cfg.CatalogBaseURL,
		Timeout:     cfg.CatalogTimeout,
		RPS:         cfg.CatalogRPS,
		Retries:     cfg.CatalogRetries,
		RetryBase:   200 * time.Millisecond,
		ProductTTL:  cfg.ProductCacheTTL,
		CategoryTTL: cfg.CategoryCacheTTL,
	}, cacheClient, appLog)
	appLog.Debug("Repositório do catálogo inicializado.", nil)

	// B. Serviços
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	catalogSvc := catalogservice.NewService(catalogRepo, cfg.CatalogFetchLimit, appLog)
	cartSvc := cartservice.NewService(registry, catalogRepo, appLog)
	wishlistSvc := wishlistservice.NewService(registry, catalogRepo, appLog)
	promoSvc := promoservice.NewService(appLog)
	checkoutSvc := checkoutservice.NewService(registry, cfg.CheckoutProcessing, appLog)
	sessionSvc := sessionservice.NewService(tokenSvc, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// C. Handlers
	handlers := router.Handlers{
		Product:  product.NewHandler(catalogSvc, appLog),
		Cart:     cart.NewHandler(cartSvc, appLog),
		Wishlist: wishlist.NewHandler(wishlistSvc, appLog),
		Promo:    promo.NewHandler(promoSvc, appLog),
		Checkout: checkout.NewHandler(checkoutSvc, appLog),
		Session:  session.NewHandler(sessionSvc, appLog),
	}

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, tokenSvc, cacheClient, router.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
	}, appLog)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.CheckoutProcessing,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoStore ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}
	stopJanitor()

	// Grava o estado de todas as sessões vivas antes de fechar as conexões.
	if err := registry.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Falha ao gravar estado das sessões no encerramento.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", map[string]interface{}{"sessions": registry.Len()})
}
