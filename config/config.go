package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações do aplicativo GoStore.
// Os campos cobrem catálogo externo, cache, persistência do estado, sessão e robustez.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Catálogo externo (API de produtos)
	CatalogBaseURL    string
	CatalogTimeout    time.Duration
	CatalogRPS        float64
	CatalogRetries    int
	CatalogFetchLimit int
	ProductCacheTTL   time.Duration
	CategoryCacheTTL  time.Duration

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration

	// Persistência do estado do cliente (carrinho e lista de desejos)
	StateBackend string // "redis" ou "postgres"
	DatabaseURL  string
	DBTimeout    time.Duration

	// Sessões em memória: tempo ocioso até a remoção e intervalo da varredura
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration

	// Segurança (JWT de sessão)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// HTTP
	AllowedOrigins []string

	// Checkout simulado
	CheckoutProcessing time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Catálogo externo
		CatalogBaseURL:    strings.TrimRight(getEnv("CATALOG_BASE_URL", "https://dummyjson.com"), "/"),
		CatalogTimeout:    getDurationEnv("CATALOG_TIMEOUT_SEC", 10) * time.Second,
		CatalogRPS:        getFloatEnv("CATALOG_RPS", 10),
		CatalogRetries:    getIntEnv("CATALOG_RETRIES", 3),
		CatalogFetchLimit: getIntEnv("CATALOG_FETCH_LIMIT", 200),
		ProductCacheTTL:   getDurationEnv("PRODUCT_CACHE_TTL_SEC", 3600) * time.Second,  // 1h
		CategoryCacheTTL:  getDurationEnv("CATEGORY_CACHE_TTL_SEC", 86400) * time.Second, // 24h

		// 3. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,

		// 4. Persistência do estado
		StateBackend: strings.ToLower(getEnv("STATE_BACKEND", "redis")),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DBTimeout:    getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		SessionIdleTTL:       getDurationEnv("SESSION_IDLE_TTL_MIN", 30) * time.Minute,
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL_MIN", 5) * time.Minute,

		// 5. Segurança (JWT)
		// mustGetEnv garante que a aplicação não inicie sem segredo de assinatura
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_HOURS", 720) * time.Hour, // 30 dias

		// 6. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 7. HTTP
		AllowedOrigins: getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),

		// 8. Checkout
		CheckoutProcessing: getDurationEnv("CHECKOUT_PROCESSING_MS", 2000) * time.Millisecond,
	}

	// O backend Postgres exige DATABASE_URL.
	if cfg.StateBackend == "postgres" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getFloatEnv lê uma variável de ambiente decimal.
func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número válido. Usando padrão (%g).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getSliceEnv lê uma lista separada por vírgulas, ignorando itens vazios.
func getSliceEnv(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
