package catalogrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
)

// Limites do catálogo para produtos relacionados.
const (
	relatedFetchLimit = 8
	relatedMax        = 6
)

// Chaves de cache.
const (
	listCacheKey       = "catalog:products:%s:%d:%d" // categoria, limit, skip
	productCacheKey    = "catalog:product:%d"
	categoriesCacheKey = "catalog:categories"
)

// errUpstreamNotFound sinaliza 404 vindo do catálogo (não é re-tentado).
var errUpstreamNotFound = errors.New("recurso inexistente no catálogo")

// Options agrupa os parâmetros de acesso ao catálogo externo.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	RPS         float64 // requisições por segundo ao catálogo (<= 0 desliga o limite)
	Retries     int
	RetryBase   time.Duration
	ProductTTL  time.Duration
	CategoryTTL time.Duration
}

// Repository implementa domain.CatalogGateway sobre a API HTTP do catálogo,
// com cache-aside no Redis, limite de taxa de saída e re-tentativa exponencial.
type Repository struct {
	baseURL     string
	client      *http.Client
	cache       cache.Client
	limiter     *rate.Limiter
	retries     uint64
	retryBase   time.Duration
	productTTL  time.Duration
	categoryTTL time.Duration
	logger      logger.Logger
}

// NewRepository cria o gateway do catálogo.
func NewRepository(opts Options, cacheClient cache.Client, log logger.Logger) *Repository {
	limit := rate.Inf
	burst := 1
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
		burst = int(opts.RPS)
		if burst < 1 {
			burst = 1
		}
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 200 * time.Millisecond
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	return &Repository{
		baseURL:     opts.BaseURL,
		client:      &http.Client{Timeout: opts.Timeout},
		cache:       cacheClient,
		limiter:     rate.NewLimiter(limit, burst),
		retries:     uint64(opts.Retries),
		retryBase:   opts.RetryBase,
		productTTL:  opts.ProductTTL,
		categoryTTL: opts.CategoryTTL,
		logger:      log,
	}
}

// ListProducts lista produtos; com categoria, consulta /products/category/{slug}.
func (r *Repository) ListProducts(ctx context.Context, limit, skip int, category string) (domain.ProductPage, error) {
	path := "/products"
	if category != "" && category != domain.SelectorAll {
		path = "/products/category/" + url.PathEscape(category)
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	var page domain.ProductPage
	key := fmt.Sprintf(listCacheKey, category, limit, skip)
	if err := r.cached(ctx, key, r.productTTL, path+"?"+query.Encode(), &page); err != nil {
		if errors.Is(err, errUpstreamNotFound) {
			// Categoria inexistente: lista vazia, como o catálogo faz.
			return domain.ProductPage{Products: []domain.Product{}, Limit: limit, Skip: skip}, nil
		}
		return domain.ProductPage{}, err
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	return page, nil
}

// FindByID busca um produto. 404 do catálogo vira apperror.NotFoundError.
func (r *Repository) FindByID(ctx context.Context, id int) (domain.Product, error) {
	var product domain.Product
	key := fmt.Sprintf(productCacheKey, id)

	err := r.cached(ctx, key, r.productTTL, "/products/"+strconv.Itoa(id), &product)
	if errors.Is(err, errUpstreamNotFound) {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe no catálogo.", id))
	}
	if err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// Related devolve até 6 produtos da mesma categoria, excluindo o próprio produto.
func (r *Repository) Related(ctx context.Context, id int) ([]domain.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	page, err := r.ListProducts(ctx, relatedFetchLimit, 0, product.Category)
	if err != nil {
		return nil, err
	}

	related := make([]domain.Product, 0, relatedMax)
	for _, p := range page.Products {
		if p.ID == id {
			continue
		}
		related = append(related, p)
		if len(related) == relatedMax {
			break
		}
	}
	return related, nil
}

// Categories lista as categorias do catálogo (cache com TTL próprio, mais longo).
func (r *Repository) Categories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := r.cached(ctx, categoriesCacheKey, r.categoryTTL, "/products/categories", &categories); err != nil {
		if errors.Is(err, errUpstreamNotFound) {
			return []domain.Category{}, nil
		}
		return nil, err
	}
	return categories, nil
}

// cached aplica a estratégia Cache-Aside: tenta o Redis, senão busca no catálogo
// e popula o cache. Falhas de cache são registradas e nunca interrompem a leitura.
func (r *Repository) cached(ctx context.Context, key string, ttl time.Duration, path string, out interface{}) error {
	// 1. Cache-Aside (READ)
	if r.cache != nil {
		data, err := r.cache.Get(ctx, key)
		if err == nil {
			if json.Unmarshal([]byte(data), out) == nil {
				r.logger.Debug("Catálogo servido do cache", map[string]interface{}{"key": key})
				return nil
			}
			r.logger.Warn("Entrada de cache corrompida, buscando no catálogo", map[string]interface{}{"key": key})
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("Falha ao ler cache do catálogo", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	// 2. Busca no catálogo externo
	body, err := r.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperror.NewUpstreamError("resposta inválida do catálogo", err)
	}

	// 3. Cache-Aside (WRITE)
	if r.cache != nil {
		if err := r.cache.Set(ctx, key, body, ttl); err != nil {
			r.logger.Warn("Falha ao gravar cache do catálogo", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return nil
}

// fetch faz o GET com limite de taxa e re-tentativa exponencial em falhas de
// transporte, 429 e 5xx. 404 devolve errUpstreamNotFound sem re-tentar.
func (r *Repository) fetch(ctx context.Context, path string) ([]byte, error) {
	backoff := retry.WithMaxRetries(r.retries, retry.NewExponential(r.retryBase))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			r.logger.Warn("Falha de transporte ao consultar catálogo", map[string]interface{}{"path": path, "error": err.Error()})
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return errUpstreamNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			r.logger.Warn("Catálogo respondeu com erro temporário", map[string]interface{}{"path": path, "status": resp.StatusCode})
			return retry.RetryableError(fmt.Errorf("catálogo respondeu %d", resp.StatusCode))
		case resp.StatusCode >= http.StatusBadRequest:
			return fmt.Errorf("catálogo respondeu %d", resp.StatusCode)
		}

		var raw json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return retry.RetryableError(err)
		}
		body = raw
		return nil
	})

	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, errUpstreamNotFound):
		return nil, err
	default:
		r.logger.Error("Falha ao consultar catálogo externo", err)
		return nil, apperror.NewUpstreamError(fmt.Sprintf("GET %s", path), err)
	}
}
