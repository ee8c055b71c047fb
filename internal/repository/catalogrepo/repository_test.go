package catalogrepo_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/repository/catalogrepo"
)

// fakeCatalog simula a API de produtos.
type fakeCatalog struct {
	hits        atomic.Int32
	failuresFor atomic.Int32 // quantas respostas 503 antes de responder normalmente
}

func (f *fakeCatalog) handler() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		if f.failuresFor.Load() > 0 {
			f.failuresFor.Add(-1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		write(w, domain.ProductPage{Products: []domain.Product{{ID: 1, Title: "iPhone 9", Category: "smartphones"}}, Total: 1, Limit: 200})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			write(w, map[string]string{"message": "not found"})
			return
		}
		write(w, domain.Product{ID: 1, Title: "iPhone 9", Category: "smartphones", Price: 549})
	})
	mux.HandleFunc("GET /products/category/{slug}", func(w http.ResponseWriter, r *http.Request) {
		products := make([]domain.Product, 0, 8)
		for i := 1; i <= 8; i++ {
			products = append(products, domain.Product{ID: i, Title: fmt.Sprintf("Phone %d", i), Category: r.PathValue("slug")})
		}
		write(w, domain.ProductPage{Products: products, Total: 8, Limit: 8})
	})
	mux.HandleFunc("GET /products/categories", func(w http.ResponseWriter, r *http.Request) {
		write(w, []domain.Category{{Slug: "beauty", Name: "Beauty", URL: "https://dummyjson.com/products/category/beauty"}})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		mux.ServeHTTP(w, r)
	})
}

func setup(t *testing.T) (*catalogrepo.Repository, *fakeCatalog, *miniredis.Miniredis) {
	t.Helper()
	fake := &fakeCatalog{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)

	repo := catalogrepo.NewRepository(catalogrepo.Options{
		BaseURL:     srv.URL,
		Timeout:     2 * time.Second,
		Retries:     2,
		RetryBase:   time.Millisecond,
		ProductTTL:  time.Hour,
		CategoryTTL: 24 * time.Hour,
	}, client, logger.NewNop())
	return repo, fake, mr
}

func TestListProducts_CacheAside(t *testing.T) {
	repo, fake, mr := setup(t)
	ctx := context.Background()

	page, err := repo.ListProducts(ctx, 200, 0, "")
	require.NoError(t, err)
	require.Len(t, page.Products, 1)

	_, err = repo.ListProducts(ctx, 200, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.hits.Load(), "a segunda leitura deve vir do cache")

	mr.FastForward(time.Hour + time.Second)
	_, err = repo.ListProducts(ctx, 200, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.hits.Load())
}

func TestListProducts_RetriesTransientFailures(t *testing.T) {
	repo, fake, _ := setup(t)
	fake.failuresFor.Store(2)

	page, err := repo.ListProducts(context.Background(), 200, 0, "")

	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, int32(3), fake.hits.Load())
}

func TestListProducts_ExhaustedRetriesIsUpstreamError(t *testing.T) {
	repo, fake, _ := setup(t)
	fake.failuresFor.Store(10)

	_, err := repo.ListProducts(context.Background(), 200, 0, "")

	var upstream *apperror.UpstreamError
	assert.ErrorAs(t, err, &upstream)
	assert.Equal(t, int32(3), fake.hits.Load())
}

func TestFindByID(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()

	p, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 549.0, p.Price)

	_, err = repo.FindByID(ctx, 999)
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRelated_ExcludesProductAndCapsAtSix(t *testing.T) {
	repo, _, _ := setup(t)

	related, err := repo.Related(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, related, 6)
	for _, p := range related {
		assert.NotEqual(t, 1, p.ID)
		assert.Equal(t, "smartphones", p.Category)
	}
}

func TestCategories(t *testing.T) {
	repo, _, mr := setup(t)

	categories, err := repo.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "beauty", categories[0].Slug)
	assert.True(t, mr.Exists("catalog:categories"))
	assert.Greater(t, mr.TTL("catalog:categories"), time.Hour)
}

func TestUnreachableCatalogWithoutCache(t *testing.T) {
	repo := catalogrepo.NewRepository(catalogrepo.Options{
		BaseURL:   "http://127.0.0.1:1",
		Timeout:   200 * time.Millisecond,
		RetryBase: time.Millisecond,
	}, nil, logger.NewNop())

	_, err := repo.Categories(context.Background())

	var upstream *apperror.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}
