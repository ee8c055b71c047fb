package state_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
	"gostore/internal/state"
)

// fakeClock é um relógio manual para os testes de ociosidade.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRegistry_AcquireSeedsOnce(t *testing.T) {
	store := newMemoryPersister()
	store.carts["s1"] = domain.CartState{
		Items: []domain.CartItem{{Product: product(1, 10), Quantity: 4}},
	}
	reg := state.NewRegistry(store)
	ctx := context.Background()

	c1, err := reg.Acquire(ctx, "s1")
	require.NoError(t, err)
	c2, err := reg.Acquire(ctx, "s1")
	require.NoError(t, err)

	assert.Same(t, c1, c2)
	assert.Equal(t, 1, store.loads)
	assert.Equal(t, 4, c1.Cart().Items[0].Quantity)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ShutdownFlushesEverySession(t *testing.T) {
	store := newMemoryPersister()
	reg := state.NewRegistry(store)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		c, err := reg.Acquire(ctx, id)
		require.NoError(t, err)
		c.AddToWishlist(product(5, 1))
	}

	require.NoError(t, reg.Shutdown(ctx))

	assert.Len(t, store.wishlists["a"].Items, 1)
	assert.Len(t, store.wishlists["b"].Items, 1)
	assert.NotNil(t, store.carts["a"].Items)
}

func TestRegistry_EvictIdleFlushesAndReloads(t *testing.T) {
	store := newMemoryPersister()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	reg := state.NewRegistry(store, state.WithClock(clock.Now))
	ctx := context.Background()

	old, err := reg.Acquire(ctx, "ociosa")
	require.NoError(t, err)
	old.AddToCart(product(1, 10), 3, domain.None(), domain.None())

	clock.Advance(20 * time.Minute)
	fresh, err := reg.Acquire(ctx, "ativa")
	require.NoError(t, err)
	fresh.AddToWishlist(product(2, 5))

	clock.Advance(15 * time.Minute)
	n, err := reg.EvictIdle(ctx, 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, reg.Len())
	// O estado da sessão removida foi gravado antes de sair da memória.
	require.Len(t, store.carts["ociosa"].Items, 1)
	assert.Equal(t, 3, store.carts["ociosa"].Items[0].Quantity)

	reloaded, err := reg.Acquire(ctx, "ociosa")
	require.NoError(t, err)
	assert.NotSame(t, old, reloaded)
	assert.Equal(t, old.Cart(), reloaded.Cart())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_FlushCountsAsActivity(t *testing.T) {
	store := newMemoryPersister()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	reg := state.NewRegistry(store, state.WithClock(clock.Now))
	ctx := context.Background()

	c, err := reg.Acquire(ctx, "s1")
	require.NoError(t, err)
	clock.Advance(25 * time.Minute)
	require.NoError(t, reg.Flush(ctx, c))
	clock.Advance(25 * time.Minute)

	n, err := reg.EvictIdle(ctx, 30*time.Minute)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_EvictIdleKeepsSessionWhenSaveFails(t *testing.T) {
	store := newMemoryPersister()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	reg := state.NewRegistry(store, state.WithClock(clock.Now))
	ctx := context.Background()

	c, err := reg.Acquire(ctx, "s1")
	require.NoError(t, err)
	c.AddToWishlist(product(9, 1))
	store.saveErr = errors.New("redis indisponível")
	clock.Advance(time.Hour)

	n, err := reg.EvictIdle(ctx, 30*time.Minute)

	assert.ErrorIs(t, err, store.saveErr)
	assert.Zero(t, n)
	assert.Equal(t, 1, reg.Len())

	same, err := reg.Acquire(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, c, same)
}

func TestRegistry_JanitorStopsWithContext(t *testing.T) {
	store := newMemoryPersister()
	reg := state.NewRegistry(store)
	_, err := reg.Acquire(context.Background(), "s1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Janitor(ctx, time.Nanosecond, time.Millisecond, logger.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Janitor não encerrou após o cancelamento")
	}
}
