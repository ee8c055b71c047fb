package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"gostore/internal/pkg/logger"
)

// Registry mantém um Container por sessão. Na primeira vez que uma sessão é
// tocada, o container é semeado a partir do Persister; sessões ociosas são
// gravadas e removidas da memória por EvictIdle; Shutdown grava todas.
type Registry struct {
	persister Persister
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	c       *Container
	touched time.Time
}

// Option configura o Registry.
type Option func(*Registry)

// WithClock troca o relógio usado para medir a ociosidade das sessões.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry cria o registro de sessões sobre o armazenamento informado.
func NewRegistry(p Persister, opts ...Option) *Registry {
	r := &Registry{
		persister: p,
		now:       time.Now,
		entries:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire devolve o container da sessão, carregando-o do armazenamento se necessário.
func (r *Registry) Acquire(ctx context.Context, sessionID string) (*Container, error) {
	r.mu.Lock()
	if e, ok := r.entries[sessionID]; ok {
		e.touched = r.now()
		r.mu.Unlock()
		return e.c, nil
	}
	r.mu.Unlock()

	// O carregamento acontece fora do lock global; se duas requisições da mesma
	// sessão carregarem ao mesmo tempo, a primeira a registrar vence.
	loaded := NewContainer(sessionID)
	if err := loaded.Load(ctx, r.persister); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		e.touched = r.now()
		return e.c, nil
	}
	r.entries[sessionID] = &entry{c: loaded, touched: r.now()}
	return loaded, nil
}

// Flush grava os registros do container (write-through após cada mutação).
func (r *Registry) Flush(ctx context.Context, c *Container) error {
	r.touch(c)
	return c.Flush(ctx, r.persister)
}

// Len devolve a quantidade de sessões em memória.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// EvictIdle grava e remove da memória as sessões sem uso há pelo menos idle.
// Uma sessão cuja gravação falha continua em memória para a próxima varredura.
// Devolve quantas sessões foram removidas.
func (r *Registry) EvictIdle(ctx context.Context, idle time.Duration) (int, error) {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	stale := make([]*entry, 0)
	for _, e := range r.entries {
		if !e.touched.After(cutoff) {
			stale = append(stale, e)
		}
	}
	r.mu.Unlock()

	var errs []error
	evicted := 0
	for _, e := range stale {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := e.c.Flush(ctx, r.persister); err != nil {
			errs = append(errs, err)
			continue
		}

		r.mu.Lock()
		// Tocada durante a gravação: fica para a próxima varredura.
		if cur, ok := r.entries[e.c.session]; ok && cur == e && !e.touched.After(cutoff) {
			delete(r.entries, e.c.session)
			evicted++
		}
		r.mu.Unlock()
	}
	return evicted, errors.Join(errs...)
}

// Janitor roda EvictIdle a cada intervalo até o contexto ser cancelado.
func (r *Registry) Janitor(ctx context.Context, idle, every time.Duration, log logger.Logger) {
	if idle <= 0 || every <= 0 {
		log.Warn("Varredura de sessões ociosas desligada.", map[string]interface{}{"idle": idle.String(), "every": every.String()})
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.EvictIdle(ctx, idle)
			if err != nil && ctx.Err() == nil {
				log.Error("Falha ao gravar sessões ociosas.", err)
			}
			if n > 0 {
				log.Debug("Sessões ociosas removidas da memória.", map[string]interface{}{"evicted": n, "live": r.Len()})
			}
		}
	}
}

// Shutdown grava todas as sessões vivas e devolve os erros acumulados.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	live := make([]*Container, 0, len(r.entries))
	for _, e := range r.entries {
		live = append(live, e.c)
	}
	r.mu.Unlock()

	var errs []error
	for _, c := range live {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := c.Flush(ctx, r.persister); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) touch(c *Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[c.session]; ok && e.c == c {
		e.touched = r.now()
	}
}
