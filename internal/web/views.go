package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/roadmap"
)

// visit is one visitor's mounted roadmap and the page it is drawn on.
type visit struct {
	id       string
	view     *roadmap.View
	doc      *pageDocument
	lastSeen time.Time
}

// Registry keeps one roadmap view per visitor session and unmounts views
// that have been idle too long.
type Registry struct {
	mu      sync.Mutex
	store   *roadmap.Store
	opts    roadmap.Options
	idle    time.Duration
	visits  map[string]*visit
	now     func() time.Time
	log     *zap.Logger
	metrics *Metrics
}

// NewRegistry returns an empty registry. opts is the template for every
// view; its Document is replaced with the visitor's page.
func NewRegistry(store *roadmap.Store, opts roadmap.Options, idle time.Duration, logger *zap.Logger, metrics *Metrics) *Registry {
	return &Registry{
		store:   store,
		opts:    opts,
		idle:    idle,
		visits:  make(map[string]*visit),
		now:     time.Now,
		log:     logger,
		metrics: metrics,
	}
}

// Acquire returns the visit for id, mounting a fresh view under a new id
// when id is empty or unknown.
func (r *Registry) Acquire(id string) *visit {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.visits[id]; ok && id != "" {
		v.lastSeen = r.now()
		return v
	}

	doc := newPageDocument()
	opts := r.opts
	opts.Document = doc
	v := &visit{
		id:       uuid.NewString(),
		view:     roadmap.NewView(r.store, opts),
		doc:      doc,
		lastSeen: r.now(),
	}
	r.visits[v.id] = v
	r.metrics.Views.Set(float64(len(r.visits)))
	r.log.Debug("roadmap view mounted", zap.String("view_id", v.id))
	return v
}

// Sweep unmounts views idle for longer than the idle timeout and returns
// how many it removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	cutoff := r.now().Add(-r.idle)
	var stale []*visit
	for id, v := range r.visits {
		if v.lastSeen.Before(cutoff) {
			stale = append(stale, v)
			delete(r.visits, id)
		}
	}
	r.metrics.Views.Set(float64(len(r.visits)))
	r.mu.Unlock()

	for _, v := range stale {
		v.view.Unmount()
	}
	if len(stale) > 0 {
		r.log.Info("swept idle roadmap views", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close unmounts every view.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.visits
	r.visits = make(map[string]*visit)
	r.metrics.Views.Set(0)
	r.mu.Unlock()

	for _, v := range all {
		v.view.Unmount()
	}
}

// Len returns the number of mounted views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visits)
}
