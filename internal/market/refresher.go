// internal/market/refresher.go
package market

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"echo3/internal/common/config"
	"echo3/internal/common/logger"
	"echo3/internal/common/metrics"
)

// Refresher keeps the current price snapshot fresh on a fixed interval,
// independent of query flow. Each refresh replaces the previous snapshot
// atomically; readers never observe a half-updated value, and after Start
// they never observe nil.
type Refresher struct {
	provider Provider
	interval time.Duration

	// rand feeds the simulated fallback from both the ticker goroutine
	// and FetchNow callers; randMu serializes it.
	randMu sync.Mutex
	rand   *rand.Rand

	logger logger.Logger
	current  atomic.Pointer[Snapshot]
	tvl      atomic.Pointer[TVLReport]
	done     chan struct{}
}

func NewRefresher(provider Provider, cfg config.MarketConfig, log logger.Logger) *Refresher {
	return &Refresher{
		provider: provider,
		interval: config.GetDuration(cfg.RefreshInterval),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   log.With(map[string]interface{}{"component": "market-refresher"}),
		done:     make(chan struct{}),
	}
}

// Start primes the snapshot synchronously, then refreshes on the interval
// until the context is canceled.
func (r *Refresher) Start(ctx context.Context) {
	r.refresh(ctx)
	r.refreshTVL(ctx)

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.refresh(ctx)
				r.refreshTVL(ctx)
			}
		}
	}()
}

// Wait blocks until the refresh loop has exited.
func (r *Refresher) Wait() {
	<-r.done
}

// Current returns the latest snapshot. Never nil after Start.
func (r *Refresher) Current() *Snapshot {
	return r.current.Load()
}

// CurrentTVL returns the latest ecosystem TVL report. Never nil after Start.
// TVL is refreshed on the interval only; it is too heavy to fetch per query.
func (r *Refresher) CurrentTVL() *TVLReport {
	return r.tvl.Load()
}

// FetchNow performs an immediate provider fetch, substituting the simulated
// fallback on failure, and installs the result as current. The returned
// snapshot is never nil.
func (r *Refresher) FetchNow(ctx context.Context) *Snapshot {
	return r.refresh(ctx)
}

func (r *Refresher) refresh(ctx context.Context) *Snapshot {
	snap, err := r.provider.FetchPrices(ctx)
	if err != nil {
		r.randMu.Lock()
		snap = SimulatedSnapshot(r.rand)
		r.randMu.Unlock()
		r.logger.Warn("price refresh degraded to simulated snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}
	metrics.PriceRefreshes.WithLabelValues(snap.Source).Inc()
	r.current.Store(snap)
	return snap
}

func (r *Refresher) refreshTVL(ctx context.Context) {
	report, err := r.provider.FetchProtocolTVL(ctx)
	if err != nil {
		report = DemoTVLReport()
		r.logger.Warn("tvl refresh degraded to demo report", map[string]interface{}{
			"error": err.Error(),
		})
	}
	r.tvl.Store(report)
}
