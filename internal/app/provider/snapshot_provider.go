package provider

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"asset_tracker/internal/app/port"
	"asset_tracker/internal/domain/entity"
	"asset_tracker/internal/infrastructure/ratesclient"
	"asset_tracker/internal/infrastructure/snapshotloader"
)

// snapshotProviderImpl implements port.SnapshotProvider over the on-disk
// state directory. Reloads are gated by a rate limiter so a burst of queries
// (every UI selector recomputing in the same tick) reads the directory once.
type snapshotProviderImpl struct {
	loader      *snapshotloader.Loader
	ratesClient ratesclient.Client
	limiter     *rate.Limiter
	logger      port.Logger

	mu     sync.RWMutex
	cached entity.Snapshot
	loaded bool
}

// NewSnapshotProvider creates a snapshot provider. ratesClient may be nil, in
// which case the currency rates from the state directory are used unchanged.
func NewSnapshotProvider(loader *snapshotloader.Loader, ratesClient ratesclient.Client, maxRefreshPerSecond float64, logger port.Logger) port.SnapshotProvider {
	return &snapshotProviderImpl{
		loader:      loader,
		ratesClient: ratesClient,
		limiter:     rate.NewLimiter(rate.Limit(maxRefreshPerSecond), 1),
		logger:      logger,
	}
}

// Snapshot returns the current state snapshot, reloading from disk at most as
// often as the limiter allows. A failed reload falls back to the last good
// snapshot when one exists.
func (p *snapshotProviderImpl) Snapshot(ctx context.Context) (entity.Snapshot, error) {
	p.mu.RLock()
	cached, loaded := p.cached, p.loaded
	p.mu.RUnlock()

	if loaded && !p.limiter.Allow() {
		return cached, nil
	}

	snap, err := p.loader.Load()
	if err != nil {
		if loaded {
			p.logger.Warn("Snapshot reload failed, serving last good snapshot", "error", err)
			return cached, nil
		}
		return entity.Snapshot{}, err
	}

	if p.ratesClient != nil {
		p.refreshCurrencyRates(ctx, &snap)
	}

	p.mu.Lock()
	p.cached = snap
	p.loaded = true
	p.mu.Unlock()

	p.logger.Debug("Snapshot refreshed",
		"wallets", len(snap.AccountTree.Wallets),
		"accounts", len(snap.Accounts.Accounts))
	return snap, nil
}

// refreshCurrencyRates overlays live conversion rates on top of the on-disk
// snapshot. A feed failure keeps the on-disk rates rather than failing the
// whole query.
func (p *snapshotProviderImpl) refreshCurrencyRates(ctx context.Context, snap *entity.Snapshot) {
	currency := snap.CurrencyRates.CurrentCurrency
	if currency == "" {
		currency = "usd"
	}
	live, err := p.ratesClient.GetCurrencyRates(ctx, currency)
	if err != nil {
		p.logger.Warn("Live currency-rate refresh failed, keeping on-disk rates", "error", err)
		return
	}
	snap.CurrencyRates = live
}
