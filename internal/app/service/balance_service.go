package service

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"asset_tracker/internal/app/port"
	"asset_tracker/internal/domain/balances"
	"asset_tracker/internal/domain/entity"
	"asset_tracker/internal/pkg/metrics"
)

const (
	queryAllBalances = "all_balances"
	queryGroupBal    = "group_balance"
	queryAllChange   = "all_change"
	queryGroupChange = "group_change"
)

// balanceServiceImpl implements port.BalanceService. The calculations
// themselves are pure; this layer adds snapshot acquisition, result caching
// and metrics.
type balanceServiceImpl struct {
	snapshots port.SnapshotProvider
	cache     *gocache.Cache
	logger    port.Logger
}

// NewBalanceService creates a new BalanceService. cacheTTL bounds how stale a
// served aggregate may be; results are recomputed once it elapses.
func NewBalanceService(snapshots port.SnapshotProvider, cacheTTL time.Duration, logger port.Logger) port.BalanceService {
	return &balanceServiceImpl{
		snapshots: snapshots,
		cache:     gocache.New(cacheTTL, 2*cacheTTL),
		logger:    logger,
	}
}

// AllWalletsBalance returns point-in-time totals for every wallet and group.
func (s *balanceServiceImpl) AllWalletsBalance(ctx context.Context) (entity.AllWalletsBalance, error) {
	const key = queryAllBalances
	if cached, ok := s.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues(queryAllBalances).Inc()
		return cached.(entity.AllWalletsBalance), nil
	}
	metrics.CacheMisses.WithLabelValues(queryAllBalances).Inc()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return entity.AllWalletsBalance{}, fmt.Errorf("failed to acquire snapshot: %w", err)
	}

	start := time.Now()
	result := balances.CalculateBalanceForAllWallets(snap)
	metrics.CalculationDuration.WithLabelValues(queryAllBalances).Observe(time.Since(start).Seconds())
	metrics.LastTotalBalance.WithLabelValues(result.UserCurrency).Set(result.TotalBalanceInUserCurrency)

	s.logger.Debug("Computed all-wallets balance",
		"wallets", len(result.Wallets),
		"total", result.TotalBalanceInUserCurrency,
		"currency", result.UserCurrency)
	s.cache.SetDefault(key, result)
	return result, nil
}

// GroupBalance returns the point-in-time total for one account group.
func (s *balanceServiceImpl) GroupBalance(ctx context.Context, groupID string) (entity.AccountGroupBalance, error) {
	key := queryGroupBal + ":" + groupID
	if cached, ok := s.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues(queryGroupBal).Inc()
		return cached.(entity.AccountGroupBalance), nil
	}
	metrics.CacheMisses.WithLabelValues(queryGroupBal).Inc()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return entity.AccountGroupBalance{}, fmt.Errorf("failed to acquire snapshot: %w", err)
	}

	start := time.Now()
	result := balances.CalculateBalanceForAccountGroup(snap, groupID)
	metrics.CalculationDuration.WithLabelValues(queryGroupBal).Observe(time.Since(start).Seconds())

	s.cache.SetDefault(key, result)
	return result, nil
}

// AllWalletsChange returns the period-over-period change across all wallets.
func (s *balanceServiceImpl) AllWalletsChange(ctx context.Context, period entity.Period) (entity.BalanceChangeResult, error) {
	if !period.Valid() {
		return entity.BalanceChangeResult{}, fmt.Errorf("unsupported period %q", period)
	}
	key := queryAllChange + ":" + string(period)
	if cached, ok := s.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues(queryAllChange).Inc()
		return cached.(entity.BalanceChangeResult), nil
	}
	metrics.CacheMisses.WithLabelValues(queryAllChange).Inc()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return entity.BalanceChangeResult{}, fmt.Errorf("failed to acquire snapshot: %w", err)
	}

	start := time.Now()
	result := balances.CalculateBalanceChangeForAllWallets(snap, period)
	metrics.CalculationDuration.WithLabelValues(queryAllChange).Observe(time.Since(start).Seconds())

	s.cache.SetDefault(key, result)
	return result, nil
}

// GroupChange returns the period-over-period change for one group.
func (s *balanceServiceImpl) GroupChange(ctx context.Context, groupID string, period entity.Period) (entity.BalanceChangeResult, error) {
	if !period.Valid() {
		return entity.BalanceChangeResult{}, fmt.Errorf("unsupported period %q", period)
	}
	key := queryGroupChange + ":" + groupID + ":" + string(period)
	if cached, ok := s.cache.Get(key); ok {
		metrics.CacheHits.WithLabelValues(queryGroupChange).Inc()
		return cached.(entity.BalanceChangeResult), nil
	}
	metrics.CacheMisses.WithLabelValues(queryGroupChange).Inc()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return entity.BalanceChangeResult{}, fmt.Errorf("failed to acquire snapshot: %w", err)
	}

	start := time.Now()
	result := balances.CalculateBalanceChangeForAccountGroup(snap, groupID, period)
	metrics.CalculationDuration.WithLabelValues(queryGroupChange).Observe(time.Since(start).Seconds())

	s.cache.SetDefault(key, result)
	return result, nil
}

// AllWalletsChangeAllPeriods computes the 1d/7d/30d changes concurrently.
// The calculation is pure, so the three computations share one snapshot
// without coordination.
func (s *balanceServiceImpl) AllWalletsChangeAllPeriods(ctx context.Context) (map[entity.Period]entity.BalanceChangeResult, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire snapshot: %w", err)
	}

	periods := []entity.Period{entity.Period1d, entity.Period7d, entity.Period30d}
	results := make([]entity.BalanceChangeResult, len(periods))

	g, _ := errgroup.WithContext(ctx)
	for i, period := range periods {
		g.Go(func() error {
			results[i] = balances.CalculateBalanceChangeForAllWallets(snap, period)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[entity.Period]entity.BalanceChangeResult, len(periods))
	for i, period := range periods {
		out[period] = results[i]
	}
	return out, nil
}
