package port

import (
	"context"

	"asset_tracker/internal/domain/entity"
)

// BalanceService exposes the aggregate balance queries over the current
// state snapshot.
type BalanceService interface {
	// AllWalletsBalance returns point-in-time totals for every wallet and
	// group in the account tree.
	AllWalletsBalance(ctx context.Context) (entity.AllWalletsBalance, error)

	// GroupBalance returns the point-in-time total for a single account group.
	GroupBalance(ctx context.Context, groupID string) (entity.AccountGroupBalance, error)

	// AllWalletsChange returns the period-over-period change across every
	// wallet and account.
	AllWalletsChange(ctx context.Context, period entity.Period) (entity.BalanceChangeResult, error)

	// GroupChange returns the period-over-period change for a single group.
	GroupChange(ctx context.Context, groupID string, period entity.Period) (entity.BalanceChangeResult, error)

	// AllWalletsChangeAllPeriods computes the 1d/7d/30d changes in one call.
	AllWalletsChangeAllPeriods(ctx context.Context) (map[entity.Period]entity.BalanceChangeResult, error)
}
