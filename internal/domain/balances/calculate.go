// Package balances computes point-in-time valuations and period-over-period
// change metrics for a wallet/group/account tree, in the user's display
// currency. Every function here is a pure, synchronous computation over the
// supplied state snapshot: no I/O, no retained state, and identical inputs
// produce identical output, so callers may recompute on every state change
// and diff the results.
package balances

import (
	"github.com/shopspring/decimal"

	"asset_tracker/internal/domain/entity"
)

// CalculateBalanceForAllWallets values every account in the tree and returns
// nested wallet and group totals. Wallets and groups without any valued
// accounts still appear, with a zero total.
func CalculateBalanceForAllWallets(snap entity.Snapshot) entity.AllWalletsBalance {
	rows := flattenTree(snap.AccountTree, snap.Accounts)
	return aggregateAllWallets(snap.AccountTree, rows, newEngines(snap), snap.CurrencyRates.CurrentCurrency)
}

// CalculateBalanceForAccountGroup values the accounts of a single group. A
// group ID whose wallet or group is absent from the tree yields a zero-valued
// result.
func CalculateBalanceForAccountGroup(snap entity.Snapshot, groupID string) entity.AccountGroupBalance {
	engines := newEngines(snap)
	total := decimal.Zero
	for _, row := range flattenScopedGroup(snap.AccountTree, snap.Accounts, groupID) {
		total = total.Add(engines.forKind(row.kind).Value(row.account))
	}
	walletID, _ := entity.WalletIDFromGroupID(groupID)
	return entity.AccountGroupBalance{
		WalletID:                   walletID,
		GroupID:                    groupID,
		TotalBalanceInUserCurrency: roundOut(total),
		UserCurrency:               snap.CurrencyRates.CurrentCurrency,
	}
}

// CalculateBalanceChangeForAllWallets computes the change over the given
// period across every account in the tree.
func CalculateBalanceChangeForAllWallets(snap entity.Snapshot, period entity.Period) entity.BalanceChangeResult {
	rows := flattenTree(snap.AccountTree, snap.Accounts)
	return aggregateChange(rows, newEngines(snap), period, snap.CurrencyRates.CurrentCurrency)
}

// CalculateBalanceChangeForAccountGroup computes the change over the given
// period for a single group.
func CalculateBalanceChangeForAccountGroup(snap entity.Snapshot, groupID string, period entity.Period) entity.BalanceChangeResult {
	rows := flattenScopedGroup(snap.AccountTree, snap.Accounts, groupID)
	return aggregateChange(rows, newEngines(snap), period, snap.CurrencyRates.CurrentCurrency)
}
