package balances

import (
	"sort"

	"github.com/samber/lo"

	"asset_tracker/internal/domain/entity"
)

// accountRow is one flattened (wallet, group, account) entry of the tree walk.
// Kind is resolved once here so the valuation dispatch never re-inspects the
// account's type tag.
type accountRow struct {
	walletID string
	groupID  string
	account  entity.InternalAccount
	kind     entity.AccountKind
}

// flattenTree walks every wallet, group and account reference of the tree and
// resolves each reference through the accounts index. Unresolvable account
// IDs are dropped. Wallet and group iteration is sorted by ID so the result
// is deterministic for a fixed input.
func flattenTree(tree entity.AccountTreeState, accounts entity.AccountsState) []accountRow {
	var rows []accountRow
	for _, walletID := range sortedKeys(tree.Wallets) {
		wallet := tree.Wallets[walletID]
		for _, groupID := range sortedKeys(wallet.Groups) {
			rows = append(rows, flattenGroup(walletID, wallet.Groups[groupID], accounts)...)
		}
	}
	return rows
}

// flattenScopedGroup flattens a single group identified by its group ID. The
// owning wallet is derived from the ID prefix; a missing wallet or group
// yields an empty result, not an error.
func flattenScopedGroup(tree entity.AccountTreeState, accounts entity.AccountsState, groupID string) []accountRow {
	walletID, ok := entity.WalletIDFromGroupID(groupID)
	if !ok {
		return nil
	}
	wallet, ok := tree.Wallets[walletID]
	if !ok {
		return nil
	}
	group, ok := wallet.Groups[groupID]
	if !ok {
		return nil
	}
	return flattenGroup(walletID, group, accounts)
}

func flattenGroup(walletID string, group entity.AccountGroup, accounts entity.AccountsState) []accountRow {
	rows := make([]accountRow, 0, len(group.Accounts))
	for _, accountID := range group.Accounts {
		account, ok := accounts.Lookup(accountID)
		if !ok {
			continue
		}
		rows = append(rows, accountRow{
			walletID: walletID,
			groupID:  group.ID,
			account:  account,
			kind:     account.Kind(),
		})
	}
	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
