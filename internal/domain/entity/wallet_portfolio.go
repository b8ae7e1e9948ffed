package entity

// AccountGroupBalance is the aggregated value of one account group, expressed
// in the user's display currency. Recomputed on every query, never persisted.
type AccountGroupBalance struct {
	WalletID                   string  `json:"walletId" yaml:"walletId"`
	GroupID                    string  `json:"groupId" yaml:"groupId"`
	TotalBalanceInUserCurrency float64 `json:"totalBalanceInUserCurrency" yaml:"totalBalanceInUserCurrency"`
	UserCurrency               string  `json:"userCurrency" yaml:"userCurrency"`
}

// WalletBalance is the aggregated value of one wallet and all of its groups.
type WalletBalance struct {
	WalletID                   string                         `json:"walletId" yaml:"walletId"`
	Groups                     map[string]AccountGroupBalance `json:"groups" yaml:"groups"`
	TotalBalanceInUserCurrency float64                        `json:"totalBalanceInUserCurrency" yaml:"totalBalanceInUserCurrency"`
	UserCurrency               string                         `json:"userCurrency" yaml:"userCurrency"`
}

// AllWalletsBalance is the grand total across every wallet in the tree.
type AllWalletsBalance struct {
	Wallets                    map[string]WalletBalance `json:"wallets" yaml:"wallets"`
	TotalBalanceInUserCurrency float64                  `json:"totalBalanceInUserCurrency" yaml:"totalBalanceInUserCurrency"`
	UserCurrency               string                   `json:"userCurrency" yaml:"userCurrency"`
}

// BalanceChangeResult is a period-over-period change for a scope (one group or
// all wallets).
type BalanceChangeResult struct {
	Period                      Period  `json:"period" yaml:"period"`
	CurrentTotalInUserCurrency  float64 `json:"currentTotalInUserCurrency" yaml:"currentTotalInUserCurrency"`
	PreviousTotalInUserCurrency float64 `json:"previousTotalInUserCurrency" yaml:"previousTotalInUserCurrency"`
	AmountChangeInUserCurrency  float64 `json:"amountChangeInUserCurrency" yaml:"amountChangeInUserCurrency"`
	PercentChange               float64 `json:"percentChange" yaml:"percentChange"`
	UserCurrency                string  `json:"userCurrency" yaml:"userCurrency"`
}
