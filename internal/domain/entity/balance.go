package entity

// HexBalanceMap maps hex chain ID -> token contract address -> balance as a
// hex-encoded integer in the token's smallest unit. A missing entry means
// "unknown", not zero.
type HexBalanceMap map[string]map[string]string

// TokenBalancesState is the EVM balance snapshot, keyed by account address.
type TokenBalancesState struct {
	TokenBalances map[string]HexBalanceMap `json:"tokenBalances" yaml:"tokenBalances"`
}

// AssetBalance is a non-EVM holding, pre-formatted as a decimal string in
// asset units.
type AssetBalance struct {
	Amount string `json:"amount" yaml:"amount"`
	Unit   string `json:"unit" yaml:"unit"`
}

// MultichainBalancesState is the non-EVM balance snapshot, keyed by account ID
// and CAIP-19 asset ID.
type MultichainBalancesState struct {
	Balances map[string]map[string]AssetBalance `json:"balances" yaml:"balances"`
}
