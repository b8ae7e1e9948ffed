package entity

// Snapshot bundles the controller-state views consumed by the balance
// calculations. Every field is a read-only snapshot; the computation never
// mutates any of them.
type Snapshot struct {
	AccountTree        AccountTreeState        `json:"accountTree" yaml:"accountTree"`
	Accounts           AccountsState           `json:"accounts" yaml:"accounts"`
	TokenBalances      TokenBalancesState      `json:"tokenBalances" yaml:"tokenBalances"`
	TokenRates         TokenRatesState         `json:"tokenRates" yaml:"tokenRates"`
	MultichainRates    MultichainRatesState    `json:"multichainRates" yaml:"multichainRates"`
	MultichainBalances MultichainBalancesState `json:"multichainBalances" yaml:"multichainBalances"`
	Tokens             TokensState             `json:"tokens" yaml:"tokens"`
	CurrencyRates      CurrencyRatesState      `json:"currencyRates" yaml:"currencyRates"`
	EnabledNetworks    EnabledNetworkMap       `json:"enabledNetworks,omitempty" yaml:"enabledNetworks,omitempty"`
}
