package entity

import "strings"

// AccountKind classifies an account by the family of chains it lives on.
type AccountKind int

const (
	// AccountKindEVM covers eip155-typed accounts with hex addresses.
	AccountKindEVM AccountKind = iota
	// AccountKindNonEVM covers CAIP-typed accounts (Solana, Bitcoin, ...).
	AccountKindNonEVM
)

// evmAccountTypePrefix is the type-tag prefix shared by all EVM account types
// (e.g. "eip155:eoa", "eip155:erc4337").
const evmAccountTypePrefix = "eip155:"

// InternalAccount is the authoritative record for a single account,
// owned by the accounts collaborator and only read here.
type InternalAccount struct {
	ID      string `json:"id" yaml:"id"`
	Address string `json:"address" yaml:"address"`
	Type    string `json:"type" yaml:"type"`
}

// Kind derives the account classification from its type tag.
func (a InternalAccount) Kind() AccountKind {
	if strings.HasPrefix(a.Type, evmAccountTypePrefix) {
		return AccountKindEVM
	}
	return AccountKindNonEVM
}

// AccountGroup references the accounts it contains by ID; the records
// themselves live in AccountsState.
type AccountGroup struct {
	ID       string   `json:"id" yaml:"id"`
	Accounts []string `json:"accounts" yaml:"accounts"`
}

// WalletID recovers the owning wallet ID from a group ID of the form
// "<walletId>/<suffix>". The second result is false when the ID has no slash.
func (g AccountGroup) WalletID() (string, bool) {
	return WalletIDFromGroupID(g.ID)
}

// WalletIDFromGroupID splits a group ID on the first "/".
func WalletIDFromGroupID(groupID string) (string, bool) {
	walletID, _, ok := strings.Cut(groupID, "/")
	if !ok || walletID == "" {
		return "", false
	}
	return walletID, true
}

// AccountWallet owns its groups by ID.
type AccountWallet struct {
	ID     string                  `json:"id" yaml:"id"`
	Groups map[string]AccountGroup `json:"groups" yaml:"groups"`
}

// AccountTreeState is the wallet/group/account hierarchy snapshot.
type AccountTreeState struct {
	Wallets map[string]AccountWallet `json:"wallets" yaml:"wallets"`
}

// AccountsState indexes account records by account ID.
type AccountsState struct {
	Accounts map[string]InternalAccount `json:"accounts" yaml:"accounts"`
}

// Lookup resolves an account ID to its record.
func (s AccountsState) Lookup(accountID string) (InternalAccount, bool) {
	account, ok := s.Accounts[accountID]
	return account, ok
}
