package entity

import "github.com/spf13/cast"

// DefaultTokenDecimals is assumed when a registry entry carries no usable
// decimals value.
const DefaultTokenDecimals = 18

// TokenMetadata describes one token known to the registry for a chain/account
// pair. Decimals is kept loosely typed because upstream token lists deliver it
// as a number, a numeric string, or not at all.
type TokenMetadata struct {
	Address  string `json:"address" yaml:"address"`
	Decimals any    `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// DecimalsOrDefault coerces the registry decimals value, falling back to
// DefaultTokenDecimals for missing or non-numeric input.
func (t TokenMetadata) DecimalsOrDefault() int32 {
	if t.Decimals == nil {
		return DefaultTokenDecimals
	}
	d, err := cast.ToInt32E(t.Decimals)
	if err != nil || d < 0 {
		return DefaultTokenDecimals
	}
	return d
}

// TokenRegistry maps hex chain ID -> account address -> known tokens.
type TokenRegistry map[string]map[string][]TokenMetadata

// TokensState is the token-registry snapshot: tokens imported by the user,
// tokens auto-detected for them, and tokens they have explicitly ignored.
type TokensState struct {
	AllTokens         TokenRegistry                  `json:"allTokens" yaml:"allTokens"`
	AllDetectedTokens TokenRegistry                  `json:"allDetectedTokens" yaml:"allDetectedTokens"`
	AllIgnoredTokens  map[string]map[string][]string `json:"allIgnoredTokens,omitempty" yaml:"allIgnoredTokens,omitempty"`
}
