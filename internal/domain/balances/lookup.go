package balances

import (
	"strings"

	"github.com/shopspring/decimal"

	"asset_tracker/internal/domain/entity"
)

// Snapshot lookups are collected here so the skip-on-missing-data contract
// lives in one place: every accessor returns (value, false) instead of
// raising, and callers drop the entry.

// lookupBalanceMap returns the per-chain balance map recorded for an EVM
// account address.
func lookupBalanceMap(state entity.TokenBalancesState, address string) (entity.HexBalanceMap, bool) {
	if balances, ok := state.TokenBalances[address]; ok {
		return balances, true
	}
	for addr, balances := range state.TokenBalances {
		if strings.EqualFold(addr, address) {
			return balances, true
		}
	}
	return nil, false
}

// lookupKnownToken resolves a token through the registry for a chain/account
// pair, checking imported tokens first and detected tokens second. Balances
// for tokens absent from both lists are not valued at all.
func lookupKnownToken(state entity.TokensState, chainID, accountAddress, tokenAddress string) (entity.TokenMetadata, bool) {
	if token, ok := findRegistryToken(state.AllTokens, chainID, accountAddress, tokenAddress); ok {
		return token, true
	}
	return findRegistryToken(state.AllDetectedTokens, chainID, accountAddress, tokenAddress)
}

func findRegistryToken(registry entity.TokenRegistry, chainID, accountAddress, tokenAddress string) (entity.TokenMetadata, bool) {
	byAccount, ok := registry[chainID]
	if !ok {
		return entity.TokenMetadata{}, false
	}
	tokens, ok := byAccount[accountAddress]
	if !ok {
		for addr, list := range byAccount {
			if strings.EqualFold(addr, accountAddress) {
				tokens = list
				ok = true
				break
			}
		}
	}
	if !ok {
		return entity.TokenMetadata{}, false
	}
	for _, token := range tokens {
		if strings.EqualFold(token.Address, tokenAddress) {
			return token, true
		}
	}
	return entity.TokenMetadata{}, false
}

// lookupMarketData returns the market-data record for a chain/token pair.
// Addresses are compared case-insensitively since rate sources may key by
// checksummed addresses while balance maps use lowercase.
func lookupMarketData(state entity.TokenRatesState, chainID, tokenAddress string) (entity.MarketData, bool) {
	byToken, ok := state.MarketData[chainID]
	if !ok {
		return entity.MarketData{}, false
	}
	if md, ok := byToken[tokenAddress]; ok {
		return md, true
	}
	for addr, md := range byToken {
		if strings.EqualFold(addr, tokenAddress) {
			return md, true
		}
	}
	return entity.MarketData{}, false
}

// lookupConversionRate returns the native-currency -> user-currency
// multiplier as a decimal, if one is known.
func lookupConversionRate(state entity.CurrencyRatesState, currency string) (decimal.Decimal, bool) {
	rate, ok := state.CurrencyRates[currency]
	if !ok {
		for code, r := range state.CurrencyRates {
			if strings.EqualFold(code, currency) {
				rate = r
				ok = true
				break
			}
		}
	}
	if !ok || rate.ConversionRate == nil {
		return decimal.Zero, false
	}
	return finiteDecimal(*rate.ConversionRate)
}

// lookupAssetBalances returns the per-asset balance map recorded for a
// non-EVM account ID.
func lookupAssetBalances(state entity.MultichainBalancesState, accountID string) (map[string]entity.AssetBalance, bool) {
	balances, ok := state.Balances[accountID]
	return balances, ok
}

// lookupAssetRate returns the pre-converted user-currency rate for a CAIP-19
// asset, parsed as a decimal.
func lookupAssetRate(state entity.MultichainRatesState, assetID string) (decimal.Decimal, entity.AssetRate, bool) {
	record, ok := state.ConversionRates[assetID]
	if !ok {
		return decimal.Zero, entity.AssetRate{}, false
	}
	rate, err := decimal.NewFromString(record.Rate)
	if err != nil {
		return decimal.Zero, entity.AssetRate{}, false
	}
	return rate, record, true
}
