package balances

import (
	"github.com/shopspring/decimal"

	"asset_tracker/internal/domain/entity"
	"asset_tracker/internal/pkg/hexamount"
)

// evmValuator values EVM accounts: hex balances are joined against the token
// registry for decimals, against per-token market data for a native-currency
// price, and against the currency-rate table for the native -> user-currency
// hop. Any missing piece drops the token from the sum.
type evmValuator struct {
	balances   entity.TokenBalancesState
	tokens     entity.TokensState
	rates      entity.TokenRatesState
	currencies entity.CurrencyRatesState
	enabled    entity.EnabledNetworkMap
}

func (v evmValuator) Value(account entity.InternalAccount) decimal.Decimal {
	total := decimal.Zero
	v.walk(account, func(value decimal.Decimal, _ entity.MarketData) {
		total = total.Add(value)
	})
	return total
}

func (v evmValuator) Change(account entity.InternalAccount, period entity.Period) (decimal.Decimal, decimal.Decimal) {
	current, previous := decimal.Zero, decimal.Zero
	v.walk(account, func(value decimal.Decimal, md entity.MarketData) {
		pct, ok := md.PercentChange(period)
		if !ok {
			return
		}
		prev, ok := previousValue(value, pct)
		if !ok {
			return
		}
		current = current.Add(value)
		previous = previous.Add(prev)
	})
	return current, previous
}

// walk invokes fn with the user-currency value and market data of every
// balance entry of the account that survives chain filtering and the
// missing-data skips.
func (v evmValuator) walk(account entity.InternalAccount, fn func(value decimal.Decimal, md entity.MarketData)) {
	chainBalances, ok := lookupBalanceMap(v.balances, account.Address)
	if !ok {
		return
	}
	for _, chainID := range sortedKeys(chainBalances) {
		if !ChainEnabled(v.enabled, chainID) {
			continue
		}
		tokenBalances := chainBalances[chainID]
		for _, tokenAddress := range sortedKeys(tokenBalances) {
			value, md, ok := v.tokenValue(account.Address, chainID, tokenAddress, tokenBalances[tokenAddress])
			if !ok {
				continue
			}
			fn(value, md)
		}
	}
}

// tokenValue computes the user-currency value of one balance entry. Unknown
// tokens, malformed hex, missing prices and missing conversion rates all
// yield ok == false.
func (v evmValuator) tokenValue(accountAddress, chainID, tokenAddress, balanceHex string) (decimal.Decimal, entity.MarketData, bool) {
	token, ok := lookupKnownToken(v.tokens, chainID, accountAddress, tokenAddress)
	if !ok {
		return decimal.Zero, entity.MarketData{}, false
	}
	units, ok := hexamount.ParseUnits(balanceHex, token.DecimalsOrDefault())
	if !ok {
		return decimal.Zero, entity.MarketData{}, false
	}
	md, ok := lookupMarketData(v.rates, chainID, tokenAddress)
	if !ok || md.Price == nil {
		return decimal.Zero, entity.MarketData{}, false
	}
	price, ok := finiteDecimal(*md.Price)
	if !ok {
		return decimal.Zero, entity.MarketData{}, false
	}
	conversionRate, ok := lookupConversionRate(v.currencies, md.Currency)
	if !ok {
		return decimal.Zero, entity.MarketData{}, false
	}
	value := units.Mul(price).Mul(conversionRate)
	return value, md, true
}
