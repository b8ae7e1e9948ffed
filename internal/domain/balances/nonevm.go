package balances

import (
	"github.com/shopspring/decimal"

	"asset_tracker/internal/domain/entity"
)

// multichainValuator values non-EVM accounts. Balances are keyed by account
// ID and CAIP-19 asset ID, amounts arrive as decimal strings, and rates are
// already expressed in the user's display currency, so there is no
// native-currency hop.
type multichainValuator struct {
	balances entity.MultichainBalancesState
	rates    entity.MultichainRatesState
	enabled  entity.EnabledNetworkMap
}

func (v multichainValuator) Value(account entity.InternalAccount) decimal.Decimal {
	total := decimal.Zero
	v.walk(account, func(value decimal.Decimal, _ entity.AssetRate) {
		total = total.Add(value)
	})
	return total
}

func (v multichainValuator) Change(account entity.InternalAccount, period entity.Period) (decimal.Decimal, decimal.Decimal) {
	current, previous := decimal.Zero, decimal.Zero
	v.walk(account, func(value decimal.Decimal, record entity.AssetRate) {
		if record.MarketData == nil {
			return
		}
		pct, ok := record.MarketData.PricePercentChange[period.PercentChangeKey()]
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

func (v multichainValuator) walk(account entity.InternalAccount, fn func(value decimal.Decimal, record entity.AssetRate)) {
	assetBalances, ok := lookupAssetBalances(v.balances, account.ID)
	if !ok {
		return
	}
	for _, assetID := range sortedKeys(assetBalances) {
		if !AssetChainEnabled(v.enabled, assetID) {
			continue
		}
		amount, err := decimal.NewFromString(assetBalances[assetID].Amount)
		if err != nil {
			continue
		}
		rate, record, ok := lookupAssetRate(v.rates, assetID)
		if !ok {
			continue
		}
		fn(amount.Mul(rate), record)
	}
}
