package balances

import (
	"math"

	"github.com/shopspring/decimal"

	"asset_tracker/internal/domain/entity"
)

// ValuationPrecision is the number of fractional digits every fiat figure is
// rounded to when it leaves a public function. Intermediate per-token sums
// are never rounded so rounding error cannot compound.
const ValuationPrecision = 8

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// valuator is the per-account-kind valuation engine. Both implementations are
// pure views over snapshot state.
type valuator interface {
	Value(account entity.InternalAccount) decimal.Decimal
	Change(account entity.InternalAccount, period entity.Period) (current, previous decimal.Decimal)
}

// engineSet holds one engine per account kind, built once per calculation.
type engineSet struct {
	evm    valuator
	nonEVM valuator
}

func newEngines(snap entity.Snapshot) engineSet {
	return engineSet{
		evm: evmValuator{
			balances:   snap.TokenBalances,
			tokens:     snap.Tokens,
			rates:      snap.TokenRates,
			currencies: snap.CurrencyRates,
			enabled:    snap.EnabledNetworks,
		},
		nonEVM: multichainValuator{
			balances: snap.MultichainBalances,
			rates:    snap.MultichainRates,
			enabled:  snap.EnabledNetworks,
		},
	}
}

func (e engineSet) forKind(kind entity.AccountKind) valuator {
	if kind == entity.AccountKindEVM {
		return e.evm
	}
	return e.nonEVM
}

// finiteDecimal converts an externally supplied float to a decimal. NaN and
// infinities are rejected here because decimal.NewFromFloat panics on them,
// and state files can carry YAML .nan/.inf values.
func finiteDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// previousValue reconstructs the value implied by a percent-change figure.
// The denominator is rounded at ValuationPrecision before the zero check so a
// change of exactly -100% is rejected rather than divided by.
func previousValue(current decimal.Decimal, percentChange float64) (decimal.Decimal, bool) {
	pct, ok := finiteDecimal(percentChange)
	if !ok {
		return decimal.Zero, false
	}
	denom := decimalOne.Add(pct.Div(decimalHundred)).Round(ValuationPrecision)
	if denom.IsZero() {
		return decimal.Zero, false
	}
	return current.Div(denom), true
}

// roundOut applies the boundary rounding of public results.
func roundOut(d decimal.Decimal) float64 {
	return d.Round(ValuationPrecision).InexactFloat64()
}

// aggregateAllWallets folds per-account valuations into group and wallet
// totals, then walks the full tree once more so every wallet and group
// appears in the output even when it holds no valued accounts.
func aggregateAllWallets(tree entity.AccountTreeState, rows []accountRow, engines engineSet, userCurrency string) entity.AllWalletsBalance {
	groupTotals := make(map[string]decimal.Decimal)
	walletTotals := make(map[string]decimal.Decimal)
	grandTotal := decimal.Zero

	for _, row := range rows {
		value := engines.forKind(row.kind).Value(row.account)
		groupTotals[row.groupID] = groupTotals[row.groupID].Add(value)
		walletTotals[row.walletID] = walletTotals[row.walletID].Add(value)
		grandTotal = grandTotal.Add(value)
	}

	result := entity.AllWalletsBalance{
		Wallets:                    make(map[string]entity.WalletBalance, len(tree.Wallets)),
		TotalBalanceInUserCurrency: roundOut(grandTotal),
		UserCurrency:               userCurrency,
	}
	for walletID, wallet := range tree.Wallets {
		walletBalance := entity.WalletBalance{
			WalletID:                   walletID,
			Groups:                     make(map[string]entity.AccountGroupBalance, len(wallet.Groups)),
			TotalBalanceInUserCurrency: roundOut(walletTotals[walletID]),
			UserCurrency:               userCurrency,
		}
		for groupID := range wallet.Groups {
			walletBalance.Groups[groupID] = entity.AccountGroupBalance{
				WalletID:                   walletID,
				GroupID:                    groupID,
				TotalBalanceInUserCurrency: roundOut(groupTotals[groupID]),
				UserCurrency:               userCurrency,
			}
		}
		result.Wallets[walletID] = walletBalance
	}
	return result
}

// aggregateChange sums current/previous pairs over the given rows and derives
// the amount and percent change once at the top, not per account.
func aggregateChange(rows []accountRow, engines engineSet, period entity.Period, userCurrency string) entity.BalanceChangeResult {
	current, previous := decimal.Zero, decimal.Zero
	for _, row := range rows {
		cur, prev := engines.forKind(row.kind).Change(row.account, period)
		current = current.Add(cur)
		previous = previous.Add(prev)
	}

	amountChange := current.Sub(previous)
	percentChange := decimal.Zero
	if !previous.IsZero() {
		percentChange = amountChange.Div(previous).Mul(decimalHundred)
	}

	return entity.BalanceChangeResult{
		Period:                      period,
		CurrentTotalInUserCurrency:  roundOut(current),
		PreviousTotalInUserCurrency: roundOut(previous),
		AmountChangeInUserCurrency:  roundOut(amountChange),
		PercentChange:               roundOut(percentChange),
		UserCurrency:                userCurrency,
	}
}
