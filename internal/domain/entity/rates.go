package entity

// Period selects the look-back window for balance-change queries.
type Period string

const (
	Period1d  Period = "1d"
	Period7d  Period = "7d"
	Period30d Period = "30d"
)

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	switch p {
	case Period1d, Period7d, Period30d:
		return true
	}
	return false
}

// MarketData is per-token EVM market data. Price is expressed in the chain's
// native currency; Currency names that native currency (e.g. "ETH"). Pointer
// fields are nil when the rate source has no figure.
type MarketData struct {
	Price                 *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Currency              string   `json:"currency" yaml:"currency"`
	PricePercentChange1d  *float64 `json:"pricePercentChange1d,omitempty" yaml:"pricePercentChange1d,omitempty"`
	PricePercentChange7d  *float64 `json:"pricePercentChange7d,omitempty" yaml:"pricePercentChange7d,omitempty"`
	PricePercentChange30d *float64 `json:"pricePercentChange30d,omitempty" yaml:"pricePercentChange30d,omitempty"`
}

// PercentChange returns the percent-change figure for the requested period.
func (m MarketData) PercentChange(period Period) (float64, bool) {
	var p *float64
	switch period {
	case Period1d:
		p = m.PricePercentChange1d
	case Period7d:
		p = m.PricePercentChange7d
	case Period30d:
		p = m.PricePercentChange30d
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// TokenRatesState maps hex chain ID -> token contract address -> market data.
type TokenRatesState struct {
	MarketData map[string]map[string]MarketData `json:"marketData" yaml:"marketData"`
}

// CurrencyRate carries the native-currency -> user-currency multiplier.
// ConversionRate is nil when the rate is unknown.
type CurrencyRate struct {
	ConversionRate *float64 `json:"conversionRate,omitempty" yaml:"conversionRate,omitempty"`
}

// CurrencyRatesState holds the user's display currency and the conversion
// rates from native currencies into it, keyed by native currency code.
type CurrencyRatesState struct {
	CurrentCurrency string                  `json:"currentCurrency" yaml:"currentCurrency"`
	CurrencyRates   map[string]CurrencyRate `json:"currencyRates" yaml:"currencyRates"`
}

// Percent-change keys used by non-EVM rate records.
const (
	PercentChangeKey1d  = "P1D"
	PercentChangeKey7d  = "P7D"
	PercentChangeKey30d = "P30D"
)

// PercentChangeKey maps a Period to the non-EVM rate record key.
func (p Period) PercentChangeKey() string {
	switch p {
	case Period7d:
		return PercentChangeKey7d
	case Period30d:
		return PercentChangeKey30d
	default:
		return PercentChangeKey1d
	}
}

// AssetMarketData holds percent-change figures for a non-EVM asset, keyed by
// P1D/P7D/P30D.
type AssetMarketData struct {
	PricePercentChange map[string]float64 `json:"pricePercentChange,omitempty" yaml:"pricePercentChange,omitempty"`
}

// AssetRate is a non-EVM conversion rate, already expressed in the user's
// display currency as a decimal string.
type AssetRate struct {
	Rate       string           `json:"rate" yaml:"rate"`
	MarketData *AssetMarketData `json:"marketData,omitempty" yaml:"marketData,omitempty"`
}

// MultichainRatesState maps CAIP-19 asset ID -> conversion rate.
type MultichainRatesState struct {
	ConversionRates map[string]AssetRate `json:"conversionRates" yaml:"conversionRates"`
}
