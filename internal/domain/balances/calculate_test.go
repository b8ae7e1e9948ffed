package balances

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"asset_tracker/internal/domain/entity"
)

const (
	chainEthereum = "0x1"
	chainPolygon  = "0x89"
	chainArbitrum = "0xa4b1"

	addrAccount1 = "0x1111111111111111111111111111111111111111"
	addrAccount2 = "0x2222222222222222222222222222222222222222"

	addrUSDCEth = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	addrUSDTEth = "0xdac17f958d2ee523a2206206994597c13d831ec7"
	addrDAIEth  = "0x6b175474e89094c44da98b954eedeac495271d0f"
	addrWETHEth = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	addrUSDCPol = "0x2791bca1f2de4661ed88a30c99a7a9449aa84174"
	addrUSDTPol = "0xc2132d05d31c914a87c6611c10748aeb04b58e8f"
	addrUSDCArb = "0xaf88d065e77c8cc2239327c5edb3a432268e5831"
	addrUSDTArb = "0xfd086bc7cd5c481dcc9c85ebe478a1c0b69fcbb9"

	solanaChain   = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
	solanaAssetID = solanaChain + "/token:EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func fptr(v float64) *float64 { return &v }

// hexUnits encodes whole token units as a hex balance in the smallest unit.
func hexUnits(units int64, decimals int64) string {
	scaled := new(big.Int).Mul(big.NewInt(units), new(big.Int).Exp(big.NewInt(10), big.NewInt(decimals), nil))
	return fmt.Sprintf("0x%x", scaled)
}

func stableToken(addr, symbol string) entity.TokenMetadata {
	return entity.TokenMetadata{Address: addr, Decimals: 6, Symbol: symbol}
}

// fixtureSnapshot builds the worked two-account EVM scenario: USDC/USDT on
// Ethereum, Polygon and Arbitrum for the first account, DAI and WETH on
// Ethereum for the second.
func fixtureSnapshot() entity.Snapshot {
	return entity.Snapshot{
		AccountTree: entity.AccountTreeState{
			Wallets: map[string]entity.AccountWallet{
				"wallet1": {
					ID: "wallet1",
					Groups: map[string]entity.AccountGroup{
						"wallet1/g1": {ID: "wallet1/g1", Accounts: []string{"acc1", "acc2"}},
					},
				},
			},
		},
		Accounts: entity.AccountsState{
			Accounts: map[string]entity.InternalAccount{
				"acc1": {ID: "acc1", Address: addrAccount1, Type: "eip155:eoa"},
				"acc2": {ID: "acc2", Address: addrAccount2, Type: "eip155:eoa"},
			},
		},
		TokenBalances: entity.TokenBalancesState{
			TokenBalances: map[string]entity.HexBalanceMap{
				addrAccount1: {
					chainEthereum: {addrUSDCEth: hexUnits(100, 6), addrUSDTEth: hexUnits(200, 6)},
					chainPolygon:  {addrUSDCPol: hexUnits(500, 6), addrUSDTPol: hexUnits(1000, 6)},
					chainArbitrum: {addrUSDCArb: hexUnits(50, 6), addrUSDTArb: hexUnits(150, 6)},
				},
				addrAccount2: {
					chainEthereum: {addrDAIEth: hexUnits(100, 18), addrWETHEth: hexUnits(1, 18)},
				},
			},
		},
		Tokens: entity.TokensState{
			AllTokens: entity.TokenRegistry{
				chainEthereum: {
					addrAccount1: {stableToken(addrUSDCEth, "USDC"), stableToken(addrUSDTEth, "USDT")},
					addrAccount2: {
						{Address: addrDAIEth, Decimals: 18, Symbol: "DAI"},
						{Address: addrWETHEth, Decimals: 18, Symbol: "WETH"},
					},
				},
				chainPolygon: {
					addrAccount1: {stableToken(addrUSDCPol, "USDC"), stableToken(addrUSDTPol, "USDT")},
				},
			},
			AllDetectedTokens: entity.TokenRegistry{
				chainArbitrum: {
					addrAccount1: {stableToken(addrUSDCArb, "USDC"), stableToken(addrUSDTArb, "USDT")},
				},
			},
		},
		TokenRates: entity.TokenRatesState{
			MarketData: map[string]map[string]entity.MarketData{
				chainEthereum: {
					addrUSDCEth: {Price: fptr(0.00041), Currency: "ETH", PricePercentChange1d: fptr(0.1)},
					addrUSDTEth: {Price: fptr(0.00041), Currency: "ETH", PricePercentChange1d: fptr(-0.2)},
					addrDAIEth:  {Price: fptr(0.00041), Currency: "ETH", PricePercentChange1d: fptr(0.05)},
					addrWETHEth: {Price: fptr(1.0), Currency: "ETH", PricePercentChange1d: fptr(2.5)},
				},
				chainPolygon: {
					addrUSDCPol: {Price: fptr(1.25), Currency: "MATIC", PricePercentChange1d: fptr(0.3)},
					addrUSDTPol: {Price: fptr(1.25), Currency: "MATIC", PricePercentChange1d: fptr(0.3)},
				},
				chainArbitrum: {
					addrUSDCArb: {Price: fptr(0.91), Currency: "ARB", PricePercentChange1d: fptr(-1.1)},
					addrUSDTArb: {Price: fptr(0.91), Currency: "ARB", PricePercentChange1d: fptr(-1.1)},
				},
			},
		},
		CurrencyRates: entity.CurrencyRatesState{
			CurrentCurrency: "usd",
			CurrencyRates: map[string]entity.CurrencyRate{
				"ETH":   {ConversionRate: fptr(2400)},
				"MATIC": {ConversionRate: fptr(0.80)},
				"ARB":   {ConversionRate: fptr(1.10)},
			},
		},
	}
}

func TestCalculateBalanceForAllWalletsWorkedFixtureUSD(t *testing.T) {
	snap := fixtureSnapshot()
	got := CalculateBalanceForAllWallets(snap)

	require.Equal(t, "usd", got.UserCurrency)
	require.InDelta(t, 4493.80, got.TotalBalanceInUserCurrency, 0.1)
	require.Contains(t, got.Wallets, "wallet1")
	wallet := got.Wallets["wallet1"]
	require.InDelta(t, 4493.80, wallet.TotalBalanceInUserCurrency, 0.1)
	require.Contains(t, wallet.Groups, "wallet1/g1")
	require.InDelta(t, 4493.80, wallet.Groups["wallet1/g1"].TotalBalanceInUserCurrency, 0.1)
}

func TestCalculateBalanceForAllWalletsWorkedFixtureEUR(t *testing.T) {
	snap := fixtureSnapshot()
	snap.CurrencyRates = entity.CurrencyRatesState{
		CurrentCurrency: "eur",
		CurrencyRates: map[string]entity.CurrencyRate{
			"ETH":   {ConversionRate: fptr(2040)},
			"MATIC": {ConversionRate: fptr(0.68)},
			"ARB":   {ConversionRate: fptr(0.935)},
		},
	}
	got := CalculateBalanceForAllWallets(snap)

	require.Equal(t, "eur", got.UserCurrency)
	require.InDelta(t, 3819.73, got.TotalBalanceInUserCurrency, 0.02)
}

func TestCalculateBalanceForAccountGroup(t *testing.T) {
	snap := fixtureSnapshot()
	got := CalculateBalanceForAccountGroup(snap, "wallet1/g1")

	require.Equal(t, "wallet1", got.WalletID)
	require.Equal(t, "wallet1/g1", got.GroupID)
	require.InDelta(t, 4493.80, got.TotalBalanceInUserCurrency, 0.1)

	missing := CalculateBalanceForAccountGroup(snap, "wallet1/nope")
	require.Zero(t, missing.TotalBalanceInUserCurrency)
}

func TestCalculateBalanceIdempotent(t *testing.T) {
	snap := fixtureSnapshot()
	first := CalculateBalanceForAllWallets(snap)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, CalculateBalanceForAllWallets(snap))
	}
	change := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
	require.Equal(t, change, CalculateBalanceChangeForAllWallets(snap, entity.Period1d))
}

func TestCalculateBalanceCompleteness(t *testing.T) {
	snap := fixtureSnapshot()
	snap.AccountTree.Wallets["wallet2"] = entity.AccountWallet{
		ID: "wallet2",
		Groups: map[string]entity.AccountGroup{
			"wallet2/empty": {ID: "wallet2/empty", Accounts: nil},
		},
	}
	snap.AccountTree.Wallets["wallet3"] = entity.AccountWallet{ID: "wallet3"}

	got := CalculateBalanceForAllWallets(snap)
	require.Contains(t, got.Wallets, "wallet2")
	require.Contains(t, got.Wallets, "wallet3")
	require.Zero(t, got.Wallets["wallet2"].TotalBalanceInUserCurrency)
	require.Contains(t, got.Wallets["wallet2"].Groups, "wallet2/empty")
	require.Zero(t, got.Wallets["wallet2"].Groups["wallet2/empty"].TotalBalanceInUserCurrency)
	require.Empty(t, got.Wallets["wallet3"].Groups)
	require.InDelta(t, 4493.80, got.TotalBalanceInUserCurrency, 0.1)
}

func TestNonEvmAccountContribution(t *testing.T) {
	snap := entity.Snapshot{
		AccountTree: entity.AccountTreeState{
			Wallets: map[string]entity.AccountWallet{
				"wallet1": {
					ID: "wallet1",
					Groups: map[string]entity.AccountGroup{
						"wallet1/g1": {ID: "wallet1/g1", Accounts: []string{"sol1"}},
					},
				},
			},
		},
		Accounts: entity.AccountsState{
			Accounts: map[string]entity.InternalAccount{
				"sol1": {ID: "sol1", Address: "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV", Type: "solana:eoa"},
			},
		},
		MultichainBalances: entity.MultichainBalancesState{
			Balances: map[string]map[string]entity.AssetBalance{
				"sol1": {solanaAssetID: {Amount: "50", Unit: "TOK"}},
			},
		},
		MultichainRates: entity.MultichainRatesState{
			ConversionRates: map[string]entity.AssetRate{
				solanaAssetID: {
					Rate: "50.0",
					MarketData: &entity.AssetMarketData{
						PricePercentChange: map[string]float64{entity.PercentChangeKey1d: 25},
					},
				},
			},
		},
		CurrencyRates: entity.CurrencyRatesState{CurrentCurrency: "usd"},
	}

	got := CalculateBalanceForAllWallets(snap)
	require.InDelta(t, 2500.0, got.TotalBalanceInUserCurrency, 1e-9)

	change := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
	require.InDelta(t, 2500.0, change.CurrentTotalInUserCurrency, 1e-9)
	require.InDelta(t, 2000.0, change.PreviousTotalInUserCurrency, 1e-6)
	require.InDelta(t, 500.0, change.AmountChangeInUserCurrency, 1e-6)
	require.InDelta(t, 25.0, change.PercentChange, 1e-6)
}

func TestBalanceChangeReconstruction(t *testing.T) {
	snap := fixtureSnapshot()
	// Single WETH position: current 2400 USD, 1d change +10%.
	snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"] = entity.AccountGroup{
		ID:       "wallet1/g1",
		Accounts: []string{"acc2"},
	}
	snap.TokenBalances.TokenBalances[addrAccount2] = entity.HexBalanceMap{
		chainEthereum: {addrWETHEth: hexUnits(1, 18)},
	}
	snap.TokenRates.MarketData[chainEthereum][addrWETHEth] = entity.MarketData{
		Price: fptr(1.0), Currency: "ETH", PricePercentChange1d: fptr(10),
	}

	got := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
	require.Equal(t, entity.Period1d, got.Period)
	require.InDelta(t, 2400.0, got.CurrentTotalInUserCurrency, 1e-9)
	require.InDelta(t, 2181.82, got.PreviousTotalInUserCurrency, 0.01)
	require.InDelta(t, 218.18, got.AmountChangeInUserCurrency, 0.01)
	require.InDelta(t, 10.0, got.PercentChange, 1e-6)

	scoped := CalculateBalanceChangeForAccountGroup(snap, "wallet1/g1", entity.Period1d)
	require.Equal(t, got.CurrentTotalInUserCurrency, scoped.CurrentTotalInUserCurrency)
	require.Equal(t, got.PreviousTotalInUserCurrency, scoped.PreviousTotalInUserCurrency)
}

func TestBalanceChangeMinusHundredPercentGuard(t *testing.T) {
	snap := fixtureSnapshot()
	snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"] = entity.AccountGroup{
		ID:       "wallet1/g1",
		Accounts: []string{"acc2"},
	}
	snap.TokenBalances.TokenBalances[addrAccount2] = entity.HexBalanceMap{
		chainEthereum: {addrWETHEth: hexUnits(1, 18)},
	}
	snap.TokenRates.MarketData[chainEthereum][addrWETHEth] = entity.MarketData{
		Price: fptr(1.0), Currency: "ETH", PricePercentChange1d: fptr(-100),
	}

	got := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
	require.Zero(t, got.CurrentTotalInUserCurrency)
	require.Zero(t, got.PreviousTotalInUserCurrency)
	require.Zero(t, got.AmountChangeInUserCurrency)
	require.Zero(t, got.PercentChange)
}

func TestBalanceChangeNonFinitePercentSkipped(t *testing.T) {
	cases := map[string]float64{
		"NaN":               math.NaN(),
		"positive infinity": math.Inf(1),
		"negative infinity": math.Inf(-1),
	}
	for name, pct := range cases {
		t.Run(name, func(t *testing.T) {
			snap := fixtureSnapshot()
			snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"] = entity.AccountGroup{
				ID:       "wallet1/g1",
				Accounts: []string{"acc2"},
			}
			snap.TokenBalances.TokenBalances[addrAccount2] = entity.HexBalanceMap{
				chainEthereum: {addrWETHEth: hexUnits(1, 18)},
			}
			snap.TokenRates.MarketData[chainEthereum][addrWETHEth] = entity.MarketData{
				Price: fptr(1.0), Currency: "ETH", PricePercentChange1d: fptr(pct),
			}

			got := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
			require.Zero(t, got.CurrentTotalInUserCurrency)
			require.Zero(t, got.PreviousTotalInUserCurrency)
			require.Zero(t, got.AmountChangeInUserCurrency)
			require.Zero(t, got.PercentChange)
		})
	}
}

func TestNonEvmBalanceChangeNaNPercentSkipped(t *testing.T) {
	snap := entity.Snapshot{
		AccountTree: entity.AccountTreeState{
			Wallets: map[string]entity.AccountWallet{
				"wallet1": {
					ID: "wallet1",
					Groups: map[string]entity.AccountGroup{
						"wallet1/g1": {ID: "wallet1/g1", Accounts: []string{"sol1"}},
					},
				},
			},
		},
		Accounts: entity.AccountsState{
			Accounts: map[string]entity.InternalAccount{
				"sol1": {ID: "sol1", Address: "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV", Type: "solana:eoa"},
			},
		},
		MultichainBalances: entity.MultichainBalancesState{
			Balances: map[string]map[string]entity.AssetBalance{
				"sol1": {solanaAssetID: {Amount: "50", Unit: "TOK"}},
			},
		},
		MultichainRates: entity.MultichainRatesState{
			ConversionRates: map[string]entity.AssetRate{
				solanaAssetID: {
					Rate: "50.0",
					MarketData: &entity.AssetMarketData{
						PricePercentChange: map[string]float64{entity.PercentChangeKey1d: math.NaN()},
					},
				},
			},
		},
		CurrencyRates: entity.CurrencyRatesState{CurrentCurrency: "usd"},
	}

	// The point-in-time value is unaffected, the change pair is skipped.
	require.InDelta(t, 2500.0, CalculateBalanceForAllWallets(snap).TotalBalanceInUserCurrency, 1e-9)

	got := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
	require.Zero(t, got.CurrentTotalInUserCurrency)
	require.Zero(t, got.PreviousTotalInUserCurrency)
	require.Zero(t, got.PercentChange)
}

func TestBalanceChangeMissingPercentForPeriod(t *testing.T) {
	snap := fixtureSnapshot()
	// The fixture only carries 1d figures, so a 7d query has nothing to sum.
	got := CalculateBalanceChangeForAllWallets(snap, entity.Period7d)
	require.Zero(t, got.CurrentTotalInUserCurrency)
	require.Zero(t, got.PreviousTotalInUserCurrency)
	require.Zero(t, got.PercentChange)
}

func TestDisabledChainContributesNothing(t *testing.T) {
	snap := fixtureSnapshot()
	snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"] = entity.AccountGroup{
		ID:       "wallet1/g1",
		Accounts: []string{"acc2"},
	}
	snap.EnabledNetworks = entity.EnabledNetworkMap{
		"eip155": {chainEthereum: false},
	}

	balance := CalculateBalanceForAllWallets(snap)
	require.Zero(t, balance.TotalBalanceInUserCurrency)

	change := CalculateBalanceChangeForAllWallets(snap, entity.Period1d)
	require.Zero(t, change.CurrentTotalInUserCurrency)
	require.Zero(t, change.PreviousTotalInUserCurrency)
	require.Zero(t, change.AmountChangeInUserCurrency)
	require.Zero(t, change.PercentChange)
}

func TestChainFilterKeepsEnabledChains(t *testing.T) {
	snap := fixtureSnapshot()
	snap.EnabledNetworks = entity.EnabledNetworkMap{
		"eip155": {chainEthereum: true},
	}
	got := CalculateBalanceForAllWallets(snap)
	// Ethereum only: 98.4 + 196.8 + 98.4 + 2400.
	require.InDelta(t, 2793.6, got.TotalBalanceInUserCurrency, 1e-6)
}

func TestZeroOnMissingData(t *testing.T) {
	baseValue := 4493.8

	t.Run("unregistered token is skipped", func(t *testing.T) {
		snap := fixtureSnapshot()
		snap.TokenBalances.TokenBalances[addrAccount1][chainEthereum]["0x9999999999999999999999999999999999999999"] = hexUnits(1000, 6)
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("missing price drops the token", func(t *testing.T) {
		snap := fixtureSnapshot()
		md := snap.TokenRates.MarketData[chainEthereum][addrWETHEth]
		md.Price = nil
		snap.TokenRates.MarketData[chainEthereum][addrWETHEth] = md
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue-2400, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("NaN price drops the token", func(t *testing.T) {
		snap := fixtureSnapshot()
		md := snap.TokenRates.MarketData[chainEthereum][addrWETHEth]
		md.Price = fptr(math.NaN())
		snap.TokenRates.MarketData[chainEthereum][addrWETHEth] = md
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue-2400, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("infinite conversion rate drops the chain's tokens", func(t *testing.T) {
		snap := fixtureSnapshot()
		snap.CurrencyRates.CurrencyRates["MATIC"] = entity.CurrencyRate{ConversionRate: fptr(math.Inf(1))}
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue-1500, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("missing market data drops the token", func(t *testing.T) {
		snap := fixtureSnapshot()
		delete(snap.TokenRates.MarketData[chainEthereum], addrWETHEth)
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue-2400, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("missing native conversion rate drops the chain's tokens", func(t *testing.T) {
		snap := fixtureSnapshot()
		delete(snap.CurrencyRates.CurrencyRates, "MATIC")
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue-1500, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("malformed hex balance is skipped", func(t *testing.T) {
		snap := fixtureSnapshot()
		snap.TokenBalances.TokenBalances[addrAccount2][chainEthereum][addrWETHEth] = "0xnot-hex"
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue-2400, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("invalid decimals falls back to 18", func(t *testing.T) {
		snap := fixtureSnapshot()
		snap.Tokens.AllTokens[chainEthereum][addrAccount2] = []entity.TokenMetadata{
			{Address: addrDAIEth, Decimals: 18, Symbol: "DAI"},
			{Address: addrWETHEth, Decimals: "eighteen", Symbol: "WETH"},
		}
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("non-numeric asset amount is skipped", func(t *testing.T) {
		snap := fixtureSnapshot()
		snap.Accounts.Accounts["sol1"] = entity.InternalAccount{ID: "sol1", Address: "SoL", Type: "solana:eoa"}
		group := snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"]
		group.Accounts = append(group.Accounts, "sol1")
		snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"] = group
		snap.MultichainBalances = entity.MultichainBalancesState{
			Balances: map[string]map[string]entity.AssetBalance{
				"sol1": {solanaAssetID: {Amount: "not-a-number", Unit: "TOK"}},
			},
		}
		snap.MultichainRates = entity.MultichainRatesState{
			ConversionRates: map[string]entity.AssetRate{solanaAssetID: {Rate: "50.0"}},
		}
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue, got.TotalBalanceInUserCurrency, 0.1)
	})

	t.Run("non-numeric asset rate is skipped", func(t *testing.T) {
		snap := fixtureSnapshot()
		snap.Accounts.Accounts["sol1"] = entity.InternalAccount{ID: "sol1", Address: "SoL", Type: "solana:eoa"}
		group := snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"]
		group.Accounts = append(group.Accounts, "sol1")
		snap.AccountTree.Wallets["wallet1"].Groups["wallet1/g1"] = group
		snap.MultichainBalances = entity.MultichainBalancesState{
			Balances: map[string]map[string]entity.AssetBalance{
				"sol1": {solanaAssetID: {Amount: "50", Unit: "TOK"}},
			},
		}
		snap.MultichainRates = entity.MultichainRatesState{
			ConversionRates: map[string]entity.AssetRate{solanaAssetID: {Rate: "NaN-ish"}},
		}
		got := CalculateBalanceForAllWallets(snap)
		require.InDelta(t, baseValue, got.TotalBalanceInUserCurrency, 0.1)
	})
}
