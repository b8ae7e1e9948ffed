// Package hexamount converts hex-encoded integer balances, as reported by EVM
// chains, into decimal token units.
package hexamount

import (
	"strings"

	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

// ParseUnits parses a hex balance string (with or without the "0x" prefix)
// and scales it down by the token's decimals. The second result is false for
// malformed input or values outside the uint256 range.
func ParseUnits(hexBalance string, decimals int32) (decimal.Decimal, bool) {
	s := hexBalance
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	n, ok := ethmath.ParseBig256(s)
	if !ok || n == nil || n.Sign() < 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromBigInt(n, -decimals), true
}
