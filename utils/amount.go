package utils

import (
	"math"
	"math/big"
	"regexp"

	"github.com/layerx402/layerx402/types"
	"github.com/shopspring/decimal"
)

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.]`)
	leadingNumber = regexp.MustCompile(`^([0-9]*)(?:\.([0-9]*))?`)

	maxSubunits = decimal.NewFromInt(math.MaxInt64)
)

// CalculateFee returns floor(amount * feeBasisPoints / 10000).
// Non-positive amounts and negative basis points yield a zero fee. Fees that
// do not fit in an int64 saturate at math.MaxInt64.
func CalculateFee(amount, feeBasisPoints int64) int64 {
	if amount <= 0 || feeBasisPoints < 0 {
		return 0
	}

	fee := new(big.Int).Mul(big.NewInt(amount), big.NewInt(feeBasisPoints))
	fee.Quo(fee, big.NewInt(types.BasisPointsDenominator))

	if !fee.IsInt64() {
		return math.MaxInt64
	}
	return fee.Int64()
}

// FormatAmount formats lamports as whole SOL with nine fixed decimals, e.g. "1.000000000 SOL"
func FormatAmount(lamports int64) string {
	return FormatUnits(lamports, types.SOLDecimals, types.SOLSymbol)
}

// FormatUnits formats an integer subunit amount as a fixed-point whole-unit
// string with exactly `decimals` fractional digits followed by symbol.
func FormatUnits(subunits int64, decimals int32, symbol string) string {
	dec := decimal.New(subunits, -decimals)
	return dec.StringFixed(decimals) + " " + symbol
}

// ParseAmount parses a SOL quantity such as "0.5 SOL" or "$1.50" into lamports
func ParseAmount(text string) int64 {
	return ParseUnits(text, types.SOLDecimals)
}

// ParseUnits strips every character that is not a digit or a decimal point,
// reads the leading number of what remains as a whole-unit quantity and
// returns it scaled by 10^decimals, truncated to an integer.
//
// Text without numeric content, and quantities that do not fit in an int64
// once scaled, parse as 0.
func ParseUnits(text string, decimals int32) int64 {
	numeric := nonNumeric.ReplaceAllString(text, "")

	parts := leadingNumber.FindStringSubmatch(numeric)
	if parts == nil || (parts[1] == "" && parts[2] == "") {
		return 0
	}

	literal := "0" + parts[1]
	if parts[2] != "" {
		literal += "." + parts[2]
	}

	dec, err := decimal.NewFromString(literal)
	if err != nil {
		return 0
	}

	scaled := dec.Shift(decimals).Truncate(0)
	if scaled.GreaterThan(maxSubunits) {
		return 0
	}
	return scaled.IntPart()
}
