package utils

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/duongtuttbn/swapkit/lerror"
)

const (
	DefaultPrecision = 6
	DefaultDecimals  = 18
)

// ToFixedPoint scales a human decimal string ("1.2345") by 10^decimals and
// truncates it to an integer digit string ("1234500000000000000").
// The scaling is exact, digits beyond decimals are dropped.
func ToFixedPoint(value string, decimals int) (string, error) {
	value = strings.TrimSpace(value)
	if decimals < 0 {
		return "", lerror.InvalidAmount.ToError(fmt.Sprintf("negative decimals %d", decimals))
	}
	if !IsDecimalString(value) {
		return "", lerror.InvalidAmount.ToError(fmt.Sprintf("invalid amount %q", value))
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", lerror.InvalidAmount.ToError(fmt.Sprintf("invalid amount %q: %v", value, err))
	}
	return d.Shift(int32(decimals)).BigInt().String(), nil
}

// FloatToFixedPoint is ToFixedPoint for float input. The float goes through its
// shortest decimal form first so 0.1 scales to 100000000000000000, not
// 100000000000000005. NaN, Inf and values <= 0 give "0".
func FloatToFixedPoint(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 || decimals < 0 {
		return "0"
	}
	return decimal.NewFromFloat(value).Shift(int32(decimals)).BigInt().String()
}

// ToDecimalString renders a fixed-point integer string as a decimal with at most
// precision fraction digits, truncated, trailing zeros stripped.
//
//	ToDecimalString("1234500000000000000", 6, 18) == "1.2345"
//
// Input that is not a non-negative base-10 integer renders as "0".
func ToDecimalString(value string, precision, decimals int) string {
	v, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok || v.Sign() < 0 {
		return "0"
	}
	if precision < 0 {
		precision = 0
	}
	if decimals < 0 {
		decimals = 0
	}
	// String trims trailing zeros and drops an empty fraction
	return decimal.NewFromBigInt(v, -int32(decimals)).Truncate(int32(precision)).String()
}

// NormalizeWei is ToDecimalString with the default precision and 18 decimals
func NormalizeWei(value string) string {
	return ToDecimalString(value, DefaultPrecision, DefaultDecimals)
}

// magnitudePlaces picks the fraction digits for a value, buckets are lower bound inclusive
func magnitudePlaces(value float64) int32 {
	switch {
	case value < 0.0001:
		return 12
	case value < 0.01:
		return 10
	case value < 0.1:
		return 8
	case value < 1:
		return 6
	case value < 10:
		return 4
	case value < 1000:
		return 2
	default:
		return 1
	}
}

// NormalizeNumber formats value with a precision that depends on its size,
// small rates keep their significant digits and large ones lose noise digits.
func NormalizeNumber(value float64) string {
	switch {
	case value == 0:
		return "0"
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	s := decimal.NewFromFloat(value).StringFixed(magnitudePlaces(value))
	s = trimFraction(s)
	if s == "-0" {
		return "0"
	}
	return s
}

// ExchangeRate is NormalizeNumber(out / in) for two decimal strings,
// "0" when either side is unusable or in is zero
func ExchangeRate(out, in string) string {
	o, err := decimal.NewFromString(strings.TrimSpace(out))
	if err != nil {
		return "0"
	}
	i, err := decimal.NewFromString(strings.TrimSpace(in))
	if err != nil || i.IsZero() {
		return "0"
	}
	return NormalizeNumber(o.Div(i).InexactFloat64())
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

var digitTab [256]bool

func init() {
	for c := byte('0'); c <= '9'; c++ {
		digitTab[c] = true
	}
}

// IsDecimalString reports whether s is an unsigned decimal: digits with at most
// one '.', at least one digit. No sign, no exponent.
func IsDecimalString(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case digitTab[s[i]]:
			digits++
		case s[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
