package utils

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

const balancePrecision = 4

var tenGwei = decimal.NewFromInt(10)

// FormatBalance renders a raw balance with up to 4 fraction digits,
// missing or zero balances render as "0"
func FormatBalance(raw *big.Int, decimals int) string {
	if raw == nil || raw.Sign() == 0 {
		return "0"
	}
	return ToDecimalString(raw.String(), balancePrecision, decimals)
}

// FormatGasPrice renders wei per gas in gwei: 2 fraction digits under 10 gwei, 1 above.
func FormatGasPrice(weiPerGas *big.Int) string {
	if weiPerGas == nil || weiPerGas.Sign() == 0 {
		return "Unknown"
	}
	gwei := decimal.NewFromBigInt(weiPerGas, -9)
	places := int32(1)
	if gwei.LessThan(tenGwei) {
		places = 2
	}
	return gwei.StringFixed(places) + " Gwei"
}

// FormatSlippage renders a fraction (0.005) as a percentage ("0.5%")
func FormatSlippage(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return "0.0%"
	}
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(1) + "%"
}

func FormatLastUpdated(at, now time.Time) string {
	diffSeconds := int64(math.Floor(now.Sub(at).Seconds()))
	if diffSeconds < 5 {
		return "just now"
	}
	if diffSeconds < 60 {
		return fmt.Sprintf("%d seconds ago", diffSeconds)
	}

	diffMinutes := diffSeconds / 60
	if diffMinutes == 1 {
		return "1 minute ago"
	}
	if diffMinutes < 60 {
		return fmt.Sprintf("%d minutes ago", diffMinutes)
	}

	diffHours := diffMinutes / 60
	if diffHours == 1 {
		return "1 hour ago"
	}
	if diffHours < 24 {
		return fmt.Sprintf("%d hours ago", diffHours)
	}
	return at.Format("3:04:05 PM")
}

// ShortAddress keeps the first 6 and the last 4 characters, 0x1234...abcd
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
