package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatUSDPrice renders a USD price with thousands grouping. Fraction digits
// depend on the size: >= 1000 up to 2, [1, 1000) exactly 2, below 1 from 4 to 6.
// A missing price renders as "N/A".
func FormatUSDPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}
	v := *price
	var minDigits, maxDigits int
	switch {
	case v >= 1000:
		minDigits, maxDigits = 0, 2
	case v >= 1:
		minDigits, maxDigits = 2, 2
	default:
		minDigits, maxDigits = 4, 6
	}
	// round half up on the shortest decimal form so 2.675 becomes 2.68,
	// x/text would round the binary value down
	rounded := decimal.NewFromFloat(v).Round(int32(maxDigits)).InexactFloat64()
	f := number.Decimal(rounded, number.MinFractionDigits(minDigits), number.MaxFractionDigits(maxDigits))
	return "$" + message.NewPrinter(language.AmericanEnglish).Sprint(f)
}
