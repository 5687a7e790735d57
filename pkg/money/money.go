package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BasisPointsScale converts basis points to a fraction.
const BasisPointsScale = 10000

// Percentage returns round(amount × bps / 10000), rounding half away from zero.
func Percentage(amount int64, bps int) int64 {
	if amount == 0 || bps == 0 {
		return 0
	}
	value := decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(int64(bps))).
		Div(decimal.NewFromInt(BasisPointsScale)).
		Round(0)
	return value.IntPart()
}

// FormatRupiah renders whole rupiah the way id-ID receipts do, e.g. "Rp 25.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := decimal.NewFromInt(amount).String()

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + "Rp " + b.String()
}
