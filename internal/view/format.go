package view

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders two decimals, halves rounded away from zero:
// 10.005 -> "$10.01".
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatBestPerformance always prefixes "+", whatever the sign of p.
func FormatBestPerformance(p decimal.Decimal) string {
	return "+" + p.StringFixed(2) + "%"
}

// FormatSignedPercent keeps the sign and adds "+" for zero and up.
func FormatSignedPercent(p decimal.Decimal) string {
	if p.Sign() >= 0 {
		return "+" + p.StringFixed(2) + "%"
	}
	return p.StringFixed(2) + "%"
}

func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layout)
}
