package services

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatTWD formats an amount in New Taiwan Dollars the way printed quotes
// show it: "$" prefix, thousands separators, no trailing zero decimals
// (e.g. $1,234,567 or $12.5).
func FormatTWD(amount float64) string {
	if amount < 0 {
		return "-" + FormatTWD(-amount)
	}
	return "$" + humanize.CommafWithDigits(amount, 2)
}

// FormatQty returns whole numbers without decimals and fractional values with
// up to two decimals.
func FormatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return humanize.FtoaWithDigits(qty, 2)
}

// FormatPercent renders a margin such as 40 → "40.0%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
