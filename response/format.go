package response

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DateLayout renders dates as "Oct 29, 2025"
const DateLayout = "Jan 2, 2006"

// FormatCurrency renders an amount in US dollars with thousands separators
// and two decimals: 1299.99 -> "$1,299.99"
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = humanize.Comma(n)
	}

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "$" + whole + "." + cents
}

// FormatDate renders the calendar date of t in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatPercent renders a percentage with the shortest exact decimal form: 36.4 -> "36.4%"
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// FormatGrowth renders a signed percentage: 12 -> "+12%"
func FormatGrowth(p float64) string {
	if p >= 0 {
		return "+" + FormatPercent(p)
	}
	return FormatPercent(p)
}

// DaysUntil is the number of started days from now until t. Past dates give
// zero or negative values.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
