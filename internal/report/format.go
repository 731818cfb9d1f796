package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale groups digits the way the original Korean report does.
var DefaultLocale = language.Korean

// Quantity formats v with locale digit grouping and at most one fractional digit.
// e.g., 1234.56 -> "1,234.6", 120000 -> "120,000"
func Quantity(tag language.Tag, v float64) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(1)))
}

// Percent formats a 0-100 score with exactly one fractional digit.
// e.g., 87 -> "87.0%"
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
