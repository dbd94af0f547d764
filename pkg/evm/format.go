package evm

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders whole dollars with thousands separators, e.g. "$112,500" or "$-12,500".
func FormatCurrency(v float64) string {
	return "$" + humanize.FormatFloat("#,###.", v)
}

func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
