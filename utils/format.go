package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// NotAvailable is shown for metrics that are undefined, e.g. price per m²
// of a listing without a known area.
const NotAvailable = "N/A"

// FormatAmount renders a whole-krone amount with Norwegian digit grouping:
// 3450000 -> "3 450 000".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return humanize.FormatFloat("# ###,", v)
}

// FormatNOK renders an amount followed by the currency code.
func FormatNOK(v float64) string {
	return FormatAmount(v) + " NOK"
}

// FormatNOKPtr renders an optional amount, N/A when absent.
func FormatNOKPtr(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatNOK(*v)
}

// FormatDecimal renders v with one decimal and a Norwegian decimal comma.
func FormatDecimal(v float64) string {
	return humanize.FormatFloat("# ###,#", v)
}

// FormatArea renders an area in square metres, e.g. "70 m²".
func FormatArea(v float64) string {
	if v == math.Trunc(v) {
		return FormatAmount(v) + " m²"
	}
	return FormatDecimal(v) + " m²"
}

// FormatPercent renders a fraction (0.15) as "15,0 %".
func FormatPercent(fraction float64) string {
	return strings.Replace(fmt.Sprintf("%.1f %%", fraction*100), ".", ",", 1)
}
