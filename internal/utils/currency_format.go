package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats a float with a fixed number of decimal places.
// Example: 92.0 with precision 2 returns "92.00"
// Example: 0.91876 with precision 4 returns "0.9188"
func FormatWithPrecision(value float64, precision int32) string {
	return decimal.NewFromFloat(value).StringFixed(precision)
}

// FormatAmount formats an entered amount as typed, keeping one decimal place for whole numbers.
// Example: 100.0 returns "100.0", 12.5 returns "12.5"
func FormatAmount(value float64) string {
	d := decimal.NewFromFloat(value)
	if d.IsInteger() {
		return d.StringFixed(1)
	}
	return d.String()
}

// FormatMoney formats a converted amount for display, e.g. "92.00".
func FormatMoney(value float64) string {
	return FormatWithPrecision(value, 2)
}

// FormatRate formats a conversion rate for display, e.g. "0.9200".
func FormatRate(value float64) string {
	return FormatWithPrecision(value, 4)
}

// FormatRateDelta formats the distance of a rate from parity, e.g. "-0.0800" for 0.92.
func FormatRateDelta(rate float64) string {
	return decimal.NewFromFloat(rate).Sub(decimal.NewFromInt(1)).StringFixed(4)
}
