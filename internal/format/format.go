// Package format converts amounts and dates to display strings. The
// calculation layer returns raw numbers; currency symbols and decimal
// places are applied here and only here.
package format

import (
	"fmt"
	"math"
	"time"
)

// Currency renders an amount with two decimals and a currency symbol,
// sign-aware: the minus sign goes before the symbol, "-$12.50".
func Currency(amount float64, symbol string) string {
	if math.Signbit(amount) && amount != 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// SignedCurrency renders an amount with an explicit leading + or -.
// Zero keeps the plus: "+$0.00".
func SignedCurrency(amount float64, symbol string) string {
	if math.Signbit(amount) && amount != 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -amount)
	}
	return fmt.Sprintf("+%s%.2f", symbol, amount)
}

// Date renders a date-only timestamp as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthLabel renders a YYYY-MM month key as a human label, e.g.
// "August 2026". Unparseable keys are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}
