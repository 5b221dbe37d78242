package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
		amount float64
	}{
		{name: "positive", symbol: "$", amount: 1234.5, want: "$1234.50"},
		{name: "negative sign precedes symbol", symbol: "$", amount: -12.5, want: "-$12.50"},
		{name: "zero", symbol: "$", amount: 0, want: "$0.00"},
		{name: "euro symbol", symbol: "€", amount: 99.999, want: "€100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.amount, tt.symbol))
		})
	}
}

func TestSignedCurrency(t *testing.T) {
	assert.Equal(t, "+$100.00", SignedCurrency(100, "$"))
	assert.Equal(t, "-$25.00", SignedCurrency(-25, "$"))
	assert.Equal(t, "+$0.00", SignedCurrency(0, "$"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2026-08-27", Date(time.Date(2026, 8, 27, 15, 4, 5, 0, time.UTC)))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "August 2026", MonthLabel("2026-08"))
	assert.Equal(t, "not-a-month", MonthLabel("not-a-month"))
}
