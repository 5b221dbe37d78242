package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "thirty-one days", key: "2026-08", wantStart: "2026-08-01", wantEnd: "2026-08-31"},
		{name: "thirty days", key: "2026-04", wantStart: "2026-04-01", wantEnd: "2026-04-30"},
		{name: "february leap year", key: "2024-02", wantStart: "2024-02-01", wantEnd: "2024-02-29"},
		{name: "february non-leap", key: "2026-02", wantStart: "2026-02-01", wantEnd: "2026-02-28"},
		{name: "december", key: "2026-12", wantStart: "2026-12-01", wantEnd: "2026-12-31"},
		{name: "bad separator", key: "2026/08", wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthBounds(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, tt.wantEnd, end.Format("2006-01-02"))
		})
	}
}

func TestNextMonthKey(t *testing.T) {
	next, err := NextMonthKey("2026-12")
	require.NoError(t, err)
	assert.Equal(t, "2027-01", next)

	next, err = NextMonthKey("2026-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-09", next)

	_, err = NextMonthKey("not-a-month")
	require.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 8, 15, 23, 45, 12, 999, loc)

	got := DateOnly(in)

	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestGenerateHashIgnoresTimeOfDay(t *testing.T) {
	base := Transaction{
		Date:        time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
		Description: "Market",
		Category:    "Groceries",
		Amount:      -42.50,
	}

	other := base
	other.Date = time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, base.GenerateHash(), other.GenerateHash())

	other.Category = "Dining"
	assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
}
