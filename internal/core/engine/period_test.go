package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Granularity
	}{
		{name: "day", input: "day", want: GranularityDay},
		{name: "month", input: "month", want: GranularityMonth},
		{name: "quarter", input: "quarter", want: GranularityQuarter},
		{name: "year", input: "year", want: GranularityYear},
		{name: "empty falls back to month", input: "", want: GranularityMonth},
		{name: "unknown falls back to month", input: "weekly", want: GranularityMonth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseGranularity(tc.input))
		})
	}
}

func TestPeriodOf(t *testing.T) {
	date := time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		g    Granularity
		want Period
	}{
		{name: "day", g: GranularityDay, want: Period{Date: "2024-08-17"}},
		{name: "month", g: GranularityMonth, want: Period{Year: 2024, Month: 8}},
		{name: "quarter", g: GranularityQuarter, want: Period{Year: 2024, Quarter: 3}},
		{name: "year", g: GranularityYear, want: Period{Year: 2024}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, PeriodOf(date, tc.g))
		})
	}
}

func TestPeriodOf_QuarterBoundaries(t *testing.T) {
	// Quarter is derived from the calendar month, never a stored field.
	wantByMonth := map[time.Month]int{
		time.January: 1, time.March: 1,
		time.April: 2, time.June: 2,
		time.July: 3, time.September: 3,
		time.October: 4, time.December: 4,
	}
	for month, want := range wantByMonth {
		d := time.Date(2023, month, 15, 0, 0, 0, 0, time.UTC)
		require.Equal(t, want, PeriodOf(d, GranularityQuarter).Quarter, "month %s", month)
	}
}

func TestPeriod_BeforeMatchesDateOrder(t *testing.T) {
	earlier := time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, g := range []Granularity{GranularityDay, GranularityMonth, GranularityQuarter, GranularityYear} {
		p, q := PeriodOf(earlier, g), PeriodOf(later, g)
		require.True(t, p.Before(q), "granularity %s", g)
		require.False(t, q.Before(p), "granularity %s", g)
	}
}

func TestPeriodOf_Deterministic(t *testing.T) {
	d := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	require.Equal(t, PeriodOf(d, GranularityQuarter), PeriodOf(d, GranularityQuarter))
}
