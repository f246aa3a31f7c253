package engine

import "time"

// Granularity is the time-bucketing resolution for sales-over-time queries.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity maps a request parameter to a Granularity. Unrecognized
// values (empty string included) fall back to month rather than erroring.
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case GranularityDay, GranularityMonth, GranularityQuarter, GranularityYear:
		return Granularity(s)
	default:
		return GranularityMonth
	}
}

// Period is a time bucket key. Only the fields relevant to the granularity
// are set: Date for day, Year+Month for month, Year+Quarter for quarter,
// Year alone for year.
type Period struct {
	Year    int
	Quarter int
	Month   int
	Date    string // YYYY-MM-DD
}

// PeriodOf derives the bucket key from the order date alone. The quarter is
// computed as (month-1)/3+1 rather than trusting any stored period column,
// so sources without pre-computed period fields bucket identically.
func PeriodOf(t time.Time, g Granularity) Period {
	switch g {
	case GranularityDay:
		return Period{Date: t.Format("2006-01-02")}
	case GranularityQuarter:
		return Period{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
	case GranularityYear:
		return Period{Year: t.Year()}
	default:
		return Period{Year: t.Year(), Month: int(t.Month())}
	}
}

// Before orders periods chronologically: year first, then sub-period. Within
// one granularity only the populated fields differ, and ISO dates compare
// correctly as strings.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	if p.Quarter != q.Quarter {
		return p.Quarter < q.Quarter
	}
	if p.Month != q.Month {
		return p.Month < q.Month
	}
	return p.Date < q.Date
}
