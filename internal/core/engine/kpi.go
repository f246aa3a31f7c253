package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// StatusCount is one row of the order-status distribution. Percentages are
// rounded to two decimals independently of one another; the counts always
// sum to the total record count, the percentages need not sum to exactly
// 100.0. That matches how the distribution has always been reported.
type StatusCount struct {
	Status     string          `json:"status"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// KPIBundle is the cross-cutting summary computed by KPIs.
type KPIBundle struct {
	TotalSales           decimal.Decimal `json:"total_sales"`
	TotalOrders          int             `json:"total_orders"`
	AvgOrderValue        decimal.Decimal `json:"avg_order_value"`
	TotalCountriesServed int             `json:"total_countries_served"`
	GrowthRate           decimal.Decimal `json:"growth_rate"`
	StatusDistribution   []StatusCount   `json:"status_distribution"`
}

// KPIs derives the summary bundle from a snapshot.
//
// Asymmetries preserved from the established reports: TotalCountriesServed
// counts countries across ALL records while every monetary figure excludes
// cancelled ones, and the status distribution likewise covers all records.
//
// GrowthRate is (max monthly total - min monthly total) / min * 100 over
// active per-month sales: a peak-to-trough spread, despite the name, not a
// month-over-month rate. It is zero when there is no monthly data or the
// minimum month is zero.
func KPIs(s *Snapshot) KPIBundle {
	totals := Aggregate(s.records, func(SaleRecord) struct{} { return struct{}{} }, Active)

	var total Metrics
	if m, ok := totals[struct{}{}]; ok {
		total = m
	}

	avgOrder := decimal.Zero
	if total.DistinctOrders > 0 {
		avgOrder = total.TotalSales.Div(decimal.NewFromInt(int64(total.DistinctOrders)))
	}

	countries := Aggregate(s.records, func(r SaleRecord) string { return r.Country }, AllRecords)

	return KPIBundle{
		TotalSales:           total.TotalSales.Round(2),
		TotalOrders:          total.DistinctOrders,
		AvgOrderValue:        avgOrder.Round(2),
		TotalCountriesServed: len(countries),
		GrowthRate:           growthRate(s).Round(2),
		StatusDistribution:   statusDistribution(s),
	}
}

// growthRate computes the monthly peak-to-trough spread at full precision.
func growthRate(s *Snapshot) decimal.Decimal {
	monthly := Aggregate(s.records, func(r SaleRecord) Period {
		return PeriodOf(r.OrderDate, GranularityMonth)
	}, Active)
	if len(monthly) == 0 {
		return decimal.Zero
	}

	var min, max decimal.Decimal
	first := true
	for _, m := range monthly {
		if first {
			min, max = m.TotalSales, m.TotalSales
			first = false
			continue
		}
		if m.TotalSales.LessThan(min) {
			min = m.TotalSales
		}
		if m.TotalSales.GreaterThan(max) {
			max = m.TotalSales
		}
	}
	if min.IsZero() {
		return decimal.Zero
	}
	return max.Sub(min).Div(min).Mul(oneHundred)
}

// statusDistribution covers every record, cancelled included. Rows are
// sorted by status label for reproducible output.
func statusDistribution(s *Snapshot) []StatusCount {
	groups := Aggregate(s.records, func(r SaleRecord) string { return r.Status }, AllRecords)

	total := decimal.NewFromInt(int64(len(s.records)))
	rows := make([]StatusCount, 0, len(groups))
	for status, m := range groups {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = decimal.NewFromInt(int64(m.OrderCount)).Mul(oneHundred).Div(total).Round(2)
		}
		rows = append(rows, StatusCount{Status: status, Count: m.OrderCount, Percentage: pct})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	return rows
}
