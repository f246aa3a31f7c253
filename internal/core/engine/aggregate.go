package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metrics is the per-group accumulation result. Sums are exact decimal
// arithmetic; nothing here is rounded. Rounding happens once, when a query
// materializes its result rows.
type Metrics struct {
	TotalSales        decimal.Decimal
	OrderCount        int // matching lines, not distinct orders
	TotalQuantity     int
	UnitPriceSum      decimal.Decimal
	DistinctOrders    int
	DistinctCountries int
	LastOrderDate     time.Time
}

// AvgOrderValue is TotalSales / OrderCount, or zero for an empty group.
// Never faults on a zero denominator.
func (m Metrics) AvgOrderValue() decimal.Decimal {
	if m.OrderCount == 0 {
		return decimal.Zero
	}
	return m.TotalSales.Div(decimal.NewFromInt(int64(m.OrderCount)))
}

// AvgUnitPrice is UnitPriceSum / OrderCount, or zero for an empty group.
func (m Metrics) AvgUnitPrice() decimal.Decimal {
	if m.OrderCount == 0 {
		return decimal.Zero
	}
	return m.UnitPriceSum.Div(decimal.NewFromInt(int64(m.OrderCount)))
}

type accumulator struct {
	total         decimal.Decimal
	lines         int
	quantity      int
	unitPriceSum  decimal.Decimal
	orders        map[string]struct{}
	countries     map[string]struct{}
	lastOrderDate time.Time
}

// Aggregate partitions records by keyFn and accumulates metrics per group,
// considering only records admitted by include. Groups with no matching
// record do not appear. The scan is a single pass, deterministic, and free
// of side effects; repeated calls yield identical results.
func Aggregate[K comparable](records []SaleRecord, keyFn func(SaleRecord) K, include func(SaleRecord) bool) map[K]Metrics {
	groups := make(map[K]*accumulator)
	for _, r := range records {
		if !include(r) {
			continue
		}
		k := keyFn(r)
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{
				total:        decimal.Zero,
				unitPriceSum: decimal.Zero,
				orders:       make(map[string]struct{}),
				countries:    make(map[string]struct{}),
			}
			groups[k] = acc
		}
		acc.total = acc.total.Add(r.SalesAmount)
		acc.lines++
		acc.quantity += r.Quantity
		acc.unitPriceSum = acc.unitPriceSum.Add(r.UnitPrice)
		acc.orders[r.OrderNumber] = struct{}{}
		acc.countries[r.Country] = struct{}{}
		if r.OrderDate.After(acc.lastOrderDate) {
			acc.lastOrderDate = r.OrderDate
		}
	}

	out := make(map[K]Metrics, len(groups))
	for k, acc := range groups {
		out[k] = Metrics{
			TotalSales:        acc.total,
			OrderCount:        acc.lines,
			TotalQuantity:     acc.quantity,
			UnitPriceSum:      acc.unitPriceSum,
			DistinctOrders:    len(acc.orders),
			DistinctCountries: len(acc.countries),
			LastOrderDate:     acc.lastOrderDate,
		}
	}
	return out
}
