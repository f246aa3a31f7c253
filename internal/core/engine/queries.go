package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopCustomersLimit applies when a caller does not specify one.
const DefaultTopCustomersLimit = 10

// PeriodSales is one bucket of a sales-over-time query. Only the fields
// matching the requested granularity are populated.
type PeriodSales struct {
	Date       string          `json:"date,omitempty"`
	Year       int             `json:"year,omitempty"`
	Quarter    int             `json:"quarter,omitempty"`
	Month      int             `json:"month,omitempty"`
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
}

// CategorySales is one product-line row of a sales-by-category query.
type CategorySales struct {
	Category      string          `json:"category"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	OrderCount    int             `json:"order_count"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	TotalQuantity int             `json:"total_quantity"`
}

// CountrySales is one country row of a sales-by-country query.
type CountrySales struct {
	Country            string          `json:"country"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	OrderCount         int             `json:"order_count"`
	AvgOrderValue      decimal.Decimal `json:"avg_order_value"`
	DistinctOrderCount int             `json:"distinct_order_count"`
}

// CustomerSales is one row of a top-customers query. Customer holds the
// customer name, or the country when the schema has no customer column.
type CustomerSales struct {
	Customer      string          `json:"customer"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalOrders   int             `json:"total_orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	LastOrderDate string          `json:"last_order_date"`
}

// MonthlyTrend is one (year, month) row of a monthly-trends query.
type MonthlyTrend struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	DistinctOrderCount int             `json:"distinct_order_count"`
	AvgOrderValue      decimal.Decimal `json:"avg_order_value"`
	TotalQuantity      int             `json:"total_quantity"`
}

// QuarterlySales is one (year, quarter) row of a quarterly-analysis query.
type QuarterlySales struct {
	Year                 int             `json:"year"`
	Quarter              int             `json:"quarter"`
	TotalSales           decimal.Decimal `json:"total_sales"`
	DistinctOrderCount   int             `json:"distinct_order_count"`
	AvgOrderValue        decimal.Decimal `json:"avg_order_value"`
	DistinctCountryCount int             `json:"distinct_country_count"`
}

// ProductPerformance is one product-line row of the performance report.
type ProductPerformance struct {
	ProductLine          string          `json:"product_line"`
	TotalSales           decimal.Decimal `json:"total_sales"`
	TotalQuantity        int             `json:"total_quantity"`
	AvgUnitPrice         decimal.Decimal `json:"avg_unit_price"`
	DistinctOrderCount   int             `json:"distinct_order_count"`
	DistinctCountryCount int             `json:"distinct_country_count"`
}

// SalesOverTime buckets active sales by the requested granularity and
// returns rows in chronological order.
func SalesOverTime(s *Snapshot, g Granularity) []PeriodSales {
	groups := Aggregate(s.records, func(r SaleRecord) Period {
		return PeriodOf(r.OrderDate, g)
	}, Active)

	rows := make([]PeriodSales, 0, len(groups))
	for p, m := range groups {
		rows = append(rows, PeriodSales{
			Date:       p.Date,
			Year:       p.Year,
			Quarter:    p.Quarter,
			Month:      p.Month,
			TotalSales: m.TotalSales.Round(2),
			OrderCount: m.OrderCount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return periodOfRow(rows[i]).Before(periodOfRow(rows[j]))
	})
	return rows
}

func periodOfRow(r PeriodSales) Period {
	return Period{Year: r.Year, Quarter: r.Quarter, Month: r.Month, Date: r.Date}
}

// SalesByCategory aggregates active sales per product line, ordered by
// total sales descending.
func SalesByCategory(s *Snapshot) []CategorySales {
	groups := Aggregate(s.records, func(r SaleRecord) string { return r.ProductLine }, Active)

	rows := make([]CategorySales, 0, len(groups))
	for category, m := range groups {
		rows = append(rows, CategorySales{
			Category:      category,
			TotalSales:    m.TotalSales.Round(2),
			OrderCount:    m.OrderCount,
			AvgOrderValue: m.AvgOrderValue().Round(2),
			TotalQuantity: m.TotalQuantity,
		})
	}
	rows, _ = TopN(rows,
		func(r CategorySales) decimal.Decimal { return r.TotalSales },
		func(r CategorySales) string { return r.Category },
		len(rows))
	return rows
}

// SalesByCountry aggregates active sales per country, ordered by total
// sales descending.
func SalesByCountry(s *Snapshot) []CountrySales {
	groups := Aggregate(s.records, func(r SaleRecord) string { return r.Country }, Active)

	rows := make([]CountrySales, 0, len(groups))
	for country, m := range groups {
		rows = append(rows, CountrySales{
			Country:            country,
			TotalSales:         m.TotalSales.Round(2),
			OrderCount:         m.OrderCount,
			AvgOrderValue:      m.AvgOrderValue().Round(2),
			DistinctOrderCount: m.DistinctOrders,
		})
	}
	rows, _ = TopN(rows,
		func(r CountrySales) decimal.Decimal { return r.TotalSales },
		func(r CountrySales) string { return r.Country },
		len(rows))
	return rows
}

// TopCustomers ranks customers by total active sales and truncates to limit.
// The second return value is the number of rows actually returned. A
// non-positive limit yields an empty result, not an error.
func TopCustomers(s *Snapshot, limit int) ([]CustomerSales, int) {
	groups := Aggregate(s.records, s.CustomerKey, Active)

	rows := make([]CustomerSales, 0, len(groups))
	for customer, m := range groups {
		last := ""
		if !m.LastOrderDate.IsZero() {
			last = m.LastOrderDate.Format("2006-01-02")
		}
		rows = append(rows, CustomerSales{
			Customer:      customer,
			TotalSales:    m.TotalSales.Round(2),
			TotalOrders:   m.DistinctOrders,
			AvgOrderValue: m.AvgOrderValue().Round(2),
			LastOrderDate: last,
		})
	}
	return TopN(rows,
		func(r CustomerSales) decimal.Decimal { return r.TotalSales },
		func(r CustomerSales) string { return r.Customer },
		limit)
}

// MonthlyTrends aggregates active sales per (year, month) in chronological
// order.
func MonthlyTrends(s *Snapshot) []MonthlyTrend {
	groups := Aggregate(s.records, func(r SaleRecord) Period {
		return PeriodOf(r.OrderDate, GranularityMonth)
	}, Active)

	rows := make([]MonthlyTrend, 0, len(groups))
	for p, m := range groups {
		rows = append(rows, MonthlyTrend{
			Year:               p.Year,
			Month:              p.Month,
			TotalSales:         m.TotalSales.Round(2),
			DistinctOrderCount: m.DistinctOrders,
			AvgOrderValue:      m.AvgOrderValue().Round(2),
			TotalQuantity:      m.TotalQuantity,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

// QuarterlyAnalysis aggregates active sales per (year, quarter) in
// chronological order.
func QuarterlyAnalysis(s *Snapshot) []QuarterlySales {
	groups := Aggregate(s.records, func(r SaleRecord) Period {
		return PeriodOf(r.OrderDate, GranularityQuarter)
	}, Active)

	rows := make([]QuarterlySales, 0, len(groups))
	for p, m := range groups {
		rows = append(rows, QuarterlySales{
			Year:                 p.Year,
			Quarter:              p.Quarter,
			TotalSales:           m.TotalSales.Round(2),
			DistinctOrderCount:   m.DistinctOrders,
			AvgOrderValue:        m.AvgOrderValue().Round(2),
			DistinctCountryCount: m.DistinctCountries,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Quarter < rows[j].Quarter
	})
	return rows
}

// ProductLinePerformance reports per-product-line volume and pricing,
// ordered by total sales descending.
func ProductLinePerformance(s *Snapshot) []ProductPerformance {
	groups := Aggregate(s.records, func(r SaleRecord) string { return r.ProductLine }, Active)

	rows := make([]ProductPerformance, 0, len(groups))
	for line, m := range groups {
		rows = append(rows, ProductPerformance{
			ProductLine:          line,
			TotalSales:           m.TotalSales.Round(2),
			TotalQuantity:        m.TotalQuantity,
			AvgUnitPrice:         m.AvgUnitPrice().Round(2),
			DistinctOrderCount:   m.DistinctOrders,
			DistinctCountryCount: m.DistinctCountries,
		})
	}
	rows, _ = TopN(rows,
		func(r ProductPerformance) decimal.Decimal { return r.TotalSales },
		func(r ProductPerformance) string { return r.ProductLine },
		len(rows))
	return rows
}
