package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/salescope-lab/salescope/internal/core/engine"
	"github.com/salescope-lab/salescope/internal/store"
	"github.com/shopspring/decimal"
)

// Order dates appear in several source formats; the first layout that
// parses wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Loader builds a snapshot from a flat CSV export. Rows with missing or
// invalid values are dropped, exact duplicate rows are removed, and
// categorical labels are title-case normalized, mirroring the upstream
// cleaning pipeline.
type Loader struct {
	path    string
	mapping ColumnMapping
}

// NewLoader creates a loader for the given file and column mapping.
func NewLoader(path string, mapping ColumnMapping) *Loader {
	return &Loader{path: path, mapping: mapping}
}

// columnIndex resolves mapped headers to CSV column positions. A required
// header that is absent means the dataset cannot serve any query.
type columnIndex struct {
	orderNumber  int
	lineNumber   int
	orderDate    int
	quantity     int
	unitPrice    int
	salesAmount  int
	status       int
	country      int
	productLine  int
	customerName int // -1 when the schema has no customer column
}

// LoadSnapshot reads and validates the whole file. The customer column is
// probed here, once: query-time code only sees the resolved schema flag.
func (l *Loader) LoadSnapshot(ctx context.Context) (*engine.Snapshot, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	idx, err := l.resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		records []engine.SaleRecord
		seen    = make(map[string]struct{})
		dropped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		seen[key] = struct{}{}

		rec, ok := parseRow(row, idx)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	slog.Info("Loaded CSV snapshot",
		"path", l.path,
		"records", len(records),
		"dropped", dropped,
		"has_customer_name", idx.customerName >= 0,
	)

	return engine.NewSnapshot(records, idx.customerName >= 0), nil
}

func (l *Loader) resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	required := func(name string) (int, error) {
		i, ok := pos[strings.ToUpper(name)]
		if !ok {
			return 0, fmt.Errorf("column %q: %w", name, store.ErrSchemaMismatch)
		}
		return i, nil
	}
	optional := func(name string) int {
		if name == "" {
			return -1
		}
		i, ok := pos[strings.ToUpper(name)]
		if !ok {
			return -1
		}
		return i
	}

	var (
		idx columnIndex
		err error
	)
	if idx.orderNumber, err = required(l.mapping.OrderNumber); err != nil {
		return idx, err
	}
	if idx.orderDate, err = required(l.mapping.OrderDate); err != nil {
		return idx, err
	}
	if idx.quantity, err = required(l.mapping.Quantity); err != nil {
		return idx, err
	}
	if idx.unitPrice, err = required(l.mapping.UnitPrice); err != nil {
		return idx, err
	}
	if idx.salesAmount, err = required(l.mapping.SalesAmount); err != nil {
		return idx, err
	}
	if idx.status, err = required(l.mapping.Status); err != nil {
		return idx, err
	}
	if idx.country, err = required(l.mapping.Country); err != nil {
		return idx, err
	}
	if idx.productLine, err = required(l.mapping.ProductLine); err != nil {
		return idx, err
	}
	idx.lineNumber = optional(l.mapping.LineNumber)
	idx.customerName = optional(l.mapping.CustomerName)
	return idx, nil
}

// parseRow converts one CSV row into a typed record. Returns false for rows
// that violate the record invariants (blank values, malformed numbers or
// dates, negative quantity or amount).
func parseRow(row []string, idx columnIndex) (engine.SaleRecord, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	orderNumber := field(idx.orderNumber)
	status := field(idx.status)
	country := field(idx.country)
	productLine := field(idx.productLine)
	if orderNumber == "" || status == "" || country == "" || productLine == "" {
		return engine.SaleRecord{}, false
	}

	orderDate, ok := parseDate(field(idx.orderDate))
	if !ok {
		return engine.SaleRecord{}, false
	}

	quantity, err := strconv.Atoi(field(idx.quantity))
	if err != nil || quantity < 0 {
		return engine.SaleRecord{}, false
	}

	unitPrice, err := decimal.NewFromString(field(idx.unitPrice))
	if err != nil || unitPrice.IsNegative() {
		return engine.SaleRecord{}, false
	}

	salesAmount, err := decimal.NewFromString(field(idx.salesAmount))
	if err != nil || salesAmount.IsNegative() {
		return engine.SaleRecord{}, false
	}

	lineNumber := 0
	if raw := field(idx.lineNumber); raw != "" {
		if lineNumber, err = strconv.Atoi(raw); err != nil {
			return engine.SaleRecord{}, false
		}
	}

	return engine.SaleRecord{
		OrderNumber:  orderNumber,
		LineNumber:   lineNumber,
		OrderDate:    orderDate,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		SalesAmount:  salesAmount,
		Status:       store.TitleCase(status),
		Country:      store.TitleCase(country),
		ProductLine:  store.TitleCase(productLine),
		CustomerName: store.TitleCase(field(idx.customerName)),
	}, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
