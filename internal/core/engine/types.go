package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is one transaction line. A single order (OrderNumber) may span
// several lines. Records are immutable once loaded; categorical labels are
// title-case normalized by the loaders so grouping is exact-match stable.
type SaleRecord struct {
	OrderNumber  string
	LineNumber   int
	OrderDate    time.Time
	Quantity     int
	UnitPrice    decimal.Decimal
	SalesAmount  decimal.Decimal
	Status       string
	Country      string
	ProductLine  string
	CustomerName string // empty when the source schema has no customer column
}

// Snapshot is the complete, immutable record set served for the lifetime of
// a load. Queries never mutate it; replacing data means building a new
// Snapshot and swapping the pointer, so in-flight queries are unaffected.
type Snapshot struct {
	version         string
	hasCustomerName bool
	records         []SaleRecord
}

// NewSnapshot wraps a loaded record set. The version is freshly generated and
// participates in result-cache keys, so a reloaded snapshot never serves
// stale cached results.
func NewSnapshot(records []SaleRecord, hasCustomerName bool) *Snapshot {
	return &Snapshot{
		version:         uuid.New().String(),
		hasCustomerName: hasCustomerName,
		records:         records,
	}
}

// Version returns the unique identifier assigned at load time.
func (s *Snapshot) Version() string { return s.version }

// HasCustomerName reports whether the source schema carried a customer
// column. Resolved once at load, not re-checked per query.
func (s *Snapshot) HasCustomerName() bool { return s.hasCustomerName }

// Len returns the total number of records, cancelled ones included.
func (s *Snapshot) Len() int { return len(s.records) }
