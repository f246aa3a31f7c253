package engine

// StatusCancelled is the canonical label for cancelled transactions after
// title-case normalization. Every aggregation except the status distribution
// excludes these records.
const StatusCancelled = "Cancelled"

// Active reports whether a record participates in business metrics.
func Active(r SaleRecord) bool { return r.Status != StatusCancelled }

// AllRecords admits every record. Used by the status distribution and the
// countries-served count, which deliberately see cancelled records too.
func AllRecords(SaleRecord) bool { return true }

// CustomerKey returns the grouping value for customer-level analysis:
// the customer name when the source schema has one, otherwise the country
// as a geographic stand-in. Result rows are labeled "customer" either way,
// so callers never need to know which attribute was used.
func (s *Snapshot) CustomerKey(r SaleRecord) string {
	if s.hasCustomerName {
		return r.CustomerName
	}
	return r.Country
}
