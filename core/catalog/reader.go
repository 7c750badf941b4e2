// Package catalog provides the rate catalog read interface.
// This package answers "which rate rows could price this service over
// this date span" — match-key and bracket filtering stay with the
// resolver.
package catalog

import (
	"context"
	"sort"
	"time"

	"tourcost/core/types"
)

// Query describes one catalog lookup
type Query struct {
	// Scope is the vendor or reseller side being searched
	Scope types.Scope

	// ServiceID is the service whose tables are searched
	ServiceID string

	// Dates is the requested closed date span
	Dates types.DateRange

	// BookedOn optionally filters tables by booking window
	BookedOn *time.Time

	// ContractCode is matched exactly; empty string is the
	// no-contract default, never a wildcard
	ContractCode string
}

// Row is a rate detail annotated with its owning table's interval
type Row struct {
	// Detail is the rate row
	Detail *types.RateDetail

	// Table is the owning rate table
	Table *types.RateTable
}

// Dates returns the owning table's validity interval
func (r Row) Dates() types.DateRange {
	return r.Table.Dates
}

// Reader looks up rate rows for a catalog scope. An empty result is a
// valid answer meaning "no coverage"; errors are reserved for
// infrastructure faults.
type Reader interface {
	Lookup(ctx context.Context, q Query) ([]Row, error)
}

// matches applies the table-level filters of a query
func matches(t *types.RateTable, q Query) bool {
	if t.Scope != q.Scope || t.ServiceID != q.ServiceID {
		return false
	}
	if t.Dates.Empty() || !t.Dates.Intersects(q.Dates) {
		return false
	}
	if t.ContractCode != q.ContractCode {
		return false
	}
	if q.BookedOn != nil && t.BookingWindow != nil && !t.BookingWindow.Contains(*q.BookedOn) {
		return false
	}
	return true
}

// sortRows orders rows ascending by table start, then descending by
// table end, so the row that starts earliest and covers the most
// comes first
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].Dates(), rows[j].Dates()
		if !di.From.Equal(dj.From) {
			return di.From.Before(dj.From)
		}
		return di.To.After(dj.To)
	})
}
