// Package types - Rate catalog types
package types

import "time"

// ScopeKind identifies which side of a rate table this is
type ScopeKind string

const (
	// ScopeVendor is the provider (cost) side of the catalog
	ScopeVendor ScopeKind = "vendor"

	// ScopeReseller is the agency (price) side of the catalog
	ScopeReseller ScopeKind = "reseller"
)

// Scope identifies a catalog scope: the vendor or reseller a rate
// table belongs to
type Scope struct {
	// Kind is the scope side
	Kind ScopeKind `json:"kind"`

	// PartyID identifies the vendor or reseller
	PartyID string `json:"party_id"`
}

// BookingWindow restricts a rate table to bookings made inside a
// closed date interval
type BookingWindow struct {
	// From is the first valid booking day
	From time.Time `json:"from"`

	// To is the last valid booking day
	To time.Time `json:"to"`
}

// Contains reports whether a booking day falls inside the window
func (w BookingWindow) Contains(day time.Time) bool {
	d := ToDay(day)
	return !d.Before(ToDay(w.From)) && !d.After(ToDay(w.To))
}

// PaxRange is a pax-count bracket. Zero on either side means
// unbounded on that side.
type PaxRange struct {
	// Min is the inclusive lower bound, 0 for unbounded
	Min int `json:"min"`

	// Max is the inclusive upper bound, 0 for unbounded
	Max int `json:"max"`
}

// Matches reports whether a pax count falls inside the bracket
func (r PaxRange) Matches(pax int) bool {
	if r.Min > 0 && pax < r.Min {
		return false
	}
	if r.Max > 0 && pax > r.Max {
		return false
	}
	return true
}

// RateTable is a date-limited rate catalog record owned by a vendor or
// reseller scope
type RateTable struct {
	// ID uniquely identifies the table
	ID string `json:"id"`

	// Scope is the owning catalog scope
	Scope Scope `json:"scope"`

	// ServiceID is the service this table prices
	ServiceID string `json:"service_id"`

	// Dates is the closed validity interval; must be non-empty
	Dates DateRange `json:"dates"`

	// BookingWindow optionally restricts when bookings may use this table
	BookingWindow *BookingWindow `json:"booking_window,omitempty"`

	// ContractCode selects a contract; empty string is the default
	// no-contract value and matching is always exact, never wildcard
	ContractCode string `json:"contract_code"`

	// Details are the rate rows owned by this table
	Details []*RateDetail `json:"details,omitempty"`
}

// RateDetail is one rate row inside a RateTable. It carries the
// category-specific match keys and the amount cells.
type RateDetail struct {
	// ID uniquely identifies the row
	ID string `json:"id"`

	// RoomType is the accommodation room match key
	RoomType string `json:"room_type,omitempty"`

	// BoardType is the accommodation board match key
	BoardType string `json:"board_type,omitempty"`

	// Origin is the transfer route departure match key
	Origin string `json:"origin,omitempty"`

	// Destination is the transfer route arrival match key
	Destination string `json:"destination,omitempty"`

	// NotReversible blocks this row from pricing the symmetric route
	NotReversible bool `json:"not_reversible,omitempty"`

	// AddonID is the addon match key
	AddonID string `json:"addon_id,omitempty"`

	// PaxRange optionally restricts the row to a pax-count bracket
	PaxRange *PaxRange `json:"pax_range,omitempty"`

	// AdultAmounts holds the ad_1..ad_4 cells; AdultAmounts[i] prices
	// i+1 adults
	AdultAmounts [4]Amount `json:"adult_amounts"`

	// ChildAmounts holds the ch_{1..3}_ad_{0..4} cells;
	// ChildAmounts[c][a] prices c+1 children traveling with a adults
	ChildAmounts [3][5]Amount `json:"child_amounts"`

	// ChildDiscountPercent is the fallback child discount applied to
	// the single-adult amount when no child cell is present
	ChildDiscountPercent Amount `json:"child_discount_percent"`
}

// AdultAmount returns the cell for n adults (1..4), unknown outside
// that range or when the cell is empty
func (d *RateDetail) AdultAmount(n int) Amount {
	if n < 1 || n > len(d.AdultAmounts) {
		return NoAmount()
	}
	return d.AdultAmounts[n-1]
}

// ChildAmount returns the cell for children (1..3) traveling with
// adults (0..4), unknown outside those ranges or when the cell is empty
func (d *RateDetail) ChildAmount(children, adults int) Amount {
	if children < 1 || children > len(d.ChildAmounts) {
		return NoAmount()
	}
	if adults < 0 || adults >= len(d.ChildAmounts[children-1]) {
		return NoAmount()
	}
	return d.ChildAmounts[children-1][adults]
}
