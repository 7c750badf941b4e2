// Package types - Traveler and pax composition types
package types

// Side selects the cost or price half of a resolution
type Side string

const (
	// SideCost is the vendor-scope half
	SideCost Side = "cost"

	// SidePrice is the reseller-scope half
	SidePrice Side = "price"
)

// Traveler is one roster entry supplied by the caller
type Traveler struct {
	// Name is informational only
	Name string `json:"name,omitempty"`

	// Age is the traveler's age; nil means adult
	Age *int `json:"age,omitempty"`

	// RoomID groups travelers into rooms for grouping services
	RoomID string `json:"room_id,omitempty"`

	// CostFree excludes the traveler from vendor-side billing
	CostFree bool `json:"cost_free,omitempty"`

	// PriceFree excludes the traveler from reseller-side billing
	PriceFree bool `json:"price_free,omitempty"`
}

// PaxComposition is one billable traveler group, derived from a roster
// and never persisted. Adults and Children are gross counts; the Free
// counts record travelers flagged free on the side being resolved and
// are subtracted before billing.
type PaxComposition struct {
	// GroupID is the room/group identifier, empty for pooled pricing
	GroupID string `json:"group_id,omitempty"`

	// Adults is the gross adult count
	Adults int `json:"adults"`

	// Children is the gross child count
	Children int `json:"children"`

	// FreeAdults is the adult count flagged free on this side
	FreeAdults int `json:"free_adults,omitempty"`

	// FreeChildren is the child count flagged free on this side
	FreeChildren int `json:"free_children,omitempty"`
}

// BillableAdults returns the adult count after free reduction
func (c PaxComposition) BillableAdults() int {
	n := c.Adults - c.FreeAdults
	if n < 0 {
		return 0
	}
	return n
}

// BillableChildren returns the child count after free reduction
func (c PaxComposition) BillableChildren() int {
	n := c.Children - c.FreeChildren
	if n < 0 {
		return 0
	}
	return n
}

// Total returns the gross pax count of the group
func (c PaxComposition) Total() int {
	return c.Adults + c.Children
}
