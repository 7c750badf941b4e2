// Package types - Booked line and aggregate types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a booked line or aggregate
type Status string

const (
	StatusPending        Status = "pending"
	StatusRequested      Status = "requested"
	StatusPhoneConfirmed Status = "phone_confirmed"
	StatusConfirmed      Status = "confirmed"
	StatusCoordinated    Status = "coordinated"
	StatusCancelled      Status = "cancelled"
)

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// ServiceInstance is a booked or quoted service line. It references a
// Service, carries its own dates and traveler roster, and stores the
// resolved (or manually overridden) cost and price amounts.
type ServiceInstance struct {
	// ID uniquely identifies the line
	ID string `json:"id"`

	// Service is the bookable service; nil is reported as "no service"
	Service *Service `json:"service,omitempty"`

	// VendorID is the provider whose catalog prices the cost side
	VendorID string `json:"vendor_id"`

	// ResellerID is the agency whose catalog prices the price side
	ResellerID string `json:"reseller_id"`

	// DateFrom is the start day of the line
	DateFrom time.Time `json:"date_from"`

	// DateTo is the end day; nil for single-day lines
	DateTo *time.Time `json:"date_to,omitempty"`

	// BookedOn is the day the line was booked, matched against rate
	// table booking windows when set
	BookedOn *time.Time `json:"booked_on,omitempty"`

	// ContractCode selects contract-specific rate tables
	ContractCode string `json:"contract_code"`

	// RoomType is the accommodation room selection
	RoomType string `json:"room_type,omitempty"`

	// BoardType is the accommodation board selection
	BoardType string `json:"board_type,omitempty"`

	// Quantity scales fixed-mode amounts; values below 1 mean 1
	Quantity int `json:"quantity"`

	// Parameter is the caller-supplied hour count for hour-parameter addons
	Parameter *decimal.Decimal `json:"parameter,omitempty"`

	// ManualCost marks the stored Cost as authoritative
	ManualCost bool `json:"manual_cost"`

	// ManualPrice marks the stored Price as authoritative
	ManualPrice bool `json:"manual_price"`

	// Cost is the stored vendor-side amount
	Cost Amount `json:"cost"`

	// Price is the stored reseller-side amount
	Price Amount `json:"price"`

	// Status is the line lifecycle state
	Status Status `json:"status"`

	// Travelers is the roster attached to the line
	Travelers []Traveler `json:"travelers,omitempty"`
}

// Span returns the line's date interval; a missing DateTo collapses
// the interval to the single DateFrom day
func (s *ServiceInstance) Span() DateRange {
	to := s.DateFrom
	if s.DateTo != nil {
		to = *s.DateTo
	}
	return NewDateRange(s.DateFrom, to)
}

// Package is an ordered collection of service lines sharing a parent
// date span
type Package struct {
	// ID uniquely identifies the package
	ID string `json:"id"`

	// Service is the package's own catalog service, used when
	// PriceByCatalog is set
	Service *Service `json:"service,omitempty"`

	// ResellerID is the agency whose catalog prices the package
	ResellerID string `json:"reseller_id"`

	// DateFrom is the package start day
	DateFrom time.Time `json:"date_from"`

	// DateTo is the package end day
	DateTo *time.Time `json:"date_to,omitempty"`

	// BookedOn is the booking day for booking-window matching
	BookedOn *time.Time `json:"booked_on,omitempty"`

	// ContractCode selects contract-specific rate tables
	ContractCode string `json:"contract_code"`

	// PriceByCatalog selects whether the package price comes from its
	// own service's rate lookup instead of summing members
	PriceByCatalog bool `json:"price_by_catalog"`

	// Members are the component service lines
	Members []*ServiceInstance `json:"members,omitempty"`

	// ManualCost marks the stored Cost as authoritative
	ManualCost bool `json:"manual_cost"`

	// ManualPrice marks the stored Price as authoritative
	ManualPrice bool `json:"manual_price"`

	// Cost is the stored cost amount
	Cost Amount `json:"cost"`

	// Price is the stored price amount
	Price Amount `json:"price"`

	// Status is the package lifecycle state
	Status Status `json:"status"`

	// Travelers is the package-level roster
	Travelers []Traveler `json:"travelers,omitempty"`
}

// Aggregate is a quote or booking whose totals, date span and status
// derive from its child service lines
type Aggregate struct {
	// ID uniquely identifies the aggregate
	ID string `json:"id"`

	// Cost is the rolled-up vendor-side total
	Cost Amount `json:"cost"`

	// Price is the rolled-up reseller-side total
	Price Amount `json:"price"`

	// DateFrom is the earliest child start day
	DateFrom *time.Time `json:"date_from,omitempty"`

	// DateTo is the latest child end day
	DateTo *time.Time `json:"date_to,omitempty"`

	// Status is the derived lifecycle state
	Status Status `json:"status"`

	// IsPackagePrice switches the price side to the per-room-size table
	IsPackagePrice bool `json:"is_package_price"`
}
