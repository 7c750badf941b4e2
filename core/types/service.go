// Package types - Bookable service reference data
package types

// ServiceCategory identifies what kind of bookable service this is
type ServiceCategory string

const (
	// CategoryAccommodation is a room/board stay
	CategoryAccommodation ServiceCategory = "accommodation"

	// CategoryTransfer is a point-to-point transfer
	CategoryTransfer ServiceCategory = "transfer"

	// CategoryAddon is an additional service (excursion, guide, insurance)
	CategoryAddon ServiceCategory = "addon"

	// CategoryPackage is a composite of other service lines
	CategoryPackage ServiceCategory = "package"
)

// String returns the string representation
func (c ServiceCategory) String() string {
	return string(c)
}

// PricingMode selects how a rate row is converted into an amount
type PricingMode string

const (
	// ModeFixed bills a single amount regardless of composition
	ModeFixed PricingMode = "fixed"

	// ModeByPax bills per traveler composition
	ModeByPax PricingMode = "by_pax"
)

// ParameterType selects the multiplier applied to addon amounts
type ParameterType string

const (
	// ParamHours multiplies by a caller-supplied hour count
	ParamHours ParameterType = "hours"

	// ParamDays multiplies by the inclusive day count of the line dates
	ParamDays ParameterType = "days"

	// ParamNights multiplies by the night count of the line dates
	ParamNights ParameterType = "nights"

	// ParamStay applies the amount once per stay
	ParamStay ParameterType = "stay"
)

// AccommodationAttrs holds accommodation-specific service attributes
type AccommodationAttrs struct {
	// RoomTypes is the room taxonomy offered by this service
	RoomTypes []string `json:"room_types,omitempty"`

	// BoardTypes is the board taxonomy offered by this service
	BoardTypes []string `json:"board_types,omitempty"`
}

// TransferAttrs holds transfer-specific service attributes
type TransferAttrs struct {
	// Origin is the departure point of the route
	Origin string `json:"origin"`

	// Destination is the arrival point of the route
	Destination string `json:"destination"`
}

// AddonAttrs holds addon-specific service attributes
type AddonAttrs struct {
	// Parameter selects the amount multiplier
	Parameter ParameterType `json:"parameter"`
}

// Service is immutable bookable-service reference data. Exactly one of
// the category attribute payloads is set, matching Category.
type Service struct {
	// ID uniquely identifies the service
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Category is the service category
	Category ServiceCategory `json:"category"`

	// Mode is the pricing mode
	Mode PricingMode `json:"mode"`

	// GroupsPax prices travelers per discrete room/group instead of as
	// one pooled count
	GroupsPax bool `json:"groups_pax"`

	// PaxRangeEnabled restricts rate rows to pax-count brackets
	PaxRangeEnabled bool `json:"pax_range_enabled"`

	// ChildAgeLimit is the exclusive upper age bound for children
	ChildAgeLimit int `json:"child_age_limit"`

	// InfantAgeLimit is the exclusive upper age bound for infants,
	// who are excluded from pricing entirely
	InfantAgeLimit int `json:"infant_age_limit"`

	// Accommodation is set when Category is accommodation
	Accommodation *AccommodationAttrs `json:"accommodation,omitempty"`

	// Transfer is set when Category is transfer
	Transfer *TransferAttrs `json:"transfer,omitempty"`

	// Addon is set when Category is addon
	Addon *AddonAttrs `json:"addon,omitempty"`
}
