package api

import (
	"time"

	"github.com/shopspring/decimal"

	"tourcost/core/resolver"
	"tourcost/core/rollup"
	"tourcost/core/types"
	"tourcost/internal/errors"
)

// TravelerRequest is one roster entry
type TravelerRequest struct {
	Name      string `json:"name,omitempty"`
	Age       *int   `json:"age,omitempty"`
	Room      string `json:"room,omitempty"`
	CostFree  bool   `json:"cost_free,omitempty"`
	PriceFree bool   `json:"price_free,omitempty"`
}

// ResolveRequest asks for the cost and price of one service line
type ResolveRequest struct {
	ServiceID    string            `json:"service_id"`
	VendorID     string            `json:"vendor_id,omitempty"`
	ResellerID   string            `json:"reseller_id,omitempty"`
	DateFrom     string            `json:"date_from"`
	DateTo       string            `json:"date_to,omitempty"`
	BookedOn     string            `json:"booked_on,omitempty"`
	ContractCode string            `json:"contract_code,omitempty"`
	RoomType     string            `json:"room_type,omitempty"`
	BoardType    string            `json:"board_type,omitempty"`
	Quantity     int               `json:"quantity,omitempty"`
	Parameter    *float64          `json:"parameter,omitempty"`
	ManualCost   bool              `json:"manual_cost,omitempty"`
	ManualPrice  bool              `json:"manual_price,omitempty"`
	Cost         *float64          `json:"cost,omitempty"`
	Price        *float64          `json:"price,omitempty"`
	Travelers    []TravelerRequest `json:"travelers,omitempty"`
}

// ResolveResponse carries both resolution sides
type ResolveResponse struct {
	ServiceID string           `json:"service_id"`
	Cost      types.Resolution `json:"cost"`
	Price     types.Resolution `json:"price"`
}

// VariantsRequest asks for the 1/2/3-pax projection of one service
type VariantsRequest struct {
	ServiceID    string   `json:"service_id"`
	VendorID     string   `json:"vendor_id,omitempty"`
	ResellerID   string   `json:"reseller_id,omitempty"`
	DateFrom     string   `json:"date_from"`
	DateTo       string   `json:"date_to,omitempty"`
	BookedOn     string   `json:"booked_on,omitempty"`
	ContractCode string   `json:"contract_code,omitempty"`
	RoomType     string   `json:"room_type,omitempty"`
	BoardType    string   `json:"board_type,omitempty"`
	Parameter    *float64 `json:"parameter,omitempty"`
	PricePercent *float64 `json:"price_percent,omitempty"`
}

// VariantsResponse carries the projection table
type VariantsResponse struct {
	ServiceID string             `json:"service_id"`
	Variants  []resolver.Variant `json:"variants"`
}

// RollupChild is one child line of a rollup request
type RollupChild struct {
	Cost     *float64 `json:"cost,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to,omitempty"`
	Status   string   `json:"status"`
}

// RoomRatesRequest is the per-room-size table for package-priced rollups
type RoomRatesRequest struct {
	Single *float64 `json:"single,omitempty"`
	Double *float64 `json:"double,omitempty"`
	Triple *float64 `json:"triple,omitempty"`
}

// RollupRequest asks for recomputed aggregate fields
type RollupRequest struct {
	Children  []RollupChild     `json:"children"`
	RoomRates *RoomRatesRequest `json:"room_rates,omitempty"`
	Travelers []TravelerRequest `json:"travelers,omitempty"`
}

// RollupResponse carries the recomputed aggregate fields
type RollupResponse struct {
	Cost     types.Amount `json:"cost"`
	Price    types.Amount `json:"price"`
	DateFrom *string      `json:"date_from,omitempty"`
	DateTo   *string      `json:"date_to,omitempty"`
	Status   types.Status `json:"status"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toInstance(req *ResolveRequest, svc *types.Service) (*types.ServiceInstance, error) {
	inst := &types.ServiceInstance{
		Service:      svc,
		VendorID:     req.VendorID,
		ResellerID:   req.ResellerID,
		ContractCode: req.ContractCode,
		RoomType:     req.RoomType,
		BoardType:    req.BoardType,
		Quantity:     req.Quantity,
		ManualCost:   req.ManualCost,
		ManualPrice:  req.ManualPrice,
		Cost:         toAmount(req.Cost),
		Price:        toAmount(req.Price),
		Travelers:    toTravelers(req.Travelers),
	}

	var err error
	if inst.DateFrom, err = parseDay(req.DateFrom, true); err != nil {
		return nil, err
	}
	if inst.DateTo, err = parseOptionalDay(req.DateTo); err != nil {
		return nil, err
	}
	if inst.BookedOn, err = parseOptionalDay(req.BookedOn); err != nil {
		return nil, err
	}
	if req.Parameter != nil {
		p := decimal.NewFromFloat(*req.Parameter)
		inst.Parameter = &p
	}
	return inst, nil
}

func toVariantRequest(req *VariantsRequest, svc *types.Service) (resolver.VariantRequest, error) {
	out := resolver.VariantRequest{
		Service:      svc,
		VendorID:     req.VendorID,
		ResellerID:   req.ResellerID,
		ContractCode: req.ContractCode,
		RoomType:     req.RoomType,
		BoardType:    req.BoardType,
	}

	var err error
	if out.DateFrom, err = parseDay(req.DateFrom, true); err != nil {
		return out, err
	}
	if out.DateTo, err = parseOptionalDay(req.DateTo); err != nil {
		return out, err
	}
	if out.BookedOn, err = parseOptionalDay(req.BookedOn); err != nil {
		return out, err
	}
	if req.Parameter != nil {
		p := decimal.NewFromFloat(*req.Parameter)
		out.Parameter = &p
	}
	if req.PricePercent != nil {
		p := decimal.NewFromFloat(*req.PricePercent)
		out.PricePercent = &p
	}
	return out, nil
}

func toRollupChildren(reqs []RollupChild) ([]rollup.Child, error) {
	children := make([]rollup.Child, 0, len(reqs))
	for _, r := range reqs {
		child := rollup.Child{
			Cost:   toAmount(r.Cost),
			Price:  toAmount(r.Price),
			Status: types.Status(r.Status),
		}
		var err error
		if child.DateFrom, err = parseDay(r.DateFrom, true); err != nil {
			return nil, err
		}
		if child.DateTo, err = parseOptionalDay(r.DateTo); err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func toRoomRates(req *RoomRatesRequest) rollup.RoomRates {
	return rollup.RoomRates{
		Single: toAmount(req.Single),
		Double: toAmount(req.Double),
		Triple: toAmount(req.Triple),
	}
}

func toRollupResponse(res rollup.Result) RollupResponse {
	out := RollupResponse{
		Cost:   res.Cost,
		Price:  res.Price,
		Status: res.Status,
	}
	if res.DateFrom != nil {
		s := types.FormatDate(*res.DateFrom)
		out.DateFrom = &s
	}
	if res.DateTo != nil {
		s := types.FormatDate(*res.DateTo)
		out.DateTo = &s
	}
	return out
}

func toTravelers(reqs []TravelerRequest) []types.Traveler {
	travelers := make([]types.Traveler, 0, len(reqs))
	for _, r := range reqs {
		travelers = append(travelers, types.Traveler{
			Name:      r.Name,
			Age:       r.Age,
			RoomID:    r.Room,
			CostFree:  r.CostFree,
			PriceFree: r.PriceFree,
		})
	}
	return travelers
}

func toAmount(v *float64) types.Amount {
	if v == nil {
		return types.NoAmount()
	}
	return types.AmountFromFloat(*v)
}

func parseDay(s string, required bool) (time.Time, error) {
	if s == "" {
		if required {
			return time.Time{}, errors.MissingInput("date_from")
		}
		return time.Time{}, nil
	}
	day, err := types.ParseDate(s)
	if err != nil {
		return time.Time{}, errors.Parsing("invalid date "+s, err)
	}
	return day, nil
}

func parseOptionalDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	day, err := types.ParseDate(s)
	if err != nil {
		return nil, errors.Parsing("invalid date "+s, err)
	}
	return &day, nil
}
