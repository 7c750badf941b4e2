package resolver

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tourcost/core/types"
)

// variantCounts are the representative pax counts used for quoting
// comparison tables
var variantCounts = []int{1, 2, 3}

// roundingBias implements the legacy ceiling rounding
// round(0.499999 + x) applied to price-side projections
var roundingBias = decimal.NewFromFloat(0.499999)

// VariantRequest describes a projection run: one service resolved at
// several synthetic pax counts
type VariantRequest struct {
	// Service is the service to project
	Service *types.Service

	// VendorID prices the cost side
	VendorID string

	// ResellerID prices the price side when no markup percent is given
	ResellerID string

	// DateFrom is the projection start day
	DateFrom time.Time

	// DateTo is the projection end day
	DateTo *time.Time

	// BookedOn optionally matches booking windows
	BookedOn *time.Time

	// ContractCode selects contract-specific rate tables
	ContractCode string

	// RoomType selects the accommodation room
	RoomType string

	// BoardType selects the accommodation board
	BoardType string

	// Parameter is the hour count for hour-parameter addons
	Parameter *decimal.Decimal

	// PricePercent, when set, derives the price from the cost by
	// percent markup instead of a reseller catalog lookup
	PricePercent *decimal.Decimal
}

// Variant is one projected pax count with its normalized amounts
type Variant struct {
	// Pax is the synthetic adult count
	Pax int `json:"pax"`

	// Cost is the per-pax cost, rounded to 2 decimals
	Cost types.Resolution `json:"cost"`

	// Price is the per-pax price, ceiling-rounded to a whole amount
	Price types.Resolution `json:"price"`
}

// ProjectVariants resolves the service at 1, 2 and 3 adults in a
// single synthetic group. Grouping services report per-pax figures by
// dividing the group amount by the count used internally.
func (r *Resolver) ProjectVariants(ctx context.Context, req VariantRequest) []Variant {
	out := make([]Variant, 0, len(variantCounts))
	for _, n := range variantCounts {
		out = append(out, r.projectVariant(ctx, req, n))
	}
	return out
}

func (r *Resolver) projectVariant(ctx context.Context, req VariantRequest, n int) Variant {
	inst := &types.ServiceInstance{
		Service:      req.Service,
		VendorID:     req.VendorID,
		ResellerID:   req.ResellerID,
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
		BookedOn:     req.BookedOn,
		ContractCode: req.ContractCode,
		RoomType:     req.RoomType,
		BoardType:    req.BoardType,
		Parameter:    req.Parameter,
		Travelers:    syntheticRoster(n),
	}

	v := Variant{Pax: n}

	cost := r.resolveSide(ctx, inst, types.SideCost)
	costRaw := cost.Amount
	if req.Service.GroupsPax {
		costRaw = costRaw.Div(decimal.NewFromInt(int64(n)))
	}
	if cost.Failed() {
		v.Cost = cost
	} else {
		v.Cost = types.Resolved(costRaw.Decimal().Round(2))
	}

	if req.PricePercent != nil {
		if cost.Failed() {
			v.Price = types.Unresolved(cost.Message)
		} else {
			markup := decimal.NewFromInt(1).Add(req.PricePercent.Div(decimal.NewFromInt(100)))
			v.Price = types.Resolved(ceilRound(costRaw.Decimal().Mul(markup)))
		}
		return v
	}

	price := r.resolveSide(ctx, inst, types.SidePrice)
	if price.Failed() {
		v.Price = price
		return v
	}
	priceRaw := price.Amount
	if req.Service.GroupsPax {
		priceRaw = priceRaw.Div(decimal.NewFromInt(int64(n)))
	}
	v.Price = types.Resolved(ceilRound(priceRaw.Decimal()))
	return v
}

// syntheticRoster builds n adults sharing one group
func syntheticRoster(n int) []types.Traveler {
	roster := make([]types.Traveler, n)
	for i := range roster {
		roster[i] = types.Traveler{RoomID: "projection"}
	}
	return roster
}

func ceilRound(d decimal.Decimal) decimal.Decimal {
	return d.Add(roundingBias).Round(0)
}
