// Package resolver orchestrates catalog lookup, interval stitching and
// bracket pricing into per-line cost and price amounts.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tourcost/core/bracket"
	"tourcost/core/catalog"
	"tourcost/core/pax"
	"tourcost/core/stitch"
	"tourcost/core/types"
	"tourcost/internal/logging"
)

// Resolver resolves service line amounts against a rate catalog
type Resolver struct {
	catalog catalog.Reader
}

// New creates a resolver over a catalog reader
func New(reader catalog.Reader) *Resolver {
	return &Resolver{catalog: reader}
}

// ResolveInstance resolves both sides of a service line. The cost side
// searches the vendor scope, the price side the reseller scope; the
// two sides fail independently. A manual flag makes the stored amount
// authoritative and skips resolution for that side.
func (r *Resolver) ResolveInstance(ctx context.Context, inst *types.ServiceInstance) (cost, price types.Resolution) {
	if inst.Service == nil {
		noService := types.Unresolved("no service")
		return noService, noService
	}

	if inst.ManualCost {
		cost = types.ResolvedAmount(inst.Cost)
	} else {
		cost = r.resolveSide(ctx, inst, types.SideCost)
	}

	if inst.ManualPrice {
		price = types.ResolvedAmount(inst.Price)
	} else {
		price = r.resolveSide(ctx, inst, types.SidePrice)
	}

	return cost, price
}

// resolveSide resolves one side of a line: input validation, roster
// grouping, catalog lookup, then one stitched pass per pax group.
func (r *Resolver) resolveSide(ctx context.Context, inst *types.ServiceInstance, side types.Side) types.Resolution {
	svc := inst.Service

	scope, res := sideScope(inst, side)
	if res != nil {
		return *res
	}
	if res := validateInputs(inst); res != nil {
		return *res
	}

	comps := pax.Build(inst.Travelers, svc, side)
	if len(comps) == 0 {
		return types.Resolved(decimal.Zero)
	}

	rows, err := r.catalog.Lookup(ctx, catalog.Query{
		Scope:        scope,
		ServiceID:    svc.ID,
		Dates:        inst.Span(),
		BookedOn:     inst.BookedOn,
		ContractCode: inst.ContractCode,
	})
	if err != nil {
		logging.Error("catalog lookup failed",
			zap.String("service", svc.ID),
			zap.String("side", string(side)),
			zap.Error(err))
		return types.Unresolved("catalog unavailable")
	}

	rows = filterCategory(rows, inst)

	total := decimal.Zero
	for _, comp := range comps {
		crows := rows
		if svc.PaxRangeEnabled {
			crows = filterPaxRange(rows, comp.Total())
		}
		res := r.stitchComposition(inst, crows, comp)
		if res.Failed() {
			return res
		}
		total = total.Add(res.Amount.Decimal())
	}

	if svc.Mode == types.ModeFixed && inst.Quantity > 1 {
		total = total.Mul(decimal.NewFromInt(int64(inst.Quantity)))
	}

	return types.Resolved(total)
}

// stitchComposition covers the line's span for one pax group. The
// billed span and the per-candidate amount depend on the category:
// accommodations bill per night across the whole stay, transfers and
// addons bill once on the start day.
func (r *Resolver) stitchComposition(inst *types.ServiceInstance, rows []catalog.Row, comp types.PaxComposition) types.Resolution {
	svc := inst.Service

	intervals := make([]types.DateRange, len(rows))
	for i, row := range rows {
		intervals[i] = row.Dates()
	}

	switch svc.Category {
	case types.CategoryAccommodation:
		return stitch.Cover(intervals, inst.DateFrom, *inst.DateTo, func(idx int, from, to time.Time) types.Resolution {
			res := bracket.Resolve(comp, rows[idx].Detail, svc.Mode, svc.GroupsPax)
			if res.Failed() {
				return res
			}
			nights := decimal.NewFromInt(int64(types.DaysBetween(from, to)))
			return types.Resolved(res.Amount.Decimal().Mul(nights))
		})

	case types.CategoryTransfer:
		return stitch.Cover(intervals, inst.DateFrom, inst.DateFrom.AddDate(0, 0, 1), func(idx int, _, _ time.Time) types.Resolution {
			return bracket.Resolve(comp, rows[idx].Detail, svc.Mode, svc.GroupsPax)
		})

	case types.CategoryAddon:
		mult := addonMultiplier(inst)
		return stitch.Cover(intervals, inst.DateFrom, inst.DateFrom.AddDate(0, 0, 1), func(idx int, _, _ time.Time) types.Resolution {
			res := bracket.Resolve(comp, rows[idx].Detail, svc.Mode, svc.GroupsPax)
			if res.Failed() {
				return res
			}
			return types.Resolved(res.Amount.Decimal().Mul(mult))
		})

	default:
		return types.Unresolved(fmt.Sprintf("unknown service category %q", svc.Category))
	}
}

// sideScope returns the catalog scope for a side, or the missing-party
// failure when the line has no vendor/reseller
func sideScope(inst *types.ServiceInstance, side types.Side) (types.Scope, *types.Resolution) {
	if side == types.SideCost {
		if inst.VendorID == "" {
			res := types.Unresolved("no provider")
			return types.Scope{}, &res
		}
		return types.Scope{Kind: types.ScopeVendor, PartyID: inst.VendorID}, nil
	}
	if inst.ResellerID == "" {
		res := types.Unresolved("no agency")
		return types.Scope{}, &res
	}
	return types.Scope{Kind: types.ScopeReseller, PartyID: inst.ResellerID}, nil
}

// validateInputs checks the category-specific required inputs. Date
// and parameter requirements fail here, before any catalog lookup.
func validateInputs(inst *types.ServiceInstance) *types.Resolution {
	svc := inst.Service

	if inst.DateFrom.IsZero() {
		return unresolved("missing date")
	}

	switch svc.Category {
	case types.CategoryAccommodation:
		if inst.RoomType == "" {
			return unresolved("missing room")
		}
		if inst.BoardType == "" {
			return unresolved("missing board")
		}
		if inst.DateTo == nil {
			return unresolved("missing end date")
		}

	case types.CategoryTransfer:
		if svc.Transfer == nil || svc.Transfer.Origin == "" || svc.Transfer.Destination == "" {
			return unresolved("missing route")
		}

	case types.CategoryAddon:
		if svc.Addon == nil {
			return unresolved("missing parameter type")
		}
		switch svc.Addon.Parameter {
		case types.ParamHours:
			if inst.Parameter == nil {
				return unresolved("missing parameter")
			}
		case types.ParamDays, types.ParamNights:
			if inst.DateTo == nil {
				return unresolved("missing end date")
			}
		}

	default:
		return unresolved(fmt.Sprintf("unknown service category %q", svc.Category))
	}

	return nil
}

// addonMultiplier returns the amount multiplier for an addon line.
// Requirements are validated before lookup, so missing inputs cannot
// reach this point.
func addonMultiplier(inst *types.ServiceInstance) decimal.Decimal {
	switch inst.Service.Addon.Parameter {
	case types.ParamHours:
		return *inst.Parameter
	case types.ParamDays:
		return decimal.NewFromInt(int64(inst.Span().Days()))
	case types.ParamNights:
		return decimal.NewFromInt(int64(inst.Span().Nights()))
	default: // stay
		return decimal.NewFromInt(1)
	}
}

// filterCategory keeps rows whose match keys fit the line
func filterCategory(rows []catalog.Row, inst *types.ServiceInstance) []catalog.Row {
	switch inst.Service.Category {
	case types.CategoryAccommodation:
		return filterRows(rows, func(d *types.RateDetail) bool {
			return d.RoomType == inst.RoomType && d.BoardType == inst.BoardType
		})

	case types.CategoryTransfer:
		return filterTransfer(rows, inst.Service.Transfer)

	case types.CategoryAddon:
		return filterRows(rows, func(d *types.RateDetail) bool {
			return d.AddonID == "" || d.AddonID == inst.Service.ID
		})
	}
	return rows
}

// filterTransfer keeps rows matching the route. When no row matches
// the requested direction the symmetric route is tried once, skipping
// rows marked not reversible.
func filterTransfer(rows []catalog.Row, route *types.TransferAttrs) []catalog.Row {
	direct := filterRows(rows, func(d *types.RateDetail) bool {
		return d.Origin == route.Origin && d.Destination == route.Destination
	})
	if len(direct) > 0 {
		return direct
	}
	return filterRows(rows, func(d *types.RateDetail) bool {
		return d.Origin == route.Destination && d.Destination == route.Origin && !d.NotReversible
	})
}

// filterPaxRange keeps rows without a bracket or whose bracket matches
// the group's pax count
func filterPaxRange(rows []catalog.Row, paxCount int) []catalog.Row {
	return filterRows(rows, func(d *types.RateDetail) bool {
		return d.PaxRange == nil || d.PaxRange.Matches(paxCount)
	})
}

func filterRows(rows []catalog.Row, keep func(*types.RateDetail) bool) []catalog.Row {
	var out []catalog.Row
	for _, row := range rows {
		if keep(row.Detail) {
			out = append(out, row)
		}
	}
	return out
}

func unresolved(msg string) *types.Resolution {
	res := types.Unresolved(msg)
	return &res
}
