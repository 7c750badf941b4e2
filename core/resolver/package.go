package resolver

import (
	"context"
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

// ResolvePackage resolves both sides of a package.
//
// The cost side always sums the member lines. The price side either
// sums the members too, or, when the package is priced by catalog,
// resolves the package's own service against the reseller scope using
// the package-level roster. Member manual overrides apply inside the
// summation; a member without a service reference fails the sum with a
// distinct message rather than contributing zero.
func (r *Resolver) ResolvePackage(ctx context.Context, p *types.Package) (cost, price types.Resolution) {
	if p.ManualCost {
		cost = types.ResolvedAmount(p.Cost)
	} else {
		cost = r.sumMembers(ctx, p, types.SideCost)
	}

	switch {
	case p.ManualPrice:
		price = types.ResolvedAmount(p.Price)
	case p.PriceByCatalog:
		price = r.resolveCatalogPrice(ctx, p)
	default:
		price = r.sumMembers(ctx, p, types.SidePrice)
	}

	return cost, price
}

// sumMembers adds one side across all member lines with
// null-propagation: the first failed member aborts the sum.
func (r *Resolver) sumMembers(ctx context.Context, p *types.Package, side types.Side) types.Resolution {
	total := decimal.Zero
	for _, member := range p.Members {
		if member.Service == nil {
			return types.Unresolved("no service")
		}

		mCost, mPrice := r.ResolveInstance(ctx, member)
		res := mCost
		if side == types.SidePrice {
			res = mPrice
		}
		if res.Failed() {
			return res
		}
		total = total.Add(res.Amount.Decimal())
	}
	return types.Resolved(total)
}

// resolveCatalogPrice prices the package through its own service's
// reseller rate rows, one flat amount per package-level pax group.
func (r *Resolver) resolveCatalogPrice(ctx context.Context, p *types.Package) types.Resolution {
	svc := p.Service
	if svc == nil {
		return types.Unresolved("no service")
	}
	if p.ResellerID == "" {
		return types.Unresolved("no agency")
	}
	if p.DateFrom.IsZero() {
		return types.Unresolved("missing date")
	}

	comps := pax.Build(p.Travelers, svc, types.SidePrice)
	if len(comps) == 0 {
		return types.Resolved(decimal.Zero)
	}

	to := p.DateFrom
	if p.DateTo != nil {
		to = *p.DateTo
	}

	rows, err := r.catalog.Lookup(ctx, catalog.Query{
		Scope:        types.Scope{Kind: types.ScopeReseller, PartyID: p.ResellerID},
		ServiceID:    svc.ID,
		Dates:        types.NewDateRange(p.DateFrom, to),
		BookedOn:     p.BookedOn,
		ContractCode: p.ContractCode,
	})
	if err != nil {
		logging.Error("catalog lookup failed",
			zap.String("service", svc.ID),
			zap.String("package", p.ID),
			zap.Error(err))
		return types.Unresolved("catalog unavailable")
	}

	intervals := make([]types.DateRange, len(rows))
	for i, row := range rows {
		intervals[i] = row.Dates()
	}

	total := decimal.Zero
	for _, comp := range comps {
		crows := rows
		cintervals := intervals
		if svc.PaxRangeEnabled {
			crows = filterPaxRange(rows, comp.Total())
			cintervals = make([]types.DateRange, len(crows))
			for i, row := range crows {
				cintervals[i] = row.Dates()
			}
		}

		res := stitch.Cover(cintervals, p.DateFrom, p.DateFrom.AddDate(0, 0, 1), func(idx int, _, _ time.Time) types.Resolution {
			return bracket.Resolve(comp, crows[idx].Detail, svc.Mode, svc.GroupsPax)
		})
		if res.Failed() {
			return res
		}
		total = total.Add(res.Amount.Decimal())
	}

	return types.Resolved(total)
}
