// Package bracket converts a pax composition plus one rate row into a
// money amount, per pricing mode.
//
// Rate rows carry up to 19 amount cells: ad_1..ad_4 for adult-only
// compositions and ch_{1..3}_ad_{0..4} for compositions with children.
// Compositions beyond 4 adults or 3 children have no cell and fail in
// grouping mode; that ceiling is inherited from the catalog schema.
package bracket

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tourcost/core/types"
)

var hundred = decimal.NewFromInt(100)

// Resolve prices one pax composition against one rate row.
//
// Free counts reduce the billable counts before both cell lookup and
// multiplication. A composition that reduces to zero pax bills zero;
// that is the only case where an absent cell does not fail.
func Resolve(comp types.PaxComposition, detail *types.RateDetail, mode types.PricingMode, grouping bool) types.Resolution {
	if detail == nil {
		return types.Unresolved("no rate detail")
	}

	if mode == types.ModeFixed {
		return fixedAmount(detail)
	}

	adults := comp.BillableAdults()
	children := comp.BillableChildren()
	if adults == 0 && children == 0 {
		return types.Resolved(decimal.Zero)
	}

	if grouping {
		return groupAmount(detail, adults, children)
	}
	return pooledAmount(detail, adults, children)
}

// fixedAmount bills the single base cell regardless of composition
func fixedAmount(detail *types.RateDetail) types.Resolution {
	base := detail.AdultAmount(1)
	if !base.Valid() {
		return types.Unresolved("no base amount on rate")
	}
	return types.Resolved(base.Decimal())
}

// groupAmount looks up the exact cell for a (adults, children) pair
func groupAmount(detail *types.RateDetail, adults, children int) types.Resolution {
	if children == 0 {
		amt := detail.AdultAmount(adults)
		if !amt.Valid() {
			return noBracket(adults, children)
		}
		return types.Resolved(amt.Decimal())
	}

	amt := detail.ChildAmount(children, adults)
	if !amt.Valid() {
		return noBracket(adults, children)
	}
	return types.Resolved(amt.Decimal())
}

// pooledAmount bills adults at the single-adult cell and children at
// the first child cell, falling back to the discounted adult amount
// when the child cell is absent
func pooledAmount(detail *types.RateDetail, adults, children int) types.Resolution {
	base := detail.AdultAmount(1)
	total := decimal.Zero

	if adults > 0 {
		if !base.Valid() {
			return types.Unresolved("no adult amount on rate")
		}
		total = total.Add(base.Decimal().Mul(decimal.NewFromInt(int64(adults))))
	}

	if children > 0 {
		child, res := childUnitAmount(detail, base)
		if res != nil {
			return *res
		}
		total = total.Add(child.Mul(decimal.NewFromInt(int64(children))))
	}

	return types.Resolved(total)
}

// childUnitAmount returns the per-child amount: the ch_1_ad_1 cell, or
// the discounted adult base when only a discount percent is present
func childUnitAmount(detail *types.RateDetail, base types.Amount) (decimal.Decimal, *types.Resolution) {
	if cell := detail.ChildAmount(1, 1); cell.Valid() {
		return cell.Decimal(), nil
	}

	if detail.ChildDiscountPercent.Valid() && base.Valid() {
		factor := decimal.NewFromInt(1).Sub(detail.ChildDiscountPercent.Decimal().Div(hundred))
		return base.Decimal().Mul(factor), nil
	}

	res := types.Unresolved("no child amount on rate")
	return decimal.Zero, &res
}

// noBracket builds the failure for an unmatched composition cell
func noBracket(adults, children int) types.Resolution {
	return types.Unresolved(fmt.Sprintf("no amount for %d adults and %d children", adults, children))
}
