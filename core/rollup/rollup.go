// Package rollup recomputes quote/booking totals, date span and status
// from the child service lines.
//
// Recompute is pure and idempotent: the persistence boundary calls it
// synchronously inside the same transaction as every child mutation
// and persists only the fields that changed. Concurrent mutations of
// the same aggregate root must be serialized by the caller.
package rollup

import (
	"time"

	"github.com/shopspring/decimal"

	"tourcost/core/types"
)

// Child is the rollup view of one service line or package
type Child struct {
	// Cost is the line's vendor-side amount
	Cost types.Amount

	// Price is the line's reseller-side amount
	Price types.Amount

	// DateFrom is the line's start day
	DateFrom time.Time

	// DateTo is the line's end day; nil defaults to DateFrom
	DateTo *time.Time

	// Status is the line's lifecycle state
	Status types.Status
}

// Result holds the recomputed aggregate fields
type Result struct {
	// Cost is the summed cost, unknown when any live child's cost is unknown
	Cost types.Amount

	// Price is the summed price, independent of Cost
	Price types.Amount

	// DateFrom is the earliest live-child start day
	DateFrom *time.Time

	// DateTo is the latest live-child end day
	DateTo *time.Time

	// Status is the derived lifecycle state
	Status types.Status
}

// Recompute derives aggregate totals over the non-cancelled children.
//
// Each total stops at the first child with an unknown amount: one
// unknown cost poisons the aggregate cost, regardless of how many
// other children resolved, and cost and price poison independently.
func Recompute(children []Child) Result {
	res := Result{
		Cost:   types.NewAmount(decimal.Zero),
		Price:  types.NewAmount(decimal.Zero),
		Status: deriveStatus(children),
	}

	costKnown, priceKnown := true, true
	for _, c := range children {
		if c.Status == types.StatusCancelled {
			continue
		}

		if costKnown {
			if !c.Cost.Valid() {
				res.Cost = types.NoAmount()
				costKnown = false
			} else {
				res.Cost = res.Cost.Add(c.Cost)
			}
		}
		if priceKnown {
			if !c.Price.Valid() {
				res.Price = types.NoAmount()
				priceKnown = false
			} else {
				res.Price = res.Price.Add(c.Price)
			}
		}

		from := types.ToDay(c.DateFrom)
		to := from
		if c.DateTo != nil {
			to = types.ToDay(*c.DateTo)
		}
		if res.DateFrom == nil || from.Before(*res.DateFrom) {
			f := from
			res.DateFrom = &f
		}
		if res.DateTo == nil || to.After(*res.DateTo) {
			t := to
			res.DateTo = &t
		}
	}

	return res
}

// deriveStatus applies the status precedence machine: any pending
// child wins, then requested/phone-confirmed, then confirmed,
// otherwise coordinated. A childless aggregate is pending; an
// aggregate whose children are all cancelled is cancelled.
func deriveStatus(children []Child) types.Status {
	if len(children) == 0 {
		return types.StatusPending
	}

	live := false
	var hasPending, hasRequested, hasConfirmed bool
	for _, c := range children {
		switch c.Status {
		case types.StatusCancelled:
			continue
		case types.StatusPending:
			hasPending = true
		case types.StatusRequested, types.StatusPhoneConfirmed:
			hasRequested = true
		case types.StatusConfirmed:
			hasConfirmed = true
		}
		live = true
	}

	switch {
	case !live:
		return types.StatusCancelled
	case hasPending:
		return types.StatusPending
	case hasRequested:
		return types.StatusRequested
	case hasConfirmed:
		return types.StatusConfirmed
	default:
		return types.StatusCoordinated
	}
}
