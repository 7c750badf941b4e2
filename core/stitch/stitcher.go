// Package stitch combines date-limited rate records to cover a date
// span no single record fully covers.
package stitch

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tourcost/core/types"
)

// AmountFunc computes the amount contributed by candidate idx over the
// half-open day range [from, to). A failed resolution aborts the stitch.
type AmountFunc func(idx int, from, to time.Time) types.Resolution

// Cover walks an ordered candidate list to cover the half-open target
// [from, to), accumulating per-candidate amounts.
//
// Candidates are consumed strictly front to back: a candidate whose
// interval starts after the current cursor is discarded without being
// billed and is never retried, even if a later cursor position would
// have accepted it. This mirrors the long-standing behavior of the
// production catalog search; see DESIGN.md before changing it.
//
// For each accepted candidate the billed overlap ends at
// min(candidate.To, to) while the cursor advances to
// min(candidate.To+1, to). On failure the result names the first
// uncovered day.
func Cover(candidates []types.DateRange, from, to time.Time, fn AmountFunc) types.Resolution {
	current := types.ToDay(from)
	end := types.ToDay(to)
	total := decimal.Zero

	next := 0
	for current.Before(end) {
		if next >= len(candidates) {
			return types.Unresolved(fmt.Sprintf("no rate covering %s", types.FormatDate(current)))
		}
		idx := next
		c := candidates[idx]
		next++

		if c.From.After(current) {
			continue
		}

		billEnd := types.MinDay(c.To, end)
		if billEnd.After(current) {
			res := fn(idx, current, billEnd)
			if res.Failed() {
				return res
			}
			total = total.Add(res.Amount.Decimal())
		}

		advance := types.MinDay(c.To.AddDate(0, 0, 1), end)
		if advance.After(current) {
			current = advance
		}
	}

	return types.Resolved(total)
}
