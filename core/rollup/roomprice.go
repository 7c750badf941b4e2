package rollup

import (
	"github.com/shopspring/decimal"

	"tourcost/core/types"
)

// RoomRates holds the fixed per-room-size amounts used for
// package-priced bookings
type RoomRates struct {
	// Single is the amount per one-traveler room
	Single types.Amount `json:"single"`

	// Double is the amount per two-traveler room
	Double types.Amount `json:"double"`

	// Triple is the amount per room of three or more travelers
	Triple types.Amount `json:"triple"`
}

// PackagePrice computes the price of a package-priced booking: the
// roster is grouped into rooms, each room size maps to a fixed amount,
// and the amounts are multiplied by the room counts. A missing rate
// for a needed size makes the whole price unknown.
func PackagePrice(roster []types.Traveler, rates RoomRates) types.Amount {
	singles, doubles, triples := countRooms(roster)

	total := types.NewAmount(decimal.Zero)
	total = total.Add(scaleRooms(rates.Single, singles))
	total = total.Add(scaleRooms(rates.Double, doubles))
	total = total.Add(scaleRooms(rates.Triple, triples))
	return total
}

// RecomputePackagePriced is Recompute with the price side replaced by
// the per-room-size table
func RecomputePackagePriced(children []Child, roster []types.Traveler, rates RoomRates) Result {
	res := Recompute(children)
	res.Price = PackagePrice(roster, rates)
	return res
}

// countRooms groups the roster by room id and tallies room sizes.
// Rooms of more than three travelers count as triples.
func countRooms(roster []types.Traveler) (singles, doubles, triples int) {
	sizes := make(map[string]int)
	for _, t := range roster {
		sizes[t.RoomID]++
	}
	for _, size := range sizes {
		switch size {
		case 1:
			singles++
		case 2:
			doubles++
		default:
			triples++
		}
	}
	return singles, doubles, triples
}

// scaleRooms multiplies a room rate by a room count; zero rooms of a
// size never require its rate
func scaleRooms(rate types.Amount, rooms int) types.Amount {
	if rooms == 0 {
		return types.NewAmount(decimal.Zero)
	}
	return rate.Mul(decimal.NewFromInt(int64(rooms)))
}
