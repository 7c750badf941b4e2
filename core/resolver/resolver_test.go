package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourcost/core/catalog"
	"tourcost/core/types"
)

func age(n int) *int { return &n }

func day(y int, m time.Month, d int) time.Time { return types.Date(y, m, d) }

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := types.Date(y, m, d)
	return &t
}

func hotelService() *types.Service {
	return &types.Service{
		ID:             "hotel_lux",
		Name:           "Hotel Lux",
		Category:       types.CategoryAccommodation,
		Mode:           types.ModeByPax,
		GroupsPax:      true,
		ChildAgeLimit:  12,
		InfantAgeLimit: 2,
		Accommodation:  &types.AccommodationAttrs{},
	}
}

func transferService() *types.Service {
	return &types.Service{
		ID:       "airport_shuttle",
		Name:     "Airport Shuttle",
		Category: types.CategoryTransfer,
		Mode:     types.ModeByPax,
		Transfer: &types.TransferAttrs{Origin: "airport", Destination: "resort"},
	}
}

func addonService(param types.ParameterType) *types.Service {
	return &types.Service{
		ID:       "guide",
		Name:     "Private Guide",
		Category: types.CategoryAddon,
		Mode:     types.ModeFixed,
		Addon:    &types.AddonAttrs{Parameter: param},
	}
}

// hotelTable builds a vendor rate table with one double/bb row
func hotelTable(party string, kind types.ScopeKind, from, to time.Time, ad2 int64) *types.RateTable {
	detail := &types.RateDetail{RoomType: "double", BoardType: "bb"}
	detail.AdultAmounts[1] = types.AmountFromInt(ad2)
	return &types.RateTable{
		ID:        "t-" + types.FormatDate(from),
		Scope:     types.Scope{Kind: kind, PartyID: party},
		ServiceID: "hotel_lux",
		Dates:     types.NewDateRange(from, to),
		Details:   []*types.RateDetail{detail},
	}
}

func hotelInstance(svc *types.Service) *types.ServiceInstance {
	return &types.ServiceInstance{
		Service:    svc,
		VendorID:   "vendor-01",
		ResellerID: "agency-01",
		DateFrom:   day(2024, 6, 1),
		DateTo:     dayPtr(2024, 6, 5),
		RoomType:   "double",
		BoardType:  "bb",
		Travelers: []types.Traveler{
			{Name: "a", RoomID: "r1"},
			{Name: "b", RoomID: "r1"},
		},
	}
}

func TestResolveAccommodationPerNight(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(
		hotelTable("vendor-01", types.ScopeVendor, day(2024, 6, 1), day(2024, 6, 30), 100),
		hotelTable("agency-01", types.ScopeReseller, day(2024, 6, 1), day(2024, 6, 30), 140),
	)

	cost, price := New(store).ResolveInstance(context.Background(), hotelInstance(hotelService()))

	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	require.False(t, price.Failed(), "price: %s", price.Message)
	// 4 nights at the two-adult rate.
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(400)), "cost %s", cost.Amount)
	assert.True(t, price.Amount.Decimal().Equal(decimal.NewFromInt(560)), "price %s", price.Amount)
}

func TestResolveSidesFailIndependently(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(hotelTable("vendor-01", types.ScopeVendor, day(2024, 6, 1), day(2024, 6, 30), 100))

	cost, price := New(store).ResolveInstance(context.Background(), hotelInstance(hotelService()))

	assert.False(t, cost.Failed())
	require.True(t, price.Failed())
	assert.Equal(t, "no rate covering 2024-06-01", price.Message)
}

func TestResolveStitchesAcrossSeasons(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(
		hotelTable("vendor-01", types.ScopeVendor, day(2024, 6, 1), day(2024, 6, 2), 100),
		hotelTable("vendor-01", types.ScopeVendor, day(2024, 6, 3), day(2024, 6, 30), 120),
	)

	inst := hotelInstance(hotelService())
	inst.ResellerID = ""
	cost, price := New(store).ResolveInstance(context.Background(), inst)

	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	// Jun 1..5: one night from the first season, then the cursor jumps
	// past Jun 2 and the second season bills Jun 3 and 4.
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(340)), "cost %s", cost.Amount)
	assert.Equal(t, "no agency", price.Message)
}

func TestResolveCoverageGapNamesDay(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(hotelTable("vendor-01", types.ScopeVendor, day(2024, 6, 1), day(2024, 6, 2), 100))

	inst := hotelInstance(hotelService())
	cost, _ := New(store).ResolveInstance(context.Background(), inst)

	require.True(t, cost.Failed())
	assert.Equal(t, "no rate covering 2024-06-03", cost.Message)
}

func TestResolveMissingInputs(t *testing.T) {
	store := catalog.NewMemoryStore()
	r := New(store)

	tests := []struct {
		name   string
		mutate func(*types.ServiceInstance)
		want   string
	}{
		{"no room", func(i *types.ServiceInstance) { i.RoomType = "" }, "missing room"},
		{"no board", func(i *types.ServiceInstance) { i.BoardType = "" }, "missing board"},
		{"no end date", func(i *types.ServiceInstance) { i.DateTo = nil }, "missing end date"},
		{"no start date", func(i *types.ServiceInstance) { i.DateFrom = time.Time{} }, "missing date"},
		{"no vendor", func(i *types.ServiceInstance) { i.VendorID = "" }, "no provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := hotelInstance(hotelService())
			tt.mutate(inst)
			cost, _ := r.ResolveInstance(context.Background(), inst)
			require.True(t, cost.Failed())
			assert.Equal(t, tt.want, cost.Message)
		})
	}
}

func TestResolveNilService(t *testing.T) {
	cost, price := New(catalog.NewMemoryStore()).ResolveInstance(context.Background(), &types.ServiceInstance{})
	assert.Equal(t, "no service", cost.Message)
	assert.Equal(t, "no service", price.Message)
}

func TestResolveManualOverride(t *testing.T) {
	// Empty catalog: only the manual side succeeds.
	inst := hotelInstance(hotelService())
	inst.ManualCost = true
	inst.Cost = types.AmountFromInt(250)

	cost, price := New(catalog.NewMemoryStore()).ResolveInstance(context.Background(), inst)

	require.False(t, cost.Failed())
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(250)))
	assert.True(t, price.Failed())
}

func TestResolveManualOverrideKeepsUnknown(t *testing.T) {
	// A manual side with no stored amount stays unknown without a message.
	inst := hotelInstance(hotelService())
	inst.ManualCost = true

	cost, _ := New(catalog.NewMemoryStore()).ResolveInstance(context.Background(), inst)
	assert.True(t, cost.Failed())
	assert.Empty(t, cost.Message)
}

func TestResolveEmptyRosterBillsZero(t *testing.T) {
	inst := hotelInstance(hotelService())
	inst.Travelers = nil

	cost, _ := New(catalog.NewMemoryStore()).ResolveInstance(context.Background(), inst)
	require.False(t, cost.Failed())
	assert.True(t, cost.Amount.Decimal().IsZero())
}

func TestResolvePerRoomGrouping(t *testing.T) {
	detail := &types.RateDetail{RoomType: "double", BoardType: "bb"}
	detail.AdultAmounts[0] = types.AmountFromInt(70)  // ad_1
	detail.AdultAmounts[1] = types.AmountFromInt(100) // ad_2
	table := &types.RateTable{
		ID:        "t1",
		Scope:     types.Scope{Kind: types.ScopeVendor, PartyID: "vendor-01"},
		ServiceID: "hotel_lux",
		Dates:     types.NewDateRange(day(2024, 6, 1), day(2024, 6, 30)),
		Details:   []*types.RateDetail{detail},
	}
	store := catalog.NewMemoryStore()
	store.Add(table)

	inst := hotelInstance(hotelService())
	inst.Travelers = []types.Traveler{
		{Name: "a", RoomID: "r1"},
		{Name: "b", RoomID: "r1"},
		{Name: "c", RoomID: "r2"},
	}

	cost, _ := New(store).ResolveInstance(context.Background(), inst)
	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	// 4 nights of (ad_2 + ad_1).
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(680)), "cost %s", cost.Amount)
}

func transferTable(origin, dest string, notReversible bool, amount int64) *types.RateTable {
	detail := &types.RateDetail{Origin: origin, Destination: dest, NotReversible: notReversible}
	detail.AdultAmounts[0] = types.AmountFromInt(amount)
	return &types.RateTable{
		ID:        "tr-" + origin + "-" + dest,
		Scope:     types.Scope{Kind: types.ScopeVendor, PartyID: "vendor-01"},
		ServiceID: "airport_shuttle",
		Dates:     types.NewDateRange(day(2024, 6, 1), day(2024, 6, 30)),
		Details:   []*types.RateDetail{detail},
	}
}

func transferInstance() *types.ServiceInstance {
	return &types.ServiceInstance{
		Service:   transferService(),
		VendorID:  "vendor-01",
		DateFrom:  day(2024, 6, 3),
		Travelers: []types.Traveler{{Name: "a"}, {Name: "b"}},
	}
}

func TestResolveTransferDirectRoute(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(transferTable("airport", "resort", false, 25))

	cost, _ := New(store).ResolveInstance(context.Background(), transferInstance())
	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	// Flat per stay: 2 adults at 25.
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(50)), "cost %s", cost.Amount)
}

func TestResolveTransferReversedRoute(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(transferTable("resort", "airport", false, 30))

	cost, _ := New(store).ResolveInstance(context.Background(), transferInstance())
	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(60)), "cost %s", cost.Amount)
}

func TestResolveTransferNotReversible(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(transferTable("resort", "airport", true, 30))

	cost, _ := New(store).ResolveInstance(context.Background(), transferInstance())
	require.True(t, cost.Failed())
	assert.Equal(t, "no rate covering 2024-06-03", cost.Message)
}

func TestResolveTransferPrefersDirect(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(
		transferTable("resort", "airport", false, 99),
		transferTable("airport", "resort", false, 25),
	)

	cost, _ := New(store).ResolveInstance(context.Background(), transferInstance())
	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(50)), "cost %s", cost.Amount)
}

func addonTable(amount int64) *types.RateTable {
	detail := &types.RateDetail{}
	detail.AdultAmounts[0] = types.AmountFromInt(amount)
	return &types.RateTable{
		ID:        "ad-1",
		Scope:     types.Scope{Kind: types.ScopeVendor, PartyID: "vendor-01"},
		ServiceID: "guide",
		Dates:     types.NewDateRange(day(2024, 6, 1), day(2024, 6, 30)),
		Details:   []*types.RateDetail{detail},
	}
}

func addonInstance(param types.ParameterType) *types.ServiceInstance {
	return &types.ServiceInstance{
		Service:   addonService(param),
		VendorID:  "vendor-01",
		DateFrom:  day(2024, 6, 3),
		DateTo:    dayPtr(2024, 6, 5),
		Travelers: []types.Traveler{{Name: "a"}},
	}
}

func TestResolveAddonMultipliers(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(addonTable(40))
	r := New(store)

	tests := []struct {
		name  string
		param types.ParameterType
		setup func(*types.ServiceInstance)
		want  int64
	}{
		{"stay applies once", types.ParamStay, nil, 40},
		{"days is inclusive", types.ParamDays, nil, 120},
		{"nights excludes last day", types.ParamNights, nil, 80},
		{"hours uses the parameter", types.ParamHours, func(i *types.ServiceInstance) {
			p := decimal.NewFromInt(5)
			i.Parameter = &p
		}, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := addonInstance(tt.param)
			if tt.setup != nil {
				tt.setup(inst)
			}
			cost, _ := r.ResolveInstance(context.Background(), inst)
			require.False(t, cost.Failed(), "cost: %s", cost.Message)
			assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(tt.want)), "cost %s", cost.Amount)
		})
	}
}

func TestResolveAddonMissingParameter(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(addonTable(40))

	inst := addonInstance(types.ParamHours)
	cost, _ := New(store).ResolveInstance(context.Background(), inst)
	require.True(t, cost.Failed())
	assert.Equal(t, "missing parameter", cost.Message)
}

func TestResolveFixedQuantityScaling(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(addonTable(40))

	inst := addonInstance(types.ParamStay)
	inst.Quantity = 3
	cost, _ := New(store).ResolveInstance(context.Background(), inst)
	require.False(t, cost.Failed(), "cost: %s", cost.Message)
	assert.True(t, cost.Amount.Decimal().Equal(decimal.NewFromInt(120)), "cost %s", cost.Amount)
}

func TestResolvePaxRangeFiltering(t *testing.T) {
	small := &types.RateDetail{PaxRange: &types.PaxRange{Min: 1, Max: 3}}
	small.AdultAmounts[0] = types.AmountFromInt(50)
	large := &types.RateDetail{PaxRange: &types.PaxRange{Min: 4, Max: 0}}
	large.AdultAmounts[0] = types.AmountFromInt(30)

	table := &types.RateTable{
		ID:        "tour-1",
		Scope:     types.Scope{Kind: types.ScopeVendor, PartyID: "vendor-01"},
		ServiceID: "city_tour",
		Dates:     types.NewDateRange(day(2024, 6, 1), day(2024, 6, 30)),
		Details:   []*types.RateDetail{small, large},
	}
	store := catalog.NewMemoryStore()
	store.Add(table)

	svc := &types.Service{
		ID:              "city_tour",
		Category:        types.CategoryAddon,
		Mode:            types.ModeByPax,
		PaxRangeEnabled: true,
		Addon:           &types.AddonAttrs{Parameter: types.ParamStay},
	}

	resolve := func(paxCount int) types.Resolution {
		roster := make([]types.Traveler, paxCount)
		for i := range roster {
			roster[i] = types.Traveler{}
		}
		inst := &types.ServiceInstance{
			Service:   svc,
			VendorID:  "vendor-01",
			DateFrom:  day(2024, 6, 3),
			Travelers: roster,
		}
		cost, _ := New(store).ResolveInstance(context.Background(), inst)
		return cost
	}

	two := resolve(2)
	require.False(t, two.Failed(), "2 pax: %s", two.Message)
	assert.True(t, two.Amount.Decimal().Equal(decimal.NewFromInt(100)), "2 pax %s", two.Amount)

	five := resolve(5)
	require.False(t, five.Failed(), "5 pax: %s", five.Message)
	assert.True(t, five.Amount.Decimal().Equal(decimal.NewFromInt(150)), "5 pax %s", five.Amount)
}

func TestResolveIdempotent(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(
		hotelTable("vendor-01", types.ScopeVendor, day(2024, 6, 1), day(2024, 6, 30), 100),
		hotelTable("agency-01", types.ScopeReseller, day(2024, 6, 1), day(2024, 6, 30), 140),
	)
	r := New(store)

	inst := hotelInstance(hotelService())
	cost1, price1 := r.ResolveInstance(context.Background(), inst)
	cost2, price2 := r.ResolveInstance(context.Background(), inst)

	assert.True(t, cost1.Amount.Equal(cost2.Amount))
	assert.True(t, price1.Amount.Equal(price2.Amount))
}
