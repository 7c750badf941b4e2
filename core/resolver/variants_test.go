package resolver

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourcost/core/catalog"
	"tourcost/core/types"
)

// tourTable builds a vendor addon table with ad_1..ad_3 group cells
func tourTable(kind types.ScopeKind, party string, ad1, ad2, ad3 int64) *types.RateTable {
	detail := &types.RateDetail{}
	detail.AdultAmounts[0] = types.AmountFromInt(ad1)
	detail.AdultAmounts[1] = types.AmountFromInt(ad2)
	detail.AdultAmounts[2] = types.AmountFromInt(ad3)
	return &types.RateTable{
		ID:        "v-" + party,
		Scope:     types.Scope{Kind: kind, PartyID: party},
		ServiceID: "city_tour",
		Dates:     types.NewDateRange(day(2024, 6, 1), day(2024, 6, 30)),
		Details:   []*types.RateDetail{detail},
	}
}

func groupingTour() *types.Service {
	return &types.Service{
		ID:        "city_tour",
		Name:      "City Tour",
		Category:  types.CategoryAddon,
		Mode:      types.ModeByPax,
		GroupsPax: true,
		Addon:     &types.AddonAttrs{Parameter: types.ParamStay},
	}
}

func variantAmounts(t *testing.T, variants []Variant, side func(Variant) types.Resolution) []decimal.Decimal {
	t.Helper()
	out := make([]decimal.Decimal, len(variants))
	for i, v := range variants {
		res := side(v)
		require.False(t, res.Failed(), "variant %d: %s", v.Pax, res.Message)
		out[i] = res.Amount.Decimal()
	}
	return out
}

func TestProjectVariantsPerPaxAmounts(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(
		tourTable(types.ScopeVendor, "vendor-01", 90, 120, 150),
		tourTable(types.ScopeReseller, "agency-01", 120, 170, 200),
	)

	req := VariantRequest{
		Service:    groupingTour(),
		VendorID:   "vendor-01",
		ResellerID: "agency-01",
		DateFrom:   day(2024, 6, 3),
	}

	variants := New(store).ProjectVariants(context.Background(), req)
	require.Len(t, variants, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{variants[0].Pax, variants[1].Pax, variants[2].Pax})

	costs := variantAmounts(t, variants, func(v Variant) types.Resolution { return v.Cost })
	// Grouping divides the group amount by the pax count.
	assert.True(t, costs[0].Equal(decimal.NewFromInt(90)), "1 pax cost %s", costs[0])
	assert.True(t, costs[1].Equal(decimal.NewFromInt(60)), "2 pax cost %s", costs[1])
	assert.True(t, costs[2].Equal(decimal.NewFromInt(50)), "3 pax cost %s", costs[2])

	prices := variantAmounts(t, variants, func(v Variant) types.Resolution { return v.Price })
	assert.True(t, prices[0].Equal(decimal.NewFromInt(120)), "1 pax price %s", prices[0])
	assert.True(t, prices[1].Equal(decimal.NewFromInt(85)), "2 pax price %s", prices[1])
	// 200/3 = 66.67 ceiling-rounds to 67.
	assert.True(t, prices[2].Equal(decimal.NewFromInt(67)), "3 pax price %s", prices[2])
}

func TestProjectVariantsPricePercent(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(tourTable(types.ScopeVendor, "vendor-01", 100, 200, 300))

	percent := decimal.NewFromInt(20)
	req := VariantRequest{
		Service:      groupingTour(),
		VendorID:     "vendor-01",
		DateFrom:     day(2024, 6, 3),
		PricePercent: &percent,
	}

	variants := New(store).ProjectVariants(context.Background(), req)
	require.Len(t, variants, 3)

	// Price derives from the unrounded per-pax cost; no reseller lookup
	// happens even though none is configured.
	prices := variantAmounts(t, variants, func(v Variant) types.Resolution { return v.Price })
	assert.True(t, prices[0].Equal(decimal.NewFromInt(120)), "1 pax price %s", prices[0])
	assert.True(t, prices[1].Equal(decimal.NewFromInt(120)), "2 pax price %s", prices[1])
	assert.True(t, prices[2].Equal(decimal.NewFromInt(120)), "3 pax price %s", prices[2])
}

func TestProjectVariantsCostRounding(t *testing.T) {
	store := catalog.NewMemoryStore()
	store.Add(tourTable(types.ScopeVendor, "vendor-01", 100, 200, 100))

	req := VariantRequest{
		Service:  groupingTour(),
		VendorID: "vendor-01",
		DateFrom: day(2024, 6, 3),
	}

	variants := New(store).ProjectVariants(context.Background(), req)
	// 100/3 rounds to 33.33 on the cost side.
	three := variants[2]
	require.False(t, three.Cost.Failed())
	assert.True(t, three.Cost.Amount.Decimal().Equal(decimal.NewFromFloat(33.33)), "3 pax cost %s", three.Cost.Amount)
}

func TestProjectVariantsFailurePropagates(t *testing.T) {
	store := catalog.NewMemoryStore()

	req := VariantRequest{
		Service:  groupingTour(),
		VendorID: "vendor-01",
		DateFrom: day(2024, 6, 3),
	}

	variants := New(store).ProjectVariants(context.Background(), req)
	require.Len(t, variants, 3)
	for _, v := range variants {
		assert.True(t, v.Cost.Failed())
		assert.Equal(t, "no rate covering 2024-06-03", v.Cost.Message)
	}
}
