// Package cmd - variants command
package cmd

import (
	"context"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tourcost/core/output"
	"tourcost/core/resolver"
)

var pricePercent float64

// variantsCmd represents the variants command
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Project per-pax amounts at 1, 2 and 3 travelers",
	Long: `Resolve a service at synthetic pax counts of 1, 2 and 3 adults and
print the per-pax cost and price of each count.

With --price-percent the price side is derived from the cost by
percent markup instead of a reseller catalog lookup.

Examples:
  tourcost variants --catalog rates.hcl --service city_tour \
    --vendor vendor-02 --reseller agency-01 --from 2024-06-01
  tourcost variants --catalog rates.hcl --service city_tour \
    --vendor vendor-02 --from 2024-06-01 --price-percent 20`,
	RunE: runVariants,
}

func init() {
	addLineFlags(variantsCmd)
	variantsCmd.Flags().Float64Var(&pricePercent, "price-percent", 0, "derive price from cost by percent markup")
}

func runVariants(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, svc, err := loadService()
	if err != nil {
		return err
	}

	req := resolver.VariantRequest{
		Service:      svc,
		VendorID:     vendorID,
		ResellerID:   resellerID,
		ContractCode: contractCode,
		RoomType:     roomType,
		BoardType:    boardType,
	}
	if req.DateFrom, err = parseFlagDate("from", dateFrom); err != nil {
		return err
	}
	if req.DateTo, err = parseOptionalFlagDate("to", dateTo); err != nil {
		return err
	}
	if req.BookedOn, err = parseOptionalFlagDate("booked-on", bookedOn); err != nil {
		return err
	}
	if cmd.Flags().Changed("parameter") {
		p := decimal.NewFromFloat(parameter)
		req.Parameter = &p
	}
	if cmd.Flags().Changed("price-percent") {
		p := decimal.NewFromFloat(pricePercent)
		req.PricePercent = &p
	}

	variants := resolver.New(doc.Store()).ProjectVariants(ctx, req)

	span := dateFrom
	if dateTo != "" {
		span += " - " + dateTo
	}
	report := &output.Report{
		Service:  svc.Name,
		Dates:    span,
		Variants: variants,
	}
	return output.NewFormatter(output.Format(outputFormat)).Render(os.Stdout, report)
}
