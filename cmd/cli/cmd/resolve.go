// Package cmd - resolve command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tourcost/adapters/hcl"
	"tourcost/core/output"
	"tourcost/core/resolver"
	"tourcost/core/types"
	"tourcost/internal/logging"
)

var (
	catalogFile  string
	serviceID    string
	vendorID     string
	resellerID   string
	dateFrom     string
	dateTo       string
	bookedOn     string
	contractCode string
	roomType     string
	boardType    string
	quantity     int
	parameter    float64
	adults       int
	childAges    []int
	outputFormat string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the cost and price of one service line",
	Long: `Resolve a service line against the catalog and print both sides.

The cost side is looked up in the vendor's rate tables, the price side
in the reseller's. A side that cannot be resolved prints the reason
instead of an amount.

Examples:
  tourcost resolve --catalog rates.hcl --service hotel_lux \
    --vendor vendor-01 --reseller agency-01 \
    --from 2024-06-01 --to 2024-06-05 --room double --board bb --adults 2
  tourcost resolve --catalog rates.hcl --service city_tour \
    --vendor vendor-02 --from 2024-06-01 --adults 2 --child 8`,
	RunE: runResolve,
}

func init() {
	addLineFlags(resolveCmd)
	resolveCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "line quantity for fixed-amount services")
	resolveCmd.Flags().IntVar(&adults, "adults", 0, "number of adult travelers")
	resolveCmd.Flags().IntSliceVar(&childAges, "child", nil, "child traveler age (repeatable)")
}

// addLineFlags registers the flags shared by resolve and variants
func addLineFlags(c *cobra.Command) {
	c.Flags().StringVarP(&catalogFile, "catalog", "c", "catalog.hcl", "path to HCL catalog file")
	c.Flags().StringVarP(&serviceID, "service", "s", "", "service id (required)")
	c.Flags().StringVar(&vendorID, "vendor", "", "vendor id for the cost side")
	c.Flags().StringVar(&resellerID, "reseller", "", "reseller id for the price side")
	c.Flags().StringVar(&dateFrom, "from", "", "start date YYYY-MM-DD (required)")
	c.Flags().StringVar(&dateTo, "to", "", "end date YYYY-MM-DD")
	c.Flags().StringVar(&bookedOn, "booked-on", "", "booking date for booking-window matching")
	c.Flags().StringVar(&contractCode, "contract", "", "contract code")
	c.Flags().StringVar(&roomType, "room", "", "room type for accommodations")
	c.Flags().StringVar(&boardType, "board", "", "board type for accommodations")
	c.Flags().Float64VarP(&parameter, "parameter", "p", 0, "hour count for hour-parameter addons")
	c.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	c.MarkFlagRequired("service")
	c.MarkFlagRequired("from")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, svc, err := loadService()
	if err != nil {
		return err
	}

	inst := &types.ServiceInstance{
		Service:      svc,
		VendorID:     vendorID,
		ResellerID:   resellerID,
		ContractCode: contractCode,
		RoomType:     roomType,
		BoardType:    boardType,
		Quantity:     quantity,
		Travelers:    cliRoster(),
	}
	if inst.DateFrom, err = parseFlagDate("from", dateFrom); err != nil {
		return err
	}
	if inst.DateTo, err = parseOptionalFlagDate("to", dateTo); err != nil {
		return err
	}
	if inst.BookedOn, err = parseOptionalFlagDate("booked-on", bookedOn); err != nil {
		return err
	}
	if cmd.Flags().Changed("parameter") {
		p := decimal.NewFromFloat(parameter)
		inst.Parameter = &p
	}

	logging.Info("resolving service line")
	cost, price := resolver.New(doc.Store()).ResolveInstance(ctx, inst)

	report := &output.Report{
		Service: svc.Name,
		Dates:   inst.Span().String(),
		Cost:    cost,
		Price:   price,
	}
	return output.NewFormatter(output.Format(outputFormat)).Render(os.Stdout, report)
}

// loadService parses the catalog file and resolves the requested
// service id
func loadService() (*hcl.Document, *types.Service, error) {
	doc, err := hcl.LoadFile(catalogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	svc, ok := doc.Services[serviceID]
	if !ok {
		return nil, nil, fmt.Errorf("unknown service: %s", serviceID)
	}
	return doc, svc, nil
}

// cliRoster builds a single-room roster from the adult and child counts
func cliRoster() []types.Traveler {
	var roster []types.Traveler
	for i := 0; i < adults; i++ {
		roster = append(roster, types.Traveler{RoomID: "room-1"})
	}
	for _, age := range childAges {
		a := age
		roster = append(roster, types.Traveler{Age: &a, RoomID: "room-1"})
	}
	return roster
}

func parseFlagDate(name, value string) (time.Time, error) {
	day, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return day, nil
}

func parseOptionalFlagDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := parseFlagDate(name, value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
