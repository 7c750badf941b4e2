// Package hcl loads rate catalogs from HCL definition files.
//
// A catalog file declares `service` blocks for the bookable-service
// reference data and `rate_table` blocks with nested `rate` rows:
//
//	service "hotel_lux" {
//	  name       = "Hotel Lux"
//	  category   = "accommodation"
//	  mode       = "by_pax"
//	  groups_pax = true
//	  child_age  = 12
//	  infant_age = 2
//	}
//
//	rate_table {
//	  scope     = "vendor"
//	  party     = "vendor-01"
//	  service   = "hotel_lux"
//	  date_from = "2024-01-01"
//	  date_to   = "2024-01-10"
//
//	  rate {
//	    room  = "double"
//	    board = "bb"
//	    ad_2  = 100
//	  }
//	}
package hcl

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"tourcost/core/catalog"
	"tourcost/core/types"
	"tourcost/internal/errors"
)

// Document is a parsed catalog file
type Document struct {
	// Services maps service id to reference data
	Services map[string]*types.Service

	// Tables are the parsed rate tables
	Tables []*types.RateTable
}

// Store builds an in-memory catalog reader from the document
func (d *Document) Store() *catalog.MemoryStore {
	store := catalog.NewMemoryStore()
	store.Add(d.Tables...)
	return store
}

var (
	adultCellPattern = regexp.MustCompile(`^ad_([1-4])$`)
	childCellPattern = regexp.MustCompile(`^ch_([1-3])_ad_([0-4])$`)
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "service", LabelNames: []string{"id"}},
		{Type: "rate_table"},
	},
}

var serviceSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name"},
		{Name: "category", Required: true},
		{Name: "mode"},
		{Name: "groups_pax"},
		{Name: "pax_range_enabled"},
		{Name: "child_age"},
		{Name: "infant_age"},
		{Name: "origin"},
		{Name: "destination"},
		{Name: "parameter"},
	},
}

var tableSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "scope", Required: true},
		{Name: "party", Required: true},
		{Name: "service", Required: true},
		{Name: "date_from", Required: true},
		{Name: "date_to", Required: true},
		{Name: "contract"},
		{Name: "booked_from"},
		{Name: "booked_to"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "rate"},
	},
}

// LoadFile parses a catalog file
func LoadFile(path string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse catalog file", diags)
	}
	return decode(file.Body)
}

// LoadBytes parses catalog source held in memory; filename is used for
// diagnostics only
func LoadBytes(src []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse catalog source", diags)
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Document, error) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("unexpected catalog structure", diags)
	}

	doc := &Document{Services: make(map[string]*types.Service)}

	for _, block := range content.Blocks {
		switch block.Type {
		case "service":
			svc, err := decodeService(block)
			if err != nil {
				return nil, err
			}
			doc.Services[svc.ID] = svc

		case "rate_table":
			table, err := decodeTable(block)
			if err != nil {
				return nil, err
			}
			doc.Tables = append(doc.Tables, table)
		}
	}

	for _, t := range doc.Tables {
		if _, ok := doc.Services[t.ServiceID]; !ok {
			return nil, errors.NotFound("service", t.ServiceID)
		}
	}

	return doc, nil
}

func decodeService(block *hcl.Block) (*types.Service, error) {
	content, diags := block.Body.Content(serviceSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid service block", diags)
	}
	attrs := newAttrReader(content.Attributes)

	svc := &types.Service{
		ID:              block.Labels[0],
		Name:            attrs.str("name"),
		Category:        types.ServiceCategory(attrs.str("category")),
		Mode:            types.PricingMode(attrs.strDefault("mode", string(types.ModeByPax))),
		GroupsPax:       attrs.boolean("groups_pax"),
		PaxRangeEnabled: attrs.boolean("pax_range_enabled"),
		ChildAgeLimit:   attrs.integer("child_age"),
		InfantAgeLimit:  attrs.integer("infant_age"),
	}

	switch svc.Category {
	case types.CategoryAccommodation:
		svc.Accommodation = &types.AccommodationAttrs{}
	case types.CategoryTransfer:
		svc.Transfer = &types.TransferAttrs{
			Origin:      attrs.str("origin"),
			Destination: attrs.str("destination"),
		}
	case types.CategoryAddon:
		svc.Addon = &types.AddonAttrs{
			Parameter: types.ParameterType(attrs.strDefault("parameter", string(types.ParamStay))),
		}
	case types.CategoryPackage:
		// packages carry no category payload
	default:
		return nil, errors.Newf(errors.TypeParsing, "service %s: unknown category %q", svc.ID, svc.Category)
	}

	if err := attrs.err(); err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "service %s", svc.ID)
	}
	return svc, nil
}

func decodeTable(block *hcl.Block) (*types.RateTable, error) {
	content, diags := block.Body.Content(tableSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid rate_table block", diags)
	}
	attrs := newAttrReader(content.Attributes)

	scope := types.ScopeKind(attrs.str("scope"))
	if scope != types.ScopeVendor && scope != types.ScopeReseller {
		return nil, errors.Newf(errors.TypeParsing, "rate_table: unknown scope %q", scope)
	}

	table := &types.RateTable{
		ID:           uuid.NewString(),
		Scope:        types.Scope{Kind: scope, PartyID: attrs.str("party")},
		ServiceID:    attrs.str("service"),
		Dates:        types.NewDateRange(attrs.date("date_from"), attrs.date("date_to")),
		ContractCode: attrs.str("contract"),
	}

	if attrs.has("booked_from") || attrs.has("booked_to") {
		table.BookingWindow = &types.BookingWindow{
			From: attrs.date("booked_from"),
			To:   attrs.date("booked_to"),
		}
	}

	if err := attrs.err(); err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "rate_table for %s", table.ServiceID)
	}
	if table.Dates.Empty() {
		return nil, errors.Newf(errors.TypeParsing, "rate_table for %s: empty date interval %s", table.ServiceID, table.Dates)
	}

	for _, rateBlock := range content.Blocks {
		detail, err := decodeRate(rateBlock)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "rate_table for %s", table.ServiceID)
		}
		table.Details = append(table.Details, detail)
	}

	return table, nil
}

// decodeRate reads one rate row. Cell attributes are matched by name
// pattern so rows only list the cells they carry.
func decodeRate(block *hcl.Block) (*types.RateDetail, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid rate block", diags)
	}

	detail := &types.RateDetail{ID: uuid.NewString()}
	var paxMin, paxMax int
	var hasPaxRange bool

	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errors.Parsing(fmt.Sprintf("invalid value for %s", name), diags)
		}

		if m := adultCellPattern.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			amount, err := decimalValue(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			detail.AdultAmounts[n-1] = types.NewAmount(amount)
			continue
		}
		if m := childCellPattern.FindStringSubmatch(name); m != nil {
			c, _ := strconv.Atoi(m[1])
			a, _ := strconv.Atoi(m[2])
			amount, err := decimalValue(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			detail.ChildAmounts[c-1][a] = types.NewAmount(amount)
			continue
		}

		var err error
		switch name {
		case "room":
			detail.RoomType, err = stringValue(value)
		case "board":
			detail.BoardType, err = stringValue(value)
		case "origin":
			detail.Origin, err = stringValue(value)
		case "destination":
			detail.Destination, err = stringValue(value)
		case "not_reversible":
			detail.NotReversible, err = boolValue(value)
		case "addon":
			detail.AddonID, err = stringValue(value)
		case "pax_min":
			var n int
			if n, err = intValue(value); err == nil {
				paxMin, hasPaxRange = n, true
			}
		case "pax_max":
			var n int
			if n, err = intValue(value); err == nil {
				paxMax, hasPaxRange = n, true
			}
		case "child_discount_percent":
			var amount decimal.Decimal
			if amount, err = decimalValue(value); err == nil {
				detail.ChildDiscountPercent = types.NewAmount(amount)
			}
		default:
			return nil, fmt.Errorf("unknown rate attribute %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	if hasPaxRange {
		detail.PaxRange = &types.PaxRange{Min: paxMin, Max: paxMax}
	}
	return detail, nil
}

// attrReader accumulates attribute decoding errors so block decoding
// reads straight through
type attrReader struct {
	attrs   hcl.Attributes
	failure error
}

func newAttrReader(attrs hcl.Attributes) *attrReader {
	return &attrReader{attrs: attrs}
}

func (r *attrReader) err() error { return r.failure }

func (r *attrReader) has(name string) bool {
	_, ok := r.attrs[name]
	return ok
}

func (r *attrReader) value(name string) (cty.Value, bool) {
	attr, ok := r.attrs[name]
	if !ok {
		return cty.NilVal, false
	}
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		r.fail(fmt.Errorf("invalid value for %s", name))
		return cty.NilVal, false
	}
	return value, true
}

func (r *attrReader) str(name string) string {
	value, ok := r.value(name)
	if !ok {
		return ""
	}
	if value.Type() != cty.String {
		r.fail(fmt.Errorf("%s must be a string", name))
		return ""
	}
	return value.AsString()
}

func (r *attrReader) strDefault(name, fallback string) string {
	if !r.has(name) {
		return fallback
	}
	return r.str(name)
}

func (r *attrReader) boolean(name string) bool {
	value, ok := r.value(name)
	if !ok {
		return false
	}
	if value.Type() != cty.Bool {
		r.fail(fmt.Errorf("%s must be a bool", name))
		return false
	}
	return value.True()
}

func (r *attrReader) integer(name string) int {
	value, ok := r.value(name)
	if !ok {
		return 0
	}
	n, err := intValue(value)
	if err != nil {
		r.fail(fmt.Errorf("%s: %w", name, err))
		return 0
	}
	return n
}

func (r *attrReader) date(name string) time.Time {
	s := r.str(name)
	if s == "" {
		return time.Time{}
	}
	day, err := types.ParseDate(s)
	if err != nil {
		r.fail(fmt.Errorf("%s: %w", name, err))
		return time.Time{}
	}
	return day
}

func (r *attrReader) fail(err error) {
	if r.failure == nil {
		r.failure = err
	}
}

func stringValue(value cty.Value) (string, error) {
	if value.Type() != cty.String {
		return "", fmt.Errorf("expected a string")
	}
	return value.AsString(), nil
}

func boolValue(value cty.Value) (bool, error) {
	if value.Type() != cty.Bool {
		return false, fmt.Errorf("expected a bool")
	}
	return value.True(), nil
}

func intValue(value cty.Value) (int, error) {
	if value.Type() != cty.Number {
		return 0, fmt.Errorf("expected a number")
	}
	var n int
	if err := gocty.FromCtyValue(value, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func decimalValue(value cty.Value) (decimal.Decimal, error) {
	if value.Type() != cty.Number {
		return decimal.Zero, fmt.Errorf("expected a number")
	}
	return decimal.NewFromString(value.AsBigFloat().Text('f', -1))
}
