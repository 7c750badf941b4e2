// Package output renders resolution results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"tourcost/core/resolver"
	"tourcost/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Report is the printable outcome of one resolution run
type Report struct {
	// Service is the resolved service name
	Service string `json:"service"`

	// Dates is the requested span
	Dates string `json:"dates"`

	// Cost is the vendor-side resolution
	Cost types.Resolution `json:"cost"`

	// Price is the reseller-side resolution
	Price types.Resolution `json:"price"`

	// Variants holds the pax projections, when requested
	Variants []resolver.Variant `json:"variants,omitempty"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report
	Render(w io.Writer, report *Report) error
}

// NewFormatter returns the formatter for a format name, defaulting to CLI
func NewFormatter(format Format) Formatter {
	if format == FormatJSON {
		return &jsonFormatter{}
	}
	return &cliFormatter{}
}

type cliFormatter struct{}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Service:\t%s\n", report.Service)
	fmt.Fprintf(tw, "Dates:\t%s\n", report.Dates)
	fmt.Fprintf(tw, "Cost:\t%s\n", renderResolution(report.Cost))
	fmt.Fprintf(tw, "Price:\t%s\n", renderResolution(report.Price))

	if len(report.Variants) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Pax\tCost\tPrice")
		for _, v := range report.Variants {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", v.Pax, renderResolution(v.Cost), renderResolution(v.Price))
		}
	}
	return tw.Flush()
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// renderResolution shows the amount, or the failure message when the
// amount is unknown
func renderResolution(r types.Resolution) string {
	if r.Failed() {
		if r.Message == "" {
			return "-"
		}
		return "- (" + r.Message + ")"
	}
	return r.Amount.String()
}
