package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/normalize"
)

const maxAddressWidth = 60

var tableHeader = []string{"ID", "Price", "Beds", "Type", "BER", "Address"}

// TableWriter renders listings as aligned columns for a terminal.
type TableWriter struct {
	out io.Writer
}

// NewTableWriter creates a table writer.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{out: w}
}

// newTable returns a borderless, left-aligned table with two-space gutters.
func (w *TableWriter) newTable() *tablewriter.Table {
	t := tablewriter.NewWriter(w.out)
	t.SetHeader(tableHeader)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetRowLine(false)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	return t
}

// WriteListings writes a header row and one row per listing.
func (w *TableWriter) WriteListings(listings []listing.Listing) error {
	if len(listings) == 0 {
		_, err := fmt.Fprintln(w.out, "No listings found.")
		return err
	}

	t := w.newTable()
	for _, l := range listings {
		t.Append([]string{
			l.ID,
			FormatPrice(l),
			FormatBeds(l.Beds),
			dash(l.PropertyType),
			dash(l.EnergyRating),
			truncate(l.Address, maxAddressWidth),
		})
	}
	t.Render()
	return nil
}

// WriteValue falls back to indented JSON for non-tabular documents.
func (w *TableWriter) WriteValue(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Close is a no-op; each call to WriteListings renders a complete table.
func (w *TableWriter) Close() error {
	return nil
}

// FormatPrice renders a listing's monthly rent, e.g. "€2,150/mo".
func FormatPrice(l listing.Listing) string {
	switch {
	case l.PriceKind == normalize.PriceOnApplication:
		return "on application"
	case l.MonthlyPrice != nil:
		return "€" + humanize.Comma(int64(*l.MonthlyPrice)) + "/mo"
	default:
		return "-"
	}
}

// FormatBeds renders a bedroom range, e.g. "2" or "1-3".
func FormatBeds(b *normalize.BedRange) string {
	switch {
	case b == nil:
		return "-"
	case b.IsStudio:
		return "studio"
	case b.Min == b.Max:
		return fmt.Sprintf("%d", b.Min)
	default:
		return fmt.Sprintf("%d-%d", b.Min, b.Max)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
