package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

// tabPadding is the minimum padding between table columns.
const tabPadding = 2

// footprintOutput is the structured form of a calculation result.
type footprintOutput struct {
	greenops.Footprint
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
}

func newFootprintOutput(fp greenops.Footprint) footprintOutput {
	out := footprintOutput{Footprint: fp}
	if eq, err := greenops.FootprintEquivalencies(fp); err == nil && !eq.IsEmpty {
		out.Equivalencies = &eq
	}
	return out
}

// renderFootprint writes fp to w in format.
func renderFootprint(w io.Writer, format string, fp greenops.Footprint) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newFootprintOutput(fp))
	case config.FormatNDJSON:
		return json.NewEncoder(w).Encode(newFootprintOutput(fp))
	case config.FormatTable, "":
		return renderFootprintTable(w, fp)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderFootprintTable writes the category table followed by the summary
// sentences.
func renderFootprintTable(w io.Writer, fp greenops.Footprint) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	_, _ = fmt.Fprintf(tw, "Region:\t%s\n", fp.Region)
	_, _ = fmt.Fprintf(tw, "Diet:\t%s\n", fp.DietType)
	_, _ = fmt.Fprintf(tw, "Rounding:\t%s\n\n", fp.Rounding)

	_, _ = fmt.Fprintln(tw, "CATEGORY\tANNUAL QUANTITY\tTONNES CO2")
	for _, ce := range fp.ByCategory() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n",
			ce.Category, annualQuantity(fp.Annual, ce.Category), greenops.FormatTonnes(ce.Tonnes))
	}
	_, _ = fmt.Fprintf(tw, "TOTAL\t\t%s\n", greenops.FormatTonnes(fp.Total))
	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, greenops.TotalLine(fp))
	_, _ = fmt.Fprintln(w, greenops.TreesLine(fp))
	if eq, err := greenops.FootprintEquivalencies(fp); err == nil && !eq.IsEmpty {
		_, _ = fmt.Fprintln(w, eq.DisplayText)
	}
	return nil
}

// annualQuantity formats the annual activity for a category with its unit.
func annualQuantity(a greenops.AnnualActivity, c factors.Category) string {
	switch c {
	case factors.CategoryTransportation:
		return greenops.FormatLarge(a.DistanceKm) + " " + c.Unit()
	case factors.CategoryElectricity:
		return greenops.FormatLarge(a.ElectricityKWh) + " " + c.Unit()
	case factors.CategoryDiet:
		return greenops.FormatNumber(int64(a.Meals)) + " meals"
	case factors.CategoryWaste:
		return greenops.FormatLarge(a.WasteKg) + " " + c.Unit()
	default:
		return ""
	}
}

// renderRegions writes the region list to w in format.
func renderRegions(w io.Writer, format string, regions []string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"regions": regions})
	case config.FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range regions {
			if err := enc.Encode(map[string]string{"region": r}); err != nil {
				return err
			}
		}
		return nil
	case config.FormatTable, "":
		for _, r := range regions {
			_, _ = fmt.Fprintln(w, r)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
