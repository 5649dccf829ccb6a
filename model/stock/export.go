package stock

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the year-by-year stock projection.
func (r *Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"year", "total_area_m2", "added_area_m2", "operational_kgco2e_m2a", "embodied_kgco2e_m2a"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write stock header: %w", err)
	}

	for _, year := range r.Years {
		record := []string{
			strconv.Itoa(year.Year),
			strconv.FormatFloat(year.TotalArea.SquareMeters(), 'f', 0, 64),
			strconv.FormatFloat(year.AddedArea.SquareMeters(), 'f', 0, 64),
			strconv.FormatFloat(year.Operational.KgCO2eqM2Year(), 'f', 4, 64),
			strconv.FormatFloat(year.Embodied.KgCO2eqM2Year(), 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write stock record for year %d: %w", year.Year, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
