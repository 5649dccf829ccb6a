package buildingbudget

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Table is the dynamic budget result of one run.
type Table struct {
	RunID       string
	GeneratedAt time.Time
	Static      StaticBudget
	Budgets     []YearlyBudget
}

func NewTable(static StaticBudget) *Table {
	return &Table{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Static:      static,
		Budgets:     make([]YearlyBudget, 0),
	}
}

// WriteCSV writes the year-by-year table with two decimals, the precision of
// the published figures.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"year", "operational_kgco2e_m2a", "embodied_kgco2e_m2a"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, b := range t.Budgets {
		record := []string{
			strconv.Itoa(b.Year),
			strconv.FormatFloat(b.Operational.KgCO2eqM2Year(), 'f', 2, 64),
			strconv.FormatFloat(b.Embodied.KgCO2eqM2Year(), 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record for year %d: %w", b.Year, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonBudget struct {
	Year        int     `json:"year"`
	Operational float64 `json:"operational_kgco2e_m2a"`
	Embodied    float64 `json:"embodied_kgco2e_m2a"`
}

type jsonTable struct {
	RunID             string       `json:"run_id"`
	GeneratedAt       time.Time    `json:"generated_at"`
	StaticOperational float64      `json:"static_operational_kgco2e_m2a"`
	StaticEmbodied    float64      `json:"static_embodied_kgco2e_m2a"`
	Budgets           []jsonBudget `json:"budgets"`
}

// WriteJSON writes the full-precision table together with run metadata.
func (t *Table) WriteJSON(w io.Writer) error {
	out := jsonTable{
		RunID:             t.RunID,
		GeneratedAt:       t.GeneratedAt,
		StaticOperational: t.Static.Operational.KgCO2eqM2Year(),
		StaticEmbodied:    t.Static.Embodied.KgCO2eqM2Year(),
		Budgets:           make([]jsonBudget, 0, len(t.Budgets)),
	}

	for _, b := range t.Budgets {
		out.Budgets = append(out.Budgets, jsonBudget{
			Year:        b.Year,
			Operational: b.Operational.KgCO2eqM2Year(),
			Embodied:    b.Embodied.KgCO2eqM2Year(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode budget table: %w", err)
	}

	return nil
}
