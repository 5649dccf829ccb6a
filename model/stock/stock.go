// Package stock projects the German building stock year by year and derives
// the static operational and embodied emission budgets per m².
package stock

import (
	"context"
	"fmt"

	buildingbudget "github.com/bauwende/building-ghg-budget"
	"github.com/bauwende/building-ghg-budget/internal/scenario"
)

// Year is one row of the stock projection.
type Year struct {
	Year int
	// TotalArea is the GEG-relevant building stock at the end of the year.
	TotalArea buildingbudget.Area
	// AddedArea is new construction plus renovated area in that year.
	AddedArea buildingbudget.Area
	// Operational and Embodied are the static per-m² budgets of that year.
	Operational buildingbudget.Intensity
	Embodied    buildingbudget.Intensity
}

// Result is the full stock projection with period averages.
type Result struct {
	Years              []Year
	AverageOperational buildingbudget.Intensity
	AverageEmbodied    buildingbudget.Intensity
}

// Projection computes the stock development under a scenario.
type Projection struct {
	scn *scenario.Scenario
}

func NewProjection(scn *scenario.Scenario) *Projection {
	return &Projection{scn: scn}
}

// Project walks the stock from the statistics reference year to the year of
// GHG neutrality. The stock grows with the new-built rate and shrinks with
// the demolition rate; the period between the statistics reference year and
// the base year is pre-corrected the same way.
func (p *Projection) Project(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scn := p.scn

	// Living area statistics only cover residential buildings. Convert to
	// gross floor area first, then deduct the construction area to get the
	// net room area comparable with the non-residential stock.
	residential := (scn.ResidentialLivingArea - scn.ResidentialInNonResidential) *
		scn.GrossFloorAreaFactor * scn.NetRoomAreaFactor

	area := residential + scn.NonResidentialNetRoomArea

	for year := scn.StockFromYear; year < scn.BaseYear; year++ {
		area += scn.NewBuildRate*area - scn.DemolitionRate*area
	}

	// National building sector budget in kg CO2e, split into the operational
	// and embodied shares.
	sector := scn.GHGBudgetGt() * scn.NationalShare * scn.BuildingSectorShare * 1e12
	shareOperational := sector * scn.OperationalShare()
	shareEmbodied := sector * scn.EmbodiedShare

	years := float64(scn.Years())

	result := &Result{Years: make([]Year, 0, scn.Years())}
	sumOperational, sumEmbodied := 0.0, 0.0

	for year := scn.BaseYear; year <= scn.NeutralityYear; year++ {
		newBuilt := scn.NewBuildRate * area
		demolished := scn.DemolitionRate * area
		renovated := scn.RenovationRate * area

		area += newBuilt - demolished
		added := newBuilt + renovated

		if added <= 0 {
			return nil, fmt.Errorf("no area is added in %d, cannot attribute embodied emissions", year)
		}

		// The yearly operational budget is attributed to the whole stock,
		// the embodied budget to newly added area spread over its lifecycle.
		operational := shareOperational / years / area
		embodied := shareEmbodied / years / added / scn.LifecycleYears

		result.Years = append(result.Years, Year{
			Year:        year,
			TotalArea:   buildingbudget.Area(area),
			AddedArea:   buildingbudget.Area(added),
			Operational: buildingbudget.Intensity(operational),
			Embodied:    buildingbudget.Intensity(embodied),
		})

		sumOperational += operational
		sumEmbodied += embodied
	}

	result.AverageOperational = buildingbudget.Intensity(sumOperational / years)
	result.AverageEmbodied = buildingbudget.Intensity(sumEmbodied / years)

	return result, nil
}

// StaticBudget implements buildingbudget.BaselineSource using the period
// averages of the stock projection.
func (p *Projection) StaticBudget(ctx context.Context) (buildingbudget.StaticBudget, error) {
	result, err := p.Project(ctx)
	if err != nil {
		return buildingbudget.StaticBudget{}, err
	}

	return buildingbudget.StaticBudget{
		Operational: result.AverageOperational,
		Embodied:    result.AverageEmbodied,
	}, nil
}
