// Package scenario holds the reference assumptions behind a budget run:
// the global carbon budget and its allocation down to the German building
// sector, and the stock dynamics of the building stock itself.
//
// The default scenario reproduces the published reference case (global budget
// for 1.7 °C with 83 % probability, "Equality" allocation, GHG neutrality by
// 2045). Every value can be overridden from a YAML file or key=value pairs.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type Scenario struct {
	// BaseYear is the first budget year.
	BaseYear int `mapstructure:"base_year"`
	// NeutralityYear is the legislated year of GHG neutrality in Germany.
	NeutralityYear int `mapstructure:"neutrality_year"`
	// StockFromYear is the reference year of the building stock statistics.
	// Stock growth between this year and BaseYear is pre-corrected.
	StockFromYear int `mapstructure:"stock_from_year"`

	// GlobalCO2BudgetGt is the remaining global CO2 budget in Gt.
	GlobalCO2BudgetGt float64 `mapstructure:"global_co2_budget_gt"`
	// EmittedCO2Gt is the global CO2 emitted between 2020 and BaseYear in Gt.
	EmittedCO2Gt float64 `mapstructure:"emitted_co2_gt"`
	// CO2ShareOfGHG is the share of CO2 on German GHG emissions.
	CO2ShareOfGHG float64 `mapstructure:"co2_share_of_ghg"`

	// NationalShare allocates the global budget to Germany ("Equality").
	NationalShare float64 `mapstructure:"national_share"`
	// BuildingSectorShare is the building sector share on national emissions.
	BuildingSectorShare float64 `mapstructure:"building_sector_share"`
	// EmbodiedShare is the average share of embodied emissions on the
	// building sector over the accounting period.
	EmbodiedShare float64 `mapstructure:"embodied_share"`

	// Yearly stock rates relative to the total stock area.
	NewBuildRate   float64 `mapstructure:"new_build_rate"`
	DemolitionRate float64 `mapstructure:"demolition_rate"`
	RenovationRate float64 `mapstructure:"renovation_rate"`

	// ResidentialLivingArea is the residential living area in m² (Destatis).
	ResidentialLivingArea float64 `mapstructure:"residential_living_area_m2"`
	// ResidentialInNonResidential is the residential area already counted in
	// the non-residential stock, in m².
	ResidentialInNonResidential float64 `mapstructure:"residential_in_non_residential_m2"`
	// GrossFloorAreaFactor converts living area to gross floor area (BKI).
	GrossFloorAreaFactor float64 `mapstructure:"gross_floor_area_factor"`
	// NetRoomAreaFactor deducts the construction area (BKI).
	NetRoomAreaFactor float64 `mapstructure:"net_room_area_factor"`
	// NonResidentialNetRoomArea is the GEG-relevant non-residential net room
	// area in m² (Hörner et al. 2024).
	NonResidentialNetRoomArea float64 `mapstructure:"non_residential_net_room_area_m2"`

	// LifecycleYears spreads embodied emissions of new area over a lifecycle.
	LifecycleYears float64 `mapstructure:"lifecycle_years"`
}

// Default returns the published reference scenario.
func Default() *Scenario {
	return &Scenario{
		BaseYear:       2025,
		NeutralityYear: 2045,
		StockFromYear:  2021,

		GlobalCO2BudgetGt: 550,
		EmittedCO2Gt:      185,
		CO2ShareOfGHG:     0.887,

		NationalShare:       0.0106,
		BuildingSectorShare: 0.303,
		EmbodiedShare:       0.3707,

		NewBuildRate:   0.009,
		DemolitionRate: 0.001,
		RenovationRate: 0.01,

		ResidentialLivingArea:       4024768000,
		ResidentialInNonResidential: 127039000,
		GrossFloorAreaFactor:        1.87,
		NetRoomAreaFactor:           0.83,
		NonResidentialNetRoomArea:   3073000000,

		LifecycleYears: 50,
	}
}

// OperationalShare is the complement of the embodied share.
func (s *Scenario) OperationalShare() float64 {
	return 1 - s.EmbodiedShare
}

// GHGBudgetGt converts the remaining global CO2 budget into a GHG budget.
func (s *Scenario) GHGBudgetGt() float64 {
	return (s.GlobalCO2BudgetGt - s.EmittedCO2Gt) / s.CO2ShareOfGHG
}

// Years is the number of budget years including both period bounds.
func (s *Scenario) Years() int {
	return s.NeutralityYear - s.BaseYear + 1
}

// Load builds a scenario from the defaults, an optional YAML file and
// key=value overrides, in that order of precedence.
func Load(path string, overrides []string) (*Scenario, error) {
	scn := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario file: %w", err)
		}

		values := make(map[string]any)
		if err := yaml.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
		}

		if err := decode(values, scn); err != nil {
			return nil, fmt.Errorf("failed to decode scenario file %s: %w", path, err)
		}
	}

	if len(overrides) > 0 {
		values := make(map[string]any, len(overrides))
		for _, override := range overrides {
			key, value, found := strings.Cut(override, "=")
			if !found {
				return nil, fmt.Errorf("override %q is not in key=value form", override)
			}
			values[key] = value
		}

		if err := decode(values, scn); err != nil {
			return nil, fmt.Errorf("failed to apply scenario overrides: %w", err)
		}
	}

	if err := scn.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scn, nil
}

// decode merges loosely typed values into the scenario. Strings holding
// numbers are accepted, overrides come in as strings.
func decode(values map[string]any, scn *Scenario) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           scn,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}

// Validate checks that the scenario can drive a budget calculation. Any
// violation is terminal for the run.
func (s *Scenario) Validate() error {
	if s.NeutralityYear <= s.BaseYear {
		return fmt.Errorf("neutrality year %d must be after base year %d", s.NeutralityYear, s.BaseYear)
	}
	if s.StockFromYear > s.BaseYear {
		return fmt.Errorf("stock reference year %d must not be after base year %d", s.StockFromYear, s.BaseYear)
	}
	if s.GlobalCO2BudgetGt <= s.EmittedCO2Gt {
		return fmt.Errorf("global budget %.0f Gt is already spent (%.0f Gt emitted)", s.GlobalCO2BudgetGt, s.EmittedCO2Gt)
	}

	shares := map[string]float64{
		"co2_share_of_ghg":      s.CO2ShareOfGHG,
		"national_share":        s.NationalShare,
		"building_sector_share": s.BuildingSectorShare,
		"embodied_share":        s.EmbodiedShare,
	}
	for name, share := range shares {
		if share <= 0 || share >= 1 {
			return fmt.Errorf("%s must be in (0,1), got %v", name, share)
		}
	}

	rates := map[string]float64{
		"new_build_rate":  s.NewBuildRate,
		"demolition_rate": s.DemolitionRate,
		"renovation_rate": s.RenovationRate,
	}
	for name, rate := range rates {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("%s must be in [0,1), got %v", name, rate)
		}
	}

	areas := map[string]float64{
		"residential_living_area_m2":       s.ResidentialLivingArea,
		"non_residential_net_room_area_m2": s.NonResidentialNetRoomArea,
	}
	for name, area := range areas {
		if area <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, area)
		}
	}
	if s.ResidentialInNonResidential < 0 || s.ResidentialInNonResidential >= s.ResidentialLivingArea {
		return fmt.Errorf("residential_in_non_residential_m2 must be in [0, residential living area)")
	}

	if s.GrossFloorAreaFactor <= 0 || s.NetRoomAreaFactor <= 0 {
		return fmt.Errorf("area conversion factors must be positive")
	}
	if s.LifecycleYears <= 0 {
		return fmt.Errorf("lifecycle_years must be positive, got %v", s.LifecycleYears)
	}

	return nil
}
