package buildingbudget

import (
	"context"
	"fmt"
	"math"
)

// Default accounting period for the German building stock: budgets start in
// 2025 and run until the legislated year of GHG neutrality.
const (
	DefaultBaseYear       = 2025
	DefaultNeutralityYear = 2045
)

// Trend maps a calendar year to the projected share value driving the budget
// decline, for example the non-renewable share of the energy mix. A trend is
// defined over the whole accounting period.
type Trend interface {
	// Eval returns the projected value for the given year.
	Eval(year float64) float64
	// EndRatio is the ratio of the projection data in the final year of the
	// period to its value in the base year.
	EndRatio() float64
}

// TrendFunc adapts a plain function into a Trend with a fixed end ratio.
type TrendFunc struct {
	Fn    func(year float64) float64
	Ratio float64
}

func (t TrendFunc) Eval(year float64) float64 { return t.Fn(year) }
func (t TrendFunc) EndRatio() float64         { return t.Ratio }

// StaticBudget is the time-invariant split of the building sector budget into
// operational and embodied intensities.
type StaticBudget struct {
	Operational Intensity
	Embodied    Intensity
}

// BaselineSource computes the static budget from reference data.
type BaselineSource interface {
	StaticBudget(ctx context.Context) (StaticBudget, error)
}

// Scaler turns a static baseline into a year-indexed series following a trend.
type Scaler interface {
	Scale(ctx context.Context, base Intensity, trend Trend) ([]Intensity, error)
}

// YearlyBudget is one row of the dynamic budget table.
type YearlyBudget struct {
	Year        int
	Operational Intensity
	Embodied    Intensity
}

type CalculatorOptions func(c *Calculator)

func WithBaseline(source BaselineSource) CalculatorOptions {
	return func(c *Calculator) {
		c.baseline = source
	}
}

func WithScaler(scaler Scaler) CalculatorOptions {
	return func(c *Calculator) {
		c.scaler = scaler
	}
}

func WithOperationalTrend(trend Trend) CalculatorOptions {
	return func(c *Calculator) {
		c.operational = trend
	}
}

func WithEmbodiedTrend(trend Trend) CalculatorOptions {
	return func(c *Calculator) {
		c.embodied = trend
	}
}

func WithPeriod(baseYear, neutralityYear int) CalculatorOptions {
	return func(c *Calculator) {
		c.baseYear = baseYear
		c.neutralityYear = neutralityYear
	}
}

// Calculator combines a static baseline with decarbonization trends into the
// dynamic year-by-year budget table.
type Calculator struct {
	baseline       BaselineSource
	scaler         Scaler
	operational    Trend
	embodied       Trend
	baseYear       int
	neutralityYear int
}

func NewCalculator(opts ...CalculatorOptions) *Calculator {
	calculator := &Calculator{
		baseYear:       DefaultBaseYear,
		neutralityYear: DefaultNeutralityYear,
	}

	for _, option := range opts {
		option(calculator)
	}

	return calculator
}

func (c *Calculator) SetOpt(option CalculatorOptions) {
	option(c)
}

// Run computes the dynamic budget table. The static baseline enters the
// scaling rounded to two decimals, matching the published tables.
func (c *Calculator) Run(ctx context.Context) (*Table, error) {
	if c.baseline == nil {
		return nil, fmt.Errorf("baseline source is not set")
	}
	if c.scaler == nil {
		return nil, fmt.Errorf("scaler is not set")
	}
	if c.operational == nil || c.embodied == nil {
		return nil, fmt.Errorf("operational and embodied trends must be set")
	}

	static, err := c.baseline.StaticBudget(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute static budget: %w", err)
	}

	operational, err := c.scaler.Scale(ctx, static.Operational.Round(2), c.operational)
	if err != nil {
		return nil, fmt.Errorf("failed to scale operational budget: %w", err)
	}

	embodied, err := c.scaler.Scale(ctx, static.Embodied.Round(2), c.embodied)
	if err != nil {
		return nil, fmt.Errorf("failed to scale embodied budget: %w", err)
	}

	years := c.neutralityYear - c.baseYear + 1
	if len(operational) != years || len(embodied) != years {
		return nil, fmt.Errorf("scaler returned %d operational and %d embodied values, want %d", len(operational), len(embodied), years)
	}

	table := NewTable(static)
	for i := 0; i < years; i++ {
		table.Budgets = append(table.Budgets, YearlyBudget{
			Year:        c.baseYear + i,
			Operational: operational[i],
			Embodied:    embodied[i],
		})
	}

	if err := table.Check(); err != nil {
		return nil, fmt.Errorf("dynamic budget table is inconsistent: %w", err)
	}

	return table, nil
}

// Check verifies that both series are positive, finite and non-increasing
// over the accounting period.
func (t *Table) Check() error {
	if len(t.Budgets) == 0 {
		return fmt.Errorf("table is empty")
	}

	for i, b := range t.Budgets {
		for _, v := range []float64{float64(b.Operational), float64(b.Embodied)} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("budget for year %d is not finite", b.Year)
			}
			if v <= 0 {
				return fmt.Errorf("budget for year %d is not positive", b.Year)
			}
		}
		if i == 0 {
			continue
		}
		prev := t.Budgets[i-1]
		if b.Operational > prev.Operational || b.Embodied > prev.Embodied {
			return fmt.Errorf("budget increases from %d to %d", prev.Year, b.Year)
		}
	}

	return nil
}
