// Package dynamic turns a static per-m² budget into a year-indexed budget
// that follows a decarbonization trend.
//
// For a trend Z(t) the dynamic budget is dynamic(t) = a + b·Z(t), with a and
// b chosen so that the area under the dynamic budget over the accounting
// period equals the area under the static budget line, and the ratio
// dynamic(last)/dynamic(first) equals the ratio of the projection data at the
// period bounds. Both conditions pin a and b down in closed form.
package dynamic

import (
	"context"
	"fmt"
	"math"

	buildingbudget "github.com/bauwende/building-ghg-budget"
	"gonum.org/v1/gonum/integrate/quad"
)

// quadNodes is the Gauss-Legendre node count. The trends are smooth over a
// 20 year interval, this is far beyond the accuracy of the reference data.
const quadNodes = 200

type Scaler struct {
	firstYear int
	lastYear  int
}

func NewScaler(baseYear, neutralityYear int) *Scaler {
	return &Scaler{firstYear: baseYear, lastYear: neutralityYear}
}

// Scale computes the dynamic budget values, one per year from the base year
// to the neutrality year. Violated constraints are terminal.
func (s *Scaler) Scale(ctx context.Context, base buildingbudget.Intensity, trend buildingbudget.Trend) ([]buildingbudget.Intensity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if base <= 0 {
		return nil, fmt.Errorf("static budget must be positive, got %v", base)
	}

	first, last := float64(s.firstYear), float64(s.lastYear)

	zFirst := trend.Eval(first)
	zLast := trend.Eval(last)
	for _, z := range []float64{zFirst, zLast} {
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return nil, fmt.Errorf("trend is not finite at the period bounds")
		}
	}

	ratio := trend.EndRatio()
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("trend end ratio must be in (0,1), got %v", ratio)
	}

	// Area under the static budget line and under the trend.
	staticIntegral := base.KgCO2eqM2Year() * (last - first)
	trendIntegral := quad.Fixed(trend.Eval, first, last, quadNodes, nil, 0)

	// dynamic(last) = ratio * dynamic(first)
	//   => a + b·Z(last) = ratio · (a + b·Z(first))
	//   => a = b · (ratio·Z(first) − Z(last)) / (1 − ratio)
	// ∫ dynamic = a·(last − first) + b·∫Z = static integral
	numerator := -(zLast - ratio*zFirst)
	denominator := numerator/(1-ratio)*(last-first) + trendIntegral
	if denominator == 0 {
		return nil, fmt.Errorf("scaling system is singular")
	}

	b := staticIntegral / denominator
	a := b * numerator / (1 - ratio)

	dynamic := func(year float64) float64 {
		return a + b*trend.Eval(year)
	}

	values := make([]buildingbudget.Intensity, 0, s.lastYear-s.firstYear+1)
	for year := s.firstYear; year <= s.lastYear; year++ {
		v := dynamic(float64(year))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("dynamic budget is not finite in %d", year)
		}
		if v <= 0 {
			return nil, fmt.Errorf("dynamic budget is not positive in %d", year)
		}
		values = append(values, buildingbudget.Intensity(v))
	}

	if err := s.verify(dynamic, staticIntegral, ratio); err != nil {
		return nil, err
	}

	return values, nil
}

// verify recomputes both constraints on the solved budget.
func (s *Scaler) verify(dynamic func(float64) float64, staticIntegral, ratio float64) error {
	first, last := float64(s.firstYear), float64(s.lastYear)

	integral := quad.Fixed(dynamic, first, last, quadNodes, nil, 0)
	if relativeError(integral, staticIntegral) > 1e-9 {
		return fmt.Errorf("dynamic budget integral %.6f does not preserve the static budget %.6f", integral, staticIntegral)
	}

	solved := dynamic(last) / dynamic(first)
	if relativeError(solved, ratio) > 1e-9 {
		return fmt.Errorf("dynamic budget ratio %.6f does not match the projection ratio %.6f", solved, ratio)
	}

	return nil
}

func relativeError(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}
