package trend

import (
	"fmt"

	"github.com/bauwende/building-ghg-budget/internal/refdata"
	"gonum.org/v1/gonum/interp"
)

// Monotone is a non-parametric trend through the raw projection points, a
// shape-preserving cubic interpolant. It serves as a cross-check for the
// parametric fits.
type Monotone struct {
	predictor interp.FritschButland
	endRatio  float64
}

func NewMonotone(series refdata.Series) (*Monotone, error) {
	monotone := &Monotone{endRatio: series.EndRatio()}
	if err := monotone.predictor.Fit(series.Years, series.Values); err != nil {
		return nil, fmt.Errorf("failed to interpolate projection series: %w", err)
	}
	return monotone, nil
}

func (m *Monotone) Eval(year float64) float64 {
	return m.predictor.Predict(year)
}

func (m *Monotone) EndRatio() float64 {
	return m.endRatio
}
