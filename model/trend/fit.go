package trend

import (
	"context"
	"fmt"
	"math"

	"github.com/bauwende/building-ghg-budget/internal/refdata"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Fit is a fitted function family over a projection series. It implements
// the Trend interface of the root package.
type Fit struct {
	Family Family
	Params []float64

	R2   float64
	MAE  float64
	RMSE float64
	AIC  float64

	firstYear float64
	lastYear  float64
	endRatio  float64
}

// FitSeries fits the family to the series and scores the fit. Families that
// are linear in their parameters are solved exactly, the others are minimized
// with Nelder-Mead starting from the family's initial guess. A fit that does
// not converge or produces non-finite parameters is an error.
func FitSeries(family Family, series refdata.Series) (*Fit, error) {
	if series.Len() < family.Params {
		return nil, fmt.Errorf("%s fit needs at least %d points, series has %d", family.Name, family.Params, series.Len())
	}

	xs := normalize(series.Years, family.scale)

	var params []float64
	var err error
	if family.basis != nil {
		params, err = solveLeastSquares(family, xs, series.Values)
	} else {
		params, err = minimizeResiduals(family, xs, series.Values)
	}
	if err != nil {
		return nil, err
	}

	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%s fit produced non-finite parameters", family.Name)
		}
	}

	fit := &Fit{
		Family:    family,
		Params:    params,
		firstYear: series.Years[0],
		lastYear:  series.Years[series.Len()-1],
		endRatio:  series.EndRatio(),
	}
	fit.score(xs, series.Values)

	return fit, nil
}

// Eval evaluates the fit at a calendar year, normalizing it the same way the
// series was normalized for fitting.
func (f *Fit) Eval(year float64) float64 {
	x := (year - f.firstYear) / (f.lastYear - f.firstYear)
	if f.Family.scale == periodScale {
		x *= 2 * math.Pi
	}
	return f.Family.Eval(x, f.Params)
}

// EndRatio is the ratio between the last and the first value of the
// underlying projection data.
func (f *Fit) EndRatio() float64 {
	return f.endRatio
}

func (f *Fit) score(xs, ys []float64) {
	n := len(ys)
	estimates := make([]float64, n)
	sse, sae := 0.0, 0.0
	for i, x := range xs {
		estimates[i] = f.Family.Eval(x, f.Params)
		residual := ys[i] - estimates[i]
		sse += residual * residual
		sae += math.Abs(residual)
	}

	f.R2 = stat.RSquaredFrom(estimates, ys, nil)
	f.MAE = sae / float64(n)
	f.RMSE = math.Sqrt(sse / float64(n))
	f.AIC = 2*float64(f.Family.Params) + float64(n)*math.Log(sse/float64(n))
}

// solveLeastSquares solves min ||A p - y|| for the family basis. The solution
// is unique and exact, no initial guess involved.
func solveLeastSquares(family Family, xs, ys []float64) ([]float64, error) {
	rows, cols := len(xs), len(family.basis)

	a := mat.NewDense(rows, cols, nil)
	for i, x := range xs {
		for j, basis := range family.basis {
			a.Set(i, j, basis(x))
		}
	}

	var solution mat.VecDense
	if err := solution.SolveVec(a, mat.NewVecDense(rows, ys)); err != nil {
		return nil, fmt.Errorf("%s least squares solve failed: %w", family.Name, err)
	}

	params := make([]float64, cols)
	for i := range params {
		params[i] = solution.AtVec(i)
	}

	return params, nil
}

func minimizeResiduals(family Family, xs, ys []float64) ([]float64, error) {
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			sse := 0.0
			for i, x := range xs {
				residual := family.Eval(x, p) - ys[i]
				sse += residual * residual
			}
			if math.IsNaN(sse) {
				return math.Inf(1)
			}
			return sse
		},
	}

	guess := family.guess(xs, ys)

	result, err := optimize.Minimize(problem, guess, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%s fit did not converge: %w", family.Name, err)
	}
	if math.IsInf(result.F, 0) || math.IsNaN(result.F) {
		return nil, fmt.Errorf("%s fit diverged", family.Name)
	}

	return result.X, nil
}

// ReportRow is the outcome of fitting one family, successful or not.
type ReportRow struct {
	Family string
	Fit    *Fit
	Err    error
}

// FitAll fits every candidate family to the series and returns one row per
// family. A family that fails to fit is reported, not fatal.
func FitAll(ctx context.Context, series refdata.Series) []ReportRow {
	rows := make([]ReportRow, len(Families))

	errg, _ := errgroup.WithContext(ctx)
	errg.SetLimit(4)

	for i, family := range Families {
		errg.Go(func() error {
			fit, err := FitSeries(family, series)
			rows[i] = ReportRow{Family: family.Name, Fit: fit, Err: err}
			return nil
		})
	}

	errg.Wait()

	return rows
}

func normalize(years []float64, scale scaling) []float64 {
	first, last := years[0], years[len(years)-1]

	xs := make([]float64, len(years))
	for i, year := range years {
		xs[i] = (year - first) / (last - first)
		if scale == periodScale {
			xs[i] *= 2 * math.Pi
		}
	}

	return xs
}
