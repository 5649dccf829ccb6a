// Package trend fits parametric functions to published decarbonization
// projections and exposes them as year-indexed trends for the dynamic budget.
package trend

import (
	"fmt"
	"math"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type scaling int

const (
	// unitScale normalizes years onto [0,1].
	unitScale scaling = iota
	// periodScale additionally stretches the unit interval to [0,2π], one
	// full period of the sinusoidal family.
	periodScale
)

// Family is a candidate function type for curve fitting. Families that are
// linear in their parameters carry basis functions and are solved exactly by
// least squares; the others carry an initial guess and are minimized
// numerically.
type Family struct {
	Name   string
	Params int

	scale scaling
	eval  func(x float64, p []float64) float64
	basis []func(x float64) float64
	guess func(xs, ys []float64) []float64
}

// Eval evaluates the family at normalized x with parameters p.
func (f Family) Eval(x float64, p []float64) float64 {
	return f.eval(x, p)
}

// Families are the candidate function types, in the order of the published
// model comparison.
var Families = []Family{
	{
		Name:   "linear",
		Params: 2,
		eval:   func(x float64, p []float64) float64 { return p[0]*x + p[1] },
		basis: []func(x float64) float64{
			func(x float64) float64 { return x },
			func(x float64) float64 { return 1 },
		},
	},
	{
		Name:   "quadratic",
		Params: 3,
		eval:   func(x float64, p []float64) float64 { return p[0]*x*x + p[1]*x + p[2] },
		basis: []func(x float64) float64{
			func(x float64) float64 { return x * x },
			func(x float64) float64 { return x },
			func(x float64) float64 { return 1 },
		},
	},
	{
		Name:   "cubic",
		Params: 4,
		eval: func(x float64, p []float64) float64 {
			return p[0]*x*x*x + p[1]*x*x + p[2]*x + p[3]
		},
		basis: []func(x float64) float64{
			func(x float64) float64 { return x * x * x },
			func(x float64) float64 { return x * x },
			func(x float64) float64 { return x },
			func(x float64) float64 { return 1 },
		},
	},
	{
		Name:   "exponential",
		Params: 2,
		eval:   func(x float64, p []float64) float64 { return p[0] * math.Exp(p[1]*x) },
		guess: func(xs, ys []float64) []float64 {
			return []float64{ys[0], -1}
		},
	},
	{
		Name:   "logarithmic",
		Params: 2,
		// +1 keeps the logarithm defined at x=0.
		eval: func(x float64, p []float64) float64 { return p[0]*math.Log(x+1) + p[1] },
		basis: []func(x float64) float64{
			func(x float64) float64 { return math.Log(x + 1) },
			func(x float64) float64 { return 1 },
		},
	},
	{
		Name:   "power",
		Params: 2,
		// +1 keeps the power function defined at x=0.
		eval: func(x float64, p []float64) float64 { return p[0] * math.Pow(x+1, p[1]) },
		guess: func(xs, ys []float64) []float64 {
			return []float64{ys[0], -0.5}
		},
	},
	{
		Name:   "sinusoidal",
		Params: 4,
		scale:  periodScale,
		eval: func(x float64, p []float64) float64 {
			return p[0]*math.Sin(p[1]*x+p[2]) + p[3]
		},
		guess: func(xs, ys []float64) []float64 {
			return []float64{10, 1, 0, mean(ys)}
		},
	},
	{
		Name:   "sigmoid",
		Params: 3,
		eval: func(x float64, p []float64) float64 {
			return p[0] / (1 + math.Exp(-p[1]*(x-p[2])))
		},
		guess: func(xs, ys []float64) []float64 {
			return []float64{maxValue(ys), 1, 0.5}
		},
	},
}

// LookupFamilyByName fuzzy finds the best matching family for the given name.
func LookupFamilyByName(name string) (Family, error) {
	names := make([]string, len(Families))
	for i, family := range Families {
		names[i] = family.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) == 0 {
		return Family{}, fmt.Errorf("no function family matches %q", name)
	}

	sort.Sort(ranks)
	return Families[ranks[0].OriginalIndex], nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxValue(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
