package trend

import "math"

// Fitted parameters for the decline of the non-renewable share in the German
// heating supply (sigmoid) and electricity supply (sinusoid), from the
// published projection analysis. Both take the year normalized onto [0,1].
const (
	heatingPlateau    = 88.71710115840355
	heatingSteepness  = -3.348762256837263
	heatingMidpoint   = 0.4505688285851687
	electricityAmp    = 36.10080564331148
	electricityFreq   = 0.3155578919710513
	electricityPhase  = 3.058151974258264
	electricityOffset = 39.54060321870498
)

// Non-renewable shares of the energy mix at the period bounds, in percent.
const (
	HeatingShare2025     = 71.9
	HeatingShare2045     = 11.6
	ElectricityShare2025 = 42.2
	ElectricityShare2045 = 4.3
)

// ElectricityWeight is the electricity share of operational energy use in
// buildings, the remainder is heating.
const ElectricityWeight = 0.137

// OperationalMix is the combined non-renewable share of the operational
// energy supply, heating and electricity weighted together.
type OperationalMix struct {
	firstYear float64
	lastYear  float64
	weight    float64
}

func NewOperationalMix(baseYear, neutralityYear int) *OperationalMix {
	return &OperationalMix{
		firstYear: float64(baseYear),
		lastYear:  float64(neutralityYear),
		weight:    ElectricityWeight,
	}
}

func (m *OperationalMix) Eval(year float64) float64 {
	x := (year - m.firstYear) / (m.lastYear - m.firstYear)
	return (1-m.weight)*heating(x) + m.weight*electricity(x)
}

// EndRatio weights the boundary ratios of both mixes, keeping the relation of
// the projection data relevant for the scaled budget.
func (m *OperationalMix) EndRatio() float64 {
	return m.weight*(ElectricityShare2045/ElectricityShare2025) +
		(1-m.weight)*(HeatingShare2045/HeatingShare2025)
}

func heating(x float64) float64 {
	return heatingPlateau / (1 + math.Exp(-heatingSteepness*(x-heatingMidpoint)))
}

func electricity(x float64) float64 {
	return electricityAmp*math.Sin(electricityFreq*x+electricityPhase) + electricityOffset
}
