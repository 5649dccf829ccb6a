package buildingbudget

import "math"

// Intensity is a GHG emission intensity in kgCO2e per square meter and year.
type Intensity float64

func (i Intensity) KgCO2eqM2Year() float64 {
	return float64(i)
}

func (i Intensity) GCO2eqM2Year() float64 {
	return float64(i) * 1000
}

func (i Intensity) TCO2eqM2Year() float64 {
	return float64(i) / 1000
}

// Round returns the intensity rounded to the given number of decimals.
// Published reference values carry two decimals.
func (i Intensity) Round(decimals int) Intensity {
	pow := math.Pow(10, float64(decimals))
	return Intensity(math.Round(float64(i)*pow) / pow)
}

// Area is a building floor area in square meters.
type Area float64

func (a Area) SquareMeters() float64 {
	return float64(a)
}

func (a Area) SquareKilometers() float64 {
	return float64(a) / 1e6
}

// MillionSquareMeters is the unit used in the published stock tables.
func (a Area) MillionSquareMeters() float64 {
	return float64(a) / 1e6
}
