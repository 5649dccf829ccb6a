package trend_test

import (
	"testing"

	"github.com/bauwende/building-ghg-budget/model/trend"
	"github.com/stretchr/testify/assert"
)

func TestOperationalMix(t *testing.T) {
	mix := trend.NewOperationalMix(2025, 2045)

	// combined non-renewable share at the period bounds, percent
	assert.InDelta(t, 68.526, mix.Eval(2025), 0.001)
	assert.InDelta(t, 14.773, mix.Eval(2045), 0.001)

	assert.InDelta(t, 0.153192, mix.EndRatio(), 1e-6)
}

func TestOperationalMixDeclines(t *testing.T) {
	mix := trend.NewOperationalMix(2025, 2045)

	for year := 2026; year <= 2045; year++ {
		assert.Less(t, mix.Eval(float64(year)), mix.Eval(float64(year-1)), "mix share declines in %d", year)
	}
}
