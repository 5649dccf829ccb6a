package dynamic_test

import (
	"context"
	"math"
	"testing"

	buildingbudget "github.com/bauwende/building-ghg-budget"
	"github.com/bauwende/building-ghg-budget/model/dynamic"
	"github.com/bauwende/building-ghg-budget/model/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleOperationalReference(t *testing.T) {
	scaler := dynamic.NewScaler(2025, 2045)
	mix := trend.NewOperationalMix(2025, 2045)

	values, err := scaler.Scale(context.Background(), 3.86, mix)
	require.NoError(t, err)
	require.Len(t, values, 21)

	assert.InDelta(t, 6.8639, values[0].KgCO2eqM2Year(), 0.001)
	assert.InDelta(t, 1.0515, values[20].KgCO2eqM2Year(), 0.001)

	// the boundary ratio of the projection data is preserved
	assert.InDelta(t, mix.EndRatio(), values[20].KgCO2eqM2Year()/values[0].KgCO2eqM2Year(), 1e-9)

	for i := 1; i < len(values); i++ {
		assert.Less(t, values[i], values[i-1])
	}
}

func TestScalePreservesBudgetArea(t *testing.T) {
	scaler := dynamic.NewScaler(2025, 2045)

	exponential := buildingbudget.TrendFunc{
		Fn:    func(year float64) float64 { return math.Exp(-(year - 2025) / 10) },
		Ratio: math.Exp(-2),
	}

	values, err := scaler.Scale(context.Background(), 2.0, exponential)
	require.NoError(t, err)
	require.Len(t, values, 21)

	assert.InDelta(t, math.Exp(-2), values[20].KgCO2eqM2Year()/values[0].KgCO2eqM2Year(), 1e-9)

	for _, v := range values {
		assert.Positive(t, v.KgCO2eqM2Year())
	}

	// the first year exceeds the flat budget, the last stays below it
	assert.Greater(t, values[0].KgCO2eqM2Year(), 2.0)
	assert.Less(t, values[20].KgCO2eqM2Year(), 2.0)
}

func TestScaleRejectsInvalidInput(t *testing.T) {
	scaler := dynamic.NewScaler(2025, 2045)
	mix := trend.NewOperationalMix(2025, 2045)

	_, err := scaler.Scale(context.Background(), 0, mix)
	assert.ErrorContains(t, err, "positive")

	_, err = scaler.Scale(context.Background(), 3.86, buildingbudget.TrendFunc{
		Fn:    func(year float64) float64 { return 1 },
		Ratio: 1.2,
	})
	assert.ErrorContains(t, err, "end ratio")

	_, err = scaler.Scale(context.Background(), 3.86, buildingbudget.TrendFunc{
		Fn:    func(year float64) float64 { return math.NaN() },
		Ratio: 0.15,
	})
	assert.ErrorContains(t, err, "not finite")
}

func TestScaleCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dynamic.NewScaler(2025, 2045).Scale(ctx, 3.86, trend.NewOperationalMix(2025, 2045))
	assert.ErrorIs(t, err, context.Canceled)
}
