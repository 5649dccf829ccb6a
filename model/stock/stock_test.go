package stock_test

import (
	"context"
	"testing"

	"github.com/bauwende/building-ghg-budget/internal/scenario"
	"github.com/bauwende/building-ghg-budget/model/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectReferenceScenario(t *testing.T) {
	result, err := stock.NewProjection(scenario.Default()).Project(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Years, 21)

	// Published period averages.
	assert.InDelta(t, 3.8568, result.AverageOperational.KgCO2eqM2Year(), 0.001)
	assert.InDelta(t, 2.4106, result.AverageEmbodied.KgCO2eqM2Year(), 0.001)

	first := result.Years[0]
	assert.Equal(t, 2025, first.Year)
	assert.InDelta(t, 9493457189, first.TotalArea.SquareMeters(), 1000)
	assert.InDelta(t, 178944134, first.AddedArea.SquareMeters(), 100)
	assert.InDelta(t, 4.1719, first.Operational.KgCO2eqM2Year(), 0.001)
	assert.InDelta(t, 2.6076, first.Embodied.KgCO2eqM2Year(), 0.001)

	last := result.Years[20]
	assert.Equal(t, 2045, last.Year)
	assert.InDelta(t, 11133585240, last.TotalArea.SquareMeters(), 1000)
	assert.InDelta(t, 3.5573, last.Operational.KgCO2eqM2Year(), 0.001)
	assert.InDelta(t, 2.2234, last.Embodied.KgCO2eqM2Year(), 0.001)
}

func TestProjectStockGrowsBudgetShrinks(t *testing.T) {
	result, err := stock.NewProjection(scenario.Default()).Project(context.Background())
	require.NoError(t, err)

	for i := 1; i < len(result.Years); i++ {
		previous, current := result.Years[i-1], result.Years[i]
		assert.Greater(t, current.TotalArea, previous.TotalArea, "stock grows with net new construction")
		assert.Less(t, current.Operational, previous.Operational)
		assert.Less(t, current.Embodied, previous.Embodied)
	}
}

func TestProjectWithoutAddedAreaFails(t *testing.T) {
	scn := scenario.Default()
	scn.NewBuildRate = 0
	scn.RenovationRate = 0
	require.NoError(t, scn.Validate())

	_, err := stock.NewProjection(scn).Project(context.Background())
	assert.ErrorContains(t, err, "no area is added")
}

func TestProjectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stock.NewProjection(scenario.Default()).Project(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticBudget(t *testing.T) {
	static, err := stock.NewProjection(scenario.Default()).StaticBudget(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3.86, static.Operational.Round(2).KgCO2eqM2Year())
	assert.Equal(t, 2.41, static.Embodied.Round(2).KgCO2eqM2Year())
}
