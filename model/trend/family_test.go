package trend_test

import (
	"testing"

	"github.com/bauwende/building-ghg-budget/model/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFamilyByName(t *testing.T) {
	family, err := trend.LookupFamilyByName("cubic")
	require.NoError(t, err)
	assert.Equal(t, "cubic", family.Name)

	// partial names resolve to the closest family
	family, err = trend.LookupFamilyByName("expo")
	require.NoError(t, err)
	assert.Equal(t, "exponential", family.Name)

	family, err = trend.LookupFamilyByName("Sigmoid")
	require.NoError(t, err)
	assert.Equal(t, "sigmoid", family.Name)

	_, err = trend.LookupFamilyByName("zzz")
	assert.Error(t, err)
}

func TestFamiliesCoverPublishedComparison(t *testing.T) {
	names := make([]string, 0, len(trend.Families))
	for _, family := range trend.Families {
		names = append(names, family.Name)
	}

	assert.Equal(t, []string{
		"linear", "quadratic", "cubic", "exponential",
		"logarithmic", "power", "sinusoidal", "sigmoid",
	}, names)
}
