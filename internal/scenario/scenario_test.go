package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bauwende/building-ghg-budget/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenario(t *testing.T) {
	scn := scenario.Default()

	require.NoError(t, scn.Validate())
	assert.Equal(t, 21, scn.Years())
	assert.InDelta(t, 411.499, scn.GHGBudgetGt(), 0.001)
	assert.InDelta(t, 0.6293, scn.OperationalShare(), 0.0001)
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	scn, err := scenario.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), scn)
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := "neutrality_year: 2040\nnew_build_rate: 0.02\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	scn, err := scenario.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 2040, scn.NeutralityYear)
	assert.Equal(t, 0.02, scn.NewBuildRate)
	// untouched values keep their defaults
	assert.Equal(t, 2025, scn.BaseYear)
	assert.Equal(t, 0.303, scn.BuildingSectorShare)
}

func TestLoadUnknownKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("neutality_year: 2040\n"), 0o644))

	_, err := scenario.Load(path, nil)
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	scn, err := scenario.Load("", []string{"neutrality_year=2040", "renovation_rate=0.015"})
	require.NoError(t, err)

	assert.Equal(t, 2040, scn.NeutralityYear)
	assert.Equal(t, 0.015, scn.RenovationRate)
}

func TestLoadMalformedOverride(t *testing.T) {
	_, err := scenario.Load("", []string{"neutrality_year"})
	assert.ErrorContains(t, err, "key=value")
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(s *scenario.Scenario){
		"neutrality before base":   func(s *scenario.Scenario) { s.NeutralityYear = 2024 },
		"stock year after base":    func(s *scenario.Scenario) { s.StockFromYear = 2030 },
		"budget already spent":     func(s *scenario.Scenario) { s.EmittedCO2Gt = 600 },
		"embodied share too large": func(s *scenario.Scenario) { s.EmbodiedShare = 1.5 },
		"negative rate":            func(s *scenario.Scenario) { s.DemolitionRate = -0.1 },
		"zero living area":         func(s *scenario.Scenario) { s.ResidentialLivingArea = 0 },
		"zero lifecycle":           func(s *scenario.Scenario) { s.LifecycleYears = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			scn := scenario.Default()
			mutate(scn)
			assert.Error(t, scn.Validate())
		})
	}
}
