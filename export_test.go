package buildingbudget_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	buildingbudget "github.com/bauwende/building-ghg-budget"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *buildingbudget.Table {
	table := buildingbudget.NewTable(buildingbudget.StaticBudget{Operational: 3.86, Embodied: 2.41})
	table.Budgets = []buildingbudget.YearlyBudget{
		{Year: 2025, Operational: 6.8639, Embodied: 6.4076},
		{Year: 2045, Operational: 1.0515, Embodied: 0.7926},
	}
	return table
}

func TestTableWriteCSV(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, sampleTable().WriteCSV(buf))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"year", "operational_kgco2e_m2a", "embodied_kgco2e_m2a"}, records[0])
	assert.Equal(t, []string{"2025", "6.86", "6.41"}, records[1])
	assert.Equal(t, []string{"2045", "1.05", "0.79"}, records[2])
}

func TestTableWriteJSON(t *testing.T) {
	table := sampleTable()

	buf := new(bytes.Buffer)
	require.NoError(t, table.WriteJSON(buf))

	decoded := struct {
		RunID             string  `json:"run_id"`
		StaticOperational float64 `json:"static_operational_kgco2e_m2a"`
		Budgets           []struct {
			Year        int     `json:"year"`
			Operational float64 `json:"operational_kgco2e_m2a"`
		} `json:"budgets"`
	}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	_, err := uuid.Parse(decoded.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 3.86, decoded.StaticOperational)
	require.Len(t, decoded.Budgets, 2)
	assert.Equal(t, 2025, decoded.Budgets[0].Year)
	assert.Equal(t, 6.8639, decoded.Budgets[0].Operational)
}
