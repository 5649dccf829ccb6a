// Package refdata embeds the published projection tables the trend functions
// are fitted against.
package refdata

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"

	"github.com/bauwende/building-ghg-budget/internal/must"
)

//go:embed data/agora_embodied.csv
var agoraEmbodiedCSV []byte

// Series is a year-indexed projection, values in percent.
type Series struct {
	Years  []float64
	Values []float64
}

func (s Series) Len() int {
	return len(s.Years)
}

// EndRatio is the ratio between the last and the first value of the series.
func (s Series) EndRatio() float64 {
	return s.Values[len(s.Values)-1] / s.Values[0]
}

var embodied Series

func init() {
	embodied = parseSeries(agoraEmbodiedCSV)
}

// EmbodiedDecarbonization returns the Agora Industrie (2024) projection for
// the reduction of embodied emissions compared to 2025, in percent, one value
// per year from 2025 to 2045.
func EmbodiedDecarbonization() Series {
	return embodied
}

func parseSeries(raw []byte) Series {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Read() // skip header line

	series := Series{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		must.NoError(err)

		series.Years = append(series.Years, must.CastFloat64(record[0]))
		series.Values = append(series.Values, must.CastFloat64(record[1]))
	}

	must.Assert(series.Len() > 0, "embedded projection series is empty")

	return series
}
