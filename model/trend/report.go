package trend

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteReportCSV writes the model comparison table: one row per family with
// its goodness-of-fit scores and parameters, or the fitting error.
func WriteReportCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"family", "r2", "mae", "rmse", "aic", "parameters", "error"}); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Family, "", "", "", "", "", ""}
		if row.Err != nil {
			record[6] = row.Err.Error()
		} else {
			record[1] = formatScore(row.Fit.R2)
			record[2] = formatScore(row.Fit.MAE)
			record[3] = formatScore(row.Fit.RMSE)
			record[4] = formatScore(row.Fit.AIC)
			record[5] = formatParams(row.Fit.Params)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write report row for %s: %w", row.Family, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatParams(params []float64) string {
	formatted := make([]string, len(params))
	for i, p := range params {
		formatted[i] = strconv.FormatFloat(p, 'g', 8, 64)
	}
	return strings.Join(formatted, " ")
}
