package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	buildingbudget "github.com/bauwende/building-ghg-budget"
	"github.com/bauwende/building-ghg-budget/internal/refdata"
	"github.com/bauwende/building-ghg-budget/internal/scenario"
	"github.com/bauwende/building-ghg-budget/model/dynamic"
	"github.com/bauwende/building-ghg-budget/model/stock"
	"github.com/bauwende/building-ghg-budget/model/trend"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx := context.Background()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}

	flagScenario := ""
	flagTrendFamily := ""
	flagOutputDir := ""
	flagLogLevel := ""
	flagLogFormat := ""
	flagOverrides := make([]string, 0)

	flag.StringVar(&flagScenario, "scenario", "", "scenario file (yaml), defaults to the published reference scenario")
	flag.StringVar(&flagTrendFamily, "trend.family", "cubic", "function family for the embodied emission trend")
	flag.StringVar(&flagOutputDir, "output.dir", "results", "directory to write result tables to")
	flag.StringVar(&flagLogLevel, "log.level", "info", "log severity (debug, info, warn, error)")
	flag.StringVar(&flagLogFormat, "log.format", "text", "log format (text, json)")
	flag.Func("set", "override a scenario value, key=value (repeatable)", func(s string) error {
		flagOverrides = append(flagOverrides, s)
		return nil
	})

	flag.Parse()

	initLogging(flagLogLevel, flagLogFormat)

	scn, err := scenario.Load(flagScenario, flagOverrides)
	if err != nil {
		slog.Error("failed to load scenario", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(flagOutputDir, 0o755); err != nil {
		slog.Error("failed to create output directory", "dir", flagOutputDir, "err", err)
		os.Exit(1)
	}

	// Stage 1: static budget determination.
	projection := stock.NewProjection(scn)
	stockResult, err := projection.Project(ctx)
	if err != nil {
		slog.Error("failed to project building stock", "err", err)
		os.Exit(1)
	}

	slog.Info("static budget determined",
		"avg_operational_kgco2e_m2a", stockResult.AverageOperational.Round(2).KgCO2eqM2Year(),
		"avg_embodied_kgco2e_m2a", stockResult.AverageEmbodied.Round(2).KgCO2eqM2Year(),
		"stock_2045_mio_m2", stockResult.Years[len(stockResult.Years)-1].TotalArea.MillionSquareMeters())

	writeFile(flagOutputDir, "stock.csv", stockResult.WriteCSV)

	// Stage 2: emission trend functions.
	series := refdata.EmbodiedDecarbonization()

	report := trend.FitAll(ctx, series)
	for _, row := range report {
		if row.Err != nil {
			slog.Warn("function family did not fit", "family", row.Family, "err", row.Err)
			continue
		}
		slog.Debug("fitted function family", "family", row.Family,
			"r2", row.Fit.R2, "aic", row.Fit.AIC)
	}
	writeFile(flagOutputDir, "fit_report.csv", func(w io.Writer) error {
		return trend.WriteReportCSV(w, report)
	})

	family, err := trend.LookupFamilyByName(flagTrendFamily)
	if err != nil {
		slog.Error("unknown trend family", "family", flagTrendFamily, "err", err)
		os.Exit(1)
	}

	embodiedTrend, err := trend.FitSeries(family, series)
	if err != nil {
		slog.Error("failed to fit embodied emission trend", "family", family.Name, "err", err)
		os.Exit(1)
	}
	slog.Info("embodied emission trend fitted", "family", family.Name,
		"r2", embodiedTrend.R2, "rmse", embodiedTrend.RMSE, "aic", embodiedTrend.AIC)

	logFitDeviation(embodiedTrend, series)

	operationalTrend := trend.NewOperationalMix(scn.BaseYear, scn.NeutralityYear)

	// Stage 3: dynamic budget determination.
	calculator := buildingbudget.NewCalculator(
		buildingbudget.WithBaseline(projection),
		buildingbudget.WithScaler(dynamic.NewScaler(scn.BaseYear, scn.NeutralityYear)),
		buildingbudget.WithOperationalTrend(operationalTrend),
		buildingbudget.WithEmbodiedTrend(embodiedTrend),
		buildingbudget.WithPeriod(scn.BaseYear, scn.NeutralityYear),
	)

	table, err := calculator.Run(ctx)
	if err != nil {
		slog.Error("failed to compute dynamic budget", "err", err)
		os.Exit(1)
	}

	first := table.Budgets[0]
	last := table.Budgets[len(table.Budgets)-1]
	slog.Info("dynamic budget computed", "run_id", table.RunID,
		"operational_first", first.Operational.Round(2).KgCO2eqM2Year(),
		"operational_last", last.Operational.Round(2).KgCO2eqM2Year(),
		"embodied_first", first.Embodied.Round(2).KgCO2eqM2Year(),
		"embodied_last", last.Embodied.Round(2).KgCO2eqM2Year())

	writeFile(flagOutputDir, "budget.csv", table.WriteCSV)
	writeFile(flagOutputDir, "budget.json", table.WriteJSON)
}

// logFitDeviation compares the parametric fit against the shape-preserving
// interpolant of the raw projection points.
func logFitDeviation(fit *trend.Fit, series refdata.Series) {
	monotone, err := trend.NewMonotone(series)
	if err != nil {
		slog.Warn("failed to interpolate projection series", "err", err)
		return
	}

	deviation := 0.0
	for _, year := range series.Years {
		deviation = math.Max(deviation, math.Abs(fit.Eval(year)-monotone.Eval(year)))
	}

	slog.Debug("fit deviation from projection points", "family", fit.Family.Name,
		"max_percentage_points", deviation)
}

func writeFile(dir, name string, write func(w io.Writer) error) {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create result file", "path", path, "err", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := write(f); err != nil {
		slog.Error("failed to write result file", "path", path, "err", err)
		os.Exit(1)
	}

	slog.Info("result file written", "path", path)
}

func initLogging(logLevel string, logFormat string) {
	switch logFormat {
	case "text":
		slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:   slogLevel(logLevel),
			NoColor: !isatty.IsTerminal(os.Stdout.Fd()),
		})))
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(logLevel),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				switch a.Key {
				case slog.LevelKey:
					a.Key = "severity"
					return a
				case slog.MessageKey:
					a.Key = "message"
					return a
				default:
					return a
				}
			},
		})))
	}
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
