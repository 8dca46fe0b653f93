// Command analyzer runs the QLFS aggregation and hypothesis-testing pipeline
// once and exports the derived tables for the dashboard.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"qlfscli/internal/config"
	"qlfscli/internal/exporter"
	"qlfscli/internal/infrastructure"
	"qlfscli/internal/services"
)

func main() {
	inputFile := flag.String("input", "", "cleaned QLFS dataset (.xlsx or .csv, defaults to the configured input file)")
	outputDir := flag.String("out", "", "output directory for derived tables (defaults to the configured reports dir)")
	confidence := flag.Float64("confidence", 0, "confidence level for interval estimates (defaults to the configured level)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *inputFile != "" {
		cfg.Paths.InputFile = *inputFile
	}
	if *outputDir != "" {
		cfg.Paths.ReportsDir = *outputDir
	}
	if *confidence != 0 {
		cfg.Analysis.ConfidenceLevel = *confidence
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)

	ctx := context.Background()
	svc := services.NewReportService(cfg, logger)

	report, err := svc.Report(ctx)
	if err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	logFindings(logger, report)

	writer := exporter.NewCSVWriter(cfg.Paths.ReportsDir)
	exports := []struct {
		name string
		fn   func() error
	}{
		{"provinces.csv", func() error { return writer.WriteProvinceTable("provinces.csv", report.Provinces) }},
		{"gender_gap.csv", func() error { return writer.WriteGenderGapTable("gender_gap.csv", report.GenderGapRanking) }},
		{"groups_by_volume.csv", func() error { return writer.WriteGroupSummaryTable("groups_by_volume.csv", report.GroupsByVolume) }},
		{"groups_by_rate.csv", func() error { return writer.WriteGroupSummaryTable("groups_by_rate.csv", report.GroupsByRate) }},
		{"report.json", func() error { return writer.WriteJSON("report.json", report) }},
	}
	for _, e := range exports {
		if err := e.fn(); err != nil {
			logger.Error("Export failed", "file", e.name, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Analysis complete",
		"report_id", report.ID,
		"reports_dir", cfg.Paths.ReportsDir,
		"files", len(exports))
}

func logFindings(logger *slog.Logger, report *services.Report) {
	if report.HighestUnemployment != nil && report.HighestUnemployment.UnemploymentRate.Valid {
		logger.Info("Highest unemployment",
			"province", report.HighestUnemployment.Key,
			"rate", report.HighestUnemployment.UnemploymentRate.Value)
	}
	if report.LowestUnemployment != nil && report.LowestUnemployment.UnemploymentRate.Valid {
		logger.Info("Lowest unemployment",
			"province", report.LowestUnemployment.Key,
			"rate", report.LowestUnemployment.UnemploymentRate.Value)
	}

	if cmp := report.ExtremesComparison; cmp != nil {
		if cmp.ChiSquare != nil {
			logger.Info("Chi-square test between extremes",
				"a", cmp.A.Key,
				"b", cmp.B.Key,
				"statistic", cmp.ChiSquare.Statistic,
				"p_value", cmp.ChiSquare.PValue,
				"significant_at_0.001", cmp.ChiSquare.PValue < 0.001)
		} else {
			logger.Warn("Chi-square test not computable for the extreme provinces")
		}
		if cmp.IntervalA != nil && cmp.IntervalB != nil {
			logger.Info("Confidence intervals",
				"level", report.ConfidenceLevel,
				"a_lower", cmp.IntervalA.Lower, "a_upper", cmp.IntervalA.Upper,
				"b_lower", cmp.IntervalB.Lower, "b_upper", cmp.IntervalB.Upper,
				"overlap", cmp.IntervalsOverlap)
		}
	}

	if len(report.GenderGapRanking) > 0 {
		top := report.GenderGapRanking[0]
		if top.GenderGap.Valid {
			logger.Info("Widest gender gap",
				"province", top.Key,
				"gap", top.GenderGap.Value)
		}
	}
}
