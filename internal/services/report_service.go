package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"qlfscli/internal/config"
	"qlfscli/internal/dataprocessing"
	"qlfscli/internal/labour"
	"qlfscli/pkg/contracts/domain"
)

// Report is the full set of derived tables for one analysis run. It is
// computed once from the input dataset and immutable afterwards.
type Report struct {
	ID              string    `json:"id"`
	GeneratedAt     time.Time `json:"generated_at"`
	InputFile       string    `json:"input_file"`
	ConfidenceLevel float64   `json:"confidence_level"`

	ParseStats dataprocessing.ParseStats `json:"parse_stats"`

	Provinces []labour.Aggregate `json:"provinces"`

	HighestUnemployment *labour.Aggregate `json:"highest_unemployment,omitempty"`
	LowestUnemployment  *labour.Aggregate `json:"lowest_unemployment,omitempty"`
	LargestLabourForce  *labour.Aggregate `json:"largest_labour_force,omitempty"`

	// ExtremesComparison tests the highest-rate province against the
	// lowest-rate province.
	ExtremesComparison *labour.Comparison `json:"extremes_comparison,omitempty"`

	GenderGapRanking []labour.Aggregate `json:"gender_gap_ranking"`

	Groups         []labour.GroupSummary `json:"groups"`
	GroupsByVolume []labour.GroupSummary `json:"groups_by_volume"`
	GroupsByRate   []labour.GroupSummary `json:"groups_by_rate"`
}

// ReportService runs the aggregation and hypothesis-testing pipeline over
// the configured input file. The report is generated on first use and cached
// for the lifetime of the process; the pipeline is deterministic, so a rerun
// could only produce the same tables.
type ReportService struct {
	cfg        *config.Config
	logger     *slog.Logger
	aggregator *labour.Aggregator

	once   sync.Once
	report *Report
	err    error
}

// NewReportService creates a report service for the given configuration.
func NewReportService(cfg *config.Config, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		cfg:        cfg,
		logger:     logger,
		aggregator: labour.NewAggregator(logger),
	}
}

// Report returns the analysis report, generating it on first call.
func (s *ReportService) Report(ctx context.Context) (*Report, error) {
	s.once.Do(func() {
		s.report, s.err = s.generate(ctx)
	})
	return s.report, s.err
}

// CompareProvinces runs the significance comparison between two named
// provinces at the given confidence level. A zero level selects the
// configured default.
func (s *ReportService) CompareProvinces(ctx context.Context, a, b string, level float64) (labour.Comparison, error) {
	if level == 0 {
		level = s.cfg.Analysis.ConfidenceLevel
	}
	if level <= 0 || level >= 1 {
		return labour.Comparison{}, ErrInvalidConfidenceLevel
	}

	report, err := s.Report(ctx)
	if err != nil {
		return labour.Comparison{}, err
	}

	aggA, ok := findProvince(report.Provinces, a)
	if !ok {
		return labour.Comparison{}, &ProvinceNotFoundError{Name: a}
	}
	aggB, ok := findProvince(report.Provinces, b)
	if !ok {
		return labour.Comparison{}, &ProvinceNotFoundError{Name: b}
	}

	return labour.Compare(aggA, aggB, level), nil
}

func (s *ReportService) generate(ctx context.Context) (*Report, error) {
	start := time.Now()
	level := s.cfg.Analysis.ConfidenceLevel

	s.logger.InfoContext(ctx, "generating analysis report",
		"input_file", s.cfg.Paths.InputFile,
		"confidence_level", level)

	observations, stats, err := s.loadObservations()
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("no usable observations in %s (%d rows skipped)", s.cfg.Paths.InputFile, stats.Skipped())
	}

	provinces := s.aggregator.ByProvince(ctx, observations)

	report := &Report{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		InputFile:       s.cfg.Paths.InputFile,
		ConfidenceLevel: level,
		ParseStats:      stats,
		Provinces:       provinces,
	}

	unemploymentRate := func(a labour.Aggregate) labour.Rate { return a.UnemploymentRate }
	if highest, ok := labour.MaxBy(provinces, unemploymentRate); ok {
		report.HighestUnemployment = &highest
	}
	if lowest, ok := labour.MinBy(provinces, unemploymentRate); ok {
		report.LowestUnemployment = &lowest
	}
	if largest, ok := labour.MaxByCount(provinces, func(a labour.Aggregate) float64 { return a.ActiveTotal }); ok {
		report.LargestLabourForce = &largest
	}

	if report.HighestUnemployment != nil && report.LowestUnemployment != nil &&
		report.HighestUnemployment.Key != report.LowestUnemployment.Key {
		cmp := labour.Compare(*report.HighestUnemployment, *report.LowestUnemployment, level)
		report.ExtremesComparison = &cmp
	}

	report.GenderGapRanking = labour.RankByGenderGap(provinces)

	report.Groups = s.aggregator.SummarizeGroups(ctx, observations)
	report.GroupsByVolume = labour.ByVolume(report.Groups)
	report.GroupsByRate = labour.ByRate(report.Groups)

	s.logger.InfoContext(ctx, "analysis report generated",
		"report_id", report.ID,
		"provinces", len(report.Provinces),
		"groups", len(report.Groups),
		"rows_kept", stats.RowsKept,
		"rows_skipped", stats.Skipped(),
		"duration", time.Since(start).String())

	return report, nil
}

func (s *ReportService) loadObservations() ([]domain.Observation, dataprocessing.ParseStats, error) {
	path := s.cfg.Paths.InputFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataprocessing.ParseCSV(path)
	default:
		return dataprocessing.ParseWorkbook(path)
	}
}

func findProvince(provinces []labour.Aggregate, name string) (labour.Aggregate, bool) {
	for _, p := range provinces {
		if strings.EqualFold(p.Key, name) {
			return p, true
		}
	}
	return labour.Aggregate{}, false
}
