package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "qlfscli/internal/errors"
	"qlfscli/internal/services"
)

// ReportHandler handles report-related HTTP requests.
type ReportHandler struct {
	service ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportService, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "report")),
	}
}

// RegisterRoutes registers the report routes.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/report", h.GetReport)
	r.Get("/provinces", h.GetProvinces)
	r.Get("/provinces/gender-gap", h.GetGenderGapRanking)
	r.Get("/groups", h.GetGroups)
	r.Get("/comparison", h.GetComparison)
}

// GetReport handles GET /api/v1/report.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	reportsServed.WithLabelValues("report").Inc()
	render.JSON(w, r, report)
}

// GetProvinces handles GET /api/v1/provinces.
func (h *ReportHandler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	reportsServed.WithLabelValues("provinces").Inc()
	render.JSON(w, r, report.Provinces)
}

// GetGenderGapRanking handles GET /api/v1/provinces/gender-gap.
func (h *ReportHandler) GetGenderGapRanking(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	reportsServed.WithLabelValues("gender_gap").Inc()
	render.JSON(w, r, report.GenderGapRanking)
}

// GetGroups handles GET /api/v1/groups. The optional sort parameter selects
// the volume or rate ordering; the default is alphabetical.
func (h *ReportHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}

	sortBy := strings.ToLower(r.URL.Query().Get("sort"))
	switch sortBy {
	case "", "group":
		reportsServed.WithLabelValues("groups").Inc()
		render.JSON(w, r, report.Groups)
	case "volume":
		reportsServed.WithLabelValues("groups").Inc()
		render.JSON(w, r, report.GroupsByVolume)
	case "rate":
		reportsServed.WithLabelValues("groups").Inc()
		render.JSON(w, r, report.GroupsByRate)
	default:
		render.Render(w, r, apierrors.InvalidParameterWithDetails("sort", "must be one of group, volume, rate"))
	}
}

// GetComparison handles GET /api/v1/comparison?a=...&b=...&confidence=...
func (h *ReportHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		render.Render(w, r, apierrors.ErrMissingParameter)
		return
	}

	// A zero level tells the service to use its configured default.
	var level float64
	if raw := r.URL.Query().Get("confidence"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			render.Render(w, r, apierrors.InvalidParameterWithDetails("confidence", "must be a number"))
			return
		}
		level = parsed
	}

	cmp, err := h.service.CompareProvinces(ctx, a, b, level)
	if err != nil {
		var notFound *services.ProvinceNotFoundError
		switch {
		case errors.As(err, &notFound):
			render.Render(w, r, apierrors.ProvinceNotFoundWithName(notFound.Name))
		case errors.Is(err, services.ErrProvinceNotFound):
			render.Render(w, r, apierrors.ErrProvinceNotFound)
		case errors.Is(err, services.ErrInvalidConfidenceLevel):
			render.Render(w, r, apierrors.InvalidParameterWithDetails("confidence", "must be between 0 and 1 exclusive"))
		default:
			h.logger.ErrorContext(ctx, "comparison failed", slog.String("error", err.Error()))
			render.Render(w, r, apierrors.ErrReportFailed)
		}
		return
	}

	reportsServed.WithLabelValues("comparison").Inc()
	render.JSON(w, r, cmp)
}

// report fetches the cached report, rendering the failure itself.
func (h *ReportHandler) report(w http.ResponseWriter, r *http.Request) (*services.Report, bool) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "report generation failed",
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.ErrReportFailed)
		return nil, false
	}
	return report, true
}
