package http

import (
	"context"

	"qlfscli/internal/labour"
	"qlfscli/internal/services"
)

// ReportService is the interface the report handler depends on. Defined here
// so handlers can be tested against a stub.
type ReportService interface {
	Report(ctx context.Context) (*services.Report, error)
	CompareProvinces(ctx context.Context, a, b string, level float64) (labour.Comparison, error)
}
