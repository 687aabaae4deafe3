package sheets

import (
	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/quality"
	"github.com/parishworks/vestry/internal/service"
)

// QualityReport bundles the analyses that make up one spreadsheet export.
// Nil sections are skipped.
type QualityReport struct {
	Range  service.DateRange
	Matrix *model.ReceiptMatrix
	Pareto []quality.ParetoPoint
	PChart *quality.PChartSeries
	Sigma  *quality.SigmaSummary
}
