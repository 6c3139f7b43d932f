package report

import (
	"context"
	"io"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
)

// ReportService renders attendance history into downloadable documents.
type ReportService interface {
	// WriteAttendanceXLSX streams an attendance workbook for the
	// filtered subjects into w
	WriteAttendanceXLSX(ctx context.Context, filter attendance.HistoryFilter, w io.Writer) error
}
