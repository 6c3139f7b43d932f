package report

import (
	"context"
	"fmt"
	"io"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
}

func NewReportService(attendanceService attendance.AttendanceService) report.ReportService {
	return &ReportServiceImpl{
		attendanceService: attendanceService,
	}
}

const attendanceSheet = "Attendance"

var attendanceHeaders = []string{"Name", "Username", "Role", "Date", "Time", "Flag", "Status", "Lateness"}

// WriteAttendanceXLSX flattens the filtered attendance history into one
// row per record and streams the workbook into w.
func (s *ReportServiceImpl) WriteAttendanceXLSX(ctx context.Context, filter attendance.HistoryFilter, w io.Writer) error {
	history, err := s.attendanceService.History(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", attendanceSheet)

	for i, header := range attendanceHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(attendanceSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, entry := range history {
		for _, record := range entry.Attendance {
			lateness := ""
			if record.LateMessage != nil {
				lateness = *record.LateMessage
			}
			values := []interface{}{
				entry.User.Name,
				entry.User.Username,
				entry.User.Role,
				record.Date,
				record.CreatedAt.Format("15:04:05"),
				string(record.Flag),
				string(record.Status),
				lateness,
			}
			for i, value := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return fmt.Errorf("failed to build cell: %w", err)
				}
				if err := f.SetCellValue(attendanceSheet, cell, value); err != nil {
					return fmt.Errorf("failed to write row %d: %w", row, err)
				}
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
