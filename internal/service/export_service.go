package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
)

// ── export module business errors ──

var (
	ErrExportEmptyRoster  = errors.New("no members to export")
	ErrExportGenerateFail = errors.New("generating the Excel file failed")
)

// ExportService renders the utilization report as an .xlsx workbook. The
// buffer is returned to the handler, which sets the download headers.
type ExportService interface {
	ExportUtilization(ctx context.Context, req *dto.UtilizationRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	utilization UtilizationService
	logger      *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(utilization UtilizationService, logger *zap.Logger) ExportService {
	return &exportService{utilization: utilization, logger: logger}
}

// ExportUtilization lays the report out as one row per member with a column
// per day, an average column, and a closing team-average row. Weekend columns
// get a shaded header.
func (s *exportService) ExportUtilization(ctx context.Context, req *dto.UtilizationRequest) (*bytes.Buffer, string, error) {
	resp, err := s.utilization.GetReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if len(resp.Report.Members) == 0 {
		return nil, "", ErrExportEmptyRoster
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Utilization"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	dayCount := len(resp.Report.Members[0].Days)

	f.SetColWidth(sheetName, "A", "A", 22)
	for i := 0; i < dayCount+1; i++ {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 12)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	weekendStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#8EA9DB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Utilization %s to %s", resp.Start, resp.End))
	lastCol, _ := excelize.ColumnNumberToName(2 + dayCount)
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// header row: member, one column per day, average
	row := 2
	f.SetCellValue(sheetName, exportCell(1, row), "Member")
	f.SetCellStyle(sheetName, exportCell(1, row), exportCell(1, row), headerStyle)
	if dayCount > 0 {
		for i, day := range resp.Report.Members[0].Days {
			c := exportCell(2+i, row)
			f.SetCellValue(sheetName, c, day.Date.Format("Mon 01-02"))
			if day.IsWeekend {
				f.SetCellStyle(sheetName, c, c, weekendStyle)
			} else {
				f.SetCellStyle(sheetName, c, c, headerStyle)
			}
		}
	}
	avgCell := exportCell(2+dayCount, row)
	f.SetCellValue(sheetName, avgCell, "Average %")
	f.SetCellStyle(sheetName, avgCell, avgCell, headerStyle)

	// member rows: hours per day, capped percent average
	row = 3
	for _, mu := range resp.Report.Members {
		f.SetCellValue(sheetName, exportCell(1, row), mu.Name)
		for i, day := range mu.Days {
			f.SetCellValue(sheetName, exportCell(2+i, row), day.Hours)
		}
		f.SetCellValue(sheetName, exportCell(2+dayCount, row), fmt.Sprintf("%.1f", mu.Average))
		row++
	}

	f.SetCellValue(sheetName, exportCell(1, row), "Team average")
	f.SetCellValue(sheetName, exportCell(2+dayCount, row), fmt.Sprintf("%.1f", resp.Report.TeamAverage))

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write utilization workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("utilization_%s_%s.xlsx", resp.Start, resp.End)
	return buf, filename, nil
}

func exportCell(col, row int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s%d", name, row)
}
