package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/pipeline"
	"job-copilot-backend/pkg/apperror"
)

// Export formats accepted by Export
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
)

var exportHeaders = []string{
	"COMPANY", "ROLE", "STATUS", "APPLIED DATE", "LOCATION", "SALARY", "APPLIED VIA",
}

func exportRow(a domain.Application) []string {
	return []string{a.Company, a.Role, string(a.Status), a.AppliedDate, a.Location, a.Salary, a.AppliedVia}
}

// Export renders the collection newest first and returns the file with its name
func (uc *applicationUsecase) Export(ctx context.Context, userID, format string) ([]byte, string, error) {
	apps, err := uc.list(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	apps = pipeline.Sort(apps, pipeline.SortByDate)
	stamp := uc.now().Format("20060102_150405")

	switch format {
	case ExportXLSX, "":
		data, err := exportExcel(apps)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		return data, fmt.Sprintf("applications_%s.xlsx", stamp), nil
	case ExportCSV:
		data, err := exportCSV(apps)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		return data, fmt.Sprintf("applications_%s.csv", stamp), nil
	default:
		return nil, "", apperror.BadRequest(fmt.Sprintf("Unsupported export format: %s", format))
	}
}

func exportExcel(apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, a := range apps {
		for colIdx, v := range exportRow(a) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
		// Status cell takes the status color
		statusStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: pipeline.StatusColor(a.Status)},
		})
		if err == nil {
			cell, _ := excelize.CoordinatesToCellName(3, rowIdx+2)
			f.SetCellStyle(sheetName, cell, cell, statusStyle)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(apps []domain.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, a := range apps {
		if err := w.Write(exportRow(a)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
