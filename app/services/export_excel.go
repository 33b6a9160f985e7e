package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shashiranjanraj/freshfold/app/models"
)

// Sheet names shared by the workbook and remote-spreadsheet exports.
const (
	sheetSummary  = "Summary"
	sheetService  = "By Service"
	sheetCustomer = "By Customer"
)

// ExcelExporter renders the three report tables as an xlsx workbook.
type ExcelExporter struct {
	Currency string
}

func (e *ExcelExporter) Export(_ context.Context, snap *ReportSnapshot, _ []models.Order) (*ExportResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetSummary)
	if _, err := f.NewSheet(sheetService); err != nil {
		return nil, fmt.Errorf("excel export: add sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetCustomer); err != nil {
		return nil, fmt.Errorf("excel export: add sheet: %w", err)
	}

	tables := []struct {
		sheet string
		rows  [][]string
	}{
		{sheetSummary, summaryRows(snap, e.Currency)},
		{sheetService, serviceRows(snap, e.Currency)},
		{sheetCustomer, customerRows(snap, e.Currency)},
	}

	for _, table := range tables {
		for i, row := range table.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, fmt.Errorf("excel export: cell name: %w", err)
			}
			if err := f.SetSheetRow(table.sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("excel export: write row: %w", err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		for _, table := range tables {
			width := len(table.rows[0])
			end, _ := excelize.CoordinatesToCellName(width, 1)
			_ = f.SetCellStyle(table.sheet, "A1", end, bold)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel export: write: %w", err)
	}

	return &ExportResult{
		Filename:    "sales-report-" + exportStamp(time.Now()) + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
