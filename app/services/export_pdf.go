package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/shashiranjanraj/freshfold/app/models"
)

// PDFExporter renders the report as a paginated document: summary metrics,
// a per-service breakdown with a proportional bar chart, and the top ten
// customers by revenue.
type PDFExporter struct {
	Currency string
}

const (
	pdfMarginLeft  = 15.0
	pdfBarMaxWidth = 120.0
	pdfBarHeight   = 6.0
)

func (e *PDFExporter) Export(_ context.Context, snap *ReportSnapshot, _ []models.Order) (*ExportResult, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title page: headline metrics as text.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("January 2, 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range summaryRows(snap, e.Currency)[1:] {
		pdf.CellFormat(70, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	// Revenue by service, with bars scaled against the best seller.
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Revenue by Service", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	maxRevenue := 0.0
	for _, name := range snap.ServiceNames {
		if rev := snap.SalesByService[name].Revenue; rev > maxRevenue {
			maxRevenue = rev
		}
	}

	pdf.SetFillColor(66, 133, 244)
	for _, name := range snap.ServiceNames {
		sales := snap.SalesByService[name]
		line := fmt.Sprintf("%s - %d orders, %s%s", name, sales.Count, e.Currency, money(sales.Revenue))
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")

		// Zero total revenue draws a zero-length bar rather than dividing.
		width := 0.0
		if maxRevenue > 0 {
			width = sales.Revenue / maxRevenue * pdfBarMaxWidth
		}
		if width > 0 {
			pdf.Rect(pdfMarginLeft, pdf.GetY()+1, width, pdfBarHeight, "F")
		}
		pdf.Ln(pdfBarHeight + 3)
	}

	// Top customers, capped at ten, ties in first-seen order.
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Top Customers", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	for i, c := range snap.TopCustomers(10) {
		line := fmt.Sprintf("%d. %s (%s) - %d orders, %s%s",
			i+1, c.DisplayName(), c.Email, c.Sales.Count, e.Currency, money(c.Sales.Revenue))
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}
	if len(snap.UserEmails) == 0 {
		pdf.CellFormat(0, 7, "No orders in the selected range.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}

	return &ExportResult{
		Filename:    "sales-report-" + exportStamp(time.Now()) + ".pdf",
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}


