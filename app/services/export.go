package services

import (
	"context"
	"strconv"
	"time"

	"github.com/shashiranjanraj/freshfold/app/models"
)

// ExportResult is what every export format produces: either an in-memory
// file (Data + ContentType + Filename) or, for the spreadsheet variant, the
// URL of the created remote resource.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	URL         string
}

// Exporter renders a report snapshot plus the underlying filtered order list
// into one output format. Implementations must not touch the stores; the
// caller guarantees the figures match whatever it already filtered.
type Exporter interface {
	Export(ctx context.Context, snap *ReportSnapshot, orders []models.Order) (*ExportResult, error)
}

// NewExporters wires the four report export formats under their URL keys.
func NewExporters(currency string) map[string]Exporter {
	return map[string]Exporter{
		"csv":    &CSVExporter{},
		"excel":  &ExcelExporter{Currency: currency},
		"pdf":    &PDFExporter{Currency: currency},
		"sheets": NewSheetsExporter(),
	}
}

// money renders an amount as a plain two-decimal number, no symbol.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func exportStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

// The workbook and spreadsheet variants render the same three tables; they
// are built once here so both outputs always agree.

func summaryRows(snap *ReportSnapshot, currency string) [][]string {
	return [][]string{
		{"Metric", "Value"},
		{"Total Revenue", currency + money(snap.TotalRevenue)},
		{"Total Orders", strconv.Itoa(snap.TotalOrders)},
		{"Completed Orders", strconv.Itoa(snap.CompletedOrders)},
		{"Pending Orders", strconv.Itoa(snap.PendingOrders)},
		{"Cancelled Orders", strconv.Itoa(snap.CancelledOrders)},
		{"Average Order Value", currency + money(snap.AvgOrderValue)},
	}
}

func serviceRows(snap *ReportSnapshot, currency string) [][]string {
	rows := [][]string{{"Service", "Orders", "Revenue"}}
	for _, name := range snap.ServiceNames {
		sales := snap.SalesByService[name]
		rows = append(rows, []string{
			name,
			strconv.Itoa(sales.Count),
			currency + money(sales.Revenue),
		})
	}
	return rows
}

func customerRows(snap *ReportSnapshot, currency string) [][]string {
	rows := [][]string{{"Customer", "Email", "Orders", "Revenue"}}
	for _, email := range snap.UserEmails {
		sales := snap.SalesByUser[email]
		name := sales.UserName
		if name == "" {
			name = email
		}
		rows = append(rows, []string{
			name,
			email,
			strconv.Itoa(sales.Count),
			currency + money(sales.Revenue),
		})
	}
	return rows
}
