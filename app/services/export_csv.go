package services

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/shashiranjanraj/freshfold/app/models"
)

// CSVExporter renders one row per order. Prices are plain numbers without a
// currency symbol so the file stays machine-parseable.
type CSVExporter struct{}

var csvHeader = []string{"Order ID", "Date", "Customer Email", "Service", "Status", "Price"}

// Export writes the order list as RFC 4180-style CSV. Every field is quoted
// and embedded quotes are doubled, so downstream parsers never have to guess
// at delimiters inside service names or notes.
func (e *CSVExporter) Export(_ context.Context, _ *ReportSnapshot, orders []models.Order) (*ExportResult, error) {
	var buf bytes.Buffer

	writeCSVRow(&buf, csvHeader)
	for _, order := range orders {
		writeCSVRow(&buf, []string{
			order.ID.Hex(),
			order.CreatedAt.Format(time.RFC3339),
			order.UserEmail,
			order.ServiceName,
			order.Status,
			money(order.Price),
		})
	}

	return &ExportResult{
		Filename:    "sales-report-" + exportStamp(time.Now()) + ".csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
