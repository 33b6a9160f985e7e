package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/services"
)

func TestPDFExporter(t *testing.T) {
	orders := []models.Order{
		order("a@x.com", "Wash & Fold", 100, models.OrderCompleted),
		order("b@x.com", "Ironing", 50, models.OrderPending),
	}
	snap := services.Aggregate(orders, nil)

	exp := &services.PDFExporter{Currency: "$"}
	res, err := exp.Export(context.Background(), snap, orders)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.Filename, ".pdf"), "filename %q", res.Filename)
	assert.Equal(t, "application/pdf", res.ContentType)
	require.NotEmpty(t, res.Data)
	assert.True(t, strings.HasPrefix(string(res.Data[:5]), "%PDF-"), "missing PDF magic")
}

func TestPDFExporter_EmptyReport(t *testing.T) {
	exp := &services.PDFExporter{Currency: "$"}
	res, err := exp.Export(context.Background(), services.Aggregate(nil, nil), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Data)
}

func TestNewExporters_Formats(t *testing.T) {
	exporters := services.NewExporters("$")
	for _, format := range []string{"csv", "excel", "pdf", "sheets"} {
		assert.Contains(t, exporters, format)
	}
	assert.Len(t, exporters, 4)
}
