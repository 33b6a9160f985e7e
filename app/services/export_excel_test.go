package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/services"
)

func TestExcelExporter(t *testing.T) {
	orders := []models.Order{
		order("a@x.com", "Wash & Fold", 100, models.OrderCompleted),
		order("b@x.com", "Ironing", 50, models.OrderPending),
	}
	users := []models.User{{Email: "a@x.com", FirstName: "Ada", LastName: "Lee"}}
	snap := services.Aggregate(orders, users)

	exp := &services.ExcelExporter{Currency: "$"}
	res, err := exp.Export(context.Background(), snap, orders)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.Filename, ".xlsx"), "filename %q", res.Filename)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		res.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(res.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "By Service", "By Customer"},
		f.GetSheetList())

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Metric", cell("Summary", "A1"))
	assert.Equal(t, "Total Revenue", cell("Summary", "A2"))
	assert.Equal(t, "$150.00", cell("Summary", "B2"))

	assert.Equal(t, "Wash & Fold", cell("By Service", "A2"))
	assert.Equal(t, "$100.00", cell("By Service", "C2"))

	assert.Equal(t, "Ada Lee", cell("By Customer", "A2"))
	assert.Equal(t, "a@x.com", cell("By Customer", "B2"))
}
