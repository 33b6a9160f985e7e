package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/services"
)

func TestCSVExporter(t *testing.T) {
	created := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{
			ID:          primitive.NewObjectID(),
			UserEmail:   "a@x.com",
			ServiceName: `Wash "Premium", 5kg`,
			Status:      models.OrderCompleted,
			Price:       199.5,
			CreatedAt:   created,
		},
		{
			ID:          primitive.NewObjectID(),
			UserEmail:   "b@x.com",
			ServiceName: "Ironing",
			Status:      models.OrderPending,
			Price:       120,
			CreatedAt:   created,
		},
	}

	exp := &services.CSVExporter{}
	res, err := exp.Export(context.Background(), services.Aggregate(orders, nil), orders)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", res.ContentType)
	assert.True(t, strings.HasSuffix(res.Filename, ".csv"), "filename %q", res.Filename)
	assert.Empty(t, res.URL)

	// Quoting and escaping must survive a standard CSV parse.
	records, err := csv.NewReader(bytes.NewReader(res.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t,
		[]string{"Order ID", "Date", "Customer Email", "Service", "Status", "Price"},
		records[0])

	assert.Equal(t, orders[0].ID.Hex(), records[1][0])
	assert.Equal(t, "2026-05-10T09:00:00Z", records[1][1])
	assert.Equal(t, `Wash "Premium", 5kg`, records[1][3])
	assert.Equal(t, "199.50", records[1][5])

	assert.Equal(t, "b@x.com", records[2][2])
	assert.Equal(t, "120.00", records[2][5])
}

func TestCSVExporter_NoOrders(t *testing.T) {
	exp := &services.CSVExporter{}
	res, err := exp.Export(context.Background(), services.Aggregate(nil, nil), nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(res.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
