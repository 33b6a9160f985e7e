package services_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/services"
)

func order(email, service string, price float64, status string) models.Order {
	return models.Order{
		UserEmail:   email,
		ServiceName: service,
		Price:       price,
		Status:      status,
	}
}

func TestAggregate_Totals(t *testing.T) {
	orders := []models.Order{
		order("a@x.com", "Wash & Fold", 10, models.OrderCompleted),
		order("b@x.com", "Dry Clean", 20, models.OrderPending),
		order("a@x.com", "Wash & Fold", 25, models.OrderCancelled),
	}

	snap := services.Aggregate(orders, nil)

	assert.Equal(t, 3, snap.TotalOrders)
	assert.Equal(t, 55.0, snap.TotalRevenue)
	assert.Equal(t, 1, snap.CompletedOrders)
	assert.Equal(t, 1, snap.PendingOrders)
	assert.Equal(t, 1, snap.CancelledOrders)

	// 55 / 3 = 18.333..., rounded to two decimals.
	assert.Equal(t, 18.33, snap.AvgOrderValue)
}

func TestAggregate_FixedSnapshot(t *testing.T) {
	orders := []models.Order{
		order("", "Wash", 100, models.OrderCompleted),
		order("", "Wash", 50, models.OrderPending),
		order("", "Iron", 30, models.OrderCompleted),
	}

	snap := services.Aggregate(orders, nil)

	assert.Equal(t, 180.0, snap.TotalRevenue)
	assert.Equal(t, 3, snap.TotalOrders)
	assert.Equal(t, 2, snap.CompletedOrders)
	assert.Equal(t, 1, snap.PendingOrders)
	assert.Equal(t, 2, snap.SalesByService["Wash"].Count)
	assert.Equal(t, 150.0, snap.SalesByService["Wash"].Revenue)
	assert.Equal(t, 1, snap.SalesByService["Iron"].Count)
	assert.Equal(t, 30.0, snap.SalesByService["Iron"].Revenue)

	// Revenue reconciles across every breakdown.
	var byService, byUser float64
	for _, s := range snap.SalesByService {
		byService += s.Revenue
	}
	for _, u := range snap.SalesByUser {
		byUser += u.Revenue
	}
	assert.Equal(t, snap.TotalRevenue, byService)
	assert.Equal(t, snap.TotalRevenue, byUser)
}

func TestAggregate_Empty(t *testing.T) {
	snap := services.Aggregate(nil, nil)

	assert.Equal(t, 0, snap.TotalOrders)
	assert.Equal(t, 0.0, snap.TotalRevenue)
	assert.Equal(t, 0.0, snap.AvgOrderValue)
	assert.Empty(t, snap.ServiceNames)
	assert.Empty(t, snap.UserEmails)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	orders := []models.Order{
		order("c@x.com", "Ironing", 5, models.OrderPending),
		order("a@x.com", "Wash & Fold", 10, models.OrderPending),
		order("c@x.com", "Dry Clean", 15, models.OrderPending),
		order("b@x.com", "Ironing", 5, models.OrderPending),
	}

	snap := services.Aggregate(orders, nil)

	assert.Equal(t, []string{"Ironing", "Wash & Fold", "Dry Clean"}, snap.ServiceNames)
	assert.Equal(t, []string{"c@x.com", "a@x.com", "b@x.com"}, snap.UserEmails)

	require.Contains(t, snap.SalesByService, "Ironing")
	assert.Equal(t, 2, snap.SalesByService["Ironing"].Count)
	assert.Equal(t, 10.0, snap.SalesByService["Ironing"].Revenue)
}

func TestAggregate_UnknownBuckets(t *testing.T) {
	orders := []models.Order{
		order("", "", 7, models.OrderPending),
		order("", "", 3, models.OrderPending),
	}

	snap := services.Aggregate(orders, nil)

	require.Contains(t, snap.SalesByService, "Unknown")
	require.Contains(t, snap.SalesByUser, "Unknown")
	assert.Equal(t, 2, snap.SalesByService["Unknown"].Count)
	assert.Equal(t, 10.0, snap.SalesByUser["Unknown"].Revenue)
}

func TestAggregate_ResolvesUserNames(t *testing.T) {
	users := []models.User{
		{Email: "a@x.com", FirstName: "Ada", LastName: "Lee"},
	}
	orders := []models.Order{
		order("a@x.com", "Ironing", 5, models.OrderPending),
		order("ghost@x.com", "Ironing", 5, models.OrderPending),
	}

	snap := services.Aggregate(orders, users)

	assert.Equal(t, "Ada Lee", snap.SalesByUser["a@x.com"].UserName)
	assert.Equal(t, "", snap.SalesByUser["ghost@x.com"].UserName)
}

func TestTopCustomers(t *testing.T) {
	orders := []models.Order{
		order("small@x.com", "Ironing", 10, models.OrderPending),
		order("tie1@x.com", "Ironing", 50, models.OrderPending),
		order("big@x.com", "Dry Clean", 90, models.OrderPending),
		order("tie2@x.com", "Ironing", 50, models.OrderPending),
	}

	snap := services.Aggregate(orders, nil)
	top := snap.TopCustomers(3)

	require.Len(t, top, 3)
	assert.Equal(t, "big@x.com", top[0].Email)
	// Equal revenue ranks in first-seen order.
	assert.Equal(t, "tie1@x.com", top[1].Email)
	assert.Equal(t, "tie2@x.com", top[2].Email)
}

func TestCustomerRank_DisplayName(t *testing.T) {
	named := services.CustomerRank{Email: "a@x.com", Sales: services.UserSales{UserName: "Ada Lee"}}
	anon := services.CustomerRank{Email: "b@x.com"}

	assert.Equal(t, "Ada Lee", named.DisplayName())
	assert.Equal(t, "b@x.com", anon.DisplayName())
}

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("status", "completed")
	q.Set("service", "wash")
	q.Set("dateFrom", "2026-01-01")
	q.Set("dateTo", "2026-01-31")

	f := services.FilterFromQuery(q)

	assert.Equal(t, "completed", f.Status)
	assert.Equal(t, "wash", f.Service)
	assert.Equal(t, "2026-01-01", f.DateFrom)
	assert.Equal(t, "2026-01-31", f.DateTo)
}

func TestReportFilter_Query(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, services.ReportFilter{}.Query())
	})

	t.Run("status is exact", func(t *testing.T) {
		q := services.ReportFilter{Status: "completed"}.Query()
		assert.Equal(t, "completed", q["status"])
	})

	t.Run("service is a case-insensitive substring", func(t *testing.T) {
		q := services.ReportFilter{Service: "wash"}.Query()
		re, ok := q["serviceName"].(primitive.Regex)
		require.True(t, ok)
		assert.Equal(t, "wash", re.Pattern)
		assert.Equal(t, "i", re.Options)
	})

	t.Run("service pattern is escaped", func(t *testing.T) {
		q := services.ReportFilter{Service: "wash (2kg)"}.Query()
		re := q["serviceName"].(primitive.Regex)
		assert.Equal(t, `wash \(2kg\)`, re.Pattern)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		q := services.ReportFilter{DateFrom: "2026-03-01", DateTo: "2026-03-01"}.Query()
		created, ok := q["createdAt"].(bson.M)
		require.True(t, ok)

		from := created["$gte"].(time.Time)
		to := created["$lte"].(time.Time)

		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), from)
		assert.Equal(t, 23, to.Hour())
		assert.Equal(t, 59, to.Minute())
		assert.True(t, to.After(from))

		// The upper bound keeps an order from late on dateTo but drops one
		// from the first millisecond of the next day.
		lateSameDay := time.Date(2026, 3, 1, 23, 59, 59, 500_000_000, time.Local)
		nextDay := time.Date(2026, 3, 2, 0, 0, 0, 1_000_000, time.Local)
		assert.False(t, to.Before(lateSameDay))
		assert.True(t, to.Before(nextDay))
	})

	t.Run("unparseable date leaves the bound off", func(t *testing.T) {
		q := services.ReportFilter{DateFrom: "yesterday"}.Query()
		_, ok := q["createdAt"]
		assert.False(t, ok)
	})
}

func TestDailyFilter(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.Local)

	t.Run("explicit date", func(t *testing.T) {
		f := services.DailyFilter("2026-08-15", now)
		assert.Equal(t, "2026-08-15", f.DateFrom)
		assert.Equal(t, "2026-08-15", f.DateTo)
	})

	t.Run("empty date falls back to today", func(t *testing.T) {
		f := services.DailyFilter("", now)
		assert.Equal(t, "2026-09-01", f.DateFrom)
		assert.Equal(t, "2026-09-01", f.DateTo)
	})

	t.Run("garbage date falls back to today", func(t *testing.T) {
		f := services.DailyFilter("not-a-date", now)
		assert.Equal(t, "2026-09-01", f.DateFrom)
	})
}
