// Package services holds the application's domain logic: report aggregation,
// the report export formats, and account workflows. Controllers stay thin and
// delegate here.
package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/freshfold/app/models"
	"github.com/shashiranjanraj/freshfold/app/repositories"
)

// dateLayout is the wire format of the dateFrom/dateTo/date query parameters.
const dateLayout = "2006-01-02"

// ServiceSales accumulates bookings and revenue for one catalog service.
type ServiceSales struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// UserSales accumulates bookings and revenue for one customer. UserName is
// resolved once, when the email is first seen; it stays empty when no account
// matches.
type UserSales struct {
	Count    int     `json:"count"`
	Revenue  float64 `json:"revenue"`
	UserName string  `json:"userName"`
}

// ReportSnapshot is the derived sales report. It is never persisted; every
// request computes a fresh one from the filtered order set.
//
// ServiceNames and UserEmails record first-seen key order so that pages and
// exports render the breakdowns reproducibly.
type ReportSnapshot struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int     `json:"totalOrders"`
	CompletedOrders int     `json:"completedOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	AvgOrderValue   float64 `json:"avgOrderValue"`

	ServiceNames   []string                 `json:"-"`
	SalesByService map[string]*ServiceSales `json:"salesByService"`
	UserEmails     []string                 `json:"-"`
	SalesByUser    map[string]*UserSales    `json:"salesByUser"`
}

// Aggregate computes a ReportSnapshot from an already-filtered order list and
// the full user list. Single pass; pure with respect to its inputs.
//
// Orders without a service name or user email fall into the "Unknown" bucket.
// The display name for an email is looked up once, on first sight; later
// orders for the same email never re-resolve it.
func Aggregate(orders []models.Order, users []models.User) *ReportSnapshot {
	snap := &ReportSnapshot{
		SalesByService: make(map[string]*ServiceSales),
		SalesByUser:    make(map[string]*UserSales),
	}

	for _, order := range orders {
		snap.TotalOrders++
		amount := order.Price
		snap.TotalRevenue += amount

		switch order.Status {
		case models.OrderCompleted:
			snap.CompletedOrders++
		case models.OrderPending:
			snap.PendingOrders++
		case models.OrderCancelled:
			snap.CancelledOrders++
		}

		service := order.ServiceName
		if service == "" {
			service = "Unknown"
		}
		svc, ok := snap.SalesByService[service]
		if !ok {
			svc = &ServiceSales{}
			snap.SalesByService[service] = svc
			snap.ServiceNames = append(snap.ServiceNames, service)
		}
		svc.Count++
		svc.Revenue += amount

		email := order.UserEmail
		if email == "" {
			email = "Unknown"
		}
		usr, ok := snap.SalesByUser[email]
		if !ok {
			usr = &UserSales{}
			for _, u := range users {
				if u.Email == email {
					usr.UserName = u.FirstName + " " + u.LastName
					break
				}
			}
			snap.SalesByUser[email] = usr
			snap.UserEmails = append(snap.UserEmails, email)
		}
		usr.Count++
		usr.Revenue += amount
	}

	if snap.TotalOrders > 0 {
		snap.AvgOrderValue = round2(snap.TotalRevenue / float64(snap.TotalOrders))
	}

	return snap
}

// TopCustomers returns at most limit entries sorted by revenue descending.
// The sort is stable over first-seen order, so ties rank in the order the
// aggregation encountered them.
func (s *ReportSnapshot) TopCustomers(limit int) []CustomerRank {
	ranked := make([]CustomerRank, 0, len(s.UserEmails))
	for _, email := range s.UserEmails {
		ranked = append(ranked, CustomerRank{Email: email, Sales: *s.SalesByUser[email]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales.Revenue > ranked[j].Sales.Revenue
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CustomerRank pairs an email with its accumulated sales for ranking.
type CustomerRank struct {
	Email string
	Sales UserSales
}

// DisplayName prefers the resolved account name, falling back to the email.
func (c CustomerRank) DisplayName() string {
	if c.Sales.UserName != "" {
		return c.Sales.UserName
	}
	return c.Email
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ── Filter builder ───────────────────────────────────────────────────────────

// ReportFilter carries the raw report query parameters. Zero values leave
// that dimension unconstrained.
type ReportFilter struct {
	Status   string
	Service  string
	DateFrom string
	DateTo   string
}

// FilterFromQuery lifts the report filter out of a request's query string.
func FilterFromQuery(q url.Values) ReportFilter {
	return ReportFilter{
		Status:   q.Get("status"),
		Service:  q.Get("service"),
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	}
}

// Query translates the filter into a MongoDB predicate.
//
// Status matches exactly (case-sensitive); service matches as a
// case-insensitive substring of the service name; the date range is
// inclusive on both ends, with DateTo pushed to the last millisecond of its
// day so a same-day range covers the whole day. A date that fails to parse
// silently leaves its bound unconstrained.
func (f ReportFilter) Query() bson.M {
	filter := bson.M{}

	if f.Status != "" {
		filter["status"] = f.Status
	}

	if f.Service != "" {
		filter["serviceName"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Service),
			Options: "i",
		}
	}

	created := bson.M{}
	if from, err := time.ParseInLocation(dateLayout, f.DateFrom, time.Local); err == nil && f.DateFrom != "" {
		created["$gte"] = from
	}
	if to, err := time.ParseInLocation(dateLayout, f.DateTo, time.Local); err == nil && f.DateTo != "" {
		created["$lte"] = endOfDay(to)
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	return filter
}

// DailyFilter builds the filter for one calendar day. An empty or
// unparseable date falls back to today.
func DailyFilter(date string, now time.Time) ReportFilter {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil || date == "" {
		day = now
	}
	formatted := day.Format(dateLayout)
	return ReportFilter{DateFrom: formatted, DateTo: formatted}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59,
		int(999*time.Millisecond), t.Location())
}

// ── Report service ───────────────────────────────────────────────────────────

// ReportService produces report snapshots from the stores.
type ReportService struct {
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
}

func NewReportService(orders *repositories.OrderRepository, users *repositories.UserRepository) *ReportService {
	return &ReportService{orders: orders, users: users}
}

// Generate runs the filter against the order store, fetches the user list
// and aggregates. The two reads are separate and non-transactional: a write
// landing between them can yield a snapshot whose revenue references an
// account the user list does not show. Accepted, documented behaviour.
func (s *ReportService) Generate(ctx context.Context, filter ReportFilter) (*ReportSnapshot, []models.Order, error) {
	orders, err := s.orders.Find(ctx, filter.Query())
	if err != nil {
		return nil, nil, fmt.Errorf("report: load orders: %w", err)
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("report: load users: %w", err)
	}

	return Aggregate(orders, users), orders, nil
}
