package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/freshfold/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.details", ok)

	path, found := r.Path("orders.details")
	if !found || path != "/orders/{id}" {
		t.Fatalf("Path() = %q, %v", path, found)
	}

	url, err := r.URL("orders.details", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatalf("URL() error: %v", err)
	}
	if url != "/orders/abc123" {
		t.Errorf("URL() = %q", url)
	}

	if _, err := r.URL("orders.details", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	admin := r.Group("/admin", tag("outer"))
	reports := admin.Group("/reports", tag("inner"))
	reports.Get("/daily", "admin.reports.daily", ok)

	req := httptest.NewRequest(http.MethodGet, "/admin/reports/daily", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v", order)
	}

	path, _ := r.Path("admin.reports.daily")
	if path != "/admin/reports/daily" {
		t.Errorf("group path = %q", path)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("Routes() returned %d entries", len(infos))
	}
	if infos[0].Method != http.MethodGet || infos[0].Path != "/a" || infos[0].Name != "a" {
		t.Errorf("first route = %+v", infos[0])
	}
	if infos[1].Name != "" {
		t.Errorf("unnamed route carries name %q", infos[1].Name)
	}
}

func TestNotFoundHandler(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}
