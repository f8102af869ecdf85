package handlers

import (
	"math"
	"net/http/httptest"
	"testing"

	"restropos-services/internal/config"
	"restropos-services/internal/report"
)

func TestOrderTotals(t *testing.T) {
	cases := []struct {
		name         string
		subtotal     float64
		discount     float64
		taxRate      float64
		wantDiscount float64
		wantTax      float64
		wantTotal    float64
	}{
		{name: "no discount no tax", subtotal: 500, wantTotal: 500},
		{name: "discount only", subtotal: 500, discount: 50, wantDiscount: 50, wantTotal: 450},
		{name: "tax on discounted subtotal", subtotal: 500, discount: 100, taxRate: 0.05, wantDiscount: 100, wantTax: 20, wantTotal: 420},
		{name: "rounding", subtotal: 333.33, taxRate: 0.18, wantTax: 60, wantTotal: 393.33},
		{name: "discount exceeding subtotal clamps", subtotal: 100, discount: 150, taxRate: 0.05, wantDiscount: 100, wantTax: 0, wantTotal: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			discount, tax, total := orderTotals(tc.subtotal, tc.discount, tc.taxRate)
			if math.Abs(discount-tc.wantDiscount) > 0.001 {
				t.Fatalf("expected discount %.2f, got %.2f", tc.wantDiscount, discount)
			}
			if math.Abs(tax-tc.wantTax) > 0.001 {
				t.Fatalf("expected tax %.2f, got %.2f", tc.wantTax, tax)
			}
			if math.Abs(total-tc.wantTotal) > 0.001 {
				t.Fatalf("expected total %.2f, got %.2f", tc.wantTotal, total)
			}

			// The stored fields must satisfy the pricing identity.
			want := (tc.subtotal - discount) * (1 + tc.taxRate)
			if math.Abs(total-want) > 0.005 {
				t.Fatalf("total %.2f breaks (subtotal-discount)*(1+taxRate)=%.2f", total, want)
			}
		})
	}
}

func TestValidStatusTransition(t *testing.T) {
	cases := []struct {
		from report.OrderStatus
		to   report.OrderStatus
		want bool
	}{
		{report.StatusPending, report.StatusCompleted, true},
		{report.StatusPending, report.StatusCancelled, true},
		{report.StatusPending, report.StatusPending, false},
		{report.StatusCompleted, report.StatusCancelled, false},
		{report.StatusCancelled, report.StatusCompleted, false},
		{report.StatusCompleted, report.StatusPending, false},
	}

	for _, tc := range cases {
		if got := validStatusTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("transition %s->%s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestValidPaymentType(t *testing.T) {
	for _, valid := range []string{"cash", "card", "upi"} {
		if !validPaymentType(valid) {
			t.Fatalf("expected %q to be valid", valid)
		}
	}
	for _, invalid := range []string{"", "CASH", "cheque", "wallet"} {
		if validPaymentType(invalid) {
			t.Fatalf("expected %q to be invalid", invalid)
		}
	}
}

func TestReportCriteriaDefaults(t *testing.T) {
	h := &Handler{Config: config.Config{Timezone: "UTC"}}

	r := httptest.NewRequest("GET", "/api/admin/orders", nil)
	criteria := h.reportCriteria(r)

	if criteria.Month == "" {
		t.Fatal("expected month default, got empty")
	}
	if criteria.Store != report.AllStores {
		t.Fatalf("expected store %q, got %q", report.AllStores, criteria.Store)
	}
	if criteria.Week != 0 {
		t.Fatalf("expected week 0, got %d", criteria.Week)
	}
}

func TestReportCriteriaParsing(t *testing.T) {
	h := &Handler{Config: config.Config{Timezone: "UTC"}}

	cases := []struct {
		name  string
		query string
		want  report.Criteria
	}{
		{
			name:  "explicit values",
			query: "?month=2025-03&store=Kondapur&week=2&search=ravi",
			want:  report.Criteria{Month: "2025-03", Store: "Kondapur", Week: 2, Search: "ravi"},
		},
		{
			name:  "all weeks sentinel",
			query: "?month=2025-03&week=all-weeks",
			want:  report.Criteria{Month: "2025-03", Store: report.AllStores, Week: 0},
		},
		{
			name:  "garbage week ignored",
			query: "?month=2025-03&week=second",
			want:  report.Criteria{Month: "2025-03", Store: report.AllStores, Week: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/admin/orders"+tc.query, nil)
			got := h.reportCriteria(r)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestDashboardCache(t *testing.T) {
	cache := newDashboardCache()
	key := cacheKey("metrics", "All Stores", "2025-03", "w0|s")

	if _, ok := cache.get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.set(key, 42)
	value, ok := cache.get(key)
	if !ok || value != 42 {
		t.Fatalf("expected hit with 42, got %v (hit=%v)", value, ok)
	}

	cache.invalidate()
	if _, ok := cache.get(key); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestDashboardCacheNilSafe(t *testing.T) {
	var cache *dashboardCache
	cache.set("k", 1)
	cache.invalidate()
	if _, ok := cache.get("k"); ok {
		t.Fatal("nil cache must always miss")
	}
}
