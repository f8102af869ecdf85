package report

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestRollupCustomers(t *testing.T) {
	orders := []Order{
		makeOrder("KP-1", "Asha Reddy", "9876543210", "Kondapur", time.Date(2025, 5, 2, 13, 0, 0, 0, time.UTC), 450),
		makeOrder("GA-1", "Asha Reddy", "9876543210", "Gachibowli", time.Date(2025, 5, 10, 20, 0, 0, 0, time.UTC), 650),
		makeOrder("KP-2", "Ravi Kumar", "9123456780", "Kondapur", time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC), 300),
		makeOrder("KP-3", "Asha Reddy", "9876543210", "Kondapur", time.Date(2025, 5, 20, 13, 0, 0, 0, time.UTC), 200),
	}

	got := RollupCustomers(orders)
	if len(got) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(got))
	}

	// Sorted by most recent order, descending.
	if got[0].Mobile != "9876543210" {
		t.Fatalf("expected Asha first by recency, got %s", got[0].Mobile)
	}

	asha := got[0]
	if asha.TotalOrders != 3 {
		t.Fatalf("expected 3 orders, got %d", asha.TotalOrders)
	}
	if math.Abs(asha.TotalSpent-1300) > 1e-9 {
		t.Fatalf("expected total spent 1300, got %v", asha.TotalSpent)
	}
	if !asha.LastOrdered.Equal(time.Date(2025, 5, 20, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected last ordered 2025-05-20, got %v", asha.LastOrdered)
	}
	if !reflect.DeepEqual(asha.Outlets, []string{"Kondapur", "Gachibowli"}) {
		t.Fatalf("expected outlets in insertion order, got %v", asha.Outlets)
	}
}

func TestRollupCustomersIdempotent(t *testing.T) {
	orders := []Order{
		makeOrder("KP-1", "Asha", "9876543210", "Kondapur", time.Date(2025, 5, 2, 13, 0, 0, 0, time.UTC), 450),
		makeOrder("KP-2", "Ravi", "9123456780", "Kondapur", time.Date(2025, 5, 3, 13, 0, 0, 0, time.UTC), 300),
	}

	first := RollupCustomers(orders)
	second := RollupCustomers(orders)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rollup is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRollupCustomersEmptyMobileAndOutlet(t *testing.T) {
	orders := []Order{
		makeOrder("KP-1", "Walk In", "", "  ", time.Date(2025, 5, 2, 13, 0, 0, 0, time.UTC), 100),
		makeOrder("KP-2", "Walk In", "", "Kondapur", time.Date(2025, 5, 3, 13, 0, 0, 0, time.UTC), 150),
	}

	got := RollupCustomers(orders)
	if len(got) != 1 || got[0].Mobile != "" {
		t.Fatalf("expected a single empty-mobile group, got %+v", got)
	}
	if !reflect.DeepEqual(got[0].Outlets, []string{"Kondapur"}) {
		t.Fatalf("blank outlets must be skipped, got %v", got[0].Outlets)
	}
}

func TestSearchCustomers(t *testing.T) {
	summaries := []CustomerSummary{
		{Mobile: "9876543210", Name: "Asha Reddy"},
		{Mobile: "9123456780", Name: "Ravi Kumar"},
	}

	cases := []struct {
		name     string
		term     string
		expected int
	}{
		{"by name", "asha", 1},
		{"by mobile fragment", "9123", 1},
		{"no match", "zzz", 0},
		{"empty term returns all", "", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SearchCustomers(summaries, tc.term); len(got) != tc.expected {
				t.Fatalf("expected %d results, got %d", tc.expected, len(got))
			}
		})
	}
}
