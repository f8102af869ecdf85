package report

import (
	"math"
	"testing"
	"time"
)

func TestComputeMetricsZeroOrders(t *testing.T) {
	m := ComputeMetrics(nil, "2025-05")
	if m.TotalOrders != 0 || m.TotalRevenue != 0 || m.AvgOrderValue != 0 || m.AvgOrdersPerDay != 0 {
		t.Fatalf("expected all-zero metrics for empty input, got %+v", m)
	}
	for i, c := range m.SlotCounts {
		if c != 0 {
			t.Fatalf("expected zero count for slot %d, got %d", i, c)
		}
	}
	if peak := ResolvePeakSlot(m.SlotCounts, nil, "2025-05", AllStores); peak != nil {
		t.Fatalf("expected nil peak slot for empty metrics, got %+v", peak)
	}
}

func TestComputeMetricsTotals(t *testing.T) {
	orders := []Order{
		makeOrder("KP-1", "Asha", "9000000001", "Kondapur", time.Date(2025, 2, 3, 12, 30, 0, 0, time.UTC), 300),
		makeOrder("KP-2", "Ravi", "9000000002", "Kondapur", time.Date(2025, 2, 7, 20, 0, 0, 0, time.UTC), 500),
		makeOrder("KP-3", "Meena", "9000000003", "Kondapur", time.Date(2025, 2, 14, 1, 15, 0, 0, time.UTC), 200),
	}

	m := ComputeMetrics(orders, "2025-02")
	if m.TotalOrders != 3 {
		t.Fatalf("expected 3 orders, got %d", m.TotalOrders)
	}
	if m.TotalRevenue != 1000 {
		t.Fatalf("expected revenue 1000, got %v", m.TotalRevenue)
	}
	if math.Abs(m.AvgOrderValue-1000.0/3) > 1e-9 {
		t.Fatalf("expected avg order value %v, got %v", 1000.0/3, m.AvgOrderValue)
	}
	// February 2025 has 28 days.
	if math.Abs(m.AvgOrdersPerDay-3.0/28) > 1e-9 {
		t.Fatalf("expected avg orders/day %v, got %v", 3.0/28, m.AvgOrdersPerDay)
	}

	expected := [4]int{1, 0, 1, 1}
	if m.SlotCounts != expected {
		t.Fatalf("expected slot counts %v, got %v", expected, m.SlotCounts)
	}
}

func TestComputeMetricsUnparsableMonth(t *testing.T) {
	orders := []Order{
		makeOrder("KP-1", "Asha", "9000000001", "Kondapur", time.Date(2025, 2, 3, 12, 30, 0, 0, time.UTC), 300),
	}
	m := ComputeMetrics(orders, "not-a-month")
	if m.AvgOrdersPerDay != 0 {
		t.Fatalf("expected 0 avg orders/day for unparsable month, got %v", m.AvgOrdersPerDay)
	}
	if m.TotalOrders != 1 || m.TotalRevenue != 300 {
		t.Fatalf("totals should still compute, got %+v", m)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month    string
		expected int
	}{
		{"2025-01", 31},
		{"2025-02", 28},
		{"2024-02", 29},
		{"2025-04", 30},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := daysInMonth(tc.month); got != tc.expected {
			t.Fatalf("daysInMonth(%q): expected %d, got %d", tc.month, tc.expected, got)
		}
	}
}
