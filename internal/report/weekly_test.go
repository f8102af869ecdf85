package report

import (
	"testing"
	"time"
)

func TestBuildWeekSeriesMonthBoundary(t *testing.T) {
	// January 2025 starts on a Wednesday: the base week's Sunday is
	// 2024-12-29, in the previous month, and orders from those December days
	// must still land in the series.
	orders := []Order{
		makeOrder("KP-1", "Asha", "9000000001", "Kondapur", time.Date(2024, 12, 30, 13, 0, 0, 0, time.UTC), 400),
		makeOrder("KP-2", "Ravi", "9000000002", "Kondapur", time.Date(2025, 1, 2, 20, 0, 0, 0, time.UTC), 600),
		makeOrder("KP-3", "Meena", "9000000003", "Kondapur", time.Date(2025, 1, 9, 20, 0, 0, 0, time.UTC), 500),
	}

	series := BuildWeekSeries(orders, "2025-01", 0, AllStores)

	sunday := series[0].Date
	if sunday.Year() != 2024 || sunday.Month() != time.December || sunday.Day() != 29 {
		t.Fatalf("expected week to start 2024-12-29, got %v", sunday)
	}
	if !sunday.Before(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the Sunday strictly before the 1st")
	}

	// Monday Dec 30 is index 1, Thursday Jan 2 is index 4.
	if series[1].Count != 1 || series[1].Revenue != 400 {
		t.Fatalf("expected the December order on Monday, got %+v", series[1])
	}
	if series[4].Count != 1 || series[4].Revenue != 600 {
		t.Fatalf("expected the January order on Thursday, got %+v", series[4])
	}
	// KP-3 belongs to the next week.
	total := 0
	for _, day := range series {
		total += day.Count
	}
	if total != 2 {
		t.Fatalf("expected 2 orders in the base week, got %d", total)
	}
}

func TestBuildWeekSeriesOffset(t *testing.T) {
	orders := []Order{
		makeOrder("KP-3", "Meena", "9000000003", "Kondapur", time.Date(2025, 1, 9, 20, 0, 0, 0, time.UTC), 500),
	}

	series := BuildWeekSeries(orders, "2025-01", 1, AllStores)
	if series[0].Date.Day() != 5 {
		t.Fatalf("expected offset-1 week to start Jan 5, got %v", series[0].Date)
	}
	if series[4].Count != 1 {
		t.Fatalf("expected the Jan 9 order on Thursday of week 2, got %+v", series[4])
	}
}

func TestBuildWeekSeriesStoreFilter(t *testing.T) {
	day := time.Date(2025, 1, 2, 13, 0, 0, 0, time.UTC)
	orders := []Order{
		makeOrder("KP-1", "Asha", "9000000001", " kondapur", day, 400),
		makeOrder("GA-1", "Ravi", "9000000002", "Gachibowli", day, 600),
	}

	series := BuildWeekSeries(orders, "2025-01", 0, "Kondapur")
	if series[4].Count != 1 || series[4].Revenue != 400 {
		t.Fatalf("expected only the normalized Kondapur order, got %+v", series[4])
	}
}

func TestBuildWeekSeriesUnparsableMonth(t *testing.T) {
	series := BuildWeekSeries(nil, "bogus", 0, AllStores)
	for _, day := range series {
		if day.Count != 0 || day.Revenue != 0 {
			t.Fatalf("expected a zero series, got %+v", day)
		}
	}
}

func TestWeekLabel(t *testing.T) {
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC) // Wednesday; week Sunday = May 11
	cases := []struct {
		name     string
		sunday   time.Time
		expected string
	}{
		{"current week", time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), "Current Week"},
		{"one week back", time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC), "1 Week Ago"},
		{"three weeks back", time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), "3 Weeks Ago"},
		{"one week forward", time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC), "1 Week Ahead"},
		{"two weeks forward", time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), "2 Weeks Ahead"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekLabel(tc.sunday, now); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// Series Sundays come out of time.Parse in UTC while now carries the chain
// timezone. The zone offset must not shift the label by a week.
func TestWeekLabelMixedLocations(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, ist) // Wednesday; week Sunday = May 11

	cases := []struct {
		name     string
		sunday   time.Time
		expected string
	}{
		{"previous week", time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC), "1 Week Ago"},
		{"current week", time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), "Current Week"},
		{"next week", time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC), "1 Week Ahead"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekLabel(tc.sunday, now); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
