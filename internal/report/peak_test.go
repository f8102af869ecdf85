package report

import (
	"testing"
	"time"
)

// orderAt drops an order for the given outlet at a time inside the named slot.
func orderAt(outlet string, year int, month time.Month, day int, slot string) Order {
	var at time.Time
	switch slot {
	case "Lunch":
		at = time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	case "Evening":
		at = time.Date(year, month, day, 17, 0, 0, 0, time.UTC)
	case "Dinner":
		at = time.Date(year, month, day, 20, 0, 0, 0, time.UTC)
	default:
		at = time.Date(year, month, day, 0, 30, 0, 0, time.UTC)
	}
	return makeOrder("X-1", "Asha", "9000000001", outlet, at, 100)
}

func TestResolvePeakSlotSingleWinner(t *testing.T) {
	counts := [4]int{2, 7, 3, 0}
	peak := ResolvePeakSlot(counts, nil, "2025-05", AllStores)
	if peak == nil || peak.Label != "Evening" {
		t.Fatalf("expected Evening, got %+v", peak)
	}
	if peak.Icon == "" {
		t.Fatalf("expected peak slot to carry an icon")
	}
}

func TestResolvePeakSlotNoData(t *testing.T) {
	if peak := ResolvePeakSlot([4]int{}, nil, "2025-05", AllStores); peak != nil {
		t.Fatalf("expected nil for all-zero counts, got %+v", peak)
	}
}

func TestResolvePeakSlotHistoricalTieBreak(t *testing.T) {
	// Current month: Lunch and Dinner tied at 5. Prior months for the same
	// store: Lunch 12, Dinner 20. Dinner must win.
	history := make([]Order, 0, 32)
	for i := 0; i < 12; i++ {
		history = append(history, orderAt("Kondapur", 2025, time.March, 1+i%28, "Lunch"))
	}
	for i := 0; i < 20; i++ {
		history = append(history, orderAt("Kondapur", 2025, time.April, 1+i%28, "Dinner"))
	}

	counts := [4]int{5, 0, 5, 0}
	peak := ResolvePeakSlot(counts, history, "2025-05", "Kondapur")
	if peak == nil || peak.Label != "Dinner" {
		t.Fatalf("expected Dinner to win the historical tie-break, got %+v", peak)
	}
}

func TestResolvePeakSlotHistoryExcludesCurrentAndLaterMonths(t *testing.T) {
	// A mountain of Lunch orders in the selected month itself must not count
	// as history; neither must later months.
	history := make([]Order, 0, 40)
	for i := 0; i < 30; i++ {
		history = append(history, orderAt("Kondapur", 2025, time.May, 1+i%28, "Lunch"))
	}
	for i := 0; i < 9; i++ {
		history = append(history, orderAt("Kondapur", 2025, time.June, 1+i%28, "Lunch"))
	}
	history = append(history, orderAt("Kondapur", 2025, time.April, 2, "Dinner"))

	counts := [4]int{4, 0, 4, 0}
	peak := ResolvePeakSlot(counts, history, "2025-05", "Kondapur")
	if peak == nil || peak.Label != "Dinner" {
		t.Fatalf("expected Dinner via strictly-prior history, got %+v", peak)
	}
}

func TestResolvePeakSlotHistoryRespectsStoreFilter(t *testing.T) {
	history := []Order{
		orderAt("Gachibowli", 2025, time.April, 1, "Lunch"),
		orderAt("Gachibowli", 2025, time.April, 2, "Lunch"),
		orderAt(" kondapur ", 2025, time.April, 3, "Dinner"),
	}

	counts := [4]int{3, 0, 3, 0}
	peak := ResolvePeakSlot(counts, history, "2025-05", "Kondapur")
	if peak == nil || peak.Label != "Dinner" {
		t.Fatalf("expected Dinner from same-store history only, got %+v", peak)
	}
}

func TestResolvePeakSlotResidualTiePicksFirstSlot(t *testing.T) {
	counts := [4]int{2, 0, 2, 0}
	peak := ResolvePeakSlot(counts, nil, "2025-05", AllStores)
	if peak == nil || peak.Label != "Lunch" {
		t.Fatalf("expected the first tied slot when history also ties, got %+v", peak)
	}
}
