package report

import (
	"math"
	"testing"
	"time"
)

func orderWithItems(number string, items ...Item) Order {
	return Order{
		Number:   number,
		Customer: Customer{Name: "Asha", Mobile: "9000000001"},
		Items:    items,
		Outlet:   "Kondapur",
		Status:   StatusCompleted,
		PlacedAt: time.Date(2025, 5, 12, 13, 0, 0, 0, time.UTC),
	}
}

func TestTopSellersRanking(t *testing.T) {
	orders := []Order{
		orderWithItems("KP-1",
			Item{ProductID: 1, Name: "Chicken Biryani", Price: 250, Quantity: 4},
			Item{ProductID: 2, Name: "Masala Dosa", Price: 90, Quantity: 2},
		),
		orderWithItems("KP-2",
			Item{ProductID: 1, Name: "Chicken Biryani", Price: 250, Quantity: 3},
			Item{ProductID: 3, Name: "Filter Coffee", Price: 40, Quantity: 6},
			Item{ProductID: 4, Name: "Gulab Jamun", Price: 60, Quantity: 1},
		),
	}

	got := TopSellers(orders, 3)
	if got.TotalUnitsSold != 16 {
		t.Fatalf("expected 16 units total, got %d", got.TotalUnitsSold)
	}
	if len(got.Top) != 3 {
		t.Fatalf("expected 3 ranked items, got %d", len(got.Top))
	}
	if got.Top[0].Name != "Chicken Biryani" || got.Top[0].UnitsSold != 7 {
		t.Fatalf("expected Chicken Biryani x7 first, got %+v", got.Top[0])
	}
	if got.Top[0].Revenue != 1750 {
		t.Fatalf("expected biryani revenue 1750, got %v", got.Top[0].Revenue)
	}
	if got.Top[1].Name != "Filter Coffee" {
		t.Fatalf("expected Filter Coffee second, got %s", got.Top[1].Name)
	}
}

func TestTopSellersPercentageSum(t *testing.T) {
	orders := []Order{
		orderWithItems("KP-1",
			Item{ProductID: 1, Name: "A", Price: 10, Quantity: 5},
			Item{ProductID: 2, Name: "B", Price: 10, Quantity: 4},
			Item{ProductID: 3, Name: "C", Price: 10, Quantity: 3},
			Item{ProductID: 4, Name: "D", Price: 10, Quantity: 2},
			Item{ProductID: 5, Name: "E", Price: 10, Quantity: 1},
		),
	}

	got := TopSellers(orders, 3)
	sum := got.OthersPercentage
	for _, item := range got.Top {
		sum += item.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("expected percentages to sum to 100, got %v", sum)
	}
}

func TestTopSellersStableTieBreak(t *testing.T) {
	orders := []Order{
		orderWithItems("KP-1",
			Item{ProductID: 10, Name: "Idli", Price: 50, Quantity: 3},
			Item{ProductID: 11, Name: "Vada", Price: 50, Quantity: 3},
		),
	}

	got := TopSellers(orders, 2)
	if got.Top[0].Name != "Idli" || got.Top[1].Name != "Vada" {
		t.Fatalf("equal counts must keep encounter order, got %s then %s",
			got.Top[0].Name, got.Top[1].Name)
	}
}

func TestTopSellersEmptyInput(t *testing.T) {
	got := TopSellers(nil, 3)
	if got.TotalUnitsSold != 0 || got.OthersPercentage != 0 || len(got.Top) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestUnderperformer(t *testing.T) {
	orders := []Order{
		orderWithItems("KP-1",
			Item{ProductID: 1, Name: "A", Price: 10, Quantity: 9},
			Item{ProductID: 2, Name: "B", Price: 10, Quantity: 8},
			Item{ProductID: 3, Name: "C", Price: 10, Quantity: 7},
			Item{ProductID: 4, Name: "D", Price: 10, Quantity: 2},
			Item{ProductID: 5, Name: "E", Price: 10, Quantity: 4},
		),
	}

	result := TopSellers(orders, 3)
	worst := Underperformer(orders, result.Top)
	if worst == nil || worst.Name != "D" || worst.UnitsSold != 2 {
		t.Fatalf("expected D x2 as underperformer, got %+v", worst)
	}
}

func TestUnderperformerNilWhenAllRanked(t *testing.T) {
	orders := []Order{
		orderWithItems("KP-1",
			Item{ProductID: 1, Name: "A", Price: 10, Quantity: 2},
			Item{ProductID: 2, Name: "B", Price: 10, Quantity: 1},
		),
	}

	result := TopSellers(orders, 3)
	if worst := Underperformer(orders, result.Top); worst != nil {
		t.Fatalf("expected nil when every item is ranked, got %+v", worst)
	}
}

func TestUnderperformerExcludesByName(t *testing.T) {
	// Two distinct products that share a display name: if one of them ranks,
	// the other is excluded as well. Variants share names upstream, so the
	// name-based comparison is the intended behavior.
	orders := []Order{
		orderWithItems("KP-1",
			Item{ProductID: 1, Name: "Thali", Price: 120, Quantity: 9},
			Item{ProductID: 2, Name: "Thali", Price: 150, Quantity: 1},
			Item{ProductID: 3, Name: "Lassi", Price: 50, Quantity: 3},
		),
	}

	result := TopSellers(orders, 1)
	worst := Underperformer(orders, result.Top)
	if worst == nil || worst.Name != "Lassi" {
		t.Fatalf("expected Lassi, got %+v", worst)
	}
}
