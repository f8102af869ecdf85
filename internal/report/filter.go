package report

import (
	"math"
	"strings"
	"time"
)

// AllStores is the sentinel store filter value that matches every outlet.
const AllStores = "All Stores"

// Criteria narrows an order set. Zero values bypass their filter: empty
// Month/Store/Search and Week <= 0 all mean "no restriction".
type Criteria struct {
	Month  string // "YYYY-MM"
	Store  string
	Week   int // 1-based week of month
	Search string
}

// NormalizeOutlet collapses internal whitespace, trims, and lowercases a
// store name. Upstream outlet values are inconsistently formatted, so every
// store comparison in this package goes through it.
func NormalizeOutlet(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Filter returns the orders matching every active criterion. The input slice
// is never mutated.
func Filter(orders []Order, c Criteria) []Order {
	matchStore := c.Store != "" && c.Store != AllStores
	store := NormalizeOutlet(c.Store)
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if c.Month != "" && o.MonthKey() != c.Month {
			continue
		}
		if matchStore && NormalizeOutlet(o.Outlet) != store {
			continue
		}
		if c.Week > 0 && WeekOfMonth(o.PlacedAt) != c.Week {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesSearch(o Order, term string) bool {
	return strings.Contains(strings.ToLower(o.Number), term) ||
		strings.Contains(strings.ToLower(o.Customer.Name), term) ||
		strings.Contains(strings.ToLower(o.Customer.Mobile), term)
}

// WeekOfMonth computes the 1-based week number of a date as
// ceil((dayOfMonth + firstWeekdayOffset - 1) / 7), where firstWeekdayOffset
// is the weekday (0=Sunday) of the 1st of that month.
func WeekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	offset := int(first.Weekday())
	return int(math.Ceil(float64(t.Day()+offset-1) / 7))
}
