package report

import (
	"sort"
	"strings"
	"time"
)

// CustomerSummary is a derived per-customer aggregate, keyed by mobile
// number. It is recomputed on every filter change and never persisted.
type CustomerSummary struct {
	Mobile      string    `json:"mobile"`
	Name        string    `json:"name"`
	TotalOrders int       `json:"totalOrders"`
	TotalSpent  float64   `json:"totalSpent"`
	LastOrdered time.Time `json:"lastOrdered"`
	Outlets     []string  `json:"outlets"`
}

// RollupCustomers groups orders by customer mobile number. A missing mobile
// groups under the empty-string key rather than failing. Outlets collects
// distinct non-empty outlet names in insertion order; output is sorted by
// most recent order, descending.
func RollupCustomers(filtered []Order) []CustomerSummary {
	index := make(map[string]int)
	out := make([]CustomerSummary, 0)

	for _, o := range filtered {
		pos, ok := index[o.Customer.Mobile]
		if !ok {
			pos = len(out)
			index[o.Customer.Mobile] = pos
			out = append(out, CustomerSummary{
				Mobile:  o.Customer.Mobile,
				Name:    o.Customer.Name,
				Outlets: []string{},
			})
		}
		c := &out[pos]
		c.TotalOrders++
		c.TotalSpent += o.Total
		if o.PlacedAt.After(c.LastOrdered) {
			c.LastOrdered = o.PlacedAt
		}
		outlet := strings.TrimSpace(o.Outlet)
		if outlet != "" && !containsString(c.Outlets, outlet) {
			c.Outlets = append(c.Outlets, outlet)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastOrdered.After(out[j].LastOrdered)
	})
	return out
}

// SearchCustomers applies a free-text filter after rollup: case-insensitive
// substring match on name or raw mobile. Empty term returns the input as is.
func SearchCustomers(summaries []CustomerSummary, term string) []CustomerSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return summaries
	}
	out := make([]CustomerSummary, 0, len(summaries))
	for _, c := range summaries {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Mobile), term) {
			out = append(out, c)
		}
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
