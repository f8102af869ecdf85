package report

import "time"

// Metrics summarizes a filtered order set for the dashboard headline cards.
type Metrics struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	AvgOrdersPerDay float64 `json:"avgOrdersPerDay"`
	SlotCounts      [4]int  `json:"slotCounts"`
}

// ComputeMetrics derives totals, averages, and the time-slot distribution
// from an already-filtered order set. month is the selected "YYYY-MM" and
// only feeds the orders-per-day normalization. Every ratio guards the zero
// denominator: an empty input yields all zeroes, never NaN.
func ComputeMetrics(filtered []Order, month string) Metrics {
	var m Metrics
	m.TotalOrders = len(filtered)
	for _, o := range filtered {
		m.TotalRevenue += o.Total
		m.SlotCounts[SlotIndex(o.PlacedAt)]++
	}
	if m.TotalOrders == 0 {
		return m
	}
	m.AvgOrderValue = m.TotalRevenue / float64(m.TotalOrders)
	if days := daysInMonth(month); days > 0 {
		m.AvgOrdersPerDay = float64(m.TotalOrders) / float64(days)
	}
	return m
}

func daysInMonth(month string) int {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	return start.AddDate(0, 1, -1).Day()
}
