package report

import "sort"

// RankedItem is a product's sales aggregate within a filtered order set.
type RankedItem struct {
	ProductID  int64   `json:"productId"`
	Name       string  `json:"name"`
	UnitsSold  int     `json:"unitsSold"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type TopSellersResult struct {
	Top              []RankedItem `json:"top"`
	OthersPercentage float64      `json:"othersPercentage"`
	TotalUnitsSold   int          `json:"totalUnitsSold"`
}

// aggregateItems groups line items by product identity in encounter order.
func aggregateItems(orders []Order) []RankedItem {
	index := make(map[int64]int)
	items := make([]RankedItem, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			pos, ok := index[it.ProductID]
			if !ok {
				pos = len(items)
				index[it.ProductID] = pos
				items = append(items, RankedItem{ProductID: it.ProductID, Name: it.Name})
			}
			items[pos].UnitsSold += it.Quantity
			items[pos].Revenue += it.Price * float64(it.Quantity)
		}
	}
	return items
}

// TopSellers ranks products by units sold, descending. Equal counts keep
// encounter order (stable sort over the aggregation order). Percentages are
// shares of total units; OthersPercentage is the combined share of everything
// beyond the top N. topN <= 0 defaults to 3.
func TopSellers(filtered []Order, topN int) TopSellersResult {
	if topN <= 0 {
		topN = 3
	}

	items := aggregateItems(filtered)
	total := 0
	for _, it := range items {
		total += it.UnitsSold
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UnitsSold > items[j].UnitsSold
	})

	if total > 0 {
		for i := range items {
			items[i].Percentage = float64(items[i].UnitsSold) / float64(total) * 100
		}
	}

	result := TopSellersResult{TotalUnitsSold: total}
	if len(items) <= topN {
		result.Top = items
		return result
	}
	result.Top = items[:topN]
	for _, it := range items[topN:] {
		result.OthersPercentage += it.Percentage
	}
	return result
}

// Underperformer returns the least-sold product outside the top set, or nil
// when every product is already ranked. Exclusion compares display names, not
// ids: add-on and variant products intentionally share names upstream, and
// the reporting behavior follows that.
func Underperformer(filtered []Order, top []RankedItem) *RankedItem {
	topNames := make(map[string]struct{}, len(top))
	for _, t := range top {
		topNames[t.Name] = struct{}{}
	}

	var worst *RankedItem
	items := aggregateItems(filtered)
	for i := range items {
		if _, ranked := topNames[items[i].Name]; ranked {
			continue
		}
		if worst == nil || items[i].UnitsSold < worst.UnitsSold {
			worst = &items[i]
		}
	}
	if worst == nil {
		return nil
	}
	out := *worst
	return &out
}
