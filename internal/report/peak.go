package report

// PeakSlot is the busiest time-of-day bucket for the selected period.
type PeakSlot struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ResolvePeakSlot picks the slot with the most orders in the current
// selection. When several slots tie, the tie is broken by cumulative counts
// over every strictly prior month of allOrders under the same store filter;
// that deliberate reach across the month filter is why the full order set is
// part of the signature. A residual tie after the historical comparison
// resolves to the lowest slot index.
//
// Returns nil when the selection has no orders in any slot.
func ResolvePeakSlot(slotCounts [4]int, allOrders []Order, month, store string) *PeakSlot {
	max := 0
	for _, c := range slotCounts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return nil
	}

	top := make([]int, 0, len(slotCounts))
	for i, c := range slotCounts {
		if c == max {
			top = append(top, i)
		}
	}

	winner := top[0]
	if len(top) > 1 {
		hist := historicalSlotCounts(allOrders, month, store)
		best := -1
		for _, i := range top {
			if hist[i] > best {
				best = hist[i]
				winner = i
			}
		}
	}

	return &PeakSlot{Label: Slots[winner].Label, Icon: Slots[winner].Icon}
}

// historicalSlotCounts tallies orders from months strictly before the
// selected one, restricted to the current store filter. "YYYY-MM" keys
// compare chronologically as strings.
func historicalSlotCounts(allOrders []Order, month, store string) [4]int {
	var counts [4]int
	matchStore := store != "" && store != AllStores
	norm := NormalizeOutlet(store)
	for _, o := range allOrders {
		if month != "" && o.MonthKey() >= month {
			continue
		}
		if matchStore && NormalizeOutlet(o.Outlet) != norm {
			continue
		}
		counts[SlotIndex(o.PlacedAt)]++
	}
	return counts
}
