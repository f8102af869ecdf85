package report

import "time"

// Slot is one of the four fixed time-of-day buckets used for order-volume
// distribution. Start and End are fractional hours; End past 24 marks the
// slot that wraps midnight.
type Slot struct {
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
	Start float64 `json:"-"`
	End   float64 `json:"-"`
}

// Slots partition the 24-hour cycle: the three daytime slots cover
// [11.5, 23.5) and Late Night covers the rest, running 23:30 through 11:30
// the next day.
var Slots = [4]Slot{
	{Label: "Lunch", Icon: "🌤️", Start: 11.5, End: 16},
	{Label: "Evening", Icon: "🌆", Start: 16, End: 19.5},
	{Label: "Dinner", Icon: "🌙", Start: 19.5, End: 23.5},
	{Label: "Late Night", Icon: "🦉", Start: 23.5, End: 35.5},
}

// Contains reports whether a fractional hour in [0, 24) falls in the slot.
// The wrapping slot must use the OR test: a plain range check never matches
// the early-morning side of midnight.
func (s Slot) Contains(hour float64) bool {
	if s.End > 24 {
		return hour >= s.Start || hour < s.End-24
	}
	return hour >= s.Start && hour < s.End
}

// SlotIndex returns the index into Slots of the unique slot containing the
// instant's time of day.
func SlotIndex(t time.Time) int {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	for i, s := range Slots {
		if s.Contains(hour) {
			return i
		}
	}
	// Unreachable while Slots partition the day; the wrap slot absorbs
	// anything the range slots miss.
	return len(Slots) - 1
}
