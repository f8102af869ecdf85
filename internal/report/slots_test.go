package report

import (
	"testing"
	"time"
)

func TestSlotsPartitionDay(t *testing.T) {
	// Every minute of a 24-hour cycle must land in exactly one slot.
	for minute := 0; minute < 24*60; minute++ {
		hour := float64(minute) / 60
		matches := 0
		for _, s := range Slots {
			if s.Contains(hour) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("hour %.2f matched %d slots, expected exactly 1", hour, matches)
		}
	}
}

func TestSlotIndexBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		hour     int
		minute   int
		expected string
	}{
		{"lunch opens", 11, 30, "Lunch"},
		{"last lunch minute", 15, 59, "Lunch"},
		{"evening opens", 16, 0, "Evening"},
		{"dinner opens", 19, 30, "Dinner"},
		{"last dinner minute", 23, 29, "Dinner"},
		{"late night opens", 23, 30, "Late Night"},
		{"midnight", 0, 0, "Late Night"},
		{"early morning", 6, 15, "Late Night"},
		{"last wrap minute", 11, 29, "Late Night"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := time.Date(2025, 3, 10, tc.hour, tc.minute, 0, 0, time.UTC)
			got := Slots[SlotIndex(ts)].Label
			if got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestWrapSlotUsesOrTest(t *testing.T) {
	late := Slots[3]
	if !late.Contains(23.5) {
		t.Fatalf("expected 23.5 inside the wrap slot")
	}
	if !late.Contains(2) {
		t.Fatalf("expected 02:00 inside the wrap slot")
	}
	if late.Contains(11.5) {
		t.Fatalf("expected 11.5 outside the wrap slot")
	}
}
