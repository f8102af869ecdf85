package report

import (
	"fmt"
	"time"
)

// DayStat is one day of the Sun–Sat charting series.
type DayStat struct {
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
	Revenue float64   `json:"revenue"`
}

// BuildWeekSeries produces the 7-day series for the week at weekOffset
// relative to the selected month. The base week starts at the Sunday on or
// before the 1st of the month, which can fall in the previous month. Orders
// are matched against the full, month-unfiltered set on purpose: a week that
// straddles a month boundary still shows its data. Returns a zero series for
// an unparsable month.
func BuildWeekSeries(allOrders []Order, month string, weekOffset int, store string) [7]DayStat {
	var series [7]DayStat
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return series
	}

	sunday := start.AddDate(0, 0, -int(start.Weekday())+weekOffset*7)
	matchStore := store != "" && store != AllStores
	norm := NormalizeOutlet(store)

	for i := range series {
		day := sunday.AddDate(0, 0, i)
		series[i].Date = day
		for _, o := range allOrders {
			if !sameDate(o.PlacedAt, day) {
				continue
			}
			if matchStore && NormalizeOutlet(o.Outlet) != norm {
				continue
			}
			series[i].Count++
			series[i].Revenue += o.Total
		}
	}
	return series
}

// WeekLabel names a week by its Sunday relative to the current date's week:
// "Current Week" when they coincide, otherwise a signed offset. Both inputs
// are reduced to their calendar dates first, so a UTC series Sunday and a
// chain-local now never drift a day apart across the zone offset.
func WeekLabel(weekSunday, now time.Time) string {
	currentSunday := now.AddDate(0, 0, -int(now.Weekday()))
	weeks := daysBetween(calendarDate(weekSunday), calendarDate(currentSunday)) / 7
	switch {
	case weeks == 0:
		return "Current Week"
	case weeks == 1:
		return "1 Week Ago"
	case weeks > 1:
		return fmt.Sprintf("%d Weeks Ago", weeks)
	case weeks == -1:
		return "1 Week Ahead"
	default:
		return fmt.Sprintf("%d Weeks Ahead", -weeks)
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// calendarDate strips the clock and location from t, keeping only its wall
// date. Durations between calendar dates are exact multiples of 24h.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
