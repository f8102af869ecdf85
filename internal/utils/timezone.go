package utils

import "time"

// LoadLocation resolves the chain's display timezone, falling back to UTC.
// All dashboard month/slot bucketing happens in this location.
func LoadLocation(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CurrentMonth returns the "YYYY-MM" key of the current date in tz.
func CurrentMonth(tz string) string {
	return time.Now().In(LoadLocation(tz)).Format("2006-01")
}
