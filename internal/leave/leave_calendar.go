package leave

import "time"

// CountBusinessDays returns the inclusive number of weekdays (Monday-Friday)
// between start and end. Holidays are not consulted. Callers must pass
// end >= start; the count is 0 otherwise.
func CountBusinessDays(start, end time.Time) int {
	businessDays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			businessDays++
		}
	}
	return businessDays
}
