package listing

import "time"

// invalidDate is what a record without a timestamp shows, and therefore
// what a search for "invalid" matches.
const invalidDate = "Invalid Date"

// dateLayout renders like en-US toLocaleString, e.g. "7/1/2025, 10:20:30 AM".
const dateLayout = "1/2/2006, 3:04:05 PM"

// FormatDate renders t in loc the way it is displayed and searched.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return invalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}
