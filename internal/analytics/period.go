package analytics

import (
	"time"

	v "github.com/asaskevich/govalidator"
	"github.com/nutrishop/shop-manager/internal/entity"
)

var knownRanges = []string{
	string(entity.Range7Days),
	string(entity.Range30Days),
	string(entity.Range90Days),
	string(entity.Range12Months),
}

// ParseRange normalizes a range token. Unknown or empty tokens fall back to
// entity.DefaultRange and ok is false.
func ParseRange(token string) (r entity.Range, ok bool) {
	if !v.IsIn(token, knownRanges...) {
		return entity.DefaultRange, false
	}
	return entity.Range(token), true
}

// Windows returns the current window [start, now) for r and the immediately
// preceding window of the same duration.
func Windows(r entity.Range, now time.Time) (current, previous entity.TimeRange) {
	var start time.Time
	switch r {
	case entity.Range7Days:
		start = now.AddDate(0, 0, -7)
	case entity.Range30Days:
		start = now.AddDate(0, 0, -30)
	case entity.Range90Days:
		start = now.AddDate(0, 0, -90)
	default:
		start = now.AddDate(-1, 0, 0)
	}
	current = entity.TimeRange{From: start, To: now}
	previous = entity.TimeRange{From: start.Add(-current.Duration()), To: start}
	return current, previous
}

// MonthWindows returns this calendar month up to now and the whole previous calendar month.
func MonthWindows(now time.Time) (this, last entity.TimeRange) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	this = entity.TimeRange{From: first, To: now}
	last = entity.TimeRange{From: first.AddDate(0, -1, 0), To: first}
	return this, last
}
