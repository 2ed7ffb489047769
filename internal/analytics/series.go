package analytics

import (
	"sort"
	"time"

	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	dailyWindowDays = 30
	dailyPoints     = 7
	monthlyPoints   = 12

	dayLayout  = "2006-01-02"
	monthLabel = "Jan"
)

// DailyWindow is the trailing 30 days ending at now.
func DailyWindow(now time.Time) entity.TimeRange {
	return entity.TimeRange{From: now.AddDate(0, 0, -dailyWindowDays), To: now}
}

// MonthlyWindow starts at the first day of the month eleven months before now,
// so that it covers twelve calendar months including the current one.
func MonthlyWindow(now time.Time) entity.TimeRange {
	from := time.Date(now.Year(), now.Month()-(monthlyPoints-1), 1, 0, 0, 0, 0, now.Location())
	return entity.TimeRange{From: from, To: now}
}

// seriesWindow covers both the daily and the monthly windows.
func seriesWindow(now time.Time) entity.TimeRange {
	d, m := DailyWindow(now), MonthlyWindow(now)
	if d.From.Before(m.From) {
		m.From = d.From
	}
	return m
}

// DailySeries buckets records of the trailing 30 days by calendar day in
// now's location and returns the most recent 7 days that had orders, oldest first.
// Revenue only counts paid orders.
func DailySeries(records []entity.OrderRecord, now time.Time) []entity.DailyPoint {
	w := DailyWindow(now)
	loc := now.Location()

	buckets := map[string]*entity.DailyPoint{}
	for _, r := range records {
		if !w.Contains(r.CreatedAt) {
			continue
		}
		t := r.CreatedAt.In(loc)
		key := t.Format(dayLayout)
		b, ok := buckets[key]
		if !ok {
			b = &entity.DailyPoint{
				Date:    time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
				Label:   key,
				Revenue: decimal.Zero,
			}
			buckets[key] = b
		}
		b.Orders++
		if r.PaymentStatus.IsPaid() {
			b.Revenue = b.Revenue.Add(r.Total)
		}
	}

	points := make([]entity.DailyPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, *b)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if len(points) > dailyPoints {
		points = points[len(points)-dailyPoints:]
	}
	return points
}

// MonthlySeries returns exactly twelve calendar month buckets ending with the
// current month. Months without activity are present with zero values.
// Sales only count paid orders; customers are signups within the month.
func MonthlySeries(records []entity.OrderRecord, signups []time.Time, now time.Time) []entity.MonthlyPoint {
	w := MonthlyWindow(now)
	loc := now.Location()

	points := make([]entity.MonthlyPoint, monthlyPoints)
	for i := range points {
		m := w.From.AddDate(0, i, 0)
		points[i] = entity.MonthlyPoint{Month: m, Label: m.Format(monthLabel), Sales: decimal.Zero}
	}

	index := func(t time.Time) int {
		t = t.In(loc)
		return (t.Year()-w.From.Year())*12 + int(t.Month()) - int(w.From.Month())
	}

	for _, r := range records {
		if !w.Contains(r.CreatedAt) {
			continue
		}
		i := index(r.CreatedAt)
		if i < 0 || i >= monthlyPoints {
			continue
		}
		points[i].Orders++
		if r.PaymentStatus.IsPaid() {
			points[i].Sales = points[i].Sales.Add(r.Total)
		}
	}
	for _, s := range signups {
		if !w.Contains(s) {
			continue
		}
		i := index(s)
		if i < 0 || i >= monthlyPoints {
			continue
		}
		points[i].Customers++
	}
	return points
}
