package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Range is a named reporting window.
type Range string

const (
	Range7Days    Range = "7days"
	Range30Days   Range = "30days"
	Range90Days   Range = "90days"
	Range12Months Range = "12months"

	DefaultRange = Range12Months
)

// TimeRange is a half-open interval [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Duration returns the length of the interval.
func (tr TimeRange) Duration() time.Duration {
	return tr.To.Sub(tr.From)
}

// Contains reports whether t falls within [From, To).
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.From) && t.Before(tr.To)
}

// RankKey selects the value products are ranked by.
type RankKey int

const (
	RankByQuantity RankKey = 1
	RankByRevenue  RankKey = 2
)

// ProductPerformance is one entry of a top-N product ranking.
type ProductPerformance struct {
	ProductID         int
	ProductName       string
	Price             decimal.Decimal
	Units             int
	Lines             int
	OrderCount        int
	Revenue           decimal.Decimal
	PercentageOfTotal int
}

// DailyPoint is one day bucket of the recent orders series.
type DailyPoint struct {
	Date    time.Time
	Label   string
	Orders  int
	Revenue decimal.Decimal
}

// MonthlyPoint is one calendar month bucket of the sales series.
type MonthlyPoint struct {
	Month     time.Time
	Label     string
	Sales     decimal.Decimal
	Orders    int
	Customers int
}

type Overview struct {
	TotalRevenue      decimal.Decimal
	TotalOrders       int
	TotalCustomers    int
	TotalProducts     int
	AverageOrderValue decimal.Decimal
	AverageRating     decimal.Decimal
}

// Trends holds whole-percent growth of the current window over the previous one.
type Trends struct {
	RevenueGrowth   int
	OrdersGrowth    int
	CustomersGrowth int
}

type CustomerStats struct {
	NewCustomers       int
	ReturningCustomers int
	AverageOrderValue  decimal.Decimal
}

// AnalyticsReport is the admin analytics payload for a selected range.
type AnalyticsReport struct {
	Range              Range
	Period             TimeRange
	ComparePeriod      TimeRange
	Overview           Overview
	Trends             Trends
	SalesData          []MonthlyPoint
	RecentOrders       []DailyPoint
	ProductPerformance []ProductPerformance
	CustomerStats      CustomerStats
}

// PeriodTotals are the scalar aggregates of one window.
type PeriodTotals struct {
	Period    TimeRange
	Revenue   decimal.Decimal
	Orders    int
	Customers int
}

// StatsReport is the dashboard payload: this calendar month against the last one.
type StatsReport struct {
	TotalOrders     int
	TotalRevenue    decimal.Decimal
	TotalCustomers  int
	TotalProducts   int
	ThisMonth       PeriodTotals
	LastMonth       PeriodTotals
	RevenueGrowth   int
	OrdersGrowth    int
	CustomersGrowth int
	TopSellers      []ProductPerformance
	AverageRating   decimal.Decimal
}
