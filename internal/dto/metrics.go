package dto

import (
	"time"

	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type Overview struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	TotalCustomers    int     `json:"totalCustomers"`
	TotalProducts     int     `json:"totalProducts"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	AverageRating     float64 `json:"averageRating"`
}

type Trends struct {
	RevenueGrowth   int `json:"revenueGrowth"`
	OrdersGrowth    int `json:"ordersGrowth"`
	CustomersGrowth int `json:"customersGrowth"`
}

type SalesPoint struct {
	Month     string  `json:"month"`
	Date      string  `json:"date"`
	Sales     float64 `json:"sales"`
	Orders    int     `json:"orders"`
	Customers int     `json:"customers"`
}

type RecentOrdersPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type ProductPerformance struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Sales       int     `json:"sales"`
	Lines       int     `json:"lines"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
	Percentage  int     `json:"percentage"`
}

type CustomerStats struct {
	NewCustomers       int     `json:"newCustomers"`
	ReturningCustomers int     `json:"returningCustomers"`
	AverageOrderValue  float64 `json:"averageOrderValue"`
}

// AnalyticsResponse is the body of GET /api/admin/analytics.
type AnalyticsResponse struct {
	Range              string               `json:"range"`
	Period             TimeRange            `json:"period"`
	ComparePeriod      TimeRange            `json:"comparePeriod"`
	Overview           Overview             `json:"overview"`
	Trends             Trends               `json:"trends"`
	SalesData          []SalesPoint         `json:"salesData"`
	RecentOrders       []RecentOrdersPoint  `json:"recentOrders"`
	ProductPerformance []ProductPerformance `json:"productPerformance"`
	CustomerStats      CustomerStats        `json:"customerStats"`
}

type PeriodTotals struct {
	Period    TimeRange `json:"period"`
	Revenue   float64   `json:"revenue"`
	Orders    int       `json:"orders"`
	Customers int       `json:"customers"`
}

// StatsResponse is the body of GET /api/admin/stats.
type StatsResponse struct {
	TotalOrders     int                  `json:"totalOrders"`
	TotalRevenue    float64              `json:"totalRevenue"`
	TotalCustomers  int                  `json:"totalCustomers"`
	TotalProducts   int                  `json:"totalProducts"`
	ThisMonth       PeriodTotals         `json:"thisMonth"`
	LastMonth       PeriodTotals         `json:"lastMonth"`
	RevenueGrowth   int                  `json:"revenueGrowth"`
	OrdersGrowth    int                  `json:"ordersGrowth"`
	CustomersGrowth int                  `json:"customersGrowth"`
	TopSellers      []ProductPerformance `json:"topSellers"`
	AverageRating   float64              `json:"averageRating"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func rating(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

func timeRangeToDto(tr entity.TimeRange) TimeRange {
	return TimeRange{From: tr.From, To: tr.To}
}

func productPerformanceToDto(pps []entity.ProductPerformance) []ProductPerformance {
	res := make([]ProductPerformance, 0, len(pps))
	for _, p := range pps {
		res = append(res, ProductPerformance{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Price:       money(p.Price),
			Sales:       p.Units,
			Lines:       p.Lines,
			Orders:      p.OrderCount,
			Revenue:     money(p.Revenue),
			Percentage:  p.PercentageOfTotal,
		})
	}
	return res
}

func periodTotalsToDto(pt entity.PeriodTotals) PeriodTotals {
	return PeriodTotals{
		Period:    timeRangeToDto(pt.Period),
		Revenue:   money(pt.Revenue),
		Orders:    pt.Orders,
		Customers: pt.Customers,
	}
}

func ConvertEntityAnalyticsToDto(r *entity.AnalyticsReport) *AnalyticsResponse {
	if r == nil {
		return nil
	}
	resp := &AnalyticsResponse{
		Range:         string(r.Range),
		Period:        timeRangeToDto(r.Period),
		ComparePeriod: timeRangeToDto(r.ComparePeriod),
		Overview: Overview{
			TotalRevenue:      money(r.Overview.TotalRevenue),
			TotalOrders:       r.Overview.TotalOrders,
			TotalCustomers:    r.Overview.TotalCustomers,
			TotalProducts:     r.Overview.TotalProducts,
			AverageOrderValue: money(r.Overview.AverageOrderValue),
			AverageRating:     rating(r.Overview.AverageRating),
		},
		Trends: Trends{
			RevenueGrowth:   r.Trends.RevenueGrowth,
			OrdersGrowth:    r.Trends.OrdersGrowth,
			CustomersGrowth: r.Trends.CustomersGrowth,
		},
		SalesData:          make([]SalesPoint, 0, len(r.SalesData)),
		RecentOrders:       make([]RecentOrdersPoint, 0, len(r.RecentOrders)),
		ProductPerformance: productPerformanceToDto(r.ProductPerformance),
		CustomerStats: CustomerStats{
			NewCustomers:       r.CustomerStats.NewCustomers,
			ReturningCustomers: r.CustomerStats.ReturningCustomers,
			AverageOrderValue:  money(r.CustomerStats.AverageOrderValue),
		},
	}
	for _, p := range r.SalesData {
		resp.SalesData = append(resp.SalesData, SalesPoint{
			Month:     p.Label,
			Date:      p.Month.Format("2006-01"),
			Sales:     money(p.Sales),
			Orders:    p.Orders,
			Customers: p.Customers,
		})
	}
	for _, p := range r.RecentOrders {
		resp.RecentOrders = append(resp.RecentOrders, RecentOrdersPoint{
			Date:    p.Label,
			Orders:  p.Orders,
			Revenue: money(p.Revenue),
		})
	}
	return resp
}

func ConvertEntityStatsToDto(s *entity.StatsReport) *StatsResponse {
	if s == nil {
		return nil
	}
	return &StatsResponse{
		TotalOrders:     s.TotalOrders,
		TotalRevenue:    money(s.TotalRevenue),
		TotalCustomers:  s.TotalCustomers,
		TotalProducts:   s.TotalProducts,
		ThisMonth:       periodTotalsToDto(s.ThisMonth),
		LastMonth:       periodTotalsToDto(s.LastMonth),
		RevenueGrowth:   s.RevenueGrowth,
		OrdersGrowth:    s.OrdersGrowth,
		CustomersGrowth: s.CustomersGrowth,
		TopSellers:      productPerformanceToDto(s.TopSellers),
		AverageRating:   rating(s.AverageRating),
	}
}
