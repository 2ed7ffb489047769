// Package analytics composes the admin analytics and dashboard reports from
// independent store aggregates.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Config holds report settings.
type Config struct {
	Timezone         string `mapstructure:"timezone"`
	TopProductsLimit int    `mapstructure:"top_products_limit"`
	TopSellersLimit  int    `mapstructure:"top_sellers_limit"`
}

// Engine computes reports. It never writes to the store.
type Engine struct {
	agg    *Aggregator
	ranker *Ranker
	store  dependency.Metrics
	loc    *time.Location
	now    func() time.Time
	c      Config
}

var _ dependency.Analytics = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the reference instant used for windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an engine reading from store.
func New(store dependency.Metrics, c Config, opts ...Option) (*Engine, error) {
	loc := time.UTC
	if c.Timezone != "" {
		l, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
		}
		loc = l
	}
	if c.TopProductsLimit <= 0 {
		c.TopProductsLimit = DefaultTopN
	}
	if c.TopSellersLimit <= 0 {
		c.TopSellersLimit = DefaultTopN
	}
	e := &Engine{
		agg:    NewAggregator(store),
		ranker: NewRanker(store),
		store:  store,
		loc:    loc,
		now:    time.Now,
		c:      c,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

func (e *Engine) clock() time.Time {
	return e.now().In(e.loc)
}

// Analytics builds the report for r. Every aggregate is issued concurrently;
// the first failure aborts the whole report.
func (e *Engine) Analytics(ctx context.Context, r entity.Range) (*entity.AnalyticsReport, error) {
	now := e.clock()
	cur, prev := Windows(r, now)

	rep := &entity.AnalyticsReport{
		Range:         r,
		Period:        cur,
		ComparePeriod: prev,
	}

	var (
		prevRevenue      decimal.Decimal
		prevOrders       int
		curNewCustomers  int
		prevNewCustomers int
		records          []entity.OrderRecord
		signups          []time.Time
	)

	series := seriesWindow(now)
	monthly := MonthlyWindow(now)

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, &rep.Overview.TotalRevenue, func(ctx context.Context) (decimal.Decimal, error) { return e.agg.PaidRevenue(ctx, cur) })
	fetch(gctx, g, &prevRevenue, func(ctx context.Context) (decimal.Decimal, error) { return e.agg.PaidRevenue(ctx, prev) })
	fetch(gctx, g, &rep.Overview.TotalOrders, func(ctx context.Context) (int, error) { return e.agg.OrderCount(ctx, cur) })
	fetch(gctx, g, &prevOrders, func(ctx context.Context) (int, error) { return e.agg.OrderCount(ctx, prev) })
	fetch(gctx, g, &curNewCustomers, func(ctx context.Context) (int, error) { return e.agg.NewCustomers(ctx, cur) })
	fetch(gctx, g, &prevNewCustomers, func(ctx context.Context) (int, error) { return e.agg.NewCustomers(ctx, prev) })
	fetch(gctx, g, &rep.Overview.TotalCustomers, e.agg.CustomerCount)
	fetch(gctx, g, &rep.Overview.TotalProducts, e.agg.InStockProducts)
	fetch(gctx, g, &rep.Overview.AverageRating, e.agg.AverageRating)
	fetch(gctx, g, &rep.Overview.AverageOrderValue, func(ctx context.Context) (decimal.Decimal, error) { return e.agg.AvgPaidOrderValue(ctx, cur) })
	fetch(gctx, g, &rep.CustomerStats.ReturningCustomers, func(ctx context.Context) (int, error) { return e.agg.ReturningCustomers(ctx, cur) })
	fetch(gctx, g, &rep.ProductPerformance, func(ctx context.Context) ([]entity.ProductPerformance, error) {
		return e.ranker.Top(ctx, &cur, e.c.TopProductsLimit, entity.RankByRevenue)
	})
	fetch(gctx, g, &records, func(ctx context.Context) ([]entity.OrderRecord, error) {
		rs, err := e.store.ListOrderRecords(ctx, series)
		if err != nil {
			return nil, fmt.Errorf("series orders: %w", err)
		}
		return rs, nil
	})
	fetch(gctx, g, &signups, func(ctx context.Context) ([]time.Time, error) {
		ss, err := e.store.ListCustomerSignups(ctx, monthly)
		if err != nil {
			return nil, fmt.Errorf("series signups: %w", err)
		}
		return ss, nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute analytics: %w", err)
	}

	rep.Trends = entity.Trends{
		RevenueGrowth:   Growth(rep.Overview.TotalRevenue, prevRevenue),
		OrdersGrowth:    GrowthInt(rep.Overview.TotalOrders, prevOrders),
		CustomersGrowth: GrowthInt(curNewCustomers, prevNewCustomers),
	}
	rep.CustomerStats.NewCustomers = curNewCustomers
	rep.CustomerStats.AverageOrderValue = rep.Overview.AverageOrderValue
	rep.SalesData = MonthlySeries(records, signups, now)
	rep.RecentOrders = DailySeries(records, now)

	return rep, nil
}

// Stats builds the dashboard report comparing this calendar month with the
// previous one.
func (e *Engine) Stats(ctx context.Context) (*entity.StatsReport, error) {
	this, last := MonthWindows(e.clock())
	rep := &entity.StatsReport{}

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, &rep.TotalOrders, e.agg.TotalOrderCount)
	fetch(gctx, g, &rep.TotalRevenue, e.agg.TotalPaidRevenue)
	fetch(gctx, g, &rep.TotalCustomers, e.agg.CustomerCount)
	fetch(gctx, g, &rep.TotalProducts, e.agg.InStockProducts)
	fetch(gctx, g, &rep.AverageRating, e.agg.AverageRating)
	fetch(gctx, g, &rep.ThisMonth, func(ctx context.Context) (entity.PeriodTotals, error) { return e.agg.Totals(ctx, this) })
	fetch(gctx, g, &rep.LastMonth, func(ctx context.Context) (entity.PeriodTotals, error) { return e.agg.Totals(ctx, last) })
	fetch(gctx, g, &rep.TopSellers, func(ctx context.Context) ([]entity.ProductPerformance, error) {
		return e.ranker.Top(ctx, nil, e.c.TopSellersLimit, entity.RankByQuantity)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	rep.RevenueGrowth = Growth(rep.ThisMonth.Revenue, rep.LastMonth.Revenue)
	rep.OrdersGrowth = GrowthInt(rep.ThisMonth.Orders, rep.LastMonth.Orders)
	rep.CustomersGrowth = GrowthInt(rep.ThisMonth.Customers, rep.LastMonth.Customers)
	return rep, nil
}
