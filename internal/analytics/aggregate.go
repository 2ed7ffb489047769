package analytics

import (
	"context"
	"fmt"

	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Aggregator computes scalar aggregates over a window. No method returns a
// missing value: empty sets aggregate to zero.
type Aggregator struct {
	store dependency.Metrics
}

// NewAggregator returns an aggregator reading from store.
func NewAggregator(store dependency.Metrics) *Aggregator {
	return &Aggregator{store: store}
}

// OrderCount counts all orders placed within w.
func (a *Aggregator) OrderCount(ctx context.Context, w entity.TimeRange) (int, error) {
	n, err := a.store.CountOrders(ctx, entity.OrdersIn(w))
	if err != nil {
		return 0, fmt.Errorf("order count: %w", err)
	}
	return n, nil
}

// TotalOrderCount counts all orders ever placed.
func (a *Aggregator) TotalOrderCount(ctx context.Context) (int, error) {
	n, err := a.store.CountOrders(ctx, entity.OrderFilter{})
	if err != nil {
		return 0, fmt.Errorf("total order count: %w", err)
	}
	return n, nil
}

// PaidRevenue sums totals of paid orders placed within w.
func (a *Aggregator) PaidRevenue(ctx context.Context, w entity.TimeRange) (decimal.Decimal, error) {
	sum, err := a.store.SumOrderTotal(ctx, entity.PaidIn(w))
	if err != nil {
		return decimal.Zero, fmt.Errorf("paid revenue: %w", err)
	}
	return sum, nil
}

// TotalPaidRevenue sums totals of all paid orders.
func (a *Aggregator) TotalPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	sum, err := a.store.SumOrderTotal(ctx, entity.Paid())
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid revenue: %w", err)
	}
	return sum, nil
}

// AvgPaidOrderValue averages totals of paid orders placed within w.
func (a *Aggregator) AvgPaidOrderValue(ctx context.Context, w entity.TimeRange) (decimal.Decimal, error) {
	avg, err := a.store.AvgOrderTotal(ctx, entity.PaidIn(w))
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg paid order value: %w", err)
	}
	return avg, nil
}

// CustomerCount counts all customers.
func (a *Aggregator) CustomerCount(ctx context.Context) (int, error) {
	n, err := a.store.CountCustomers(ctx, entity.CustomerFilter{})
	if err != nil {
		return 0, fmt.Errorf("customer count: %w", err)
	}
	return n, nil
}

// NewCustomers counts customers created within w.
func (a *Aggregator) NewCustomers(ctx context.Context, w entity.TimeRange) (int, error) {
	n, err := a.store.CountCustomers(ctx, entity.CustomerFilter{Window: &w})
	if err != nil {
		return 0, fmt.Errorf("new customers: %w", err)
	}
	return n, nil
}

// ReturningCustomers counts customers created before w that ordered within w.
func (a *Aggregator) ReturningCustomers(ctx context.Context, w entity.TimeRange) (int, error) {
	n, err := a.store.CountReturningCustomers(ctx, w)
	if err != nil {
		return 0, fmt.Errorf("returning customers: %w", err)
	}
	return n, nil
}

// InStockProducts counts products with positive stock.
func (a *Aggregator) InStockProducts(ctx context.Context) (int, error) {
	n, err := a.store.CountProductsInStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("in stock products: %w", err)
	}
	return n, nil
}

// AverageRating averages all review ratings.
func (a *Aggregator) AverageRating(ctx context.Context) (decimal.Decimal, error) {
	avg, err := a.store.AvgReviewRating(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}

// Totals computes revenue, orders and new customers of w concurrently.
func (a *Aggregator) Totals(ctx context.Context, w entity.TimeRange) (entity.PeriodTotals, error) {
	t := entity.PeriodTotals{Period: w}
	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, &t.Revenue, func(ctx context.Context) (decimal.Decimal, error) { return a.PaidRevenue(ctx, w) })
	fetch(gctx, g, &t.Orders, func(ctx context.Context) (int, error) { return a.OrderCount(ctx, w) })
	fetch(gctx, g, &t.Customers, func(ctx context.Context) (int, error) { return a.NewCustomers(ctx, w) })
	if err := g.Wait(); err != nil {
		return entity.PeriodTotals{}, err
	}
	return t, nil
}

// fetch schedules f on g and stores its result in dst on success.
// dst must not be read before g.Wait returns.
func fetch[T any](ctx context.Context, g *errgroup.Group, dst *T, f func(context.Context) (T, error)) {
	g.Go(func() error {
		v, err := f(ctx)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}
