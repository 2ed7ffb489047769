package analytics

import (
	"context"
	"testing"

	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/nutrishop/shop-manager/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatesOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	a := NewAggregator(memory.New())
	w := entity.TimeRange{From: refNow.AddDate(0, 0, -7), To: refNow}

	n, err := a.OrderCount(ctx, w)
	require.NoError(t, err)
	assert.Zero(t, n)

	sum, err := a.PaidRevenue(ctx, w)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	avg, err := a.AvgPaidOrderValue(ctx, w)
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	rating, err := a.AverageRating(ctx)
	require.NoError(t, err)
	assert.True(t, rating.IsZero())

	for _, f := range []func(context.Context) (int, error){a.CustomerCount, a.InStockProducts, a.TotalOrderCount} {
		n, err := f(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	}

	totals, err := a.Totals(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, w, totals.Period)
	assert.True(t, totals.Revenue.IsZero())
}

func TestPaidRevenueIgnoresUnpaid(t *testing.T) {
	s := newScenario(t)
	s.order(0, refNow.AddDate(0, 0, -1), 100, entity.PaymentStatusPaid)
	s.order(0, refNow.AddDate(0, 0, -1), 40, entity.PaymentStatusPending)
	s.order(0, refNow.AddDate(0, 0, -1), 30, entity.PaymentStatusRefunded)
	s.order(0, refNow.AddDate(0, 0, -1), 20, entity.PaymentStatusFailed)

	a := NewAggregator(s.ms)
	w := entity.TimeRange{From: refNow.AddDate(0, 0, -7), To: refNow}

	sum, err := a.PaidRevenue(s.ctx, w)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(100)))

	n, err := a.OrderCount(s.ctx, w)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestAverageRatingError(t *testing.T) {
	_, err := NewAggregator(failingRating{memory.New()}).AverageRating(context.Background())
	assert.ErrorIs(t, err, errStore)
}
