package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/nutrishop/shop-manager/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// newTestDB connects to TEST_MYSQL_DSN and empties every table.
func newTestDB(t *testing.T) *SQLStore {
	t.Helper()
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN is not set")
	}
	ctx := context.Background()
	db, err := New(ctx, Config{
		Driver:      DriverMySQL,
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	for _, q := range []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"DELETE FROM review",
		"DELETE FROM order_line",
		"DELETE FROM orders",
		"DELETE FROM product",
		"DELETE FROM users",
		"SET FOREIGN_KEY_CHECKS = 1",
	} {
		_, err = db.db.ExecContext(ctx, q)
		require.NoError(t, err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedBoth writes the same rows into the SQL store and a memory store.
func seedBoth(t *testing.T, ctx context.Context, db *SQLStore) *memory.Store {
	t.Helper()
	ms := memory.New()

	users := []entity.User{
		{ID: 1, Email: "admin@nutrishop.example", Role: entity.RoleAdmin, CreatedAt: testNow.AddDate(-2, 0, 0)},
		{ID: 2, Email: "a@nutrishop.example", Role: entity.RoleCustomer, CreatedAt: testNow.AddDate(0, -3, 0)},
		{ID: 3, Email: "b@nutrishop.example", Role: entity.RoleCustomer, CreatedAt: testNow.AddDate(0, 0, -10)},
		{ID: 4, Email: "c@nutrishop.example", Role: entity.RoleCustomer, CreatedAt: testNow.AddDate(0, 0, -40)},
	}
	products := []entity.Product{
		{ID: 1, Name: "Whey Protein Isolate 2kg", Price: dec("59.90"), Stock: 12, CreatedAt: testNow.AddDate(-1, 0, 0)},
		{ID: 2, Name: "Creatine Monohydrate 500g", Price: dec("24.99"), Stock: 0, CreatedAt: testNow.AddDate(-1, 0, 0)},
		{ID: 3, Name: "Omega-3 Fish Oil", Price: dec("19.90"), Stock: 3, CreatedAt: testNow.AddDate(-1, 0, 0)},
	}
	type order struct {
		customer int
		at       time.Time
		status   entity.PaymentStatus
		lines    []entity.OrderLine
	}
	orders := []order{
		{2, testNow.AddDate(0, 0, -1), entity.PaymentStatusPaid, []entity.OrderLine{
			{ProductID: 1, Quantity: 2, Price: dec("59.90")},
			{ProductID: 3, Quantity: 1, Price: dec("19.90")},
		}},
		{3, testNow.AddDate(0, 0, -2), entity.PaymentStatusPending, []entity.OrderLine{
			{ProductID: 2, Quantity: 4, Price: dec("24.99")},
		}},
		{2, testNow.AddDate(0, 0, -35), entity.PaymentStatusPaid, []entity.OrderLine{
			{ProductID: 2, Quantity: 1, Price: dec("24.99")},
		}},
		{4, testNow.AddDate(0, 0, -20), entity.PaymentStatusRefunded, []entity.OrderLine{
			{ProductID: 42, Quantity: 1, Price: dec("9.99")},
		}},
	}
	reviews := []entity.Review{
		{ProductID: 1, Rating: 5, CreatedAt: testNow.AddDate(0, 0, -1)},
		{ProductID: 1, Rating: 4, CreatedAt: testNow.AddDate(0, 0, -3)},
		{ProductID: 3, Rating: 3, CreatedAt: testNow.AddDate(0, 0, -4)},
	}

	err := db.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		for _, s := range []dependency.Seed{rep.Seed(), ms} {
			if err := s.InsertUsers(ctx, users); err != nil {
				return err
			}
			if err := s.InsertProducts(ctx, products); err != nil {
				return err
			}
			for _, o := range orders {
				total := decimal.Zero
				for _, l := range o.lines {
					total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
				}
				_, err := s.InsertOrder(ctx, &entity.Order{
					UUID:              uuid.NewString(),
					CustomerID:        o.customer,
					CreatedAt:         o.at,
					Total:             total,
					PaymentStatus:     o.status,
					FulfillmentStatus: entity.FulfillmentStatusPending,
				}, o.lines)
				if err != nil {
					return err
				}
			}
			if err := s.InsertReviews(ctx, reviews); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return ms
}

func TestMetricsMatchMemoryStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ms := seedBoth(t, ctx, db)
	sqlm := db.Metrics()

	w := entity.TimeRange{From: testNow.AddDate(0, 0, -30), To: testNow}
	filters := []entity.OrderFilter{{}, entity.OrdersIn(w), entity.PaidIn(w), entity.Paid()}

	for _, f := range filters {
		want, err := ms.CountOrders(ctx, f)
		require.NoError(t, err)
		got, err := sqlm.CountOrders(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		wantSum, err := ms.SumOrderTotal(ctx, f)
		require.NoError(t, err)
		gotSum, err := sqlm.SumOrderTotal(ctx, f)
		require.NoError(t, err)
		assert.True(t, wantSum.Equal(gotSum), "sum %s != %s", wantSum, gotSum)

		wantAvg, err := ms.AvgOrderTotal(ctx, f)
		require.NoError(t, err)
		gotAvg, err := sqlm.AvgOrderTotal(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, wantAvg.Round(2).String(), gotAvg.Round(2).String())
	}

	for _, f := range []entity.CustomerFilter{{}, {Window: &w}} {
		want, err := ms.CountCustomers(ctx, f)
		require.NoError(t, err)
		got, err := sqlm.CountCustomers(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	returning, err := sqlm.CountReturningCustomers(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, 2, returning)

	inStock, err := sqlm.CountProductsInStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inStock)

	rating, err := sqlm.AvgReviewRating(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4.0", rating.Round(1).StringFixed(1))

	for _, win := range []*entity.TimeRange{nil, &w} {
		want, err := ms.GroupOrderLinesByProduct(ctx, win)
		require.NoError(t, err)
		got, err := sqlm.GroupOrderLinesByProduct(ctx, win)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].ProductID, got[i].ProductID)
			assert.Equal(t, want[i].Quantity, got[i].Quantity)
			assert.Equal(t, want[i].Lines, got[i].Lines)
			assert.Equal(t, want[i].OrderCount, got[i].OrderCount)
			assert.True(t, want[i].Revenue.Equal(got[i].Revenue))
		}
	}

	groups, err := sqlm.GroupOrderLinesByProduct(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, groups)
	assert.Equal(t, 1, groups[0].ProductID)
	assert.Equal(t, 2, groups[0].Quantity)
	assert.Equal(t, "59.90", groups[0].Revenue.StringFixed(2))

	products, err := sqlm.GetProductsByIds(ctx, []int{3, 42, 1})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	empty, err := sqlm.GetProductsByIds(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	records, err := sqlm.ListOrderRecords(ctx, w)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].CreatedAt.Before(records[i-1].CreatedAt))
	}

	signups, err := sqlm.ListCustomerSignups(ctx, entity.TimeRange{From: testNow.AddDate(-1, 0, 0), To: testNow})
	require.NoError(t, err)
	assert.Len(t, signups, 3)
}

func TestMetricsEmptyTables(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := db.Metrics()
	w := entity.TimeRange{From: testNow.AddDate(0, 0, -7), To: testNow}

	n, err := m.CountOrders(ctx, entity.OrdersIn(w))
	require.NoError(t, err)
	assert.Zero(t, n)

	sum, err := m.SumOrderTotal(ctx, entity.PaidIn(w))
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	avg, err := m.AvgOrderTotal(ctx, entity.PaidIn(w))
	require.NoError(t, err)
	assert.True(t, avg.IsZero())

	rating, err := m.AvgReviewRating(ctx)
	require.NoError(t, err)
	assert.True(t, rating.IsZero())

	groups, err := m.GroupOrderLinesByProduct(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestTxRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		if err := rep.Seed().InsertProducts(ctx, []entity.Product{{ID: 7, Name: "Bar", Price: dec("2.50"), Stock: 1, CreatedAt: testNow}}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	n, err := db.Metrics().CountProductsInStock(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
