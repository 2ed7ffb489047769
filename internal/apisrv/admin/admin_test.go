package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nutrishop/shop-manager/internal/analytics"
	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/nutrishop/shop-manager/internal/metrics"
	"github.com/nutrishop/shop-manager/internal/store/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type failingStore struct {
	*memory.Store
}

func (failingStore) CountOrders(context.Context, entity.OrderFilter) (int, error) {
	return 0, errors.New("dial tcp 10.0.0.5:3306: connection refused")
}

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	ms := memory.New()
	require.NoError(t, ms.InsertUsers(ctx, []entity.User{
		{ID: 1, Email: "a@example.com", Role: entity.RoleCustomer, CreatedAt: now.AddDate(0, -2, 0)},
		{ID: 2, Email: "b@example.com", Role: entity.RoleCustomer, CreatedAt: now.AddDate(0, 0, -3)},
	}))
	require.NoError(t, ms.InsertProducts(ctx, []entity.Product{
		{ID: 1, Name: "Whey Protein", Price: decimal.NewFromInt(50), Stock: 10, CreatedAt: now.AddDate(-1, 0, 0)},
	}))
	_, err := ms.InsertOrder(ctx, &entity.Order{
		CustomerID:    1,
		CreatedAt:     now.AddDate(0, 0, -1),
		Total:         decimal.NewFromInt(100),
		PaymentStatus: entity.PaymentStatusPaid,
	}, []entity.OrderLine{{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(50)}})
	require.NoError(t, err)
	require.NoError(t, ms.InsertReviews(ctx, []entity.Review{{ID: 1, ProductID: 1, Rating: 4, CreatedAt: now}}))
	return ms
}

func newRouter(t *testing.T, store dependency.Metrics, m *metrics.Collector) http.Handler {
	t.Helper()
	e, err := analytics.New(store, analytics.Config{}, analytics.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	r := chi.NewRouter()
	r.Route("/api/admin", New(e, m).Routes)
	return r
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGetAnalytics(t *testing.T) {
	h := newRouter(t, seeded(t), nil)

	rec, body := get(t, h, "/api/admin/analytics?range=30days")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "30days", body["range"])
	for _, key := range []string{"overview", "trends", "salesData", "recentOrders", "productPerformance", "customerStats"} {
		assert.Contains(t, body, key)
	}

	overview := body["overview"].(map[string]any)
	assert.Equal(t, 100.0, overview["totalRevenue"])
	assert.Equal(t, 1.0, overview["totalOrders"])
	assert.Equal(t, 2.0, overview["totalCustomers"])
	assert.Equal(t, 4.0, overview["averageRating"])

	assert.Len(t, body["salesData"], 12)
	pp := body["productPerformance"].([]any)
	require.Len(t, pp, 1)
	assert.Equal(t, "Whey Protein", pp[0].(map[string]any)["productName"])
	assert.Equal(t, 100.0, pp[0].(map[string]any)["percentage"])
}

func TestGetAnalyticsNormalizesRange(t *testing.T) {
	h := newRouter(t, seeded(t), nil)

	for _, target := range []string{"/api/admin/analytics", "/api/admin/analytics?range=forever", "/api/admin/analytics?range=7DAYS"} {
		rec, body := get(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "12months", body["range"], target)
	}
}

func TestGetStats(t *testing.T) {
	h := newRouter(t, seeded(t), nil)

	rec, body := get(t, h, "/api/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, body["totalOrders"])
	assert.Equal(t, 100.0, body["totalRevenue"])
	assert.Equal(t, 1.0, body["totalProducts"])
	assert.Len(t, body["topSellers"], 1)
	thisMonth := body["thisMonth"].(map[string]any)
	assert.Equal(t, 1.0, thisMonth["orders"])
	assert.Equal(t, 100.0, body["ordersGrowth"])
}

func TestStoreFailure(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	h := newRouter(t, failingStore{seeded(t)}, m)

	rec, body := get(t, h, "/api/admin/analytics?range=7days")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to fetch analytics"}, body)

	rec, body = get(t, h, "/api/admin/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to fetch stats"}, body)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportFailures.WithLabelValues(metrics.ReportAnalytics)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportFailures.WithLabelValues(metrics.ReportStats)))
}
