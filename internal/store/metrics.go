package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type metricsStore struct {
	*SQLStore
}

// Metrics returns the analytics read side of the store.
func (ss *SQLStore) Metrics() dependency.Metrics {
	return &metricsStore{SQLStore: ss}
}

// orderWhere renders the filter as a WHERE clause over the orders table aliased o.
func orderWhere(f entity.OrderFilter) (string, map[string]any) {
	conds := []string{"1 = 1"}
	params := map[string]any{}
	if f.Window != nil {
		conds = append(conds, "o.created_at >= :from AND o.created_at < :to")
		params["from"] = f.Window.From
		params["to"] = f.Window.To
	}
	if f.PaymentStatus != nil {
		conds = append(conds, "o.payment_status = :paymentStatus")
		params["paymentStatus"] = string(*f.PaymentStatus)
	}
	return strings.Join(conds, " AND "), params
}

func (ms *metricsStore) CountOrders(ctx context.Context, f entity.OrderFilter) (int, error) {
	where, params := orderWhere(f)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM orders o WHERE %s`, where)
	n, err := QueryCountNamed(ctx, ms.DB(), query, params)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (ms *metricsStore) SumOrderTotal(ctx context.Context, f entity.OrderFilter) (decimal.Decimal, error) {
	where, params := orderWhere(f)
	query := fmt.Sprintf(`SELECT COALESCE(SUM(o.total), 0) AS value FROM orders o WHERE %s`, where)
	r, err := QueryNamedOne[struct {
		Value decimal.Decimal `db:"value"`
	}](ctx, ms.DB(), query, params)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum order total: %w", err)
	}
	return r.Value, nil
}

func (ms *metricsStore) AvgOrderTotal(ctx context.Context, f entity.OrderFilter) (decimal.Decimal, error) {
	where, params := orderWhere(f)
	query := fmt.Sprintf(`SELECT COALESCE(AVG(o.total), 0) AS value FROM orders o WHERE %s`, where)
	r, err := QueryNamedOne[struct {
		Value decimal.Decimal `db:"value"`
	}](ctx, ms.DB(), query, params)
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg order total: %w", err)
	}
	return r.Value, nil
}

func (ms *metricsStore) CountCustomers(ctx context.Context, f entity.CustomerFilter) (int, error) {
	query := `SELECT COUNT(*) FROM users u WHERE u.role = :role`
	params := map[string]any{"role": string(entity.RoleCustomer)}
	if f.Window != nil {
		query += ` AND u.created_at >= :from AND u.created_at < :to`
		params["from"] = f.Window.From
		params["to"] = f.Window.To
	}
	n, err := QueryCountNamed(ctx, ms.DB(), query, params)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (ms *metricsStore) CountReturningCustomers(ctx context.Context, w entity.TimeRange) (int, error) {
	query := `
		SELECT COUNT(DISTINCT o.customer_id)
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		WHERE o.created_at >= :from AND o.created_at < :to
		AND u.role = :role
		AND u.created_at < :from
	`
	n, err := QueryCountNamed(ctx, ms.DB(), query, map[string]any{
		"from": w.From,
		"to":   w.To,
		"role": string(entity.RoleCustomer),
	})
	if err != nil {
		return 0, fmt.Errorf("count returning customers: %w", err)
	}
	return n, nil
}

func (ms *metricsStore) CountProductsInStock(ctx context.Context) (int, error) {
	n, err := QueryCountNamed(ctx, ms.DB(), `SELECT COUNT(*) FROM product WHERE stock > 0`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("count products in stock: %w", err)
	}
	return n, nil
}

func (ms *metricsStore) AvgReviewRating(ctx context.Context) (decimal.Decimal, error) {
	r, err := QueryNamedOne[struct {
		Value decimal.Decimal `db:"value"`
	}](ctx, ms.DB(), `SELECT COALESCE(AVG(rating), 0) AS value FROM review`, map[string]any{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("avg review rating: %w", err)
	}
	return r.Value, nil
}

func (ms *metricsStore) GroupOrderLinesByProduct(ctx context.Context, w *entity.TimeRange) ([]entity.ProductLineGroup, error) {
	where, params := orderWhere(entity.OrderFilter{Window: w})
	query := fmt.Sprintf(`
		SELECT ol.product_id,
			COALESCE(SUM(ol.quantity), 0) AS quantity,
			COUNT(*) AS line_count,
			COUNT(DISTINCT ol.order_id) AS order_count,
			COALESCE(SUM(ol.price), 0) AS revenue
		FROM order_line ol
		JOIN orders o ON o.id = ol.order_id
		WHERE %s
		GROUP BY ol.product_id
		ORDER BY ol.product_id
	`, where)
	groups, err := QueryListNamed[entity.ProductLineGroup](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("group order lines by product: %w", err)
	}
	return groups, nil
}

func (ms *metricsStore) GetProductsByIds(ctx context.Context, ids []int) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	query := `SELECT id, name, price, stock, created_at FROM product WHERE id IN (:ids)`
	products, err := QueryListNamed[entity.Product](ctx, ms.DB(), query, map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	return products, nil
}

func (ms *metricsStore) ListOrderRecords(ctx context.Context, w entity.TimeRange) ([]entity.OrderRecord, error) {
	query := `
		SELECT o.created_at, o.total, o.payment_status
		FROM orders o
		WHERE o.created_at >= :from AND o.created_at < :to
		ORDER BY o.created_at, o.id
	`
	records, err := QueryListNamed[entity.OrderRecord](ctx, ms.DB(), query, map[string]any{"from": w.From, "to": w.To})
	if err != nil {
		return nil, fmt.Errorf("list order records: %w", err)
	}
	return records, nil
}

func (ms *metricsStore) ListCustomerSignups(ctx context.Context, w entity.TimeRange) ([]time.Time, error) {
	query := `
		SELECT u.created_at
		FROM users u
		WHERE u.role = :role AND u.created_at >= :from AND u.created_at < :to
		ORDER BY u.created_at
	`
	rows, err := QueryListNamed[struct {
		CreatedAt time.Time `db:"created_at"`
	}](ctx, ms.DB(), query, map[string]any{
		"role": string(entity.RoleCustomer),
		"from": w.From,
		"to":   w.To,
	})
	if err != nil {
		return nil, fmt.Errorf("list customer signups: %w", err)
	}
	signups := make([]time.Time, len(rows))
	for i, r := range rows {
		signups[i] = r.CreatedAt
	}
	return signups, nil
}
