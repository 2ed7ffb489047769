package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	// Metrics is the read side of the order/customer/product store used by analytics.
	// Sums and averages over an empty set are zero.
	Metrics interface {
		// CountOrders counts orders matching the filter.
		CountOrders(ctx context.Context, f entity.OrderFilter) (int, error)
		// SumOrderTotal sums order totals matching the filter.
		SumOrderTotal(ctx context.Context, f entity.OrderFilter) (decimal.Decimal, error)
		// AvgOrderTotal averages order totals matching the filter.
		AvgOrderTotal(ctx context.Context, f entity.OrderFilter) (decimal.Decimal, error)
		// CountCustomers counts users with the customer role created within the filter window.
		CountCustomers(ctx context.Context, f entity.CustomerFilter) (int, error)
		// CountReturningCustomers counts distinct customers that ordered within w
		// and were created before w started.
		CountReturningCustomers(ctx context.Context, w entity.TimeRange) (int, error)
		// CountProductsInStock counts products with positive stock.
		CountProductsInStock(ctx context.Context) (int, error)
		// AvgReviewRating averages all review ratings.
		AvgReviewRating(ctx context.Context) (decimal.Decimal, error)
		// GroupOrderLinesByProduct aggregates order lines per product for orders
		// created within w, or all orders when w is nil.
		GroupOrderLinesByProduct(ctx context.Context, w *entity.TimeRange) ([]entity.ProductLineGroup, error)
		// GetProductsByIds returns the products that still exist among ids.
		GetProductsByIds(ctx context.Context, ids []int) ([]entity.Product, error)
		// ListOrderRecords returns orders created within w.
		ListOrderRecords(ctx context.Context, w entity.TimeRange) ([]entity.OrderRecord, error)
		// ListCustomerSignups returns creation times of customers created within w.
		ListCustomerSignups(ctx context.Context, w entity.TimeRange) ([]time.Time, error)
	}

	// Seed writes demo data into the store.
	Seed interface {
		InsertUsers(ctx context.Context, users []entity.User) error
		InsertProducts(ctx context.Context, products []entity.Product) error
		InsertOrder(ctx context.Context, order *entity.Order, lines []entity.OrderLine) (int, error)
		InsertReviews(ctx context.Context, reviews []entity.Review) error
	}

	Repository interface {
		ContextStore
		Metrics() Metrics
		Seed() Seed
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Ping(ctx context.Context) error
		Close()
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		DriverName() string
		Rebind(query string) string
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// Analytics composes the admin reports.
	Analytics interface {
		Analytics(ctx context.Context, r entity.Range) (*entity.AnalyticsReport, error)
		Stats(ctx context.Context) (*entity.StatsReport, error)
	}
)
