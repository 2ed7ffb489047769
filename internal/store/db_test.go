package store

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	params := map[string]any{"ids": []int{3, 1, 2}, "role": "CUSTOMER"}
	query := `SELECT id FROM product WHERE id IN (:ids) AND role = :role`

	q, args, err := bind(sqlx.NewDb(nil, DriverMySQL), query, params)
	require.NoError(t, err)
	assert.Equal(t, `SELECT id FROM product WHERE id IN (?, ?, ?) AND role = ?`, q)
	assert.Equal(t, []any{3, 1, 2, "CUSTOMER"}, args)

	q, _, err = bind(sqlx.NewDb(nil, DriverPostgres), query, params)
	require.NoError(t, err)
	assert.Equal(t, `SELECT id FROM product WHERE id IN ($1, $2, $3) AND role = $4`, q)
}

func TestOrderWhere(t *testing.T) {
	where, params := orderWhere(entity.PaidIn(entity.TimeRange{From: testNow.AddDate(0, 0, -7), To: testNow}))
	assert.Equal(t, "1 = 1 AND o.created_at >= :from AND o.created_at < :to AND o.payment_status = :paymentStatus", where)
	assert.Equal(t, "PAID", params["paymentStatus"])
	assert.Contains(t, params, "from")

	where, params = orderWhere(entity.OrderFilter{})
	assert.Equal(t, "1 = 1", where)
	assert.Empty(t, params)
}

func TestConfigDriver(t *testing.T) {
	assert.Equal(t, DriverMySQL, Config{}.driver())
	assert.Equal(t, DriverPostgres, Config{Driver: DriverPostgres}.driver())
}
