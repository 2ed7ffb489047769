package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// FulfillmentStatus is the shipping state of an order.
type FulfillmentStatus string

const (
	FulfillmentStatusPending    FulfillmentStatus = "PENDING"
	FulfillmentStatusProcessing FulfillmentStatus = "PROCESSING"
	FulfillmentStatusShipped    FulfillmentStatus = "SHIPPED"
	FulfillmentStatusDelivered  FulfillmentStatus = "DELIVERED"
	FulfillmentStatusCancelled  FulfillmentStatus = "CANCELLED"
)

// Order represents the orders table
type Order struct {
	ID                int               `db:"id"`
	UUID              string            `db:"uuid"`
	CustomerID        int               `db:"customer_id"`
	CreatedAt         time.Time         `db:"created_at"`
	Total             decimal.Decimal   `db:"total"`
	PaymentStatus     PaymentStatus     `db:"payment_status"`
	FulfillmentStatus FulfillmentStatus `db:"fulfillment_status"`
}

// IsPaid reports whether the payment has been settled.
func (s PaymentStatus) IsPaid() bool {
	return s == PaymentStatusPaid
}

// OrderLine represents the order_line table.
// Price is the unit price at the time of purchase.
type OrderLine struct {
	ID        int             `db:"id"`
	OrderID   int             `db:"order_id"`
	ProductID int             `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

// OrderRecord is the projection of an order used for time series bucketing.
type OrderRecord struct {
	CreatedAt     time.Time       `db:"created_at"`
	Total         decimal.Decimal `db:"total"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
}

// OrderFilter narrows order aggregates. Nil fields are not applied.
type OrderFilter struct {
	Window        *TimeRange
	PaymentStatus *PaymentStatus
}

// PaidIn returns a filter for paid orders within w.
func PaidIn(w TimeRange) OrderFilter {
	ps := PaymentStatusPaid
	return OrderFilter{Window: &w, PaymentStatus: &ps}
}

// OrdersIn returns a filter for all orders within w.
func OrdersIn(w TimeRange) OrderFilter {
	return OrderFilter{Window: &w}
}

// Paid returns a filter for all paid orders.
func Paid() OrderFilter {
	ps := PaymentStatusPaid
	return OrderFilter{PaymentStatus: &ps}
}
