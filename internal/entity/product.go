package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the product table
type Product struct {
	ID        int             `db:"id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Stock     int             `db:"stock"`
	CreatedAt time.Time       `db:"created_at"`
}

// InStock reports whether the product can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductLineGroup is the order lines of one product aggregated over a scope.
type ProductLineGroup struct {
	ProductID  int             `db:"product_id"`
	Quantity   int             `db:"quantity"`
	Lines      int             `db:"line_count"`
	OrderCount int             `db:"order_count"`
	Revenue    decimal.Decimal `db:"revenue"`
}

// Review represents the review table
type Review struct {
	ID        int       `db:"id"`
	ProductID int       `db:"product_id"`
	Rating    int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
}
