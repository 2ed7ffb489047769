// Package fixture generates a demo nutrition shop dataset.
package fixture

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

var catalog = []struct {
	name  string
	price string
}{
	{"Whey Protein Isolate 2kg", "59.90"},
	{"Vegan Protein Blend 1kg", "34.50"},
	{"Creatine Monohydrate 500g", "24.99"},
	{"Omega-3 Fish Oil 120 caps", "19.90"},
	{"Vitamin D3 + K2 Drops", "14.50"},
	{"Electrolyte Hydration Mix", "17.00"},
	{"Pre-Workout Citrus 300g", "29.90"},
	{"Magnesium Glycinate 90 caps", "16.75"},
	{"Collagen Peptides 450g", "32.00"},
	{"Oat & Honey Protein Bars x12", "22.80"},
}

// Dataset is a consistent set of rows ready to be loaded.
type Dataset struct {
	Users    []entity.User
	Products []entity.Product
	Orders   []OrderWithLines
	Reviews  []entity.Review
}

type OrderWithLines struct {
	Order entity.Order
	Lines []entity.OrderLine
}

// Generate builds a dataset spanning the 15 months before now.
func Generate(now time.Time, seed int64, customers, orders int) Dataset {
	rnd := rand.New(rand.NewSource(seed))
	span := now.Sub(now.AddDate(0, -15, 0))
	var ds Dataset

	ds.Users = append(ds.Users, entity.User{ID: 1, Email: "admin@nutrishop.example", Role: entity.RoleAdmin, CreatedAt: now.Add(-span)})
	for i := 0; i < customers; i++ {
		ds.Users = append(ds.Users, entity.User{
			ID:        i + 2,
			Email:     fmt.Sprintf("customer%d@nutrishop.example", i+1),
			Role:      entity.RoleCustomer,
			CreatedAt: now.Add(-time.Duration(rnd.Int63n(int64(span)))),
		})
	}

	for i, c := range catalog {
		ds.Products = append(ds.Products, entity.Product{
			ID:        i + 1,
			Name:      c.name,
			Price:     decimal.RequireFromString(c.price),
			Stock:     rnd.Intn(4) * 25,
			CreatedAt: now.Add(-span),
		})
	}

	for i := 0; i < orders && customers > 0; i++ {
		buyer := ds.Users[1+rnd.Intn(customers)]
		placed := buyer.CreatedAt.Add(time.Duration(rnd.Int63n(int64(now.Sub(buyer.CreatedAt)) + 1)))
		if !placed.Before(now) {
			placed = now.Add(-time.Minute)
		}

		var lines []entity.OrderLine
		total := decimal.Zero
		for n := 1 + rnd.Intn(3); n > 0; n-- {
			p := ds.Products[rnd.Intn(len(ds.Products))]
			qty := 1 + rnd.Intn(3)
			lines = append(lines, entity.OrderLine{ProductID: p.ID, Quantity: qty, Price: p.Price})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}

		id, err := uuid.NewRandomFromReader(rnd)
		if err != nil {
			// math/rand never fails to read
			panic(err)
		}
		ds.Orders = append(ds.Orders, OrderWithLines{
			Order: entity.Order{
				UUID:              id.String(),
				CustomerID:        buyer.ID,
				CreatedAt:         placed,
				Total:             total,
				PaymentStatus:     paymentStatus(rnd),
				FulfillmentStatus: entity.FulfillmentStatusDelivered,
			},
			Lines: lines,
		})
	}

	for _, p := range ds.Products {
		for n := rnd.Intn(6); n > 0; n-- {
			ds.Reviews = append(ds.Reviews, entity.Review{
				ProductID: p.ID,
				Rating:    3 + rnd.Intn(3),
				CreatedAt: now.Add(-time.Duration(rnd.Int63n(int64(span)))),
			})
		}
	}
	return ds
}

func paymentStatus(rnd *rand.Rand) entity.PaymentStatus {
	switch n := rnd.Intn(10); {
	case n < 7:
		return entity.PaymentStatusPaid
	case n < 8:
		return entity.PaymentStatusPending
	case n < 9:
		return entity.PaymentStatusFailed
	default:
		return entity.PaymentStatusRefunded
	}
}

// Load writes ds through s.
func Load(ctx context.Context, s dependency.Seed, ds Dataset) error {
	if err := s.InsertUsers(ctx, ds.Users); err != nil {
		return err
	}
	if err := s.InsertProducts(ctx, ds.Products); err != nil {
		return err
	}
	for i := range ds.Orders {
		if _, err := s.InsertOrder(ctx, &ds.Orders[i].Order, ds.Orders[i].Lines); err != nil {
			return err
		}
	}
	return s.InsertReviews(ctx, ds.Reviews)
}
