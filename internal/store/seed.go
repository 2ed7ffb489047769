package store

import (
	"context"
	"fmt"

	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
)

type seedStore struct {
	*SQLStore
}

// Seed returns the write side used to load demo data.
func (ss *SQLStore) Seed() dependency.Seed {
	return &seedStore{SQLStore: ss}
}

func (s *seedStore) InsertUsers(ctx context.Context, users []entity.User) error {
	rows := make([]map[string]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, map[string]any{
			"id":         u.ID,
			"email":      u.Email,
			"role":       string(u.Role),
			"created_at": u.CreatedAt,
		})
	}
	if err := BulkInsert(ctx, s.DB(), "users", []string{"id", "email", "role", "created_at"}, rows); err != nil {
		return fmt.Errorf("insert users: %w", err)
	}
	return nil
}

func (s *seedStore) InsertProducts(ctx context.Context, products []entity.Product) error {
	rows := make([]map[string]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, map[string]any{
			"id":         p.ID,
			"name":       p.Name,
			"price":      p.Price,
			"stock":      p.Stock,
			"created_at": p.CreatedAt,
		})
	}
	if err := BulkInsert(ctx, s.DB(), "product", []string{"id", "name", "price", "stock", "created_at"}, rows); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}

func (s *seedStore) InsertOrder(ctx context.Context, order *entity.Order, lines []entity.OrderLine) (int, error) {
	query := `
		INSERT INTO orders (uuid, customer_id, created_at, total, payment_status, fulfillment_status)
		VALUES (:uuid, :customerId, :createdAt, :total, :paymentStatus, :fulfillmentStatus)
	`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"uuid":              order.UUID,
		"customerId":        order.CustomerID,
		"createdAt":         order.CreatedAt,
		"total":             order.Total,
		"paymentStatus":     string(order.PaymentStatus),
		"fulfillmentStatus": string(order.FulfillmentStatus),
	})
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	rows := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, map[string]any{
			"order_id":   id,
			"product_id": l.ProductID,
			"quantity":   l.Quantity,
			"price":      l.Price,
		})
	}
	if err := BulkInsert(ctx, s.DB(), "order_line", []string{"order_id", "product_id", "quantity", "price"}, rows); err != nil {
		return 0, fmt.Errorf("insert order lines: %w", err)
	}
	return id, nil
}

func (s *seedStore) InsertReviews(ctx context.Context, reviews []entity.Review) error {
	rows := make([]map[string]any, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, map[string]any{
			"product_id": r.ProductID,
			"rating":     r.Rating,
			"created_at": r.CreatedAt,
		})
	}
	if err := BulkInsert(ctx, s.DB(), "review", []string{"product_id", "rating", "created_at"}, rows); err != nil {
		return fmt.Errorf("insert reviews: %w", err)
	}
	return nil
}
