// Package memory is an in-process implementation of the analytics store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// Store keeps users, products, orders, lines and reviews in memory.
type Store struct {
	mu       sync.RWMutex
	users    map[int]entity.User
	products map[int]entity.Product
	orders   []entity.Order
	lines    []entity.OrderLine
	reviews  []entity.Review
	nextID   int
}

var (
	_ dependency.Metrics = (*Store)(nil)
	_ dependency.Seed    = (*Store)(nil)
)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    map[int]entity.User{},
		products: map[int]entity.Product{},
	}
}

func (s *Store) InsertUsers(_ context.Context, users []entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
	}
	return nil
}

func (s *Store) InsertProducts(_ context.Context, products []entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
	return nil
}

// DeleteProduct removes a product while keeping its order lines.
func (s *Store) DeleteProduct(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func (s *Store) InsertOrder(_ context.Context, order *entity.Order, lines []entity.OrderLine) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o := *order
	o.ID = s.nextID
	s.orders = append(s.orders, o)
	for _, l := range lines {
		l.OrderID = o.ID
		s.lines = append(s.lines, l)
	}
	return o.ID, nil
}

func (s *Store) InsertReviews(_ context.Context, reviews []entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, reviews...)
	return nil
}

func matches(o *entity.Order, f entity.OrderFilter) bool {
	if f.Window != nil && !f.Window.Contains(o.CreatedAt) {
		return false
	}
	if f.PaymentStatus != nil && o.PaymentStatus != *f.PaymentStatus {
		return false
	}
	return true
}

func (s *Store) filterOrders(f entity.OrderFilter) []entity.Order {
	var res []entity.Order
	for i := range s.orders {
		if matches(&s.orders[i], f) {
			res = append(res, s.orders[i])
		}
	}
	return res
}

func (s *Store) CountOrders(_ context.Context, f entity.OrderFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filterOrders(f)), nil
}

func (s *Store) SumOrderTotal(_ context.Context, f entity.OrderFilter) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := decimal.Zero
	for _, o := range s.filterOrders(f) {
		sum = sum.Add(o.Total)
	}
	return sum, nil
}

func (s *Store) AvgOrderTotal(_ context.Context, f entity.OrderFilter) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.filterOrders(f)
	if len(orders) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.Total)
	}
	return sum.Div(decimal.NewFromInt(int64(len(orders)))), nil
}

func (s *Store) CountCustomers(_ context.Context, f entity.CustomerFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Role != entity.RoleCustomer {
			continue
		}
		if f.Window != nil && !f.Window.Contains(u.CreatedAt) {
			continue
		}
		n++
	}
	return n, nil
}

func (s *Store) CountReturningCustomers(_ context.Context, w entity.TimeRange) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[int]struct{}{}
	for _, o := range s.filterOrders(entity.OrdersIn(w)) {
		u, ok := s.users[o.CustomerID]
		if !ok || u.Role != entity.RoleCustomer || !u.CreatedAt.Before(w.From) {
			continue
		}
		seen[u.ID] = struct{}{}
	}
	return len(seen), nil
}

func (s *Store) CountProductsInStock(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.products {
		if p.InStock() {
			n++
		}
	}
	return n, nil
}

func (s *Store) AvgReviewRating(_ context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.reviews) == 0 {
		return decimal.Zero, nil
	}
	sum := 0
	for _, r := range s.reviews {
		sum += r.Rating
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(s.reviews)))), nil
}

func (s *Store) GroupOrderLinesByProduct(_ context.Context, w *entity.TimeRange) ([]entity.ProductLineGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inScope := map[int]struct{}{}
	for _, o := range s.filterOrders(entity.OrderFilter{Window: w}) {
		inScope[o.ID] = struct{}{}
	}

	groups := map[int]*entity.ProductLineGroup{}
	orders := map[int]map[int]struct{}{}
	for _, l := range s.lines {
		if _, ok := inScope[l.OrderID]; !ok {
			continue
		}
		g, ok := groups[l.ProductID]
		if !ok {
			g = &entity.ProductLineGroup{ProductID: l.ProductID, Revenue: decimal.Zero}
			groups[l.ProductID] = g
			orders[l.ProductID] = map[int]struct{}{}
		}
		g.Quantity += l.Quantity
		g.Lines++
		g.Revenue = g.Revenue.Add(l.Price)
		orders[l.ProductID][l.OrderID] = struct{}{}
	}

	res := make([]entity.ProductLineGroup, 0, len(groups))
	for id, g := range groups {
		g.OrderCount = len(orders[id])
		res = append(res, *g)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ProductID < res[j].ProductID })
	return res, nil
}

func (s *Store) GetProductsByIds(_ context.Context, ids []int) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (s *Store) ListOrderRecords(_ context.Context, w entity.TimeRange) ([]entity.OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.filterOrders(entity.OrdersIn(w))
	res := make([]entity.OrderRecord, 0, len(orders))
	for _, o := range orders {
		res = append(res, entity.OrderRecord{CreatedAt: o.CreatedAt, Total: o.Total, PaymentStatus: o.PaymentStatus})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (s *Store) ListCustomerSignups(_ context.Context, w entity.TimeRange) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []time.Time
	for _, u := range s.users {
		if u.Role == entity.RoleCustomer && w.Contains(u.CreatedAt) {
			res = append(res, u.CreatedAt)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Before(res[j]) })
	return res, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}
