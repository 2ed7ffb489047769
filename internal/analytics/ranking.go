package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopN = 5

	UnknownProductName = "Unknown Product"
)

// Ranker ranks products by their order lines.
type Ranker struct {
	store dependency.Metrics
}

// NewRanker returns a ranker reading from store.
func NewRanker(store dependency.Metrics) *Ranker {
	return &Ranker{store: store}
}

// Top returns at most n products ranked descending by key over orders placed
// within w, or over all orders when w is nil.
func (rk *Ranker) Top(ctx context.Context, w *entity.TimeRange, n int, key entity.RankKey) ([]entity.ProductPerformance, error) {
	groups, err := rk.store.GroupOrderLinesByProduct(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	top := rankGroups(groups, n, key)
	if len(top) == 0 {
		return []entity.ProductPerformance{}, nil
	}

	ids := make([]int, len(top))
	for i, g := range top {
		ids[i] = g.ProductID
	}
	products, err := rk.store.GetProductsByIds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("top products names: %w", err)
	}
	return productPerformance(top, products), nil
}

// rankGroups sorts a copy of groups descending by key, ties broken by product
// id ascending, and keeps the first n.
func rankGroups(groups []entity.ProductLineGroup, n int, key entity.RankKey) []entity.ProductLineGroup {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]entity.ProductLineGroup, len(groups))
	copy(ranked, groups)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		var c int
		switch key {
		case entity.RankByQuantity:
			c = cmpInt(a.Quantity, b.Quantity)
		default:
			c = a.Revenue.Cmp(b.Revenue)
		}
		if c != 0 {
			return c > 0
		}
		return a.ProductID < b.ProductID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// productPerformance resolves names and prices and computes each entry's
// share of the ranked revenue.
func productPerformance(groups []entity.ProductLineGroup, products []entity.Product) []entity.ProductPerformance {
	byID := make(map[int]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Revenue)
	}

	res := make([]entity.ProductPerformance, 0, len(groups))
	for _, g := range groups {
		pp := entity.ProductPerformance{
			ProductID:   g.ProductID,
			ProductName: UnknownProductName,
			Price:       decimal.Zero,
			Units:       g.Quantity,
			Lines:       g.Lines,
			OrderCount:  g.OrderCount,
			Revenue:     g.Revenue,
		}
		if p, ok := byID[g.ProductID]; ok {
			pp.ProductName = p.Name
			pp.Price = p.Price
		}
		if total.IsPositive() {
			pp.PercentageOfTotal = roundHalfUp(g.Revenue.Div(total).Mul(hundred))
		}
		res = append(res, pp)
	}
	return res
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
