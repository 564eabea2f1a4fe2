package reports

import (
	"context"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/adapters"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/pricing"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

type generators struct {
	store   sales.Store
	pricing pricing.Store
}

// fanOut runs independent queries concurrently and waits for all of them.
// The first failure cancels the others and is returned.
func fanOut(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for _, task := range tasks {
		p.Go(task)
	}
	return p.Wait()
}

// productIndex resolves every product referenced by the given rankings with a single lookup
func (g *generators) productIndex(ctx context.Context, rankings ...[]store.ProductSalesRow) (map[string]store.ProductRow, error) {
	ids := lo.Uniq(lo.FlatMap(rankings, func(rows []store.ProductSalesRow, _ int) []string {
		return lo.Map(rows, func(r store.ProductSalesRow, _ int) string { return r.ProductID })
	}))
	if len(ids) == 0 {
		return map[string]store.ProductRow{}, nil
	}

	products, err := g.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return adapters.ProductIndex(products), nil
}
