package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// DefaultCostRatio is the share of the sale price assumed to be product cost
var DefaultCostRatio = decimal.RequireFromString("0.70")

// CostRatio is the fraction of revenue attributed to cost. Simulated is true
// when the ratio is an assumption instead of purchasing data.
type CostRatio struct {
	Ratio     decimal.Decimal
	Simulated bool
}

// Apply splits a revenue figure into estimated cost and profit
func (c CostRatio) Apply(revenue decimal.Decimal) (cost, profit decimal.Decimal) {
	cost = revenue.Mul(c.Ratio).Round(2)
	return cost, revenue.Sub(cost)
}

type Store interface {
	GetCostRatio(ctx context.Context, productID string) CostRatio
}

type pricingStore struct {
	ratio decimal.Decimal
}

func NewStore() Store {
	return &pricingStore{ratio: DefaultCostRatio}
}

// NewFixedStore returns a store answering the given ratio for every product
func NewFixedStore(ratio decimal.Decimal) Store {
	return &pricingStore{ratio: ratio}
}

func (p *pricingStore) GetCostRatio(_ context.Context, _ string) CostRatio {
	// TODO: read products.unit_cost once purchase costs are captured at checkout
	return CostRatio{Ratio: p.ratio, Simulated: true}
}
