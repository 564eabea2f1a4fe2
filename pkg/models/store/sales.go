package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderTotals aggregates the orders of a window. TotalOrders counts every
// order, the other figures only count orders that are not cancelled.
type OrderTotals struct {
	TotalOrders     int64
	CompletedOrders int64
	Revenue         decimal.Decimal
	UnitsSold       int64
	ProductsSold    int64
}

type ProductSalesRow struct {
	ProductID string
	UnitsSold int64
	Revenue   decimal.Decimal
}

type ProductRow struct {
	ID         string
	Name       string
	CategoryID string
	Category   string
	Price      decimal.Decimal
	Stock      int64
	Active     bool
}

type CustomerSpendRow struct {
	CustomerID string
	Name       string
	Email      string
	TotalSpent decimal.Decimal
	OrderCount int64
}

type DailySalesRow struct {
	Day     time.Time
	Revenue decimal.Decimal
	Orders  int64
}

type CategorySalesRow struct {
	CategoryID   string
	Category     string
	Revenue      decimal.Decimal
	Quantity     int64
	ProductCount int64
}

type StatusRow struct {
	Status  string
	Count   int64
	Revenue decimal.Decimal
}

type CustomerCounts struct {
	Total int64
	New   int64
}

type RepeatCounts struct {
	WithOrders int64
	Repeat     int64
}

type RegionRow struct {
	Region    string
	Customers int64
}

type InventoryRow struct {
	Active       int64
	LowStock     int64
	OutOfStock   int64
	AverageStock decimal.Decimal
}

type PaymentRow struct {
	Status string
	Count  int64
	Amount decimal.Decimal
}

type CancelledTotals struct {
	Orders int64
	Amount decimal.Decimal
}

// OrderSizeRow is one band of the order size histogram, Band indexes the bounds used in the query
type OrderSizeRow struct {
	Band    int
	Count   int64
	Revenue decimal.Decimal
}

type FulfillmentRow struct {
	Orders       int64
	AverageHours decimal.Decimal
}
