// Package testutil builds storefront snapshots for tests. Dates are relative
// to the supplied clock so the fixtures fall inside the standard windows.
package testutil

import (
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/memory"
	"github.com/shopspring/decimal"
)

// Now is the frozen clock the fixtures are usually built against
var Now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ptr[T any](v T) *T {
	return &v
}

func catalog() ([]memory.Category, []memory.Product) {
	categories := []memory.Category{
		{ID: "c-elec", Name: "Electrónica", Active: true},
		{ID: "c-home", Name: "Hogar", Active: true},
		{ID: "c-toys", Name: "Juguetes", Active: true},
		{ID: "c-old", Name: "Descontinuado", Active: false},
	}
	products := []memory.Product{
		{ID: "p-1", Name: "Audífonos", CategoryID: "c-elec", Price: money("50.00"), Stock: 25, Active: true},
		{ID: "p-2", Name: "Lámpara", CategoryID: "c-home", Price: money("25.00"), Stock: 5, Active: true},
		{ID: "p-3", Name: "Teclado", CategoryID: "c-elec", Price: money("100.00"), Stock: 0, Active: true},
		{ID: "p-4", Name: "Cable USB", Price: money("10.00"), Stock: 100, Active: true},
		{ID: "p-5", Name: "Florero", CategoryID: "c-home", Price: money("30.00"), Stock: 3, Active: false},
	}
	return categories, products
}

// ThreeOrderSnapshot holds two delivered orders worth 150.00 together and one
// cancelled order worth 50.00, all inside the last 30 days.
func ThreeOrderSnapshot(now time.Time) *memory.Snapshot {
	categories, products := catalog()
	return &memory.Snapshot{
		Categories: categories,
		Products:   products,
		Customers: []memory.Customer{
			{ID: "cu-1", Name: "Ana López", Email: "ana@example.com", Region: "Jalisco", CreatedAt: daysAgo(now, 45)},
			{ID: "cu-2", Name: "Luis Pérez", Email: "luis@example.com", Region: "CDMX", CreatedAt: daysAgo(now, 12)},
		},
		Orders: []memory.Order{
			{
				ID: "o-1", CustomerID: "cu-1",
				Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
				Total: money("100.00"), CreatedAt: daysAgo(now, 3), DeliveredAt: ptr(daysAgo(now, 2)),
				Items: []memory.OrderItem{{ProductID: "p-1", Quantity: 2, UnitPrice: money("50.00")}},
			},
			{
				ID: "o-2", CustomerID: "cu-2",
				Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
				Total: money("50.00"), CreatedAt: daysAgo(now, 8), DeliveredAt: ptr(daysAgo(now, 6)),
				Items: []memory.OrderItem{{ProductID: "p-2", Quantity: 2, UnitPrice: money("25.00")}},
			},
			{
				ID: "o-3", CustomerID: "cu-2",
				Status: domain.OrderStatusCancelled, PaymentStatus: domain.PaymentStatusRefunded,
				Total: money("50.00"), CreatedAt: daysAgo(now, 5),
				Items: []memory.OrderItem{{ProductID: "p-1", Quantity: 1, UnitPrice: money("50.00")}},
			},
		},
	}
}

// StoreSnapshot is a small but complete storefront: every order status,
// an uncategorized product, an inactive product, a category without sales
// and one order outside the 30 day window.
func StoreSnapshot(now time.Time) *memory.Snapshot {
	categories, products := catalog()
	return &memory.Snapshot{
		Categories: categories,
		Products:   products,
		Customers: []memory.Customer{
			{ID: "cu-1", Name: "Ana López", Email: "ana@example.com", Region: "Jalisco", CreatedAt: daysAgo(now, 20)},
			{ID: "cu-2", Name: "Luis Pérez", Email: "luis@example.com", Region: "CDMX", CreatedAt: daysAgo(now, 40)},
			{ID: "cu-3", Name: "Sofía Ruiz", Email: "sofia@example.com", Region: "Jalisco", CreatedAt: daysAgo(now, 5)},
			{ID: "cu-4", Name: "Pedro Gil", Email: "pedro@example.com", Region: "Nuevo León", CreatedAt: daysAgo(now, 400)},
		},
		Orders: []memory.Order{
			{
				ID: "o-1", CustomerID: "cu-1",
				Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
				Total: money("100.00"), CreatedAt: daysAgo(now, 2), DeliveredAt: ptr(daysAgo(now, 1)),
				Items: []memory.OrderItem{{ProductID: "p-1", Quantity: 2, UnitPrice: money("50.00")}},
			},
			{
				ID: "o-2", CustomerID: "cu-1",
				Status: domain.OrderStatusShipped, PaymentStatus: domain.PaymentStatusPaid,
				Total: money("600.00"), CreatedAt: daysAgo(now, 3),
				Items: []memory.OrderItem{{ProductID: "p-3", Quantity: 6, UnitPrice: money("100.00")}},
			},
			{
				ID: "o-3", CustomerID: "cu-3",
				Status: domain.OrderStatusPending, PaymentStatus: domain.PaymentStatusPending,
				Total: money("60.00"), CreatedAt: daysAgo(now, 1),
				Items: []memory.OrderItem{
					{ProductID: "p-2", Quantity: 2, UnitPrice: money("25.00")},
					{ProductID: "p-4", Quantity: 1, UnitPrice: money("10.00")},
				},
			},
			{
				ID: "o-4", CustomerID: "cu-3",
				Status: domain.OrderStatusCancelled, PaymentStatus: domain.PaymentStatusRefunded,
				Total: money("50.00"), CreatedAt: daysAgo(now, 5),
				Items: []memory.OrderItem{{ProductID: "p-1", Quantity: 1, UnitPrice: money("50.00")}},
			},
			{
				ID: "o-5", CustomerID: "cu-2",
				Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
				Total: money("1200.00"), CreatedAt: daysAgo(now, 10), DeliveredAt: ptr(daysAgo(now, 8)),
				Items: []memory.OrderItem{{ProductID: "p-3", Quantity: 12, UnitPrice: money("100.00")}},
			},
			{
				ID: "o-6", CustomerID: "cu-4",
				Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
				Total: money("50.00"), CreatedAt: daysAgo(now, 60), DeliveredAt: ptr(daysAgo(now, 58)),
				Items: []memory.OrderItem{{ProductID: "p-1", Quantity: 1, UnitPrice: money("50.00")}},
			},
		},
	}
}

// EmptySnapshot has a catalog but no orders
func EmptySnapshot() *memory.Snapshot {
	categories, products := catalog()
	return &memory.Snapshot{Categories: categories, Products: products}
}
