package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Snapshot is a frozen copy of the storefront tables the reports read from.
// It is loaded from a JSON fixture for the CLI and the tests.
type Snapshot struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
	Customers  []Customer `json:"customers"`
	Orders     []Order    `json:"orders"`
}

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	Active     bool            `json:"active"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID            string               `json:"id"`
	CustomerID    string               `json:"customerId"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Total         decimal.Decimal      `json:"total"`
	CreatedAt     time.Time            `json:"createdAt"`
	DeliveredAt   *time.Time           `json:"deliveredAt,omitempty"`
	Items         []OrderItem          `json:"items"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

func Load(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return Load(f)
}
