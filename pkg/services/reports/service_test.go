package reports

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/memory"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/pricing"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a store to observe lookups and inject failures
type countingStore struct {
	sales.Store
	mu        sync.Mutex
	lookups   int
	failDaily bool
}

func (c *countingStore) GetProductsByIDs(ctx context.Context, ids []string) ([]store.ProductRow, error) {
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
	return c.Store.GetProductsByIDs(ctx, ids)
}

func (c *countingStore) GetDailySales(ctx context.Context, q sales.Query) ([]store.DailySalesRow, error) {
	if c.failDaily {
		return nil, errors.New("connection reset by peer")
	}
	return c.Store.GetDailySales(ctx, q)
}

type fixture struct {
	store   *countingStore
	service Service
}

func setupFixture(t *testing.T, snap *memory.Snapshot) *fixture {
	base, err := memory.NewSalesStore(snap)
	require.NoError(t, err)

	counting := &countingStore{Store: base}
	svc, err := NewService(counting, pricing.NewStore())
	require.NoError(t, err)

	return &fixture{store: counting, service: svc}
}

func last30Days() domain.DateRange {
	return domain.DateRange{Token: "30d", Start: testutil.Now.AddDate(0, 0, -30), End: testutil.Now, Label: "Últimos 30 días"}
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)

	_, err = newService(map[domain.ReportID]Generator{})
	assert.Error(t, err, "every report needs a generator")
}

func TestService_Generate_Validation(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "unknown report",
			req:  Request{ReportID: "inventory", Range: last30Days()},
		},
		{
			name: "inverted range",
			req: Request{
				ReportID: domain.ReportSalesSummary,
				Range:    domain.DateRange{Start: testutil.Now, End: testutil.Now.Add(-time.Hour)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestService_Generate_QueryFailureFailsReport(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))
	f.store.failDaily = true

	for _, id := range []domain.ReportID{domain.ReportSalesSummary, domain.ReportFinancial, domain.ReportOrdersAnalysis} {
		t.Run(id.String(), func(t *testing.T) {
			payload, err := f.service.Generate(context.Background(), Request{ReportID: id, Range: last30Days()})
			require.Error(t, err)
			assert.Nil(t, payload)
			assert.True(t, ierr.IsAggregation(err))
			assert.Equal(t, "error generating report", ierr.PublicMessage(err))
		})
	}
}

func TestService_Generate_EnrichesWithOneLookup(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	_, err := f.service.Generate(context.Background(), Request{ReportID: domain.ReportProductPerformance, Range: last30Days()})
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.lookups)
}

func TestService_Generate_EveryReport(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	for _, id := range domain.ReportIDs {
		t.Run(id.String(), func(t *testing.T) {
			payload, err := f.service.Generate(context.Background(), Request{ReportID: id, Range: last30Days()})
			require.NoError(t, err)
			assert.Equal(t, id, payload.ReportID())
		})
	}
}

func TestService_Generate_Idempotent(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))
	ctx := context.Background()

	for _, id := range domain.ReportIDs {
		t.Run(id.String(), func(t *testing.T) {
			first, err := f.service.Generate(ctx, Request{ReportID: id, Range: last30Days()})
			require.NoError(t, err)
			second, err := f.service.Generate(ctx, Request{ReportID: id, Range: last30Days()})
			require.NoError(t, err)

			a, err := json.Marshal(first)
			require.NoError(t, err)
			b, err := json.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		})
	}
}
