package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrubb/tax-service/ledger"
	"github.com/sgrubb/tax-service/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSQLite_SalesEventRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := ledger.SalesEvent{
		CompanyID: "C1",
		InvoiceID: "INV-001",
		Date:      time.Date(2026, time.January, 10, 10, 30, 0, 0, time.UTC),
		Items: []ledger.Item{
			{ItemID: "ITEM-1", Cost: 1000, TaxRate: rate("0.2")},
			{ItemID: "ITEM-2", Cost: 0, TaxRate: rate("0")},
		},
	}
	require.NoError(t, store.AppendSalesEvent(ctx, event))

	events, err := store.SalesEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "C1", got.CompanyID)
	assert.Equal(t, "INV-001", got.InvoiceID)
	assert.True(t, got.Date.Equal(event.Date))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "ITEM-1", got.Items[0].ItemID)
	assert.EqualValues(t, 1000, got.Items[0].Cost)
	assert.True(t, got.Items[0].TaxRate.Equal(rate("0.2")), "tax rate must round-trip exactly")
	assert.EqualValues(t, 0, got.Items[1].Cost)
}

func TestSQLite_TaxPaymentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	paymentDate := time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendTaxPayment(ctx, ledger.TaxPayment{
		CompanyID: "C1",
		Date:      paymentDate,
		Amount:    5000,
	}))

	payments, err := store.TaxPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "C1", payments[0].CompanyID)
	assert.True(t, payments[0].Date.Equal(paymentDate))
	assert.EqualValues(t, 5000, payments[0].Amount)
}

func TestSQLite_AmendmentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	amendDate := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendAmendment(ctx, ledger.Amendment{
		CompanyID: "C1",
		Date:      amendDate,
		InvoiceID: "INV-001",
		Item:      ledger.Item{ItemID: "ITEM-1", Cost: 1500, TaxRate: rate("0.2")},
	}))

	amendments, err := store.Amendments(ctx)
	require.NoError(t, err)
	require.Len(t, amendments, 1)
	assert.Equal(t, "INV-001", amendments[0].InvoiceID)
	assert.Equal(t, "ITEM-1", amendments[0].Item.ItemID)
	assert.EqualValues(t, 1500, amendments[0].Item.Cost)
	assert.True(t, amendments[0].Date.Equal(amendDate))
}

func TestSQLite_AppendOrderPreserved(t *testing.T) {
	// Same-date amendments resolve by append order; the seq column must
	// keep that order across persistence.

	store := newTestStore(t)
	ctx := context.Background()

	sameDate := time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC)
	for _, cost := range []int64{2000, 7000} {
		require.NoError(t, store.AppendAmendment(ctx, ledger.Amendment{
			CompanyID: "C1",
			Date:      sameDate,
			InvoiceID: "INV-001",
			Item:      ledger.Item{ItemID: "ITEM-1", Cost: cost, TaxRate: rate("0.2")},
		}))
	}

	amendments, err := store.Amendments(ctx)
	require.NoError(t, err)
	require.Len(t, amendments, 2)
	assert.EqualValues(t, 2000, amendments[0].Item.Cost)
	assert.EqualValues(t, 7000, amendments[1].Item.Cost)
}

func TestSQLite_EmptySnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events, err := store.SalesEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	payments, err := store.TaxPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)

	amendments, err := store.Amendments(ctx)
	require.NoError(t, err)
	assert.Empty(t, amendments)
}
