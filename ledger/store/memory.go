// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/sgrubb/tax-service/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (tests, dev, default runtime)
// =============================================================================

// Memory holds the three streams as slices guarded by one RWMutex, so an
// append can never be observed as a torn read by a concurrent query. Slices
// keep append order; same-dated amendment resolution relies on it.
type Memory struct {
	mu          sync.RWMutex
	salesEvents []ledger.SalesEvent
	taxPayments []ledger.TaxPayment
	amendments  []ledger.Amendment
}

func NewMemory() *Memory {
	return &Memory{}
}

// AppendSalesEvent adds a sales event. Append-only.
func (m *Memory) AppendSalesEvent(_ context.Context, event ledger.SalesEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salesEvents = append(m.salesEvents, event)
	return nil
}

// AppendTaxPayment adds a tax payment. Append-only.
func (m *Memory) AppendTaxPayment(_ context.Context, payment ledger.TaxPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taxPayments = append(m.taxPayments, payment)
	return nil
}

// AppendAmendment adds an amendment. Append-only.
func (m *Memory) AppendAmendment(_ context.Context, amendment ledger.Amendment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.amendments = append(m.amendments, amendment)
	return nil
}

// SalesEvents returns a copy of the sales-event stream. Later appends are
// never visible in the returned slice.
func (m *Memory) SalesEvents(_ context.Context) ([]ledger.SalesEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.SalesEvent, len(m.salesEvents))
	copy(result, m.salesEvents)
	return result, nil
}

// TaxPayments returns a copy of the tax-payment stream.
func (m *Memory) TaxPayments(_ context.Context) ([]ledger.TaxPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.TaxPayment, len(m.taxPayments))
	copy(result, m.taxPayments)
	return result, nil
}

// Amendments returns a copy of the amendment stream.
func (m *Memory) Amendments(_ context.Context) ([]ledger.Amendment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.Amendment, len(m.amendments))
	copy(result, m.amendments)
	return result, nil
}
