/*
ledger.go - Append/read facade over the Store

PURPOSE:
  The Ledger is the single entry point the rest of the system uses to write
  and read the three streams. It owns no state of its own; it exists so the
  ingestion boundary and the calculators share one named object that can be
  constructed per process (or per test) instead of a hidden global.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No Update, No Delete. EVER.
  2. IMMUTABLE: Once written, records cannot be modified.
  3. PRE-VALIDATED INPUT: Append methods accept fully-constructed records
     and never reject them. Validation happens at the API boundary.

WHY APPEND-ONLY?
  - Audit trail: "Why is the position X?" is answered by replaying records.
  - Retroactive corrections: an amendment changes history as seen from a
    later as-of date without rewriting it.
  - Correctness: no partial updates can corrupt state.

SEE ALSO:
  - store.go: Low-level persistence interface
  - tax/position.go: Position calculation replaying these streams
*/
package ledger

import "context"

// Ledger is the source of truth for all tax-position inputs.
//
// Each instance wraps one Store; tests construct isolated instances with an
// in-memory store.
type Ledger struct {
	store Store
}

// New creates a Ledger backed by the given store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// AppendSalesEvent records an invoice issuance.
func (l *Ledger) AppendSalesEvent(ctx context.Context, event SalesEvent) error {
	return l.store.AppendSalesEvent(ctx, event)
}

// AppendTaxPayment records a payment toward liability.
func (l *Ledger) AppendTaxPayment(ctx context.Context, payment TaxPayment) error {
	return l.store.AppendTaxPayment(ctx, payment)
}

// AppendAmendment records a line-item correction.
func (l *Ledger) AppendAmendment(ctx context.Context, amendment Amendment) error {
	return l.store.AppendAmendment(ctx, amendment)
}

// SalesEvents returns the current sales-event snapshot. Read-only.
func (l *Ledger) SalesEvents(ctx context.Context) ([]SalesEvent, error) {
	return l.store.SalesEvents(ctx)
}

// TaxPayments returns the current tax-payment snapshot. Read-only.
func (l *Ledger) TaxPayments(ctx context.Context) ([]TaxPayment, error) {
	return l.store.TaxPayments(ctx)
}

// Amendments returns the current amendment snapshot. Read-only.
func (l *Ledger) Amendments(ctx context.Context) ([]Amendment, error) {
	return l.store.Amendments(ctx)
}
