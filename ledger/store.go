/*
store.go - Persistence interface for the three ledger streams

PURPOSE:
  Defines the interface between the domain logic and storage. The Store
  holds three independent append-only streams: sales events, tax payments,
  and amendments. Different implementations can use SQLite or in-memory
  storage.

APPEND-ONLY CONTRACT:
  - Append*(): Single record write. Never rejects a validated record.
  - NO Update() or Delete() methods exist. Corrections are expressed as
    amendment records layered over the original at read time.
  - Append order within each stream is preserved and observable through
    the list methods. Resolution of same-dated amendments depends on it.

SNAPSHOT READS:
  The list methods return the full current snapshot of a stream as a copy.
  Records appended after the call are never visible in an already-returned
  slice. No pagination; the log is sized for in-process volumes.

COMPANY ISOLATION:
  The Store does not partition by company. One global log per stream,
  filtered by CompanyID at query time - a deliberate simplicity-over-scan
  trade-off. Callers must filter by company before any other comparison.

IMPLEMENTATIONS:
  - ledger/store/memory.go: In-memory slices (tests, dev)
  - store/sqlite/sqlite.go: SQLite with append-only tables

SEE ALSO:
  - ledger.go: Higher-level facade using Store
  - tax/position.go: The query side that applies the company/date filters
*/
package ledger

import "context"

// Store persists the three ledger streams.
// IMPORTANT: Store is APPEND-ONLY. No Update, No Delete. Ever.
type Store interface {
	// AppendSalesEvent persists one sales event.
	AppendSalesEvent(ctx context.Context, event SalesEvent) error

	// AppendTaxPayment persists one tax payment.
	AppendTaxPayment(ctx context.Context, payment TaxPayment) error

	// AppendAmendment persists one amendment.
	AppendAmendment(ctx context.Context, amendment Amendment) error

	// SalesEvents returns a snapshot of all sales events in append order.
	SalesEvents(ctx context.Context) ([]SalesEvent, error)

	// TaxPayments returns a snapshot of all tax payments in append order.
	TaxPayments(ctx context.Context) ([]TaxPayment, error)

	// Amendments returns a snapshot of all amendments in append order.
	Amendments(ctx context.Context) ([]Amendment, error)
}
