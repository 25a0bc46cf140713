/*
Package ledger provides the core domain types and the append-only event log
for the tax service.

PURPOSE:
  This package contains the record types that flow through the system and
  the Store/Ledger abstractions that hold them. The ledger is the immutable
  source of truth: a company's tax position is always computed by replaying
  records, never read from a mutable "balance" field.

KEY CONCEPTS IN THIS FILE (types.go):
  - Item: One taxable line on an invoice (cost + tax rate)
  - SalesEvent: An invoice issuance carrying one or more items
  - Amendment: A retroactive correction to one line item, layered over the
    original sales event at read time
  - TaxPayment: A payment made toward liability
  - TaxPosition: The derived signed balance at a point in time (never stored)

DESIGN PRINCIPLES:
  1. Immutability: Records are never modified after append. An amendment is
     a new record, not an edit of the sales event it corrects.
  2. Precision: Tax rates and computed positions use decimal.Decimal to
     avoid floating-point errors (1000 * 0.2 must be exactly 200).
  3. Full-timestamp semantics: Dates are absolute instants compared at full
     precision. Nothing in this package truncates to day granularity.

SEE ALSO:
  - store.go: Persistence interface for the three streams
  - ledger.go: Append/read facade over a Store
  - tax/: Amendment resolution and position calculation
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ITEM - One taxable line on an invoice
// =============================================================================

// Item is an immutable line-item value. Amendments produce a new Item;
// nothing mutates an existing one.
type Item struct {
	ItemID  string
	Cost    int64
	TaxRate decimal.Decimal
}

// Tax returns the sales tax owed for this item: cost * taxRate.
func (i Item) Tax() decimal.Decimal {
	return decimal.NewFromInt(i.Cost).Mul(i.TaxRate)
}

// =============================================================================
// LEDGER RECORDS - The three append-only streams
// =============================================================================

// SalesEvent records one invoice issuance.
//
// INVARIANTS:
//   - Items has at least one element (enforced at the API boundary).
//   - CompanyID + InvoiceID together identify an invoice; InvoiceID alone
//     is not globally unique across companies.
type SalesEvent struct {
	CompanyID string
	InvoiceID string
	Date      time.Time
	Items     []Item
}

// Amendment records a correction to one line item on a specific invoice,
// effective from Date onward. It relates to a SalesEvent only through the
// (CompanyID, InvoiceID, Item.ItemID) lookup key; the original event is
// never touched.
type Amendment struct {
	CompanyID string
	Date      time.Time
	InvoiceID string
	Item      Item
}

// TaxPayment records a payment made toward tax liability.
type TaxPayment struct {
	CompanyID string
	Date      time.Time
	Amount    int64
}

// =============================================================================
// TAX POSITION - Derived, never stored
// =============================================================================

// TaxPosition is the signed balance for one company at one instant:
// resolved sales tax minus payments. Negative means overpayment and is
// reported as-is.
type TaxPosition struct {
	Date        time.Time
	TaxPosition decimal.Decimal
}
