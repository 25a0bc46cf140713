/*
Package tax computes a company's tax position from the ledger streams.

PURPOSE:
  This package holds the only non-trivial semantics in the system:
  point-in-time reconstruction. Given an as-of instant, it decides which
  ledger records are visible, resolves each sold item's effective cost and
  tax rate through the amendment stream, and aggregates sales tax minus
  payments into one signed balance.

KEY CONCEPTS:
  - resolver.go: Effective-item resolution (which amendment, if any, wins)
  - position.go: The filter -> resolve -> aggregate pipeline

SEE ALSO:
  - ledger/: Record types and the append-only streams this package replays
*/
package tax

import (
	"time"

	"github.com/sgrubb/tax-service/ledger"
)

// =============================================================================
// AMENDMENT RESOLUTION - Which values does an item have as of an instant?
// =============================================================================

// EffectiveItem resolves the values to use for one line item of one invoice
// as of asOf, given a pool of candidate amendments.
//
// An amendment applies only when CompanyID, InvoiceID and Item.ItemID all
// match exactly and its date is at or before asOf. Among applicable
// amendments the one with the strictly latest date wins; when two share the
// exact same date, the one appended last wins (the pool is in append order,
// and a same-dated candidate replaces the current winner). With no
// applicable amendment the original item is returned unchanged - that is
// the normal case, not a failure.
//
// Pure function of its inputs; safe to call concurrently.
func EffectiveItem(companyID, invoiceID string, original ledger.Item, asOf time.Time, pool []ledger.Amendment) ledger.Item {
	effective := original
	var effectiveAt time.Time
	found := false

	for _, a := range pool {
		if a.CompanyID != companyID || a.InvoiceID != invoiceID || a.Item.ItemID != original.ItemID {
			continue
		}
		if a.Date.After(asOf) {
			continue
		}
		if !found || !a.Date.Before(effectiveAt) {
			effective = a.Item
			effectiveAt = a.Date
			found = true
		}
	}
	return effective
}
