/*
position.go - Tax position calculation

PURPOSE:
  Produces the signed tax-position scalar for one company as of one instant
  by replaying the ledger streams. The position is always derived; there is
  no stored balance that can drift out of sync.

ALGORITHM:
  1. Filter sales events: company match first, then date <= asOf.
  2. Pre-filter amendments the same way, once; the pool is shared across all
     items in the query instead of being re-filtered per item.
  3. For each surviving event, resolve each item through EffectiveItem and
     accumulate cost * taxRate.
  4. Filter tax payments (company, then date) and sum amounts.
  5. Position = sales tax - payments. May be negative; never clamped.

DATE BOUNDARY:
  Comparison is "at or before" at full timestamp precision: a record dated
  exactly asOf is included, one dated a second later is excluded. This
  boundary is load-bearing; nothing here truncates to day granularity.

SEE ALSO:
  - resolver.go: Effective-item resolution
  - ledger/ledger.go: The streams being replayed
*/
package tax

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgrubb/tax-service/ledger"
)

// Calculator computes tax positions from a Ledger.
type Calculator struct {
	Ledger *ledger.Ledger
}

// NewCalculator creates a Calculator over the given ledger.
func NewCalculator(l *ledger.Ledger) *Calculator {
	return &Calculator{Ledger: l}
}

// PositionAt returns the signed tax position for companyID as of asOf.
// A company with no ledger records yields a zero position.
func (c *Calculator) PositionAt(ctx context.Context, companyID string, asOf time.Time) (ledger.TaxPosition, error) {
	events, err := c.Ledger.SalesEvents(ctx)
	if err != nil {
		return ledger.TaxPosition{}, err
	}
	amendments, err := c.Ledger.Amendments(ctx)
	if err != nil {
		return ledger.TaxPosition{}, err
	}
	payments, err := c.Ledger.TaxPayments(ctx)
	if err != nil {
		return ledger.TaxPosition{}, err
	}

	// Eligible amendment pool for this query, filtered once and reused for
	// every item. Company filter comes before the date comparison.
	pool := make([]ledger.Amendment, 0, len(amendments))
	for _, a := range amendments {
		if a.CompanyID == companyID && !a.Date.After(asOf) {
			pool = append(pool, a)
		}
	}

	salesTax := decimal.Zero
	for _, event := range events {
		if event.CompanyID != companyID || event.Date.After(asOf) {
			continue
		}
		for _, item := range event.Items {
			effective := EffectiveItem(event.CompanyID, event.InvoiceID, item, asOf, pool)
			salesTax = salesTax.Add(effective.Tax())
		}
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.CompanyID != companyID || p.Date.After(asOf) {
			continue
		}
		paid = paid.Add(decimal.NewFromInt(p.Amount))
	}

	return ledger.TaxPosition{
		Date:        asOf,
		TaxPosition: salesTax.Sub(paid),
	}, nil
}
