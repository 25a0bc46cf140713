/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Gives the service a durable ledger behind the same interface the
  in-memory store implements. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on any ledger table
  - No DELETE statements on any ledger table
  - Corrections exist only as amendment rows

KEY TABLES:
  sales_events:  One row per invoice issuance; items serialized as JSON
  tax_payments:  One row per payment
  amendments:    One row per line-item correction

APPEND ORDER:
  Every table carries a monotonic seq column and all reads ORDER BY seq.
  Resolution of two amendments with the same effective date picks the
  later-appended one, so append order must survive persistence.

ENCODING:
  Dates are stored as RFC 3339 text at nanosecond precision. Tax rates are
  stored as decimal text, never as floating point.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, a single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/tax.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  led := ledger.New(store)

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/sgrubb/tax-service/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Sales events (append-only)
	CREATE TABLE IF NOT EXISTS sales_events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL,
		invoice_id TEXT NOT NULL,
		event_date TEXT NOT NULL,
		items_json TEXT NOT NULL
	);

	-- Tax payments (append-only)
	CREATE TABLE IF NOT EXISTS tax_payments (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		amount INTEGER NOT NULL
	);

	-- Amendments (append-only)
	CREATE TABLE IF NOT EXISTS amendments (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id TEXT NOT NULL,
		invoice_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		amendment_date TEXT NOT NULL,
		cost INTEGER NOT NULL,
		tax_rate TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_events_company
		ON sales_events(company_id);
	CREATE INDEX IF NOT EXISTS idx_tax_payments_company
		ON tax_payments(company_id);
	CREATE INDEX IF NOT EXISTS idx_amendments_company
		ON amendments(company_id, invoice_id, item_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENCODING
// =============================================================================

// itemRecord is the persisted shape of a ledger.Item. Tax rates round-trip
// as decimal text so no float precision is lost.
type itemRecord struct {
	ItemID  string `json:"itemId"`
	Cost    int64  `json:"cost"`
	TaxRate string `json:"taxRate"`
}

func encodeItems(items []ledger.Item) (string, error) {
	records := make([]itemRecord, len(items))
	for i, it := range items {
		records[i] = itemRecord{ItemID: it.ItemID, Cost: it.Cost, TaxRate: it.TaxRate.String()}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeItems(data string) ([]ledger.Item, error) {
	var records []itemRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	items := make([]ledger.Item, len(records))
	for i, r := range records {
		rate, err := decimal.NewFromString(r.TaxRate)
		if err != nil {
			return nil, fmt.Errorf("invalid stored tax rate %q: %w", r.TaxRate, err)
		}
		items[i] = ledger.Item{ItemID: r.ItemID, Cost: r.Cost, TaxRate: rate}
	}
	return items, nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// =============================================================================
// APPEND OPERATIONS
// =============================================================================

// AppendSalesEvent persists one sales event.
func (s *Store) AppendSalesEvent(ctx context.Context, event ledger.SalesEvent) error {
	items, err := encodeItems(event.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sales_events (company_id, invoice_id, event_date, items_json)
		VALUES (?, ?, ?, ?)`,
		event.CompanyID, event.InvoiceID, encodeTime(event.Date), items)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrAppendFailed, err)
	}
	return nil
}

// AppendTaxPayment persists one tax payment.
func (s *Store) AppendTaxPayment(ctx context.Context, payment ledger.TaxPayment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tax_payments (company_id, payment_date, amount)
		VALUES (?, ?, ?)`,
		payment.CompanyID, encodeTime(payment.Date), payment.Amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrAppendFailed, err)
	}
	return nil
}

// AppendAmendment persists one amendment.
func (s *Store) AppendAmendment(ctx context.Context, amendment ledger.Amendment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO amendments (company_id, invoice_id, item_id, amendment_date, cost, tax_rate)
		VALUES (?, ?, ?, ?, ?, ?)`,
		amendment.CompanyID, amendment.InvoiceID, amendment.Item.ItemID,
		encodeTime(amendment.Date), amendment.Item.Cost, amendment.Item.TaxRate.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrAppendFailed, err)
	}
	return nil
}

// =============================================================================
// SNAPSHOT READS
// =============================================================================

// SalesEvents returns all sales events in append order.
func (s *Store) SalesEvents(ctx context.Context) ([]ledger.SalesEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT company_id, invoice_id, event_date, items_json
		FROM sales_events ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []ledger.SalesEvent
	for rows.Next() {
		var event ledger.SalesEvent
		var date, items string
		if err := rows.Scan(&event.CompanyID, &event.InvoiceID, &date, &items); err != nil {
			return nil, err
		}
		if event.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		if event.Items, err = decodeItems(items); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// TaxPayments returns all tax payments in append order.
func (s *Store) TaxPayments(ctx context.Context) ([]ledger.TaxPayment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT company_id, payment_date, amount
		FROM tax_payments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []ledger.TaxPayment
	for rows.Next() {
		var payment ledger.TaxPayment
		var date string
		if err := rows.Scan(&payment.CompanyID, &date, &payment.Amount); err != nil {
			return nil, err
		}
		if payment.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// Amendments returns all amendments in append order.
func (s *Store) Amendments(ctx context.Context) ([]ledger.Amendment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT company_id, invoice_id, item_id, amendment_date, cost, tax_rate
		FROM amendments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amendments []ledger.Amendment
	for rows.Next() {
		var a ledger.Amendment
		var date, rate string
		if err := rows.Scan(&a.CompanyID, &a.InvoiceID, &a.Item.ItemID, &date, &a.Item.Cost, &rate); err != nil {
			return nil, err
		}
		if a.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		if a.Item.TaxRate, err = decimal.NewFromString(rate); err != nil {
			return nil, err
		}
		amendments = append(amendments, a)
	}
	return amendments, rows.Err()
}
