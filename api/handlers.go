/*
handlers.go - HTTP handlers for the tax service

PURPOSE:
  Exposes the ledger and the position calculator over REST. Handlers own
  the boundary work the core is excluded from: JSON decoding, request
  validation, timestamp parsing, and mapping wire shapes to domain records.
  By the time a record reaches the ledger it is fully validated; the core
  never rejects input.

ENDPOINTS:
  GET    /               Service info
  POST   /transactions   Ingest a sales event or tax payment (202)
  PATCH  /sale           Record a line-item amendment (202)
  GET    /tax-position   Compute position for ?companyId=&date= (200)

REQUEST FLOW:
  1. Decode JSON body / read query params
  2. Validate (struct tags + date parsing)
  3. Map to domain record, append to ledger or run the calculator
  4. Write response

ERROR HANDLING:
  - 400: {"error": "Validation failed", "details": [...]} for any invalid
         input, malformed JSON included
  - 404: {"error": "Not found"} for unknown routes (see server.go)
  - 500: {"error": "..."} only for store failures

SEE ALSO:
  - dto.go: Wire types
  - validate.go: Validation envelope
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sgrubb/tax-service/ledger"
	"github.com/sgrubb/tax-service/tax"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger *ledger.Ledger
	Calc   *tax.Calculator

	log      *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a handler over the given ledger.
func NewHandler(l *ledger.Ledger, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Ledger:   l,
		Calc:     tax.NewCalculator(l),
		log:      log,
		validate: newValidator(),
	}
}

// =============================================================================
// INFO
// =============================================================================

// Info returns the service description.
// GET /
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:    "Tax Service API",
		Version: "1.0.0",
		Endpoints: []string{
			"POST /transactions",
			"PATCH /sale",
			"GET /tax-position",
		},
	})
}

// =============================================================================
// INGESTION
// =============================================================================

// IngestTransaction accepts a sales event or tax payment.
// POST /transactions
func (h *Handler) IngestTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("malformed ingest body", zap.Error(err))
		writeValidationError(w, []FieldError{{Field: "", Message: "must be a valid JSON body"}})
		return
	}

	details := validateStruct(h.validate, req)
	parsed, ferr := parseDateChecked(req.Date)
	if ferr != nil {
		details = append(details, *ferr)
	}
	if len(details) > 0 {
		h.log.Warn("validation failed for ingest request", zap.Int("errors", len(details)))
		writeValidationError(w, details)
		return
	}

	switch req.EventType {
	case EventTypeSales:
		items := make([]ledger.Item, len(req.Items))
		for i, it := range req.Items {
			items[i] = ledger.Item{
				ItemID:  it.ItemID,
				Cost:    *it.Cost,
				TaxRate: decimal.NewFromFloat(*it.TaxRate),
			}
		}
		event := ledger.SalesEvent{
			CompanyID: req.CompanyID,
			InvoiceID: req.InvoiceID,
			Date:      parsed,
			Items:     items,
		}

		h.log.Info("ingesting sales event",
			zap.String("companyId", event.CompanyID),
			zap.String("invoiceId", event.InvoiceID),
			zap.Time("date", event.Date),
			zap.Int("items", len(event.Items)))

		if err := h.Ledger.AppendSalesEvent(r.Context(), event); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to record sales event", err)
			return
		}

	case EventTypeTaxPayment:
		payment := ledger.TaxPayment{
			CompanyID: req.CompanyID,
			Date:      parsed,
			Amount:    *req.Amount,
		}

		h.log.Info("ingesting tax payment",
			zap.String("companyId", payment.CompanyID),
			zap.Time("date", payment.Date),
			zap.Int64("amount", payment.Amount))

		if err := h.Ledger.AppendTaxPayment(r.Context(), payment); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to record tax payment", err)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

// AmendSale records a correction to one line item of a previously ingested
// invoice. The sale itself is never modified; the amendment is applied at
// query time.
// PATCH /sale
func (h *Handler) AmendSale(w http.ResponseWriter, r *http.Request) {
	var req AmendSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("malformed amend body", zap.Error(err))
		writeValidationError(w, []FieldError{{Field: "", Message: "must be a valid JSON body"}})
		return
	}

	details := validateStruct(h.validate, req)
	parsed, ferr := parseDateChecked(req.Date)
	if ferr != nil {
		details = append(details, *ferr)
	}
	if len(details) > 0 {
		h.log.Warn("validation failed for amend request", zap.Int("errors", len(details)))
		writeValidationError(w, details)
		return
	}

	amendment := ledger.Amendment{
		CompanyID: req.CompanyID,
		Date:      parsed,
		InvoiceID: req.InvoiceID,
		Item: ledger.Item{
			ItemID:  req.ItemID,
			Cost:    *req.Cost,
			TaxRate: decimal.NewFromFloat(*req.TaxRate),
		},
	}

	h.log.Info("amending sale",
		zap.String("companyId", amendment.CompanyID),
		zap.String("invoiceId", amendment.InvoiceID),
		zap.String("itemId", amendment.Item.ItemID),
		zap.Time("date", amendment.Date))

	if err := h.Ledger.AppendAmendment(r.Context(), amendment); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record amendment", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// =============================================================================
// QUERY
// =============================================================================

// TaxPosition computes the signed position for one company as of one
// instant.
// GET /tax-position?companyId=...&date=...
func (h *Handler) TaxPosition(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("companyId")
	rawDate := r.URL.Query().Get("date")

	var details []FieldError
	if companyID == "" {
		details = append(details, FieldError{Field: "companyId", Message: "is required"})
	}
	if rawDate == "" {
		details = append(details, FieldError{Field: "date", Message: "is required"})
	}
	var asOf time.Time
	if rawDate != "" {
		parsed, ferr := parseDate("date", rawDate)
		if ferr != nil {
			details = append(details, *ferr)
		} else {
			asOf = parsed
		}
	}
	if len(details) > 0 {
		h.log.Warn("invalid tax position query", zap.Int("errors", len(details)))
		writeValidationError(w, details)
		return
	}

	h.log.Info("querying tax position",
		zap.String("companyId", companyID),
		zap.String("date", rawDate))

	position, err := h.Calc.PositionAt(r.Context(), companyID, asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute tax position", err)
		return
	}

	value := position.TaxPosition.InexactFloat64()
	if value < 0 {
		h.log.Info("negative tax position",
			zap.String("companyId", companyID),
			zap.Float64("taxPosition", value))
	}

	writeJSON(w, http.StatusOK, TaxPositionResponse{
		Date:        rawDate,
		TaxPosition: value,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeValidationError(w http.ResponseWriter, details []FieldError) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = []FieldError{{Field: "", Message: err.Error()}}
	}
	writeJSON(w, status, resp)
}

// parseDateChecked parses a non-empty date. An empty value is left to the
// required tag so a missing date yields one error, not two.
func parseDateChecked(value string) (time.Time, *FieldError) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseDate("date", value)
}
