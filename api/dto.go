/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external wire contract: the amendment
  endpoint, for example, takes flat item fields on the wire but maps them
  into the nested domain record.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Types returned to clients

VALIDATION:
  Struct tags drive go-playground/validator. The ingest endpoint is a
  discriminated union on eventType, expressed with required_if tags.
  Numeric fields that may legitimately be zero (cost, amount, taxRate) are
  pointers so "missing" and "zero" stay distinguishable.

SEE ALSO:
  - validate.go: Validator setup and error envelope mapping
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ItemRequest is one taxable line item on the wire.
type ItemRequest struct {
	ItemID  string   `json:"itemId" validate:"required"`
	Cost    *int64   `json:"cost" validate:"required,gte=0"`
	TaxRate *float64 `json:"taxRate" validate:"required,gte=0,lte=1"`
}

// Event type discriminator values for TransactionRequest.
const (
	EventTypeSales      = "SALES"
	EventTypeTaxPayment = "TAX_PAYMENT"
)

// TransactionRequest is the body of POST /transactions: either a sales
// event or a tax payment, discriminated by eventType.
type TransactionRequest struct {
	EventType string `json:"eventType" validate:"required,oneof=SALES TAX_PAYMENT"`
	CompanyID string `json:"companyId" validate:"required"`
	Date      string `json:"date" validate:"required"`

	// SALES only
	InvoiceID string        `json:"invoiceId,omitempty" validate:"required_if=EventType SALES"`
	Items     []ItemRequest `json:"items,omitempty" validate:"required_if=EventType SALES,omitempty,min=1,dive"`

	// TAX_PAYMENT only
	Amount *int64 `json:"amount,omitempty" validate:"required_if=EventType TAX_PAYMENT,omitempty,gte=0"`
}

// AmendSaleRequest is the body of PATCH /sale. Flat item fields are mapped
// into the nested Amendment.Item domain record.
type AmendSaleRequest struct {
	CompanyID string   `json:"companyId" validate:"required"`
	Date      string   `json:"date" validate:"required"`
	InvoiceID string   `json:"invoiceId" validate:"required"`
	ItemID    string   `json:"itemId" validate:"required"`
	Cost      *int64   `json:"cost" validate:"required,gte=0"`
	TaxRate   *float64 `json:"taxRate" validate:"required,gte=0,lte=1"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// TaxPositionResponse is the body of GET /tax-position. Date echoes the
// requested query value.
type TaxPositionResponse struct {
	Date        string  `json:"date"`
	TaxPosition float64 `json:"taxPosition"`
}

// InfoResponse describes the service at GET /.
type InfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}
