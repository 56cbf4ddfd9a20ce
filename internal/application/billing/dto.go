package billing

import (
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Requests
// =============================================================================

// GenerateInvoiceRequest asks the generator to turn a project's billable
// value into a draft invoice
type GenerateInvoiceRequest struct {
	ProjectID uuid.UUID  `json:"project_id" binding:"required"`
	From      *time.Time `json:"from"`
	To        *time.Time `json:"to"`
	Notes     string     `json:"notes" binding:"max=2000"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Method         string          `json:"method" binding:"max=100"`
	Note           string          `json:"note" binding:"max=500"`
	IdempotencyKey string          `json:"-"` // from the Idempotency-Key header
}

// ListInvoicesRequest bounds and filters an invoice listing
type ListInvoicesRequest struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	Status    *string    `form:"status"`
	ProjectID *uuid.UUID `form:"project_id"`
	ClientID  *uuid.UUID `form:"client_id"`
	Overdue   *bool      `form:"overdue"`
}

// =============================================================================
// Responses
// =============================================================================

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// PaymentResponse represents a recorded payment in API responses
type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method,omitempty"`
	Note           string          `json:"note,omitempty"`
	AutoSettlement bool            `json:"auto_settlement"`
	PaidAt         time.Time       `json:"paid_at"`
}

// InvoiceResponse represents a full invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	Number        int                   `json:"number"`
	DisplayNumber string                `json:"display_number"`
	ClientID      uuid.UUID             `json:"client_id"`
	ProjectID     *uuid.UUID            `json:"project_id,omitempty"`
	Currency      string                `json:"currency"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       time.Time             `json:"due_date"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	Outstanding   decimal.Decimal       `json:"outstanding"`
	Status        string                `json:"status"`
	Overdue       bool                  `json:"overdue"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	Payments      []PaymentResponse     `json:"payments"`
	CreatedAt     time.Time             `json:"created_at"`
}

// InvoiceListItemResponse is the compact listing shape
type InvoiceListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        int             `json:"number"`
	DisplayNumber string          `json:"display_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	ProjectID     *uuid.UUID      `json:"project_id,omitempty"`
	Currency      string          `json:"currency"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Status        string          `json:"status"`
	Overdue       bool            `json:"overdue"`
}

// ToInvoiceResponse converts a domain invoice to its full API shape
func ToInvoiceResponse(inv *billing.Invoice, prefix string) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
	payments := make([]PaymentResponse, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentResponse{
			ID:             p.ID,
			Amount:         p.Amount,
			Method:         p.Method,
			Note:           p.Note,
			AutoSettlement: p.IsAutoSettlement(),
			PaidAt:         p.PaidAt,
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		DisplayNumber: inv.DisplayNumber(prefix),
		ClientID:      inv.ClientID,
		ProjectID:     inv.ProjectID,
		Currency:      inv.Currency.String(),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		Outstanding:   inv.Outstanding(),
		Status:        inv.Status.String(),
		Overdue:       inv.IsOverdue(time.Now()),
		Notes:         inv.Notes,
		Items:         items,
		Payments:      payments,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceListItemResponses converts invoices to the listing shape
func ToInvoiceListItemResponses(invoices []billing.Invoice, prefix string) []InvoiceListItemResponse {
	now := time.Now()
	out := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		out[i] = InvoiceListItemResponse{
			ID:            inv.ID,
			Number:        inv.Number,
			DisplayNumber: inv.DisplayNumber(prefix),
			ClientID:      inv.ClientID,
			ProjectID:     inv.ProjectID,
			Currency:      inv.Currency.String(),
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
			Total:         inv.Total,
			AmountPaid:    inv.AmountPaid,
			Status:        inv.Status.String(),
			Overdue:       inv.IsOverdue(now),
		}
	}
	return out
}
