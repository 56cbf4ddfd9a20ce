package billing

import (
	"fmt"
	"time"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"   // Created, not yet sent
	InvoiceStatusSent    InvoiceStatus = "SENT"    // Sent to the client
	InvoiceStatusPartial InvoiceStatus = "PARTIAL" // Partially paid, 0 < amountPaid < total
	InvoiceStatusPaid    InvoiceStatus = "PAID"    // Fully paid
	InvoiceStatusVoid    InvoiceStatus = "VOID"    // Written off; a dead end

	// InvoiceStatusOverdue is a derived, query-only state: an unpaid invoice
	// past its due date. It is never stored and never a transition target.
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// IsValid checks if the status is a valid stored InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartial,
		InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsVoidable reports whether the status can still transition to VOID.
// The payment guard is separate; this only covers the state machine.
func (s InvoiceStatus) IsVoidable() bool {
	return s != InvoiceStatusVoid
}

// PaymentTerms determines how the due date is derived from the issue date
type PaymentTerms string

const (
	TermsNet7         PaymentTerms = "NET_7"
	TermsNet15        PaymentTerms = "NET_15"
	TermsNet30        PaymentTerms = "NET_30"
	TermsDueOnReceipt PaymentTerms = "DUE_ON_RECEIPT"
)

// IsValid checks if the terms value is known
func (t PaymentTerms) IsValid() bool {
	switch t {
	case TermsNet7, TermsNet15, TermsNet30, TermsDueOnReceipt:
		return true
	}
	return false
}

// String returns the string representation of PaymentTerms
func (t PaymentTerms) String() string {
	return string(t)
}

// DueDate computes the due date for an invoice issued on the given date.
// Unknown terms behave like DUE_ON_RECEIPT.
func (t PaymentTerms) DueDate(issue time.Time) time.Time {
	switch t {
	case TermsNet7:
		return issue.AddDate(0, 0, 7)
	case TermsNet15:
		return issue.AddDate(0, 0, 15)
	case TermsNet30:
		return issue.AddDate(0, 0, 30)
	}
	return issue
}

// AutoSettleMethod tags the synthetic payment created when an invoice is
// manually marked paid, so it is distinguishable from a real payment event.
const AutoSettleMethod = "Manual Auto-Settle"

// ErrEmptyInvoice is returned when generation finds nothing billable
var ErrEmptyInvoice = shared.NewDomainError("EMPTY_INVOICE", "Nothing to invoice for this project")

// InvoiceItem is one line of invoiced work or fee. Items are created with
// the invoice and immutable thereafter.
type InvoiceItem struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// NewInvoiceItem creates a line item; total = quantity x unitPrice rounded
// to currency precision.
func NewInvoiceItem(description string, quantity, unitPrice decimal.Decimal) (InvoiceItem, error) {
	if description == "" {
		return InvoiceItem{}, shared.NewValidationError("Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return InvoiceItem{}, shared.NewValidationError("Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return InvoiceItem{}, shared.NewValidationError("Item unit price cannot be negative")
	}
	return InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice).Round(2),
	}, nil
}

// Payment is money received against an invoice. Payments are append-only:
// never updated or deleted. Refunds are an external process.
type Payment struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Note      string          `json:"note,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// IsAutoSettlement reports whether the payment was synthesized by markPaid
func (p *Payment) IsAutoSettlement() bool {
	return p.Method == AutoSettleMethod
}

// Invoice is the aggregate root for billing. It owns its line items and
// payments; total always equals subtotal + tax, and amountPaid always equals
// the sum of payments.
type Invoice struct {
	shared.OwnedAggregateRoot
	Number     int                  `json:"number"` // per-user sequential
	ClientID   uuid.UUID            `json:"client_id"`
	ProjectID  *uuid.UUID           `json:"project_id"`
	Currency   valueobject.Currency `json:"currency"`
	IssueDate  time.Time            `json:"issue_date"`
	DueDate    time.Time            `json:"due_date"`
	Subtotal   decimal.Decimal      `json:"subtotal"`
	Tax        decimal.Decimal      `json:"tax"`
	Total      decimal.Decimal      `json:"total"`
	AmountPaid decimal.Decimal      `json:"amount_paid"`
	Status     InvoiceStatus        `json:"status"`
	Notes      string               `json:"notes,omitempty"`
	Items      []InvoiceItem        `json:"items"`
	Payments   []Payment            `json:"payments"`
}

// NewInvoice creates a DRAFT invoice from prepared line items. The subtotal,
// tax and total are computed here and never mutated afterwards except through
// explicit recompute paths.
func NewInvoice(
	userID uuid.UUID,
	number int,
	clientID uuid.UUID,
	projectID *uuid.UUID,
	currency valueobject.Currency,
	taxRate decimal.Decimal,
	terms PaymentTerms,
	issueDate time.Time,
	items []InvoiceItem,
) (*Invoice, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if number <= 0 {
		return nil, shared.NewValidationError("Invoice number must be positive")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID is required")
	}
	if !currency.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Unsupported currency %q", currency))
	}
	if taxRate.IsNegative() {
		return nil, shared.NewValidationError("Tax rate cannot be negative")
	}
	if len(items) == 0 {
		return nil, ErrEmptyInvoice
	}

	subtotal := valueobject.Zero(currency)
	for _, item := range items {
		line, err := valueobject.NewMoney(item.Total, currency)
		if err != nil {
			return nil, shared.NewValidationError(err.Error())
		}
		subtotal, err = subtotal.Add(line)
		if err != nil {
			return nil, shared.NewValidationError(err.Error())
		}
	}
	tax := subtotal.Mul(taxRate.Div(decimal.NewFromInt(100))).Round2()
	total, err := subtotal.Add(tax)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	inv := &Invoice{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Number:             number,
		ClientID:           clientID,
		ProjectID:          projectID,
		Currency:           currency,
		IssueDate:          issueDate,
		DueDate:            terms.DueDate(issueDate),
		Subtotal:           subtotal.Amount(),
		Tax:                tax.Amount(),
		Total:              total.Amount(),
		AmountPaid:         decimal.Zero,
		Status:             InvoiceStatusDraft,
		Items:              make([]InvoiceItem, len(items)),
		Payments:           make([]Payment, 0),
	}
	copy(inv.Items, items)
	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// RecordPayment appends a payment and recomputes amountPaid from the full
// payment list; the cached running total is never trusted incrementally.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, method, note string) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if inv.Status == InvoiceStatusVoid {
		return nil, shared.NewConflictError("Cannot record a payment against a VOID invoice")
	}

	payment := Payment{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		Amount:    amount,
		Method:    method,
		Note:      note,
		PaidAt:    time.Now(),
	}
	inv.Payments = append(inv.Payments, payment)

	inv.recomputeFromPayments()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	if inv.Status == InvoiceStatusPaid {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.AddDomainEvent(NewInvoicePaymentRecordedEvent(inv, &payment))
	}

	return &inv.Payments[len(inv.Payments)-1], nil
}

// recomputeFromPayments re-sums all payments and derives the status.
// A zero paid amount leaves the status untouched.
func (inv *Invoice) recomputeFromPayments() {
	paid := valueobject.Zero(inv.Currency)
	for _, p := range inv.Payments {
		paid, _ = paid.Add(inv.money(p.Amount))
	}
	inv.AmountPaid = paid.Amount()

	switch {
	case paid.GreaterThanOrEqual(inv.money(inv.Total)):
		inv.Status = InvoiceStatusPaid
	case paid.IsPositive():
		inv.Status = InvoiceStatusPartial
	}
}

// money wraps an amount in the invoice's currency. The currency is validated
// at construction, so same-currency arithmetic on these values cannot fail.
func (inv *Invoice) money(amount decimal.Decimal) valueobject.Money {
	m, _ := valueobject.NewMoney(amount, inv.Currency)
	return m
}

// MarkSent transitions the invoice to SENT
func (inv *Invoice) MarkSent() error {
	if inv.Status == InvoiceStatusVoid {
		return shared.NewConflictError("Cannot send a VOID invoice")
	}

	inv.Status = InvoiceStatusSent
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// MarkVoid writes the invoice off. Blocked while payments exist: the money
// has to be refunded first, or the invoice marked paid instead.
func (inv *Invoice) MarkVoid() error {
	if inv.HasPayments() {
		return shared.NewConflictError("Cannot void an invoice with payments. Refund first, or mark it paid")
	}
	return inv.forceVoid()
}

// ForceVoid voids the invoice without the payment guard. Reserved for the
// freelancer-cancellation cascade, which only ever targets DRAFT and SENT
// invoices - those cannot carry payments, since any payment would already
// have moved them to PARTIAL or PAID.
func (inv *Invoice) ForceVoid() error {
	return inv.forceVoid()
}

func (inv *Invoice) forceVoid() error {
	if !inv.Status.IsVoidable() {
		return shared.NewConflictError("Invoice is already VOID")
	}

	inv.Status = InvoiceStatusVoid
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceVoidedEvent(inv))

	return nil
}

// SettleRemaining manually settles the invoice in full. When a balance
// remains it synthesizes an auto-settlement payment for exactly that balance,
// so amountPaid still equals the sum of payments.
func (inv *Invoice) SettleRemaining() (*Payment, error) {
	if inv.Status == InvoiceStatusVoid {
		return nil, shared.NewConflictError("Cannot settle a VOID invoice")
	}

	remaining, _ := inv.money(inv.Total).Sub(inv.money(inv.AmountPaid))
	var settlement *Payment
	if remaining.IsPositive() {
		payment := Payment{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			Amount:    remaining.Amount(),
			Method:    AutoSettleMethod,
			PaidAt:    time.Now(),
		}
		inv.Payments = append(inv.Payments, payment)
		settlement = &inv.Payments[len(inv.Payments)-1]
	}

	inv.AmountPaid = inv.Total
	inv.Status = InvoiceStatusPaid
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoicePaidEvent(inv))

	return settlement, nil
}

// HasPayments reports whether any payment has been recorded
func (inv *Invoice) HasPayments() bool {
	return len(inv.Payments) > 0
}

// CanDelete reports whether the invoice may be deleted. An invoice with
// payments is permanent; void it after refunding instead.
func (inv *Invoice) CanDelete() bool {
	return !inv.HasPayments()
}

// Outstanding returns total - amountPaid, floored at zero
func (inv *Invoice) Outstanding() decimal.Decimal {
	remaining, _ := inv.money(inv.Total).Sub(inv.money(inv.AmountPaid))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining.Amount()
}

// IsOverdue reports the derived OVERDUE state: an outstanding SENT or
// PARTIAL invoice past its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.Status != InvoiceStatusSent && inv.Status != InvoiceStatusPartial {
		return false
	}
	return now.After(inv.DueDate)
}

// DisplayNumber renders the invoice number with the user's prefix
func (inv *Invoice) DisplayNumber(prefix string) string {
	if prefix == "" {
		return fmt.Sprintf("%d", inv.Number)
	}
	return fmt.Sprintf("%s%d", prefix, inv.Number)
}
