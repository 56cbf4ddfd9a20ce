package models

import (
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
// Items and payments always load and save together with the invoice.
type InvoiceModel struct {
	OwnedAggregateModel
	Number     int                `gorm:"not null;uniqueIndex:idx_invoice_user_number,priority:2"`
	ClientID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProjectID  *uuid.UUID         `gorm:"type:uuid;index"`
	Currency   string             `gorm:"type:varchar(3);not null"`
	IssueDate  time.Time          `gorm:"not null;index"`
	DueDate    time.Time          `gorm:"not null;index"`
	Subtotal   decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Tax        decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Total      decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	AmountPaid decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Status     string             `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes      string             `gorm:"type:text"`
	Items      []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments   []PaymentModel     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for invoice line items.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// PaymentModel is the persistence model for the append-only payment records.
type PaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method    string          `gorm:"type:varchar(100)"`
	Note      string          `gorm:"type:text"`
	PaidAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	items := make([]billing.InvoiceItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = billing.InvoiceItem{
			ID:          it.ID,
			InvoiceID:   it.InvoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		}
	}

	payments := make([]billing.Payment, len(m.Payments))
	for i, p := range m.Payments {
		payments[i] = billing.Payment{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			Amount:    p.Amount,
			Method:    p.Method,
			Note:      p.Note,
			PaidAt:    p.PaidAt,
		}
	}

	return &billing.Invoice{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Number:             m.Number,
		ClientID:           m.ClientID,
		ProjectID:          m.ProjectID,
		Currency:           valueobject.Currency(m.Currency),
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		Subtotal:           m.Subtotal,
		Tax:                m.Tax,
		Total:              m.Total,
		AmountPaid:         m.AmountPaid,
		Status:             billing.InvoiceStatus(m.Status),
		Notes:              m.Notes,
		Items:              items,
		Payments:           payments,
	}
}

// InvoiceModelFromDomain builds a persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	items := make([]InvoiceItemModel, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemModel{
			ID:          it.ID,
			InvoiceID:   it.InvoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		}
	}

	payments := make([]PaymentModel, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentModel{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			Amount:    p.Amount,
			Method:    p.Method,
			Note:      p.Note,
			PaidAt:    p.PaidAt,
		}
	}

	m := &InvoiceModel{
		Number:     inv.Number,
		ClientID:   inv.ClientID,
		ProjectID:  inv.ProjectID,
		Currency:   inv.Currency.String(),
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		Total:      inv.Total,
		AmountPaid: inv.AmountPaid,
		Status:     inv.Status.String(),
		Notes:      inv.Notes,
		Items:      items,
		Payments:   payments,
	}
	m.FromDomainOwnedAggregateRoot(inv.OwnedAggregateRoot)
	return m
}
