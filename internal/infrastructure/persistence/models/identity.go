package models

import (
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/shared/valueobject"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name         string     `gorm:"type:varchar(200);not null"`
	CompanyName  string     `gorm:"type:varchar(200)"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		Name:              m.Name,
		CompanyName:       m.CompanyName,
		PasswordHash:      m.PasswordHash,
		LastLoginAt:       m.LastLoginAt,
	}
}

// UserModelFromDomain builds a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		Name:         u.Name,
		CompanyName:  u.CompanyName,
		PasswordHash: u.PasswordHash,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// SettingsModel is the persistence model for per-user Settings.
type SettingsModel struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Rounding      string          `gorm:"type:varchar(20);not null;default:'NONE'"`
	Terms         string          `gorm:"type:varchar(20);not null;default:'NET_15'"`
	InvoicePrefix string          `gorm:"type:varchar(20)"`
	NextNumber    int             `gorm:"not null;default:1"`
	InvoiceNotes  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "user_settings"
}

// ToDomain converts the persistence model to domain Settings
func (m *SettingsModel) ToDomain() *identity.Settings {
	return &identity.Settings{
		BaseEntity:    m.BaseModel.ToDomain(),
		UserID:        m.UserID,
		Currency:      valueobject.Currency(m.Currency),
		TaxRate:       m.TaxRate,
		Rounding:      timesheet.RoundingPolicy(m.Rounding),
		Terms:         billing.PaymentTerms(m.Terms),
		InvoicePrefix: m.InvoicePrefix,
		NextNumber:    m.NextNumber,
		InvoiceNotes:  m.InvoiceNotes,
	}
}

// SettingsModelFromDomain builds a persistence model from domain Settings
func SettingsModelFromDomain(s *identity.Settings) *SettingsModel {
	m := &SettingsModel{
		UserID:        s.UserID,
		Currency:      s.Currency.String(),
		TaxRate:       s.TaxRate,
		Rounding:      s.Rounding.String(),
		Terms:         s.Terms.String(),
		InvoicePrefix: s.InvoicePrefix,
		NextNumber:    s.NextNumber,
		InvoiceNotes:  s.InvoiceNotes,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
