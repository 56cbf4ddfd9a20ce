package models

import (
	"github.com/fcc/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	OwnedAggregateModel
	Name       string `gorm:"type:varchar(200);not null"`
	Email      string `gorm:"type:varchar(200);index"`
	Company    string `gorm:"type:varchar(200)"`
	Phone      string `gorm:"type:varchar(50)"`
	Address    string `gorm:"type:text"`
	Notes      string `gorm:"type:text"`
	IsArchived bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Email:              m.Email,
		Company:            m.Company,
		Phone:              m.Phone,
		Address:            m.Address,
		Notes:              m.Notes,
		IsArchived:         m.IsArchived,
	}
}

// ClientModelFromDomain builds a persistence model from a domain Client
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		Name:       c.Name,
		Email:      c.Email,
		Company:    c.Company,
		Phone:      c.Phone,
		Address:    c.Address,
		Notes:      c.Notes,
		IsArchived: c.IsArchived,
	}
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	return m
}
