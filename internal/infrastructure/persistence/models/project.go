package models

import (
	"time"

	"github.com/fcc/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for the Project aggregate.
type ProjectModel struct {
	OwnedAggregateModel
	ClientID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name         string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	BillingType  string           `gorm:"type:varchar(20);not null"`
	HourlyRate   *decimal.Decimal `gorm:"type:decimal(18,2)"`
	FixedFee     *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Status       string           `gorm:"type:varchar(30);not null;default:'ACTIVE';index"`
	IsArchived   bool             `gorm:"not null;default:false;index"`
	HandedOverAt *time.Time       `gorm:""`
	CancelledAt  *time.Time       `gorm:""`
	CancelledBy  *string          `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project
func (m *ProjectModel) ToDomain() *project.Project {
	var cancelledBy *project.CancelledBy
	if m.CancelledBy != nil {
		cb := project.CancelledBy(*m.CancelledBy)
		cancelledBy = &cb
	}

	return &project.Project{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		ClientID:           m.ClientID,
		Name:               m.Name,
		Description:        m.Description,
		BillingType:        project.BillingType(m.BillingType),
		HourlyRate:         m.HourlyRate,
		FixedFee:           m.FixedFee,
		Status:             project.ProjectStatus(m.Status),
		IsArchived:         m.IsArchived,
		HandedOverAt:       m.HandedOverAt,
		CancelledAt:        m.CancelledAt,
		CancelledBy:        cancelledBy,
	}
}

// ProjectModelFromDomain builds a persistence model from a domain Project
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	var cancelledBy *string
	if p.CancelledBy != nil {
		s := string(*p.CancelledBy)
		cancelledBy = &s
	}

	m := &ProjectModel{
		ClientID:     p.ClientID,
		Name:         p.Name,
		Description:  p.Description,
		BillingType:  p.BillingType.String(),
		HourlyRate:   p.HourlyRate,
		FixedFee:     p.FixedFee,
		Status:       p.Status.String(),
		IsArchived:   p.IsArchived,
		HandedOverAt: p.HandedOverAt,
		CancelledAt:  p.CancelledAt,
		CancelledBy:  cancelledBy,
	}
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	return m
}
