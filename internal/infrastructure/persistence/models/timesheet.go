package models

import (
	"time"

	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
)

// TimeEntryModel is the persistence model for the TimeEntry aggregate.
// A partial unique index on (user_id) where ended_at is null enforces the
// single running timer at the database level; see the migrations.
type TimeEntryModel struct {
	OwnedAggregateModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description string     `gorm:"type:text"`
	StartedAt   time.Time  `gorm:"not null;index"`
	EndedAt     *time.Time `gorm:"index"`
	DurationMin *int       `gorm:""`
	Billed      bool       `gorm:"not null;default:false;index"`
	InvoiceID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TimeEntryModel) TableName() string {
	return "time_entries"
}

// ToDomain converts the persistence model to a domain TimeEntry
func (m *TimeEntryModel) ToDomain() *timesheet.TimeEntry {
	return &timesheet.TimeEntry{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		ProjectID:          m.ProjectID,
		Description:        m.Description,
		StartedAt:          m.StartedAt,
		EndedAt:            m.EndedAt,
		DurationMin:        m.DurationMin,
		Billed:             m.Billed,
		InvoiceID:          m.InvoiceID,
	}
}

// TimeEntryModelFromDomain builds a persistence model from a domain TimeEntry
func TimeEntryModelFromDomain(e *timesheet.TimeEntry) *TimeEntryModel {
	m := &TimeEntryModel{
		ProjectID:   e.ProjectID,
		Description: e.Description,
		StartedAt:   e.StartedAt,
		EndedAt:     e.EndedAt,
		DurationMin: e.DurationMin,
		Billed:      e.Billed,
		InvoiceID:   e.InvoiceID,
	}
	m.FromDomainOwnedAggregateRoot(e.OwnedAggregateRoot)
	return m
}
