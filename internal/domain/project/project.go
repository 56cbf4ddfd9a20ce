package project

import (
	"time"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	StatusActive     ProjectStatus = "ACTIVE"
	StatusOnHold     ProjectStatus = "ON_HOLD"
	StatusCompleted  ProjectStatus = "COMPLETED"
	StatusHandedOver ProjectStatus = "HANDED_OVER"

	StatusCancelled             ProjectStatus = "CANCELLED"
	StatusCancelledByClient     ProjectStatus = "CANCELLED_BY_CLIENT"
	StatusCancelledByFreelancer ProjectStatus = "CANCELLED_BY_FREELANCER"
)

// IsValid checks if the status is a valid ProjectStatus
func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusOnHold, StatusCompleted, StatusHandedOver,
		StatusCancelled, StatusCancelledByClient, StatusCancelledByFreelancer:
		return true
	}
	return false
}

// String returns the string representation of ProjectStatus
func (s ProjectStatus) String() string {
	return string(s)
}

// IsCancelled reports whether the status is any of the cancelled variants
func (s ProjectStatus) IsCancelled() bool {
	return s == StatusCancelled || s == StatusCancelledByClient || s == StatusCancelledByFreelancer
}

// IsOperational reports whether the status is one of the four freely
// switchable working states. No ordering is enforced among them - the
// operator is trusted.
func (s ProjectStatus) IsOperational() bool {
	switch s {
	case StatusActive, StatusOnHold, StatusCompleted, StatusHandedOver:
		return true
	}
	return false
}

// CancelledBy identifies which party cancelled a project
type CancelledBy string

const (
	CancelledByClient     CancelledBy = "client"
	CancelledByFreelancer CancelledBy = "freelancer"
)

// IsValid checks if the cancel party is known
func (c CancelledBy) IsValid() bool {
	return c == CancelledByClient || c == CancelledByFreelancer
}

// BillingType determines how a project converts work into money
type BillingType string

const (
	BillingHourly BillingType = "HOURLY"
	BillingFixed  BillingType = "FIXED"
)

// IsValid checks if the billing type is known
func (b BillingType) IsValid() bool {
	return b == BillingHourly || b == BillingFixed
}

// String returns the string representation of BillingType
func (b BillingType) String() string {
	return string(b)
}

// Project is the aggregate root for a piece of client work. Its status
// machine governs the cancellation cascade over invoices and time entries.
type Project struct {
	shared.OwnedAggregateRoot
	ClientID     uuid.UUID        `json:"client_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	BillingType  BillingType      `json:"billing_type"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"` // required for HOURLY
	FixedFee     *decimal.Decimal `json:"fixed_fee,omitempty"`   // required for FIXED
	Status       ProjectStatus    `json:"status"`
	IsArchived   bool             `json:"is_archived"` // derived, never set directly
	HandedOverAt *time.Time       `json:"handed_over_at,omitempty"`
	CancelledAt  *time.Time       `json:"cancelled_at,omitempty"`
	CancelledBy  *CancelledBy     `json:"cancelled_by,omitempty"`
}

// NewProject creates an ACTIVE project. Hourly projects need a positive
// rate; fixed-fee projects need a non-negative fee.
func NewProject(userID, clientID uuid.UUID, name string, billingType BillingType, hourlyRate, fixedFee *decimal.Decimal) (*Project, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID is required")
	}
	if name == "" {
		return nil, shared.NewValidationError("Project name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Project name cannot exceed 200 characters")
	}
	if !billingType.IsValid() {
		return nil, shared.NewValidationError("Billing type must be HOURLY or FIXED")
	}
	if billingType == BillingHourly {
		if hourlyRate == nil || hourlyRate.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("Hourly projects require a positive hourly rate")
		}
	}
	if billingType == BillingFixed {
		if fixedFee == nil || fixedFee.IsNegative() {
			return nil, shared.NewValidationError("Fixed-fee projects require a non-negative fee")
		}
	}

	p := &Project{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		ClientID:           clientID,
		Name:               name,
		BillingType:        billingType,
		HourlyRate:         hourlyRate,
		FixedFee:           fixedFee,
		Status:             StatusActive,
	}

	p.AddDomainEvent(NewProjectCreatedEvent(p))

	return p, nil
}

// SetStatus moves the project between the four operational states.
// Archive is derived: true exactly when the project is handed over, and
// handedOverAt is stamped on entry and cleared on exit.
func (p *Project) SetStatus(target ProjectStatus) error {
	if !target.IsOperational() {
		return shared.NewValidationError("Status must be one of ACTIVE, ON_HOLD, COMPLETED, HANDED_OVER")
	}
	if p.Status.IsCancelled() {
		return shared.NewConflictError("Cannot change status of a cancelled project")
	}

	previous := p.Status
	p.Status = target
	if target == StatusHandedOver {
		now := time.Now()
		p.IsArchived = true
		p.HandedOverAt = &now
	} else {
		p.IsArchived = false
		p.HandedOverAt = nil
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProjectStatusChangedEvent(p, previous))

	return nil
}

// Cancel transitions the project to the party-specific cancelled state and
// archives it. Invoice side effects are the orchestrator's job; the
// aggregate only records who cancelled and when.
func (p *Project) Cancel(by CancelledBy) error {
	if !by.IsValid() {
		return shared.NewValidationError("cancelledBy must be \"client\" or \"freelancer\"")
	}
	if p.Status.IsCancelled() {
		return shared.NewConflictError("Project is already cancelled")
	}

	now := time.Now()
	previous := p.Status
	if by == CancelledByFreelancer {
		p.Status = StatusCancelledByFreelancer
	} else {
		p.Status = StatusCancelledByClient
	}
	p.IsArchived = true
	p.CancelledAt = &now
	p.CancelledBy = &by
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProjectCancelledEvent(p, previous))

	return nil
}

// SetDescription updates the free-form description
func (p *Project) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// UpdateRates updates billing parameters for the project's billing type
func (p *Project) UpdateRates(hourlyRate, fixedFee *decimal.Decimal) error {
	if p.BillingType == BillingHourly && hourlyRate != nil && hourlyRate.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Hourly rate must be positive")
	}
	if p.BillingType == BillingFixed && fixedFee != nil && fixedFee.IsNegative() {
		return shared.NewValidationError("Fixed fee cannot be negative")
	}

	if hourlyRate != nil {
		p.HourlyRate = hourlyRate
	}
	if fixedFee != nil {
		p.FixedFee = fixedFee
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
