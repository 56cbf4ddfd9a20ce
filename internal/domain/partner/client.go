package partner

import (
	"regexp"
	"time"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a billable counterparty in a freelancer's registry.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.OwnedAggregateRoot
	Name       string `gorm:"type:varchar(200);not null"`
	Email      string `gorm:"type:varchar(200);index"`
	Company    string `gorm:"type:varchar(200)"`
	Phone      string `gorm:"type:varchar(50)"`
	Address    string `gorm:"type:text"`
	Notes      string `gorm:"type:text"`
	IsArchived bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(userID uuid.UUID, name, email, company string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}

	client := &Client{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Email:              email,
		Company:            company,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Update updates the client's basic information
func (c *Client) Update(name, email, company string) error {
	if err := validateClientName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Name = name
	c.Email = email
	c.Company = company
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the client's phone and address
func (c *Client) SetContact(phone, address string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewValidationError("Address cannot exceed 500 characters")
	}

	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the client's notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Archive hides the client from active listings. Existing projects and
// invoices keep referencing it.
func (c *Client) Archive() error {
	if c.IsArchived {
		return shared.NewConflictError("Client is already archived")
	}

	c.IsArchived = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientArchivedEvent(c))

	return nil
}

// Unarchive restores an archived client
func (c *Client) Unarchive() error {
	if !c.IsArchived {
		return shared.NewConflictError("Client is not archived")
	}

	c.IsArchived = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateClientName(name string) error {
	if name == "" {
		return shared.NewValidationError("Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Client name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewValidationError("Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}
