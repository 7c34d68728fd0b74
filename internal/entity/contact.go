package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Phone     *string       `json:"phone,omitempty"`
	Position  *string       `json:"position,omitempty"`
	Source    *string       `json:"source,omitempty"`
	Notes     *string       `json:"notes,omitempty"`
	Status    ContactStatus `json:"status"`
	CompanyID *string       `json:"companyId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// Relations, filled by the use cases.
	Company      *Company      `json:"company,omitempty"`
	Deals        []Deal        `json:"deals,omitempty"`
	Tasks        []Task        `json:"tasks,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

// ContactRef is the slice of a contact embedded in deals, tasks and interactions.
type ContactRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

func NewContact(firstName, lastName, email string) (*Contact, error) {
	now := time.Now().UTC()
	c := &Contact{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Status:    ContactStatusLead,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Contact) Validate() error {
	if c.FirstName == "" {
		return errors.New("first name is required")
	}
	if c.LastName == "" {
		return errors.New("last name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if !c.Status.Valid() {
		return errors.New("invalid contact status")
	}
	return nil
}

func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Plain returns a copy without relations.
func (c Contact) Plain() Contact {
	c.Company = nil
	c.Deals = nil
	c.Tasks = nil
	c.Interactions = nil
	return c
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	// List returns every contact with its company, newest first.
	List(ctx context.Context) ([]*Contact, error)
}
