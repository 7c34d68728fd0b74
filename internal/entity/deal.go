package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Deal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Value         float64    `json:"value"`
	Probability   *int       `json:"probability,omitempty"`
	ExpectedClose *time.Time `json:"expectedClose,omitempty"`
	Stage         DealStage  `json:"stage"`
	Notes         *string    `json:"notes,omitempty"`
	ContactID     string     `json:"contactId"`
	CompanyID     *string    `json:"companyId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Contact      *ContactRef   `json:"contact,omitempty"`
	Company      *Company      `json:"company,omitempty"`
	Tasks        []Task        `json:"tasks,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

type DealRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewDeal(title, contactID string) (*Deal, error) {
	if title == "" {
		return nil, errors.New("deal title is required")
	}
	if contactID == "" {
		return nil, errors.New("deal contact is required")
	}
	now := time.Now().UTC()
	return &Deal{
		ID:        uuid.New().String(),
		Title:     title,
		Stage:     DealStageQualification,
		ContactID: contactID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Open reports whether the deal is still in the pipeline.
func (d *Deal) Open() bool {
	return !d.Stage.Closed()
}

func (d Deal) Plain() Deal {
	d.Contact = nil
	d.Company = nil
	d.Tasks = nil
	d.Interactions = nil
	return d
}

type DealFilter struct {
	ContactID string
}

type DealRepositoryInterface interface {
	Create(ctx context.Context, d *Deal) error
	Update(ctx context.Context, d *Deal) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Deal, error)
	// List returns deals with contact and company, newest first.
	List(ctx context.Context, filter DealFilter) ([]*Deal, error)
}
