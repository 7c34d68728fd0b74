package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Industry  *string   `json:"industry,omitempty"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCompany(name string, industry, website *string) (*Company, error) {
	if name == "" {
		return nil, errors.New("company name is required")
	}
	now := time.Now().UTC()
	return &Company{
		ID:        uuid.New().String(),
		Name:      name,
		Industry:  industry,
		Website:   website,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type CompanyRepositoryInterface interface {
	// UpsertByName inserts the company or, when the name exists, overwrites the
	// non-nil industry/website. It fills c.ID with the stored id and reports
	// whether a new row was created.
	UpsertByName(ctx context.Context, c *Company) (bool, error)
	Delete(ctx context.Context, id string) error
}
