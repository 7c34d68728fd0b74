package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RecentInteractionWindow bounds what the overview counts as a recent interaction.
const RecentInteractionWindow = 14 * 24 * time.Hour

type Interaction struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurredAt"`
	ContactID  *string   `json:"contactId,omitempty"`
	DealID     *string   `json:"dealId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Contact *ContactRef `json:"contact,omitempty"`
	Deal    *DealRef    `json:"deal,omitempty"`
}

func NewInteraction(channel, summary string, occurredAt time.Time) (*Interaction, error) {
	if channel == "" || summary == "" {
		return nil, errors.New("interaction channel and summary are required")
	}
	now := time.Now().UTC()
	if occurredAt.IsZero() {
		occurredAt = now
	}
	return &Interaction{
		ID:         uuid.New().String(),
		Channel:    channel,
		Summary:    summary,
		OccurredAt: occurredAt.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (i *Interaction) Recent(now time.Time) bool {
	return !i.OccurredAt.Before(now.Add(-RecentInteractionWindow))
}

func (i Interaction) Plain() Interaction {
	i.Contact = nil
	i.Deal = nil
	return i
}

type InteractionFilter struct {
	ContactID string
	DealID    string
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, i *Interaction) error
	Update(ctx context.Context, i *Interaction) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Interaction, error)
	// List returns interactions with contact and deal, most recent occurrence first.
	List(ctx context.Context, filter InteractionFilter) ([]*Interaction, error)
}
