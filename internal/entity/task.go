package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	ContactID   *string      `json:"contactId,omitempty"`
	DealID      *string      `json:"dealId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	Contact *ContactRef `json:"contact,omitempty"`
	Deal    *DealRef    `json:"deal,omitempty"`
}

func NewTask(title string) (*Task, error) {
	if title == "" {
		return nil, errors.New("task title is required")
	}
	now := time.Now().UTC()
	return &Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    TaskStatusOpen,
		Priority:  TaskPriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Overdue: due before now and not completed. Tasks without a due date never are.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

func (t Task) Plain() Task {
	t.Contact = nil
	t.Deal = nil
	return t
}

type TaskFilter struct {
	ContactID string
	DealID    string
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Task, error)
	// List orders by status (OPEN, IN_PROGRESS, COMPLETED), due date with
	// missing dates last, then newest first.
	List(ctx context.Context, filter TaskFilter) ([]*Task, error)
}
