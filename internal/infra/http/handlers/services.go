package handlers

import (
	"context"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

type LeadCapturer interface {
	Execute(ctx context.Context, input usecase.CaptureLeadInput) (*usecase.CaptureLeadOutput, error)
}

type OverviewService interface {
	Execute(ctx context.Context) *usecase.Overview
	Summary(ctx context.Context) entity.Summary
}

type ContactService interface {
	List(ctx context.Context) ([]*entity.Contact, error)
	Get(ctx context.Context, id string) (*entity.Contact, error)
	Create(ctx context.Context, in usecase.CreateContactInput) (*entity.Contact, error)
	Update(ctx context.Context, id string, in usecase.UpdateContactInput) (*entity.Contact, error)
	Delete(ctx context.Context, id string) error
}

type DealService interface {
	List(ctx context.Context) ([]*entity.Deal, error)
	Get(ctx context.Context, id string) (*entity.Deal, error)
	Create(ctx context.Context, in usecase.CreateDealInput) (*entity.Deal, error)
	Update(ctx context.Context, id string, in usecase.UpdateDealInput) (*entity.Deal, error)
	UpdateByBody(ctx context.Context, in usecase.UpdateDealInput) (*entity.Deal, error)
	Delete(ctx context.Context, id string) error
	DeleteByBody(ctx context.Context, in usecase.IDInput) error
}

type TaskService interface {
	List(ctx context.Context) ([]*entity.Task, error)
	Get(ctx context.Context, id string) (*entity.Task, error)
	Create(ctx context.Context, in usecase.CreateTaskInput) (*entity.Task, error)
	Update(ctx context.Context, id string, in usecase.UpdateTaskInput) (*entity.Task, error)
	UpdateByBody(ctx context.Context, in usecase.UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteByBody(ctx context.Context, in usecase.IDInput) error
}

type InteractionService interface {
	List(ctx context.Context) ([]*entity.Interaction, error)
	Get(ctx context.Context, id string) (*entity.Interaction, error)
	Create(ctx context.Context, in usecase.CreateInteractionInput) (*entity.Interaction, error)
	Update(ctx context.Context, id string, in usecase.UpdateInteractionInput) (*entity.Interaction, error)
	Delete(ctx context.Context, id string) error
}
