package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type InteractionUseCase struct {
	Repos Repositories
	Log   *zap.Logger
	Now   func() time.Time
}

func NewInteractionUseCase(repos Repositories, log *zap.Logger) *InteractionUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &InteractionUseCase{Repos: repos, Log: log.Named("interactions"), Now: time.Now}
}

func (uc *InteractionUseCase) List(ctx context.Context) ([]*entity.Interaction, error) {
	items, err := uc.Repos.Interactions.List(ctx, entity.InteractionFilter{})
	if err != nil {
		return nil, interactionMessages.fail(interactionMessages.List, err)
	}
	return items, nil
}

func (uc *InteractionUseCase) Get(ctx context.Context, id string) (*entity.Interaction, error) {
	i, err := uc.Repos.Interactions.FindByID(ctx, id)
	if err != nil {
		return nil, interactionMessages.fail(interactionMessages.Get, err)
	}
	return i, nil
}

// Create logs an interaction; without a usable occurredAt it happened now.
func (uc *InteractionUseCase) Create(ctx context.Context, in CreateInteractionInput) (*entity.Interaction, error) {
	if errs := validateStruct(in); len(errs) > 0 {
		return nil, validationError(interactionMessages.Required, errs)
	}

	channel, _ := in.Channel.Get()
	summary, _ := in.Summary.Get()
	occurredAt, ok := in.OccurredAt.Date()
	if !ok {
		occurredAt = uc.Now().UTC()
	}
	interaction, err := entity.NewInteraction(channel, summary, occurredAt)
	if err != nil {
		return nil, validationError(interactionMessages.Required, nil)
	}
	interaction.ContactID = in.ContactID.Ptr()
	interaction.DealID = in.DealID.Ptr()

	if err := uc.Repos.Interactions.Create(ctx, interaction); err != nil {
		return nil, interactionMessages.fail(interactionMessages.Create, err)
	}
	return uc.reload(ctx, interaction.ID, interactionMessages.Create)
}

// Update patches an interaction. An explicit null occurredAt resets it to now.
func (uc *InteractionUseCase) Update(ctx context.Context, id string, in UpdateInteractionInput) (*entity.Interaction, error) {
	interaction, err := uc.Repos.Interactions.FindByID(ctx, id)
	if err != nil {
		return nil, interactionMessages.fail(interactionMessages.Update, err)
	}

	now := uc.Now().UTC()
	if v, ok := in.Channel.Get(); ok {
		interaction.Channel = v
	}
	if v, ok := in.Summary.Get(); ok {
		interaction.Summary = v
	}
	if in.OccurredAt.Null {
		interaction.OccurredAt = now
	} else if d, ok := in.OccurredAt.Date(); ok {
		interaction.OccurredAt = d
	}
	setOrClear(&interaction.ContactID, in.ContactID)
	setOrClear(&interaction.DealID, in.DealID)
	interaction.UpdatedAt = now

	if err := uc.Repos.Interactions.Update(ctx, interaction); err != nil {
		return nil, interactionMessages.fail(interactionMessages.Update, err)
	}
	return uc.reload(ctx, id, interactionMessages.Update)
}

func (uc *InteractionUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repos.Interactions.Delete(ctx, id); err != nil {
		return interactionMessages.fail(interactionMessages.Delete, err)
	}
	return nil
}

func (uc *InteractionUseCase) reload(ctx context.Context, id, operation string) (*entity.Interaction, error) {
	i, err := uc.Repos.Interactions.FindByID(ctx, id)
	if err != nil {
		return nil, interactionMessages.fail(operation, err)
	}
	return i, nil
}
