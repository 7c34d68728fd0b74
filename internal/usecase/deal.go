package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type DealUseCase struct {
	Repos Repositories
	Log   *zap.Logger
}

func NewDealUseCase(repos Repositories, log *zap.Logger) *DealUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &DealUseCase{Repos: repos, Log: log.Named("deals")}
}

// List returns every deal with its contact, company and tasks.
func (uc *DealUseCase) List(ctx context.Context) ([]*entity.Deal, error) {
	var (
		deals []*entity.Deal
		tasks []*entity.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deals, err = uc.Repos.Deals.List(gctx, entity.DealFilter{})
		return err
	})
	g.Go(func() (err error) {
		tasks, err = uc.Repos.Tasks.List(gctx, entity.TaskFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dealMessages.fail(dealMessages.List, err)
	}
	attachDealTasks(deals, tasks)
	return deals, nil
}

func (uc *DealUseCase) Get(ctx context.Context, id string) (*entity.Deal, error) {
	d, err := uc.load(ctx, id)
	if err != nil {
		return nil, dealMessages.fail(dealMessages.Get, err)
	}
	return d, nil
}

func (uc *DealUseCase) load(ctx context.Context, id string) (*entity.Deal, error) {
	d, err := uc.Repos.Deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var (
		tasks        []*entity.Task
		interactions []*entity.Interaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tasks, err = uc.Repos.Tasks.List(gctx, entity.TaskFilter{DealID: id})
		return err
	})
	g.Go(func() (err error) {
		interactions, err = uc.Repos.Interactions.List(gctx, entity.InteractionFilter{DealID: id})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Tasks = plainTasks(tasks)
	d.Interactions = plainInteractions(interactions)
	return d, nil
}

// Create stores a deal. A missing or unparseable value becomes 0 and an
// unusable probability is left empty.
func (uc *DealUseCase) Create(ctx context.Context, in CreateDealInput) (*entity.Deal, error) {
	if errs := validateStruct(in); len(errs) > 0 {
		return nil, validationError(dealMessages.Required, errs)
	}

	title, _ := in.Title.Get()
	contactID, _ := in.ContactID.Get()
	deal, err := entity.NewDeal(title, contactID)
	if err != nil {
		return nil, validationError(dealMessages.Required, nil)
	}
	if v, ok := in.Value.Get(); ok {
		deal.Value = v
	}
	if p, ok := probability(in.Probability); ok {
		deal.Probability = &p
	}
	if d, ok := in.ExpectedClose.Date(); ok {
		deal.ExpectedClose = &d
	}
	if raw, ok := in.Stage.Get(); ok {
		if stage, ok := entity.ParseDealStage(raw); ok {
			deal.Stage = stage
		}
	}
	deal.Notes = in.Notes.Ptr()
	deal.CompanyID = in.CompanyID.Ptr()

	if err := uc.Repos.Deals.Create(ctx, deal); err != nil {
		return nil, dealMessages.fail(dealMessages.Create, err)
	}
	stored, err := uc.Repos.Deals.FindByID(ctx, deal.ID)
	if err != nil {
		return nil, dealMessages.fail(dealMessages.Create, err)
	}
	return stored, nil
}

func (uc *DealUseCase) Update(ctx context.Context, id string, in UpdateDealInput) (*entity.Deal, error) {
	deal, err := uc.Repos.Deals.FindByID(ctx, id)
	if err != nil {
		return nil, dealMessages.fail(dealMessages.Update, err)
	}

	in.apply(deal)
	deal.UpdatedAt = time.Now().UTC()

	if err := uc.Repos.Deals.Update(ctx, deal); err != nil {
		return nil, dealMessages.fail(dealMessages.Update, err)
	}
	stored, err := uc.load(ctx, id)
	if err != nil {
		return nil, dealMessages.fail(dealMessages.Update, err)
	}
	return stored, nil
}

// UpdateByBody is Update for the collection route, where the id travels in the body.
func (uc *DealUseCase) UpdateByBody(ctx context.Context, in UpdateDealInput) (*entity.Deal, error) {
	id, ok := in.TargetID()
	if !ok {
		return nil, dealMessages.missingID()
	}
	return uc.Update(ctx, id, in)
}

func (in UpdateDealInput) apply(d *entity.Deal) {
	if v, ok := in.Title.Get(); ok {
		d.Title = v
	}
	if v, ok := in.Value.Get(); ok {
		d.Value = v
	}
	if in.Probability.Null {
		d.Probability = nil
	} else if p, ok := probability(in.Probability); ok {
		d.Probability = &p
	}
	setDateOrClear(&d.ExpectedClose, in.ExpectedClose)
	if raw, ok := in.Stage.Get(); ok {
		if stage, ok := entity.ParseDealStage(raw); ok {
			d.Stage = stage
		}
	}
	setIfPresent(&d.Notes, in.Notes)
	if v, ok := in.ContactID.Get(); ok {
		d.ContactID = v
	}
	setOrClear(&d.CompanyID, in.CompanyID)
}

func (uc *DealUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repos.Deals.Delete(ctx, id); err != nil {
		return dealMessages.fail(dealMessages.Delete, err)
	}
	return nil
}

func (uc *DealUseCase) DeleteByBody(ctx context.Context, in IDInput) error {
	id, ok := in.TargetID()
	if !ok {
		return dealMessages.missingID()
	}
	return uc.Delete(ctx, id)
}
