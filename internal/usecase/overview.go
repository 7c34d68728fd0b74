package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

// OverviewUseCase aggregates the whole CRM for the dashboard. It never
// fails: when the store is unavailable it answers an empty overview.
type OverviewUseCase struct {
	Repos Repositories
	Log   *zap.Logger
	Now   func() time.Time
}

func NewOverviewUseCase(repos Repositories, log *zap.Logger) *OverviewUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &OverviewUseCase{Repos: repos, Log: log.Named("overview"), Now: time.Now}
}

func (uc *OverviewUseCase) Execute(ctx context.Context) *Overview {
	var (
		contacts     []*entity.Contact
		deals        []*entity.Deal
		tasks        []*entity.Task
		interactions []*entity.Interaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		contacts, err = uc.Repos.Contacts.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		deals, err = uc.Repos.Deals.List(gctx, entity.DealFilter{})
		return err
	})
	g.Go(func() (err error) {
		tasks, err = uc.Repos.Tasks.List(gctx, entity.TaskFilter{})
		return err
	})
	g.Go(func() (err error) {
		interactions, err = uc.Repos.Interactions.List(gctx, entity.InteractionFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		uc.Log.Warn("overview degraded to empty result", zap.Error(err))
		return emptyOverview()
	}

	attachContactRelations(contacts, deals, tasks)
	attachDealTasks(deals, tasks)

	return &Overview{
		Contacts:     contacts,
		Deals:        deals,
		Tasks:        tasks,
		Interactions: interactions,
		Summary:      entity.Summarize(contacts, deals, tasks, interactions, uc.Now()),
	}
}

func (uc *OverviewUseCase) Summary(ctx context.Context) entity.Summary {
	return uc.Execute(ctx).Summary
}

func emptyOverview() *Overview {
	return &Overview{
		Contacts:     []*entity.Contact{},
		Deals:        []*entity.Deal{},
		Tasks:        []*entity.Task{},
		Interactions: []*entity.Interaction{},
	}
}
