package usecase

import (
	"context"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/queue"
)

type LeadEventPublisher interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}

// Repositories groups the stores the CRM use cases read and write.
type Repositories struct {
	Contacts     entity.ContactRepositoryInterface
	Companies    entity.CompanyRepositoryInterface
	Deals        entity.DealRepositoryInterface
	Tasks        entity.TaskRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
}
