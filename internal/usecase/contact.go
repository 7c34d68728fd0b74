package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type ContactUseCase struct {
	Repos Repositories
	Log   *zap.Logger
}

func NewContactUseCase(repos Repositories, log *zap.Logger) *ContactUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactUseCase{Repos: repos, Log: log.Named("contacts")}
}

// List returns every contact with its company, deals and tasks.
func (uc *ContactUseCase) List(ctx context.Context) ([]*entity.Contact, error) {
	var (
		contacts []*entity.Contact
		deals    []*entity.Deal
		tasks    []*entity.Task
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
	if err := g.Wait(); err != nil {
		return nil, contactMessages.fail(contactMessages.List, err)
	}
	attachContactRelations(contacts, deals, tasks)
	return contacts, nil
}

// Get returns the contact with company, deals, tasks and interactions.
func (uc *ContactUseCase) Get(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, contactMessages.fail(contactMessages.Get, err)
	}
	return c, nil
}

func (uc *ContactUseCase) load(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := uc.Repos.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		deals        []*entity.Deal
		tasks        []*entity.Task
		interactions []*entity.Interaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deals, err = uc.Repos.Deals.List(gctx, entity.DealFilter{ContactID: id})
		return err
	})
	g.Go(func() (err error) {
		tasks, err = uc.Repos.Tasks.List(gctx, entity.TaskFilter{ContactID: id})
		return err
	})
	g.Go(func() (err error) {
		interactions, err = uc.Repos.Interactions.List(gctx, entity.InteractionFilter{ContactID: id})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.Deals = plainDeals(deals)
	c.Tasks = plainTasks(tasks)
	c.Interactions = plainInteractions(interactions)
	return c, nil
}

// Create stores a contact. A company given by name is upserted first and
// removed again if it was new and the contact could not be stored.
func (uc *ContactUseCase) Create(ctx context.Context, in CreateContactInput) (*entity.Contact, error) {
	if errs := validateStruct(in); len(errs) > 0 {
		return nil, validationError(contactMessages.Required, errs)
	}

	firstName, _ := in.FirstName.Get()
	lastName, _ := in.LastName.Get()
	email, _ := in.Email.Get()
	contact, err := entity.NewContact(firstName, lastName, email)
	if err != nil {
		return nil, validationError(contactMessages.Required, nil)
	}
	contact.Phone = in.Phone.Ptr()
	contact.Position = in.Position.Ptr()
	contact.Source = in.Source.Ptr()
	contact.Notes = in.Notes.Ptr()
	if raw, ok := in.Status.Get(); ok {
		if status, ok := entity.ParseContactStatus(raw); ok {
			contact.Status = status
		}
	}

	tx := NewTransaction(uc.Log)
	if companyID, ok := in.CompanyID.Get(); ok {
		contact.CompanyID = &companyID
	} else if name, industry, website, ok := in.company(); ok {
		company, err := entity.NewCompany(name, industry, website)
		if err != nil {
			return nil, validationError(contactMessages.Required, nil)
		}
		created := false
		tx.AddOperation("upsert_company",
			func(ctx context.Context) (err error) {
				created, err = uc.Repos.Companies.UpsertByName(ctx, company)
				if err == nil {
					contact.CompanyID = &company.ID
				}
				return err
			},
			func(ctx context.Context) error {
				if !created {
					return nil
				}
				return uc.Repos.Companies.Delete(ctx, company.ID)
			},
		)
	}
	tx.AddOperation("create_contact", func(ctx context.Context) error {
		return uc.Repos.Contacts.Create(ctx, contact)
	}, nil)

	if err := tx.Execute(ctx); err != nil {
		return nil, contactMessages.fail(contactMessages.Create, err)
	}

	stored, err := uc.Repos.Contacts.FindByID(ctx, contact.ID)
	if err != nil {
		return nil, contactMessages.fail(contactMessages.Create, err)
	}
	return stored, nil
}

func (uc *ContactUseCase) Update(ctx context.Context, id string, in UpdateContactInput) (*entity.Contact, error) {
	contact, err := uc.Repos.Contacts.FindByID(ctx, id)
	if err != nil {
		return nil, contactMessages.fail(contactMessages.Update, err)
	}

	in.apply(contact)
	contact.UpdatedAt = time.Now().UTC()

	if err := uc.Repos.Contacts.Update(ctx, contact); err != nil {
		return nil, contactMessages.fail(contactMessages.Update, err)
	}

	stored, err := uc.load(ctx, id)
	if err != nil {
		return nil, contactMessages.fail(contactMessages.Update, err)
	}
	return stored, nil
}

func (in UpdateContactInput) apply(c *entity.Contact) {
	if v, ok := in.FirstName.Get(); ok {
		c.FirstName = v
	}
	if v, ok := in.LastName.Get(); ok {
		c.LastName = v
	}
	if v, ok := in.Email.Get(); ok {
		c.Email = v
	}
	setIfPresent(&c.Phone, in.Phone)
	setIfPresent(&c.Position, in.Position)
	setIfPresent(&c.Source, in.Source)
	setIfPresent(&c.Notes, in.Notes)
	if raw, ok := in.Status.Get(); ok {
		if status, ok := entity.ParseContactStatus(raw); ok {
			c.Status = status
		}
	}
	setOrClear(&c.CompanyID, in.CompanyID)
}

func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repos.Contacts.Delete(ctx, id); err != nil {
		return contactMessages.fail(contactMessages.Delete, err)
	}
	return nil
}

// setIfPresent overwrites *dst with a non-empty value; absent, empty and
// null members leave it as it is.
func setIfPresent(dst **string, t Text) {
	if v, ok := t.Get(); ok {
		*dst = &v
	}
}

// setOrClear is setIfPresent for nullable references: null clears them.
func setOrClear(dst **string, t Text) {
	if t.Null {
		*dst = nil
		return
	}
	setIfPresent(dst, t)
}

// setDateOrClear applies a date member. Unparseable dates are skipped.
func setDateOrClear(dst **time.Time, t Text) {
	if t.Null {
		*dst = nil
		return
	}
	if d, ok := t.Date(); ok {
		*dst = &d
	}
}
