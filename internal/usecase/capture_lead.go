package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/queue"
)

const (
	DefaultLeadSource = "Landing Page"
	DefaultLeadNotes  = "Registro automático desde la landing page"

	msgLeadInvalidEmail = "Necesitamos un email válido para guardar tu registro."
	msgLeadFailed       = "No se pudo registrar tu email. Intentalo nuevamente."
)

var nameSeparators = regexp.MustCompile(`[^a-zA-Z0-9]+`)

type CaptureLeadUseCase struct {
	Contacts entity.ContactRepositoryInterface
	Events   LeadEventPublisher
	Log      *zap.Logger
}

func NewCaptureLeadUseCase(contacts entity.ContactRepositoryInterface, events LeadEventPublisher, log *zap.Logger) *CaptureLeadUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CaptureLeadUseCase{Contacts: contacts, Events: events, Log: log.Named("leads")}
}

// Execute upserts the contact behind a landing page signup. An existing
// contact only gets source and notes filled in when they are still empty.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	if errs := validateStruct(input); len(errs) > 0 {
		return nil, validationError(msgLeadInvalidEmail, errs)
	}

	email, _ := input.Email.Get()
	email = strings.ToLower(email)
	source := valueOr(input.Source, DefaultLeadSource)
	notes := valueOr(input.Notes, DefaultLeadNotes)

	existing, err := uc.Contacts.FindByEmail(ctx, email)
	if err == nil {
		return uc.fillBlanks(ctx, existing, source, notes)
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, databaseError(msgLeadFailed, err)
	}

	firstName, lastName := DeriveName(email)
	contact, err := entity.NewContact(firstName, lastName, email)
	if err != nil {
		return nil, validationError(msgLeadInvalidEmail, nil)
	}
	contact.Source = &source
	contact.Notes = &notes

	if err := uc.Contacts.Create(ctx, contact); err != nil {
		if !errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, databaseError(msgLeadFailed, err)
		}
		// lost the race against a concurrent signup with the same email
		existing, ferr := uc.Contacts.FindByEmail(ctx, email)
		if ferr != nil {
			return nil, databaseError(msgLeadFailed, ferr)
		}
		return uc.fillBlanks(ctx, existing, source, notes)
	}

	uc.publish(ctx, contact)
	return &CaptureLeadOutput{Contact: contact, Created: true}, nil
}

func (uc *CaptureLeadUseCase) fillBlanks(ctx context.Context, c *entity.Contact, source, notes string) (*CaptureLeadOutput, error) {
	changed := false
	if c.Source == nil || *c.Source == "" {
		c.Source = &source
		changed = true
	}
	if c.Notes == nil || *c.Notes == "" {
		c.Notes = &notes
		changed = true
	}
	if changed {
		c.UpdatedAt = time.Now().UTC()
		if err := uc.Contacts.Update(ctx, c); err != nil {
			return nil, databaseError(msgLeadFailed, err)
		}
	}
	return &CaptureLeadOutput{Contact: c}, nil
}

func (uc *CaptureLeadUseCase) publish(ctx context.Context, c *entity.Contact) {
	if uc.Events == nil {
		return
	}
	payload := queue.LeadCapturedPayload{
		ContactID:  c.ID,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Source:     valueOrEmpty(c.Source),
		CapturedAt: c.CreatedAt,
	}
	if err := uc.Events.PublishLeadCaptured(ctx, payload); err != nil {
		uc.Log.Warn("lead stored but event not published",
			zap.String("contact_id", c.ID),
			zap.Error(err),
		)
	}
}

// DeriveName builds a first and last name from the local part of an email:
// runs of non alphanumeric characters separate tokens, each token gets its
// first character upper-cased and the rest lower-cased, and the first token is
// the first name.
func DeriveName(email string) (firstName, lastName string) {
	local, _, _ := strings.Cut(email, "@")
	tokens := strings.Fields(nameSeparators.ReplaceAllString(local, " "))

	upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)
	for i, t := range tokens {
		tokens[i] = upper.String(t[:1]) + lower.String(t[1:])
	}

	switch len(tokens) {
	case 0:
		return "Lead", "Landing"
	case 1:
		return tokens[0], "Lead"
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}

func valueOr(t Text, fallback string) string {
	if v, ok := t.Get(); ok {
		return v
	}
	return fallback
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
