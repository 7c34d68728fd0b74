package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/queue"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

func TestDeriveName(t *testing.T) {
	cases := []struct {
		email, first, last string
	}{
		{"jane.doe@example.com", "Jane", "Doe"},
		{"x@example.com", "X", "Lead"},
		{"JOHN_PAUL-jones@example.com", "John", "Paul Jones"},
		{"...@example.com", "Lead", "Landing"},
		{"maria.del.carmen@example.com", "Maria", "Del Carmen"},
		{"ana99@example.com", "Ana99", "Lead"},
		{"123abc@x.com", "123abc", "Lead"},
		{"jOHN.o'BRIEN@x.com", "John", "O Brien"},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			first, last := usecase.DeriveName(tc.email)
			assert.Equal(t, tc.first, first)
			assert.Equal(t, tc.last, last)
		})
	}
}

func TestCaptureLeadCreatesContact(t *testing.T) {
	ctx := context.Background()
	contacts := new(MockContactRepository)
	events := new(MockLeadPublisher)

	contacts.On("FindByEmail", mock.Anything, "jane.doe@example.com").Return(nil, entity.ErrNotFound)
	contacts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Contact")).Return(nil)
	events.On("PublishLeadCaptured", mock.Anything, mock.MatchedBy(func(p queue.LeadCapturedPayload) bool {
		return p.Email == "jane.doe@example.com" && p.FirstName == "Jane" && p.Source == "Landing Page"
	})).Return(nil)

	uc := usecase.NewCaptureLeadUseCase(contacts, events, zap.NewNop())
	out, err := uc.Execute(ctx, usecase.CaptureLeadInput{Email: usecase.T("  Jane.Doe@Example.COM ")})

	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "jane.doe@example.com", out.Contact.Email)
	assert.Equal(t, "Jane", out.Contact.FirstName)
	assert.Equal(t, "Doe", out.Contact.LastName)
	assert.Equal(t, entity.ContactStatusLead, out.Contact.Status)
	assert.Equal(t, usecase.DefaultLeadSource, *out.Contact.Source)
	assert.Equal(t, usecase.DefaultLeadNotes, *out.Contact.Notes)
	contacts.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCaptureLeadRejectsInvalidEmail(t *testing.T) {
	uc := usecase.NewCaptureLeadUseCase(new(MockContactRepository), nil, nil)

	for _, in := range []usecase.CaptureLeadInput{
		{},
		{Email: usecase.T("   ")},
		{Email: usecase.T("not-an-email")},
		{Email: usecase.NullText()},
	} {
		_, err := uc.Execute(context.Background(), in)
		var de *usecase.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, usecase.CodeValidation, de.Code)
		assert.Equal(t, "Necesitamos un email válido para guardar tu registro.", de.Message)
	}
}

func TestCaptureLeadOnlyFillsEmptyFields(t *testing.T) {
	existing := &entity.Contact{
		ID:        "c-1",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Source:    ptr("Referral"),
		Status:    entity.ContactStatusActive,
	}
	contacts := new(MockContactRepository)
	contacts.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)
	contacts.On("Update", mock.Anything, existing).Return(nil)

	uc := usecase.NewCaptureLeadUseCase(contacts, nil, nil)
	out, err := uc.Execute(context.Background(), usecase.CaptureLeadInput{
		Email:  usecase.T("jane@example.com"),
		Source: usecase.T("Instagram"),
		Notes:  usecase.T("Quiere el curso intensivo"),
	})

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, "Referral", *out.Contact.Source)
	assert.Equal(t, "Quiere el curso intensivo", *out.Contact.Notes)
	assert.Equal(t, entity.ContactStatusActive, out.Contact.Status)
	contacts.AssertExpectations(t)
}

func TestCaptureLeadSkipsUpdateWhenNothingIsBlank(t *testing.T) {
	existing := &entity.Contact{
		ID:     "c-1",
		Email:  "jane@example.com",
		Source: ptr("Referral"),
		Notes:  ptr("Llamar el lunes"),
	}
	contacts := new(MockContactRepository)
	contacts.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)

	uc := usecase.NewCaptureLeadUseCase(contacts, nil, nil)
	out, err := uc.Execute(context.Background(), usecase.CaptureLeadInput{Email: usecase.T("jane@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "Llamar el lunes", *out.Contact.Notes)
	contacts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCaptureLeadResolvesDuplicateRace(t *testing.T) {
	winner := &entity.Contact{ID: "c-9", Email: "race@example.com", Source: ptr("Landing Page"), Notes: ptr("x")}
	contacts := new(MockContactRepository)
	contacts.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, entity.ErrNotFound).Once()
	contacts.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)
	contacts.On("FindByEmail", mock.Anything, "race@example.com").Return(winner, nil).Once()
	events := new(MockLeadPublisher)

	uc := usecase.NewCaptureLeadUseCase(contacts, events, nil)
	out, err := uc.Execute(context.Background(), usecase.CaptureLeadInput{Email: usecase.T("race@example.com")})

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, "c-9", out.Contact.ID)
	events.AssertNotCalled(t, "PublishLeadCaptured", mock.Anything, mock.Anything)
}

func TestCaptureLeadPublishFailureDoesNotFail(t *testing.T) {
	contacts := new(MockContactRepository)
	contacts.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, entity.ErrNotFound)
	contacts.On("Create", mock.Anything, mock.Anything).Return(nil)
	events := new(MockLeadPublisher)
	events.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uc := usecase.NewCaptureLeadUseCase(contacts, events, nil)
	out, err := uc.Execute(context.Background(), usecase.CaptureLeadInput{Email: usecase.T("x@example.com")})

	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "X", out.Contact.FirstName)
	assert.Equal(t, "Lead", out.Contact.LastName)
}

func TestCaptureLeadPersistenceFailure(t *testing.T) {
	contacts := new(MockContactRepository)
	contacts.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	uc := usecase.NewCaptureLeadUseCase(contacts, nil, nil)
	_, err := uc.Execute(context.Background(), usecase.CaptureLeadInput{Email: usecase.T("x@example.com")})

	var te *usecase.TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "No se pudo registrar tu email. Intentalo nuevamente.", te.Message)
	assert.EqualError(t, te.Err, "connection refused")
}
