package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

var fixedNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func TestCreateInteractionDefaultsOccurredAt(t *testing.T) {
	m, repos := newRepoMocks()
	var created *entity.Interaction
	m.interactions.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Interaction)
	}).Return(nil)
	m.interactions.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Interaction{ID: "i-1"}, nil)

	uc := usecase.NewInteractionUseCase(repos, nil)
	uc.Now = func() time.Time { return fixedNow }
	_, err := uc.Create(context.Background(), decode[usecase.CreateInteractionInput](t,
		`{"channel":"WhatsApp","summary":"Pidió precios","occurredAt":"ayer","dealId":"d-1"}`))

	require.NoError(t, err)
	assert.Equal(t, fixedNow, created.OccurredAt)
	assert.Equal(t, "d-1", *created.DealID)
	assert.Nil(t, created.ContactID)
}

func TestCreateInteractionRequiresChannelAndSummary(t *testing.T) {
	_, repos := newRepoMocks()
	uc := usecase.NewInteractionUseCase(repos, nil)

	_, err := uc.Create(context.Background(), decode[usecase.CreateInteractionInput](t, `{"channel":"Email","summary":42}`))

	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "El canal y el resumen son obligatorios", de.Message)
}

func TestUpdateInteractionNullOccurredAtResetsToNow(t *testing.T) {
	m, repos := newRepoMocks()
	current := &entity.Interaction{
		ID:         "i-1",
		Channel:    "Llamada",
		Summary:    "Primer contacto",
		OccurredAt: fixedNow.AddDate(0, -1, 0),
		ContactID:  ptr("c-1"),
	}
	m.interactions.On("FindByID", mock.Anything, "i-1").Return(current, nil)
	m.interactions.On("Update", mock.Anything, current).Return(nil)

	uc := usecase.NewInteractionUseCase(repos, nil)
	uc.Now = func() time.Time { return fixedNow }
	i, err := uc.Update(context.Background(), "i-1", decode[usecase.UpdateInteractionInput](t,
		`{"occurredAt":null,"summary":"Seguimiento","contactId":null}`))

	require.NoError(t, err)
	assert.Equal(t, fixedNow, i.OccurredAt)
	assert.Equal(t, "Seguimiento", i.Summary)
	assert.Equal(t, "Llamada", i.Channel)
	assert.Nil(t, i.ContactID)
}
