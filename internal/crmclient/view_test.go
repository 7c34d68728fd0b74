package crmclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

func ptr(s string) *string { return &s }

func sampleView() *View {
	return &View{
		Contacts: []*entity.Contact{
			{ID: "c1", FirstName: "Ana", Status: entity.ContactStatusActive},
			{ID: "c2", FirstName: "Luis", Status: entity.ContactStatusLead},
		},
		Deals: []*entity.Deal{
			{ID: "d1", Title: "Plan anual", ContactID: "c1", Stage: entity.DealStageProposal, Value: 1000},
			{ID: "d2", Title: "Upsell", ContactID: "c2", Stage: entity.DealStageWon, Value: 500},
			{ID: "d3", Title: "Piloto", ContactID: "c1", Stage: entity.DealStageProposal, Value: 250},
		},
		Tasks: []*entity.Task{
			{ID: "t1", Title: "Llamar", ContactID: ptr("c1")},
			{ID: "t2", Title: "Enviar propuesta", DealID: ptr("d2")},
			{ID: "t3", Title: "Suelta"},
		},
		Interactions: []*entity.Interaction{
			{ID: "i1", Channel: "EMAIL", ContactID: ptr("c1")},
		},
	}
}

func contactIDs(v *View) []string {
	var ids []string
	for _, c := range v.Contacts {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestApplyMutationUpsertsToFront(t *testing.T) {
	v := sampleView()

	v.ApplyMutation(&Envelope{Contact: &entity.Contact{ID: "c2", FirstName: "Luis María"}})
	assert.Equal(t, []string{"c2", "c1"}, contactIDs(v))
	assert.Equal(t, "Luis María", v.Contacts[0].FirstName)

	v.ApplyMutation(&Envelope{Contact: &entity.Contact{ID: "c9"}})
	assert.Equal(t, []string{"c9", "c2", "c1"}, contactIDs(v))

	v.ApplyMutation(&Envelope{Deal: &entity.Deal{ID: "d3", Stage: entity.DealStageWon}})
	require.Len(t, v.Deals, 3)
	assert.Equal(t, "d3", v.Deals[0].ID)
	assert.Equal(t, entity.DealStageWon, v.Deals[0].Stage)

	v.ApplyMutation(nil)
	assert.Len(t, v.Contacts, 3)
}

func TestRemoveCascadesLocally(t *testing.T) {
	t.Run("contact", func(t *testing.T) {
		v := sampleView()
		v.Remove(Contacts, "c1")

		assert.Equal(t, []string{"c2"}, contactIDs(v))
		require.Len(t, v.Deals, 1)
		assert.Equal(t, "d2", v.Deals[0].ID)
		require.Len(t, v.Tasks, 2)
		assert.Equal(t, "t2", v.Tasks[0].ID)
		assert.Len(t, v.Interactions, 1, "interactions stay until the next reload")
	})

	t.Run("deal", func(t *testing.T) {
		v := sampleView()
		v.Remove(Deals, "d2")

		assert.Len(t, v.Deals, 2)
		require.Len(t, v.Tasks, 2)
		assert.Equal(t, "t1", v.Tasks[0].ID)
		assert.Equal(t, "t3", v.Tasks[1].ID)
	})

	t.Run("leaf records", func(t *testing.T) {
		v := sampleView()
		v.Remove(Tasks, "t3")
		v.Remove(Interactions, "i1")
		v.Remove(Tasks, "missing")

		assert.Len(t, v.Tasks, 2)
		assert.Empty(t, v.Interactions)
	})
}

func TestPipelineGroupsByStageInOrder(t *testing.T) {
	columns := sampleView().Pipeline()

	require.Len(t, columns, len(entity.DealStages))
	for i, stage := range entity.DealStages {
		assert.Equal(t, stage, columns[i].Stage)
	}

	proposal := columns[2]
	assert.Equal(t, entity.DealStageProposal, proposal.Stage)
	require.Len(t, proposal.Deals, 2)
	assert.Equal(t, "d1", proposal.Deals[0].ID)
	assert.Equal(t, 1250.0, proposal.Total)
	assert.Empty(t, columns[0].Deals)
}

func TestViewSummaryFollowsLocalState(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	v := sampleView()
	v.Tasks[0].DueDate = &past
	v.Tasks[0].Status = entity.TaskStatusOpen

	s := v.Summary(now)
	assert.Equal(t, 1750.0, s.TotalPipelineValue)
	assert.Equal(t, 2, s.OpenDeals)
	assert.Equal(t, 1, s.ActiveContacts)
	assert.Equal(t, 1, s.OverdueTasks)

	v.ApplyMutation(&Envelope{Task: &entity.Task{ID: "t1", DueDate: &past, Status: entity.TaskStatusCompleted}})
	assert.Equal(t, 0, v.Summary(now).OverdueTasks)

	v.Remove(Contacts, "c1")
	assert.Equal(t, 500.0, v.Summary(now).TotalPipelineValue)
}

func TestParseResource(t *testing.T) {
	for raw, want := range map[string]Resource{"contacts": Contacts, "Deal": Deals, " task ": Tasks, "INTERACTIONS": Interactions} {
		got, err := ParseResource(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	_, err := ParseResource("companies")
	assert.Error(t, err)
}
