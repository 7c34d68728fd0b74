package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	contacts := []*Contact{
		{ID: "c1", Status: ContactStatusActive},
		{ID: "c2", Status: ContactStatusLead},
		{ID: "c3", Status: ContactStatusActive},
	}
	deals := []*Deal{
		{ID: "d1", Value: 1000, Stage: DealStageProposal},
		{ID: "d2", Value: 2500, Stage: DealStageWon},
		{ID: "d3", Value: 400, Stage: DealStageLost},
		{ID: "d4", Value: 100, Stage: DealStageQualification},
	}
	tasks := []*Task{
		{ID: "t1", Status: TaskStatusOpen, DueDate: ptrTime(now.Add(-time.Hour))},
		{ID: "t2", Status: TaskStatusCompleted, DueDate: ptrTime(now.Add(-time.Hour))},
		{ID: "t3", Status: TaskStatusInProgress, DueDate: ptrTime(now.Add(time.Hour))},
		{ID: "t4", Status: TaskStatusOpen},
		{ID: "t5", Status: TaskStatusInProgress, DueDate: ptrTime(now.AddDate(0, 0, -30))},
	}
	interactions := []*Interaction{
		{ID: "i1", OccurredAt: now.Add(-time.Hour)},
		{ID: "i2", OccurredAt: now.Add(-RecentInteractionWindow)},
		{ID: "i3", OccurredAt: now.Add(-RecentInteractionWindow - time.Second)},
	}

	s := Summarize(contacts, deals, tasks, interactions, now)

	assert.Equal(t, 4000.0, s.TotalPipelineValue, "closed deals still count towards the pipeline value")
	assert.Equal(t, 2, s.OpenDeals)
	assert.Equal(t, 2, s.ActiveContacts)
	assert.Equal(t, 2, s.OverdueTasks)
	assert.Equal(t, 2, s.RecentInteractions, "the window boundary is inclusive")
	assert.Equal(t, 3, s.TotalContacts)
	assert.Equal(t, 2500.0, s.WonDealsValue)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil, nil, time.Now())
	assert.Equal(t, Summary{}, s)
}

func TestCompletingTaskClearsOverdue(t *testing.T) {
	now := time.Now()
	task := &Task{Status: TaskStatusOpen, DueDate: ptrTime(now.Add(-24 * time.Hour))}
	assert.Equal(t, 1, Summarize(nil, nil, []*Task{task}, nil, now).OverdueTasks)

	task.Status = TaskStatusCompleted
	assert.Equal(t, 0, Summarize(nil, nil, []*Task{task}, nil, now).OverdueTasks)
}
