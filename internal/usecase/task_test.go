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

func TestCreateTaskDefaults(t *testing.T) {
	m, repos := newRepoMocks()
	var created *entity.Task
	m.tasks.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Task)
	}).Return(nil)
	m.tasks.On("FindByID", mock.Anything, mock.Anything).Return(&entity.Task{ID: "t-1"}, nil)

	uc := usecase.NewTaskUseCase(repos, nil)
	_, err := uc.Create(context.Background(), decode[usecase.CreateTaskInput](t,
		`{"title":"Llamar","priority":"URGENT","status":"IN_PROGRESS","dueDate":"2026-01-10T09:30","contactId":" "}`))

	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, created.Status)
	assert.Equal(t, entity.TaskPriorityMedium, created.Priority)
	assert.Equal(t, time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC), *created.DueDate)
	assert.Nil(t, created.ContactID)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	_, repos := newRepoMocks()
	uc := usecase.NewTaskUseCase(repos, nil)

	_, err := uc.Create(context.Background(), usecase.CreateTaskInput{Title: usecase.NullText()})

	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "El título de la tarea es obligatorio", de.Message)
}

func TestCompletingTaskClearsDueDateOnNull(t *testing.T) {
	m, repos := newRepoMocks()
	due := time.Now().Add(-time.Hour)
	current := &entity.Task{ID: "t-1", Title: "Llamar", Status: entity.TaskStatusOpen, DueDate: &due, DealID: ptr("d-1")}
	m.tasks.On("FindByID", mock.Anything, "t-1").Return(current, nil)
	m.tasks.On("Update", mock.Anything, current).Return(nil)

	uc := usecase.NewTaskUseCase(repos, nil)
	task, err := uc.UpdateByBody(context.Background(), decode[usecase.UpdateTaskInput](t,
		`{"taskId":"t-1","status":"COMPLETED","dealId":null}`))

	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	assert.NotNil(t, task.DueDate)
	assert.Nil(t, task.DealID)
	assert.False(t, task.Overdue(time.Now()))
}

func TestDeleteTaskByBodyNeedsID(t *testing.T) {
	_, repos := newRepoMocks()
	uc := usecase.NewTaskUseCase(repos, nil)

	err := uc.DeleteByBody(context.Background(), usecase.IDInput{ID: usecase.T("")})

	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "No se pudo identificar la tarea", de.Message)
}
