package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type TaskUseCase struct {
	Repos Repositories
	Log   *zap.Logger
}

func NewTaskUseCase(repos Repositories, log *zap.Logger) *TaskUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskUseCase{Repos: repos, Log: log.Named("tasks")}
}

func (uc *TaskUseCase) List(ctx context.Context) ([]*entity.Task, error) {
	tasks, err := uc.Repos.Tasks.List(ctx, entity.TaskFilter{})
	if err != nil {
		return nil, taskMessages.fail(taskMessages.List, err)
	}
	return tasks, nil
}

func (uc *TaskUseCase) Get(ctx context.Context, id string) (*entity.Task, error) {
	t, err := uc.Repos.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, taskMessages.fail(taskMessages.Get, err)
	}
	return t, nil
}

func (uc *TaskUseCase) Create(ctx context.Context, in CreateTaskInput) (*entity.Task, error) {
	if errs := validateStruct(in); len(errs) > 0 {
		return nil, validationError(taskMessages.Required, errs)
	}

	title, _ := in.Title.Get()
	task, err := entity.NewTask(title)
	if err != nil {
		return nil, validationError(taskMessages.Required, nil)
	}
	task.Description = in.Description.Ptr()
	if d, ok := in.DueDate.Date(); ok {
		task.DueDate = &d
	}
	if raw, ok := in.Status.Get(); ok {
		if status, ok := entity.ParseTaskStatus(raw); ok {
			task.Status = status
		}
	}
	if raw, ok := in.Priority.Get(); ok {
		if priority, ok := entity.ParseTaskPriority(raw); ok {
			task.Priority = priority
		}
	}
	task.ContactID = in.ContactID.Ptr()
	task.DealID = in.DealID.Ptr()

	if err := uc.Repos.Tasks.Create(ctx, task); err != nil {
		return nil, taskMessages.fail(taskMessages.Create, err)
	}
	return uc.reload(ctx, task.ID, taskMessages.Create)
}

func (uc *TaskUseCase) Update(ctx context.Context, id string, in UpdateTaskInput) (*entity.Task, error) {
	task, err := uc.Repos.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, taskMessages.fail(taskMessages.Update, err)
	}

	in.apply(task)
	task.UpdatedAt = time.Now().UTC()

	if err := uc.Repos.Tasks.Update(ctx, task); err != nil {
		return nil, taskMessages.fail(taskMessages.Update, err)
	}
	return uc.reload(ctx, id, taskMessages.Update)
}

func (uc *TaskUseCase) UpdateByBody(ctx context.Context, in UpdateTaskInput) (*entity.Task, error) {
	id, ok := in.TargetID()
	if !ok {
		return nil, taskMessages.missingID()
	}
	return uc.Update(ctx, id, in)
}

func (in UpdateTaskInput) apply(t *entity.Task) {
	if v, ok := in.Title.Get(); ok {
		t.Title = v
	}
	setIfPresent(&t.Description, in.Description)
	setDateOrClear(&t.DueDate, in.DueDate)
	if raw, ok := in.Status.Get(); ok {
		if status, ok := entity.ParseTaskStatus(raw); ok {
			t.Status = status
		}
	}
	if raw, ok := in.Priority.Get(); ok {
		if priority, ok := entity.ParseTaskPriority(raw); ok {
			t.Priority = priority
		}
	}
	setOrClear(&t.ContactID, in.ContactID)
	setOrClear(&t.DealID, in.DealID)
}

func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repos.Tasks.Delete(ctx, id); err != nil {
		return taskMessages.fail(taskMessages.Delete, err)
	}
	return nil
}

func (uc *TaskUseCase) DeleteByBody(ctx context.Context, in IDInput) error {
	id, ok := in.TargetID()
	if !ok {
		return taskMessages.missingID()
	}
	return uc.Delete(ctx, id)
}

func (uc *TaskUseCase) reload(ctx context.Context, id, operation string) (*entity.Task, error) {
	t, err := uc.Repos.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, taskMessages.fail(operation, err)
	}
	return t, nil
}
