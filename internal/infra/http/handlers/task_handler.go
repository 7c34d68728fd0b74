package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

type TaskHandler struct {
	service TaskService
	log     *zap.Logger
}

func NewTaskHandler(service TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: nopIfNil(log).Named("tasks")}
}

type taskResponse struct {
	Task *entity.Task `json:"task"`
}

type tasksResponse struct {
	Tasks []*entity.Task `json:"tasks"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.log, "list_tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasksResponse{Tasks: tasks})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.log, "get_task", err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Task: task})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateTaskInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	task, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.log, "create_task", err)
		return
	}
	middleware.RecordMutation("task", "create")
	writeJSON(w, http.StatusCreated, taskResponse{Task: task})
}

// Update serves both PATCH /tasks/{id} and PATCH /tasks with the id in the body.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateTaskInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	var (
		task *entity.Task
		err  error
	)
	if id := chi.URLParam(r, "id"); id != "" {
		task, err = h.service.Update(r.Context(), id, input)
	} else {
		task, err = h.service.UpdateByBody(r.Context(), input)
	}
	if err != nil {
		writeUsecaseError(w, h.log, "update_task", err)
		return
	}
	middleware.RecordMutation("task", "update")
	writeJSON(w, http.StatusOK, taskResponse{Task: task})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var err error
	if id := chi.URLParam(r, "id"); id != "" {
		err = h.service.Delete(r.Context(), id)
	} else {
		var input usecase.IDInput
		if derr := decodeBody(w, r, &input); derr != nil {
			writeError(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		err = h.service.DeleteByBody(r.Context(), input)
	}
	if err != nil {
		writeUsecaseError(w, h.log, "delete_task", err)
		return
	}
	middleware.RecordMutation("task", "delete")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
