package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

type InteractionHandler struct {
	service InteractionService
	log     *zap.Logger
}

func NewInteractionHandler(service InteractionService, log *zap.Logger) *InteractionHandler {
	return &InteractionHandler{service: service, log: nopIfNil(log).Named("interactions")}
}

type interactionResponse struct {
	Interaction *entity.Interaction `json:"interaction"`
}

type interactionsResponse struct {
	Interactions []*entity.Interaction `json:"interactions"`
}

func (h *InteractionHandler) List(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.service.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.log, "list_interactions", err)
		return
	}
	writeJSON(w, http.StatusOK, interactionsResponse{Interactions: interactions})
}

func (h *InteractionHandler) Get(w http.ResponseWriter, r *http.Request) {
	interaction, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.log, "get_interaction", err)
		return
	}
	writeJSON(w, http.StatusOK, interactionResponse{Interaction: interaction})
}

func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateInteractionInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	interaction, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.log, "create_interaction", err)
		return
	}
	middleware.RecordMutation("interaction", "create")
	writeJSON(w, http.StatusCreated, interactionResponse{Interaction: interaction})
}

func (h *InteractionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateInteractionInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	interaction, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUsecaseError(w, h.log, "update_interaction", err)
		return
	}
	middleware.RecordMutation("interaction", "update")
	writeJSON(w, http.StatusOK, interactionResponse{Interaction: interaction})
}

func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUsecaseError(w, h.log, "delete_interaction", err)
		return
	}
	middleware.RecordMutation("interaction", "delete")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
