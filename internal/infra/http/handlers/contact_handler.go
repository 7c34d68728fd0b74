package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

type ContactHandler struct {
	service ContactService
	log     *zap.Logger
}

func NewContactHandler(service ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{service: service, log: nopIfNil(log).Named("contacts")}
}

type contactResponse struct {
	Contact *entity.Contact `json:"contact"`
}

type contactsResponse struct {
	Contacts []*entity.Contact `json:"contacts"`
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.log, "list_contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, contactsResponse{Contacts: contacts})
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.log, "get_contact", err)
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Contact: contact})
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateContactInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	contact, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.log, "create_contact", err)
		return
	}
	middleware.RecordMutation("contact", "create")
	writeJSON(w, http.StatusCreated, contactResponse{Contact: contact})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateContactInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	contact, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUsecaseError(w, h.log, "update_contact", err)
		return
	}
	middleware.RecordMutation("contact", "update")
	writeJSON(w, http.StatusOK, contactResponse{Contact: contact})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUsecaseError(w, h.log, "delete_contact", err)
		return
	}
	middleware.RecordMutation("contact", "delete")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
