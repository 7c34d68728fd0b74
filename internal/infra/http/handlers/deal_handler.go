package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

type DealHandler struct {
	service DealService
	log     *zap.Logger
}

func NewDealHandler(service DealService, log *zap.Logger) *DealHandler {
	return &DealHandler{service: service, log: nopIfNil(log).Named("deals")}
}

type dealResponse struct {
	Deal *entity.Deal `json:"deal"`
}

type dealsResponse struct {
	Deals []*entity.Deal `json:"deals"`
}

func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.log, "list_deals", err)
		return
	}
	writeJSON(w, http.StatusOK, dealsResponse{Deals: deals})
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	deal, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.log, "get_deal", err)
		return
	}
	writeJSON(w, http.StatusOK, dealResponse{Deal: deal})
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateDealInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	deal, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.log, "create_deal", err)
		return
	}
	middleware.RecordMutation("deal", "create")
	writeJSON(w, http.StatusCreated, dealResponse{Deal: deal})
}

// Update serves both PATCH /deals/{id} and PATCH /deals with the id in the body.
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateDealInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	var (
		deal *entity.Deal
		err  error
	)
	if id := chi.URLParam(r, "id"); id != "" {
		deal, err = h.service.Update(r.Context(), id, input)
	} else {
		deal, err = h.service.UpdateByBody(r.Context(), input)
	}
	if err != nil {
		writeUsecaseError(w, h.log, "update_deal", err)
		return
	}
	middleware.RecordMutation("deal", "update")
	writeJSON(w, http.StatusOK, dealResponse{Deal: deal})
}

func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeUsecaseError(w, h.log, "delete_deal", err)
		return
	}
	middleware.RecordMutation("deal", "delete")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
