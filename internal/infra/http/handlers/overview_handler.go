package handlers

import (
	"net/http"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

type OverviewHandler struct {
	service OverviewService
}

func NewOverviewHandler(service OverviewService) *OverviewHandler {
	return &OverviewHandler{service: service}
}

type summaryResponse struct {
	Summary entity.Summary `json:"summary"`
}

// Overview always answers 200; an unavailable store yields an empty overview.
func (h *OverviewHandler) Overview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Execute(r.Context()))
}

func (h *OverviewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, summaryResponse{Summary: h.service.Summary(r.Context())})
}
