package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
	"github.com/xavierca1/fluent-crm/internal/usecase"
)

const msgTooManyLeads = "Demasiados intentos. Probá de nuevo en unos minutos."

type LeadHandler struct {
	capture     LeadCapturer
	rateLimiter *RateLimiter
	log         *zap.Logger
}

func NewLeadHandler(capture LeadCapturer, limiter *RateLimiter, log *zap.Logger) *LeadHandler {
	return &LeadHandler{
		capture:     capture,
		rateLimiter: limiter,
		log:         nopIfNil(log).Named("leads"),
	}
}

type leadResponse struct {
	Contact any `json:"contact"`
}

// CaptureLead handles POST /leads from the landing page form.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(clientIP(r)) {
		middleware.RecordLead("rate_limited")
		writeError(w, http.StatusTooManyRequests, msgTooManyLeads)
		return
	}

	// a malformed body is handled like an empty one: the email is missing
	var input usecase.CaptureLeadInput
	if err := decodeBody(w, r, &input); err != nil {
		input = usecase.CaptureLeadInput{}
	}

	out, err := h.capture.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			middleware.RecordLead("invalid")
		} else {
			middleware.RecordLead("error")
		}
		writeUsecaseError(w, h.log, "capture_lead", err)
		return
	}

	status := http.StatusOK
	outcome := "existing"
	if out.Created {
		status = http.StatusCreated
		outcome = "created"
	}
	middleware.RecordLead(outcome)
	writeJSON(w, status, leadResponse{Contact: out.Contact})
}
