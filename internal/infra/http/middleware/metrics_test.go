package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/contacts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/contacts/{id}", "404"))
	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/contacts/"+id, nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/contacts/{id}", "404"))

	assert.Equal(t, 3.0, after-before)
	assert.Equal(t, 0.0, testutil.ToFloat64(activeConnections))
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(leadsCaptured.WithLabelValues("created"))
	RecordLead("created")
	assert.Equal(t, 1.0, testutil.ToFloat64(leadsCaptured.WithLabelValues("created"))-before)

	before = testutil.ToFloat64(crmMutations.WithLabelValues("deal", "update"))
	RecordMutation("deal", "update")
	RecordMutation("deal", "update")
	assert.Equal(t, 2.0, testutil.ToFloat64(crmMutations.WithLabelValues("deal", "update"))-before)
}

func TestSetCRMGauges(t *testing.T) {
	SetCRMGauges(entity.Summary{TotalPipelineValue: 4200.5, OpenDeals: 3, OverdueTasks: 2, ActiveContacts: 7})

	assert.Equal(t, 4200.5, testutil.ToFloat64(pipelineValue))
	assert.Equal(t, 3.0, testutil.ToFloat64(openDeals))
	assert.Equal(t, 2.0, testutil.ToFloat64(overdueTasks))
	assert.Equal(t, 7.0, testutil.ToFloat64(activeContacts))
}
