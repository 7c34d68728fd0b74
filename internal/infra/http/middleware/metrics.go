package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Landing page signups by outcome",
		},
		[]string{"outcome"},
	)

	crmMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_mutations_total",
			Help: "Successful CRM writes by resource and action",
		},
		[]string{"resource", "action"},
	)

	pipelineValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crm_pipeline_value",
		Help: "Sum of the value of every deal",
	})

	openDeals = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crm_open_deals",
		Help: "Deals neither won nor lost",
	})

	overdueTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crm_overdue_tasks",
		Help: "Tasks past their due date and not completed",
	})

	activeContacts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crm_active_contacts",
		Help: "Contacts with status ACTIVE",
	})
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics records request counts and latency. Requests are labelled with
// the matched route pattern so ids do not become label values.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := routePattern(r)
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordLead(outcome string) {
	leadsCaptured.WithLabelValues(outcome).Inc()
}

func RecordMutation(resource, action string) {
	crmMutations.WithLabelValues(resource, action).Inc()
}

// SetCRMGauges publishes the latest CRM summary.
func SetCRMGauges(s entity.Summary) {
	pipelineValue.Set(s.TotalPipelineValue)
	openDeals.Set(float64(s.OpenDeals))
	overdueTasks.Set(float64(s.OverdueTasks))
	activeContacts.Set(float64(s.ActiveContacts))
}
