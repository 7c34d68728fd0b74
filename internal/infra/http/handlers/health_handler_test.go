package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/fluent-crm/internal/infra/http/handlers"
)

type fakeBroker struct{ closed bool }

func (b fakeBroker) IsClosed() bool { return b.closed }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		broker     handlers.Broker
		wantCode   int
		wantStatus string
		wantBroker string
	}{
		{name: "nothing configured", wantCode: http.StatusOK, wantStatus: "healthy", wantBroker: "not configured"},
		{name: "broker up", broker: fakeBroker{}, wantCode: http.StatusOK, wantStatus: "healthy", wantBroker: "healthy"},
		{name: "broker down", broker: fakeBroker{closed: true}, wantCode: http.StatusServiceUnavailable, wantStatus: "degraded", wantBroker: "unhealthy: connection closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(nil, tt.broker, "1.2.3")
			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			var body handlers.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "1.2.3", body.Version)
			assert.Equal(t, tt.wantBroker, body.Dependencies["rabbitmq"])
			assert.Equal(t, "not configured", body.Dependencies["database"])
		})
	}
}
