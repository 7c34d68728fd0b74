package crmclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &rec.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client()), rec
}

func TestClientCaptureLead(t *testing.T) {
	c, rec := newTestServer(t, http.StatusCreated, `{"contact":{"id":"c1","email":"ana@acme.io","firstName":"Ana","lastName":"Lead","status":"LEAD"}}`)

	contact, created, err := c.CaptureLead(context.Background(), "ana@acme.io")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "c1", contact.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/leads", rec.path)
	assert.Equal(t, "ana@acme.io", rec.body["email"])
}

func TestClientUpdateAndDelete(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"deal":{"id":"d/1","title":"Plan","stage":"WON","value":10,"contactId":"c1"}}`)

	env, err := c.Update(context.Background(), Deals, "d/1", map[string]any{"stage": "WON"})
	require.NoError(t, err)
	require.NotNil(t, env.Deal)
	assert.Equal(t, "WON", string(env.Deal.Stage))
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/deals/d/1", rec.path)

	require.NoError(t, c.Delete(context.Background(), Deals, "d1"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/deals/d1", rec.path)
}

func TestClientOverview(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"contacts":[{"id":"c1"}],"deals":[],"tasks":[],"interactions":[],"summary":{"totalPipelineValue":42,"openDeals":1}}`)

	o, err := c.Overview(context.Background())
	require.NoError(t, err)
	assert.Len(t, o.Contacts, 1)
	assert.Equal(t, 42.0, o.Summary.TotalPipelineValue)
}

func TestClientAPIError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusConflict, `{"error":"Ya existe un contacto con ese email"}`)

	_, err := c.Create(context.Background(), Contacts, map[string]any{"email": "ana@acme.io"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Ya existe un contacto con ese email", apiErr.Message)

	c, _ = newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	_, err = c.List(context.Background(), Tasks)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "api error: Bad Gateway", apiErr.Error())
}
