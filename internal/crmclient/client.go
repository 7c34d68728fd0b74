package crmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/fluent-crm/internal/entity"
)

const defaultTimeout = 15 * time.Second

// Overview mirrors the GET /overview response.
type Overview struct {
	Contacts     []*entity.Contact     `json:"contacts"`
	Deals        []*entity.Deal        `json:"deals"`
	Tasks        []*entity.Task        `json:"tasks"`
	Interactions []*entity.Interaction `json:"interactions"`
	Summary      entity.Summary        `json:"summary"`
}

// Envelope is any API response carrying one record or one collection.
type Envelope struct {
	Contact     *entity.Contact     `json:"contact,omitempty"`
	Deal        *entity.Deal        `json:"deal,omitempty"`
	Task        *entity.Task        `json:"task,omitempty"`
	Interaction *entity.Interaction `json:"interaction,omitempty"`

	Contacts     []*entity.Contact     `json:"contacts,omitempty"`
	Deals        []*entity.Deal        `json:"deals,omitempty"`
	Tasks        []*entity.Task        `json:"tasks,omitempty"`
	Interactions []*entity.Interaction `json:"interactions,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non 2xx answer from the API.
type APIError struct {
	Status  int          `json:"-"`
	Message string       `json:"error"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if _, err := c.do(ctx, http.MethodGet, "/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Summary(ctx context.Context) (entity.Summary, error) {
	var out struct {
		Summary entity.Summary `json:"summary"`
	}
	_, err := c.do(ctx, http.MethodGet, "/summary", nil, &out)
	return out.Summary, err
}

// CaptureLead submits a landing email. created is false when the contact existed.
func (c *Client) CaptureLead(ctx context.Context, email string) (contact *entity.Contact, created bool, err error) {
	var out Envelope
	status, err := c.do(ctx, http.MethodPost, "/leads", map[string]string{"email": email}, &out)
	if err != nil {
		return nil, false, err
	}
	return out.Contact, status == http.StatusCreated, nil
}

func (c *Client) List(ctx context.Context, r Resource) (*Envelope, error) {
	var out Envelope
	if _, err := c.do(ctx, http.MethodGet, "/"+string(r), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, r Resource, id string) (*Envelope, error) {
	var out Envelope
	if _, err := c.do(ctx, http.MethodGet, recordPath(r, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, r Resource, fields map[string]any) (*Envelope, error) {
	var out Envelope
	if _, err := c.do(ctx, http.MethodPost, "/"+string(r), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, r Resource, id string, fields map[string]any) (*Envelope, error) {
	var out Envelope
	if _, err := c.do(ctx, http.MethodPatch, recordPath(r, id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, r Resource, id string) error {
	_, err := c.do(ctx, http.MethodDelete, recordPath(r, id), nil, nil)
	return err
}

func recordPath(r Resource, id string) string {
	return "/" + string(r) + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		// a body that is not the JSON error envelope leaves only the status
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return resp.StatusCode, apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}
