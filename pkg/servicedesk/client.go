// Package servicedesk is the network boundary around the form pipeline: it
// fetches the raw customer-models document the parser consumes (merging in
// template field options and autocomplete results the portal serves from
// separate endpoints) and submits the built payload. The core pipeline in
// pkg/form and pkg/fill performs no I/O; everything that talks HTTP lives
// here.
package servicedesk

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one service desk site with basic authentication.
type Client struct {
	cfg  Config
	http *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient builds a client from a profile.
func NewClient(cfg Config, options ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// RequestError is a non-2xx response from the submission endpoint.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("servicedesk: request failed: %d - %s", e.StatusCode, e.Message)
}

// FetchForm fetches the customer-models document for one portal and request
// type and assembles the single document the parser expects: the models
// response pruned of presentation-only keys, with template field options
// merged under reqCreate.proformaTemplateForm.proformaFieldOptions and
// autocomplete results under reqCreate.autocompleteOptions.
func (c *Client) FetchForm(ctx context.Context, portalID, requestTypeID int) (map[string]any, error) {
	doc, err := c.fetchModels(ctx, portalID, requestTypeID)
	if err != nil {
		return nil, err
	}

	reqCreate, _ := doc["reqCreate"].(map[string]any)
	if reqCreate == nil {
		return nil, errors.New("servicedesk: models response has no reqCreate")
	}

	if proforma, ok := reqCreate["proformaTemplateForm"].(map[string]any); ok {
		choices, err := c.fetchFormChoices(ctx, portalID, requestTypeID)
		if err != nil {
			return nil, err
		}
		proforma["proformaFieldOptions"] = choices
	}

	autocomplete, err := c.fetchAutocompleteOptions(ctx, portalID, requestTypeID, reqCreate)
	if err != nil {
		return nil, err
	}
	reqCreate["autocompleteOptions"] = autocomplete

	return doc, nil
}

func (c *Client) fetchModels(ctx context.Context, portalID, requestTypeID int) (map[string]any, error) {
	body := map[string]any{
		"options": map[string]any{
			"portalWebFragments": map[string]any{
				"portalId":      portalID,
				"requestTypeId": requestTypeID,
				"portalPage":    "CREATE_REQUEST",
			},
			"portal":    map[string]any{"id": portalID},
			"reqCreate": map[string]any{"portalId": portalID, "id": requestTypeID},
			"portalId":  portalID,
		},
		"models": []string{"portalWebFragments", "portal", "reqCreate"},
		"context": map[string]any{
			"clientBasePath": c.cfg.BaseURL + "/servicedesk/customer",
		},
	}

	var doc map[string]any
	if err := c.postJSON(ctx, "/rest/servicedesk/1/customer/models", body, &doc); err != nil {
		return nil, err
	}

	doc["portalId"] = portalID
	doc["requestTypeId"] = requestTypeID
	return Prune(doc).(map[string]any), nil
}

// fetchFormChoices loads the template field option vocabularies from the
// proforma gateway. A failing gateway is not fatal: the form simply ends up
// with free-entry template questions, matching how the portal behaves.
func (c *Client) fetchFormChoices(ctx context.Context, portalID, requestTypeID int) (map[string]any, error) {
	var tenant struct {
		CloudID string `json:"cloudId"`
	}
	if err := c.getJSON(ctx, "/_edge/tenant_info", &tenant); err != nil {
		return map[string]any{}, nil
	}

	path := fmt.Sprintf("/gateway/api/proforma/portal/cloudid/%s/api/3/portal/%d/requesttype/%d/formchoices",
		tenant.CloudID, portalID, requestTypeID)
	var choices map[string]any
	if err := c.getJSON(ctx, path, &choices); err != nil {
		return map[string]any{}, nil
	}
	return choices, nil
}

// fetchAutocompleteOptions resolves the value list of every object-picker
// field through the cmdb autocomplete endpoint, tagging each result set
// with its field id so the parser can find it.
func (c *Client) fetchAutocompleteOptions(ctx context.Context, portalID, requestTypeID int, reqCreate map[string]any) ([]any, error) {
	fields, _ := reqCreate["fields"].([]any)

	fieldValues := map[string]string{}
	for _, raw := range fields {
		entry, _ := raw.(map[string]any)
		if entry == nil {
			continue
		}
		if id, _ := entry["fieldId"].(string); id != "" {
			fieldValues[id] = ""
		}
	}
	query := map[string]any{"fieldValueMap": fieldValues, "query": ""}

	var out []any
	for _, raw := range fields {
		entry, _ := raw.(map[string]any)
		if entry == nil {
			continue
		}
		autoCompleteURL, _ := entry["autoCompleteUrl"].(string)
		fieldType, _ := entry["fieldType"].(string)
		if autoCompleteURL == "" || fieldType == "organisationpicker" {
			continue
		}
		fieldID, _ := entry["fieldId"].(string)

		path := fmt.Sprintf("/rest/servicedesk/cmdb/1/customer/portal/%d/request/%d/field/%s/autocomplete",
			portalID, requestTypeID, fieldID)
		var result map[string]any
		if err := c.postJSON(ctx, path, query, &result); err != nil {
			result = map[string]any{}
		}
		result["fieldId"] = fieldID
		result["fieldType"] = fieldType
		result["fieldLabel"] = entry["label"]
		result["fieldRequired"] = entry["required"]
		out = append(out, result)
	}
	return out, nil
}

// CreateRequest submits an encoded payload built by the fill package and
// parses the confirmation response.
func (c *Client) CreateRequest(ctx context.Context, serviceDeskID, requestTypeID, payload string) (*CreateRequestResponse, error) {
	endpoint := fmt.Sprintf("%s/servicedesk/customer/portal/%s/create/%s", c.cfg.BaseURL, serviceDeskID, requestTypeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("servicedesk: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("servicedesk: create request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("servicedesk: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: string(data)}
	}
	return ParseCreateRequestResponse(data)
}

func (c *Client) authorize(req *http.Request) {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.cfg.Username + ":" + c.cfg.Token))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("X-Atlassian-Token", "no-check")
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("servicedesk: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("servicedesk: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	c.authorize(req)
	return c.doJSON(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("servicedesk: build request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	c.authorize(req)
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("servicedesk: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("servicedesk: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{StatusCode: resp.StatusCode, Message: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("servicedesk: decode response: %w", err)
	}
	return nil
}
