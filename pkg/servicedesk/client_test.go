package servicedesk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{BaseURL: baseURL, Username: "agent@example.com", Token: "secret"}
}

func TestNewClient_RejectsIncompleteConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://example.atlassian.net"})
	require.Error(t, err)
}

func TestFetchForm_AssemblesDocument(t *testing.T) {
	var (
		modelsBody       map[string]any
		autocompleteSeen []string
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/servicedesk/1/customer/models", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "no-check", r.Header.Get("X-Atlassian-Token"))

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &modelsBody))

		json.NewEncoder(w).Encode(map[string]any{
			"portal": map[string]any{"id": "14", "portalBaseUrl": "https://example"},
			"reqCreate": map[string]any{
				"id": "92",
				"fields": []any{
					map[string]any{"fieldId": "summary", "fieldType": "text"},
					map[string]any{
						"fieldId":         "customfield_10200",
						"fieldType":       "cmdbobjectpicker",
						"label":           "Affected asset",
						"required":        true,
						"autoCompleteUrl": "https://example.atlassian.net/autocomplete",
					},
					map[string]any{
						"fieldId":         "customfield_10300",
						"fieldType":       "organisationpicker",
						"autoCompleteUrl": "https://example.atlassian.net/orgs",
					},
				},
				"proformaTemplateForm": map[string]any{"templateId": float64(42)},
				"kbs":                  map[string]any{"dropped": true},
			},
		})
	})
	mux.HandleFunc("/_edge/tenant_info", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"cloudId": "cloud-1"})
	})
	mux.HandleFunc("/gateway/api/proforma/portal/cloudid/cloud-1/api/3/portal/14/requesttype/92/formchoices",
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"fields": map[string]any{"2": []any{map[string]any{"id": "low", "label": "Low"}}},
			})
		})
	mux.HandleFunc("/rest/servicedesk/cmdb/1/customer/portal/14/request/92/field/", func(w http.ResponseWriter, r *http.Request) {
		autocompleteSeen = append(autocompleteSeen, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"results": []any{map[string]any{"id": "obj-1", "label": "Laptop 42"}},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	doc, err := client.FetchForm(context.Background(), 14, 92)
	require.NoError(t, err)

	// The models request carries the portal/request-type routing options.
	options := modelsBody["options"].(map[string]any)
	assert.Equal(t, float64(14), options["portalId"])

	assert.Equal(t, 14, doc["portalId"])
	assert.Equal(t, 92, doc["requestTypeId"])

	reqCreate := doc["reqCreate"].(map[string]any)

	// Presentation-only keys are pruned before the document is handed on.
	assert.NotContains(t, reqCreate, "kbs")
	portal := doc["portal"].(map[string]any)
	assert.NotContains(t, portal, "portalBaseUrl")

	proforma := reqCreate["proformaTemplateForm"].(map[string]any)
	choices := proforma["proformaFieldOptions"].(map[string]any)
	assert.Contains(t, choices, "fields")

	// Only the cmdb picker hits autocomplete; organisation pickers never do.
	require.Len(t, autocompleteSeen, 1)
	assert.Contains(t, autocompleteSeen[0], "customfield_10200")

	autocomplete := reqCreate["autocompleteOptions"].([]any)
	require.Len(t, autocomplete, 1)
	tagged := autocomplete[0].(map[string]any)
	assert.Equal(t, "customfield_10200", tagged["fieldId"])
	assert.Equal(t, "cmdbobjectpicker", tagged["fieldType"])
	assert.Equal(t, "Affected asset", tagged["fieldLabel"])
	assert.Equal(t, true, tagged["fieldRequired"])
}

func TestFetchForm_FormChoicesFailureIsNotFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/servicedesk/1/customer/models", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"reqCreate": map[string]any{
				"id":                   "92",
				"fields":               []any{},
				"proformaTemplateForm": map[string]any{"templateId": float64(42)},
			},
		})
	})
	mux.HandleFunc("/_edge/tenant_info", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	doc, err := client.FetchForm(context.Background(), 14, 92)
	require.NoError(t, err)

	reqCreate := doc["reqCreate"].(map[string]any)
	proforma := reqCreate["proformaTemplateForm"].(map[string]any)
	assert.Empty(t, proforma["proformaFieldOptions"])
}

func TestCreateRequest_Success(t *testing.T) {
	var submitted url.Values

	mux := http.NewServeMux()
	mux.HandleFunc("/servicedesk/customer/portal/3/create/92", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		submitted, err = url.ParseQuery(string(data))
		require.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"key": "SUP-101",
			"issue": map[string]any{
				"id":      float64(10500),
				"key":     "SUP-101",
				"summary": "VPN is down",
				"status":  "Waiting for support",
			},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	payload := url.Values{"summary": {"VPN is down"}, "projectId": {"10014"}}.Encode()
	resp, err := client.CreateRequest(context.Background(), "3", "92", payload)
	require.NoError(t, err)

	assert.Equal(t, "VPN is down", submitted.Get("summary"))
	assert.Equal(t, "SUP-101", resp.Key)
	assert.Equal(t, int64(10500), resp.Issue.ID)
	assert.Equal(t, "Waiting for support", resp.Issue.Status)
}

func TestCreateRequest_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "summary is required", http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.CreateRequest(context.Background(), "3", "92", "")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Contains(t, reqErr.Message, "summary is required")
}
