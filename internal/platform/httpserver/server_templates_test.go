package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const singleVMTemplate = `tosca_definitions_version: tosca_simple_yaml_1_0
metadata:
  template_name: single-vm
  template_version: 1.0.0
  target_provider_type: openstack
topology_template:
  node_templates:
    server:
      type: tosca.nodes.indigo.Compute
`

func templateBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		t.Fatalf("marshal template body: %v", err)
	}
	return body
}

func createTemplate(t *testing.T, server *Server, token string, content string) string {
	t.Helper()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/templates", token, bytes.NewReader(templateBody(t, content))))
	if rr.Code != http.StatusCreated {
		t.Fatalf("template create failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("bad template create response: %v body=%s", err, rr.Body.String())
	}
	return created.ID
}

func TestTemplateLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	id := createTemplate(t, server, token, singleVMTemplate)

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/templates/"+id, token, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var template struct {
		Name                    string `json:"name"`
		Version                 string `json:"version"`
		TargetProviderType      string `json:"target_provider_type"`
		ToscaDefinitionsVersion string `json:"tosca_definitions_version"`
		Content                 string `json:"content"`
		ContentHash             string `json:"content_hash"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &template); err != nil {
		t.Fatalf("bad get response: %v", err)
	}
	if template.Name != "single-vm" || template.Version != "1.0.0" || template.TargetProviderType != "openstack" {
		t.Fatalf("metadata not derived: %+v", template)
	}
	if template.ToscaDefinitionsVersion != "tosca_simple_yaml_1_0" || template.Content == "" || template.ContentHash == "" {
		t.Fatalf("document fields missing: %+v", template)
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodHead, "/api/v1/templates/"+id, token, nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 head, got %d", rr.Code)
	}

	replaced := strings.Replace(singleVMTemplate, "template_version: 1.0.0", "template_version: 1.1.0", 1)
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPatch, "/api/v1/templates/"+id, token, bytes.NewReader(templateBody(t, replaced))))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 replace, got %d body=%s", rr.Code, rr.Body.String())
	}
	var after struct {
		Version     string `json:"version"`
		ContentHash string `json:"content_hash"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &after); err != nil {
		t.Fatalf("bad replace response: %v", err)
	}
	if after.Version != "1.1.0" || after.ContentHash == template.ContentHash {
		t.Fatalf("replacement not re-derived: %+v", after)
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodDelete, "/api/v1/templates/"+id, token, nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/templates/"+id, token, nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateTemplateRejectsInvalidDocument(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	rr := httptest.NewRecorder()
	body := templateBody(t, "topology_template: {}\n")
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/templates", token, bytes.NewReader(body)))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without tosca_definitions_version, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "invalid_template") {
		t.Fatalf("expected invalid_template code, got %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/templates", token, strings.NewReader("{oops")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateTemplateRejectsDuplicateContent(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	createTemplate(t, server, token, singleVMTemplate)

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/templates", token, bytes.NewReader(templateBody(t, singleVMTemplate))))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "template_already_exists") {
		t.Fatalf("expected template_already_exists code, got %s", rr.Body.String())
	}
}

func TestDeleteTemplateInUseIsConflict(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	id := createTemplate(t, server, token, singleVMTemplate)

	deployment := []byte(`{"template_id":"` + id + `","user_group":"cms"}`)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/deployments", token, bytes.NewReader(deployment)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("deployment create failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodDelete, "/api/v1/templates/"+id, token, nil))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for referenced template, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "template_in_use") {
		t.Fatalf("expected template_in_use code, got %s", rr.Body.String())
	}
}

func TestListTemplatesOmitsContentAndFilters(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	other := strings.Replace(singleVMTemplate, "template_name: single-vm", "template_name: k8s-cluster", 1)
	createTemplate(t, server, token, singleVMTemplate)
	createTemplate(t, server, token, other)

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/templates?name=single", token, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var list struct {
		Data []map[string]any `json:"data"`
		Page struct {
			TotalElements int64 `json:"total_elements"`
		} `json:"page"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad list response: %v", err)
	}
	if list.Page.TotalElements != 1 || len(list.Data) != 1 {
		t.Fatalf("expected one match, got %+v", list)
	}
	if _, hasContent := list.Data[0]["content"]; hasContent {
		t.Fatalf("list rows must not carry the document body: %+v", list.Data[0])
	}
	if list.Data[0]["name"] != "single-vm" {
		t.Fatalf("wrong row matched: %+v", list.Data[0])
	}
}
