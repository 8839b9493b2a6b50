package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUserLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	body := []byte(`{"sub":"sub-42","name":"Ada","email":"ada@example.org","issuer":"https://iam.cloud.infn.it"}`)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, bytes.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("bad create response: %v body=%s", err, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users/"+created.ID, token, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var user struct {
		Sub          string `json:"sub"`
		Name         string `json:"name"`
		PublicSSHKey string `json:"public_ssh_key"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &user); err != nil {
		t.Fatalf("bad get response: %v", err)
	}
	if user.Sub != "sub-42" || user.Name != "Ada" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !strings.HasPrefix(user.PublicSSHKey, "ssh-") {
		t.Fatalf("expected an issued SSH public key, got %q", user.PublicSSHKey)
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodHead, "/api/v1/users/"+created.ID, token, nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 head, got %d", rr.Code)
	}

	patch := []byte(`{"name":"Ada Lovelace"}`)
	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPatch, "/api/v1/users/"+created.ID, token, bytes.NewReader(patch)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 patch, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Ada Lovelace") {
		t.Fatalf("patch not applied: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodDelete, "/api/v1/users/"+created.ID, token, nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users/"+created.ID, token, nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateUserRejectsDuplicateIdentity(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)
	body := `{"sub":"sub-dup","name":"Dup","email":"dup@example.org","issuer":"https://iam.cloud.infn.it"}`

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, strings.NewReader(body)))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "user_already_exists") {
		t.Fatalf("expected user_already_exists code, got %s", rr.Body.String())
	}
}

func TestCreateUserValidatesBody(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	rr := httptest.NewRecorder()
	body := `{"name":"No Sub","email":"ns@example.org","issuer":"https://iam.cloud.infn.it"}`
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, strings.NewReader(body)))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing sub, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, strings.NewReader("{not-json")))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "invalid_json") {
		t.Fatalf("expected invalid_json code, got %s", rr.Body.String())
	}
}

func TestGetUserMeResolvesCaller(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	body := `{"sub":"op-1","name":"Operator","email":"operator@cloud.infn.it","issuer":"https://iam.cloud.infn.it"}`
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users/me", token, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for me, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"sub":"op-1"`) {
		t.Fatalf("me did not resolve to the caller: %s", rr.Body.String())
	}
}

func TestGetUserMeWithoutRegistrationIsNotFound(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users/me", readerToken(t), nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListUsersFiltersAndPaginates(t *testing.T) {
	server := newTestServer()
	token := adminToken(t)

	for _, row := range []string{
		`{"sub":"sub-a","name":"Anna","email":"anna@example.org","issuer":"https://iam.cloud.infn.it"}`,
		`{"sub":"sub-b","name":"Bruno","email":"bruno@example.org","issuer":"https://iam.cloud.infn.it"}`,
		`{"sub":"sub-c","name":"Carla","email":"carla@other.org","issuer":"https://other.example.org"}`,
	} {
		rr := httptest.NewRecorder()
		server.handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/api/v1/users", token, strings.NewReader(row)))
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d body=%s", rr.Code, rr.Body.String())
		}
	}

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users?email=example.org&sort=name&size=2", token, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var list struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
		Page struct {
			TotalElements int64 `json:"total_elements"`
		} `json:"page"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad list response: %v", err)
	}
	if list.Page.TotalElements != 2 || len(list.Data) != 2 {
		t.Fatalf("expected two example.org users, got %+v", list)
	}
	if list.Data[0].Name != "Anna" || list.Data[1].Name != "Bruno" {
		t.Fatalf("expected name ascending order, got %+v", list.Data)
	}
}

func TestListUsersRejectsBadQuery(t *testing.T) {
	server := newTestServer()
	token := readerToken(t)

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users?sort=shoe_size", token, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort key, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users?created_before=yesterday", token, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad timestamp, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/users?page=0", token, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page 0, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHeadUnknownUserIsNotFound(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, authedRequest(http.MethodHead, "/api/v1/users/u-missing", readerToken(t), nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
