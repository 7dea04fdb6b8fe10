package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"inventory_catalog_backend/internal/database"
	"inventory_catalog_backend/internal/filter"
	"inventory_catalog_backend/internal/store"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	engine := gin.New()
	Setup(engine, Deps{
		Store:             store.NewItemStore(),
		Engine:            filter.NewEngine(),
		Snapshots:         database.NewMemorySnapshotStore(),
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.AccessToken == "" {
		t.Fatalf("no access token in response: %s", w.Body.String())
	}
	return resp.AccessToken
}

func TestItemsRequireAuthentication(t *testing.T) {
	engine := newTestServer(t)
	if w := doJSON(t, engine, http.MethodGet, "/api/v1/items", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	engine := newTestServer(t)
	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestItemLifecycleOverHTTP(t *testing.T) {
	engine := newTestServer(t)
	token := login(t, engine)

	// Create
	w := doJSON(t, engine, http.MethodPost, "/api/v1/items", token, map[string]interface{}{
		"kode_item": "AS01",
		"nama_item": "Gizeh Slim",
		"jenis":     "ASR",
		"stok":      19,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Item struct {
			ID int64 `json:"id"`
		} `json:"item"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.Item.ID == 0 {
		t.Fatalf("bad create response: %s", w.Body.String())
	}

	// Filtered list
	w = doJSON(t, engine, http.MethodGet, "/api/v1/items?jenis=ASR", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var list struct {
		Items []struct {
			KodeItem string `json:"kode_item"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list.Items) != 1 || list.Items[0].KodeItem != "AS01" {
		t.Fatalf("bad list response: %s", w.Body.String())
	}

	// Patch
	w = doJSON(t, engine, http.MethodPatch, "/api/v1/items/1", token, map[string]interface{}{"stok": 30})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d %s", w.Code, w.Body.String())
	}

	// Delete (Admin role)
	w = doJSON(t, engine, http.MethodDelete, "/api/v1/items/1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d %s", w.Code, w.Body.String())
	}
	if w = doJSON(t, engine, http.MethodGet, "/api/v1/items/1", token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestImportEndpointReportsPerRowErrors(t *testing.T) {
	engine := newTestServer(t)
	token := login(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/items/import", token, map[string]interface{}{
		"rows": []map[string]interface{}{
			{"kode_item": "AS01", "nama_item": "Gizeh", "stok": "30"},
			{"nama_item": "no code or id"},
		},
		"overwrite": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d %s", w.Code, w.Body.String())
	}

	var result struct {
		Imported int      `json:"imported"`
		Errors   []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad import response: %s", w.Body.String())
	}
	if result.Imported != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected import result: %+v", result)
	}
}

func TestFilterStateEndpoints(t *testing.T) {
	engine := newTestServer(t)
	token := login(t, engine)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/filter-state", token, map[string]interface{}{
		"searchQuery": "gizeh",
		"filters":     map[string]string{"jenis": "ASR"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("put filter state: expected 200, got %d %s", w.Code, w.Body.String())
	}
	var putResp struct {
		Persisted bool `json:"persisted"`
		State     struct {
			SearchQuery string `json:"searchQuery"`
		} `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &putResp); err != nil || !putResp.Persisted || putResp.State.SearchQuery != "gizeh" {
		t.Fatalf("bad put response: %s", w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/api/v1/filter-state/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", w.Code)
	}

	// Clear, then load back the persisted snapshot.
	if w = doJSON(t, engine, http.MethodDelete, "/api/v1/filter-state", token, nil); w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	w = doJSON(t, engine, http.MethodPost, "/api/v1/filter-state/load", token, nil)
	var loadResp struct {
		Loaded bool `json:"loaded"`
		State  struct {
			SearchQuery string `json:"searchQuery"`
		} `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loadResp); err != nil || !loadResp.Loaded || loadResp.State.SearchQuery != "gizeh" {
		t.Fatalf("bad load response: %s", w.Body.String())
	}
}

func TestExportEndpoints(t *testing.T) {
	engine := newTestServer(t)
	token := login(t, engine)

	doJSON(t, engine, http.MethodPost, "/api/v1/items", token, map[string]interface{}{
		"kode_item": "AS01",
		"nama_item": "Gizeh Slim",
	})

	w := doJSON(t, engine, http.MethodGet, "/api/v1/export/csv", token, nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("AS01")) {
		t.Fatalf("csv export: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, engine, http.MethodGet, "/api/v1/export/print", token, nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("Gizeh Slim")) {
		t.Fatalf("print export: %d", w.Code)
	}
	w = doJSON(t, engine, http.MethodGet, "/api/v1/export/xlsx", token, nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("xlsx export: %d", w.Code)
	}
}
