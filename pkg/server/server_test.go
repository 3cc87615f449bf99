package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ripple-dev/ripple/pkg/ripple"
)

func newTestServer(t *testing.T) (*Server, *ripple.Registry) {
	t.Helper()
	reg := ripple.New()
	cfg := DefaultConfig()
	cfg.EnableMetrics = false // keep the default prometheus registerer clean across tests
	return New(reg, cfg), reg
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec, body := doJSON(t, srv, http.MethodGet, "/healthz", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestListStores(t *testing.T) {
	srv, reg := newTestServer(t)
	reg.GetOrCreate("user", ripple.State{})
	reg.GetOrCreate("cart", ripple.State{})

	rec, body := doJSON(t, srv, http.MethodGet, "/stores/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	stores, _ := body["stores"].([]any)
	if len(stores) != 2 {
		t.Errorf("expected 2 stores, got %v", body["stores"])
	}
}

func TestGetStore(t *testing.T) {
	srv, reg := newTestServer(t)
	reg.GetOrCreate("user", ripple.State{"name": "guest"})

	rec, body := doJSON(t, srv, http.MethodGet, "/stores/user/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	state, _ := body["state"].(map[string]any)
	if state["name"] != "guest" {
		t.Errorf("unexpected snapshot: %v", body)
	}
	if body["derived"] != false {
		t.Errorf("plain store reported derived: %v", body)
	}
}

func TestGetStoreNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec, _ := doJSON(t, srv, http.MethodGet, "/stores/nope/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetPath(t *testing.T) {
	srv, reg := newTestServer(t)
	reg.GetOrCreate("user", ripple.State{
		"preferences": ripple.State{"theme": "light"},
	})

	rec, body := doJSON(t, srv, http.MethodGet, "/stores/user/path/preferences/theme", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["value"] != "light" || body["exists"] != true {
		t.Errorf("unexpected lookup result: %v", body)
	}

	// Missing paths are absent values, not errors.
	rec, body = doJSON(t, srv, http.MethodGet, "/stores/user/path/missing/path", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing path, got %d", rec.Code)
	}
	if body["exists"] != false {
		t.Errorf("expected exists=false, got %v", body)
	}
}

func TestSetStoreMerges(t *testing.T) {
	srv, reg := newTestServer(t)
	reg.GetOrCreate("user", ripple.State{"name": "guest", "age": float64(30)})

	rec, body := doJSON(t, srv, http.MethodPost, "/stores/user/", map[string]any{"name": "John"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, body)
	}
	state, _ := body["state"].(map[string]any)
	if state["name"] != "John" || state["age"] != float64(30) {
		t.Errorf("expected shallow merge, got %v", state)
	}
}

func TestSetStoreCreatesWhenAbsent(t *testing.T) {
	srv, reg := newTestServer(t)

	rec, _ := doJSON(t, srv, http.MethodPost, "/stores/fresh/", map[string]any{"v": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := reg.Get("fresh"); !ok {
		t.Error("expected the store to be created")
	}
}

func TestSetStoreSilent(t *testing.T) {
	srv, reg := newTestServer(t)
	st := reg.GetOrCreate("user", ripple.State{})

	var calls int
	st.Subscribe(func(next, prev ripple.State) { calls++ })

	doJSON(t, srv, http.MethodPost, "/stores/user/?silent=true", map[string]any{"a": 1})
	if calls != 0 {
		t.Errorf("silent set over http notified listeners %d times", calls)
	}
	if got, _ := st.GetPath("a"); got != float64(1) {
		t.Errorf("expected snapshot installed, got %v", got)
	}
}

func TestSetDerivedRejected(t *testing.T) {
	srv, reg := newTestServer(t)
	reg.GetOrCreate("user", ripple.State{})
	reg.Derive("ui", []string{"user"}, func(states ...ripple.State) ripple.State {
		return ripple.State{}
	})

	rec, body := doJSON(t, srv, http.MethodPost, "/stores/ui/", map[string]any{"a": 1})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for derived write, got %d: %v", rec.Code, body)
	}
}

func TestSetStoreBadBody(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/stores/user/", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestConfigDefaults(t *testing.T) {
	var c *Config
	got := c.withDefaults()
	if got.Address != ":8080" || got.WatchBuffer != 64 {
		t.Errorf("unexpected defaults: %+v", got)
	}

	partial := &Config{Address: ":9999"}
	got = partial.withDefaults()
	if got.Address != ":9999" {
		t.Errorf("explicit address overridden: %+v", got)
	}
	if got.ReadTimeout == 0 {
		t.Error("expected read timeout default to be filled")
	}
}
