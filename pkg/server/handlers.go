package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ripple-dev/ripple/pkg/ripple"
)

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleListStores returns the names of all registered stores.
func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names()
	writeJSON(w, http.StatusOK, map[string]any{"stores": names})
}

// handleGetStore returns a store's current snapshot.
func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, ok := s.registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, ripple.ErrStoreNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    name,
		"derived": s.registry.IsDerived(name),
		"state":   st.Get(),
	})
}

// handleGetPath performs a safe dot-path lookup. A missing path is an
// absent value, not an error, mirroring the core's tolerance.
func (s *Server) handleGetPath(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, ok := s.registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, ripple.ErrStoreNotFound)
		return
	}

	path := pathParam(r)
	value, exists := st.GetPath(path)
	writeJSON(w, http.StatusOK, map[string]any{
		"path":   path,
		"value":  value,
		"exists": exists,
	})
}

// handleSetStore merges the request body onto the store's snapshot.
// The store is created if absent, matching GetOrCreate's tolerance.
// Writes to derived stores are rejected: their content belongs to their
// compute function.
func (s *Server) handleSetStore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if s.registry.IsDerived(name) {
		writeError(w, http.StatusConflict, ripple.ErrDerivedStore)
		return
	}

	var partial ripple.State
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	st := s.registry.GetOrCreate(name, ripple.State{})

	var opts []ripple.SetOption
	if r.URL.Query().Get("silent") == "true" {
		opts = append(opts, ripple.Silent())
	}
	next := st.Set(partial, opts...)

	s.logger.Debug("store set via http", "store", name)
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"state": next,
	})
}

// pathParam extracts the wildcard path segment, with slashes mapped to the
// core's dot separators.
func pathParam(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '/' {
			out = append(out, '.')
		} else {
			out = append(out, raw[i])
		}
	}
	return string(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
