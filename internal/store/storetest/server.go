// Package storetest runs an in-memory stand-in for the remote document
// database, mimicking its path scheme and its "null" answers for absent
// records.
package storetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	data     map[string]map[string]map[string]any
	requests []string

	// FailAll makes every request answer 500, for partial-failure tests.
	FailAll bool
}

func New() *Server {
	s := &Server{data: make(map[string]map[string]map[string]any)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Requests returns a copy of the "METHOD /path" log.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Seed places a record directly into a collection.
func (s *Server) Seed(collection, id string, record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]map[string]any)
	}
	s.data[collection][id] = record
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	if s.FailAll {
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	path := strings.TrimSuffix(strings.Trim(r.URL.Path, "/"), ".json")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		records := s.data[parts[0]]
		if len(records) == 0 {
			w.Write([]byte("null"))
			return
		}
		json.NewEncoder(w).Encode(records)

	case len(parts) == 2:
		col, id := parts[0], parts[1]
		switch r.Method {
		case http.MethodGet:
			rec, ok := s.data[col][id]
			if !ok {
				w.Write([]byte("null"))
				return
			}
			json.NewEncoder(w).Encode(rec)
		case http.MethodPut:
			var rec map[string]any
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if s.data[col] == nil {
				s.data[col] = make(map[string]map[string]any)
			}
			s.data[col][id] = rec
			w.Write([]byte("{}"))
		case http.MethodDelete:
			delete(s.data[col], id)
			w.Write([]byte("null"))
		default:
			http.Error(w, "bad method", http.StatusMethodNotAllowed)
		}

	case len(parts) == 3 && (r.Method == http.MethodPut || r.Method == http.MethodPatch):
		col, id, field := parts[0], parts[1], parts[2]
		var v any
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if rec, ok := s.data[col][id]; ok {
			rec[field] = v
		}
		w.Write([]byte("{}"))

	default:
		http.Error(w, "bad request", http.StatusBadRequest)
	}
}
