package v1

import "net/http"

// requireSearcher wraps a handler and returns 503 if the catalog searcher is
// not configured.
func (s *Server) requireSearcher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Searcher == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Catalog search not configured")
			return
		}
		next(w, r)
	}
}

// requireImporter wraps a handler and returns 503 if the importer is not
// configured.
func (s *Server) requireImporter(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Importer == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Steam import not configured")
			return
		}
		next(w, r)
	}
}
