package server

import (
	"encoding/json"
	"net/http"

	"filedrop/internal/storage"
)

// listHandler serves GET /list (and GET /upload): a JSON array of every
// stored filename, order unspecified.
func (cfg Config) listHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		names, err := store.List(r.Context())
		if err != nil {
			// Enumeration failures are deliberately swallowed: the client
			// gets an empty listing with a success status, unlike the loud
			// upload/download error paths. Keep this as the one branch
			// where that happens.
			GetMetrics().RecordListSwallowed()
			Warn("listing failed, returning empty", map[string]interface{}{
				"rid":   RequestIDFromContext(r.Context()),
				"error": err.Error(),
			})
			names = nil
		}
		if names == nil {
			names = []string{}
		}

		GetMetrics().RecordListing()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(names)
	})
}
