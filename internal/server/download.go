package server

import (
	"fmt"
	"net/http"
	"time"

	"filedrop/internal/storage"
)

// downloadHandler serves GET /download?filename=. Any read failure,
// missing entry included, resolves to 404.
func (cfg Config) downloadHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		start := time.Now()

		filename := r.URL.Query().Get("filename")
		if filename == "" {
			http.Error(w, "missing filename", http.StatusBadRequest)
			return
		}

		data, err := store.Read(r.Context(), filename)
		if err != nil {
			GetMetrics().RecordDownloadError()
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		// Encourage safe download behavior in browsers. The raw filename
		// goes into a quoted-string; quotes or non-ASCII bytes in the name
		// are not escaped (known gap).
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)

		GetMetrics().RecordDownload(int64(len(data)), time.Since(start))
	})
}
