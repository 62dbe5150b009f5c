// compression.go - gzip middleware for compressible responses.
//
// Listing and health responses are JSON and compress well; file bodies
// (downloads, upload requests) are passed through untouched.
package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// compressionResponseWriter wraps http.ResponseWriter to compress responses.
type compressionResponseWriter struct {
	http.ResponseWriter
	writer io.Writer
}

// Write compresses data before writing to the underlying writer.
func (crw *compressionResponseWriter) Write(b []byte) (int, error) {
	return crw.writer.Write(b)
}

// compressionMiddleware gzips responses for clients that accept it.
func compressionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptsCompression(r) {
			next.ServeHTTP(w, r)
			return
		}

		if shouldSkipCompression(r) {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzip.NewWriter(w)
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length") // Length will change with compression

		crw := &compressionResponseWriter{
			ResponseWriter: w,
			writer:         gz,
		}

		next.ServeHTTP(crw, r)
	})
}

// acceptsCompression checks if the client accepts gzip encoding.
func acceptsCompression(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

// shouldSkipCompression reports whether the response body is file content
// rather than a compressible API payload.
func shouldSkipCompression(r *http.Request) bool {
	// File bodies go out as-is.
	if strings.HasPrefix(r.URL.Path, "/download") {
		return true
	}

	// Upload responses have no body worth compressing.
	if strings.HasPrefix(r.URL.Path, "/upload") && r.Method != http.MethodGet {
		return true
	}

	return false
}
