package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"filedrop/internal/storage"
)

// uploadHandler serves /upload: POST/PUT store the raw request body under
// the filename given in the query string, GET enumerates stored files
// (same capability as /list).
//
// Required query parameter for uploads: filename (the storage key).
// The body is buffered fully in memory before the store write; there is
// no streaming and no size limit.
func (cfg Config) uploadHandler(store storage.Store) http.Handler {
	list := cfg.listHandler(store)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list.ServeHTTP(w, r)
		case http.MethodPost, http.MethodPut:
			cfg.handleRawUpload(store, w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func (cfg Config) handleRawUpload(store storage.Store, w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		http.Error(w, "missing filename", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		GetMetrics().RecordUploadError()
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	if !writeToStore(store, w, r, filename, body) {
		return
	}

	GetMetrics().RecordUpload(int64(len(body)), time.Since(start))
	Info("file stored", map[string]interface{}{
		"rid":      RequestIDFromContext(r.Context()),
		"filename": filename,
		"bytes":    len(body),
	})

	w.WriteHeader(http.StatusCreated)
}

// multipartUploadHandler serves POST/PUT /upload/mul. Exactly one field is
// consumed: the first one in the stream. Any later fields are discarded
// without error. The part's form name and content type are informational
// only and are not persisted; the part filename is the storage key.
func (cfg Config) multipartUploadHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		start := time.Now()

		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, "bad multipart", http.StatusBadRequest)
			return
		}

		part, err := mr.NextPart()
		if err == io.EOF {
			// Empty form: nothing to store.
			http.Error(w, "missing field", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "bad multipart", http.StatusBadRequest)
			return
		}
		defer func() { _ = part.Close() }()

		fieldName := part.FormName()
		filename := part.FileName()
		contentType := part.Header.Get("Content-Type")
		if filename == "" {
			http.Error(w, "missing filename", http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(part)
		if err != nil {
			GetMetrics().RecordUploadError()
			http.Error(w, "bad multipart", http.StatusBadRequest)
			return
		}

		if !writeToStore(store, w, r, filename, data) {
			return
		}

		GetMetrics().RecordUpload(int64(len(data)), time.Since(start))
		Info("file stored", map[string]interface{}{
			"rid":          RequestIDFromContext(r.Context()),
			"field":        fieldName,
			"filename":     filename,
			"content_type": contentType,
			"bytes":        len(data),
		})

		w.WriteHeader(http.StatusCreated)
	})
}

// writeToStore performs the store write shared by both upload variants and
// resolves failures to a status: a create failure is treated as a client
// error, anything after a successful create is a server error. Reports
// whether the write succeeded.
func writeToStore(store storage.Store, w http.ResponseWriter, r *http.Request, filename string, data []byte) bool {
	err := store.Write(r.Context(), filename, data)
	if err == nil {
		return true
	}

	GetMetrics().RecordUploadError()
	Error("store write failed", map[string]interface{}{
		"rid":      RequestIDFromContext(r.Context()),
		"filename": filename,
	}, err)

	if errors.Is(err, storage.ErrCreateFailed) {
		http.Error(w, "cannot store file", http.StatusBadRequest)
	} else {
		http.Error(w, "write failed", http.StatusInternalServerError)
	}
	return false
}
