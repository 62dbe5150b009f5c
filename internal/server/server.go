package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"filedrop/internal/storage"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
}

// Config carries everything a Server needs. The storage backend is
// injected here so handlers never reach for ambient filesystem state and
// tests can swap in storage.MemStore.
type Config struct {
	Addr  string // e.g. ":3000"
	Build BuildInfo
	Store storage.Store
}

type Server struct {
	httpServer *http.Server
	cfg        Config
}

func New(cfg Config) *Server {
	mux := http.NewServeMux()

	// "/" doubles as the liveness probe and the 404 fallback: ServeMux
	// routes every unmatched path here.
	mux.Handle("/", cfg.rootHandler())
	mux.Handle("/upload", cfg.uploadHandler(cfg.Store))
	mux.Handle("/upload/mul", cfg.multipartUploadHandler(cfg.Store))
	mux.Handle("/list", cfg.listHandler(cfg.Store))
	mux.Handle("/download", cfg.downloadHandler(cfg.Store))
	mux.Handle("/healthz", cfg.healthHandler(cfg.Store))
	mux.Handle("/metrics", PrometheusMetricsHandler(cfg.Build))

	// Wrap middleware: requestID -> logging -> security -> compression -> mux
	var handler http.Handler = mux
	handler = compressionMiddleware(handler)
	handler = securityHeadersMiddleware(handler)
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{httpServer: s, cfg: cfg}
}

// Handler exposes the full middleware-wrapped handler, mainly for
// httptest-based suites.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
