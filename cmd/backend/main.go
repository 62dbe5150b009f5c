package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filedrop/internal/server"
	"filedrop/internal/storage"
)

func main() {
	// Fail fast on a broken environment before constructing anything.
	if err := server.ValidateAllConfiguration(); err != nil {
		log.Printf("service=backend msg=%q err=%v", "config_invalid", err)
		os.Exit(1)
	}

	addr := getenvDefault("FD_ADDR", ":3000")

	build := server.BuildInfo{
		Version: getenvDefault("FD_VERSION", "dev"),
		Commit:  getenvDefault("FD_COMMIT", "unknown"),
	}

	store, cleanup, err := buildStore()
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "storage_init_failed", err)
		os.Exit(1)
	}
	defer cleanup()

	srv := server.New(server.Config{
		Addr:  addr,
		Build: build,
		Store: store,
	})

	// Start the HTTP server in a background goroutine so we can listen
	// for OS signals while it runs.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=backend msg=%q addr=%s version=%s", "listening", addr, build.Version)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("service=backend msg=%q signal=%s", "shutting_down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("service=backend msg=%q err=%v", "shutdown_error", err)
			os.Exit(1)
		}
	case err := <-errCh:
		// Server error: exit immediately.
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "server_error", err)
			os.Exit(1)
		}
	}
}

// buildStore constructs the storage backend selected by FD_STORE. The
// directory backend creates its root here, once, before any handler runs.
func buildStore() (storage.Store, func(), error) {
	noop := func() {}

	switch getenvDefault("FD_STORE", "dir") {
	case "memory":
		return storage.NewMemStore(), noop, nil

	case "s3":
		st, err := storage.NewObjectStore(storage.ObjectStoreConfig{
			Endpoint:  os.Getenv("FD_S3_ENDPOINT"),
			AccessKey: os.Getenv("FD_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("FD_S3_SECRET_KEY"),
			Bucket:    os.Getenv("FD_BUCKET"),
		})
		return st, noop, err

	case "postgres":
		st, err := storage.NewPGStore(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, noop, err
		}
		return st, func() { _ = st.Close() }, nil

	default: // dir
		st, err := storage.NewDirStore(getenvDefault("FD_DATA_DIR", "uploads"))
		return st, noop, err
	}
}

// getenvDefault reads an environment variable and returns a default value
// if not set.
func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
