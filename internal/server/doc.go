// Package server implements the HTTP surface of filedrop. It wires the
// routes together with the injected storage backend and provides the
// lifecycle helpers used by tests and the production binary.
package server
