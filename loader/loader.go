// Package loader defines the Parser abstraction the normalizer consumes
// (SPEC_FULL.md §6) and a default YAML-backed implementation of it.
//
// The normalizer never opens files itself: it is handed a Parser that
// already knows the document, which paths were loaded to produce it, and
// how to parse a not-yet-seen file on demand. This mirrors the separation
// in the teacher lineage between openapi.Bundle (operates on an in-memory
// document plus metadata) and its own file-reading CLI layer
// (openapi/cmd/bundle.go).
package loader

import "context"

// ParserOptions carries the few knobs a Parse call needs: the directory a
// relative path should be resolved against.
type ParserOptions struct {
	RootPath string
}

// Parser is the bundler abstraction the normalizer operates against.
type Parser interface {
	// Document returns the mutable root document tree.
	Document() map[string]any

	// LoadedPaths returns every resource path the bundler touched while
	// producing Document, in load order. The first entry is conventionally
	// the root document itself.
	LoadedPaths() []string

	// GetLoaded returns the already-parsed value for path, if the bundler
	// (or a previous Parse call) has loaded it.
	GetLoaded(path string) (any, bool)

	// Parse loads and parses path, returning its top-level document as a
	// map[string]any. Implementations should cache the result so repeated
	// calls for the same path are cheap and visible to GetLoaded.
	Parse(ctx context.Context, path string, opts ParserOptions) (map[string]any, error)
}
