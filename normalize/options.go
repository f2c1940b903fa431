package normalize

import "log/slog"

// Options carries the knobs the normalize pipeline exposes. The zero value
// is usable: logging goes to slog.Default() and the fixpoint passes are
// bounded by a generous default safety valve.
type Options struct {
	// Logger receives debug-level records for a skipped document and for
	// swallowed errors (SPEC_FULL.md §10.1). Defaults to slog.Default() when
	// nil.
	Logger *slog.Logger

	// MaxFixpointIterations bounds the inline-dedupe and
	// discriminator-mapping fixpoint loops, guarding against a malformed
	// document that could otherwise never stabilize. Defaults to 64.
	MaxFixpointIterations int

	// CounterNaming selects a Schema_1, Schema_2, ... naming source for
	// deep-pointer schemas that have no known external candidate name,
	// instead of the default name derived from the referencing pointer's
	// last meaningful token. Mirrors the teacher lineage's counter vs.
	// filepath BundleNamingStrategy choice, narrowed to the one case in
	// this pipeline where the naming source is a free choice.
	CounterNaming bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) maxFixpointIterations() int {
	if o.MaxFixpointIterations > 0 {
		return o.MaxFixpointIterations
	}
	return 64
}
