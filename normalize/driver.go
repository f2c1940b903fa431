// Package normalize implements the post-bundling OpenAPI normalizer: it
// hoists schemas reachable only through external files or deep document
// pointers into #/components/schemas/<Name> and rewrites references to
// match, driving the rewrite passes to a fixpoint.
//
// The pass sequence and its "ambiguous means do nothing" policy are
// grounded on the teacher lineage's openapi.Bundle orchestration
// (openapi/bundle.go), generalized from its typed object model to the
// generic map[string]any tree this module operates on, and enriched with
// the discriminator-mapping/source-template behavior grounded on the
// example pack's standalone bundler-composer and schema-rewriter files
// (see DESIGN.md).
package normalize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/errors"
	"github.com/openapi-tools/normalizer/loader"
	"github.com/openapi-tools/normalizer/naming"
	"github.com/openapi-tools/normalizer/registry"
	"github.com/openapi-tools/normalizer/resolver"
)

// pipeline holds the state shared by every pass of a single Normalize
// invocation.
type pipeline struct {
	ctx      context.Context
	doc      map[string]any
	parser   loader.Parser
	registry *registry.Registry
	resolver *resolver.Resolver
	logger   *slog.Logger
	opts     Options
	counter  int
}

// nextCounterName returns the next name in the "Schema_1", "Schema_2", ...
// sequence used when Options.CounterNaming is set. Registry.Register still
// deduplicates the result against the live namespace, so collisions with a
// user-authored "Schema_1" are still handled.
func (p *pipeline) nextCounterName() string {
	p.counter++
	return fmt.Sprintf("Schema_%d", p.counter)
}

// Normalize mutates p.Document() in place per SPEC_FULL.md §4.8, and
// returns nil on success. It is a no-op - it does not touch the document
// at all - if the document is not recognizable as OpenAPI 3.x, or if the
// parser reports no loaded-path metadata (a nil slice). The only non-nil
// error this can return is context cancellation/deadline between passes.
func Normalize(ctx context.Context, p loader.Parser, opts Options) error {
	logger := opts.logger()
	doc := p.Document()

	if !isOpenAPI3Document(doc) {
		logger.Debug("normalize: skipping", "reason", errors.ErrUnrecognizedDocument)
		return nil
	}

	loadedPaths := p.LoadedPaths()
	if loadedPaths == nil {
		logger.Debug("normalize: skipping, parser reports no loaded-path metadata")
		return nil
	}

	reg := registry.New(doc)

	pipe := &pipeline{
		ctx:      ctx,
		doc:      doc,
		parser:   p,
		registry: reg,
		resolver: resolver.New(),
		logger:   logger,
		opts:     opts,
	}

	steps := []func(){
		func() { pipe.hoistDeclaredExternals(loadedPaths) },
		pipe.rewriteLocalRefs,
		pipe.inlineDedupeFixpoint,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		step()
	}

	for i := 0; i < 2; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pipe.rewriteDiscriminatorMappings()

		if err := ctx.Err(); err != nil {
			return err
		}
		pipe.reconstructSourceTemplates()
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	pipe.registry.ReplaceHoistedInlinesWithRefs(doc)

	return nil
}

func isOpenAPI3Document(doc map[string]any) bool {
	if doc == nil {
		return false
	}
	v, ok := doc["openapi"].(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(v, "3.")
}

// componentNameOf returns the component name schema is currently
// registered under, or "" if it hasn't been hoisted.
func (p *pipeline) componentNameOf(schema any) string {
	ptr, ok := p.registry.Lookup(schema)
	if !ok {
		return ""
	}
	name, _ := docpointer.ComponentSchemaName(ptr)
	return name
}

// ensureLoaded returns the parsed value for sourcePath, loading it via the
// parser if necessary, per SPEC_FULL.md §4.7: cached results are reused,
// re-entrant loads of a path already in flight return false, and parse
// failures are swallowed and logged at debug level.
func (p *pipeline) ensureLoaded(sourcePath string) (any, bool) {
	if obj, ok := p.resolver.ObjectForSourcePath(sourcePath); ok {
		return obj, true
	}
	if cached, ok := p.parser.GetLoaded(sourcePath); ok {
		if !resolver.IsLikelySchema(cached) {
			p.logger.Debug("normalize: loaded value is not schema-shaped", "path", sourcePath, "error", errors.ErrNotASchema)
			return nil, false
		}
		p.registerExternal(sourcePath, cached)
		return cached, true
	}

	if !p.resolver.BeginLoading(sourcePath) {
		return nil, false
	}
	defer p.resolver.EndLoading(sourcePath)

	obj, err := p.parser.Parse(p.ctx, sourcePath, loader.ParserOptions{})
	if err != nil {
		p.logger.Debug("normalize: failed to load external schema", "path", sourcePath, "error", errors.ErrSourceNotLoaded.Wrap(err))
		return nil, false
	}
	if !resolver.IsLikelySchema(obj) {
		p.logger.Debug("normalize: loaded value is not schema-shaped", "path", sourcePath, "error", errors.ErrNotASchema)
		return nil, false
	}
	p.registerExternal(sourcePath, obj)
	return obj, true
}

func (p *pipeline) registerExternal(sourcePath string, obj any) {
	p.resolver.RegisterExternalSourcePath(sourcePath, obj)
	p.resolver.AddExternalNameCandidate(obj, naming.FromSourcePath(sourcePath))
}
