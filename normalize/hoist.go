package normalize

import (
	"sort"

	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/errors"
	"github.com/openapi-tools/normalizer/internal/identity"
	"github.com/openapi-tools/normalizer/loader"
	"github.com/openapi-tools/normalizer/naming"
	"github.com/openapi-tools/normalizer/resolver"
	"github.com/openapi-tools/normalizer/schemawalk"
)

// hoistDeclaredExternals implements SPEC_FULL.md §4.8.1: every path the
// bundler reports as loaded (other than the root document itself) is
// pre-registered as an external candidate, then every occurrence of one of
// those external objects found in schema context is hoisted into
// components.schemas, processed in lexicographic source-path order so that
// name assignment is deterministic for a given input.
func (p *pipeline) hoistDeclaredExternals(loadedPaths []string) {
	if len(loadedPaths) == 0 {
		return
	}

	for _, path := range loadedPaths[1:] {
		obj, ok := p.parser.GetLoaded(path)
		if !ok {
			var err error
			obj, err = p.parser.Parse(p.ctx, path, loader.ParserOptions{})
			if err != nil {
				p.logger.Debug("normalize: failed to load declared external path", "path", path, "error", errors.ErrSourceNotLoaded.Wrap(err))
				continue
			}
		}
		if !resolver.IsLikelySchema(obj) {
			p.logger.Debug("normalize: declared external path is not schema-shaped", "path", path, "error", errors.ErrNotASchema)
			continue
		}
		p.registerExternal(path, obj)
	}

	type occurrence struct {
		sourcePath string
		obj        map[string]any
	}
	var occurrences []occurrence
	seen := map[identity.Key]bool{}

	schemawalk.Walk(p.doc, func(value any, ptr docpointer.Pointer, inSchemaContext bool, parent any, parentKey *string, parentIndex *int) bool {
		if !inSchemaContext {
			return true
		}
		m, ok := value.(map[string]any)
		if !ok {
			return true
		}
		if _, isRoot := docpointer.ComponentSchemaName(ptr); isRoot {
			return true
		}
		sourcePath, ok := p.resolver.SourcePath(m)
		if !ok {
			return true
		}
		key, ok := identity.Record(m)
		if !ok || seen[key] {
			return true
		}
		seen[key] = true
		occurrences = append(occurrences, occurrence{sourcePath: sourcePath, obj: m})
		return true
	})

	sort.Slice(occurrences, func(i, j int) bool { return occurrences[i].sourcePath < occurrences[j].sourcePath })

	for _, occ := range occurrences {
		name := naming.FromSourcePath(occ.sourcePath)
		componentPtr := p.registry.Register(occ.obj, name)
		if cname, ok := docpointer.ComponentSchemaName(componentPtr); ok {
			p.resolver.SetComponentSourcePath(cname, occ.sourcePath)
		}
	}
}
