package normalize

import (
	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/resolver"
	"github.com/openapi-tools/normalizer/schemawalk"
)

// inlineDedupeFixpoint implements SPEC_FULL.md §4.8.3: repeatedly scan for
// inline schemas that are recognizably the same object as an already-known
// external or hoisted component (by identity, then by unique fingerprint
// against a freshly rebuilt index), replacing each with a $ref. The loop
// stops as soon as one full traversal makes no change, or after the
// configured safety-valve iteration count.
func (p *pipeline) inlineDedupeFixpoint() {
	for iter := 0; iter < p.opts.maxFixpointIterations(); iter++ {
		idx := resolver.BuildFingerprintIndex(p.externalCandidateComponents())
		changed := false

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
			if isAlreadyRefShape(m) {
				return true
			}

			name, ok := p.resolver.ResolveExternalSchemaCandidate(m)
			if !ok {
				name, ok = p.resolver.ResolveExternalComponentCandidate(m, idx)
				if !ok {
					return true
				}
			}

			componentPtr := p.registry.Register(m, name)
			if componentPtr == ptr {
				// this occurrence already is the canonical one; nothing to rewrite
				return true
			}

			replacement := refRecordFrom(m, componentPtr)
			setInParent(parent, parentKey, parentIndex, replacement)
			changed = true
			return false
		})

		if !changed {
			break
		}
	}
}

// externalCandidateComponents restricts components.schemas to the subset
// known to have come from an external source path, so fingerprint lookups
// during dedupe never accidentally fold two independently authored inline
// schemas together just because they happen to be shaped alike.
func (p *pipeline) externalCandidateComponents() map[string]any {
	out := map[string]any{}
	for name, schema := range p.registry.Schemas() {
		if _, ok := p.resolver.SourcePathForComponentName(name); ok {
			out[name] = schema
		}
	}
	return out
}

func isAlreadyRefShape(m map[string]any) bool {
	if _, ok := m["$ref"]; !ok {
		return false
	}
	for k := range m {
		if k != "$ref" && k != "summary" && k != "description" {
			return false
		}
	}
	return true
}

func refRecordFrom(original map[string]any, p docpointer.Pointer) map[string]any {
	out := map[string]any{"$ref": string(p)}
	if s, ok := original["summary"]; ok {
		out["summary"] = s
	}
	if d, ok := original["description"]; ok {
		out["description"] = d
	}
	return out
}

func setInParent(parent any, parentKey *string, parentIndex *int, value any) {
	switch par := parent.(type) {
	case map[string]any:
		if parentKey != nil {
			par[*parentKey] = value
		}
	case []any:
		if parentIndex != nil {
			par[*parentIndex] = value
		}
	}
}
