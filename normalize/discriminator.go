package normalize

import (
	"path"
	"strings"

	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/errors"
	"github.com/openapi-tools/normalizer/internal/refclass"
	"github.com/openapi-tools/normalizer/naming"
	"github.com/openapi-tools/normalizer/schemawalk"
)

// rewriteDiscriminatorMappings implements SPEC_FULL.md §4.8.4: every
// discriminator.mapping value that looks like an external file reference
// (internal/refclass.IsExternalFileReference) is resolved to the component
// it was (or now is) hoisted to, by basename, then by the source path of
// its containing schema, then by an existing component whose derived name
// matches. Unresolved mappings are left untouched. Runs to a fixpoint: one
// full traversal with no change ends the pass, as does reaching the
// configured safety-valve iteration count.
func (p *pipeline) rewriteDiscriminatorMappings() {
	for iter := 0; iter < p.opts.maxFixpointIterations(); iter++ {
		changed := false
		schemawalk.Walk(p.doc, func(value any, ptr docpointer.Pointer, inSchemaContext bool, parent any, parentKey *string, parentIndex *int) bool {
			if !inSchemaContext {
				return true
			}
			m, ok := value.(map[string]any)
			if !ok {
				return true
			}
			disc, ok := m["discriminator"].(map[string]any)
			if !ok {
				return true
			}
			mapping, ok := disc["mapping"].(map[string]any)
			if !ok {
				return true
			}

			for key, raw := range mapping {
				s, ok := raw.(string)
				if !ok {
					continue
				}
				if strings.HasPrefix(s, "#/components/schemas/") {
					continue
				}
				if !refclass.IsExternalFileReference(s) {
					continue
				}
				resolved, ok := p.resolveDiscriminatorTarget(s, m)
				if !ok {
					continue
				}
				mapping[key] = resolved
				changed = true
			}
			return true
		})
		if !changed {
			break
		}
	}
}

// resolveDiscriminatorTarget resolves a discriminator mapping value that
// looks like an external file reference to a component pointer.
func (p *pipeline) resolveDiscriminatorTarget(pathRef string, containing map[string]any) (string, bool) {
	filePart, _ := splitFragment(pathRef)
	baseName := strings.ToLower(path.Base(filepathToSlash(filePart)))

	sourcePath, ok := p.resolver.ResolveMatchingSourcePath(filePart, baseName)
	if !ok {
		sourcePath, ok = p.resolver.ResolveSourcePathFromSchemaContext(filePart, containing, p.componentNameOf(containing), refclass.Join)
	}
	if !ok {
		derivedName := naming.FromSourcePath(baseName)
		if _, exists := p.registry.Schemas()[derivedName]; exists {
			return string(docpointer.ComponentSchemaPointer(derivedName)), true
		}
		if p.resolver.HasAmbiguousSourcePathCandidates(baseName) {
			p.logger.Debug("normalize: discriminator mapping target is ambiguous", "ref", pathRef, "error", errors.ErrAmbiguousCandidate)
		}
		return "", false
	}

	obj, ok := p.ensureLoaded(sourcePath)
	if !ok {
		return "", false
	}

	name, ok := p.resolver.ComponentNameForSourcePath(sourcePath)
	if !ok {
		name = naming.FromSourcePath(sourcePath)
	}
	componentPtr := p.registry.Register(obj, name)
	if cname, ok := docpointer.ComponentSchemaName(componentPtr); ok {
		p.resolver.SetComponentSourcePath(cname, sourcePath)
	}
	return string(componentPtr), true
}

// reconstructSourceTemplates implements SPEC_FULL.md §4.8.5: for every
// component known to have been hoisted from an external file, walk the
// original source file and the bundled component in parallel, and wherever
// the source has a $ref to a further external file, replace the
// corresponding bundled node with a $ref to that file's component.
func (p *pipeline) reconstructSourceTemplates() {
	for name, sourcePath := range p.resolver.ComponentSourcePaths() {
		bundled, ok := p.registry.Schemas()[name]
		if !ok {
			continue
		}
		sourceObj, ok := p.ensureLoaded(sourcePath)
		if !ok {
			continue
		}

		schemas := p.registry.Schemas()
		nm := name
		p.reconcile(bundled, sourceObj, sourcePath, func(v any) { schemas[nm] = v })
	}
}

// reconcile mirrors bundledValue against sourceValue: maps recurse by key
// (only keys present on both sides), arrays recurse positionally up to the
// shorter length, and a source record carrying a $ref to a further
// external file causes the whole node to be replaced via set. Scalars and
// shapes that don't match between the two sides are left as the bundled
// value already is.
func (p *pipeline) reconcile(bundledValue, sourceValue any, sourcePath string, set func(any)) {
	switch sv := sourceValue.(type) {
	case map[string]any:
		bv, ok := bundledValue.(map[string]any)
		if !ok {
			return
		}
		if refVal, ok := sv["$ref"].(string); ok && refclass.IsExternalFileReference(refVal) {
			if resolved, ok := p.resolveTemplateRef(refVal, sourcePath); ok {
				replacement := map[string]any{"$ref": resolved}
				if s, ok := sv["summary"]; ok {
					replacement["summary"] = s
				}
				if d, ok := sv["description"]; ok {
					replacement["description"] = d
				}
				set(replacement)
				return
			}
		}
		for key, childSource := range sv {
			childBundled, ok := bv[key]
			if !ok {
				continue
			}
			kk := key
			p.reconcile(childBundled, childSource, sourcePath, func(v any) { bv[kk] = v })
		}
	case []any:
		bv, ok := bundledValue.([]any)
		if !ok {
			return
		}
		n := len(bv)
		if len(sv) < n {
			n = len(sv)
		}
		for i := 0; i < n; i++ {
			idx := i
			p.reconcile(bv[idx], sv[idx], sourcePath, func(v any) { bv[idx] = v })
		}
	default:
		// scalar: bundled value is kept as-is
	}
}

func (p *pipeline) resolveTemplateRef(refVal, sourcePath string) (string, bool) {
	filePart, _ := splitFragment(refVal)

	resolved, err := refclass.Join(sourcePath, filePart)
	if err != nil {
		return "", false
	}
	obj, ok := p.ensureLoaded(resolved)
	if !ok {
		return "", false
	}

	name, ok := p.resolver.ComponentNameForSourcePath(resolved)
	if !ok {
		name = naming.FromSourcePath(resolved)
	}
	componentPtr := p.registry.Register(obj, name)
	if cname, ok := docpointer.ComponentSchemaName(componentPtr); ok {
		p.resolver.SetComponentSourcePath(cname, resolved)
	}
	return string(componentPtr), true
}

func splitFragment(ref string) (path, fragment string) {
	if idx := strings.Index(ref, "#"); idx != -1 {
		return ref[:idx], ref[idx:]
	}
	return ref, ""
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
