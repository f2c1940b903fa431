// Package registry owns the components.schemas namespace of a document
// being normalized: the set of names in use, and the identity-keyed map
// from schema record to the component pointer it has been hoisted to.
//
// Grounded on the componentStorage type in the teacher lineage's
// openapi/bundle.go (schemaStorage/componentNames/schemaLocations fields),
// generalized from the typed bundler's object model to this module's
// generic map[string]any tree.
package registry

import (
	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/internal/identity"
	"github.com/openapi-tools/normalizer/naming"
	"github.com/openapi-tools/normalizer/schemawalk"
)

// Registry tracks the components.schemas namespace of a single document
// being normalized.
type Registry struct {
	doc             map[string]any
	schemas         map[string]any
	names           map[string]bool
	pointerByObject map[identity.Key]docpointer.Pointer
}

// New creates (or adopts) the components.schemas section of doc and seeds
// the registry's indexes from whatever is already there.
func New(doc map[string]any) *Registry {
	components, _ := doc["components"].(map[string]any)
	if components == nil {
		components = map[string]any{}
		doc["components"] = components
	}
	schemas, _ := components["schemas"].(map[string]any)
	if schemas == nil {
		schemas = map[string]any{}
		components["schemas"] = schemas
	}

	r := &Registry{
		doc:             doc,
		schemas:         schemas,
		names:           map[string]bool{},
		pointerByObject: map[identity.Key]docpointer.Pointer{},
	}
	for name, v := range schemas {
		r.names[name] = true
		if key, ok := identity.Of(v); ok {
			r.pointerByObject[key] = docpointer.ComponentSchemaPointer(name)
		}
	}
	return r
}

// Schemas returns the live components.schemas record.
func (r *Registry) Schemas() map[string]any { return r.schemas }

// Names returns the live set of names currently in use, not a copy:
// callers must not mutate the map.
func (r *Registry) Names() map[string]bool { return r.names }

// Lookup returns the pointer obj was registered under, if any.
func (r *Registry) Lookup(obj any) (docpointer.Pointer, bool) {
	key, ok := identity.Of(obj)
	if !ok {
		return "", false
	}
	p, ok := r.pointerByObject[key]
	return p, ok
}

// Register hoists obj into components.schemas under a name derived from
// preferredName (deduplicated against the current namespace), unless obj
// is already registered, in which case its existing pointer is returned.
// Registration is idempotent per object identity.
func (r *Registry) Register(obj any, preferredName string) docpointer.Pointer {
	if p, ok := r.Lookup(obj); ok {
		return p
	}

	name := naming.Unique(r.names, preferredName)
	r.names[name] = true
	r.schemas[name] = obj

	p := docpointer.ComponentSchemaPointer(name)
	if key, ok := identity.Of(obj); ok {
		r.pointerByObject[key] = p
	}
	return p
}

// ReplaceHoistedInlinesWithRefs walks root in schema context and replaces
// any record whose identity is already registered, and whose current
// location differs from its canonical component pointer, with a {$ref:
// pointer} record in its parent slot. Records that are already exactly
// that component root are left alone.
func (r *Registry) ReplaceHoistedInlinesWithRefs(root any) {
	schemawalk.Walk(root, func(value any, p docpointer.Pointer, inSchemaContext bool, parent any, parentKey *string, parentIndex *int) bool {
		if !inSchemaContext {
			return true
		}
		obj, ok := value.(map[string]any)
		if !ok {
			return true
		}
		if _, isRoot := docpointer.ComponentSchemaName(p); isRoot {
			return true
		}
		canonical, ok := r.Lookup(obj)
		if !ok || canonical == p {
			return true
		}
		replacement := refRecord(canonical, obj)
		setInParent(parent, parentKey, parentIndex, replacement)
		return false
	})
}

func refRecord(p docpointer.Pointer, original map[string]any) map[string]any {
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
	switch p := parent.(type) {
	case map[string]any:
		if parentKey != nil {
			p[*parentKey] = value
		}
	case []any:
		if parentIndex != nil {
			p[*parentIndex] = value
		}
	}
}
