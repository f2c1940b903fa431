// Package schemawalk implements the schema-context-aware tree traversal
// this module's rewrite passes are built on: a recursive walk over a
// decoded map[string]any/[]any document that tracks whether the current
// position was reached through a JSON-Schema-context key, and is safe
// against cycles introduced by a bundler that shares subtrees by
// reference.
//
// Grounded on the teacher lineage's generic yaml.Node walker (yml/walk.go)
// and its incremental JSON-pointer-building LocationContext
// (walk/locations.go), reworked against docpointer and the identity-keyed
// cycle guard idiom used throughout the example corpus.
package schemawalk

import (
	"strconv"

	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/internal/identity"
)

// schemaContextKeys are the JSON-Schema/OpenAPI keywords whose children are
// reached in "schema context" - i.e. are themselves schema nodes, as
// opposed to arbitrary payloads like example/examples values.
var schemaContextKeys = map[string]bool{
	"$defs": true, "additionalProperties": true, "allOf": true, "anyOf": true,
	"contains": true, "definitions": true, "dependentSchemas": true,
	"else": true, "if": true, "items": true, "not": true, "oneOf": true,
	"patternProperties": true, "prefixItems": true, "properties": true,
	"propertyNames": true, "schema": true, "schemas": true, "then": true,
	"unevaluatedItems": true, "unevaluatedProperties": true,
}

// Visitor is invoked for every record, array, and scalar encountered during
// a walk, before its children (if any) are visited. parent is the
// containing map or slice (nil at the root); parentKey is the map key (for
// a map parent) used to reach value, or nil; parentIndex is the slice
// index used to reach value, or nil.
//
// Returning false from Visitor skips descending into value's children;
// returning true continues the walk normally.
type Visitor func(value any, p docpointer.Pointer, inSchemaContext bool, parent any, parentKey *string, parentIndex *int) bool

// Walk traverses root, invoking visit on every node. inSchemaContext starts
// false for root itself, per the design: being a schema document doesn't
// make the whole tree a schema, only children reached via a schema-context
// key are.
func Walk(root any, visit Visitor) {
	entered := map[identity.Key]bool{}
	walk(root, "#", false, nil, nil, nil, visit, entered)
}

func walk(value any, p docpointer.Pointer, inSchemaContext bool, parent any, parentKey *string, parentIndex *int, visit Visitor, entered map[identity.Key]bool) {
	descend := visit(value, p, inSchemaContext, parent, parentKey, parentIndex)
	if !descend {
		return
	}

	switch v := value.(type) {
	case map[string]any:
		key, hasKey := identity.Record(v)
		if hasKey {
			if entered[key] {
				return
			}
			entered[key] = true
			defer delete(entered, key)
		}
		for k, child := range v {
			childCtx := inSchemaContext || schemaContextKeys[k]
			kk := k
			walk(child, childPointer(p, k), childCtx, v, &kk, nil, visit, entered)
		}
	case []any:
		key, hasKey := identity.Of(v)
		if hasKey {
			if entered[key] {
				return
			}
			entered[key] = true
			defer delete(entered, key)
		}
		for i, child := range v {
			idx := i
			walk(child, childPointer(p, strconv.Itoa(i)), inSchemaContext, v, nil, &idx, visit, entered)
		}
	default:
		// scalar or nil: nothing to descend into
	}
}

func childPointer(parent docpointer.Pointer, token string) docpointer.Pointer {
	if parent == "#" {
		return docpointer.Pointer("#/" + docpointer.Encode(token))
	}
	return parent + "/" + docpointer.Pointer(docpointer.Encode(token))
}
