package normalize

import (
	"strings"

	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/errors"
	"github.com/openapi-tools/normalizer/naming"
	"github.com/openapi-tools/normalizer/schemawalk"
)

// rewriteLocalRefs implements SPEC_FULL.md §4.8.2: a $ref pointing deep
// into the document (rather than to a URI or an existing component) is
// resolved locally, the target hoisted under a name preferring a known
// external candidate name, and the $ref rewritten to the component
// pointer.
func (p *pipeline) rewriteLocalRefs() {
	schemawalk.Walk(p.doc, func(value any, ptr docpointer.Pointer, inSchemaContext bool, parent any, parentKey *string, parentIndex *int) bool {
		if !inSchemaContext {
			return true
		}
		m, ok := value.(map[string]any)
		if !ok {
			return true
		}
		refVal, ok := m["$ref"].(string)
		if !ok {
			return true
		}
		refPtr := docpointer.Pointer(refVal)
		if !strings.HasPrefix(refVal, "#/") {
			return true
		}
		if _, isComponent := docpointer.ComponentSchemaName(refPtr); isComponent {
			return true
		}

		target, ok := docpointer.ResolveLocal(p.doc, refPtr)
		if !ok {
			p.logger.Debug("normalize: local ref does not resolve", "ref", refVal, "error", errors.ErrInvalidPointer)
			return true
		}
		targetRecord, ok := target.(map[string]any)
		if !ok {
			return true
		}

		name, ok := p.resolver.ResolveExternalSchemaCandidate(targetRecord)
		if !ok {
			if p.opts.CounterNaming {
				name = p.nextCounterName()
			} else {
				name = naming.FromPointer(refPtr)
			}
		}
		componentPtr := p.registry.Register(targetRecord, name)
		m["$ref"] = string(componentPtr)
		return true
	})
}
