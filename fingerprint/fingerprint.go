// Package fingerprint computes a deterministic structural hash of a schema
// node so that clones produced by an upstream bundler can be recognized as
// the same logical schema.
//
// The approach - recursively normalize, then hash the canonical form - is
// grounded on the teacher lineage's hashing package (sorted map keys,
// struct/field skip rules), generalized from reflection over typed structs
// to a plain map[string]any/[]any tree. Canonicalization is delegated to
// goccy/go-json rather than encoding/json for the same throughput reason
// the pack's JSON-Schema validator reaches for it: fingerprinting runs once
// per schema node per fixpoint iteration over potentially large documents.
package fingerprint

import (
	"hash/fnv"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/openapi-tools/normalizer/internal/identity"
)

// circularSentinel is substituted for any value whose identity has already
// been entered higher up the current recursion, so cyclic schemas still
// produce a stable, comparable fingerprint.
const circularSentinel = "[Circular]"

// Of returns the fingerprint of schema. root selects whether "summary" and
// "description" keys are dropped before hashing - callers pass true only
// for the outermost node of the schema being fingerprinted, since those two
// keys are considered presentation-only at the root but semantically
// significant when they annotate a nested subschema.
func Of(schema any, root bool) string {
	entered := map[identity.Key]bool{}
	normalized := normalize(schema, root, entered)
	canonical, err := gojson.Marshal(normalized)
	if err != nil {
		// Marshal of a normalize()-produced tree (sorted maps, slices,
		// JSON scalars only) cannot fail; this is unreachable in practice.
		canonical = []byte(circularSentinel)
	}
	h := fnv.New64a()
	_, _ = h.Write(canonical)
	return formatHash(h.Sum64())
}

func normalize(v any, root bool, entered map[identity.Key]bool) any {
	switch tv := v.(type) {
	case map[string]any:
		if key, ok := identity.Record(tv); ok {
			if entered[key] {
				return circularSentinel
			}
			entered[key] = true
			defer delete(entered, key)
		}

		keys := make([]string, 0, len(tv))
		for k := range tv {
			if root && (k == "summary" || k == "description") {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[k] = normalize(tv[k], false, entered)
		}
		return out
	case []any:
		if key, ok := identity.Of(tv); ok {
			if entered[key] {
				return circularSentinel
			}
			entered[key] = true
			defer delete(entered, key)
		}
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = normalize(item, false, entered)
		}
		return out
	default:
		return tv
	}
}

// formatHash renders a 64-bit hash as zero-padded lowercase hex without the
// overhead of fmt.Sprintf, matching the convention used elsewhere in this
// lineage for hash formatting.
func formatHash(h uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[h&0xf]
		h >>= 4
	}
	return string(buf)
}
