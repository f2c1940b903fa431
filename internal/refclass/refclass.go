// Package refclass classifies reference strings as URLs, file paths, or
// JSON Pointer fragments, and joins a base reference with a relative one.
//
// Adapted from the teacher lineage's internal/utils/references.go, trimmed
// to the classification and joining behavior this module's external-file
// predicate (SPEC_FULL.md §4.9) and relative-path resolution need; the rest
// of the original file (detailed ReferenceClassification caching for a
// typed bundler) was unneeded.
package refclass

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind is the classification of a reference string.
type Kind int

const (
	KindUnknown Kind = iota
	KindURL
	KindFilePath
	KindFragment
)

// Classify determines whether ref is a URL, a file path, or a JSON Pointer
// fragment ("#/..."). Windows drive-letter paths (e.g. "C:\foo") are
// recognized as file paths rather than URLs with a single-letter scheme.
func Classify(ref string) Kind {
	if ref == "" {
		return KindUnknown
	}

	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		if len(u.Scheme) == 1 && strings.Contains(ref, "\\") {
			return KindFilePath
		}
		return KindURL
	}

	if strings.HasPrefix(ref, "#") {
		return KindFragment
	}

	if strings.ContainsAny(ref, "/\\") || strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || filepath.IsAbs(ref) {
		return KindFilePath
	}

	// Ambiguous bare name: treat as a relative file path, matching the
	// conservative default used elsewhere in this lineage.
	return KindFilePath
}

// IsExternalFileReference implements the SPEC_FULL.md §4.9 predicate: ref
// does not have a URI scheme, is not a local JSON-pointer fragment, and
// ends (ignoring a trailing "#fragment") with .yaml, .yml, or .json.
func IsExternalFileReference(ref string) bool {
	if ref == "" {
		return false
	}
	if Classify(ref) == KindURL {
		return false
	}
	if strings.HasPrefix(ref, "#/") || ref == "#" {
		return false
	}

	path := ref
	if idx := strings.Index(ref, "#"); idx != -1 {
		path = ref[:idx]
	}
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

// Join resolves relative against base, where base is a file path or URL.
// Fragment-only relatives replace base's fragment. File paths are joined
// with forward-slash normalization so results are OpenAPI/JSON-Schema
// reference compatible regardless of host OS.
func Join(base, relative string) (string, error) {
	if relative == "" {
		return base, nil
	}
	if base == "" {
		return relative, nil
	}

	if strings.HasPrefix(relative, "#") {
		if idx := strings.Index(base, "#"); idx != -1 {
			base = base[:idx]
		}
		return base + relative, nil
	}

	switch Classify(base) {
	case KindURL:
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("invalid base URL: %w", err)
		}
		relURL, err := url.Parse(relative)
		if err != nil {
			return "", fmt.Errorf("invalid relative URL: %w", err)
		}
		return baseURL.ResolveReference(relURL).String(), nil
	default:
		if filepath.IsAbs(relative) || strings.HasPrefix(relative, "/") {
			return relative, nil
		}
		dir := filepath.Dir(strings.ReplaceAll(base, "\\", "/"))
		joined := filepath.Join(dir, relative)
		return strings.ReplaceAll(joined, "\\", "/"), nil
	}
}
