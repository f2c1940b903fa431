// Package naming derives component names for hoisted schemas from the
// places they were found - an external file path or the JSON pointer at
// which they were discovered - and deduplicates names inside a shared
// namespace.
//
// Grounded on the teacher lineage's component-naming chain in
// openapi/bundle.go (generateFilePathBasedName, normalizePathForComponentName,
// generateCounterBasedName, extractSimpleNameFromReference).
package naming

import (
	"path"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openapi-tools/normalizer/docpointer"
)

var titleCaser = cases.Title(language.Und)

// ignoredPointerTokens are pointer segments that describe structural
// position rather than identity, and are skipped when deriving a name from
// a JSON pointer.
var ignoredPointerTokens = map[string]bool{
	"allOf": true, "anyOf": true, "components": true, "content": true,
	"items": true, "oneOf": true, "paths": true, "get": true, "put": true,
	"post": true, "patch": true, "delete": true, "head": true, "trace": true,
	"options": true, "requestBody": true, "responses": true, "schema": true,
	"schemas": true,
}

const defaultName = "Schema"

// FromSourcePath derives a candidate name from an external file path: its
// basename with the final extension stripped, with any character outside
// [A-Za-z0-9._-] replaced by '-'.
func FromSourcePath(sourcePath string) string {
	base := path.Base(filepathToSlash(sourcePath))
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == "/" {
		return defaultName
	}

	var sb strings.Builder
	for _, r := range base {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('-')
		}
	}
	result := sb.String()
	if result == "" {
		return defaultName
	}
	return result
}

// FromPointer derives a candidate name from a JSON pointer by scanning its
// tokens from the end, skipping purely positional ones, and PascalCasing
// the first acceptable token found.
func FromPointer(p docpointer.Pointer) string {
	toks := docpointer.Tokens(p)
	for i := len(toks) - 1; i >= 0; i-- {
		tok := toks[i]
		if tok == "" {
			continue
		}
		if isAllDigits(tok) {
			continue
		}
		if strings.Contains(tok, "/") {
			continue
		}
		if strings.HasPrefix(tok, "application/") {
			continue
		}
		if ignoredPointerTokens[tok] {
			continue
		}
		return PascalCase(tok)
	}
	return defaultName
}

// PascalCase normalizes an arbitrary token into a PascalCase identifier
// suitable for a component name: strip a trailing extension, split on
// non-alphanumeric runs, title-case each piece with golang.org/x/text/cases
// for locale-aware casing, and join. An empty result falls back to the
// default name.
func PascalCase(s string) string {
	if ext := path.Ext(s); ext != "" && ext != s {
		s = strings.TrimSuffix(s, ext)
	}

	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	if len(words) == 0 {
		return defaultName
	}

	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	result := sb.String()
	if result == "" {
		return defaultName
	}
	return result
}

// Unique returns a name guaranteed not to be present in taken: preferred
// itself if free, otherwise preferred with "_2", "_3", ... appended until a
// free name is found. It does not mutate taken; callers insert the chosen
// name themselves once they commit to using it.
func Unique(taken map[string]bool, preferred string) string {
	if preferred == "" {
		preferred = defaultName
	}
	if !taken[preferred] {
		return preferred
	}
	for i := 2; ; i++ {
		candidate := preferred + "_" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
