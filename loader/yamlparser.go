package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAMLParser is the default Parser implementation: it reads the root
// document and any externally referenced files through a VirtualFS with
// gopkg.in/yaml.v3, the same library the teacher lineage uses throughout
// its own document handling (yml package, sequencedmap (un)marshalling)
// and for its overlay file loader.
type YAMLParser struct {
	fsys        VirtualFS
	rootPath    string
	document    map[string]any
	cache       map[string]any
	loadedPaths []string
}

var _ Parser = (*YAMLParser)(nil)

// LoadFile reads rootPath as the root document off the host filesystem and
// returns a YAMLParser seeded with it as the first (and so far only) loaded
// path.
func LoadFile(rootPath string) (*YAMLParser, error) {
	return LoadFileFS(OSFileSystem{}, rootPath)
}

// LoadFileFS is LoadFile against a caller-supplied VirtualFS, letting tests
// and embedders substitute an in-memory or otherwise virtual filesystem for
// the host one.
func LoadFileFS(fsys VirtualFS, rootPath string) (*YAMLParser, error) {
	data, err := fs.ReadFile(fsys, rootPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rootPath, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rootPath, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	abs, err := filepath.Abs(rootPath)
	if err != nil {
		abs = rootPath
	}

	return &YAMLParser{
		fsys:        fsys,
		rootPath:    abs,
		document:    doc,
		cache:       map[string]any{abs: doc},
		loadedPaths: []string{abs},
	}, nil
}

func (p *YAMLParser) Document() map[string]any { return p.document }

func (p *YAMLParser) LoadedPaths() []string {
	out := make([]string, len(p.loadedPaths))
	copy(out, p.loadedPaths)
	return out
}

func (p *YAMLParser) GetLoaded(path string) (any, bool) {
	v, ok := p.cache[path]
	return v, ok
}

// Parse loads and parses path (resolved against opts.RootPath if relative),
// caching and recording it as an additional loaded path.
func (p *YAMLParser) Parse(_ context.Context, path string, opts ParserOptions) (map[string]any, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		base := opts.RootPath
		if base == "" {
			base = filepath.Dir(p.rootPath)
		}
		resolved = filepath.Join(base, resolved)
	}

	if cached, ok := p.cache[resolved]; ok {
		if m, ok := cached.(map[string]any); ok {
			return m, nil
		}
	}

	data, err := fs.ReadFile(p.fsys, resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", resolved, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	p.cache[resolved] = doc
	p.loadedPaths = append(p.loadedPaths, resolved)
	return doc, nil
}
