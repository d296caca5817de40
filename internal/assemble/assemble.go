// Package assemble collects rendered views into a path keyed file set.
package assemble

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
	"github.com/nieomylnieja/dtsdoc/internal/render"
)

// Output file names of the root view and of every symbol view.
const (
	IndexFile       = "index.html"
	BreadcrumbsFile = "breadcrumbs.html"
	SidepanelFile   = "sidepanel.html"
	MainFile        = "main.html"
)

type filesOptions struct {
	caseInsensitive bool
}

type Option func(options filesOptions) filesOptions

// WithCaseInsensitivePaths treats paths differing only by case as colliding,
// for output written to case-insensitive filesystems.
func WithCaseInsensitivePaths(enabled bool) Option {
	return func(options filesOptions) filesOptions {
		options.caseInsensitive = enabled
		return options
	}
}

// Files maps site-relative paths to file content. Every key is unique
// after normalization: adding a path twice is an error, never an overwrite.
type Files struct {
	contents map[string]string
	// keys maps normalized paths to the path they were first added under.
	keys   map[string]string
	folder cases.Caser
	fold   bool
}

func NewFiles(opts ...Option) *Files {
	var options filesOptions
	for _, opt := range opts {
		options = opt(options)
	}
	return &Files{
		contents: make(map[string]string),
		keys:     make(map[string]string),
		folder:   cases.Fold(),
		fold:     options.caseInsensitive,
	}
}

// Add stores content under path. It fails with a collision error if path,
// or a path normalizing to the same key, was already added.
func (f *Files) Add(path, content string) error {
	key := f.normalize(path)
	if existing, ok := f.keys[key]; ok {
		return docerr.New(docerr.CategoryCollision, "output path %s collides with %s", path, existing)
	}
	f.keys[key] = path
	f.contents[path] = content
	return nil
}

func (f *Files) normalize(path string) string {
	key := norm.NFC.String(path)
	if f.fold {
		key = f.folder.String(key)
	}
	return key
}

// Get returns the content stored under path.
func (f *Files) Get(path string) (string, bool) {
	content, ok := f.contents[path]
	return content, ok
}

// Paths returns all paths in lexical order.
func (f *Files) Paths() []string {
	paths := make([]string, 0, len(f.contents))
	for p := range f.contents {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (f *Files) Len() int { return len(f.contents) }

// SymbolDir returns the directory of a symbol's files.
func SymbolDir(name string) string {
	return "/" + name
}

// Assemble lays out the views:
//
//	/index.html, /breadcrumbs.html
//	/{name}/main.html, /{name}/breadcrumbs.html, /{name}/sidepanel.html
func Assemble(root render.AllSymbolsView, symbols []render.SymbolView, opts ...Option) (*Files, error) {
	files := NewFiles(opts...)
	if err := files.Add("/"+IndexFile, root.Index); err != nil {
		return nil, err
	}
	if err := files.Add("/"+BreadcrumbsFile, root.Breadcrumbs); err != nil {
		return nil, err
	}
	for _, view := range symbols {
		if err := validSegment(view.Name); err != nil {
			return nil, err
		}
		dir := SymbolDir(view.Name)
		for _, file := range []struct{ name, content string }{
			{BreadcrumbsFile, view.Breadcrumbs},
			{SidepanelFile, view.Sidepanel},
			{MainFile, view.Main},
		} {
			if err := files.Add(dir+"/"+file.name, file.content); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

// validSegment rejects names which would not stay a single path segment.
func validSegment(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return docerr.New(docerr.CategoryCollision, "symbol name %q is not a valid output path segment", name)
	case strings.ContainsAny(name, `/\`):
		return docerr.New(docerr.CategoryCollision, "symbol name %q contains a path separator", name)
	}
	return nil
}
