// Package href maps navigation targets to site-relative URLs.
//
// Renderers only ever link through a [Resolver], so a host site with a
// different topology substitutes its own implementation.
package href

import (
	"strings"

	"github.com/nieomylnieja/dtsdoc/internal/extract"
)

// TargetKind enumerates the views a link can point to.
type TargetKind int

const (
	TargetRoot TargetKind = iota
	TargetAllSymbols
	TargetFile
	TargetSymbol
)

// Target is a navigation target.
type Target struct {
	Kind TargetKind
	// File is set for [TargetFile] and [TargetSymbol].
	File extract.ShortPath
	// Symbol is the dotted symbol name of [TargetSymbol].
	Symbol string
}

func Root() Target       { return Target{Kind: TargetRoot} }
func AllSymbols() Target { return Target{Kind: TargetAllSymbols} }

func File(file extract.ShortPath) Target {
	return Target{Kind: TargetFile, File: file}
}

func Symbol(file extract.ShortPath, symbol string) Target {
	return Target{Kind: TargetSymbol, File: file, Symbol: symbol}
}

// Resolver resolves links. Optional links return false when the site has
// nothing to link to, and the renderer omits them.
type Resolver interface {
	// ResolvePath returns the URL of target as seen from the current view.
	ResolvePath(current, target Target) string
	// ResolveGlobalSymbol links a symbol of the global namespace by its dotted path.
	ResolveGlobalSymbol(symbol []string) (string, bool)
	// ResolveImportHref links a symbol imported from source.
	ResolveImportHref(symbol []string, source string) (string, bool)
	// ResolveUsage returns the import statement shown on a symbol page.
	ResolveUsage(current extract.ShortPath) (string, bool)
	// ResolveSource links a declaration to its source.
	ResolveSource(location extract.Location) (string, bool)
}

// SiteResolver serves a site made of one all-symbols index at its root and
// one page per symbol below it.
type SiteResolver struct {
	root string
}

// NewSiteResolver returns a resolver rooted at root, for example "/api".
func NewSiteResolver(root string) SiteResolver {
	return SiteResolver{root: strings.TrimSuffix(root, "/")}
}

func (r SiteResolver) Root() string { return r.root }

// ResolvePath panics for [TargetFile]: the site has no per-file views and
// asking for one is a programming error.
func (r SiteResolver) ResolvePath(_, target Target) string {
	switch target.Kind {
	case TargetRoot, TargetAllSymbols:
		return r.rootURL()
	case TargetSymbol:
		return r.root + "/" + target.Symbol
	case TargetFile:
		panic("href: the site has no per-file view of " + target.File.Path)
	default:
		panic("href: unknown target kind")
	}
}

func (r SiteResolver) rootURL() string {
	if r.root == "" {
		return "/"
	}
	return r.root
}

func (SiteResolver) ResolveGlobalSymbol([]string) (string, bool) { return "", false }

func (SiteResolver) ResolveImportHref([]string, string) (string, bool) { return "", false }

func (SiteResolver) ResolveUsage(extract.ShortPath) (string, bool) { return "", false }

func (SiteResolver) ResolveSource(extract.Location) (string, bool) { return "", false }
