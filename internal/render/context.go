package render

import (
	"slices"
	"strings"

	"github.com/nieomylnieja/dtsdoc/internal/extract"
	"github.com/nieomylnieja/dtsdoc/internal/href"
)

// Breadcrumb is one step of the navigation trail.
type Breadcrumb struct {
	Label string
	Href  string
}

// Context is the immutable state of a single rendered view.
type Context struct {
	location    href.Target
	breadcrumbs []Breadcrumb
	resolver    href.Resolver
	main        extract.ShortPath
	// symbols holds the documented top-level names links may point to.
	symbols map[string]struct{}
	// ids is filled while the view renders, the rest never changes.
	ids *anchors
}

func (c *Context) Location() href.Target { return c.location }

func (c *Context) Breadcrumbs() []Breadcrumb { return slices.Clone(c.breadcrumbs) }

func (c *Context) Resolver() href.Resolver { return c.resolver }

func (c *Context) documented(name string) bool {
	_, ok := c.symbols[name]
	return ok
}

func (c *Context) linkTarget(target string) (string, bool) {
	if isURL(target) {
		return target, true
	}
	if url, ok := symbolHref(c, target); ok {
		return url, true
	}
	return c.resolver.ResolveGlobalSymbol(strings.Split(target, "."))
}

func (c *Context) symbolURL(name string) string {
	return c.resolver.ResolvePath(c.location, href.Symbol(c.main, name))
}
