package href

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nieomylnieja/dtsdoc/internal/extract"
)

func TestSiteResolver_ResolvePath(t *testing.T) {
	main := extract.ShortPath{Path: "deno_types", Specifier: "asset://deno_types", IsMain: true}
	views := []Target{Root(), AllSymbols(), Symbol(main, "Deno")}

	tests := map[string]struct {
		root     string
		target   Target
		expected string
	}{
		"root":                    {root: "/api", target: Root(), expected: "/api"},
		"all symbols":             {root: "/api", target: AllSymbols(), expected: "/api"},
		"symbol":                  {root: "/api", target: Symbol(main, "Foo"), expected: "/api/Foo"},
		"namespace member":        {root: "/api", target: Symbol(main, "Deno.cwd"), expected: "/api/Deno.cwd"},
		"trailing slash":          {root: "/api/", target: Symbol(main, "Foo"), expected: "/api/Foo"},
		"empty root":              {root: "", target: Root(), expected: "/"},
		"empty root symbol":       {root: "", target: Symbol(main, "Foo"), expected: "/Foo"},
		"nested root all symbols": {root: "/docs/api", target: AllSymbols(), expected: "/docs/api"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewSiteResolver(tc.root)
			for _, current := range views {
				assert.Equal(t, tc.expected, r.ResolvePath(current, tc.target))
			}
		})
	}
}

func TestSiteResolver_AllSymbolsIsRoot(t *testing.T) {
	r := NewSiteResolver("/api")
	for _, current := range []Target{Root(), AllSymbols()} {
		assert.Equal(t, r.ResolvePath(current, Root()), r.ResolvePath(current, AllSymbols()))
	}
}

func TestSiteResolver_FileViewPanics(t *testing.T) {
	r := NewSiteResolver("/api")
	assert.Panics(t, func() {
		r.ResolvePath(Root(), File(extract.ShortPath{Path: "deno_types"}))
	})
}

func TestSiteResolver_NotFound(t *testing.T) {
	var r Resolver = NewSiteResolver("/api")

	_, ok := r.ResolveGlobalSymbol([]string{"Deno", "cwd"})
	assert.False(t, ok)
	_, ok = r.ResolveImportHref([]string{"Deno"}, "asset://deno_types")
	assert.False(t, ok)
	_, ok = r.ResolveUsage(extract.ShortPath{Path: "deno_types"})
	assert.False(t, ok)
	_, ok = r.ResolveSource(extract.Location{Specifier: "asset://deno_types", Line: 1, Col: 1})
	assert.False(t, ok)
}
