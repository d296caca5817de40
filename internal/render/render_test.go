package render

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
	"github.com/nieomylnieja/dtsdoc/internal/extract"
	"github.com/nieomylnieja/dtsdoc/internal/graph"
	"github.com/nieomylnieja/dtsdoc/internal/href"
	"github.com/nieomylnieja/dtsdoc/internal/loader"
	"github.com/nieomylnieja/dtsdoc/internal/testmodels"
)

var mainPath = extract.NewShortPath(loader.SyntheticSpecifier, loader.SyntheticSpecifier)

func TestRenderAllSymbolsView(t *testing.T) {
	nodes := extractNodes(t, testmodels.Greet)
	r := newTestRenderer(t)

	view, err := r.RenderAllSymbolsView(nodes)
	require.NoError(t, err)

	assert.Contains(t, view.Breadcrumbs, `<a href="/api">index</a>`)
	assert.Contains(t, view.Index, `<h2>Functions</h2>`)
	assert.Contains(t, view.Index, `href="/api/greet"`)
	assert.Contains(t, view.Index, `<div class="markdown-body markdown-summary">`)
	assert.Equal(t, 1, strings.Count(view.Index, `class="doc-entry"`))
}

func TestRenderSymbolViews(t *testing.T) {
	t.Run("single function", func(t *testing.T) {
		nodes := extractNodes(t, testmodels.Greet)
		r := newTestRenderer(t)

		views, err := r.RenderSymbolViews(nodes, mainPath)
		require.NoError(t, err)
		require.Len(t, views, 1)

		greet := views[0]
		assert.Equal(t, "greet", greet.Name)
		assert.Contains(t, greet.Main, "function greet(name: string): string")
		assert.Contains(t, greet.Main, `<a href="/api"><code>/api</code></a>`)
		assert.Contains(t, greet.Breadcrumbs, `<a href="/api">index</a>`)
		assert.Contains(t, greet.Breadcrumbs, `<a href="/api/greet">greet</a>`)
		assert.Contains(t, greet.Sidepanel, `<li class="current"><a href="/api/greet">greet</a></li>`)
	})
	t.Run("interface and function share a group", func(t *testing.T) {
		nodes := extractNodes(t, testmodels.Box)
		r := newTestRenderer(t)

		views, err := r.RenderSymbolViews(nodes, mainPath)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Box", views[0].Name)
		assert.Equal(t, 2, strings.Count(views[0].Main, "<article"))
		assert.Contains(t, views[0].Main, `id="Box"`)
		assert.Contains(t, views[0].Main, `id="Box_1"`)
		assert.Contains(t, views[0].Main, "interface Box")
		assert.Contains(t, views[0].Main, "function Box(): Box")
	})
	t.Run("namespace lists its members", func(t *testing.T) {
		nodes := extractNodes(t, testmodels.DenoTypes)
		r := newTestRenderer(t, WithPackageName("Deno"))

		views, err := r.RenderSymbolViews(nodes, mainPath)
		require.NoError(t, err)
		names := make([]string, 0, len(views))
		for _, v := range views {
			names = append(names, v.Name)
		}
		assert.Equal(t, []string{"Deno", "print", "Request", "HeadersInit", "Signal"}, names)

		deno := views[0]
		assert.Contains(t, deno.Main, `href="#Deno.cwd"`)
		assert.Contains(t, deno.Main, `id="Deno.errors.NotFound"`)
		assert.Contains(t, deno.Breadcrumbs, `<a href="/api">Deno</a>`)
		assert.NotContains(t, deno.Main, "internalOnly")
	})
}

func TestRender_UniqueIDs(t *testing.T) {
	const headings = `
/**
 * Creates a box.
 *
 * ## Example
 */
export function Box(): Box;
/**
 * A box.
 *
 * ## Example
 */
export interface Box { value: number; value(): number }
export namespace Box {
  export function open(): void;
  export function open(force: boolean): void;
}
`
	fixtures := map[string]string{
		"deno types": testmodels.DenoTypes,
		"box":        testmodels.Box,
		"headings":   headings,
	}
	for name, fixture := range fixtures {
		t.Run(name, func(t *testing.T) {
			nodes := extractNodes(t, fixture)
			r := newTestRenderer(t)

			all, err := r.RenderAllSymbolsView(nodes)
			require.NoError(t, err)
			assert.Empty(t, duplicateIDs(all.Breadcrumbs+all.Index), "index")

			views, err := r.RenderSymbolViews(nodes, mainPath)
			require.NoError(t, err)
			for _, v := range views {
				assert.Empty(t, duplicateIDs(v.Breadcrumbs+v.Sidepanel+v.Main), v.Name)
			}
		})
	}
	t.Run("index qualifies entries with their kind", func(t *testing.T) {
		view, err := newTestRenderer(t).RenderAllSymbolsView(extractNodes(t, testmodels.Box))
		require.NoError(t, err)
		assert.Contains(t, view.Index, `id="interface-Box"`)
		assert.Contains(t, view.Index, `id="function-Box"`)
	})
	t.Run("overloaded namespace members link to their own entry", func(t *testing.T) {
		views, err := newTestRenderer(t).RenderSymbolViews(extractNodes(t, headings), mainPath)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Contains(t, views[0].Main, `href="#Box.open"`)
		assert.Contains(t, views[0].Main, `href="#Box.open_1"`)
		assert.Contains(t, views[0].Main, `id="Box.open_1"`)
	})
}

var idRegexp = regexp.MustCompile(`\sid="([^"]*)"`)

func duplicateIDs(html string) []string {
	seen := make(map[string]int)
	var duplicates []string
	for _, match := range idRegexp.FindAllStringSubmatch(html, -1) {
		seen[match[1]]++
		if seen[match[1]] == 2 {
			duplicates = append(duplicates, match[1])
		}
	}
	return duplicates
}

func TestRenderer_RenderError(t *testing.T) {
	nodes := extractNodes(t, testmodels.Greet)
	r := NewRenderer(failingEngine{}, href.NewSiteResolver("/api"), mainPath)

	_, err := r.RenderAllSymbolsView(nodes)
	require.Error(t, err)
	assert.True(t, docerr.Is(err, docerr.CategoryRender))

	_, err = r.RenderSymbolViews(nodes, mainPath)
	require.Error(t, err)
	assert.Equal(t, docerr.CategoryRender, docerr.CategoryOf(err))
}

func TestTemplateEngine_UnknownTemplate(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	_, err = engine.Render("file_view", nil)
	require.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	md := NewMarkdown()

	t.Run("summary is the first paragraph", func(t *testing.T) {
		html, err := md.Summary("First *paragraph*.\n\nSecond one.")
		require.NoError(t, err)
		assert.Equal(t, `<div class="markdown-body markdown-summary"><p>First <em>paragraph</em>.</p></div>`, string(html))
	})
	t.Run("empty", func(t *testing.T) {
		html, err := md.Render("  ", nil)
		require.NoError(t, err)
		assert.Empty(t, html)
	})
	t.Run("heading ids", func(t *testing.T) {
		html, err := md.Render("# Usage\n\ntext", nil)
		require.NoError(t, err)
		assert.Contains(t, string(html), `<h1 id="usage">Usage</h1>`)
	})
	t.Run("heading ids are unique within a view", func(t *testing.T) {
		ids := newAnchors()
		ids.unique("usage")
		first, err := md.Render("# Usage\n\n## Usage", ids)
		require.NoError(t, err)
		assert.Contains(t, string(first), `<h1 id="usage_1">Usage</h1>`)
		assert.Contains(t, string(first), `<h2 id="usage_2">Usage</h2>`)
		second, err := md.Render("# Usage", ids)
		require.NoError(t, err)
		assert.Contains(t, string(second), `<h1 id="usage_3">Usage</h1>`)
	})
	t.Run("raw html is escaped", func(t *testing.T) {
		html, err := md.Render("<script>alert(1)</script>", nil)
		require.NoError(t, err)
		assert.NotContains(t, string(html), "<script>")
	})
}

func TestRewriteLinks(t *testing.T) {
	ctx := &Context{
		location: href.AllSymbols(),
		resolver: href.NewSiteResolver("/api"),
		main:     mainPath,
		symbols:  map[string]struct{}{"Deno": {}, "Box": {}},
	}
	tests := map[string]string{
		"see {@link Box}":                    "see [`Box`](/api/Box)",
		"see {@link Box the box}":            "see [the box](/api/Box)",
		"see {@linkcode Box | box}":          "see [`box`](/api/Box)",
		"see {@link Deno.cwd}":               "see [`Deno.cwd`](/api/Deno#Deno.cwd)",
		"see {@link Missing}":                "see `Missing`",
		"see {@link https://deno.land docs}": "see [docs](https://deno.land)",
		"no links here":                      "no links here",
	}
	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, rewriteLinks(ctx, input))
		})
	}
}

type failingEngine struct{}

func (failingEngine) Render(name string, _ any) (string, error) {
	return "", errors.Errorf("cannot render %s", name)
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	return NewRenderer(engine, href.NewSiteResolver("/api"), mainPath, opts...)
}

func extractNodes(t *testing.T, content string) []extract.NodeWithOrigin {
	t.Helper()
	g := graph.Build(context.Background(),
		[]graph.Specifier{loader.SyntheticSpecifier},
		loader.NewVirtual(loader.SyntheticSpecifier, content))
	require.NoError(t, g.Valid())
	nodes, err := extract.Extract(g, loader.SyntheticSpecifier)
	require.NoError(t, err)
	return nodes
}
