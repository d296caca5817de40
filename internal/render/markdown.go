package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/nieomylnieja/dtsdoc/internal/href"
	"github.com/nieomylnieja/dtsdoc/internal/jsdoc"
)

// Markdown renders documentation text to HTML.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)}
}

// Render renders the full text inside a markdown-body container.
// Empty text renders to nothing. Heading ids are taken from ids when set.
func (m *Markdown) Render(source string, ids parser.IDs) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var opts []parser.ParseOption
	if ids != nil {
		opts = append(opts, parser.WithContext(parser.NewContext(parser.WithIDs(ids))))
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf, opts...); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return container("markdown-body", buf.String()), nil
}

// Summary renders only the first paragraph of text.
func (m *Markdown) Summary(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	src := []byte(source)
	doc := m.md.Parser().Parse(text.NewReader(src))
	var first gmast.Node
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() == gmast.KindParagraph {
			first = n
			break
		}
	}
	if first == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, src, first); err != nil {
		return "", errors.Wrap(err, "failed to render markdown summary")
	}
	return container("markdown-body markdown-summary", buf.String()), nil
}

func container(class, body string) template.HTML {
	// Goldmark escapes raw HTML by default, body is safe.
	return template.HTML(`<div class="` + class + `">` + strings.TrimSpace(body) + `</div>`)
}

// rewriteLinks turns inline {@link} tags into markdown links. Targets which
// are URLs are kept, targets naming a documented symbol link to its page and
// anything else degrades to code text.
func rewriteLinks(ctx *Context, source string) string {
	return jsdoc.ReplaceLinks(source, func(link jsdoc.Link) string {
		label := link.Label
		if link.Code || link.Label == link.Target {
			label = "`" + label + "`"
		}
		if url, ok := ctx.linkTarget(link.Target); ok {
			return "[" + label + "](" + url + ")"
		}
		return "`" + link.Label + "`"
	})
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://")
}

// symbolHref returns the page of the top-level symbol of a dotted name,
// anchored at the member for nested names.
func symbolHref(ctx *Context, name string) (string, bool) {
	top, _, nested := strings.Cut(name, ".")
	if !ctx.documented(top) {
		return "", false
	}
	url := ctx.resolver.ResolvePath(ctx.location, href.Symbol(ctx.main, top))
	if nested {
		url += "#" + anchor(name)
	}
	return url, true
}
