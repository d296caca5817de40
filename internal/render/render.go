// Package render turns partitioned symbols into the HTML fragments of the
// two site views: the all-symbols index and one page per symbol group.
//
// Fragments are produced through an [Engine], all links go through an
// [href.Resolver]. Each view is rendered with its own [Context].
package render

import (
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
	"github.com/nieomylnieja/dtsdoc/internal/extract"
	"github.com/nieomylnieja/dtsdoc/internal/href"
	"github.com/nieomylnieja/dtsdoc/internal/jsdoc"
	"github.com/nieomylnieja/dtsdoc/internal/logfields"
	"github.com/nieomylnieja/dtsdoc/internal/partition"
)

// AllSymbolsView holds the fragments of the index view.
type AllSymbolsView struct {
	Breadcrumbs string
	Index       string
}

// SymbolView holds the fragments of one symbol group page.
type SymbolView struct {
	Name        string
	Breadcrumbs string
	Sidepanel   string
	Main        string
}

type rendererOptions struct {
	packageName string
	logger      *slog.Logger
}

type Option func(options rendererOptions) rendererOptions

// WithPackageName labels the root breadcrumb. It defaults to "index".
func WithPackageName(name string) Option {
	return func(options rendererOptions) rendererOptions {
		options.packageName = name
		return options
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(options rendererOptions) rendererOptions {
		options.logger = logger
		return options
	}
}

// Renderer renders the views of one documented module.
type Renderer struct {
	engine      Engine
	markdown    *Markdown
	resolver    href.Resolver
	main        extract.ShortPath
	packageName string
	logger      *slog.Logger
}

// NewRenderer creates a renderer for the module identified by main.
func NewRenderer(engine Engine, resolver href.Resolver, main extract.ShortPath, opts ...Option) *Renderer {
	options := rendererOptions{
		packageName: "index",
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		options = opt(options)
	}
	if options.packageName == "" {
		options.packageName = "index"
	}
	return &Renderer{
		engine:      engine,
		markdown:    NewMarkdown(),
		resolver:    resolver,
		main:        main,
		packageName: options.packageName,
		logger:      options.logger,
	}
}

func (r *Renderer) newContext(location href.Target, nodes []extract.NodeWithOrigin) *Context {
	ctx := &Context{
		location: location,
		resolver: r.resolver,
		main:     r.main,
		symbols:  make(map[string]struct{}, len(nodes)),
		ids:      newAnchors(),
	}
	for _, n := range nodes {
		if n.Kind() != extract.KindModuleDoc {
			ctx.symbols[n.Name] = struct{}{}
		}
	}
	ctx.breadcrumbs = []Breadcrumb{{
		Label: r.packageName,
		Href:  r.resolver.ResolvePath(location, href.Root()),
	}}
	if location.Kind == href.TargetSymbol {
		ctx.breadcrumbs = append(ctx.breadcrumbs, Breadcrumb{
			Label: location.Symbol,
			Href:  r.resolver.ResolvePath(location, location),
		})
	}
	return ctx
}

// RenderAllSymbolsView renders the index: module documentation followed by
// one section per symbol kind.
func (r *Renderer) RenderAllSymbolsView(nodes []extract.NodeWithOrigin) (AllSymbolsView, error) {
	ctx := r.newContext(href.AllSymbols(), nodes)
	var view AllSymbolsView
	var err error
	if view.Breadcrumbs, err = r.render("breadcrumbs", breadcrumbsData{Parts: ctx.Breadcrumbs()}); err != nil {
		return AllSymbolsView{}, err
	}
	content := symbolContentData{}
	byKind := partition.ByKind(nodes)
	for kind, group := range byKind.All() {
		if kind == extract.KindModuleDoc {
			if content.Docs, err = r.docs(ctx, group[0].Node.JSDoc.Description); err != nil {
				return AllSymbolsView{}, docerr.Wrap(docerr.CategoryRender, err, "failed to render module documentation")
			}
			continue
		}
		section, err := r.indexSection(ctx, kind, group)
		if err != nil {
			return AllSymbolsView{}, err
		}
		content.Sections = append(content.Sections, section)
	}
	if view.Index, err = r.render("symbol_content", content); err != nil {
		return AllSymbolsView{}, err
	}
	r.logger.Debug("rendered all symbols view", logfields.Count(len(content.Sections)))
	return view, nil
}

// indexSection lists a kind's symbols. Overloads collapse into one entry.
func (r *Renderer) indexSection(ctx *Context, kind extract.Kind, group []extract.NodeWithOrigin) (sectionData, error) {
	section := sectionData{ID: ctx.ids.unique(string(kind)), Title: kind.Title()}
	byName := partition.ByName(group, r.main)
	for name, nodes := range byName.All() {
		entry, err := r.entry(ctx, name, ctx.symbolURL(name), nodes)
		if err != nil {
			return sectionData{}, err
		}
		// A name may be listed under several kinds.
		entry.ID = ctx.ids.unique(string(kind) + "-" + anchor(name))
		section.Entries = append(section.Entries, entry)
	}
	return section, nil
}

func (r *Renderer) entry(ctx *Context, name, url string, nodes []extract.NodeWithOrigin) (entryData, error) {
	entry := entryData{Name: name, Href: url, Kind: string(nodes[0].Kind()), KindTitle: kindLabel(nodes[0].Kind())}
	for _, n := range nodes {
		if _, deprecated := n.Node.JSDoc.Deprecated(); deprecated {
			entry.Deprecated = true
		}
		if entry.Summary != "" || n.Node.JSDoc.Description == "" {
			continue
		}
		summary, err := r.markdown.Summary(rewriteLinks(ctx, n.Node.JSDoc.Description))
		if err != nil {
			return entryData{}, docerr.Wrapf(docerr.CategoryRender, err, "failed to render summary of %s", name)
		}
		entry.Summary = summary
	}
	return entry, nil
}

// RenderSymbolViews renders one page per top-level symbol name.
func (r *Renderer) RenderSymbolViews(nodes []extract.NodeWithOrigin, shortPath extract.ShortPath) ([]SymbolView, error) {
	byName := partition.ByName(nodes, shortPath)
	views := make([]SymbolView, 0, byName.Len())
	for name, group := range byName.All() {
		ctx := r.newContext(href.Symbol(shortPath, name), nodes)
		view := SymbolView{Name: name}
		var err error
		if view.Breadcrumbs, err = r.render("breadcrumbs", breadcrumbsData{Parts: ctx.Breadcrumbs()}); err != nil {
			return nil, err
		}
		if view.Sidepanel, err = r.render("sidepanel", r.sidepanel(ctx, nodes, name)); err != nil {
			return nil, err
		}
		data, err := r.symbolGroup(ctx, name, group)
		if err != nil {
			return nil, err
		}
		if view.Main, err = r.render("symbol_group", data); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	r.logger.Debug("rendered symbol views", logfields.Count(len(views)))
	return views, nil
}

func (r *Renderer) sidepanel(ctx *Context, nodes []extract.NodeWithOrigin, current string) sidepanelData {
	data := sidepanelData{
		Package:  r.packageName,
		RootHref: ctx.resolver.ResolvePath(ctx.location, href.AllSymbols()),
	}
	for kind, group := range partition.ByKind(nodes).All() {
		if kind == extract.KindModuleDoc {
			continue
		}
		section := sidepanelSection{Title: kind.Title()}
		for name := range partition.ByName(group, r.main).All() {
			section.Items = append(section.Items, sidepanelItem{
				Name:    name,
				Href:    ctx.symbolURL(name),
				Current: name == current,
			})
		}
		data.Sections = append(data.Sections, section)
	}
	return data
}

func (r *Renderer) symbolGroup(ctx *Context, name string, group []extract.NodeWithOrigin) (symbolGroupData, error) {
	data := symbolGroupData{Name: name}
	for _, n := range group {
		symbol, err := r.symbol(ctx, name, n)
		if err != nil {
			return symbolGroupData{}, docerr.Wrapf(docerr.CategoryRender, err, "failed to render symbol %s", name)
		}
		data.Symbols = append(data.Symbols, symbol)
	}
	return data, nil
}

func (r *Renderer) symbol(ctx *Context, id string, n extract.NodeWithOrigin) (symbolData, error) {
	node := n.Node
	data := symbolData{
		ID:        ctx.ids.unique(anchor(id)),
		Name:      n.Name,
		Kind:      string(node.Kind),
		KindTitle: kindLabel(node.Kind),
		Signature: n.Signature(),
	}
	if !n.Origin.IsMain && n.Origin.Path != "" {
		data.Origin = n.Origin.Path
	}
	if url, ok := ctx.resolver.ResolveSource(node.Location); ok {
		data.SourceHref = url
	}
	var err error
	if data.Docs, err = r.docs(ctx, node.JSDoc.Description); err != nil {
		return symbolData{}, err
	}
	if message, ok := node.JSDoc.Deprecated(); ok {
		data.Deprecated = true
		if data.DeprecatedDocs, err = r.docs(ctx, message); err != nil {
			return symbolData{}, err
		}
	}
	if data.Tags, err = r.tags(ctx, node.JSDoc); err != nil {
		return symbolData{}, err
	}
	if data.Members, err = r.members(ctx, id, node); err != nil {
		return symbolData{}, err
	}
	for _, child := range flatten(id, n.Children()) {
		childID := ctx.ids.unique(anchor(child.name))
		entry, err := r.entry(ctx, child.name, "#"+childID, []extract.NodeWithOrigin{child.node})
		if err != nil {
			return symbolData{}, err
		}
		entry.ID = childID
		entry.Signature = child.node.Signature()
		data.Children = append(data.Children, entry)
	}
	return data, nil
}

type dottedNode struct {
	name string
	node extract.NodeWithOrigin
}

// flatten lists namespace members depth first under their dotted names.
func flatten(prefix string, children []extract.NodeWithOrigin) []dottedNode {
	var result []dottedNode
	for _, child := range children {
		name := prefix + "." + child.Name
		result = append(result, dottedNode{name: name, node: child})
		result = append(result, flatten(name, child.Children())...)
	}
	return result
}

func (r *Renderer) members(ctx *Context, id string, node *extract.DocNode) ([]memberData, error) {
	var members []memberData
	add := func(name, text string, comment jsdoc.Comment) error {
		docs, err := r.docs(ctx, comment.Description)
		if err != nil {
			return err
		}
		members = append(members, memberData{ID: ctx.ids.unique(anchor(id + "." + name)), Text: text, Docs: docs})
		return nil
	}
	switch d := node.Detail.(type) {
	case extract.ClassDef:
		for _, m := range d.Members {
			if err := add(m.Name, m.Text, m.JSDoc); err != nil {
				return nil, err
			}
		}
	case extract.InterfaceDef:
		for _, m := range d.Members {
			if err := add(m.Name, m.Text, m.JSDoc); err != nil {
				return nil, err
			}
		}
	case extract.EnumDef:
		for _, m := range d.Members {
			text := m.Name
			if m.Initializer != "" {
				text += " = " + m.Initializer
			}
			if err := add(m.Name, text, m.JSDoc); err != nil {
				return nil, err
			}
		}
	}
	return members, nil
}

// hiddenTags are rendered elsewhere or carry no information for readers.
var hiddenTags = map[string]bool{
	"module":     true,
	"deprecated": true,
	"private":    true,
	"internal":   true,
	"ignore":     true,
}

func (r *Renderer) tags(ctx *Context, comment jsdoc.Comment) ([]tagData, error) {
	var tags []tagData
	for _, t := range comment.Tags {
		if hiddenTags[t.Kind] {
			continue
		}
		value := t.Value
		if t.Kind == "example" && !strings.Contains(value, "```") {
			value = "```ts\n" + value + "\n```"
		}
		docs, err := r.docs(ctx, value)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tagData{Kind: t.Kind, Name: t.Name, Type: t.Type, Value: docs})
	}
	return tags, nil
}

func (r *Renderer) docs(ctx *Context, text string) (template.HTML, error) {
	return r.markdown.Render(rewriteLinks(ctx, text), ctx.ids)
}

func (r *Renderer) render(name string, data any) (string, error) {
	out, err := r.engine.Render(name, data)
	if err != nil {
		return "", docerr.Wrapf(docerr.CategoryRender, err, "failed to render %s", name)
	}
	return out, nil
}

func kindLabel(k extract.Kind) string {
	switch k {
	case extract.KindTypeAlias:
		return "type"
	default:
		return string(k)
	}
}
