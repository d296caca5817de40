// Package extract walks a module graph into the documented symbols of its
// entrypoint, flattening re-exports so every symbol is attributed to the
// module declaring it.
package extract

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/dtsdoc/internal/dts"
	"github.com/nieomylnieja/dtsdoc/internal/graph"
	"github.com/nieomylnieja/dtsdoc/internal/jsdoc"
)

// Problem is a documentation defect found while extracting. Problems never
// fail extraction; the affected documentation degrades to plain text or is skipped.
type Problem struct {
	Location Location
	Symbol   string
	Message  string
}

type extractOptions struct {
	includePrivate bool
	processors     []jsdoc.Processor
	onProblem      func(Problem)
}

type Option func(options extractOptions) extractOptions

// WithPrivate includes declarations which are not exported and those tagged
// @private or @internal. Declarations tagged @ignore are always excluded.
func WithPrivate(include bool) Option {
	return func(options extractOptions) extractOptions {
		options.includePrivate = include
		return options
	}
}

// WithProcessors applies [jsdoc.Processor] functions to every parsed comment.
func WithProcessors(processors ...jsdoc.Processor) Option {
	return func(options extractOptions) extractOptions {
		options.processors = append(options.processors, processors...)
		return options
	}
}

// WithProblemHandler receives malformed documentation reports.
// By default they are discarded.
func WithProblemHandler(handler func(Problem)) Option {
	return func(options extractOptions) extractOptions {
		options.onProblem = handler
		return options
	}
}

// Extract returns the documented symbols visible from entrypoint in export order.
// A leading @module comment of the entrypoint becomes the first node.
func Extract(g *graph.Graph, entrypoint graph.Specifier, opts ...Option) ([]NodeWithOrigin, error) {
	options := extractOptions{onProblem: func(Problem) {}}
	for _, opt := range opts {
		options = opt(options)
	}
	module, ok := g.Module(entrypoint)
	if !ok {
		return nil, errors.Errorf("entrypoint %s is not part of the module graph", entrypoint)
	}
	e := &extractor{
		graph:      g,
		entrypoint: entrypoint,
		options:    options,
		nodes:      make(map[*dts.Decl]*DocNode),
		exports:    make(map[graph.Specifier]*exportTable),
		partial:    make(map[graph.Specifier]bool),
	}
	var result []NodeWithOrigin
	if module.File.ModuleDoc != "" {
		result = append(result, e.moduleDocNode(module))
	}
	table := e.exportsOf(module)
	for _, name := range table.names {
		result = append(result, table.symbols[name]...)
	}
	return result, nil
}

type extractor struct {
	graph      *graph.Graph
	entrypoint graph.Specifier
	options    extractOptions

	// nodes shares one body between all names a declaration is exported under.
	nodes   map[*dts.Decl]*DocNode
	exports map[graph.Specifier]*exportTable
	// visiting is the stack of modules whose export tables are being built.
	visiting []graph.Specifier
	// partial marks tables built while a cycle partner was still incomplete.
	partial map[graph.Specifier]bool
}

// exportTable holds the symbols a module exposes, keyed by export name.
// A name may carry several nodes: overloads and declaration merging.
type exportTable struct {
	names   []string
	symbols map[string][]NodeWithOrigin
	// fromStar marks names provided only by `export *`.
	fromStar map[string]bool
}

func newExportTable() *exportTable {
	return &exportTable{
		symbols:  make(map[string][]NodeWithOrigin),
		fromStar: make(map[string]bool),
	}
}

func (t *exportTable) has(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

func (t *exportTable) add(name string, nodes ...NodeWithOrigin) {
	if len(nodes) == 0 {
		return
	}
	if !t.has(name) {
		t.names = append(t.names, name)
	}
	for _, n := range nodes {
		n.Name = name
		t.symbols[name] = append(t.symbols[name], n)
	}
}

// bind adds an explicitly exported name. Explicit exports shadow names
// provided by `export *` regardless of the order they appear in.
func (t *exportTable) bind(name string, nodes ...NodeWithOrigin) {
	if len(nodes) == 0 {
		return
	}
	if t.fromStar[name] {
		delete(t.fromStar, name)
		t.symbols[name] = nil
	}
	t.add(name, nodes...)
}

func (e *extractor) shortPath(specifier graph.Specifier) ShortPath {
	return NewShortPath(specifier, e.entrypoint)
}

func (e *extractor) exportsOf(module *graph.Module) *exportTable {
	if table, ok := e.exports[module.Specifier]; ok {
		return table
	}
	if i := slices.Index(e.visiting, module.Specifier); i >= 0 {
		// Circular re-exports contribute nothing new. Every module above
		// the cycle head sees an incomplete table of it.
		for _, s := range e.visiting[i+1:] {
			e.partial[s] = true
		}
		return newExportTable()
	}
	e.visiting = append(e.visiting, module.Specifier)
	defer func() { e.visiting = e.visiting[:len(e.visiting)-1] }()

	table := newExportTable()
	origin := e.shortPath(module.Specifier)
	for _, decl := range module.File.Decls {
		if !e.visible(decl, !module.File.IsModule) {
			continue
		}
		node := e.node(module.Specifier, decl)
		if node == nil {
			continue
		}
		table.add(exportName(decl), NodeWithOrigin{Origin: origin, Node: node})
	}
	for _, exp := range module.File.Exports {
		e.addExport(module, table, exp)
	}
	if e.partial[module.Specifier] {
		delete(e.partial, module.Specifier)
	} else {
		e.exports[module.Specifier] = table
	}
	return table
}

func exportName(decl *dts.Decl) string {
	if decl.Default {
		return "default"
	}
	return decl.Name
}

// visible applies the public/private rule to a top-level declaration.
func (e *extractor) visible(decl *dts.Decl, script bool) bool {
	if decl.Exported || decl.Global || script {
		return true
	}
	return e.options.includePrivate
}

func (e *extractor) addExport(module *graph.Module, table *exportTable, exp dts.Export) {
	if exp.Specifier == "" {
		for _, b := range exp.Names {
			table.bind(b.Alias, e.resolveLocal(module, b.Name, exp.Pos)...)
		}
		return
	}
	dep := e.dependency(module, exp.Specifier)
	if dep == nil {
		return
	}
	depTable := e.exportsOf(dep)
	switch {
	case exp.Star && exp.StarAlias != "":
		table.bind(exp.StarAlias, e.namespaceOf(dep, exp.StarAlias, exp.Pos, depTable))
	case exp.Star:
		for _, name := range depTable.names {
			// Local declarations and earlier exports shadow star exports,
			// of two star exports the first wins.
			if name == "default" || table.has(name) {
				continue
			}
			table.add(name, depTable.symbols[name]...)
			table.fromStar[name] = true
		}
	default:
		for _, b := range exp.Names {
			nodes, ok := depTable.symbols[b.Name]
			if !ok {
				e.problem(module.Specifier, exp.Pos, b.Name, "re-exported symbol not found in "+exp.Specifier)
				continue
			}
			table.bind(b.Alias, nodes...)
		}
	}
}

// resolveLocal resolves a name of an export list to local declarations or imports.
func (e *extractor) resolveLocal(module *graph.Module, name string, pos dts.Position) []NodeWithOrigin {
	origin := e.shortPath(module.Specifier)
	var nodes []NodeWithOrigin
	for _, decl := range module.File.Decls {
		if decl.Name != name {
			continue
		}
		if node := e.node(module.Specifier, decl); node != nil {
			nodes = append(nodes, NodeWithOrigin{Origin: origin, Node: node})
		}
	}
	if len(nodes) > 0 {
		return nodes
	}
	for _, imp := range module.File.Imports {
		switch {
		case imp.Default == name:
			return e.importedSymbol(module, imp.Specifier, "default", pos)
		case imp.Namespace == name:
			dep := e.dependency(module, imp.Specifier)
			if dep == nil {
				return nil
			}
			return []NodeWithOrigin{e.namespaceOf(dep, name, imp.Pos, e.exportsOf(dep))}
		}
		for _, b := range imp.Names {
			if b.Alias == name {
				return e.importedSymbol(module, imp.Specifier, b.Name, pos)
			}
		}
	}
	e.problem(module.Specifier, pos, name, "exported symbol is not declared")
	return nil
}

func (e *extractor) importedSymbol(module *graph.Module, ref, name string, pos dts.Position) []NodeWithOrigin {
	dep := e.dependency(module, ref)
	if dep == nil {
		return nil
	}
	nodes, ok := e.exportsOf(dep).symbols[name]
	if !ok {
		e.problem(module.Specifier, pos, name, "imported symbol not found in "+ref)
	}
	return nodes
}

func (e *extractor) dependency(module *graph.Module, ref string) *graph.Module {
	specifier, ok := module.Dependency(ref)
	if !ok {
		return nil
	}
	dep, ok := e.graph.Module(specifier)
	if !ok {
		return nil
	}
	return dep
}

// namespaceOf synthesizes the namespace node of `export * as name`.
func (e *extractor) namespaceOf(dep *graph.Module, name string, pos dts.Position, table *exportTable) NodeWithOrigin {
	var elements []NodeWithOrigin
	for _, n := range table.names {
		elements = append(elements, table.symbols[n]...)
	}
	return NodeWithOrigin{
		Name:   name,
		Origin: e.shortPath(dep.Specifier),
		Node: &DocNode{
			Kind:            KindNamespace,
			Name:            name,
			Location:        Location{Specifier: dep.Specifier, Line: pos.Line, Col: pos.Col},
			DeclarationKind: DeclarationExport,
			Detail:          NamespaceDef{Elements: elements},
		},
	}
}

func (e *extractor) moduleDocNode(module *graph.Module) NodeWithOrigin {
	loc := Location{Specifier: module.Specifier, Line: module.File.ModuleDocPos.Line, Col: module.File.ModuleDocPos.Col}
	comment := e.comment(module.File.ModuleDoc, loc, "")
	return NodeWithOrigin{
		Origin: e.shortPath(module.Specifier),
		Node: &DocNode{
			Kind:            KindModuleDoc,
			Location:        loc,
			DeclarationKind: DeclarationExport,
			JSDoc:           comment,
			Detail:          ModuleDocDef{},
		},
	}
}

func (e *extractor) problem(specifier graph.Specifier, pos dts.Position, symbol, message string) {
	e.options.onProblem(Problem{
		Location: Location{Specifier: specifier, Line: pos.Line, Col: pos.Col},
		Symbol:   symbol,
		Message:  message,
	})
}
