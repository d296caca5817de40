// Package graph builds the module graph of a set of declaration modules.
//
// A graph is populated once by [Build] and is read-only afterwards.
package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/nieomylnieja/dtsdoc/internal/dts"
)

// LoadResult is the outcome of a [Loader] request: either [Found] or [Rejected].
type LoadResult interface {
	isLoadResult()
}

// Found carries the text of a resolved module.
type Found struct {
	Specifier Specifier
	Content   string
}

// Rejected means the loader refuses to provide the module.
type Rejected struct {
	Reason string
}

func (Found) isLoadResult()    {}
func (Rejected) isLoadResult() {}

// Loader provides module text to the graph builder.
// Implementations must be safe for concurrent use.
type Loader interface {
	Load(ctx context.Context, specifier Specifier) LoadResult
}

// Module is a parsed module.
type Module struct {
	Specifier Specifier
	File      *dts.File
	// Dependencies holds the resolved specifiers of every type-level
	// reference, keyed by the raw reference text.
	Dependencies map[string]Specifier
}

// Dependency resolves a raw reference made by the module.
func (m *Module) Dependency(ref string) (Specifier, bool) {
	s, ok := m.Dependencies[ref]
	return s, ok
}

type Diagnostic struct {
	Specifier Specifier
	Message   string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Specifier, d.Message)
}

// Graph maps specifiers to parsed modules.
type Graph struct {
	roots []Specifier

	mu          sync.Mutex
	modules     map[Specifier]*Module
	diagnostics []Diagnostic
}

func newGraph(roots []Specifier) *Graph {
	return &Graph{
		roots:   roots,
		modules: make(map[Specifier]*Module),
	}
}

func (g *Graph) addModule(m *Module) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.modules[m.Specifier] = m
}

func (g *Graph) addDiagnostic(specifier Specifier, format string, args ...any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.diagnostics = append(g.diagnostics, Diagnostic{Specifier: specifier, Message: fmt.Sprintf(format, args...)})
}

// seal orders diagnostics so that concurrent builds report them identically.
func (g *Graph) seal() {
	sort.SliceStable(g.diagnostics, func(i, j int) bool {
		if g.diagnostics[i].Specifier != g.diagnostics[j].Specifier {
			return g.diagnostics[i].Specifier < g.diagnostics[j].Specifier
		}
		return g.diagnostics[i].Message < g.diagnostics[j].Message
	})
}

func (g *Graph) Roots() []Specifier {
	return append([]Specifier(nil), g.roots...)
}

// Module returns the module resolved for specifier.
func (g *Graph) Module(specifier Specifier) (*Module, bool) {
	m, ok := g.modules[specifier]
	return m, ok
}

// Modules returns every resolved module ordered by specifier.
func (g *Graph) Modules() []*Module {
	modules := make([]*Module, 0, len(g.modules))
	for _, m := range g.modules {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Specifier < modules[j].Specifier })
	return modules
}

func (g *Graph) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), g.diagnostics...)
}

// Reachable returns the modules reachable from the given specifier in
// breadth-first order, the starting module first.
func (g *Graph) Reachable(from Specifier) []*Module {
	var (
		result []*Module
		queue  = []Specifier{from}
		seen   = map[Specifier]bool{from: true}
	)
	for len(queue) > 0 {
		m, ok := g.modules[queue[0]]
		queue = queue[1:]
		if !ok {
			continue
		}
		result = append(result, m)
		for _, ref := range m.File.Dependencies() {
			dep, ok := m.Dependencies[ref]
			if !ok || seen[dep] {
				continue
			}
			seen[dep] = true
			queue = append(queue, dep)
		}
	}
	return result
}

// Valid returns an error listing every diagnostic and every dependency
// which was not resolved to a module. A nil error means the graph is complete.
func (g *Graph) Valid() error {
	var result *multierror.Error
	for _, d := range g.diagnostics {
		result = multierror.Append(result, d)
	}
	for _, root := range g.roots {
		if _, ok := g.modules[root]; !ok {
			result = multierror.Append(result, errors.Errorf("root module %s was not resolved", root))
		}
	}
	for _, m := range g.Modules() {
		for _, ref := range m.File.Dependencies() {
			dep, ok := m.Dependencies[ref]
			if !ok {
				continue // Already reported as a diagnostic.
			}
			if _, ok = g.modules[dep]; !ok {
				result = multierror.Append(result, errors.Errorf("%s: dependency %s was not resolved", m.Specifier, dep))
			}
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = formatErrors
	return result
}

func formatErrors(errs []error) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	if len(messages) == 1 {
		return "invalid module graph: " + messages[0]
	}
	return fmt.Sprintf("invalid module graph (%d problems): %s", len(messages), strings.Join(messages, "; "))
}
