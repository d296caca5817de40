package graph

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nieomylnieja/dtsdoc/internal/dts"
	"github.com/nieomylnieja/dtsdoc/internal/logfields"
)

// errLoadRejected stops the worklist once a loader refused a module.
var errLoadRejected = errors.New("module load rejected")

type buildOptions struct {
	logger      *slog.Logger
	maxParallel int64
}

type BuildOption func(options buildOptions) buildOptions

// WithLogger sets the logger used to report build progress.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(options buildOptions) buildOptions {
		options.logger = logger
		return options
	}
}

// WithMaxParallel limits how many modules are loaded and parsed at once.
func WithMaxParallel(n int) BuildOption {
	return func(options buildOptions) buildOptions {
		if n > 0 {
			options.maxParallel = int64(n)
		}
		return options
	}
}

// Build resolves roots and every module they reference through loader.
//
// Build never returns a partial graph silently: load rejections, parse
// errors and unresolvable references are recorded as diagnostics and the
// caller must check [Graph.Valid] before using the graph.
// A rejection aborts the remaining work.
func Build(ctx context.Context, roots []Specifier, loader Loader, opts ...BuildOption) *Graph {
	options := buildOptions{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxParallel: int64(runtime.GOMAXPROCS(0)),
	}
	for _, opt := range opts {
		options = opt(options)
	}
	start := time.Now()
	b := &builder{
		graph:  newGraph(roots),
		loader: loader,
		sem:    semaphore.NewWeighted(options.maxParallel),
		logger: options.logger,
		seen:   make(map[Specifier]bool),
	}
	group, groupCtx := errgroup.WithContext(ctx)
	b.group, b.ctx = group, groupCtx
	for _, root := range roots {
		b.enqueue(root)
	}
	if err := group.Wait(); err != nil && !errors.Is(err, errLoadRejected) {
		b.graph.addDiagnostic("", "module graph build interrupted: %v", err)
	}
	b.graph.seal()
	options.logger.Debug("module graph built",
		logfields.Count(len(b.graph.modules)),
		logfields.Duration(time.Since(start)))
	return b.graph
}

type builder struct {
	graph  *Graph
	loader Loader
	sem    *semaphore.Weighted
	logger *slog.Logger

	group *errgroup.Group
	ctx   context.Context

	mu   sync.Mutex
	seen map[Specifier]bool
}

// enqueue schedules specifier unless it was already scheduled.
func (b *builder) enqueue(specifier Specifier) {
	b.mu.Lock()
	if b.seen[specifier] {
		b.mu.Unlock()
		return
	}
	b.seen[specifier] = true
	b.mu.Unlock()
	b.group.Go(func() error { return b.visit(specifier) })
}

func (b *builder) visit(specifier Specifier) error {
	if err := b.sem.Acquire(b.ctx, 1); err != nil {
		return err
	}
	module, err := b.load(specifier)
	b.sem.Release(1)
	if err != nil || module == nil {
		return err
	}
	b.graph.addModule(module)
	for _, ref := range module.File.Dependencies() {
		if dep, ok := module.Dependencies[ref]; ok {
			b.enqueue(dep)
		}
	}
	return nil
}

func (b *builder) load(specifier Specifier) (*Module, error) {
	b.logger.Debug("loading module", logfields.Specifier(specifier.String()))
	switch result := b.loader.Load(b.ctx, specifier).(type) {
	case Rejected:
		b.graph.addDiagnostic(specifier, "failed to load module: %s", result.Reason)
		return nil, errLoadRejected
	case Found:
		file := dts.Parse(result.Content)
		for _, d := range file.Diagnostics {
			b.graph.addDiagnostic(specifier, "parse error at %s: %s", d.Pos, d.Message)
		}
		module := &Module{
			Specifier:    specifier,
			File:         file,
			Dependencies: make(map[string]Specifier),
		}
		for _, ref := range file.Dependencies() {
			dep, err := specifier.Resolve(ref)
			if err != nil {
				b.graph.addDiagnostic(specifier, "%v", err)
				continue
			}
			module.Dependencies[ref] = dep
		}
		return module, nil
	default:
		b.graph.addDiagnostic(specifier, "loader returned no result")
		return nil, errLoadRejected
	}
}
