package dtsdoc

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nieomylnieja/dtsdoc/internal/assemble"
	"github.com/nieomylnieja/dtsdoc/internal/docerr"
	"github.com/nieomylnieja/dtsdoc/internal/extract"
	"github.com/nieomylnieja/dtsdoc/internal/graph"
	"github.com/nieomylnieja/dtsdoc/internal/href"
	"github.com/nieomylnieja/dtsdoc/internal/jsdoc"
	"github.com/nieomylnieja/dtsdoc/internal/loader"
	"github.com/nieomylnieja/dtsdoc/internal/logfields"
	"github.com/nieomylnieja/dtsdoc/internal/render"
)

const (
	DefaultSiteRoot  = "/api"
	DefaultSpecifier = string(loader.SyntheticSpecifier)
)

// generateOptions is the immutable generation context shared by every stage.
type generateOptions struct {
	logger               *slog.Logger
	siteRoot             string
	specifier            string
	packageName          string
	includePrivate       bool
	docWarnings          bool
	stripPrefixes        []string
	caseInsensitivePaths bool
	clean                bool
	maxParallel          int
}

type GenerateOption func(options generateOptions) generateOptions

// WithLogger sets the logger every stage reports to. Logs are discarded by default.
func WithLogger(logger *slog.Logger) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.logger = logger
		return options
	}
}

// WithSiteRoot sets the URL prefix all generated links start with.
func WithSiteRoot(root string) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.siteRoot = root
		return options
	}
}

// WithSpecifier sets the synthetic module specifier the text is served under.
func WithSpecifier(specifier string) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.specifier = specifier
		return options
	}
}

// WithPackageName labels the root breadcrumb. It defaults to "index".
func WithPackageName(name string) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.packageName = name
		return options
	}
}

// WithIncludePrivate documents non-exported declarations and those tagged
// @private or @internal.
func WithIncludePrivate(include bool) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.includePrivate = include
		return options
	}
}

// WithDocWarnings logs every malformed documentation comment at WARN level.
// Malformed comments degrade to plain text either way.
func WithDocWarnings(enabled bool) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.docWarnings = enabled
		return options
	}
}

// WithStripPrefixes removes the given prefixes from every documentation description.
func WithStripPrefixes(prefixes ...string) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.stripPrefixes = append(options.stripPrefixes, prefixes...)
		return options
	}
}

// WithCaseInsensitivePaths treats symbol names differing only in case as colliding.
func WithCaseInsensitivePaths(enabled bool) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.caseInsensitivePaths = enabled
		return options
	}
}

// WithClean makes [Run] remove the output directory before writing.
func WithClean(clean bool) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.clean = clean
		return options
	}
}

// WithMaxParallel limits the number of files [Run] writes at once.
func WithMaxParallel(n int) GenerateOption {
	return func(options generateOptions) generateOptions {
		options.maxParallel = n
		return options
	}
}

func newGenerateOptions(opts []GenerateOption) generateOptions {
	options := generateOptions{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		siteRoot:  DefaultSiteRoot,
		specifier: DefaultSpecifier,
	}
	for _, opt := range opts {
		options = opt(options)
	}
	return options
}

// Site is the generated file map keyed by slash-separated paths rooted at "/".
type Site struct {
	files *assemble.Files
}

// Paths returns every file path in lexical order.
func (s *Site) Paths() []string { return s.files.Paths() }

// Get returns the contents of the file at path.
func (s *Site) Get(path string) (string, bool) { return s.files.Get(path) }

func (s *Site) Len() int { return s.files.Len() }

// Generate documents text and returns the complete site.
func Generate(ctx context.Context, text string, opts ...GenerateOption) (*Site, error) {
	options := newGenerateOptions(opts)
	start := time.Now()

	nodes, main, err := extractNodes(ctx, text, options)
	if err != nil {
		return nil, err
	}

	engine, err := render.NewTemplateEngine()
	if err != nil {
		return nil, docerr.Wrap(docerr.CategoryRender, err, "failed to load templates")
	}
	renderer := render.NewRenderer(
		engine,
		href.NewSiteResolver(options.siteRoot),
		main,
		render.WithPackageName(options.packageName),
		render.WithLogger(options.logger),
	)
	root, err := renderer.RenderAllSymbolsView(nodes)
	if err != nil {
		return nil, err
	}
	symbols, err := renderer.RenderSymbolViews(nodes, main)
	if err != nil {
		return nil, err
	}
	options.logger.Debug("rendered views", logfields.Stage("render"), logfields.Count(len(symbols)))

	files, err := assemble.Assemble(root, symbols, assemble.WithCaseInsensitivePaths(options.caseInsensitivePaths))
	if err != nil {
		return nil, err
	}
	options.logger.Info("documentation generated",
		logfields.Count(files.Len()),
		logfields.Duration(time.Since(start)))
	return &Site{files: files}, nil
}

// extractNodes runs the loader, graph and extraction stages.
func extractNodes(ctx context.Context, text string, options generateOptions) ([]extract.NodeWithOrigin, extract.ShortPath, error) {
	specifier, err := graph.ParseSpecifier(options.specifier)
	if err != nil {
		return nil, extract.ShortPath{}, docerr.Wrap(docerr.CategoryConfig, err, "invalid specifier")
	}
	g := graph.Build(ctx,
		[]graph.Specifier{specifier},
		loader.NewVirtual(specifier, text),
		graph.WithLogger(options.logger))
	if err = g.Valid(); err != nil {
		return nil, extract.ShortPath{}, docerr.Wrap(docerr.CategoryGraph, err, "failed to build module graph")
	}

	extractOpts := []extract.Option{
		extract.WithPrivate(options.includePrivate),
		extract.WithProcessors(jsdoc.StripPrefixes(options.stripPrefixes...), jsdoc.TrimWhitespace),
	}
	if options.docWarnings {
		extractOpts = append(extractOpts, extract.WithProblemHandler(func(p extract.Problem) {
			options.logger.Warn(p.Message,
				logfields.Symbol(p.Symbol),
				logfields.Location(p.Location.String()))
		}))
	}
	nodes, err := extract.Extract(g, specifier, extractOpts...)
	if err != nil {
		return nil, extract.ShortPath{}, docerr.Wrap(docerr.CategoryGraph, err, "failed to extract documentation")
	}
	options.logger.Debug("extracted symbols", logfields.Stage("extract"), logfields.Count(len(nodes)))
	return nodes, extract.NewShortPath(specifier, specifier), nil
}

// ErrorCategory names the pipeline stage err originates from:
// "source", "graph", "render", "collision", "config", "write" or "internal".
func ErrorCategory(err error) string {
	return string(docerr.CategoryOf(err))
}
