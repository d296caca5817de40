package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nieomylnieja/dtsdoc/internal/config"
	"github.com/nieomylnieja/dtsdoc/internal/logfields"
	"github.com/nieomylnieja/dtsdoc/internal/source"
	"github.com/nieomylnieja/dtsdoc/pkg/dtsdoc"
)

// InputFlags select the declaration text, overriding the configured source.
type InputFlags struct {
	Input     string `short:"i" help:"Declaration file to document, '-' reads standard input. Defaults to the configured source."`
	Specifier string `help:"Module specifier the declarations are served under."`
}

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	InputFlags
	Output   string `short:"o" help:"Output directory." type:"path"`
	SiteRoot string `name:"site-root" help:"URL prefix of every generated link, for example /api."`
	Clean    bool   `help:"Remove the output directory before writing."`
}

func (g *GenerateCmd) Run(ctx context.Context, global *Global, cli *CLI) error {
	cfg, err := g.loadConfig(global, cli)
	if err != nil {
		return err
	}
	if g.Output != "" {
		cfg.Output = g.Output
	}
	if g.SiteRoot != "" {
		cfg.SiteRoot = g.SiteRoot
	}
	if g.Clean {
		cfg.Clean = true
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	global.Logger.Info("generating documentation",
		logfields.Path(cfg.Output),
		slog.String("siteRoot", cfg.SiteRoot))
	return dtsdoc.Run(ctx, g.source(cfg), cfg.Output, generateOptions(cfg, global.Logger)...)
}

// loadConfig reads the configuration and replaces the bootstrap logger
// with one honouring the configured log settings.
func (f InputFlags) loadConfig(global *Global, cli *CLI) (config.Config, error) {
	cfg, path, err := config.Discover(cli.Config)
	if err != nil {
		return config.Config{}, err
	}
	global.Logger = newLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format, cli.Verbose)
	slog.SetDefault(global.Logger)
	if path != "" {
		global.Logger.Debug("loaded configuration", logfields.Path(path))
	}
	if f.Input != "" {
		cfg.Source = config.Source{File: f.Input}
	}
	if f.Specifier != "" {
		cfg.Specifier = f.Specifier
	}
	return cfg, nil
}

func (f InputFlags) source(cfg config.Config) source.Source {
	if cfg.Source.File != "" {
		return source.File{Path: cfg.Source.File, Stdin: os.Stdin}
	}
	return source.Command{Args: cfg.Source.Command}
}

func generateOptions(cfg config.Config, logger *slog.Logger) []dtsdoc.GenerateOption {
	return []dtsdoc.GenerateOption{
		dtsdoc.WithLogger(logger),
		dtsdoc.WithSiteRoot(cfg.SiteRoot),
		dtsdoc.WithSpecifier(cfg.Specifier),
		dtsdoc.WithPackageName(cfg.PackageName),
		dtsdoc.WithIncludePrivate(cfg.IncludePrivate),
		dtsdoc.WithDocWarnings(cfg.DocDiagnostics == config.DocDiagnosticsWarn),
		dtsdoc.WithStripPrefixes(cfg.StripDocPrefixes...),
		dtsdoc.WithCaseInsensitivePaths(cfg.CaseInsensitivePaths),
		dtsdoc.WithClean(cfg.Clean),
	}
}
