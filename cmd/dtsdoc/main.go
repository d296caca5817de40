package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/nieomylnieja/dtsdoc/internal/logfields"
)

// Global is shared by all commands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path, looked up from the working directory when empty." type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging."`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate HTML documentation for TypeScript declarations."`
	Symbols  SymbolsCmd  `cmd:"" help:"Print the extracted symbol groups without rendering them."`
}

// AfterApply sets up a logger before the configuration file is read.
func (c *CLI) AfterApply(global *Global) error {
	global.Logger = newLogger(os.Stderr, "", "", c.Verbose)
	slog.SetDefault(global.Logger)
	return nil
}

func main() {
	var cli CLI
	global := &Global{Logger: slog.Default()}
	kctx := kong.Parse(&cli,
		kong.Name("dtsdoc"),
		kong.Description("Static documentation generator for TypeScript ambient declarations."),
		kong.UsageOnError(),
		kong.Bind(global),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(global, &cli)
	cancel()
	if err != nil {
		global.Logger.Error("dtsdoc failed", logfields.Error(err))
		os.Exit(1)
	}
}
