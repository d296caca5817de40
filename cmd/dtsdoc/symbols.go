package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/dtsdoc/pkg/dtsdoc"
)

// SymbolsCmd implements the 'symbols' command.
type SymbolsCmd struct {
	InputFlags
	Format string `short:"f" help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (s *SymbolsCmd) Run(ctx context.Context, global *Global, cli *CLI) error {
	cfg, err := s.loadConfig(global, cli)
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	text, err := s.source(cfg).Read(ctx)
	if err != nil {
		return err
	}
	groups, err := dtsdoc.Symbols(ctx, text, generateOptions(cfg, global.Logger)...)
	if err != nil {
		return err
	}
	return printSymbols(os.Stdout, s.Format, groups)
}

func printSymbols(w io.Writer, format string, groups []dtsdoc.SymbolGroup) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(groups), "failed to encode symbols")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(groups); err != nil {
			return errors.Wrap(err, "failed to encode symbols")
		}
		return errors.Wrap(enc.Close(), "failed to encode symbols")
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKINDS\tORIGINS")
		for _, g := range groups {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Name, strings.Join(g.Kinds, ","), strings.Join(uniq(g.Origins), ","))
		}
		return errors.Wrap(tw.Flush(), "failed to write symbols")
	}
}

func uniq(values []string) []string {
	var result []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
