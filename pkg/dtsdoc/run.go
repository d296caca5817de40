package dtsdoc

import (
	"context"

	"github.com/nieomylnieja/dtsdoc/internal/logfields"
	"github.com/nieomylnieja/dtsdoc/internal/source"
	"github.com/nieomylnieja/dtsdoc/internal/writer"
)

// Source provides the declaration text to document.
type Source = source.Source

// Run reads the declaration text from src, generates the site and writes it
// under outputDir. Nothing is written if any stage before writing fails.
func Run(ctx context.Context, src Source, outputDir string, opts ...GenerateOption) error {
	options := newGenerateOptions(opts)
	options.logger.Debug("reading declarations", logfields.Stage("source"), logfields.Specifier(src.Describe()))
	text, err := src.Read(ctx)
	if err != nil {
		return err
	}
	site, err := Generate(ctx, text, opts...)
	if err != nil {
		return err
	}
	return writer.Write(ctx, outputDir, site.files,
		writer.WithClean(options.clean),
		writer.WithMaxParallel(options.maxParallel),
		writer.WithLogger(options.logger))
}
