// Package writer persists an assembled file set under an output directory.
package writer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
	"github.com/nieomylnieja/dtsdoc/internal/logfields"
)

// FileSet is a read-only set of site-relative paths and their content.
type FileSet interface {
	Paths() []string
	Get(path string) (string, bool)
}

type writeOptions struct {
	clean       bool
	maxParallel int
	logger      *slog.Logger
}

type Option func(options writeOptions) writeOptions

// WithClean removes the output directory before writing.
func WithClean(clean bool) Option {
	return func(options writeOptions) writeOptions {
		options.clean = clean
		return options
	}
}

func WithMaxParallel(n int) Option {
	return func(options writeOptions) writeOptions {
		if n > 0 {
			options.maxParallel = n
		}
		return options
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(options writeOptions) writeOptions {
		options.logger = logger
		return options
	}
}

// Write writes every file of files below dir, creating intermediate
// directories. It stops at the first failure.
func Write(ctx context.Context, dir string, files FileSet, opts ...Option) error {
	options := writeOptions{
		maxParallel: runtime.GOMAXPROCS(0),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		options = opt(options)
	}
	start := time.Now()
	if options.clean {
		if err := os.RemoveAll(dir); err != nil {
			return docerr.Wrapf(docerr.CategoryWrite, err, "failed to clean output directory %s", dir)
		}
	}
	paths := files.Paths()
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(options.maxParallel)
	for _, p := range paths {
		content, _ := files.Get(p)
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(dir, p, content)
		})
	}
	if err := group.Wait(); err != nil {
		return docerr.Wrap(docerr.CategoryWrite, err, "failed to write output")
	}
	options.logger.Info("output written",
		logfields.Path(dir),
		logfields.Count(len(paths)),
		logfields.Duration(time.Since(start)))
	return nil
}

func writeFile(dir, rel, content string) error {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return errors.Errorf("output path %s escapes the output directory", rel)
	}
	full := filepath.Join(dir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", rel)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", rel)
	}
	return nil
}
