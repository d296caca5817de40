// Package source acquires the declaration text to document.
package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
)

// Source supplies the declaration text.
type Source interface {
	Read(ctx context.Context) (string, error)
	// Describe names the source in log messages.
	Describe() string
}

// Command runs a program and captures its standard output,
// for example `deno types`.
type Command struct {
	Args []string
	Dir  string
}

func (c Command) Describe() string { return strings.Join(c.Args, " ") }

func (c Command) Read(ctx context.Context) (string, error) {
	if len(c.Args) == 0 {
		return "", docerr.New(docerr.CategorySource, "no command configured")
	}
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.Wrap(err, msg)
		}
		return "", docerr.Wrapf(docerr.CategorySource, err, "failed to run %s", c.Describe())
	}
	return decode(c.Describe(), stdout.Bytes())
}

// File reads a declaration file. The path "-" reads standard input.
type File struct {
	Path  string
	Stdin io.Reader
}

func (f File) Describe() string { return f.Path }

func (f File) Read(ctx context.Context) (string, error) {
	if f.Path == "-" {
		stdin := f.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return Reader{R: stdin, Name: "stdin"}.Read(ctx)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", docerr.Wrapf(docerr.CategorySource, err, "failed to read %s", f.Path)
	}
	return decode(f.Path, data)
}

// Reader reads the text from an arbitrary reader.
type Reader struct {
	R    io.Reader
	Name string
}

func (r Reader) Describe() string { return r.Name }

func (r Reader) Read(context.Context) (string, error) {
	data, err := io.ReadAll(r.R)
	if err != nil {
		return "", docerr.Wrapf(docerr.CategorySource, err, "failed to read %s", r.Name)
	}
	return decode(r.Name, data)
}

// decode validates data as UTF-8 text.
func decode(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", docerr.New(docerr.CategorySource, "%s is not valid UTF-8 text", name)
	}
	return string(data), nil
}
