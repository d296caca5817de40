package loader

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/tools/txtar"

	"github.com/nieomylnieja/dtsdoc/internal/graph"
)

// Archive serves a fixed set of modules, typically read from a txtar
// archive where each file name is resolved against a base specifier.
type Archive struct {
	modules map[graph.Specifier]string
}

// NewArchive resolves every file of archive against base.
// A file named "mod.d.ts" with base "asset://pkg/" is served as "asset://pkg/mod.d.ts".
func NewArchive(base graph.Specifier, archive *txtar.Archive) (*Archive, error) {
	a := &Archive{modules: make(map[graph.Specifier]string, len(archive.Files))}
	for _, f := range archive.Files {
		specifier, err := base.Resolve("./" + f.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve archive file %s", f.Name)
		}
		if _, dup := a.modules[specifier]; dup {
			return nil, errors.Errorf("archive contains %s twice", f.Name)
		}
		a.modules[specifier] = string(f.Data)
	}
	return a, nil
}

// ParseArchive is [NewArchive] for archive text.
func ParseArchive(base graph.Specifier, data []byte) (*Archive, error) {
	return NewArchive(base, txtar.Parse(data))
}

func (a *Archive) Load(_ context.Context, specifier graph.Specifier) graph.LoadResult {
	content, ok := a.modules[specifier]
	if !ok {
		return graph.Rejected{Reason: "unexpected specifier " + specifier.String()}
	}
	return graph.Found{Specifier: specifier, Content: content}
}
