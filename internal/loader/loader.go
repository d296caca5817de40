// Package loader provides the module sources the graph builder resolves.
package loader

import (
	"context"

	"github.com/nieomylnieja/dtsdoc/internal/graph"
)

// SyntheticSpecifier names the single in-memory module holding the
// declaration text to document.
const SyntheticSpecifier graph.Specifier = "asset://deno_types"

// Virtual serves exactly one in-memory module.
// Every other specifier is rejected: the documented declaration universe is
// closed and nothing may reference the outside world.
type Virtual struct {
	specifier graph.Specifier
	content   string
}

// NewVirtual returns a loader serving content under specifier.
func NewVirtual(specifier graph.Specifier, content string) *Virtual {
	return &Virtual{specifier: specifier, content: content}
}

func (v *Virtual) Specifier() graph.Specifier { return v.specifier }

func (v *Virtual) Load(_ context.Context, specifier graph.Specifier) graph.LoadResult {
	if specifier != v.specifier {
		return graph.Rejected{Reason: "unexpected specifier " + specifier.String()}
	}
	return graph.Found{Specifier: specifier, Content: v.content}
}
