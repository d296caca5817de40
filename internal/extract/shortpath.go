package extract

import (
	"net/url"
	"strings"

	"github.com/nieomylnieja/dtsdoc/internal/graph"
)

// ShortPath is the human-readable name of a module.
type ShortPath struct {
	Path      string          `json:"path"`
	Specifier graph.Specifier `json:"specifier"`
	// IsMain is set for the documentation entrypoint.
	IsMain bool `json:"isMain,omitempty"`
}

var declarationExtensions = []string{".d.mts", ".d.cts", ".d.ts", ".mts", ".cts", ".ts"}

// NewShortPath derives the short path of specifier: its host and path
// without scheme, leading slash or declaration file extension.
// "asset://deno_types" becomes "deno_types", "file:///lib/web.d.ts" becomes "lib/web".
func NewShortPath(specifier, main graph.Specifier) ShortPath {
	sp := ShortPath{Specifier: specifier, IsMain: specifier == main}
	u, err := url.Parse(string(specifier))
	if err != nil {
		sp.Path = string(specifier)
		return sp
	}
	path := u.Host + u.Path
	if u.Opaque != "" {
		path = u.Opaque
	}
	path = strings.TrimPrefix(path, "/")
	for _, ext := range declarationExtensions {
		if trimmed, ok := strings.CutSuffix(path, ext); ok {
			path = trimmed
			break
		}
	}
	sp.Path = path
	return sp
}
