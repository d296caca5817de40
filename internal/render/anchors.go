package render

import (
	"strconv"
	"strings"
	"unicode"

	gmast "github.com/yuin/goldmark/ast"
)

// anchors hands out the element ids of a single view. Fragments of one view
// end up in the same document, so every id is unique across all of them,
// markdown heading ids included.
type anchors struct {
	used map[string]struct{}
}

func newAnchors() *anchors {
	return &anchors{used: make(map[string]struct{})}
}

// unique reserves id, suffixing it with _1, _2... when it is already taken.
func (a *anchors) unique(id string) string {
	candidate := id
	for i := 1; a.taken(candidate); i++ {
		candidate = id + "_" + strconv.Itoa(i)
	}
	a.used[candidate] = struct{}{}
	return candidate
}

func (a *anchors) taken(id string) bool {
	_, ok := a.used[id]
	return ok
}

// Generate implements goldmark's parser.IDs for auto heading ids.
func (a *anchors) Generate(value []byte, _ gmast.NodeKind) []byte {
	slug := slugify(string(value))
	if slug == "" {
		slug = "heading"
	}
	return []byte(a.unique(slug))
}

// Put implements goldmark's parser.IDs for explicitly set heading ids.
func (a *anchors) Put(value []byte) {
	a.used[string(value)] = struct{}{}
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}

// anchor is the element id of a namespace member or class member.
func anchor(dotted string) string {
	return strings.ReplaceAll(dotted, " ", "_")
}
