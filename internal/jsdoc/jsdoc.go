// Package jsdoc parses JSDoc comments into a description and block tags.
package jsdoc

import (
	"regexp"
	"strings"
)

// Comment is a parsed JSDoc comment.
type Comment struct {
	// Description is the markdown text preceding the first block tag.
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags,omitempty"`
}

// Tag is a block tag such as @param or @deprecated.
type Tag struct {
	Kind string `json:"kind"`
	// Name is set for tags naming something: @param, @template, @property.
	Name string `json:"name,omitempty"`
	// Type is the {braced} type expression of @param, @returns or @throws.
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// Problem describes malformed documentation syntax.
type Problem struct {
	// Line is relative to the start of the comment, 1-based.
	Line    int
	Message string
}

// Empty reports whether the comment carries neither a description nor tags.
func (c Comment) Empty() bool {
	return c.Description == "" && len(c.Tags) == 0
}

// Tag returns the first tag of the given kind.
func (c Comment) Tag(kind string) (Tag, bool) {
	for _, t := range c.Tags {
		if t.Kind == kind {
			return t, true
		}
	}
	return Tag{}, false
}

func (c Comment) HasTag(kind string) bool {
	_, ok := c.Tag(kind)
	return ok
}

// TagsOf returns all tags of the given kind in comment order.
func (c Comment) TagsOf(kind string) []Tag {
	var tags []Tag
	for _, t := range c.Tags {
		if t.Kind == kind {
			tags = append(tags, t)
		}
	}
	return tags
}

// Private reports whether the comment hides its declaration from documentation.
func (c Comment) Private() bool {
	return c.HasTag("private") || c.HasTag("internal") || c.HasTag("ignore")
}

// Ignored reports whether the declaration must be hidden even when
// private declarations are requested.
func (c Comment) Ignored() bool {
	return c.HasTag("ignore")
}

// Deprecated returns the @deprecated message. The boolean is false when
// the tag is absent; the message may be empty when it is present.
func (c Comment) Deprecated() (string, bool) {
	t, ok := c.Tag("deprecated")
	return t.Value, ok
}

// namedTags take a name after an optional {type}.
var namedTags = map[string]bool{
	"param":     true,
	"arg":       true,
	"argument":  true,
	"template":  true,
	"typeparam": true,
	"property":  true,
	"prop":      true,
}

// typedTags take an optional {type} before the value.
var typedTags = map[string]bool{
	"param":    true,
	"arg":      true,
	"argument": true,
	"returns":  true,
	"return":   true,
	"throws":   true,
	"type":     true,
	"property": true,
	"prop":     true,
}

var tagAliases = map[string]string{
	"return":    "returns",
	"arg":       "param",
	"argument":  "param",
	"prop":      "property",
	"typeparam": "template",
}

var fenceRegex = regexp.MustCompile("^\\s*(```|~~~)")

// Parse parses the raw text of a /** */ comment. Malformed syntax never
// fails parsing; it is reported as problems and the text is kept as is.
func Parse(raw string) (Comment, []Problem) {
	lines := commentLines(raw)
	var (
		comment  Comment
		problems []Problem
		desc     []string
		current  *tagBuilder
		inFence  bool
	)
	flush := func() {
		if current == nil {
			return
		}
		tag, problem := current.build()
		comment.Tags = append(comment.Tags, tag)
		if problem != "" {
			problems = append(problems, Problem{Line: current.line, Message: problem})
		}
		current = nil
	}
	for i, line := range lines {
		if fenceRegex.MatchString(line) {
			inFence = !inFence
		}
		trimmed := strings.TrimSpace(line)
		if !inFence && strings.HasPrefix(trimmed, "@") && len(trimmed) > 1 && isTagChar(trimmed[1]) {
			flush()
			current = newTagBuilder(trimmed, i+1)
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
			continue
		}
		desc = append(desc, line)
	}
	flush()
	comment.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	for _, p := range checkInlineTags(comment.Description) {
		problems = append(problems, Problem{Line: p.Line, Message: p.Message})
	}
	return comment, problems
}

// commentLines strips comment delimiters and leading asterisks.
func commentLines(raw string) []string {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
			lines[i] = trimmed
			continue
		}
		lines[i] = trimmed
	}
	return lines
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

type tagBuilder struct {
	kind  string
	line  int
	lines []string
}

func newTagBuilder(first string, line int) *tagBuilder {
	kind, rest := first[1:], ""
	if i := strings.IndexAny(kind, " \t"); i >= 0 {
		kind, rest = kind[:i], kind[i+1:]
	}
	return &tagBuilder{kind: kind, line: line, lines: []string{strings.TrimSpace(rest)}}
}

func (b *tagBuilder) build() (Tag, string) {
	kind := b.kind
	text := strings.TrimSpace(strings.Join(b.lines, "\n"))
	tag := Tag{Kind: kind}
	if alias, ok := tagAliases[kind]; ok {
		tag.Kind = alias
	}
	var problem string
	if typedTags[kind] && strings.HasPrefix(text, "{") {
		typ, rest, ok := cutBraced(text)
		if !ok {
			problem = "unterminated type expression in @" + kind
		} else {
			tag.Type, text = typ, strings.TrimSpace(rest)
		}
	}
	if namedTags[kind] {
		name, rest := text, ""
		if i := strings.IndexAny(text, " \t\n"); i >= 0 {
			name, rest = text[:i], text[i+1:]
		}
		if name == "" && problem == "" {
			problem = "missing name in @" + kind
		}
		tag.Name = strings.Trim(name, "[]")
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "-"))
	}
	switch tag.Kind {
	case "example":
		// Examples keep their own indentation.
		tag.Value = strings.Trim(strings.Join(b.lines, "\n"), "\n")
	default:
		tag.Value = text
	}
	if problem == "" {
		if ps := checkInlineTags(tag.Value); len(ps) > 0 {
			problem = ps[0].Message
		}
	}
	return tag, problem
}

// cutBraced splits "{a{b}} rest" into "a{b}" and " rest".
func cutBraced(s string) (inner, rest string, ok bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}
