package jsdoc

import (
	"regexp"
	"strings"
)

// Link is an inline {@link target label} tag.
type Link struct {
	Target string
	Label  string
	// Code is set for {@linkcode}, whose label renders as code.
	Code bool
}

var inlineLinkRegex = regexp.MustCompile(`\{@(link|linkcode|linkplain)\s+([^}]*)\}`)

// ReplaceLinks substitutes every inline link tag in text with the result of replace.
func ReplaceLinks(text string, replace func(Link) string) string {
	return inlineLinkRegex.ReplaceAllStringFunc(text, func(match string) string {
		groups := inlineLinkRegex.FindStringSubmatch(match)
		return replace(parseLink(groups[1], groups[2]))
	})
}

func parseLink(kind, body string) Link {
	body = strings.TrimSpace(body)
	link := Link{Code: kind == "linkcode"}
	if target, label, ok := strings.Cut(body, "|"); ok {
		link.Target, link.Label = strings.TrimSpace(target), strings.TrimSpace(label)
	} else if i := strings.IndexAny(body, " \t\n"); i >= 0 {
		link.Target, link.Label = body[:i], strings.TrimSpace(body[i+1:])
	} else {
		link.Target = body
	}
	if link.Label == "" {
		link.Label = link.Target
	}
	return link
}

// checkInlineTags reports inline tags which are opened but never closed.
func checkInlineTags(text string) []Problem {
	var problems []Problem
	for lineNo, line := range strings.Split(text, "\n") {
		rest := line
		for {
			i := strings.Index(rest, "{@")
			if i < 0 {
				break
			}
			rest = rest[i+2:]
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				problems = append(problems, Problem{Line: lineNo + 1, Message: "unterminated inline tag"})
				break
			}
			if strings.TrimSpace(strings.TrimLeft(rest[:end], "abcdefghijklmnopqrstuvwxyz")) == "" {
				problems = append(problems, Problem{Line: lineNo + 1, Message: "inline tag without target"})
			}
			rest = rest[end+1:]
		}
	}
	return problems
}
