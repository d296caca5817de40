package dts

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokTemplate
	tokPunct
)

// Position is a 1-based line and column (columns count runes).
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

type token struct {
	kind  tokenKind
	value string
	start int
	end   int
	pos   Position
	// jsDoc is the last /** */ comment between the previous token and this one.
	jsDoc    string
	jsDocPos Position
	// newline is set if at least one line break precedes the token.
	newline bool
}

func (t token) is(kind tokenKind, value string) bool {
	return t.kind == kind && t.value == value
}

func (t token) isPunct(value string) bool { return t.is(tokPunct, value) }

func (t token) isIdent(value string) bool { return t.is(tokIdent, value) }

const bom = "\uFEFF"

var referencePathRegex = regexp.MustCompile(`^///\s*<reference\s+path\s*=\s*["']([^"']+)["']`)

type lexer struct {
	src  string
	off  int
	line int
	col  int

	tokens []token
	// leadingJSDoc is the first /** */ comment of the file if it precedes every token.
	leadingJSDoc    string
	leadingJSDocPos Position
	references      []Reference
	diagnostics     []Diagnostic
}

func lex(src string) *lexer {
	l := &lexer{src: src, line: 1, col: 1}
	if strings.HasPrefix(src, bom) {
		l.off = len(bom)
	}
	l.run()
	return l
}

func (l *lexer) pos() Position { return Position{Line: l.line, Col: l.col} }

func (l *lexer) advance(n int) {
	for _, r := range l.src[l.off : l.off+n] {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.off += n
}

func (l *lexer) errorf(pos Position, format string, args ...any) {
	l.diagnostics = append(l.diagnostics, Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// trivia collects what the lexer skips between two tokens.
type trivia struct {
	jsDoc    string
	jsDocPos Position
	newline  bool
}

func (l *lexer) run() {
	for {
		tr := l.skipTrivia()
		if l.off >= len(l.src) {
			l.tokens = append(l.tokens, token{kind: tokEOF, start: l.off, end: l.off, pos: l.pos(), newline: true})
			return
		}
		tok := l.scanToken()
		tok.jsDoc, tok.jsDocPos, tok.newline = tr.jsDoc, tr.jsDocPos, tr.newline
		l.tokens = append(l.tokens, tok)
	}
}

// skipTrivia skips whitespace and comments, recording reference directives.
func (l *lexer) skipTrivia() trivia {
	var tr trivia
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		switch {
		case r == '\n':
			tr.newline = true
			l.advance(size)
		case unicode.IsSpace(r):
			l.advance(size)
		case strings.HasPrefix(l.src[l.off:], "//"):
			end := strings.IndexByte(l.src[l.off:], '\n')
			if end < 0 {
				end = len(l.src) - l.off
			}
			if m := referencePathRegex.FindStringSubmatch(l.src[l.off : l.off+end]); m != nil {
				l.references = append(l.references, Reference{Path: m[1], Pos: l.pos()})
			}
			l.advance(end)
		case strings.HasPrefix(l.src[l.off:], "/*"):
			start := l.pos()
			end := strings.Index(l.src[l.off+2:], "*/")
			if end < 0 {
				l.errorf(start, "unterminated comment")
				l.advance(len(l.src) - l.off)
				return tr
			}
			comment := l.src[l.off : l.off+2+end+2]
			if strings.HasPrefix(comment, "/**") && comment != "/**/" {
				tr.jsDoc, tr.jsDocPos = comment, start
				if len(l.tokens) == 0 && l.leadingJSDoc == "" {
					l.leadingJSDoc, l.leadingJSDocPos = comment, start
				}
			}
			if strings.Contains(comment, "\n") {
				tr.newline = true
			}
			l.advance(len(comment))
		default:
			return tr
		}
	}
	return tr
}

func (l *lexer) scanToken() token {
	start, pos := l.off, l.pos()
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	kind := tokPunct
	switch {
	case isIdentStart(r):
		l.advance(size)
		for l.off < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.off:])
			if !isIdentPart(r) {
				break
			}
			l.advance(size)
		}
		kind = tokIdent
	case r >= '0' && r <= '9':
		for l.off < len(l.src) {
			r, size = utf8.DecodeRuneInString(l.src[l.off:])
			if !isIdentPart(r) && r != '.' {
				break
			}
			l.advance(size)
		}
		kind = tokNumber
	case r == '"' || r == '\'':
		l.scanString(r, pos)
		kind = tokString
	case r == '`':
		l.scanTemplate(pos)
		kind = tokTemplate
	case strings.HasPrefix(l.src[l.off:], "..."):
		l.advance(3)
	case strings.HasPrefix(l.src[l.off:], "=>"):
		l.advance(2)
	default:
		l.advance(size)
	}
	return token{kind: kind, value: l.src[start:l.off], start: start, end: l.off, pos: pos}
}

func (l *lexer) scanString(quote rune, pos Position) {
	l.advance(1)
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == '\\' && l.off+1 < len(l.src):
			_, size := utf8.DecodeRuneInString(l.src[l.off+1:])
			l.advance(1 + size)
		case rune(c) == quote:
			l.advance(1)
			return
		case c == '\n':
			l.errorf(pos, "unterminated string literal")
			return
		default:
			l.advance(1)
		}
	}
	l.errorf(pos, "unterminated string literal")
}

func (l *lexer) scanTemplate(pos Position) {
	l.advance(1)
	depth := 0
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == '\\' && l.off+1 < len(l.src):
			l.advance(2)
		case depth == 0 && c == '`':
			l.advance(1)
			return
		case c == '$' && strings.HasPrefix(l.src[l.off:], "${"):
			depth++
			l.advance(2)
		case depth > 0 && c == '}':
			depth--
			l.advance(1)
		default:
			_, size := utf8.DecodeRuneInString(l.src[l.off:])
			l.advance(size)
		}
	}
	l.errorf(pos, "unterminated template literal")
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
