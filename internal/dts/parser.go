package dts

import (
	"fmt"
	"strings"
)

// Parse parses declaration text. It never fails: problems are reported
// through [File.Diagnostics] and the parser resumes at the next statement.
func Parse(src string) *File {
	l := lex(src)
	p := &parser{tokens: l.tokens, file: &File{References: l.references}}
	p.file.Diagnostics = append(p.file.Diagnostics, l.diagnostics...)
	p.takeModuleDoc(l.leadingJSDoc, l.leadingJSDocPos)
	p.file.Decls = p.parseStatements(scope{topLevel: true})
	p.collectImportTypes()
	if !p.file.IsModule {
		for _, decl := range p.file.Decls {
			decl.Global = true
		}
	}
	return p.file
}

type parser struct {
	tokens []token
	i      int
	file   *File
}

// scope describes the block statements are being parsed in.
type scope struct {
	topLevel bool
	ambient  bool
	global   bool
}

func (p *parser) peek() token { return p.tokens[p.i] }

func (p *parser) peekN(n int) token {
	if p.i+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.i+n]
}

func (p *parser) next() token {
	tok := p.tokens[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) acceptPunct(value string) bool {
	if p.peek().isPunct(value) {
		p.i++
		return true
	}
	return false
}

func (p *parser) acceptIdent(value string) bool {
	if p.peek().isIdent(value) {
		p.i++
		return true
	}
	return false
}

func (p *parser) errorf(tok token, format string, args ...any) {
	p.file.Diagnostics = append(p.file.Diagnostics, Diagnostic{Pos: tok.pos, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) expectPunct(value string) bool {
	if p.acceptPunct(value) {
		return true
	}
	p.errorf(p.peek(), "expected %q, found %s", value, describe(p.peek()))
	return false
}

// takeModuleDoc detaches a leading @module comment from the first token.
func (p *parser) takeModuleDoc(leading string, leadingPos Position) {
	if leading == "" || !strings.Contains(leading, "@module") {
		return
	}
	p.file.ModuleDoc, p.file.ModuleDocPos = leading, leadingPos
	if first := &p.tokens[0]; first.jsDocPos == leadingPos {
		first.jsDoc = ""
	}
}

// collectImportTypes records `import("x")` type queries as type-only imports.
func (p *parser) collectImportTypes() {
	for i := 0; i+3 < len(p.tokens); i++ {
		if p.tokens[i].isIdent("import") && p.tokens[i+1].isPunct("(") &&
			p.tokens[i+2].kind == tokString && p.tokens[i+3].isPunct(")") {
			p.file.Imports = append(p.file.Imports, Import{
				Specifier: unquote(p.tokens[i+2]),
				Pos:       p.tokens[i].pos,
				TypeOnly:  true,
			})
		}
	}
}

// recover skips to the end of the current statement.
func (p *parser) recover() {
	depth := 0
	for !p.atEOF() {
		tok := p.peek()
		switch {
		case tok.isPunct("{"), tok.isPunct("("), tok.isPunct("["):
			depth++
		case tok.isPunct("}"), tok.isPunct(")"), tok.isPunct("]"):
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 && tok.isPunct("}") {
				p.i++
				return
			}
		case tok.isPunct(";") && depth == 0:
			p.i++
			return
		}
		p.i++
	}
}

func (p *parser) parseStatements(sc scope) []*Decl {
	var decls []*Decl
	for !p.atEOF() {
		if p.peek().isPunct("}") {
			if sc.topLevel {
				p.errorf(p.peek(), "unexpected %s", describe(p.peek()))
				p.i++
				continue
			}
			return decls
		}
		start := p.i
		decls = append(decls, p.parseStatement(sc)...)
		if p.i == start {
			// Guarantee progress on input the parser does not understand.
			p.errorf(p.peek(), "unexpected %s", describe(p.peek()))
			p.next()
			p.recover()
		}
	}
	return decls
}

func (p *parser) parseStatement(sc scope) []*Decl {
	tok := p.peek()
	switch {
	case tok.isPunct(";"):
		p.i++
		return nil
	case tok.isIdent("import") && !p.peekN(1).isPunct("(") && !p.peekN(1).isPunct("."):
		if sc.topLevel {
			p.file.IsModule = true
		}
		p.parseImport(sc)
		return nil
	case tok.isIdent("export"):
		return p.parseExport(sc)
	}
	return p.parseDeclaration(sc, declModifiers{jsDoc: tok.jsDoc})
}

// declModifiers accumulates what precedes a declaration keyword.
type declModifiers struct {
	jsDoc     string
	exported  bool
	isDefault bool
	ambient   bool
	modifiers []string
}

func (p *parser) parseExport(sc scope) []*Decl {
	exportTok := p.next()
	if sc.topLevel {
		p.file.IsModule = true
	}
	switch tok := p.peek(); {
	case tok.isPunct("{") || (tok.isIdent("type") && p.peekN(1).isPunct("{")):
		p.acceptIdent("type")
		names := p.parseBindings("as")
		exp := Export{Pos: exportTok.pos, Names: names}
		if p.acceptIdent("from") {
			exp.Specifier = p.parseModuleSpecifier()
		}
		p.endStatement()
		// Export lists inside namespaces only affect visibility, which
		// ambient namespaces do not restrict.
		if sc.topLevel {
			p.file.Exports = append(p.file.Exports, exp)
		}
		return nil
	case tok.isPunct("*") || (tok.isIdent("type") && p.peekN(1).isPunct("*")):
		p.acceptIdent("type")
		p.next()
		exp := Export{Pos: exportTok.pos, Star: true}
		if p.acceptIdent("as") {
			exp.StarAlias = p.next().value
		}
		if !p.acceptIdent("from") {
			p.errorf(p.peek(), "expected %q, found %s", "from", describe(p.peek()))
			p.recover()
			return nil
		}
		exp.Specifier = p.parseModuleSpecifier()
		p.endStatement()
		if sc.topLevel {
			p.file.Exports = append(p.file.Exports, exp)
		}
		return nil
	case tok.isPunct("="):
		// `export = X` only matters to CommonJS consumers.
		p.recover()
		return nil
	case tok.isIdent("as") && p.peekN(1).isIdent("namespace"):
		p.recover()
		return nil
	case tok.isIdent("import"):
		// export import A = B.C;
		p.recover()
		return nil
	case tok.isIdent("default"):
		p.next()
		mods := declModifiers{jsDoc: exportTok.jsDoc, exported: true, isDefault: true}
		if isDeclarationStart(p.peek(), p.peekN(1)) {
			return p.parseDeclaration(sc, mods)
		}
		// export default someIdentifier;
		local := p.next()
		if local.kind != tokIdent {
			p.errorf(local, "unsupported default export %s", describe(local))
			p.recover()
			return nil
		}
		p.endStatement()
		if sc.topLevel {
			p.file.Exports = append(p.file.Exports, Export{
				Pos:   exportTok.pos,
				Names: []Binding{{Name: local.value, Alias: "default"}},
			})
		}
		return nil
	}
	return p.parseDeclaration(sc, declModifiers{jsDoc: exportTok.jsDoc, exported: true})
}

func (p *parser) parseImport(sc scope) {
	importTok := p.next()
	imp := Import{Pos: importTok.pos}
	if p.peek().isIdent("type") && !p.peekN(1).isIdent("from") && !p.peekN(1).isPunct(",") {
		p.next()
		imp.TypeOnly = true
	}
	if p.peek().kind == tokString {
		// Side effect import.
		imp.Specifier = p.parseModuleSpecifier()
		p.endStatement()
		p.addImport(sc, imp)
		return
	}
	if p.peek().kind == tokIdent && !p.peek().isIdent("from") {
		imp.Default = p.next().value
		if p.acceptPunct("=") {
			// import A = require("x") or import A = B.C
			if p.acceptIdent("require") && p.expectPunct("(") {
				imp.Specifier = p.parseModuleSpecifier()
				p.expectPunct(")")
				p.endStatement()
				p.addImport(sc, Import{Pos: imp.Pos, Specifier: imp.Specifier, Namespace: imp.Default})
				return
			}
			p.recover()
			return
		}
		p.acceptPunct(",")
	}
	switch {
	case p.peek().isPunct("*"):
		p.next()
		if !p.acceptIdent("as") {
			p.errorf(p.peek(), "expected %q, found %s", "as", describe(p.peek()))
			p.recover()
			return
		}
		imp.Namespace = p.next().value
	case p.peek().isPunct("{"):
		imp.Names = p.parseBindings("as")
	}
	if !p.acceptIdent("from") {
		p.errorf(p.peek(), "expected %q, found %s", "from", describe(p.peek()))
		p.recover()
		return
	}
	imp.Specifier = p.parseModuleSpecifier()
	p.endStatement()
	p.addImport(sc, imp)
}

func (p *parser) addImport(sc scope, imp Import) {
	if sc.topLevel {
		p.file.Imports = append(p.file.Imports, imp)
	}
}

// parseBindings parses `{ a, b as c, type d }`.
func (p *parser) parseBindings(aliasKeyword string) []Binding {
	var bindings []Binding
	if !p.expectPunct("{") {
		return nil
	}
	for !p.atEOF() && !p.peek().isPunct("}") {
		if p.peek().isIdent("type") && p.peekN(1).kind == tokIdent && !p.peekN(1).isIdent(aliasKeyword) {
			p.next()
		}
		name := p.next()
		if name.kind != tokIdent && name.kind != tokString {
			p.errorf(name, "expected binding name, found %s", describe(name))
			p.recover()
			return bindings
		}
		b := Binding{Name: unquote(name), Alias: unquote(name)}
		if p.acceptIdent(aliasKeyword) {
			b.Alias = unquote(p.next())
		}
		bindings = append(bindings, b)
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	return bindings
}

func (p *parser) parseModuleSpecifier() string {
	tok := p.next()
	if tok.kind != tokString {
		p.errorf(tok, "expected module specifier, found %s", describe(tok))
		return ""
	}
	return unquote(tok)
}

// endStatement consumes an optional semicolon.
func (p *parser) endStatement() {
	p.acceptPunct(";")
}

var modifierKeywords = map[string]bool{
	"declare":  true,
	"abstract": true,
	"async":    true,
	"default":  true,
}

var declarationKeywords = map[string]bool{
	"function":  true,
	"class":     true,
	"interface": true,
	"type":      true,
	"const":     true,
	"let":       true,
	"var":       true,
	"enum":      true,
	"namespace": true,
	"module":    true,
	"global":    true,
}

func isDeclarationStart(tok, next token) bool {
	if tok.kind != tokIdent {
		return false
	}
	switch tok.value {
	case "type":
		return next.kind == tokIdent
	case "global":
		return next.isPunct("{")
	case "module", "namespace":
		return next.kind == tokIdent || next.kind == tokString
	case "abstract", "async", "declare":
		return next.kind == tokIdent
	}
	return declarationKeywords[tok.value]
}

func (p *parser) parseDeclaration(sc scope, mods declModifiers) []*Decl {
	for p.peek().kind == tokIdent && modifierKeywords[p.peek().value] && p.peekN(1).kind == tokIdent {
		switch kw := p.next().value; kw {
		case "declare":
			mods.ambient = true
		case "default":
			mods.isDefault = true
		default:
			mods.modifiers = append(mods.modifiers, kw)
		}
	}
	tok := p.peek()
	if !isDeclarationStart(tok, p.peekN(1)) {
		if tok.isPunct("}") && !sc.topLevel {
			return nil
		}
		p.errorf(tok, "unexpected %s", describe(tok))
		p.next()
		p.recover()
		return nil
	}
	switch tok.value {
	case "function":
		p.next()
		return []*Decl{p.parseFunction(sc, mods)}
	case "class":
		p.next()
		return []*Decl{p.parseClassLike(sc, mods, DeclClass)}
	case "interface":
		p.next()
		return []*Decl{p.parseClassLike(sc, mods, DeclInterface)}
	case "type":
		p.next()
		return []*Decl{p.parseTypeAlias(sc, mods)}
	case "enum":
		p.next()
		return []*Decl{p.parseEnum(sc, mods)}
	case "const":
		if p.peekN(1).isIdent("enum") {
			p.next()
			p.next()
			mods.modifiers = append(mods.modifiers, "const")
			return []*Decl{p.parseEnum(sc, mods)}
		}
		return p.parseVariables(sc, mods)
	case "let", "var":
		return p.parseVariables(sc, mods)
	case "global":
		p.next()
		return p.parseGlobalBlock(sc)
	case "namespace", "module":
		p.next()
		if p.peek().kind == tokString {
			// Ambient external module declarations describe other modules.
			p.next()
			if p.peek().isPunct("{") {
				p.skipBalanced()
			} else {
				p.endStatement()
			}
			return nil
		}
		return []*Decl{p.parseNamespace(sc, mods)}
	}
	return nil
}

func (p *parser) newDecl(kind DeclKind, sc scope, mods declModifiers, nameTok token) *Decl {
	decl := &Decl{
		Kind:      kind,
		Name:      nameTok.value,
		Pos:       nameTok.pos,
		JSDoc:     mods.jsDoc,
		Exported:  mods.exported,
		Default:   mods.isDefault,
		Ambient:   mods.ambient || sc.ambient,
		Global:    sc.global,
		Modifiers: mods.modifiers,
	}
	return decl
}

// parseName parses a declaration name. Anonymous default exports are named "default".
func (p *parser) parseName(mods declModifiers) token {
	tok := p.peek()
	if tok.kind == tokIdent && !(tok.isIdent("extends") || tok.isIdent("implements")) {
		return p.next()
	}
	if mods.isDefault {
		return token{kind: tokIdent, value: "default", pos: tok.pos}
	}
	p.errorf(tok, "expected identifier, found %s", describe(tok))
	return token{kind: tokIdent, pos: tok.pos}
}

func (p *parser) parseFunction(sc scope, mods declModifiers) *Decl {
	p.acceptPunct("*")
	decl := p.newDecl(DeclFunction, sc, mods, p.parseName(mods))
	decl.TypeParams = p.parseTypeParams()
	if !p.peek().isPunct("(") {
		p.errorf(p.peek(), "expected %q, found %s", "(", describe(p.peek()))
		p.recover()
		return decl
	}
	decl.Params = p.parseParams()
	if p.acceptPunct(":") {
		decl.Type = p.captureType(terminators{})
	}
	if p.peek().isPunct("{") {
		p.skipBalanced()
		return decl
	}
	p.endStatement()
	return decl
}

func (p *parser) parseClassLike(sc scope, mods declModifiers, kind DeclKind) *Decl {
	decl := p.newDecl(kind, sc, mods, p.parseName(mods))
	decl.TypeParams = p.parseTypeParams()
	start := p.i
	for !p.atEOF() && !p.peek().isPunct("{") && !p.peek().isPunct(";") {
		if p.peek().isPunct("<") {
			p.parseTypeParams()
			continue
		}
		p.next()
	}
	decl.Heritage = p.text(start, p.i)
	if !p.peek().isPunct("{") {
		p.errorf(p.peek(), "expected %q, found %s", "{", describe(p.peek()))
		p.recover()
		return decl
	}
	decl.Members = p.parseMembers()
	return decl
}

func (p *parser) parseTypeAlias(sc scope, mods declModifiers) *Decl {
	decl := p.newDecl(DeclTypeAlias, sc, mods, p.parseName(mods))
	decl.TypeParams = p.parseTypeParams()
	if !p.expectPunct("=") {
		p.recover()
		return decl
	}
	decl.Type = p.captureType(terminators{})
	p.endStatement()
	return decl
}

func (p *parser) parseVariables(sc scope, mods declModifiers) []*Decl {
	keyword := p.next().value
	var decls []*Decl
	for {
		nameTok := p.next()
		if nameTok.kind != tokIdent {
			p.errorf(nameTok, "expected identifier, found %s", describe(nameTok))
			p.recover()
			return decls
		}
		m := mods
		m.modifiers = append(append([]string(nil), mods.modifiers...), keyword)
		decl := p.newDecl(DeclVariable, sc, m, nameTok)
		if p.acceptPunct(":") {
			decl.Type = p.captureType(terminators{comma: true, equals: true})
		}
		if p.acceptPunct("=") {
			decl.Initializer = p.captureType(terminators{comma: true})
		}
		decls = append(decls, decl)
		if !p.acceptPunct(",") {
			break
		}
	}
	p.endStatement()
	return decls
}

func (p *parser) parseEnum(sc scope, mods declModifiers) *Decl {
	decl := p.newDecl(DeclEnum, sc, mods, p.parseName(mods))
	if !p.expectPunct("{") {
		p.recover()
		return decl
	}
	for !p.atEOF() && !p.peek().isPunct("}") {
		nameTok := p.next()
		if nameTok.kind != tokIdent && nameTok.kind != tokString {
			p.errorf(nameTok, "expected enum member, found %s", describe(nameTok))
			p.recover()
			return decl
		}
		member := EnumMember{Name: unquote(nameTok), Pos: nameTok.pos, JSDoc: nameTok.jsDoc}
		if p.acceptPunct("=") {
			member.Initializer = p.captureType(terminators{comma: true})
		}
		decl.Enum = append(decl.Enum, member)
		if !p.acceptPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	return decl
}

func (p *parser) parseNamespace(sc scope, mods declModifiers) *Decl {
	nameTok := p.parseName(mods)
	decl := p.newDecl(DeclNamespace, sc, mods, nameTok)
	inner := scope{ambient: decl.Ambient}
	// namespace A.B.C { } nests B in A and C in B.
	current := decl
	for p.acceptPunct(".") {
		childTok := p.next()
		child := p.newDecl(DeclNamespace, inner, declModifiers{exported: true}, childTok)
		current.Children = []*Decl{child}
		current = child
	}
	if !p.expectPunct("{") {
		p.recover()
		return decl
	}
	current.Children = p.parseStatements(inner)
	p.expectPunct("}")
	return decl
}

// parseGlobalBlock flattens `declare global { ... }` into the enclosing scope.
func (p *parser) parseGlobalBlock(sc scope) []*Decl {
	if !p.expectPunct("{") {
		p.recover()
		return nil
	}
	decls := p.parseStatements(scope{ambient: true, global: sc.topLevel})
	p.expectPunct("}")
	return decls
}

func (p *parser) parseTypeParams() string {
	if !p.peek().isPunct("<") {
		return ""
	}
	start := p.i
	depth := 0
	for !p.atEOF() {
		tok := p.next()
		switch {
		case tok.isPunct("<"):
			depth++
		case tok.isPunct(">"):
			depth--
			if depth == 0 {
				return p.text(start, p.i)
			}
		}
	}
	return p.text(start, p.i)
}

func (p *parser) parseParams() string {
	start := p.i
	p.skipBalanced()
	return p.text(start, p.i)
}

// skipBalanced consumes a bracketed group starting at the current token.
func (p *parser) skipBalanced() {
	open := p.next()
	closeBy := map[string]string{"(": ")", "[": "]", "{": "}"}[open.value]
	depth := 1
	for !p.atEOF() {
		tok := p.next()
		switch tok.value {
		case open.value:
			if tok.kind == tokPunct {
				depth++
			}
		case closeBy:
			if tok.kind == tokPunct {
				depth--
				if depth == 0 {
					return
				}
			}
		}
	}
	p.errorf(open, "unbalanced %q", open.value)
}

type terminators struct {
	comma  bool
	equals bool
}

// continuation tokens keep a type going across a line break.
var continuationPunct = map[string]bool{
	"|": true, "&": true, ":": true, "=>": true, ",": true, "?": true,
	".": true, "(": true, "<": true, "=": true, "[": true, "{": true,
}

var continuationIdents = map[string]bool{
	"extends": true, "keyof": true, "typeof": true, "infer": true,
	"is": true, "asserts": true, "readonly": true, "unique": true, "new": true, "as": true,
}

// captureType consumes a type (or initializer expression) and returns its text.
// It stops at a depth-0 terminator, a closing bracket of an enclosing
// group, or a line break which ends the statement.
func (p *parser) captureType(term terminators) string {
	start := p.i
	depth, angle := 0, 0
	for !p.atEOF() {
		tok := p.peek()
		if depth == 0 && angle == 0 && p.i > start {
			switch {
			case tok.isPunct(";"), term.comma && tok.isPunct(","), term.equals && tok.isPunct("="):
				return p.text(start, p.i)
			case tok.newline && p.endsAtLineBreak(tok):
				return p.text(start, p.i)
			}
		}
		switch {
		case tok.isPunct("("), tok.isPunct("["), tok.isPunct("{"):
			depth++
		case tok.isPunct(")"), tok.isPunct("]"), tok.isPunct("}"):
			if depth == 0 {
				return p.text(start, p.i)
			}
			depth--
		case tok.isPunct("<"):
			angle++
		case tok.isPunct(">"):
			if angle > 0 {
				angle--
			}
		}
		p.i++
	}
	return p.text(start, p.i)
}

func (p *parser) endsAtLineBreak(tok token) bool {
	prev := p.tokens[p.i-1]
	if prev.kind == tokPunct && continuationPunct[prev.value] {
		return false
	}
	if prev.kind == tokIdent && continuationIdents[prev.value] {
		return false
	}
	switch {
	case tok.kind == tokPunct:
		return !(tok.isPunct("|") || tok.isPunct("&") || tok.isPunct("=>") ||
			tok.isPunct(".") || tok.isPunct("?") || tok.isPunct(":") || tok.isPunct(","))
	case tok.isIdent("extends"):
		return false
	}
	return true
}

func (p *parser) parseMembers() []Member {
	p.expectPunct("{")
	var members []Member
	for !p.atEOF() && !p.peek().isPunct("}") {
		if p.acceptPunct(";") || p.acceptPunct(",") {
			continue
		}
		start := p.i
		member, ok := p.parseMember()
		if ok {
			members = append(members, member)
		}
		if p.i == start {
			p.errorf(p.peek(), "unexpected %s in member list", describe(p.peek()))
			p.next()
		}
	}
	p.expectPunct("}")
	return members
}

var memberModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "static": true,
	"readonly": true, "abstract": true, "declare": true, "override": true,
	"accessor": true, "async": true,
}

// isMemberNameEnd reports whether tok ends a member name, meaning that the
// preceding identifier is the name itself and not a modifier.
func isMemberNameEnd(tok token) bool {
	if tok.kind != tokPunct {
		return false
	}
	switch tok.value {
	case "(", "<", ":", "?", "!", ";", ",", "=", "}":
		return true
	}
	return false
}

func (p *parser) parseMember() (Member, bool) {
	first := p.peek()
	member := Member{Pos: first.pos, JSDoc: first.jsDoc}
	start := p.i
	for p.peek().kind == tokIdent && memberModifiers[p.peek().value] && !isMemberNameEnd(p.peekN(1)) {
		member.Modifiers = append(member.Modifiers, p.next().value)
	}
	kind := MemberProperty
	if (p.peek().isIdent("get") || p.peek().isIdent("set")) && !isMemberNameEnd(p.peekN(1)) {
		if p.next().value == "get" {
			kind = MemberGetter
		} else {
			kind = MemberSetter
		}
	}
	tok := p.peek()
	switch {
	case tok.isPunct("(") || tok.isPunct("<"):
		kind = MemberCallSignature
	case tok.isIdent("new") && (p.peekN(1).isPunct("(") || p.peekN(1).isPunct("<")):
		p.next()
		kind = MemberConstructSignature
	case tok.isPunct("[") && p.peekN(1).kind == tokIdent && p.peekN(2).isPunct(":"):
		p.skipBalanced()
		member.Name = p.text(start, p.i)
		kind = MemberIndexSignature
	case tok.isPunct("["):
		nameStart := p.i
		p.skipBalanced()
		member.Name = p.text(nameStart, p.i)
	case tok.kind == tokIdent || tok.kind == tokString || tok.kind == tokNumber:
		p.next()
		member.Name = unquote(tok)
		if tok.isIdent("constructor") && p.peek().isPunct("(") {
			kind = MemberConstructor
		}
	default:
		p.errorf(tok, "expected member name, found %s", describe(tok))
		p.recover()
		return Member{}, false
	}
	if p.acceptPunct("?") {
		member.Optional = true
	} else {
		p.acceptPunct("!")
	}
	if p.peek().isPunct("(") || p.peek().isPunct("<") {
		if kind == MemberProperty {
			kind = MemberMethod
		}
		p.parseTypeParams()
		if p.peek().isPunct("(") {
			p.skipBalanced()
		}
	}
	if p.acceptPunct(":") {
		p.captureType(terminators{comma: true, equals: true})
	}
	if p.acceptPunct("=") {
		p.captureType(terminators{comma: true})
	}
	end := p.i
	if p.peek().isPunct("{") && kind != MemberProperty {
		p.skipBalanced()
	}
	member.Kind = kind
	member.Text = p.text(start, end)
	return member, true
}

// text returns the source text of tokens [from, to) with whitespace runs
// outside of literals collapsed to a single space.
func (p *parser) text(from, to int) string {
	if from >= to {
		return ""
	}
	var sb strings.Builder
	for i := from; i < to; i++ {
		tok := p.tokens[i]
		if i > from && p.tokens[i-1].end < tok.start {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.value)
	}
	return sb.String()
}

func unquote(tok token) string {
	if tok.kind != tokString || len(tok.value) < 2 {
		return tok.value
	}
	return tok.value[1 : len(tok.value)-1]
}

func describe(tok token) string {
	switch tok.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return "string " + tok.value
	default:
		return "\"" + tok.value + "\""
	}
}
