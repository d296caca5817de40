package extract

import (
	"github.com/nieomylnieja/dtsdoc/internal/dts"
	"github.com/nieomylnieja/dtsdoc/internal/graph"
	"github.com/nieomylnieja/dtsdoc/internal/jsdoc"
)

// node converts decl into its documentation node. It returns nil for
// declarations hidden by their JSDoc tags.
func (e *extractor) node(specifier graph.Specifier, decl *dts.Decl) *DocNode {
	if node, ok := e.nodes[decl]; ok {
		return node
	}
	loc := Location{Specifier: specifier, Line: decl.Pos.Line, Col: decl.Pos.Col}
	comment := e.comment(decl.JSDoc, loc, decl.Name)
	if comment.Ignored() || (comment.Private() && !e.options.includePrivate) {
		e.nodes[decl] = nil
		return nil
	}
	node := &DocNode{
		Kind:            kindOf(decl.Kind),
		Name:            decl.Name,
		Location:        loc,
		DeclarationKind: declarationKind(decl),
		JSDoc:           comment,
	}
	e.nodes[decl] = node
	node.Detail = e.detail(specifier, decl)
	return node
}

func kindOf(k dts.DeclKind) Kind {
	switch k {
	case dts.DeclFunction:
		return KindFunction
	case dts.DeclClass:
		return KindClass
	case dts.DeclInterface:
		return KindInterface
	case dts.DeclTypeAlias:
		return KindTypeAlias
	case dts.DeclVariable:
		return KindVariable
	case dts.DeclNamespace:
		return KindNamespace
	case dts.DeclEnum:
		return KindEnum
	default:
		return Kind(k.String())
	}
}

func declarationKind(decl *dts.Decl) DeclarationKind {
	switch {
	case decl.Exported:
		return DeclarationExport
	case decl.Ambient || decl.Global:
		return DeclarationDeclare
	default:
		return DeclarationPrivate
	}
}

func (e *extractor) detail(specifier graph.Specifier, decl *dts.Decl) Detail {
	switch decl.Kind {
	case dts.DeclFunction:
		return FunctionDef{
			TypeParams: decl.TypeParams,
			Params:     decl.Params,
			ReturnType: decl.Type,
			Async:      decl.HasModifier("async"),
		}
	case dts.DeclClass:
		return ClassDef{
			TypeParams: decl.TypeParams,
			Heritage:   decl.Heritage,
			Abstract:   decl.HasModifier("abstract"),
			Members:    e.members(specifier, decl),
		}
	case dts.DeclInterface:
		return InterfaceDef{
			TypeParams: decl.TypeParams,
			Heritage:   decl.Heritage,
			Members:    e.members(specifier, decl),
		}
	case dts.DeclTypeAlias:
		return TypeAliasDef{TypeParams: decl.TypeParams, Type: decl.Type}
	case dts.DeclVariable:
		return VariableDef{
			Keyword:     variableKeyword(decl),
			Type:        decl.Type,
			Initializer: decl.Initializer,
		}
	case dts.DeclEnum:
		def := EnumDef{Const: decl.HasModifier("const")}
		for _, m := range decl.Enum {
			def.Members = append(def.Members, EnumMember{
				Name:        m.Name,
				Initializer: m.Initializer,
				JSDoc:       e.comment(m.JSDoc, Location{Specifier: specifier, Line: m.Pos.Line, Col: m.Pos.Col}, decl.Name+"."+m.Name),
			})
		}
		return def
	case dts.DeclNamespace:
		return e.namespace(specifier, decl)
	default:
		return nil
	}
}

func variableKeyword(decl *dts.Decl) string {
	for _, kw := range []string{"const", "let", "var"} {
		if decl.HasModifier(kw) {
			return kw
		}
	}
	return "var"
}

func (e *extractor) members(specifier graph.Specifier, decl *dts.Decl) []Member {
	var members []Member
	for _, m := range decl.Members {
		loc := Location{Specifier: specifier, Line: m.Pos.Line, Col: m.Pos.Col}
		comment := e.comment(m.JSDoc, loc, decl.Name+"."+m.Name)
		if comment.Ignored() {
			continue
		}
		if !e.options.includePrivate && (comment.Private() || hasPrivateModifier(m.Modifiers)) {
			continue
		}
		members = append(members, Member{
			Kind:      m.Kind.String(),
			Name:      m.Name,
			Text:      m.Text,
			Optional:  m.Optional,
			Modifiers: m.Modifiers,
			JSDoc:     comment,
		})
	}
	return members
}

func hasPrivateModifier(modifiers []string) bool {
	for _, m := range modifiers {
		if m == "private" {
			return true
		}
	}
	return false
}

// namespace converts the children of a namespace declaration. Members of
// ambient namespaces are public whether or not they are exported.
func (e *extractor) namespace(specifier graph.Specifier, decl *dts.Decl) NamespaceDef {
	var def NamespaceDef
	origin := e.shortPath(specifier)
	for _, child := range decl.Children {
		if !child.Exported && !child.Ambient && !e.options.includePrivate {
			continue
		}
		node := e.node(specifier, child)
		if node == nil {
			continue
		}
		def.Elements = append(def.Elements, NodeWithOrigin{Name: child.Name, Origin: origin, Node: node})
	}
	return def
}

func (e *extractor) comment(raw string, loc Location, symbol string) jsdoc.Comment {
	if raw == "" {
		return jsdoc.Comment{}
	}
	comment, problems := jsdoc.Parse(raw)
	for _, p := range problems {
		e.options.onProblem(Problem{
			Location: Location{Specifier: loc.Specifier, Line: loc.Line + p.Line - 1, Col: loc.Col},
			Symbol:   symbol,
			Message:  p.Message,
		})
	}
	return jsdoc.Process(comment, e.options.processors...)
}
