// Package dts parses TypeScript ambient declaration text (the contents of a
// .d.ts file) into top-level declarations and type-level module references.
//
// Only the declaration subset of the language is understood. Types, signatures
// and initializers are kept as whitespace-normalized source text rather than
// being parsed into a type AST.
package dts

// DeclKind is the syntactic kind of a declaration.
type DeclKind int

const (
	DeclFunction DeclKind = iota + 1
	DeclClass
	DeclInterface
	DeclTypeAlias
	DeclVariable
	DeclNamespace
	DeclEnum
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclTypeAlias:
		return "typeAlias"
	case DeclVariable:
		return "variable"
	case DeclNamespace:
		return "namespace"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Decl is a single declaration.
type Decl struct {
	Kind DeclKind
	Name string
	Pos  Position
	// JSDoc is the raw /** */ comment preceding the declaration, if any.
	JSDoc string

	// Exported is set for declarations carrying the export modifier.
	Exported bool
	// Default is set for `export default` declarations.
	Default bool
	// Ambient is set for declarations with the declare modifier or nested
	// inside an ambient context (declare namespace, declare global).
	Ambient bool
	// Global is set for declarations contributing to the global scope:
	// top-level declarations of a script and members of `declare global`.
	Global bool

	// Modifiers holds keywords such as abstract, async, const (for enums)
	// or the variable keyword (const, let, var).
	Modifiers []string

	TypeParams string
	// Params is the parameter list of a function, including parentheses.
	Params string
	// Type is the return type of a function, the annotated type of a variable
	// or the right hand side of a type alias.
	Type string
	// Initializer is the literal value of a variable, if present.
	Initializer string
	// Heritage is the extends/implements clause of classes and interfaces.
	Heritage string

	Members  []Member
	Enum     []EnumMember
	Children []*Decl
}

// HasModifier reports whether the declaration carries the given modifier.
func (d *Decl) HasModifier(modifier string) bool {
	for _, m := range d.Modifiers {
		if m == modifier {
			return true
		}
	}
	return false
}

type MemberKind int

const (
	MemberProperty MemberKind = iota + 1
	MemberMethod
	MemberConstructor
	MemberCallSignature
	MemberConstructSignature
	MemberIndexSignature
	MemberGetter
	MemberSetter
)

func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberMethod:
		return "method"
	case MemberConstructor:
		return "constructor"
	case MemberCallSignature:
		return "callSignature"
	case MemberConstructSignature:
		return "constructSignature"
	case MemberIndexSignature:
		return "indexSignature"
	case MemberGetter:
		return "getter"
	case MemberSetter:
		return "setter"
	default:
		return "unknown"
	}
}

// Member is a class, interface or type literal member.
type Member struct {
	Kind      MemberKind
	Name      string
	Pos       Position
	JSDoc     string
	Modifiers []string
	Optional  bool
	// Text is the normalized source text of the member without its comment.
	Text string
}

type EnumMember struct {
	Name        string
	Pos         Position
	JSDoc       string
	Initializer string
}

// Import is an import declaration. Only its bindings matter: values and
// types are treated alike since only the type surface is documented.
type Import struct {
	Specifier string
	Pos       Position
	TypeOnly  bool
	Default   string
	Namespace string
	Names     []Binding
}

// Binding maps an imported or exported name to a local one.
type Binding struct {
	// Name is the name in the module the binding refers to.
	Name string
	// Alias is the name the binding is visible under.
	Alias string
}

// Export is an export list (`export { a as b }`), a re-export list
// (`export { a } from "x"`) or a star re-export (`export * [as ns] from "x"`).
type Export struct {
	// Specifier is empty for local export lists.
	Specifier string
	Pos       Position
	Names     []Binding
	Star      bool
	// StarAlias is the namespace name of `export * as ns from "x"`.
	StarAlias string
}

// Reference is a `/// <reference path="..." />` directive.
type Reference struct {
	Path string
	Pos  Position
}

type Diagnostic struct {
	Pos     Position
	Message string
}

// File is the result of parsing one module's text.
type File struct {
	Decls      []*Decl
	Imports    []Import
	Exports    []Export
	References []Reference
	// ModuleDoc is the leading JSDoc comment carrying an @module tag.
	ModuleDoc    string
	ModuleDocPos Position
	// IsModule is set if the file has any top-level import or export.
	IsModule    bool
	Diagnostics []Diagnostic
}

// Dependencies returns the distinct module specifiers referenced by the
// file: reference directives first, then imports, then re-exports.
func (f *File) Dependencies() []string {
	seen := make(map[string]struct{})
	var deps []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		deps = append(deps, s)
	}
	for _, r := range f.References {
		add(r.Path)
	}
	for _, imp := range f.Imports {
		add(imp.Specifier)
	}
	for _, exp := range f.Exports {
		add(exp.Specifier)
	}
	return deps
}
