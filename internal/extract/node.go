package extract

import (
	"fmt"
	"strings"

	"github.com/nieomylnieja/dtsdoc/internal/graph"
	"github.com/nieomylnieja/dtsdoc/internal/jsdoc"
)

// Kind is the kind of a documented declaration.
type Kind string

const (
	KindModuleDoc Kind = "moduleDoc"
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindEnum      Kind = "enum"
	KindVariable  Kind = "variable"
	KindFunction  Kind = "function"
	KindInterface Kind = "interface"
	KindTypeAlias Kind = "typeAlias"
)

// Kinds lists every kind in the order index sections are rendered in.
var Kinds = []Kind{
	KindModuleDoc,
	KindNamespace,
	KindClass,
	KindEnum,
	KindVariable,
	KindFunction,
	KindInterface,
	KindTypeAlias,
}

// Title is the human-readable section title of the kind.
func (k Kind) Title() string {
	switch k {
	case KindModuleDoc:
		return "Module"
	case KindNamespace:
		return "Namespaces"
	case KindClass:
		return "Classes"
	case KindEnum:
		return "Enums"
	case KindVariable:
		return "Variables"
	case KindFunction:
		return "Functions"
	case KindInterface:
		return "Interfaces"
	case KindTypeAlias:
		return "Type Aliases"
	default:
		return string(k)
	}
}

// DeclarationKind tells how a declaration became visible.
type DeclarationKind string

const (
	DeclarationExport  DeclarationKind = "export"
	DeclarationDeclare DeclarationKind = "declare"
	DeclarationPrivate DeclarationKind = "private"
)

// Location identifies a declaration in its module. It is never rendered as a link.
type Location struct {
	Specifier graph.Specifier `json:"specifier"`
	Line      int             `json:"line"`
	Col       int             `json:"col"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Specifier, l.Line, l.Col)
}

// DocNode is a documented declaration. Nodes are shared read-only between
// every export name they are visible under.
type DocNode struct {
	Kind            Kind            `json:"kind"`
	Name            string          `json:"name"`
	Location        Location        `json:"location"`
	DeclarationKind DeclarationKind `json:"declarationKind"`
	JSDoc           jsdoc.Comment   `json:"jsDoc"`
	Detail          Detail          `json:"detail,omitempty"`
}

// Detail is the kind specific part of a [DocNode].
type Detail interface {
	Kind() Kind
}

type FunctionDef struct {
	TypeParams string `json:"typeParams,omitempty"`
	Params     string `json:"params"`
	ReturnType string `json:"returnType,omitempty"`
	Async      bool   `json:"async,omitempty"`
}

type ClassDef struct {
	TypeParams string   `json:"typeParams,omitempty"`
	Heritage   string   `json:"heritage,omitempty"`
	Abstract   bool     `json:"abstract,omitempty"`
	Members    []Member `json:"members,omitempty"`
}

type InterfaceDef struct {
	TypeParams string   `json:"typeParams,omitempty"`
	Heritage   string   `json:"heritage,omitempty"`
	Members    []Member `json:"members,omitempty"`
}

type TypeAliasDef struct {
	TypeParams string `json:"typeParams,omitempty"`
	Type       string `json:"type"`
}

type VariableDef struct {
	// Keyword is const, let or var.
	Keyword     string `json:"keyword"`
	Type        string `json:"type,omitempty"`
	Initializer string `json:"initializer,omitempty"`
}

type NamespaceDef struct {
	Elements []NodeWithOrigin `json:"elements,omitempty"`
}

type EnumDef struct {
	Const   bool         `json:"const,omitempty"`
	Members []EnumMember `json:"members,omitempty"`
}

type ModuleDocDef struct{}

func (FunctionDef) Kind() Kind  { return KindFunction }
func (ClassDef) Kind() Kind     { return KindClass }
func (InterfaceDef) Kind() Kind { return KindInterface }
func (TypeAliasDef) Kind() Kind { return KindTypeAlias }
func (VariableDef) Kind() Kind  { return KindVariable }
func (NamespaceDef) Kind() Kind { return KindNamespace }
func (EnumDef) Kind() Kind      { return KindEnum }
func (ModuleDocDef) Kind() Kind { return KindModuleDoc }

// Member is a class or interface member.
type Member struct {
	Kind      string        `json:"kind"`
	Name      string        `json:"name"`
	Text      string        `json:"text"`
	Optional  bool          `json:"optional,omitempty"`
	Modifiers []string      `json:"modifiers,omitempty"`
	JSDoc     jsdoc.Comment `json:"jsDoc"`
}

type EnumMember struct {
	Name        string        `json:"name"`
	Initializer string        `json:"initializer,omitempty"`
	JSDoc       jsdoc.Comment `json:"jsDoc"`
}

// Signature renders the declaration header of the node as it is visible
// under name, for example "function greet(name: string): string".
func (n *DocNode) Signature(name string) string {
	switch d := n.Detail.(type) {
	case FunctionDef:
		sig := "function " + name + d.TypeParams + d.Params
		if d.ReturnType != "" {
			sig += ": " + d.ReturnType
		}
		if d.Async {
			sig = "async " + sig
		}
		return sig
	case ClassDef:
		sig := join("class", name+d.TypeParams, d.Heritage)
		if d.Abstract {
			sig = "abstract " + sig
		}
		return sig
	case InterfaceDef:
		return join("interface", name+d.TypeParams, d.Heritage)
	case TypeAliasDef:
		return "type " + name + d.TypeParams + " = " + d.Type
	case VariableDef:
		sig := d.Keyword + " " + name
		if d.Type != "" {
			sig += ": " + d.Type
		}
		if d.Initializer != "" {
			sig += " = " + d.Initializer
		}
		return sig
	case NamespaceDef:
		return "namespace " + name
	case EnumDef:
		if d.Const {
			return "const enum " + name
		}
		return "enum " + name
	default:
		return ""
	}
}

func join(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// NodeWithOrigin is a node as visible under one export name, attributed to
// the module which declares it.
type NodeWithOrigin struct {
	Name   string    `json:"name"`
	Origin ShortPath `json:"origin"`
	Node   *DocNode  `json:"node"`
}

func (n NodeWithOrigin) Kind() Kind { return n.Node.Kind }

// Signature is the node's signature under its export name.
func (n NodeWithOrigin) Signature() string { return n.Node.Signature(n.Name) }

// Children returns the namespace elements of the node, if it is a namespace.
func (n NodeWithOrigin) Children() []NodeWithOrigin {
	if ns, ok := n.Node.Detail.(NamespaceDef); ok {
		return ns.Elements
	}
	return nil
}
