package dts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Script(t *testing.T) {
	file := Parse(`
/** Doc for f. */
declare function f<T>(a: T, b?: string): Promise<T>;
declare const a: number, b = 3;
`)
	require.Empty(t, file.Diagnostics)
	assert.False(t, file.IsModule)
	require.Len(t, file.Decls, 3)

	f := file.Decls[0]
	assert.Equal(t, DeclFunction, f.Kind)
	assert.Equal(t, "f", f.Name)
	assert.Equal(t, Position{Line: 3, Col: 18}, f.Pos)
	assert.Equal(t, "/** Doc for f. */", f.JSDoc)
	assert.Equal(t, "<T>", f.TypeParams)
	assert.Equal(t, "(a: T, b?: string)", f.Params)
	assert.Equal(t, "Promise<T>", f.Type)
	assert.True(t, f.Ambient)
	assert.True(t, f.Global)
	assert.False(t, f.Exported)

	a, b := file.Decls[1], file.Decls[2]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "number", a.Type)
	assert.Equal(t, []string{"const"}, a.Modifiers)
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, "3", b.Initializer)
	assert.True(t, b.HasModifier("const"))
}

func TestParse_ImportsAndExports(t *testing.T) {
	file := Parse(`
import type { A, B as C } from "./a.d.ts";
import * as ns from "./ns.d.ts";
import D from './d.d.ts';
export { x as y } from "./x.d.ts";
export * from "./star.d.ts";
export * as all from "./all.d.ts";
export { A as default };
export default class {}
`)
	require.Empty(t, file.Diagnostics)
	assert.True(t, file.IsModule)

	require.Len(t, file.Imports, 3)
	assert.Equal(t, Import{
		Specifier: "./a.d.ts",
		Pos:       Position{Line: 2, Col: 1},
		TypeOnly:  true,
		Names:     []Binding{{Name: "A", Alias: "A"}, {Name: "B", Alias: "C"}},
	}, file.Imports[0])
	assert.Equal(t, "ns", file.Imports[1].Namespace)
	assert.Equal(t, "D", file.Imports[2].Default)
	assert.Equal(t, "./d.d.ts", file.Imports[2].Specifier)

	require.Len(t, file.Exports, 4)
	assert.Equal(t, []Binding{{Name: "x", Alias: "y"}}, file.Exports[0].Names)
	assert.Equal(t, "./x.d.ts", file.Exports[0].Specifier)
	assert.True(t, file.Exports[1].Star)
	assert.Empty(t, file.Exports[1].StarAlias)
	assert.Equal(t, "all", file.Exports[2].StarAlias)
	assert.Empty(t, file.Exports[3].Specifier)
	assert.Equal(t, []Binding{{Name: "A", Alias: "default"}}, file.Exports[3].Names)

	require.Len(t, file.Decls, 1)
	assert.Equal(t, "default", file.Decls[0].Name)
	assert.True(t, file.Decls[0].Default)
	assert.True(t, file.Decls[0].Exported)
	assert.False(t, file.Decls[0].Global)

	assert.Equal(t, []string{
		"./a.d.ts",
		"./ns.d.ts",
		"./d.d.ts",
		"./x.d.ts",
		"./star.d.ts",
		"./all.d.ts",
	}, file.Dependencies())
}

func TestParse_References(t *testing.T) {
	file := Parse(`/// <reference path="./lib.d.ts" />
/// <reference lib="dom" />
export declare function f(): import("./t.d.ts").T;
`)
	require.Empty(t, file.Diagnostics)
	require.Len(t, file.References, 1)
	assert.Equal(t, "./lib.d.ts", file.References[0].Path)
	require.Len(t, file.Imports, 1)
	assert.True(t, file.Imports[0].TypeOnly)
	assert.Equal(t, []string{"./lib.d.ts", "./t.d.ts"}, file.Dependencies())
	assert.Equal(t, `import("./t.d.ts").T`, file.Decls[0].Type)
}

func TestParse_Namespaces(t *testing.T) {
	t.Run("dotted names nest", func(t *testing.T) {
		file := Parse(`declare namespace A.B { function f(): void; }`)
		require.Empty(t, file.Diagnostics)
		require.Len(t, file.Decls, 1)
		a := file.Decls[0]
		assert.Equal(t, DeclNamespace, a.Kind)
		assert.True(t, a.Ambient)
		require.Len(t, a.Children, 1)
		b := a.Children[0]
		assert.Equal(t, "B", b.Name)
		assert.True(t, b.Exported)
		require.Len(t, b.Children, 1)
		assert.Equal(t, "f", b.Children[0].Name)
		assert.True(t, b.Children[0].Ambient)
		assert.False(t, b.Children[0].Exported)
	})
	t.Run("global block is flattened", func(t *testing.T) {
		file := Parse(`
export {};
declare global {
  interface Window { x: number }
}
`)
		require.Empty(t, file.Diagnostics)
		require.Len(t, file.Decls, 1)
		assert.Equal(t, "Window", file.Decls[0].Name)
		assert.True(t, file.Decls[0].Global)
		assert.True(t, file.Decls[0].Ambient)
	})
	t.Run("external module declarations are skipped", func(t *testing.T) {
		file := Parse(`
declare module "foo" { export const a: number; }
declare const b: string;
`)
		require.Empty(t, file.Diagnostics)
		require.Len(t, file.Decls, 1)
		assert.Equal(t, "b", file.Decls[0].Name)
	})
}

func TestParse_Members(t *testing.T) {
	file := Parse(`
export interface I {
  /** The name. */
  readonly name: string;
  age?: number;
  (x: number): string;
  new (x: number): I;
  [key: string]: unknown;
  method<T>(a: T): void;
  get size(): number;
}
`)
	require.Empty(t, file.Diagnostics)
	require.Len(t, file.Decls, 1)
	members := file.Decls[0].Members

	expected := []struct {
		kind MemberKind
		name string
		text string
	}{
		{MemberProperty, "name", "readonly name: string"},
		{MemberProperty, "age", "age?: number"},
		{MemberCallSignature, "", "(x: number): string"},
		{MemberConstructSignature, "", "new (x: number): I"},
		{MemberIndexSignature, "[key: string]", "[key: string]: unknown"},
		{MemberMethod, "method", "method<T>(a: T): void"},
		{MemberGetter, "size", "get size(): number"},
	}
	require.Len(t, members, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.kind, members[i].Kind, e.text)
		assert.Equal(t, e.name, members[i].Name, e.text)
		assert.Equal(t, e.text, members[i].Text)
	}
	assert.Equal(t, "/** The name. */", members[0].JSDoc)
	assert.Equal(t, []string{"readonly"}, members[0].Modifiers)
	assert.True(t, members[1].Optional)
}

func TestParse_Class(t *testing.T) {
	file := Parse(`
export declare abstract class Base<T> extends Parent<T> implements I {
  private secret: string;
  constructor(value: T);
  static create(): Base<number>;
}
`)
	require.Empty(t, file.Diagnostics)
	require.Len(t, file.Decls, 1)
	class := file.Decls[0]
	assert.Equal(t, DeclClass, class.Kind)
	assert.True(t, class.HasModifier("abstract"))
	assert.True(t, class.Ambient)
	assert.Equal(t, "<T>", class.TypeParams)
	assert.Equal(t, "extends Parent<T> implements I", class.Heritage)

	require.Len(t, class.Members, 3)
	assert.Equal(t, []string{"private"}, class.Members[0].Modifiers)
	assert.Equal(t, MemberConstructor, class.Members[1].Kind)
	assert.Equal(t, "constructor(value: T)", class.Members[1].Text)
	assert.Equal(t, MemberMethod, class.Members[2].Kind)
	assert.Equal(t, "static create(): Base<number>", class.Members[2].Text)
}

func TestParse_Enum(t *testing.T) {
	file := Parse(`export const enum E { A = 1, /** b */ B, "C-D" = "x" }`)
	require.Empty(t, file.Diagnostics)
	require.Len(t, file.Decls, 1)
	e := file.Decls[0]
	assert.Equal(t, DeclEnum, e.Kind)
	assert.Equal(t, []string{"const"}, e.Modifiers)
	require.Len(t, e.Enum, 3)
	assert.Equal(t, "1", e.Enum[0].Initializer)
	assert.Equal(t, "/** b */", e.Enum[1].JSDoc)
	assert.Equal(t, "C-D", e.Enum[2].Name)
	assert.Equal(t, `"x"`, e.Enum[2].Initializer)
}

func TestParse_ModuleDoc(t *testing.T) {
	t.Run("separate from the first declaration", func(t *testing.T) {
		file := Parse(`/**
 * Runtime APIs.
 * @module
 */

/** Foo doc. */
export function foo(): void;
`)
		assert.Contains(t, file.ModuleDoc, "Runtime APIs.")
		assert.Equal(t, Position{Line: 1, Col: 1}, file.ModuleDocPos)
		require.Len(t, file.Decls, 1)
		assert.Equal(t, "/** Foo doc. */", file.Decls[0].JSDoc)
	})
	t.Run("detached from the first declaration", func(t *testing.T) {
		file := Parse("/** @module */\nexport const a: number;\n")
		assert.Equal(t, "/** @module */", file.ModuleDoc)
		require.Len(t, file.Decls, 1)
		assert.Empty(t, file.Decls[0].JSDoc)
	})
	t.Run("plain leading comment stays on the declaration", func(t *testing.T) {
		file := Parse("/** A. */\nexport const a: number;\n")
		assert.Empty(t, file.ModuleDoc)
		assert.Equal(t, "/** A. */", file.Decls[0].JSDoc)
	})
}

func TestParse_Multiline(t *testing.T) {
	file := Parse(`
declare type Union =
  | "a"
  | "b";
declare const x: {
  a: string;
}
declare function g(): void
`)
	require.Empty(t, file.Diagnostics)
	require.Len(t, file.Decls, 3)
	assert.Equal(t, `| "a" | "b"`, file.Decls[0].Type)
	assert.Equal(t, "{ a: string; }", file.Decls[1].Type)
	assert.Equal(t, "g", file.Decls[2].Name)
}

func TestParse_Diagnostics(t *testing.T) {
	t.Run("recovers at the next statement", func(t *testing.T) {
		file := Parse(`export function ok(): void;
export 42;
export const after: number;
`)
		require.Len(t, file.Diagnostics, 1)
		assert.Equal(t, Position{Line: 2, Col: 8}, file.Diagnostics[0].Pos)
		assert.Equal(t, `unexpected "42"`, file.Diagnostics[0].Message)
		require.Len(t, file.Decls, 2)
		assert.Equal(t, "after", file.Decls[1].Name)
	})
	t.Run("unterminated comment", func(t *testing.T) {
		file := Parse("declare const a: number;\n/* never closed")
		require.Len(t, file.Diagnostics, 1)
		assert.Equal(t, "unterminated comment", file.Diagnostics[0].Message)
		assert.Len(t, file.Decls, 1)
	})
	t.Run("stray closing brace", func(t *testing.T) {
		file := Parse("}\ndeclare const a: number;")
		require.NotEmpty(t, file.Diagnostics)
		assert.Len(t, file.Decls, 1)
	})
}
