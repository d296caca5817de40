// Package testmodels holds declaration fixtures shared by tests.
package testmodels

import (
	_ "embed"
)

// DenoTypes is a small runtime declaration file: a module doc, a namespace,
// a class, an enum, variables, overloads and an interface merged with a
// function of the same name.
//
//go:embed testdata/deno_types.d.ts
var DenoTypes string

// MultiModule is a txtar archive of modules re-exporting each other.
// Its entrypoint is mod.d.ts.
//
//go:embed testdata/multi.txtar
var MultiModule []byte

// Greet is the smallest useful input: one documented function linking to
// the API root.
const Greet = "/** Says hello. See {@link /api}. */\nexport function greet(name: string): string;\n"

// Box declares an interface and a function sharing one name.
const Box = "export interface Box { value: number }\nexport function Box(): Box;\n"
