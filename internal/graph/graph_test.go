package graph

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecifier(t *testing.T) {
	s, err := ParseSpecifier("asset://deno_types")
	require.NoError(t, err)
	assert.Equal(t, Specifier("asset://deno_types"), s)

	_, err = ParseSpecifier("deno_types")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no scheme")
}

func TestSpecifier_Resolve(t *testing.T) {
	tests := map[string]struct {
		base     Specifier
		ref      string
		expected Specifier
	}{
		"opaque root":       {"asset://deno_types", "./web.d.ts", "asset://deno_types/web.d.ts"},
		"parent directory":  {"file:///lib/a/mod.d.ts", "../b.d.ts", "file:///lib/b.d.ts"},
		"host absolute":     {"https://deno.land/x/mod.ts", "/std/path.ts", "https://deno.land/std/path.ts"},
		"absolute url":      {"asset://deno_types", "https://esm.sh/x.d.ts", "https://esm.sh/x.d.ts"},
		"sibling in folder": {"asset://pkg/a/mod.d.ts", "./b.d.ts", "asset://pkg/a/b.d.ts"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			resolved, err := test.base.Resolve(test.ref)
			require.NoError(t, err)
			assert.Equal(t, test.expected, resolved)
		})
	}
	t.Run("bare name", func(t *testing.T) {
		_, err := Specifier("asset://deno_types").Resolve("lodash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not prefixed with / or ./ or ../")
	})
}

// mapLoader serves a fixed set of modules and counts requests.
type mapLoader struct {
	modules map[Specifier]string
	loads   atomic.Int32
}

func (l *mapLoader) Load(_ context.Context, specifier Specifier) LoadResult {
	l.loads.Add(1)
	content, ok := l.modules[specifier]
	if !ok {
		return Rejected{Reason: "unexpected specifier " + specifier.String()}
	}
	return Found{Specifier: specifier, Content: content}
}

var diamond = map[Specifier]string{
	"asset://pkg/mod.d.ts": `
import { A } from "./a.d.ts";
export * from "./b.d.ts";
export { A };
`,
	"asset://pkg/a.d.ts": `export * from "./shared.d.ts"; export interface A {}`,
	"asset://pkg/b.d.ts": `/// <reference path="./shared.d.ts" />
export interface B {}`,
	"asset://pkg/shared.d.ts": `export type Shared = string;`,
}

func TestBuild(t *testing.T) {
	for _, parallel := range []int{1, 4} {
		loader := &mapLoader{modules: diamond}
		g := Build(context.Background(), []Specifier{"asset://pkg/mod.d.ts"}, loader, WithMaxParallel(parallel))

		require.NoError(t, g.Valid())
		assert.Empty(t, g.Diagnostics())
		assert.Equal(t, int32(4), loader.loads.Load(), "every module is loaded exactly once")
		assert.Equal(t, []Specifier{"asset://pkg/mod.d.ts"}, g.Roots())

		var specifiers []Specifier
		for _, m := range g.Modules() {
			specifiers = append(specifiers, m.Specifier)
		}
		assert.Equal(t, []Specifier{
			"asset://pkg/a.d.ts",
			"asset://pkg/b.d.ts",
			"asset://pkg/mod.d.ts",
			"asset://pkg/shared.d.ts",
		}, specifiers)

		mod, ok := g.Module("asset://pkg/mod.d.ts")
		require.True(t, ok)
		dep, ok := mod.Dependency("./b.d.ts")
		require.True(t, ok)
		assert.Equal(t, Specifier("asset://pkg/b.d.ts"), dep)
	}
}

func TestGraph_Reachable(t *testing.T) {
	g := Build(context.Background(), []Specifier{"asset://pkg/mod.d.ts"}, &mapLoader{modules: diamond})
	require.NoError(t, g.Valid())

	var order []Specifier
	for _, m := range g.Reachable("asset://pkg/mod.d.ts") {
		order = append(order, m.Specifier)
	}
	assert.Equal(t, []Specifier{
		"asset://pkg/mod.d.ts",
		"asset://pkg/a.d.ts",
		"asset://pkg/b.d.ts",
		"asset://pkg/shared.d.ts",
	}, order)
	assert.Empty(t, g.Reachable("asset://pkg/missing.d.ts"))
}

func TestBuild_Invalid(t *testing.T) {
	t.Run("rejected module", func(t *testing.T) {
		loader := &mapLoader{modules: map[Specifier]string{
			"asset://deno_types": "/// <reference path=\"./web.d.ts\" />\ndeclare const a: number;",
		}}
		g := Build(context.Background(), []Specifier{"asset://deno_types"}, loader)

		err := g.Valid()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "asset://deno_types/web.d.ts: failed to load module: unexpected specifier asset://deno_types/web.d.ts")
		assert.Contains(t, err.Error(), "dependency asset://deno_types/web.d.ts was not resolved")
		assert.True(t, strings.HasPrefix(err.Error(), "invalid module graph (2 problems): "))
	})
	t.Run("missing root", func(t *testing.T) {
		g := Build(context.Background(), []Specifier{"asset://deno_types"}, &mapLoader{})
		err := g.Valid()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root module asset://deno_types was not resolved")
	})
	t.Run("parse errors are sorted", func(t *testing.T) {
		loader := &mapLoader{modules: map[Specifier]string{
			"asset://pkg/mod.d.ts": `export * from "./b.d.ts"; export * from "./a.d.ts"; export 1;`,
			"asset://pkg/a.d.ts":   `export 2;`,
			"asset://pkg/b.d.ts":   `export 3;`,
		}}
		g := Build(context.Background(), []Specifier{"asset://pkg/mod.d.ts"}, loader)

		diagnostics := g.Diagnostics()
		require.Len(t, diagnostics, 3)
		assert.Equal(t, Specifier("asset://pkg/a.d.ts"), diagnostics[0].Specifier)
		assert.Equal(t, Specifier("asset://pkg/b.d.ts"), diagnostics[1].Specifier)
		assert.Equal(t, Specifier("asset://pkg/mod.d.ts"), diagnostics[2].Specifier)
		assert.Equal(t, `parse error at 1:8: unexpected "2"`, diagnostics[0].Message)
		require.Error(t, g.Valid())
	})
	t.Run("bare import", func(t *testing.T) {
		loader := &mapLoader{modules: map[Specifier]string{
			"asset://deno_types": `import { a } from "lodash"; export { a };`,
		}}
		g := Build(context.Background(), []Specifier{"asset://deno_types"}, loader)
		err := g.Valid()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `relative import path "lodash" not prefixed with / or ./ or ../`)
		assert.True(t, strings.HasPrefix(err.Error(), "invalid module graph: "))
	})
	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		g := Build(ctx, []Specifier{"asset://pkg/mod.d.ts"}, &mapLoader{modules: diamond})
		err := g.Valid()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "module graph build interrupted")
	})
}
