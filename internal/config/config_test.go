package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultCommand, c.Source.Command)
	assert.Empty(t, c.Source.File)
	assert.Equal(t, "asset://deno_types", c.Specifier)
	assert.Equal(t, "/api", c.SiteRoot)
	assert.Equal(t, "gen_out", c.Output)
	assert.Equal(t, DocDiagnosticsIgnore, c.DocDiagnostics)
	assert.Equal(t, LogFormatText, c.Log.Format)
	assert.Equal(t, "info", c.Log.Level)
	require.NoError(t, c.Validate())
}

func TestParse(t *testing.T) {
	t.Setenv("DTSDOC_TEST_OUT", "site/api")
	c, err := Parse(strings.NewReader(`
source:
  file: lib.deno.d.ts
siteRoot: /docs/runtime
output: ${DTSDOC_TEST_OUT}
includePrivate: true
docDiagnostics: warn
caseInsensitivePaths: true
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, Source{File: "lib.deno.d.ts"}, c.Source)
	assert.Equal(t, "/docs/runtime", c.SiteRoot)
	assert.Equal(t, "site/api", c.Output)
	assert.True(t, c.IncludePrivate)
	assert.True(t, c.CaseInsensitivePaths)
	assert.Equal(t, DocDiagnosticsWarn, c.DocDiagnostics)
	assert.Equal(t, Log{Level: "debug", Format: LogFormatJSON}, c.Log)
	assert.Equal(t, DefaultSpecifier, c.Specifier)
}

func TestParse_LiteralValues(t *testing.T) {
	t.Setenv("HOME", "/home/dtsdoc")
	c, err := Parse(strings.NewReader(`
source:
  command: [sh, -c, "deno types | awk '{print $1}'"]
output: $HOME/out
stripDocPrefixes:
  - "costs $5"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "deno types | awk '{print $1}'"}, c.Source.Command)
	assert.Equal(t, []string{"costs $5"}, c.StripDocPrefixes)
	assert.Equal(t, "/home/dtsdoc/out", c.Output)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]struct {
		yaml     string
		contains string
	}{
		"unknown field": {
			yaml:     "sitRoot: /api\n",
			contains: "field sitRoot not found",
		},
		"command and file": {
			yaml:     "source:\n  command: [deno, types]\n  file: x.d.ts\n",
			contains: "source",
		},
		"site root without leading slash": {
			yaml:     "siteRoot: api\n",
			contains: "siteRoot",
		},
		"site root with trailing slash": {
			yaml:     "siteRoot: /api/\n",
			contains: "siteRoot",
		},
		"specifier without scheme": {
			yaml:     "specifier: deno_types\n",
			contains: "specifier",
		},
		"unknown diagnostics policy": {
			yaml:     "docDiagnostics: fail\n",
			contains: "docDiagnostics",
		},
		"unknown log format": {
			yaml:     "log:\n  format: xml\n",
			contains: "format",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.contains)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), FileName))
		require.Error(t, err)
		assert.True(t, docerr.Is(err, docerr.CategoryConfig))
	})
	t.Run("invalid file names the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("siteRoot: api\n"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, docerr.CategoryConfig, docerr.CategoryOf(err))
		assert.Contains(t, err.Error(), path)
	})
}

func TestDiscover(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		c, path, err := Discover("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, Default(), c)
	})
	t.Run("nearest file from a nested directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("output: out\n"), 0o600))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		t.Chdir(nested)

		c, path, err := Discover("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, FileName), path)
		assert.Equal(t, "out", c.Output)
	})
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("clean: true\n"), 0o600))
		c, found, err := Discover(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
		assert.True(t, c.Clean)
	})
}
