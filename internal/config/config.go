// Package config loads the dtsdoc.yaml generation settings.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
	"github.com/nieomylnieja/dtsdoc/internal/pathutils"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "dtsdoc.yaml"

const (
	DefaultSpecifier = "asset://deno_types"
	DefaultSiteRoot  = "/api"
	DefaultOutput    = "gen_out"
)

var DefaultCommand = []string{"deno", "types"}

type DocDiagnostics string

const (
	DocDiagnosticsIgnore DocDiagnostics = "ignore"
	DocDiagnosticsWarn   DocDiagnostics = "warn"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config holds the generation settings.
type Config struct {
	Source               Source         `yaml:"source"`
	Specifier            string         `yaml:"specifier"`
	SiteRoot             string         `yaml:"siteRoot"`
	PackageName          string         `yaml:"packageName"`
	Output               string         `yaml:"output"`
	Clean                bool           `yaml:"clean"`
	IncludePrivate       bool           `yaml:"includePrivate"`
	DocDiagnostics       DocDiagnostics `yaml:"docDiagnostics"`
	StripDocPrefixes     []string       `yaml:"stripDocPrefixes"`
	CaseInsensitivePaths bool           `yaml:"caseInsensitivePaths"`
	Log                  Log            `yaml:"log"`
}

// Source selects where the declaration text comes from.
// Exactly one of Command and File is set.
type Source struct {
	Command []string `yaml:"command,omitempty"`
	File    string   `yaml:"file,omitempty"`
}

type Log struct {
	Level  string    `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used without a configuration file.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if len(c.Source.Command) == 0 && c.Source.File == "" {
		c.Source.Command = append([]string(nil), DefaultCommand...)
	}
	if c.Specifier == "" {
		c.Specifier = DefaultSpecifier
	}
	if c.SiteRoot == "" {
		c.SiteRoot = DefaultSiteRoot
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.DocDiagnostics == "" {
		c.DocDiagnostics = DocDiagnosticsIgnore
	}
	if c.StripDocPrefixes == nil {
		c.StripDocPrefixes = []string{"**UNSTABLE**: New API, yet to be vetted."}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatText
	}
}

// Load reads, defaults and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, docerr.Wrapf(docerr.CategoryConfig, err, "failed to read configuration file")
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, docerr.Wrapf(docerr.CategoryConfig, err, "invalid configuration file %s", path)
	}
	return c, nil
}

// Parse decodes configuration YAML. Unknown fields are rejected.
// Environment variables are expanded in the path fields, source.file and
// output, every other value is taken literally.
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read configuration")
	}
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "failed to decode configuration")
	}
	c.Source.File = os.ExpandEnv(c.Source.File)
	c.Output = os.ExpandEnv(c.Output)
	c.applyDefaults()
	if err = c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Discover loads the explicitly given file, or the nearest [FileName]
// found from the working directory up. Without either, defaults apply.
// The returned path is empty when no file was used.
func Discover(explicit string) (Config, string, error) {
	if explicit != "" {
		c, err := Load(explicit)
		return c, explicit, err
	}
	path, err := pathutils.FindUpFromWorkingDir(FileName)
	switch {
	case errors.Is(err, pathutils.ErrNotFound):
		return Default(), "", nil
	case err != nil:
		return Config{}, "", docerr.Wrap(docerr.CategoryConfig, err, "failed to look up configuration file")
	}
	c, err := Load(path)
	return c, path, err
}
