package config

import (
	"regexp"
	"strings"

	"github.com/nobl9/govy/pkg/govy"
	"github.com/nobl9/govy/pkg/rules"

	"github.com/nieomylnieja/dtsdoc/internal/docerr"
)

var (
	schemeRegexp   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	siteRootRegexp = regexp.MustCompile(`^/([^/\s]+(/[^/\s]+)*)?$`)
)

var logLevels = []string{"debug", "info", "warn", "error"}

var sourceValidator = govy.New(
	govy.For(govy.GetSelf[Source]()).
		Rules(rules.MutuallyExclusive(true, map[string]func(s Source) any{
			"command": func(s Source) any {
				if len(s.Command) == 0 {
					return nil
				}
				return s.Command
			},
			"file": func(s Source) any {
				if s.File == "" {
					return nil
				}
				return s.File
			},
		})),
	govy.ForSlice(func(s Source) []string { return s.Command }).
		WithName("command").
		RulesForEach(rules.StringNotEmpty()),
)

var logValidator = govy.New(
	govy.For(func(l Log) string { return strings.ToLower(l.Level) }).
		WithName("level").
		Required().
		Rules(rules.OneOf(logLevels...)),
	govy.For(func(l Log) LogFormat { return l.Format }).
		WithName("format").
		Required().
		Rules(rules.OneOf(LogFormatText, LogFormatJSON)),
)

var validator = govy.New(
	govy.For(func(c Config) Source { return c.Source }).
		WithName("source").
		Include(sourceValidator),
	govy.For(func(c Config) string { return c.Specifier }).
		WithName("specifier").
		Required().
		Rules(rules.StringMatchRegexp(schemeRegexp)),
	govy.For(func(c Config) string { return c.SiteRoot }).
		WithName("siteRoot").
		Required().
		Rules(rules.StringMatchRegexp(siteRootRegexp)),
	govy.For(func(c Config) string { return c.Output }).
		WithName("output").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(c Config) DocDiagnostics { return c.DocDiagnostics }).
		WithName("docDiagnostics").
		Required().
		Rules(rules.OneOf(DocDiagnosticsIgnore, DocDiagnosticsWarn)),
	govy.ForSlice(func(c Config) []string { return c.StripDocPrefixes }).
		WithName("stripDocPrefixes").
		RulesForEach(rules.StringNotEmpty()),
	govy.For(func(c Config) Log { return c.Log }).
		WithName("log").
		Include(logValidator),
).
	WithName("Config")

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return docerr.Wrap(docerr.CategoryConfig, err, "invalid configuration")
	}
	return nil
}
