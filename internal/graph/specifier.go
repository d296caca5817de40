package graph

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Specifier identifies a module. It is always an absolute URL.
type Specifier string

func (s Specifier) String() string { return string(s) }

// ParseSpecifier validates raw as an absolute module URL.
func ParseSpecifier(raw string) (Specifier, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid module specifier %q", raw)
	}
	if u.Scheme == "" {
		return "", errors.Errorf("module specifier %q has no scheme", raw)
	}
	return Specifier(u.String()), nil
}

// Resolve resolves a module reference found in the module named by s.
// Relative references ("./", "../", "/") resolve against s, absolute URLs
// are taken as is and bare names are rejected.
func (s Specifier) Resolve(ref string) (Specifier, error) {
	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || strings.HasPrefix(ref, "/") {
		base, err := url.Parse(string(s))
		if err != nil {
			return "", errors.Wrapf(err, "invalid referrer %q", s)
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return "", errors.Wrapf(err, "invalid module reference %q", ref)
		}
		if base.Path == "" && base.Host != "" {
			// Opaque roots such as asset://deno_types resolve as directories.
			base.Path = "/"
		}
		return Specifier(base.ResolveReference(rel).String()), nil
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return Specifier(u.String()), nil
	}
	return "", errors.Errorf("relative import path %q not prefixed with / or ./ or ../", ref)
}
