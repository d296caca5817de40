package jsdoc

import (
	"strings"
)

// Processor post-processes a parsed comment.
// It can be used to clean up or enrich documentation text.
type Processor func(c Comment) Comment

// Process applies processors in order.
func Process(c Comment, processors ...Processor) Comment {
	for _, process := range processors {
		c = process(c)
	}
	return c
}

// StripPrefixes removes the first occurrence of each marker from the
// description, for instance "**UNSTABLE**: New API, yet to be vetted.".
func StripPrefixes(prefixes ...string) Processor {
	return func(c Comment) Comment {
		for _, prefix := range prefixes {
			if prefix == "" {
				continue
			}
			c.Description = strings.Replace(c.Description, prefix, "", 1)
		}
		return c
	}
}

// TrimWhitespace removes leading and trailing whitespace from the
// description and tag values. Example bodies keep their indentation.
func TrimWhitespace(c Comment) Comment {
	c.Description = strings.TrimSpace(c.Description)
	if len(c.Tags) == 0 {
		return c
	}
	tags := make([]Tag, len(c.Tags))
	for i, t := range c.Tags {
		if t.Kind != "example" {
			t.Value = strings.TrimSpace(t.Value)
		}
		tags[i] = t
	}
	c.Tags = tags
	return c
}
