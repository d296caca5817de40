// Package docerr classifies fatal pipeline failures.
//
// Every failure of a generation run is fatal; the category only tells the
// caller which stage gave up so it can be reported in a single line.
package docerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category names the pipeline stage a failure originates from.
type Category string

const (
	// CategorySource covers acquisition and decoding of the declaration text.
	CategorySource Category = "source"
	// CategoryGraph covers loader rejections and invalid module graphs.
	CategoryGraph     Category = "graph"
	CategoryRender    Category = "render"
	CategoryCollision Category = "collision"
	CategoryConfig    Category = "config"
	CategoryWrite     Category = "write"
	// CategoryInternal is reported for errors which were never classified.
	CategoryInternal Category = "internal"
)

// Error is a failure tagged with the [Category] of the stage that produced it.
type Error struct {
	category Category
	message  string
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.category, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.category, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Category() Category { return e.category }

// New creates a classified error without an underlying cause.
func New(category Category, format string, args ...any) error {
	return &Error{category: category, message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. It returns nil if err is nil.
func Wrap(category Category, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{category: category, message: message, cause: err}
}

// Wrapf is [Wrap] with a formatted message.
func Wrapf(category Category, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{category: category, message: fmt.Sprintf(format, args...), cause: err}
}

// CategoryOf returns the category of the outermost classified error in the chain,
// or [CategoryInternal] if there is none.
func CategoryOf(err error) Category {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.category
	}
	return CategoryInternal
}

// Is reports whether any error in the chain belongs to category.
func Is(err error, category Category) bool {
	for err != nil {
		if classified, ok := err.(*Error); ok && classified.category == category {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
