// Package dtsdoc generates static HTML documentation fragments for a blob of
// TypeScript ambient type declarations.
//
// The pipeline is a pure function from declaration text to a file map:
//  1. The text is served by a virtual loader under a single synthetic specifier
//  2. A module graph is built from it and must be free of diagnostics
//  3. Documented symbols are extracted with re-exports flattened
//  4. Symbols are partitioned by kind and by name and rendered to HTML views
//  5. Views are assembled into a path-keyed file map
//
// Nothing is written until the whole map was produced. [Run] adds the
// acquisition of the declaration text and persists the map on disk.
//
// # Basic Usage
//
// Given the declaration text:
//
//	/** Says hello. */
//	export function greet(name: string): string;
//
// Generate the site:
//
//	site, err := dtsdoc.Generate(ctx, text, dtsdoc.WithSiteRoot("/api"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The resulting [Site] contains:
//   - /index.html and /breadcrumbs.html listing every symbol grouped by kind
//   - /greet/main.html, /greet/breadcrumbs.html and /greet/sidepanel.html
//
// # Output Layout
//
// Every distinct top-level name gets one directory. Overloads and merged
// declarations sharing a name, like an interface and a function both called
// Box, are rendered together in /Box/main.html. Two names which map onto the
// same path segment fail the generation.
//
// # Errors
//
// Every failure is fatal. [ErrorCategory] tells which stage gave up.
package dtsdoc
