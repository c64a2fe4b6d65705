// Package svg implements the SVG import pipeline: classifying import
// specifiers, resolving directory-pattern imports, expanding directories
// into lazy-loader modules, and compiling single SVG files into component
// modules.
//
// The package is the bundler-agnostic core. A host bundler drives it
// through the three phase methods on Context — Resolve, Load and
// Transform — each of which either handles the module or defers to the
// host. pkg/plugin adapts these phases onto esbuild's plugin API.
//
// An import specifier is an SVG import when its path portion ends in
// ".svg". The query string selects the output:
//
//	import Arrow from "./icons/arrow.svg"            // default export mode
//	import arrowUrl from "./icons/arrow.svg?url"     // URL reference
//	import Arrow from "./icons/arrow.svg?component"  // component module
//	import icons from "./icons/[name].svg"           // directory mapping
//
// All operations are stateless per call; the only shared state is the
// read-only build Context captured once at startup.
package svg
