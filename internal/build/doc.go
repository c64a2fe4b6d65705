// Package build provides production builds for svgkit projects.
//
// This package handles:
//   - Bundling the configured entry point with the SVG plugin applied
//   - Content-hashed asset emission for URL-mode imports
//   - Build manifest generation
//
// # Usage
//
//	builder := build.New(cfg, svgctx, build.Options{})
//	result, err := builder.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Built in %s\n", result.Duration)
//
// # Output Structure
//
//	dist/
//	├── main.js             # Bundled entry point
//	├── assets/             # URL-mode SVG assets with content hashes
//	│   └── arrow.4F2D1C8A.svg
//	└── manifest.json       # Asset manifest
//
// # Manifest
//
// The manifest maps source asset paths to their emitted names:
//
//	{
//	  "icons/arrow.svg": "assets/arrow.4F2D1C8A.svg"
//	}
package build
