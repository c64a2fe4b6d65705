// Package config loads and validates svgkit.json project configuration.
//
// The configuration controls how SVG imports are interpreted (the default
// export mode), how the optimizer is invoked, and how the dev server and
// production builds behave:
//
//	{
//	  "defaultExport": "component",
//	  "svgo": { "enabled": true },
//	  "dev": { "port": 4000 },
//	  "build": { "output": "dist", "minify": true }
//	}
//
// Every field is optional; applyDefaults fills in the rest. The loaded
// Config is read-only after initialization — the import pipeline captures
// the values it needs into its build context once at startup.
package config
