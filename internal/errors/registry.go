package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No svgkit.json was found in the project directory or any parent directory.",
		DocURL:   "https://svgkit.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Configuration file is invalid",
		Detail:   "svgkit.json could not be parsed or written.",
		DocURL:   "https://svgkit.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field has a value outside its allowed range.",
		DocURL:   "https://svgkit.dev/docs/errors/E103",
	},

	// ============================================
	// Resolve Errors (E200-E219)
	// ============================================

	"E201": {
		Category: CategoryResolve,
		Message:  "Cannot resolve directory import without importer",
		Detail:   "A [name].svg directory import was requested but the importing module is unknown, so there is no directory to resolve against.",
		DocURL:   "https://svgkit.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryResolve,
		Message:  "Invalid directory pattern",
		Detail:   "The directory import pattern could not be converted into a filesystem glob.",
		DocURL:   "https://svgkit.dev/docs/errors/E202",
	},

	// ============================================
	// Pipeline Errors (E220-E249)
	// ============================================

	"E221": {
		Category: CategoryPipeline,
		Message:  "SVG file could not be read",
		Detail:   "The source file is missing or unreadable. The module build is aborted.",
		DocURL:   "https://svgkit.dev/docs/errors/E221",
	},
	"E222": {
		Category: CategoryPipeline,
		Message:  "SVG optimization failed",
		Detail:   "The optimizer rejected the SVG markup. No fallback to unoptimized content is performed.",
		DocURL:   "https://svgkit.dev/docs/errors/E222",
	},
	"E223": {
		Category: CategoryPipeline,
		Message:  "Component compilation failed",
		Detail:   "The component compiler rejected the generated wrapper source.",
		DocURL:   "https://svgkit.dev/docs/errors/E223",
	},

	// ============================================
	// Build Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryBuild,
		Message:  "Failed to prepare output directory",
		Detail:   "The build output directory could not be cleaned or created.",
		DocURL:   "https://svgkit.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryBuild,
		Message:  "Bundling failed",
		Detail:   "The bundler reported errors while building the entry point.",
		DocURL:   "https://svgkit.dev/docs/errors/E302",
	},
	"E303": {
		Category: CategoryBuild,
		Message:  "Failed to write asset manifest",
		Detail:   "The manifest.json mapping source assets to hashed filenames could not be written.",
		DocURL:   "https://svgkit.dev/docs/errors/E303",
	},
	"E304": {
		Category: CategoryBuild,
		Message:  "Asset manifest could not be read",
		Detail:   "manifest.json is missing or unreadable in the build output directory.",
		DocURL:   "https://svgkit.dev/docs/errors/E304",
	},

	// ============================================
	// Dev Server Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryDev,
		Message:  "Development server failed to start",
		Detail:   "The dev server could not bind to the configured address.",
		DocURL:   "https://svgkit.dev/docs/errors/E401",
	},

	// ============================================
	// Deploy Errors (E500-E599)
	// ============================================

	"E501": {
		Category: CategoryDeploy,
		Message:  "Deployment failed",
		Detail:   "Uploading the build output to the object store failed.",
		DocURL:   "https://svgkit.dev/docs/errors/E501",
	},
}
