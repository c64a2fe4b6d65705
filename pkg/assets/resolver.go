package assets

// Resolver provides asset path resolution.
// It combines manifest lookup with path prefixing.
type Resolver interface {
	// Asset resolves a source asset path to its full URL path,
	// including any configured prefix and fingerprinted filename.
	//
	// Example:
	//   resolver.Asset("icons/arrow.svg") → "/dist/assets/arrow.4f2d1c8a.svg"
	Asset(source string) string
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with an optional path
// prefix. The prefix is prepended to all resolved paths:
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/dist/")
//	resolver.Asset("icons/arrow.svg") // "/dist/assets/arrow.4f2d1c8a.svg"
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	resolved := r.manifest.Resolve(source)
	return r.prefix + resolved
}

// passthrough returns assets unchanged (for development mode).
type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that returns paths
// unchanged apart from the prefix, keeping dev and prod paths
// consistent while fingerprinting is disabled.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}
