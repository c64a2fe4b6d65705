package svg

import (
	"fmt"
	"net/url"
	"strings"
)

// Mode is the output mode of a classified SVG import.
type Mode int

const (
	// ModeComponent produces a compiled component module.
	ModeComponent Mode = iota

	// ModeURL produces a URL reference handled by the host bundler's
	// asset emission.
	ModeURL
)

// String returns the mode as its configuration spelling.
func (m Mode) String() string {
	if m == ModeURL {
		return "url"
	}
	return "component"
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "component", "":
		return ModeComponent, nil
	case "url":
		return ModeURL, nil
	}
	return ModeComponent, fmt.Errorf("invalid export mode %q", s)
}

// namePlaceholder is the literal filename placeholder that marks a
// directory-pattern import. It is not a glob; the expander derives one.
const namePlaceholder = "[name].svg"

// Import is a classified SVG import request. It is derived
// deterministically from the specifier and the configured default mode,
// and never mutated after creation.
type Import struct {
	// Path is the path portion of the specifier, query stripped.
	Path string

	// RawQuery is the query string without the leading "?", or "".
	RawQuery string

	// Mode is the resolved output mode. The query override always wins
	// over the configured default.
	Mode Mode

	// Directory reports whether the path ends in the [name].svg
	// placeholder.
	Directory bool

	// Inline reports whether the "inline" query flag is present. The
	// flag is propagated, not interpreted here.
	Inline bool
}

// Classify parses an import specifier against the configured default
// mode. The second return value is false when the specifier is not an
// SVG import at all, in which case the router defers to other handlers.
//
// The specifier is resolved against a synthetic root purely to separate
// path from query; the file does not need to exist.
func Classify(specifier string, def Mode) (Import, bool) {
	ref, err := url.Parse(specifier)
	if err != nil {
		// Unparseable specifiers cannot be SVG imports of ours.
		return Import{}, false
	}

	path, rawQuery, _ := strings.Cut(specifier, "?")
	if !strings.HasSuffix(ref.Path, ".svg") {
		return Import{}, false
	}

	query := ref.Query()

	mode := def
	if def == ModeURL {
		if query.Has("comp") || query.Has("component") {
			mode = ModeComponent
		}
	} else if query.Has("url") {
		mode = ModeURL
	}

	return Import{
		Path:      path,
		RawQuery:  rawQuery,
		Mode:      mode,
		Directory: strings.HasSuffix(ref.Path, namePlaceholder),
		Inline:    query.Has("inline"),
	}, true
}

// Specifier reconstructs the specifier string for this import.
func (i Import) Specifier() string {
	if i.RawQuery == "" {
		return i.Path
	}
	return i.Path + "?" + i.RawQuery
}
