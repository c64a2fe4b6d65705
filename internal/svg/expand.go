package svg

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/vango-dev/svgkit/internal/errors"
)

// Expand generates the module source for a resolved directory-pattern
// path. The generated module default-exports an object literal mapping
// each matched name to a lazy loader:
//
//	export default {
//	"arrow": () => import("icons/arrow.svg?url"),
//	}
//
// Each entry is a zero-argument function so matched files load only when
// invoked. The loader target carries the query needed to reproduce the
// resolved output mode under the configured default: "?url" for URL mode,
// "?comp" when Component was forced over a URL default, nothing otherwise.
//
// Matches are sorted lexicographically so the generated source is
// byte-stable across builds. Zero matches yield an empty object literal.
func Expand(resolvedPath string, mode, def Mode) (Source, error) {
	path, _, _ := strings.Cut(resolvedPath, "?")
	if !strings.HasSuffix(path, namePlaceholder) {
		return Source{}, errors.New("E202").
			WithDetail(path + " does not end in " + namePlaceholder)
	}

	// "[name].svg" -> "*.svg", and the same substitution as a regexp to
	// capture the text matched by the wildcard.
	pattern := strings.TrimSuffix(path, namePlaceholder) + "*.svg"
	nameRe, err := regexp.Compile("^" + strings.Replace(regexp.QuoteMeta(pattern), `\*`, `(.+)`, 1) + "$")
	if err != nil {
		return Source{}, errors.New("E202").Wrap(err)
	}

	// Enumerated relative to the working directory, like every other
	// module path the host hands us.
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return Source{}, errors.New("E202").
			WithDetail("bad glob pattern " + pattern).
			Wrap(err)
	}
	sort.Strings(matches)

	entryQuery := ""
	switch {
	case mode == ModeURL:
		entryQuery = "?url"
	case mode == ModeComponent && def == ModeURL:
		entryQuery = "?comp"
	}

	var b strings.Builder
	b.WriteString("export default {\n")
	for _, match := range matches {
		sub := nameRe.FindStringSubmatch(filepath.ToSlash(match))
		if sub == nil {
			continue
		}
		fmt.Fprintf(&b, "%q: () => import(%q),\n", sub[1], filepath.ToSlash(match)+entryQuery)
	}
	b.WriteString("}")

	return Source{Code: b.String()}, nil
}
