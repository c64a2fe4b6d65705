package svg

import (
	"path/filepath"
	"strings"

	"github.com/vango-dev/svgkit/internal/errors"
)

// ResolveDir converts a directory-pattern specifier plus its importer
// into the canonical module path used for the subsequent load phase.
// Resolution is deterministic: the same (specifier, importer) pair always
// yields the same path.
//
// An absolute-looking specifier is still joined with the importer's
// directory, not the filesystem root. In dev mode the host hands back
// absolute ids that are actually relative to the importing document;
// joining corrects that asymmetry and is a no-op for genuinely relative
// specifiers.
func ResolveDir(specifier, importer string) (string, error) {
	if importer == "" {
		return "", errors.New("E201").
			WithDetail("directory import " + specifier + " has no importer")
	}

	path, rawQuery, _ := strings.Cut(specifier, "?")
	resolved := filepath.Join(filepath.Dir(importer), path)
	if rawQuery != "" {
		resolved += "?" + rawQuery
	}
	return resolved, nil
}
