package svg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp creates a temp dir with the given SVG files and makes it the
// working directory for the test. Directory expansion globs relative to
// the working directory, matching how the host hands over module paths.
func chdirTemp(t *testing.T, files ...string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("<svg></svg>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return tmpDir
}

func TestExpand_Empty(t *testing.T) {
	chdirTemp(t)

	src, err := Expand("icons/[name].svg", ModeComponent, ModeComponent)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	want := "export default {\n}"
	if src.Code != want {
		t.Errorf("Code = %q, want %q", src.Code, want)
	}
}

func TestExpand_ComponentMode(t *testing.T) {
	chdirTemp(t, "icons/icon1.svg", "icons/icon2.svg")

	src, err := Expand("icons/[name].svg", ModeComponent, ModeComponent)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}

	want := "export default {\n" +
		"\"icon1\": () => import(\"icons/icon1.svg\"),\n" +
		"\"icon2\": () => import(\"icons/icon2.svg\"),\n" +
		"}"
	if src.Code != want {
		t.Errorf("Code = %q, want %q", src.Code, want)
	}
}

func TestExpand_URLMode(t *testing.T) {
	chdirTemp(t, "icons/icon1.svg", "icons/icon2.svg")

	src, err := Expand("icons/[name].svg?url", ModeURL, ModeComponent)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}

	if !strings.Contains(src.Code, `import("icons/icon1.svg?url")`) {
		t.Errorf("loader targets should carry ?url, got:\n%s", src.Code)
	}
	if !strings.Contains(src.Code, `import("icons/icon2.svg?url")`) {
		t.Errorf("loader targets should carry ?url, got:\n%s", src.Code)
	}
}

func TestExpand_ForcedComponentUnderURLDefault(t *testing.T) {
	chdirTemp(t, "icons/arrow.svg")

	src, err := Expand("icons/[name].svg?comp", ModeComponent, ModeURL)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if !strings.Contains(src.Code, `import("icons/arrow.svg?comp")`) {
		t.Errorf("loader targets should carry ?comp, got:\n%s", src.Code)
	}
}

func TestExpand_Deterministic(t *testing.T) {
	chdirTemp(t, "icons/b.svg", "icons/a.svg", "icons/c.svg")

	first, err := Expand("icons/[name].svg", ModeComponent, ModeComponent)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Expand("icons/[name].svg", ModeComponent, ModeComponent)
	if err != nil {
		t.Fatal(err)
	}
	if first.Code != second.Code {
		t.Error("expansion should be byte-stable across runs")
	}

	// Lexicographic entry order.
	ia := strings.Index(first.Code, `"a"`)
	ib := strings.Index(first.Code, `"b"`)
	ic := strings.Index(first.Code, `"c"`)
	if ia < 0 || ib < 0 || ic < 0 || !(ia < ib && ib < ic) {
		t.Errorf("entries not sorted:\n%s", first.Code)
	}
}

func TestExpand_IgnoresNonMatches(t *testing.T) {
	chdirTemp(t, "icons/arrow.svg", "icons/readme.txt.svg", "other/x.svg")

	src, err := Expand("icons/[name].svg", ModeComponent, ModeComponent)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(src.Code, "other/x.svg") {
		t.Errorf("matched outside the pattern directory:\n%s", src.Code)
	}
	// The wildcard captures any name text, including dots.
	if !strings.Contains(src.Code, `"readme.txt"`) {
		t.Errorf("wildcard should capture dotted names:\n%s", src.Code)
	}
}

func TestExpand_NotAPattern(t *testing.T) {
	chdirTemp(t)

	if _, err := Expand("icons/plain.svg", ModeComponent, ModeComponent); err == nil {
		t.Fatal("expected error for non-pattern path")
	}
}
