package svg

import (
	"strings"
	"testing"
)

func TestResolveDir_Relative(t *testing.T) {
	got, err := ResolveDir("./icons/[name].svg", "/proj/app/main.js")
	if err != nil {
		t.Fatalf("ResolveDir error: %v", err)
	}
	if got != "/proj/app/icons/[name].svg" {
		t.Errorf("ResolveDir = %q", got)
	}
}

func TestResolveDir_AbsoluteJoinsImporterDir(t *testing.T) {
	// Dev-mode hosts hand back absolute-looking ids that are really
	// importer-relative; they must not resolve against the fs root.
	got, err := ResolveDir("/icons/[name].svg", "/proj/index.html")
	if err != nil {
		t.Fatalf("ResolveDir error: %v", err)
	}
	if got != "/proj/icons/[name].svg" {
		t.Errorf("ResolveDir = %q", got)
	}
}

func TestResolveDir_KeepsQuery(t *testing.T) {
	got, err := ResolveDir("./icons/[name].svg?url", "/proj/app/main.js")
	if err != nil {
		t.Fatalf("ResolveDir error: %v", err)
	}
	if got != "/proj/app/icons/[name].svg?url" {
		t.Errorf("ResolveDir = %q", got)
	}
}

func TestResolveDir_Idempotent(t *testing.T) {
	first, err := ResolveDir("../shared/[name].svg", "/proj/app/routes/index.js")
	if err != nil {
		t.Fatal(err)
	}
	second, err := ResolveDir("../shared/[name].svg", "/proj/app/routes/index.js")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("resolution not idempotent: %q vs %q", first, second)
	}
}

func TestResolveDir_MissingImporter(t *testing.T) {
	_, err := ResolveDir("./icons/[name].svg", "")
	if err == nil {
		t.Fatal("expected error for missing importer")
	}
	if !strings.Contains(err.Error(), "E201") {
		t.Errorf("expected E201, got %v", err)
	}
}
