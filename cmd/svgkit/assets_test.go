package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/assets"
)

func testManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")

	m := assets.NewManifest()
	m.Set("icons/arrow.svg", "assets/arrow.4f2d1c8a.svg")
	m.Set("icons/close.svg", "assets/close.9b1e07d3.svg")
	if err := m.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveAsset(t *testing.T) {
	path := testManifest(t)

	got, hashed, err := resolveAsset(path, "icons/arrow.svg", "/")
	if err != nil {
		t.Fatalf("resolveAsset error: %v", err)
	}
	if !hashed {
		t.Error("hashed = false for a manifest entry")
	}
	if got != "/assets/arrow.4f2d1c8a.svg" {
		t.Errorf("resolved = %q, want %q", got, "/assets/arrow.4f2d1c8a.svg")
	}
}

func TestResolveAsset_UnknownSource(t *testing.T) {
	path := testManifest(t)

	got, hashed, err := resolveAsset(path, "icons/missing.svg", "/")
	if err != nil {
		t.Fatalf("resolveAsset error: %v", err)
	}
	if hashed {
		t.Error("hashed = true for an unknown source")
	}
	if got != "/icons/missing.svg" {
		t.Errorf("resolved = %q, want passthrough %q", got, "/icons/missing.svg")
	}
}

func TestResolveAsset_NoManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	got, hashed, err := resolveAsset(path, "icons/arrow.svg", "/")
	if err != nil {
		t.Fatalf("resolveAsset error: %v", err)
	}
	if hashed {
		t.Error("hashed = true without a manifest")
	}
	if got != "/icons/arrow.svg" {
		t.Errorf("resolved = %q, want passthrough %q", got, "/icons/arrow.svg")
	}
}

func TestResolveAsset_CorruptManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := resolveAsset(path, "icons/arrow.svg", "/")
	if err == nil {
		t.Fatal("expected error for corrupt manifest")
	}
	if !strings.Contains(err.Error(), "E304") {
		t.Errorf("expected E304, got %v", err)
	}
}

func TestListAssets(t *testing.T) {
	path := testManifest(t)

	lines, err := listAssets(path, "/static/")
	if err != nil {
		t.Fatalf("listAssets error: %v", err)
	}

	want := []string{
		"icons/arrow.svg -> /static/assets/arrow.4f2d1c8a.svg",
		"icons/close.svg -> /static/assets/close.9b1e07d3.svg",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestListAssets_NoManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	_, err := listAssets(path, "/")
	if err == nil {
		t.Fatal("expected error without a manifest")
	}
	if !errors.IsCategory(err, errors.CategoryBuild) {
		t.Errorf("err = %v, want build category", err)
	}
}
