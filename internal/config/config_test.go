package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.DefaultExport != ExportComponent {
		t.Errorf("DefaultExport = %q, want %q", cfg.DefaultExport, ExportComponent)
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Build.Output != DefaultOutput {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, DefaultOutput)
	}
	if !cfg.Svgo.Enabled {
		t.Error("Svgo.Enabled should default to true")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Loading a directory without svgkit.json fails with E101.
	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Expected error for missing config")
	}
	if !strings.Contains(err.Error(), "E101") {
		t.Errorf("Expected E101 error, got: %v", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "defaultExport": "url",
  "entry": "src/index.js",
  "svgo": {
    "enabled": true,
    "config": "tools/svgo.config.js"
  },
  "dev": {
    "port": 8080,
    "host": "0.0.0.0"
  },
  "build": {
    "output": "build",
    "minify": true
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.DefaultExport != ExportURL {
		t.Errorf("DefaultExport = %q, want %q", cfg.DefaultExport, ExportURL)
	}
	if cfg.Entry != "src/index.js" {
		t.Errorf("Entry = %q, want %q", cfg.Entry, "src/index.js")
	}
	if cfg.Dev.Port != 8080 {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, 8080)
	}
	if cfg.Dev.Host != "0.0.0.0" {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, "0.0.0.0")
	}
	if cfg.Build.Output != "build" {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, "build")
	}
	if got := cfg.SvgoConfigPath(); got != filepath.Join(tmpDir, "tools/svgo.config.js") {
		t.Errorf("SvgoConfigPath() = %q", got)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E102") {
		t.Errorf("Expected E102 error, got: %v", err)
	}
}

func TestLoadFile_InvalidDefaultExport(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte(`{"defaultExport":"inline"}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid defaultExport")
	}
	if !strings.Contains(err.Error(), "E103") {
		t.Errorf("Expected E103 error, got: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.DefaultExport != ExportComponent {
		t.Errorf("DefaultExport = %q, want %q", cfg.DefaultExport, ExportComponent)
	}
	if cfg.Entry != DefaultEntry {
		t.Errorf("Entry = %q, want %q", cfg.Entry, DefaultEntry)
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if len(cfg.Dev.Watch) == 0 {
		t.Error("Dev.Watch should have defaults")
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Dev.Port = 9000

	// Save should fail without configPath set.
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Dev.Port != 9000 {
		t.Errorf("Dev.Port = %d, want %d", loaded.Dev.Port, 9000)
	}
}

func TestSvgoConfigPath_Conventional(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	// No conventional file: empty.
	if got := cfg.SvgoConfigPath(); got != "" {
		t.Errorf("SvgoConfigPath() = %q, want empty", got)
	}

	// Conventional file is picked up.
	svgoPath := filepath.Join(tmpDir, "svgo.config.js")
	if err := os.WriteFile(svgoPath, []byte("module.exports = {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := cfg.SvgoConfigPath(); got != svgoPath {
		t.Errorf("SvgoConfigPath() = %q, want %q", got, svgoPath)
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "app", "icons")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	// Resolve symlinks for macOS temp dirs.
	wantRoot, _ := filepath.EvalSymlinks(tmpDir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("FindProjectRoot = %q, want %q", gotRoot, wantRoot)
	}
}

func TestDevAddress(t *testing.T) {
	cfg := New()
	cfg.Dev.Host = "127.0.0.1"
	cfg.Dev.Port = 4321

	if got := cfg.DevAddress(); got != "127.0.0.1:4321" {
		t.Errorf("DevAddress() = %q", got)
	}
	if got := cfg.DevURL(); got != "http://127.0.0.1:4321" {
		t.Errorf("DevURL() = %q", got)
	}
}
