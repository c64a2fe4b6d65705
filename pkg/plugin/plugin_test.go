package plugin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/svgkit/internal/compile"
	"github.com/vango-dev/svgkit/internal/svg"
	"github.com/vango-dev/svgkit/internal/svgo"
)

func testProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"icons/arrow.svg": `<svg viewBox="0 0 24 24"><path d="M0 0h24"/></svg>`,
		"icons/star.svg":  `<svg viewBox="0 0 24 24"><circle r="4"/></svg>`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testPlugin(t *testing.T, root string, def svg.Mode) api.Plugin {
	t.Helper()
	return New(svg.NewContext(svg.ContextOptions{
		Root:        root,
		DefaultMode: def,
		Optimizer:   svgo.Passthrough{},
		Compiler:    compile.New(),
	}))
}

func bundle(t *testing.T, dir, entrySource string, def svg.Mode) api.BuildResult {
	t.Helper()
	entry := filepath.Join(dir, "main.js")
	if err := os.WriteFile(entry, []byte(entrySource), 0644); err != nil {
		t.Fatal(err)
	}

	return api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		Outdir:      filepath.Join(dir, "out"),
		Format:      api.FormatESModule,
		External:    []string{"preact", "preact/*"},
		Plugins:     []api.Plugin{testPlugin(t, dir, def)},
	})
}

func TestPlugin_ComponentImport(t *testing.T) {
	dir := testProject(t)

	result := bundle(t, dir, `import Arrow from "./icons/arrow.svg"; console.log(Arrow);`, svg.ModeComponent)
	if len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}

	var out string
	for _, f := range result.OutputFiles {
		out += string(f.Contents)
	}
	if !strings.Contains(out, "jsx") {
		t.Errorf("bundle missing compiled component output:\n%s", out)
	}
	if !strings.Contains(out, "viewBox") {
		t.Errorf("bundle missing svg attributes:\n%s", out)
	}
}

func TestPlugin_URLImport(t *testing.T) {
	dir := testProject(t)

	result := bundle(t, dir, `import url from "./icons/arrow.svg?url"; console.log(url);`, svg.ModeComponent)
	if len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}

	// The file loader emits the asset alongside the bundle.
	foundAsset := false
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, ".svg") {
			foundAsset = true
		}
	}
	if !foundAsset {
		t.Error("expected an emitted .svg asset from the file loader")
	}
}

func TestPlugin_URLDefault(t *testing.T) {
	dir := testProject(t)

	// Under a URL default, a bare import emits the asset, no component.
	result := bundle(t, dir, `import url from "./icons/arrow.svg"; console.log(url);`, svg.ModeURL)
	if len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}

	var out string
	for _, f := range result.OutputFiles {
		out += string(f.Contents)
	}
	if strings.Contains(out, "jsx-runtime") {
		t.Errorf("url-mode bundle should not compile a component:\n%s", out)
	}
}

func TestPlugin_MissingFileFailsBuild(t *testing.T) {
	dir := testProject(t)

	result := bundle(t, dir, `import Arrow from "./icons/missing.svg";`, svg.ModeComponent)
	if len(result.Errors) == 0 {
		t.Fatal("expected build failure for missing SVG")
	}
	if !strings.Contains(result.Errors[0].Text, "E221") {
		t.Errorf("error = %q, want read failure", result.Errors[0].Text)
	}
}

func TestPlugin_NonSvgUntouched(t *testing.T) {
	dir := testProject(t)
	helper := filepath.Join(dir, "helper.js")
	if err := os.WriteFile(helper, []byte("export default 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	result := bundle(t, dir, `import n from "./helper.js"; console.log(n);`, svg.ModeComponent)
	if len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}
}
