package deploy

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/svgkit/internal/errors"
)

type fakePutter struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	failKey string
}

type fakeObject struct {
	body         []byte
	contentType  string
	cacheControl string
}

func newFakePutter() *fakePutter {
	return &fakePutter{objects: make(map[string]fakeObject)}
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := *params.Key
	if f.failKey != "" && key == f.failKey {
		return nil, io.ErrUnexpectedEOF
	}

	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	obj := fakeObject{body: body}
	if params.ContentType != nil {
		obj.contentType = *params.ContentType
	}
	if params.CacheControl != nil {
		obj.cacheControl = *params.CacheControl
	}

	f.mu.Lock()
	f.objects[key] = obj
	f.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (f *fakePutter) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func testDist(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"main.js":                   "export default 1;",
		"manifest.json":             "{}",
		"assets/arrow.4F2D1C8A.svg": "<svg/>",
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

func TestDeploy(t *testing.T) {
	putter := newFakePutter()
	dir := testDist(t)

	var progressed []string
	u := New(putter, "my-bucket", "app")
	u.OnProgress = func(key string) {
		progressed = append(progressed, key)
	}

	result, err := u.Deploy(context.Background(), dir)
	if err != nil {
		t.Fatalf("Deploy error: %v", err)
	}

	if result.Uploaded != 3 {
		t.Errorf("Uploaded = %d, want 3", result.Uploaded)
	}
	if result.Bytes == 0 {
		t.Error("Bytes = 0")
	}
	if len(progressed) != 3 {
		t.Errorf("progress calls = %d, want 3", len(progressed))
	}

	want := []string{
		"app/assets/arrow.4F2D1C8A.svg",
		"app/main.js",
		"app/manifest.json",
	}
	got := putter.keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	svg := putter.objects["app/assets/arrow.4F2D1C8A.svg"]
	if svg.contentType != "image/svg+xml" {
		t.Errorf("svg ContentType = %q", svg.contentType)
	}
	if svg.cacheControl != "public, max-age=31536000, immutable" {
		t.Errorf("svg CacheControl = %q", svg.cacheControl)
	}

	manifest := putter.objects["app/manifest.json"]
	if manifest.cacheControl != "no-cache" {
		t.Errorf("manifest CacheControl = %q", manifest.cacheControl)
	}
}

func TestDeploy_MissingDir(t *testing.T) {
	u := New(newFakePutter(), "my-bucket", "")

	_, err := u.Deploy(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing build output")
	}
	if !errors.IsCategory(err, errors.CategoryDeploy) {
		t.Errorf("err = %v, want deploy category", err)
	}
}

func TestDeploy_UploadFailure(t *testing.T) {
	putter := newFakePutter()
	putter.failKey = "main.js"

	u := New(putter, "my-bucket", "")
	_, err := u.Deploy(context.Background(), testDist(t))
	if err == nil {
		t.Fatal("expected upload failure")
	}

	// The coded upload error surfaces as-is, not wrapped a second time.
	serr, ok := err.(*errors.SvgkitError)
	if !ok {
		t.Fatalf("err = %T, want *errors.SvgkitError", err)
	}
	if !errors.IsCategory(err, errors.CategoryDeploy) {
		t.Errorf("err = %v, want deploy category", err)
	}
	if serr.Detail != "Failed to upload main.js" {
		t.Errorf("Detail = %q, want the failing key", serr.Detail)
	}
	if serr.Wrapped != io.ErrUnexpectedEOF {
		t.Errorf("Wrapped = %v, want the transport error", serr.Wrapped)
	}
}

func TestCacheControl(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"assets/arrow.4F2D1C8A.svg", "public, max-age=31536000, immutable"},
		{"main.js", "no-cache"},
		{"manifest.json", "no-cache"},
	}
	for _, tt := range tests {
		if got := cacheControl(tt.key); got != tt.want {
			t.Errorf("cacheControl(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
