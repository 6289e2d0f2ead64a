package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newStaticRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	entryDir := filepath.Join(dir, "three.js", "examples")
	if err := os.MkdirAll(entryDir, 0755); err != nil {
		t.Fatalf("Failed to create entry dir: %v", err)
	}
	files := map[string]string{
		filepath.Join(entryDir, "city.html"): "<html>game</html>",
		filepath.Join(dir, "app.js"):         "console.log('hi')",
		filepath.Join(dir, "model.glb"):      "binary-model",
		filepath.Join(dir, "README"):         "plain text",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return dir
}

func get(t *testing.T, h http.Handler, path string) (int, string, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	body, _ := io.ReadAll(w.Body)
	return w.Code, string(body), w.Header().Get("Content-Type")
}

func TestStaticServesEntryFileForRoot(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	code, body, contentType := get(t, h, "/")
	if code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}
	if body != "<html>game</html>" {
		t.Errorf("Unexpected body: %q", body)
	}
	if contentType != "text/html" {
		t.Errorf("Expected text/html, got %q", contentType)
	}
}

func TestStaticContentTypes(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	tests := []struct {
		path        string
		contentType string
	}{
		{"/app.js", "application/javascript"},
		{"/model.glb", "model/gltf-binary"},
		{"/README", "text/plain"},
	}

	for _, tt := range tests {
		code, _, contentType := get(t, h, tt.path)
		if code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", tt.path, code)
			continue
		}
		if contentType != tt.contentType {
			t.Errorf("%s: expected %q, got %q", tt.path, tt.contentType, contentType)
		}
	}
}

func TestStaticNotFound(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	code, body, _ := get(t, h, "/missing.js")
	if code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", code)
	}
	if body != "404 not found" {
		t.Errorf("Unexpected 404 body: %q", body)
	}
}

func TestStaticDirectoryIsNotFound(t *testing.T) {
	h := NewStaticHandler(newStaticRoot(t))

	code, _, _ := get(t, h, "/three.js")
	if code != http.StatusNotFound {
		t.Errorf("Expected status 404 for directory, got %d", code)
	}
}

func TestStaticPathTraversalBlocked(t *testing.T) {
	dir := newStaticRoot(t)
	// A file next to the asset root must stay unreachable
	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0644); err != nil {
		t.Fatalf("Failed to write outside file: %v", err)
	}
	h := NewStaticHandler(dir)

	code, body, _ := get(t, h, "/../secret.txt")
	if code == http.StatusOK && body == "secret" {
		t.Error("Path traversal escaped the asset root")
	}
}
