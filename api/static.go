package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultEntryFile is the page served for the bare / path.
const DefaultEntryFile = "three.js/examples/city.html"

// contentTypes maps asset extensions to the MIME types the game clients
// expect, including the glTF model formats.
var contentTypes = map[string]string{
	".html": "text/html",
	".js":   "application/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
}

// StaticHandler serves game assets from a directory tree. Unknown
// extensions fall back to text/plain.
type StaticHandler struct {
	Root      string
	EntryFile string
}

// NewStaticHandler creates a static handler rooted at dir, serving
// DefaultEntryFile for the root path.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Root: dir, EntryFile: DefaultEntryFile}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if name == "/" {
		name = "/" + h.EntryFile
	}

	// Collapse any ".." so requests cannot escape the asset root.
	name = path.Clean("/" + name)
	full := filepath.Join(h.Root, filepath.FromSlash(name))

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 not found"))
		return
	}

	data, err := os.ReadFile(full)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("500 internal server error"))
		return
	}

	contentType := contentTypes[strings.ToLower(filepath.Ext(full))]
	if contentType == "" {
		contentType = "text/plain"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
