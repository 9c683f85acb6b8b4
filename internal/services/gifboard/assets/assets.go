// Package assets serves the built single-page application from disk.
//
// A request is answered only when a matching file exists; everything else
// falls through to the next handler so API routes and the default not-found
// response stay reachable.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/louisbranch/gifboard/internal/services/gifboard/platform/httpx"
)

// DefaultDir is the static root, relative to the running executable, used
// when no directory is configured.
const DefaultDir = "dist"

const indexFile = "index.html"

// ErrRootMissing reports a static root that does not exist or is not a
// directory.
var ErrRootMissing = errors.New("static root missing")

// Handler serves files from fsys and falls through to next when no file
// matches the request path.
func Handler(fsys fs.FS) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if fsys == nil {
			return next
		}
		files := http.FileServer(http.FS(fsys))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if !Exists(fsys, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			// http.FileServer redirects explicit index.html requests to the
			// directory; serve the file itself instead.
			if name, ok := fsName(r.URL.Path); ok && path.Base(name) == indexFile {
				if err := serveFile(w, r, fsys, name); err != nil {
					next.ServeHTTP(w, r)
				}
				return
			}
			files.ServeHTTP(w, r)
		})
	}
}

// Exists reports whether urlPath names a servable file in fsys. Directories
// count only when they hold an index document. Dot-prefixed segments are
// never served.
func Exists(fsys fs.FS, urlPath string) bool {
	name, ok := fsName(urlPath)
	if !ok {
		return false
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	index, err := fs.Stat(fsys, path.Join(name, indexFile))
	return err == nil && !index.IsDir()
}

// serveFile writes the named file with content type and conditional
// request handling from http.ServeContent.
func serveFile(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", name)
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		raw, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		content = bytes.NewReader(raw)
	}
	http.ServeContent(w, r, name, info.ModTime(), content)
	return nil
}

// fsName converts a URL path into an fs.FS name.
func fsName(urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}
	cleaned := strings.TrimPrefix(path.Clean(urlPath), "/")
	if cleaned == "" {
		return ".", true
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if strings.HasPrefix(segment, ".") {
			return "", false
		}
	}
	if !fs.ValidPath(cleaned) {
		return "", false
	}
	return cleaned, true
}

// ResolveRoot returns the absolute static root. An empty dir resolves to
// DefaultDir beside the running executable.
func ResolveRoot(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("locate executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Join(filepath.Dir(exe), DefaultDir)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve static root %s: %w", dir, err)
	}
	return root, nil
}

// CheckRoot verifies that root is an existing directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRootMissing, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootMissing, root)
	}
	return nil
}
