// Package spa serves a pre-built single-page application with a
// client-side-routing fallback: request paths resolving to a file under
// the static root are served directly, everything else gets the index
// document so the frontend router can take over. The handler never
// produces a 404.
package spa

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	appmiddleware "github.com/hellospa/backend/internal/middleware"
	"github.com/hellospa/backend/internal/respond"
)

// IndexDocument is the default HTML document served for client-side
// routed navigation.
const IndexDocument = "index.html"

// ErrNoIndex reports a static root that exists but lacks the index
// document. The fallback contract cannot be honored without one.
var ErrNoIndex = errors.New("index document not found in static root")

// Handler is the catch-all for GET paths not claimed by the API routes.
type Handler struct {
	root             string
	assets           fs.FS
	methodNotAllowed http.Handler
}

// New probes the static root and its index document once and returns a
// handler over the directory. The probe happens at startup only; the
// mount decision holds for the process lifetime even if the directory
// appears or vanishes later.
func New(root string, methodNotAllowed http.Handler) (*Handler, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static root %s is not a directory", root)
	}
	if _, err := os.Stat(filepath.Join(root, IndexDocument)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoIndex, root)
	}
	return &Handler{
		root:             root,
		assets:           os.DirFS(root),
		methodNotAllowed: methodNotAllowed,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.methodNotAllowed.ServeHTTP(w, r)
		return
	}

	// Clean before resolving so traversal sequences cannot escape the
	// root; anything that is not a plain existing file falls back to
	// the index document.
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || !fs.ValidPath(name) {
		name = IndexDocument
	} else if info, err := fs.Stat(h.assets, name); err != nil || !info.Mode().IsRegular() {
		name = IndexDocument
	}
	h.serve(w, r, name)
}

// serve writes the named asset. Content type, HEAD handling and range
// requests come from http.ServeContent.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.assets.Open(name)
	if err != nil {
		h.fail(w, r, name, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.fail(w, r, name, err)
		return
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		h.fail(w, r, name, fmt.Errorf("asset %s is not seekable", name))
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), content)
}

// fail surfaces a filesystem failure on a previously present asset as a
// 500 problem response, matching the API error rendering. The startup
// probe rules out the common misconfigurations, so this indicates the
// directory changed underneath a running process.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	appmiddleware.LogError(r.Context(), "static asset read failed", err,
		zap.String("root", h.root),
		zap.String("asset", name),
	)
	respond.InternalServerError(w)
}
