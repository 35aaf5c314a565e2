package httpfx

import (
	"net/http"
	"strings"
)

type Router struct {
	mux  *http.ServeMux
	path string

	handlers []Handler
	routes   []*Route
}

func NewRouter(path string) *Router {
	return &Router{
		mux:  http.NewServeMux(),
		path: path,

		handlers: make([]Handler, 0),
		routes:   make([]*Route, 0),
	}
}

func (r *Router) GetMux() *http.ServeMux {
	return r.mux
}

func (r *Router) GetPath() string {
	return r.path
}

func (r *Router) GetHandlers() []Handler {
	return r.handlers
}

func (r *Router) GetRoutes() []*Route {
	return r.routes
}

// Group creates a sub-router sharing the same mux and middleware chain.
func (r *Router) Group(path string) *Router {
	return &Router{
		mux:  r.mux,
		path: joinPaths(r.path, path),

		handlers: r.handlers,
		routes:   make([]*Route, 0),
	}
}

func (r *Router) Use(handlers ...Handler) {
	r.handlers = append(r.handlers, handlers...)
}

// Route registers a handler chain for a "METHOD /path" pattern.
func (r *Router) Route(pattern string, handlers ...Handler) *Route {
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		path = method
		method = ""
	}

	fullPath := joinPaths(r.path, path)

	muxPattern := fullPath
	if method != "" {
		muxPattern = method + " " + fullPath
	}

	chain := make([]Handler, 0, len(r.handlers)+len(handlers))
	chain = append(chain, r.handlers...)
	chain = append(chain, handlers...)

	route := &Route{ //nolint:exhaustruct
		Pattern:  muxPattern,
		Handlers: chain,
	}

	route.MuxHandlerFunc = func(w http.ResponseWriter, req *http.Request) {
		ctx := &Context{
			Request:        req,
			ResponseWriter: w,

			Results: Results{},

			handlers: chain,
			index:    -1,
		}

		result := ctx.Next()

		writeResult(w, req, result)
	}

	r.mux.HandleFunc(muxPattern, route.MuxHandlerFunc)

	r.routes = append(r.routes, route)

	return route
}

func writeResult(w http.ResponseWriter, req *http.Request, result Result) {
	if uri := result.RedirectToURI(); uri != "" {
		http.Redirect(w, req, uri, result.StatusCode())

		return
	}

	w.WriteHeader(result.StatusCode())

	if body := result.Body(); len(body) > 0 {
		_, _ = w.Write(body)
	}
}

func joinPaths(base string, path string) string {
	base = strings.TrimSuffix(base, "/")

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if base == "" {
		return path
	}

	return base + path
}
