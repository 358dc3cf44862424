// Package router wraps chi with prefix groups, per-group middleware and a
// route table the route:list command can print.
package router

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// Route describes one registered endpoint.
type Route struct {
	Method string
	Path   string
	Name   string
}

// Router is the top-level registry. Its verb methods register at the root;
// Group scopes a prefix and middleware chain.
type Router struct {
	mux  chi.Router
	mu   sync.RWMutex
	list []Route
}

func New() *Router {
	return &Router{mux: chi.NewRouter()}
}

// Handler returns the underlying chi mux.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middleware. Must be called before any route is added.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// Routes returns the registered endpoints sorted by path, then method.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	out := append([]Route(nil), r.list...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Group carries a path prefix and middleware shared by its routes.
type Group struct {
	router *Router
	prefix string
	mws    []Middleware
}

func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{router: r, prefix: cleanPath(prefix), mws: append([]Middleware(nil), mws...)}
}

// Group nests another prefix and middleware chain under g.
func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		router: g.router,
		prefix: cleanPath(g.prefix + "/" + prefix),
		mws:    append(append([]Middleware(nil), g.mws...), mws...),
	}
}

func (r *Router) root() *Group { return &Group{router: r} }

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root().Get(path, name, h, mws...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root().Post(path, name, h, mws...)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root().Put(path, name, h, mws...)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root().Patch(path, name, h, mws...)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.root().Delete(path, name, h, mws...)
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPut, path, name, h, mws)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPatch, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodDelete, path, name, h, mws)
}

func (g *Group) register(method, path, name string, h http.Handler, extra []Middleware) {
	full := cleanPath(g.prefix + "/" + path)
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	for i := len(g.mws) - 1; i >= 0; i-- {
		h = g.mws[i](h)
	}
	g.router.mux.Method(method, full, h)

	g.router.mu.Lock()
	g.router.list = append(g.router.list, Route{Method: method, Path: full, Name: name})
	g.router.mu.Unlock()
}

// cleanPath collapses empty segments and guarantees a leading slash.
func cleanPath(p string) string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return "/" + strings.Join(segments, "/")
}
