package http

import (
	"slices"
	"strings"
)

// Middleware wraps a Handler with extra behaviour.
type Middleware func(next Handler) Handler

type Route struct {
	Methods  []Method
	Pattern  string
	Handler  Handler
	segments []string
}

// Router dispatches on method and path. Patterns are slash separated;
// a ":name" segment captures one path segment and a trailing "*name"
// captures the rest of the path.
type Router struct {
	Routes     []Route
	Middleware []Middleware
}

func NewRouter() *Router {
	return &Router{
		Routes: make([]Route, 0),
	}
}

// Use appends middleware applied to every route at dispatch time.
func (router *Router) Use(middleware ...Middleware) {
	router.Middleware = append(router.Middleware, middleware...)
}

func (router *Router) GET(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodGet}, pattern, handler, middleware...)
}

func (router *Router) HEAD(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodHead}, pattern, handler, middleware...)
}

func (router *Router) POST(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodPost}, pattern, handler, middleware...)
}

func (router *Router) PUT(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodPut}, pattern, handler, middleware...)
}

func (router *Router) PATCH(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodPatch}, pattern, handler, middleware...)
}

func (router *Router) DELETE(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodDelete}, pattern, handler, middleware...)
}

func (router *Router) CONNECT(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodConnect}, pattern, handler, middleware...)
}

func (router *Router) OPTIONS(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodOptions}, pattern, handler, middleware...)
}

func (router *Router) TRACE(pattern string, handler HandlerFunc, middleware ...Middleware) {
	router.Any([]Method{MethodTrace}, pattern, handler, middleware...)
}

// Any registers handler for each of methods. Route middleware runs inside
// the router-wide middleware, the first listed outermost.
func (router *Router) Any(methods []Method, pattern string, handler Handler, middleware ...Middleware) {
	router.Routes = append(router.Routes, Route{
		Methods:  methods,
		Pattern:  pattern,
		Handler:  chain(handler, middleware),
		segments: splitPath(pattern),
	})
}

// Group mounts the routes registered inside groupFunc under prefix.
func (router *Router) Group(prefix string, groupFunc func(group *Router), middleware ...Middleware) {
	group := NewRouter()

	groupFunc(group)

	groupMiddleware := append(append([]Middleware{}, middleware...), group.Middleware...)

	prefix = strings.TrimSuffix(prefix, "/")
	for _, route := range group.Routes {
		route.Pattern = prefix + route.Pattern
		route.segments = splitPath(route.Pattern)
		route.Handler = chain(route.Handler, groupMiddleware)

		router.Routes = append(router.Routes, route)
	}
}

// Handle dispatches ctx to the first route matching its path and method.
// An unknown path yields ErrNotFound; a known path with another method
// yields a 405 response listing the allowed methods.
func (router *Router) Handle(ctx *Context) (*Response, error) {
	return chain(HandlerFunc(router.dispatch), router.Middleware).Handle(ctx)
}

func (router *Router) dispatch(ctx *Context) (*Response, error) {
	path := splitPath(ctx.Path())

	var allowed []Method
	for i := range router.Routes {
		route := &router.Routes[i]
		params, ok := match(route.segments, path)
		if !ok {
			continue
		}

		for _, method := range route.Methods {
			if method != ctx.Request.Method {
				continue
			}

			for name, value := range params {
				ctx.setParam(name, value)
			}
			return route.Handler.Handle(ctx)
		}
		for _, method := range route.Methods {
			if !slices.Contains(allowed, method) {
				allowed = append(allowed, method)
			}
		}
	}

	if len(allowed) == 0 {
		return nil, ErrNotFound
	}

	names := make([]string, 0, len(allowed))
	for _, method := range allowed {
		names = append(names, method.String())
	}
	return NewResponseBuilder().
		Status(StatusMethodNotAllowed).
		Header(HeaderAllow, strings.Join(names, ", ")).
		Header(HeaderContentLength, "0").
		Build(), nil
}

func chain(handler Handler, middleware []Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, path []string) (map[string]string, bool) {
	var params map[string]string
	for i, segment := range pattern {
		if strings.HasPrefix(segment, "*") {
			if params == nil {
				params = make(map[string]string)
			}
			params[segment[1:]] = strings.Join(path[i:], "/")
			return params, true
		}
		if i >= len(path) {
			return nil, false
		}
		if strings.HasPrefix(segment, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[segment[1:]] = path[i]
			continue
		}
		if segment != path[i] {
			return nil, false
		}
	}
	return params, len(pattern) == len(path)
}
