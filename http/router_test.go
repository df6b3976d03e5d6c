package http

import (
	"context"
	"strings"
	"testing"

	"github.com/freekieb7/rin/test"
)

func newTestContext(method Method, uri string) *Context {
	return NewContext(context.Background(), NewRequest(method, uri, Headers{}, nil))
}

func TestRouterParams(t *testing.T) {
	router := NewRouter()
	router.GET("/users/:id/posts/:post", func(ctx *Context) (*Response, error) {
		return ctx.Text(StatusOK, ctx.Param("id")+"/"+ctx.Param("post")), nil
	})

	res, err := router.Handle(newTestContext(MethodGet, "/users/42/posts/7?draft=1"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, "42/7", string(res.Body))
}

func TestRouterWildcard(t *testing.T) {
	router := NewRouter()
	router.GET("/static/*path", func(ctx *Context) (*Response, error) {
		return ctx.Text(StatusOK, ctx.Param("path")), nil
	})

	testCases := []struct {
		uri, expected string
	}{
		{"/static/css/site.css", "css/site.css"},
		{"/static/", ""},
		{"/static", ""},
	}

	for _, tc := range testCases {
		res, err := router.Handle(newTestContext(MethodGet, tc.uri))
		test.AssertNoError(t, err)
		test.AssertEqual(t, tc.expected, string(res.Body))
	}
}

func TestRouterNotFound(t *testing.T) {
	router := NewRouter()
	router.GET("/a", func(ctx *Context) (*Response, error) { return Empty(StatusOK), nil })

	res, err := router.Handle(newTestContext(MethodGet, "/b"))
	if res != nil {
		t.Errorf("expected no response, got %v", res.Status)
	}
	test.AssertErrorIs(t, err, ErrNotFound)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter()
	ok := func(ctx *Context) (*Response, error) { return Empty(StatusOK), nil }
	router.GET("/items", ok)
	router.POST("/items", ok)

	res, err := router.Handle(newTestContext(MethodDelete, "/items"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, StatusMethodNotAllowed, res.Status)

	allow, _ := res.Headers.Get(HeaderAllow)
	test.AssertEqual(t, "GET, POST", allow)
}

func TestRouterMethodNotAllowedDeduplicates(t *testing.T) {
	router := NewRouter()
	ok := func(ctx *Context) (*Response, error) { return Empty(StatusOK), nil }
	router.GET("/items/new", ok)
	router.GET("/items/:id", ok)
	router.Any([]Method{MethodGet, MethodPut}, "/items/*rest", HandlerFunc(ok))

	res, err := router.Handle(newTestContext(MethodDelete, "/items/new"))
	test.AssertNoError(t, err)

	allow, _ := res.Headers.Get(HeaderAllow)
	test.AssertEqual(t, "GET, PUT", allow)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	var calls []string
	record := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx *Context) (*Response, error) {
				calls = append(calls, name)
				return next.Handle(ctx)
			})
		}
	}

	router := NewRouter()
	router.Use(record("global"))
	router.Group("/v1/", func(group *Router) {
		group.Use(record("inner"))
		group.GET("/ping", func(ctx *Context) (*Response, error) {
			calls = append(calls, "handler")
			return Empty(StatusOK), nil
		}, record("route"))
	}, record("group"))

	res, err := router.Handle(newTestContext(MethodGet, "/v1/ping"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, StatusOK, res.Status)
	test.AssertEqual(t, "global,group,inner,route,handler", strings.Join(calls, ","))
}

func TestRouterFirstMatchWins(t *testing.T) {
	router := NewRouter()
	router.GET("/users/me", func(ctx *Context) (*Response, error) { return ctx.Text(StatusOK, "me"), nil })
	router.GET("/users/:id", func(ctx *Context) (*Response, error) { return ctx.Text(StatusOK, "id"), nil })

	res, err := router.Handle(newTestContext(MethodGet, "/users/me"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, "me", string(res.Body))

	res, err = router.Handle(newTestContext(MethodGet, "/users/5"))
	test.AssertNoError(t, err)
	test.AssertEqual(t, "id", string(res.Body))
}
