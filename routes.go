package main

import (
	"github.com/freekieb7/rin/http"
)

type greeting struct {
	Name  string `json:"name" validate:"required,max=64"`
	Greet string `json:"greet" validate:"omitempty,oneof=hello hi hey"`
}

type note struct {
	Title string `json:"title" validate:"required,min=3,max=255"`
	Body  string `json:"body"`
}

// newRouter wires the demo routes answered by the handle command.
func newRouter() *http.Router {
	router := http.NewRouter()
	router.Use(http.RecoverMiddleware, http.RequestIDMiddleware, http.TracingMiddleware, http.LoggerMiddleware)

	router.GET("/health", func(ctx *http.Context) (*http.Response, error) {
		return ctx.Text(http.StatusOK, "ok"), nil
	})

	router.Group("/api/v1", func(group *http.Router) {
		group.GET("/hello", func(ctx *http.Context) (*http.Response, error) {
			var g greeting
			if err := ctx.BindQuery(&g); err != nil {
				return nil, err
			}
			if g.Greet == "" {
				g.Greet = "hello"
			}
			return ctx.JSON(http.StatusOK, map[string]string{"message": g.Greet + ", " + g.Name})
		})

		group.GET("/users/:id", func(ctx *http.Context) (*http.Response, error) {
			return ctx.JSON(http.StatusOK, map[string]string{"id": ctx.Param("id")})
		})

		group.POST("/notes", func(ctx *http.Context) (*http.Response, error) {
			var n note
			if err := ctx.BindJSON(&n); err != nil {
				return nil, err
			}
			return ctx.JSON(http.StatusCreated, n)
		})

		group.GET("/files/*path", func(ctx *http.Context) (*http.Response, error) {
			return ctx.Text(http.StatusOK, ctx.Param("path")), nil
		})
	})

	return router
}
