package http

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/freekieb7/rin/test"
	"github.com/freekieb7/rin/validation"
)

func TestContextQueryRaw(t *testing.T) {
	ctx := newTestContext(MethodGet, "/search?name=John%20Doe&flag&x=1")

	name, found := ctx.Query("name")
	test.AssertEqual(t, true, found)
	test.AssertEqual(t, "John%20Doe", name)

	flag, found := ctx.Query("flag")
	test.AssertEqual(t, true, found)
	test.AssertEqual(t, "", flag)

	_, found = ctx.Query("missing")
	test.AssertEqual(t, false, found)

	test.AssertEqual(t, "/search", ctx.Path())
	test.AssertEqual(t, "name=John%20Doe&flag&x=1", ctx.RawQuery())
}

type searchQuery struct {
	Name string `json:"name" validate:"required"`
	Page string `json:"page"`
}

func TestContextBindQuery(t *testing.T) {
	ctx := newTestContext(MethodGet, "/search?name=John+Doe&page=1&page=2&bad=%zz")

	var q searchQuery
	test.AssertNoError(t, ctx.BindQuery(&q))
	test.AssertEqual(t, "John Doe", q.Name)
	test.AssertEqual(t, "2", q.Page)

	var all map[string]string
	test.AssertNoError(t, ctx.BindQuery(&all))
	test.AssertEqual(t, "%zz", all["bad"])
}

func TestContextBindQueryValidation(t *testing.T) {
	ctx := newTestContext(MethodGet, "/search?page=3")

	var q searchQuery
	err := ctx.BindQuery(&q)

	var handlerErr *Error
	if !errors.As(err, &handlerErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	test.AssertEqual(t, StatusBadRequest, handlerErr.Status)

	var violations validation.Violations
	if !errors.As(err, &violations) {
		t.Fatalf("expected violations, got %v", err)
	}
	test.AssertEqual(t, 1, len(violations.Errors["name"]))
}

type createNote struct {
	Title string `json:"title" validate:"required,min=3"`
}

func TestContextBindJSON(t *testing.T) {
	testCases := []struct {
		body   string
		status StatusCode
	}{
		{"", StatusBadRequest},
		{"{not json", StatusBadRequest},
		{`{"title":"ab"}`, StatusBadRequest},
		{`{"title":"groceries"}`, 0},
	}

	for _, tc := range testCases {
		ctx := NewContext(context.Background(), NewRequest(MethodPost, "/notes", Headers{}, []byte(tc.body)))

		var n createNote
		err := ctx.BindJSON(&n)
		if tc.status == 0 {
			test.AssertNoError(t, err)
			test.AssertEqual(t, "groceries", n.Title)
			continue
		}

		var handlerErr *Error
		if !errors.As(err, &handlerErr) {
			t.Errorf("BindJSON(%q) = %v, want *Error", tc.body, err)
			continue
		}
		test.AssertEqual(t, tc.status, handlerErr.Status)
	}
}

func TestContextJSON(t *testing.T) {
	ctx := newTestContext(MethodGet, "/")

	res, err := ctx.JSON(StatusCreated, map[string]int{"id": 7})
	test.AssertNoError(t, err)
	test.AssertEqual(t, StatusCreated, res.Status)

	contentType, _ := res.Headers.Get(HeaderContentType)
	test.AssertEqual(t, "application/json", contentType)
	contentLength, _ := res.Headers.Get(HeaderContentLength)
	test.AssertEqual(t, "8", contentLength)

	var decoded map[string]int
	test.AssertNoError(t, json.Unmarshal(res.Body, &decoded))
	test.AssertEqual(t, 7, decoded["id"])

	_, err = ctx.JSON(StatusOK, make(chan int))
	var handlerErr *Error
	if !errors.As(err, &handlerErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	test.AssertEqual(t, StatusInternalServerError, handlerErr.Status)
}

type userID string

type session struct {
	User string
}

func TestContextValues(t *testing.T) {
	ctx := newTestContext(MethodGet, "/")

	_, found := Value[string](ctx)
	test.AssertEqual(t, false, found)

	SetValue(ctx, "plain")
	SetValue(ctx, userID("u-1"))
	SetValue(ctx, &session{User: "ada"})

	s, found := Value[string](ctx)
	test.AssertEqual(t, true, found)
	test.AssertEqual(t, "plain", s)

	id, found := Value[userID](ctx)
	test.AssertEqual(t, true, found)
	test.AssertEqual(t, userID("u-1"), id)

	sess, found := Value[*session](ctx)
	test.AssertEqual(t, true, found)
	test.AssertEqual(t, "ada", sess.User)

	_, found = Value[session](ctx)
	test.AssertEqual(t, false, found)

	SetValue(ctx, "replaced")
	s, _ = Value[string](ctx)
	test.AssertEqual(t, "replaced", s)
}

func TestContextReset(t *testing.T) {
	ctx := newTestContext(MethodGet, "/")
	ctx.setParam("id", "1")
	SetValue(ctx, 42)

	ctx.reset(context.Background(), NewRequest(MethodPost, "/other", Headers{}, nil), nil)

	test.AssertEqual(t, "", ctx.Param("id"))
	_, found := Value[int](ctx)
	test.AssertEqual(t, false, found)
	test.AssertEqual(t, MethodPost, ctx.Method())
}
