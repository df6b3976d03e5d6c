package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/freekieb7/rin/config"
	"github.com/freekieb7/rin/test"
)

func runApp(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	app := newApp(strings.NewReader(input), &stdout)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.RunContext(context.Background(), append([]string{"rin"}, args...))
	return stdout.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := runApp(t, "POST /notes?draft=1 HTTP/1.0\r\nContent-Type: text/plain\r\n\r\nhi", "parse")
	test.AssertNoError(t, err)

	var req parsedRequest
	test.AssertNoError(t, json.Unmarshal([]byte(out), &req))
	test.AssertEqual(t, "POST", req.Method)
	test.AssertEqual(t, "/notes?draft=1", req.URI)
	test.AssertEqual(t, "HTTP/1.0", req.Version)
	test.AssertEqual(t, "text/plain", req.Headers["Content-Type"])
	test.AssertEqual(t, "hi", req.Body)
}

func TestParseCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.txt")
	if err := os.WriteFile(path, []byte("GET / HTTP/1.1\r\n\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "", "parse", path)
	test.AssertNoError(t, err)
	if !strings.Contains(out, `"method": "GET"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, input := range []string{"GET / HTTP/1.1\r\nHost", "FOO / HTTP/1.1\r\n\r\n"} {
		out, err := runApp(t, input, "parse")
		if err == nil {
			t.Errorf("parse %q: expected an error", input)
		}
		test.AssertEqual(t, "", out)
	}
}

func TestHandleCommand(t *testing.T) {
	t.Setenv(config.EnvOTLPEndpoint, "")
	envFile := filepath.Join(t.TempDir(), "missing.env")

	testCases := []struct {
		input, statusLine, body string
	}{
		{"GET /health HTTP/1.1\r\n\r\n", "HTTP/1.1 200 OK", "ok"},
		{"GET /api/v1/users/42 HTTP/1.1\r\n\r\n", "HTTP/1.1 200 OK", `{"id":"42"}`},
		{"GET /api/v1/hello?name=Ada&greet=hi HTTP/1.1\r\n\r\n", "HTTP/1.1 200 OK", `{"message":"hi, Ada"}`},
		{"GET /api/v1/hello HTTP/1.1\r\n\r\n", "HTTP/1.1 400 Bad Request", ""},
		{"POST /api/v1/notes HTTP/1.1\r\n\r\n{\"title\":\"groceries\"}", "HTTP/1.1 201 Created", `{"title":"groceries","body":""}`},
		{"GET /nowhere HTTP/1.1\r\n\r\n", "HTTP/1.1 404 Not Found", "Not Found"},
		{"BREW /pot HTTP/1.1\r\n\r\n", "HTTP/1.1 400 Bad Request", "Bad Request"},
	}

	for _, tc := range testCases {
		out, err := runApp(t, tc.input, "--env-file", envFile, "--log-level", "error", "handle")
		test.AssertNoError(t, err)

		statusLine, _, _ := strings.Cut(out, "\r\n")
		test.AssertEqual(t, tc.statusLine, statusLine)
		if tc.body != "" && !strings.HasSuffix(out, "\r\n\r\n"+tc.body) {
			t.Errorf("%s: unexpected response %q", tc.input, out)
		}
		if strings.Contains(tc.statusLine, " 20") && !strings.Contains(out, "X-Request-Id: ") {
			t.Errorf("%s: response carries no request id", tc.input)
		}
	}
}

func TestHandleCommandIncomplete(t *testing.T) {
	t.Setenv(config.EnvOTLPEndpoint, "")
	envFile := filepath.Join(t.TempDir(), "missing.env")

	out, err := runApp(t, "GET /health HTTP/1.1\r\n", "--env-file", envFile, "handle")
	if err == nil {
		t.Fatal("expected an error")
	}
	test.AssertEqual(t, "", out)
}
