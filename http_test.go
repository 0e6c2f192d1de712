package mdinline

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPEncode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("**b**"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPEncode(context.Background(), HTTPEncodeRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
		Format: FormatOutline,
	})
	if err != nil {
		t.Fatalf("HTTPEncode: %v", err)
	}
	if out.String() != "bold\n  text \"b\"\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestHTTPEncodeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	cases := []struct {
		name string
		req  HTTPEncodeRequest
		want string
	}{
		{name: "missing url", req: HTTPEncodeRequest{Writer: &bytes.Buffer{}}, want: "URL is required"},
		{name: "missing writer", req: HTTPEncodeRequest{URL: srv.URL}, want: "Writer is nil"},
		{name: "scheme", req: HTTPEncodeRequest{URL: "ftp://example.com/x", Writer: &bytes.Buffer{}}, want: "unsupported scheme"},
		{name: "status", req: HTTPEncodeRequest{URL: srv.URL, Writer: &bytes.Buffer{}}, want: "status 410"},
	}
	for _, tc := range cases {
		err := HTTPEncode(context.Background(), tc.req)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestHandlerParsesBody(t *testing.T) {
	var logs bytes.Buffer
	h := NewHandler(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("**bold**")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	want := `[{"type":"bold","children":[{"type":"text","children":"bold"}]}]` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("body %q, want %q", rec.Body.String(), want)
	}
	if !strings.Contains(logs.String(), "status=200") {
		t.Fatalf("expected request log, got %q", logs.String())
	}
}

func TestHandlerYAML(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/parse?format=yaml", strings.NewReader("||s||")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Fatalf("content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "spoiler") {
		t.Fatalf("expected spoiler in body, got %q", rec.Body.String())
	}
}

func TestHandlerErrors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		target string
		body   string
		opts   []HandlerOption
		status int
	}{
		{name: "method", method: http.MethodGet, target: "/parse", status: http.StatusMethodNotAllowed},
		{name: "format", method: http.MethodPost, target: "/parse?format=outline", body: "x", status: http.StatusBadRequest},
		{name: "utf8", method: http.MethodPost, target: "/parse", body: "\xff\xfe", status: http.StatusBadRequest},
		{name: "too large", method: http.MethodPost, target: "/parse", body: "0123456789", opts: []HandlerOption{WithMaxBodyBytes(4)}, status: http.StatusRequestEntityTooLarge},
		{name: "triple", method: http.MethodPost, target: "/parse", body: "a ***x***", status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		NewHandler(tc.opts...).ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))
		if rec.Code != tc.status {
			t.Fatalf("%s: status %d, want %d (%s)", tc.name, rec.Code, tc.status, rec.Body.String())
		}
		var body errorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode error body: %v", tc.name, err)
		}
		if body.Error == "" {
			t.Fatalf("%s: empty error message", tc.name)
		}
	}
}

func TestHandlerUnsupportedTokenBody(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("a ***x***")))
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token != "BoldOrItalic" || body.Index == nil || *body.Index != 1 {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestHandlerLiteralOption(t *testing.T) {
	rec := httptest.NewRecorder()
	h := NewHandler(WithParseOptions(WithLiteralBoldOrItalic(true)))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("***x***")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	want := `[{"type":"text","children":"***x***"}]` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("body %q, want %q", rec.Body.String(), want)
	}
}
