// Package apitest stands up fake REST backends for client, manager and CLI tests.
package apitest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/tidwall/gjson"
)

// Call is one request received by a Backend.
type Call struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON returns the value at path in the request body.
func (c Call) JSON(path string) gjson.Result {
	return gjson.GetBytes(c.Body, path)
}

// Backend is an httptest server whose routes are huma operations.
type Backend struct {
	*httptest.Server
	API huma.API
	Mux *http.ServeMux

	mu    sync.Mutex
	calls []Call
}

func NewBackend(t testing.TB, title string) *Backend {
	t.Helper()

	mux := http.NewServeMux()
	config := huma.DefaultConfig(title, "1.0.0")
	config.DocsPath = ""
	b := &Backend{
		API: humago.New(mux, config),
		Mux: mux,
	}
	b.Server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// Calls returns the recorded requests for method and path, in arrival order.
func (b *Backend) Calls(method, path string) []Call {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Call
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) CallCount(method, path string) int {
	return len(b.Calls(method, path))
}

// TotalCalls counts every recorded request.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

// Response is the output of every fake operation. A zero Status means 200.
type Response struct {
	Status int
	Body   any
}

func OK(body any) (*Response, error) {
	return &Response{Body: body}, nil
}

type NoInput struct{}

type IDInput struct {
	ID int `path:"id"`
}

type BodyInput struct {
	Body map[string]any
}

type IDBodyInput struct {
	ID   int `path:"id"`
	Body map[string]any
}

// Register adds a fake operation to b.
func Register[I any](b *Backend, method, path string, handler func(context.Context, *I) (*Response, error)) {
	huma.Register(b.API, huma.Operation{
		OperationID: operationID(method, path),
		Method:      method,
		Path:        path,
	}, handler)
}

// Raw adds a plain handler, for responses huma would not produce (HTML errors, empty bodies).
func (b *Backend) Raw(method, path string, handler http.HandlerFunc) {
	b.Mux.HandleFunc(method+" "+path, handler)
}

func operationID(method, path string) string {
	replacer := strings.NewReplacer("/", "-", "{", "", "}", "")
	slug := strings.Trim(replacer.Replace(path), "-")
	if slug == "" {
		slug = "root"
	}
	return strings.ToLower(method) + "-" + slug
}
