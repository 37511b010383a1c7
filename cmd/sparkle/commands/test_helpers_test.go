package commands_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const testSchema = `{
	"hosts": {"pkey": "id", "children": {"nics": {"pkey": "mac", "children": {}}}},
	"tenants": {"pkey": "uuid", "children": {}}
}`

// apiCall is one request seen by the test API.
type apiCall struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// testAPI answers schema, collection and entity requests for hosts.
type testAPI struct {
	mu    sync.Mutex
	calls []apiCall
}

func (a *testAPI) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	a.mu.Lock()
	a.calls = append(a.calls, apiCall{
		Method: request.Method,
		Path:   request.RequestURI,
		Auth:   request.Header.Get("Authorization"),
		Body:   string(body),
	})
	a.mu.Unlock()

	writer.Header().Set("Content-Type", "application/json")

	switch request.Method + " " + request.RequestURI {
	case "GET /v1/schema":
		_, _ = writer.Write([]byte(testSchema))
	case "GET /v1/hosts/":
		_, _ = writer.Write([]byte(`{"h2": {}, "h1": {}}`))
	case "GET /v1/hosts/h1":
		_, _ = writer.Write([]byte(`{"desired": {"id": "h1", "cpus": 4}, "current": {"id": "h1", "cpus": 2}}`))
	case "POST /v1/hosts/", "PATCH /v1/hosts/", "PATCH /v1/hosts/h1", "DELETE /v1/hosts/h1":
		_, _ = writer.Write([]byte(`{"ok": true}`))
	default:
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error": "not-found", "message": "no such thing"}`))
	}
}

func (a *testAPI) lastCall() apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.calls) == 0 {
		return apiCall{}
	}

	return a.calls[len(a.calls)-1]
}

func (a *testAPI) count(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0

	for _, call := range a.calls {
		if call.Method == method && call.Path == path {
			n++
		}
	}

	return n
}

// setupAPI starts the test API and points viper at it. viper is global, so
// tests using it do not run in parallel.
func setupAPI(t *testing.T, output string) *testAPI {
	t.Helper()

	api := &testAPI{}
	server := httptest.NewServer(api)

	viper.Reset()
	viper.Set("api", server.URL+"/v1")
	viper.Set("token", "cli-token")
	viper.Set("output", output)

	t.Cleanup(func() {
		server.Close()
		viper.Reset()
	})

	return api
}

// run executes cmd with args and returns what it printed.
func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}
