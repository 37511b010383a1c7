package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"hosts": {
		"pkey": "id",
		"children": {
			"disk-images": {"pkey": "name", "children": {}},
			"nics": {"pkey": "mac"}
		}
	},
	"tenants": {"pkey": "uuid", "children": {}}
}`

// recordedRequest is one call seen by the fake API.
type recordedRequest struct {
	Method string
	URI    string
	Header http.Header
	Body   []byte
}

// cannedResponse is what the fake API answers for a route.
type cannedResponse struct {
	Status      int
	ContentType string
	Body        string
}

// fakeAPI serves a schema at /v1/schema and canned responses elsewhere.
type fakeAPI struct {
	mu       sync.Mutex
	schema   string
	routes   map[string]cannedResponse
	requests []recordedRequest
}

func newFakeAPI(t *testing.T, schema string) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{
		schema: schema,
		routes: map[string]cannedResponse{},
	}

	server := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(server.Close)

	return api, server
}

// on registers a response for "METHOD /raw/request/uri".
func (a *fakeAPI) on(method, uri string, resp cannedResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}

	if resp.ContentType == "" {
		resp.ContentType = "application/json"
	}

	a.routes[method+" "+uri] = resp
}

func (a *fakeAPI) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	a.mu.Lock()
	a.requests = append(a.requests, recordedRequest{
		Method: request.Method,
		URI:    request.RequestURI,
		Header: request.Header.Clone(),
		Body:   body,
	})
	route, ok := a.routes[request.Method+" "+request.RequestURI]
	schema := a.schema
	a.mu.Unlock()

	if request.Method == http.MethodGet && request.RequestURI == "/v1/schema" {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(schema))

		return
	}

	if !ok {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error":"not-found","message":"no such route"}`))

		return
	}

	writer.Header().Set("Content-Type", route.ContentType)
	writer.WriteHeader(route.Status)
	_, _ = writer.Write([]byte(route.Body))
}

// count returns how many requests matched method and uri.
func (a *fakeAPI) count(method, uri string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0

	for _, req := range a.requests {
		if req.Method == method && req.URI == uri {
			n++
		}
	}

	return n
}

// total returns the number of requests served.
func (a *fakeAPI) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.requests)
}

// last returns the most recent request.
func (a *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()

	a.mu.Lock()
	defer a.mu.Unlock()

	require.NotEmpty(t, a.requests)

	return a.requests[len(a.requests)-1]
}

// newTestClient builds a client against server with the schema loaded.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := New(context.Background(), &sparkle.Config{
		BaseURI: server.URL + "/v1",
		Token:   "test-token",
	})
	require.NoError(t, err)

	return client
}

func decodePatch(t *testing.T, body []byte) []map[string]interface{} {
	t.Helper()

	var ops []map[string]interface{}

	require.NoError(t, json.Unmarshal(body, &ops))

	return ops
}
