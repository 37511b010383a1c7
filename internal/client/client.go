package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fivetwenty-io/sparkle/internal/auth"
	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/internal/http"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
)

// Static errors for err113 compliance.
var (
	ErrBaseURIRequired = errors.New("base URI is required")
)

// Client implements the sparkle.Client interface.
type Client struct {
	httpClient *http.Client
	baseURI    string
	logger     sparkle.Logger

	schemaMu    sync.Mutex
	schema      *sparkle.Schema
	collections map[string]sparkle.Collection
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *sparkle.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// defaultHeaders merges configured headers with the credential header.
// Credentials win over a configured Authorization header.
func defaultHeaders(config *sparkle.Config) (map[string]string, error) {
	creds, err := auth.FromConfig(config.Token, config.Username, config.Password)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(config.Headers)+1)
	for k, v := range config.Headers {
		headers[k] = v
	}

	for k, v := range auth.Headers(creds) {
		headers[k] = v
	}

	return headers, nil
}

// New creates a client, fetches the API schema and builds the root
// collections.
func New(ctx context.Context, config *sparkle.Config) (*Client, error) {
	if config == nil {
		return nil, sparkle.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	headers, err := defaultHeaders(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(headers, createHTTPClientOptions(config)...)

	client, err := NewWithHTTPClient(config.BaseURI, httpClient, config.Logger)
	if err != nil {
		return nil, err
	}

	_, err = client.Schema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema: %w", err)
	}

	return client, nil
}

// NewWithHTTPClient creates a client over an existing transport. The schema
// is fetched on first use.
func NewWithHTTPClient(baseURI string, httpClient *http.Client, logger sparkle.Logger) (*Client, error) {
	baseURI = strings.TrimSuffix(baseURI, "/")
	if baseURI == "" {
		return nil, ErrBaseURIRequired
	}

	return &Client{
		httpClient: httpClient,
		baseURI:    baseURI,
		logger:     logger,
	}, nil
}

// BaseURI returns the API root.
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Schema returns the API schema, fetching it once. A failed fetch is not
// remembered and the next call tries again.
func (c *Client) Schema(ctx context.Context) (*sparkle.Schema, error) {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()

	if c.schema != nil {
		return c.schema, nil
	}

	resp, err := c.httpClient.Get(ctx, c.baseURI+constants.SchemaPath, nil)
	if err != nil {
		return nil, err
	}

	var children map[string]*sparkle.Schema

	err = json.Unmarshal(resp.Body, &children)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sparkle.ErrInvalidSchema, err)
	}

	schema := sparkle.NewRootSchema(children)

	err = schema.Validate()
	if err != nil {
		return nil, err
	}

	collections := make(map[string]sparkle.Collection, len(schema.Children))
	for name, child := range schema.Children {
		collections[normalizeName(name)] = newCollection(c, childURI(c.baseURI, name), child)
	}

	c.schema = schema
	c.collections = collections

	if c.logger != nil {
		c.logger.Debug("schema loaded", map[string]interface{}{
			"base_uri":    c.baseURI,
			"collections": len(collections),
		})
	}

	return schema, nil
}

// Collection returns a root collection by name.
func (c *Client) Collection(name string) (sparkle.Collection, bool) {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()

	collection, ok := c.collections[normalizeName(name)]

	return collection, ok
}

// Collections returns the root collections keyed by normalized name.
func (c *Client) Collections() map[string]sparkle.Collection {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()

	out := make(map[string]sparkle.Collection, len(c.collections))
	for name, collection := range c.collections {
		out[name] = collection
	}

	return out
}

// CollectionNames returns the normalized root collection names, sorted.
func (c *Client) CollectionNames() []string {
	return sortedNames(c.Collections())
}

// Request performs one round trip and returns the decoded JSON body, or the
// raw body bytes when the response is not JSON.
func (c *Client) Request(ctx context.Context, uri, method string, body interface{}, headers map[string]string) (interface{}, error) {
	resp, err := c.do(ctx, uri, method, body, headers)
	if err != nil {
		return nil, err
	}

	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, uri, method string, body interface{}, headers map[string]string) (*http.Response, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  method,
		URI:     uri,
		Body:    body,
		Headers: headers,
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func sortedNames(collections map[string]sparkle.Collection) []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var (
	_ sparkle.Client     = (*Client)(nil)
	_ sparkle.Collection = (*collection)(nil)
	_ sparkle.Entity     = (*entity)(nil)
)
