package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fivetwenty-io/sparkle/internal/constants"
	"github.com/fivetwenty-io/sparkle/pkg/sparkle"
	"github.com/hashicorp/go-retryablehttp"
)

// Client performs single round trips against the API. It never retries.
type Client struct {
	httpClient     *retryablehttp.Client
	defaultHeaders map[string]string
	logger         sparkle.Logger
	debug          bool
	userAgent      string
	interceptors   *sparkle.InterceptorChain
}

// Request describes one call. URI is absolute.
type Request struct {
	Method  string
	URI     string
	Body    interface{}
	Headers map[string]string
}

// Response is the outcome of a call. Data holds the decoded JSON body when
// JSON is true, otherwise the raw body bytes.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Data       interface{}
	JSON       bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger sparkle.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout overrides the transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors runs the chain around every request.
func WithInterceptors(chain *sparkle.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// NewClient creates a client that sends defaultHeaders on every request.
func NewClient(defaultHeaders map[string]string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	headers := make(map[string]string, len(defaultHeaders))
	for k, v := range defaultHeaders {
		headers[k] = v
	}

	client := &Client{
		httpClient:     retryClient,
		defaultHeaders: headers,
		userAgent:      constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// neverRetry hands transport and context errors straight back to Do.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// Do performs the request. Any status other than 200 yields a
// *sparkle.RequestError together with the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	headers := make(http.Header)
	for k, v := range c.defaultHeaders {
		headers.Set(k, v)
	}

	if c.userAgent != "" {
		headers.Set(constants.HeaderUserAgent, c.userAgent)
	}

	if contentType != "" {
		headers.Set(constants.HeaderContentType, contentType)
	}

	for k, v := range req.Headers {
		headers.Set(k, v)
	}

	interceptReq := &sparkle.Request{
		Method:  req.Method,
		URI:     req.URI,
		Headers: headers,
		Body:    body,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq)
		if err != nil {
			return nil, err
		}
	}

	var rawBody interface{}
	if interceptReq.Body != nil {
		rawBody = interceptReq.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, interceptReq.Method, interceptReq.URI, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header = interceptReq.Headers

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": interceptReq.Method,
		"uri":    interceptReq.URI,
	})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		err = fmt.Errorf("%s %s: %w", interceptReq.Method, interceptReq.URI, err)
		c.afterResponse(ctx, interceptReq, &sparkle.Response{Error: err})

		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Data:       respBody,
	}

	var resultErr error

	if isJSON(resp.Header.Get(constants.HeaderContentType)) {
		data, decodeErr := decodeJSON(respBody)

		switch {
		case decodeErr == nil:
			response.Data = data
			response.JSON = true
		case resp.StatusCode == constants.HTTPStatusOK:
			resultErr = fmt.Errorf("failed to decode response body: %w", decodeErr)
		default:
			response.Data = nil
		}
	}

	if resp.StatusCode != constants.HTTPStatusOK {
		resultErr = sparkle.NewRequestError(resp.StatusCode, response.Data)
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"method":      interceptReq.Method,
		"uri":         interceptReq.URI,
		"status_code": resp.StatusCode,
	})

	c.afterResponse(ctx, interceptReq, &sparkle.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Error:      resultErr,
	})

	return response, resultErr
}

func (c *Client) afterResponse(ctx context.Context, req *sparkle.Request, resp *sparkle.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, uri string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URI: uri, Headers: headers})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, uri string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, URI: uri, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, uri string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, URI: uri, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, uri string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, URI: uri, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, uri string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, URI: uri})
}

// encodeBody sends []byte as-is and JSON-encodes anything else.
func encodeBody(body interface{}) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "", nil
	case json.RawMessage:
		return b, constants.ContentTypeJSON, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	return data, constants.ContentTypeJSON, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == constants.ContentTypeJSON
}

// decodeJSON decodes a body keeping numbers as json.Number. An empty body
// decodes to nil.
func decodeJSON(body []byte) (interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var data interface{}

	err := decoder.Decode(&data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// leveledLogger feeds retryablehttp's own log lines into a sparkle.Logger.
type leveledLogger struct {
	logger sparkle.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsOf(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsOf(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsOf(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsOf(keysAndValues))
}

func fieldsOf(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
