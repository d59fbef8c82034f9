// Package api executes requests against the Quodo REST API: it builds the
// request URI and JSON body, dispatches, classifies the response and decodes
// success bodies into typed results or generic documents.
//
// All methods are safe for concurrent use; the client is immutable after
// construction.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/retryhttp"
	"github.com/klauspost/compress/gzhttp"
)

// Authorizer decorates every outgoing API request with credentials.
// It is never applied to part-descriptor uploads, which carry their own
// single-use credentials.
type Authorizer interface {
	Decorate(req *http.Request)
}

// TokenAuthorizer sets a bearer token on outgoing requests.
type TokenAuthorizer struct {
	Token string
}

// Decorate ...
func (a TokenAuthorizer) Decorate(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.Token))
}

// DecodeErrorHandler is invoked when a success body cannot be decoded.
// The call still completes with a zero-value result, so malformed content is
// recoverable by default.
type DecodeErrorHandler func(err error)

// Client is the request execution pipeline.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	authorizer    Authorizer
	logger        log.Logger
	onDecodeError DecodeErrorHandler
}

// ClientOpts configures NewClient. BaseURL is required; everything else has
// a default.
type ClientOpts struct {
	BaseURL       string
	Authorizer    Authorizer
	HTTPClient    *http.Client
	Logger        log.Logger
	OnDecodeError DecodeErrorHandler
}

// NewClient creates an API client.
func NewClient(opts ClientOpts) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = DefaultHTTPClient(logger)
	}
	onDecodeError := opts.OnDecodeError
	if onDecodeError == nil {
		onDecodeError = func(err error) {
			logger.Warnf("decode response: %s", err)
		}
	}
	return &Client{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		authorizer:    opts.Authorizer,
		logger:        logger,
		onDecodeError: onDecodeError,
	}
}

// DefaultHTTPClient builds the client used when none is supplied: transparent
// gzip responses, no retries. Retry policy is a caller concern and can be
// layered on by raising RetryMax before calling StandardClient.
func DefaultHTTPClient(logger log.Logger) *http.Client {
	if logger == nil {
		logger = log.NewLogger()
	}
	retryableClient := retryhttp.NewClient(logger)
	retryableClient.RetryMax = 0
	client := retryableClient.StandardClient()
	client.Transport = gzhttp.Transport(client.Transport)
	return client
}

// Get issues a GET and returns the response as a generic document.
func (c *Client) Get(ctx context.Context, path string, params *Params) (*Document, error) {
	return c.Send(ctx, http.MethodGet, path, params, nil)
}

// GetInto issues a GET and decodes the response into out.
func (c *Client) GetInto(ctx context.Context, path string, params *Params, out interface{}) error {
	return c.SendInto(ctx, http.MethodGet, path, params, nil, out)
}

// Patch issues a PATCH (partial update) and returns the response as a
// generic document.
func (c *Client) Patch(ctx context.Context, path string, params *Params, body Body) (*Document, error) {
	return c.Send(ctx, http.MethodPatch, path, params, body)
}

// PatchInto issues a PATCH and decodes the response into out.
func (c *Client) PatchInto(ctx context.Context, path string, params *Params, body Body, out interface{}) error {
	return c.SendInto(ctx, http.MethodPatch, path, params, body, out)
}

// Send issues a request with an arbitrary verb and returns the response as a
// generic document.
func (c *Client) Send(ctx context.Context, method, path string, params *Params, body Body) (*Document, error) {
	resp, err := c.Do(ctx, method, path, params, body)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(resp.Body)
	doc, err := ParseDocument(resp.Body)
	if err != nil {
		c.onDecodeError(fmt.Errorf("decode %s %s response: %w", method, path, err))
		return &Document{}, nil
	}
	return doc, nil
}

// SendInto issues a request with an arbitrary verb and decodes the response
// into out.
func (c *Client) SendInto(ctx context.Context, method, path string, params *Params, body Body, out interface{}) error {
	resp, err := c.Do(ctx, method, path, params, body)
	if err != nil {
		return err
	}
	defer c.closeBody(resp.Body)
	if err := decodeInto(resp.Body, out); err != nil {
		c.onDecodeError(fmt.Errorf("decode %s %s response: %w", method, path, err))
	}
	return nil
}

// decodeInto decodes into a scratch value first, so a malformed body leaves
// out untouched instead of partially populated.
func decodeInto(r io.Reader, out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return json.NewDecoder(r).Decode(out)
	}
	scratch := reflect.New(rv.Type().Elem())
	if err := json.NewDecoder(r).Decode(scratch.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

// Do executes a request and returns the raw response. On success the caller
// owns resp.Body. Outcomes are classified in order: context cancellation,
// non-success status (anything outside 2xx except 302 Found), transport
// fault, success.
func (c *Client) Do(ctx context.Context, method, path string, params *Params, body Body) (*http.Response, error) {
	requestURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if query := params.Encode(); query != "" {
		requestURL += "?" + query
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := encodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorizer != nil {
		c.authorizer.Decorate(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s %s canceled: %w", method, path, ctx.Err())
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !isSuccessStatus(resp.StatusCode) {
		defer c.closeBody(resp.Body)
		return nil, ServiceErrorFromResponse(resp)
	}
	return resp, nil
}

// isSuccessStatus treats 302 Found as a pass-through success: the service
// answers content lookups with a redirect to the storage location.
func isSuccessStatus(code int) bool {
	return (code >= 200 && code <= 299) || code == http.StatusFound
}

func (c *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.Warnf("failed to close response body: %s", err)
	}
}
