// Package request dispatches single HTTP requests against the Factiva API.
// It wraps net/http with proxy injection from configuration, optional
// streaming of the response body to disk, and translation of vendor error
// payloads into typed HTTP errors. Every call issues exactly one request;
// failures are terminal and surfaced to the caller.
package request

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dowjones/factiva-core-go/config"
	"github.com/dowjones/factiva-core-go/observability/types"
	"github.com/dowjones/factiva-core-go/tools"
)

// ClientConfig holds dispatcher configuration.
type ClientConfig struct {
	// Timeout bounds the whole request. Zero means no timeout.
	Timeout time.Duration
	// UserAgent is sent when the caller's headers don't set one.
	UserAgent string
}

// DefaultClientConfig returns the stock dispatcher configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		UserAgent: "factiva-core-go/1.0",
	}
}

// Client dispatches requests. It is safe for concurrent use; each call is an
// independent request/response cycle.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	logger     types.Logger
	metrics    types.Metrics
}

// NewClient builds a dispatcher. Proxy settings are resolved from provider
// once, at construction: a nil resolution means direct connections. A nil
// observability provider disables logging and metrics.
func NewClient(cfg ClientConfig, provider config.Provider, obs types.Provider) *Client {
	if obs == nil {
		obs = types.Nop()
	}
	logger := obs.Logger("request")

	transport := newTransport(provider, logger)

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		cfg:     cfg,
		logger:  logger,
		metrics: obs.Metrics("request"),
	}
}

// newTransport clones the default transport and attaches the configured proxy
// when one resolves.
func newTransport(provider config.Provider, logger types.Logger) *http.Transport {
	var transport *http.Transport
	if base, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = base.Clone()
	} else {
		transport = &http.Transport{}
	}

	if provider == nil {
		return transport
	}

	proxy := config.ResolveProxy(provider)
	if proxy == nil {
		return transport
	}

	proxyURL, err := proxy.URL()
	if err != nil {
		logger.Warn(context.Background(), "ignoring unusable proxy configuration", types.Fields{
			"proxy_host": proxy.Host,
			"reason":     err.Error(),
		})
		return transport
	}

	transport.Proxy = http.ProxyURL(proxyURL)
	return transport
}

// APISend is the public dispatch contract. It requires a non-empty header map
// and a method among GET, POST and DELETE (case-insensitive), normalizes the
// method to upper case and delegates to the dispatch primitive.
func (c *Client) APISend(ctx context.Context, opts Options) (*Response, error) {
	if len(opts.Headers) == 0 {
		return nil, ErrMissingHeaders
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, &UnsupportedMethodError{Method: opts.Method}
	}
	opts.Method = method

	return c.send(ctx, opts)
}

// send is the dispatch primitive. It validates the option shape, issues
// exactly one request, and either buffers or streams the response body.
func (c *Client) send(ctx context.Context, opts Options) (*Response, error) {
	requestID := uuid.NewString()
	log := c.logger.WithFields(types.Fields{
		"request_id": requestID,
		"method":     opts.Method,
		"url":        opts.URL,
	})

	if len(opts.Query) > 0 && opts.Method != http.MethodGet {
		return nil, ErrUnexpectedQueryParameters
	}

	body, hasBody, err := encodePayload(opts)
	if err != nil {
		return nil, err
	}

	target, err := buildURL(opts.URL, opts.Query)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	if hasBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("User-Agent") == "" && c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	c.metrics.StartOperation("request")
	defer c.metrics.EndOperation("request")

	start := time.Now()
	defer func() {
		c.metrics.RecordDuration("request", time.Since(start).Seconds())
	}()

	log.Debug(ctx, "dispatching request", nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordError("request", "transport")
		log.Error(ctx, "request failed", err, nil)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(resp.Body)
		httpErr := newHTTPError(resp.StatusCode, resp.Status, detail)
		c.metrics.RecordError("request", fmt.Sprintf("http_%d", resp.StatusCode))
		log.Error(ctx, "vendor returned a failure response", httpErr, types.Fields{
			"status_code": resp.StatusCode,
		})
		return nil, httpErr
	}

	if opts.Mode == ModeStreamed {
		return c.streamBody(ctx, resp, opts.FileName, start, log)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordError("request", "read")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.metrics.RecordSuccess("request")
	log.Debug(ctx, "request completed", types.Fields{
		"status_code": resp.StatusCode,
		"bytes":       len(respBody),
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    flattenHeaders(resp.Header),
		Body:       respBody,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

// streamBody writes the response body to the destination file, resolving only
// once the body is fully written.
func (c *Client) streamBody(ctx context.Context, resp *http.Response, fileName string, start time.Time, log types.Logger) (*Response, error) {
	if fileName == "" {
		fileName = DefaultStreamFileName
	}

	file, err := os.Create(fileName)
	if err != nil {
		c.metrics.RecordError("request", "stream_open")
		return nil, fmt.Errorf("failed to open destination file: %w", err)
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		c.metrics.RecordError("request", "stream_write")
		log.Error(ctx, "response stream failed", err, types.Fields{"file": fileName})
		return nil, fmt.Errorf("failed to stream response to %s: %w", fileName, err)
	}

	c.metrics.RecordSuccess("request")
	c.metrics.RecordFileSize("stream", written)
	log.Info(ctx, "response streamed to file", types.Fields{
		"file":  fileName,
		"bytes": written,
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    flattenHeaders(resp.Header),
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

// encodePayload turns the POST payload into a body reader. Structured values
// are serialized; strings must already hold valid JSON. Payloads on non-POST
// methods are ignored, matching the dispatch contract.
func encodePayload(opts Options) (io.Reader, bool, error) {
	if opts.Method != http.MethodPost || opts.Payload == nil {
		return nil, false, nil
	}

	switch payload := opts.Payload.(type) {
	case string:
		if !json.Valid([]byte(payload)) {
			return nil, false, ErrInvalidPayload
		}
		return strings.NewReader(payload), true, nil
	default:
		if err := tools.ValidateType(payload, tools.KindObject, ErrInvalidPayload.Error()); err != nil {
			return nil, false, ErrInvalidPayload
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, false, ErrInvalidPayload
		}
		return strings.NewReader(string(encoded)), true, nil
	}
}

func buildURL(raw string, query map[string]string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		values := u.Query()
		for key, value := range query {
			values.Set(key, value)
		}
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for key := range header {
		flat[key] = header.Get(key)
	}
	return flat
}
