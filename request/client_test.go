package request

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dowjones/factiva-core-go/config"
)

func newTestClient() *Client {
	return NewClient(DefaultClientConfig(), nil, nil)
}

func authHeaders() map[string]string {
	return map[string]string{UserKeyHeader: "abcd1234"}
}

func TestAPISendRequiresHeaders(t *testing.T) {
	client := newTestClient()

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "nil headers", headers: nil},
		{name: "empty headers", headers: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.APISend(context.Background(), Options{
				Method:  "GET",
				URL:     "https://api.dowjones.com/alpha/taxonomies",
				Headers: tt.headers,
			})
			assert.ErrorIs(t, err, ErrMissingHeaders)
		})
	}
}

func TestAPISendRejectsUnsupportedMethods(t *testing.T) {
	client := newTestClient()

	for _, method := range []string{"PUT", "patch", "HEAD", "options", ""} {
		t.Run("method "+method, func(t *testing.T) {
			_, err := client.APISend(context.Background(), Options{
				Method:  method,
				URL:     "https://api.dowjones.com/alpha/taxonomies",
				Headers: authHeaders(),
			})

			var unsupported *UnsupportedMethodError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, method, unsupported.Method)
		})
	}
}

func TestAPISendNormalizesMethodCase(t *testing.T) {
	var seenMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient()

	for _, method := range []string{"get", "Get", " GET "} {
		resp, err := client.APISend(context.Background(), Options{
			Method:  method,
			URL:     server.URL,
			Headers: authHeaders(),
		})
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, seenMethod)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestSendRejectsQueryParametersOffGet(t *testing.T) {
	client := newTestClient()

	_, err := client.APISend(context.Background(), Options{
		Method:  "POST",
		URL:     "https://api.dowjones.com/alpha/extractions",
		Headers: authHeaders(),
		Query:   map[string]string{"limit": "10"},
	})
	assert.ErrorIs(t, err, ErrUnexpectedQueryParameters)
}

func TestSendAppendsQueryParametersToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "analytics", r.URL.Query().Get("type"))
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient()

	resp, err := client.APISend(context.Background(), Options{
		Method:  "GET",
		URL:     server.URL + "/alpha/analytics",
		Headers: authHeaders(),
		Query:   map[string]string{"limit": "10", "type": "analytics"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(resp.Body))
}

func TestSendPostPayloads(t *testing.T) {
	var seenBody []byte
	var seenContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenContentType = r.Header.Get("Content-Type")
		seenBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"state":"created"}`))
	}))
	defer server.Close()

	client := newTestClient()

	t.Run("structured payload is serialized", func(t *testing.T) {
		resp, err := client.APISend(context.Background(), Options{
			Method:  "post",
			URL:     server.URL,
			Headers: authHeaders(),
			Payload: map[string]string{"query": "aapl"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.JSONEq(t, `{"query":"aapl"}`, string(seenBody))
		assert.Equal(t, "application/json", seenContentType)
	})

	t.Run("JSON string passes through verbatim", func(t *testing.T) {
		_, err := client.APISend(context.Background(), Options{
			Method:  "POST",
			URL:     server.URL,
			Headers: authHeaders(),
			Payload: `{"query":"msft"}`,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"query":"msft"}`, string(seenBody))
	})

	t.Run("invalid JSON string fails", func(t *testing.T) {
		_, err := client.APISend(context.Background(), Options{
			Method:  "POST",
			URL:     server.URL,
			Headers: authHeaders(),
			Payload: `{"query":`,
		})
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("scalar payload fails", func(t *testing.T) {
		_, err := client.APISend(context.Background(), Options{
			Method:  "POST",
			URL:     server.URL,
			Headers: authHeaders(),
			Payload: 42,
		})
		assert.ErrorIs(t, err, ErrInvalidPayload)
	})
}

func TestSendBufferedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abcd1234", r.Header.Get(UserKeyHeader))
		w.Header().Set("X-Request-Token", "token-1")
		w.Write([]byte(`{"data":{"id":"snapshot-1"}}`))
	}))
	defer server.Close()

	client := newTestClient()

	resp, err := client.APISend(context.Background(), Options{
		Method:  "GET",
		URL:     server.URL,
		Headers: authHeaders(),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "token-1", resp.Headers["X-Request-Token"])
	assert.GreaterOrEqual(t, resp.DurationMs, int64(0))

	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, resp.JSON(&payload))
	assert.Equal(t, "snapshot-1", payload.Data.ID)
}

func TestSendStreamedResponse(t *testing.T) {
	content := "id,name\n1,apple\n2,microsoft\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer server.Close()

	client := newTestClient()
	destination := filepath.Join(t.TempDir(), "companies.csv")

	resp, err := client.APISend(context.Background(), Options{
		Method:   "GET",
		URL:      server.URL,
		Headers:  authHeaders(),
		Mode:     ModeStreamed,
		FileName: destination,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)

	written, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, content, string(written))
}

func TestSendTranslates403(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient()

	_, err := client.APISend(context.Background(), Options{
		Method:  "GET",
		URL:     server.URL,
		Headers: authHeaders(),
	})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.True(t, httpErr.IsInvalidAPIKey())
	assert.Contains(t, httpErr.Error(), "invalid or inactive")
}

func TestSendTranslatesVendorErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[
			{"title":"Invalid query", "detail":"where clause is malformed"},
			{"title":"Missing field", "detail":"query is required"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient()

	_, err := client.APISend(context.Background(), Options{
		Method:  "GET",
		URL:     server.URL,
		Headers: authHeaders(),
	})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "Invalid query: where clause is malformed, Missing field: query is required", httpErr.Message)
}

func TestSendTranslatesOpaqueFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("oops"))
	}))
	defer server.Close()

	client := newTestClient()

	_, err := client.APISend(context.Background(), Options{
		Method:  "GET",
		URL:     server.URL,
		Headers: authHeaders(),
	})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "unexpected API error")
}

func TestNewClientAttachesProxy(t *testing.T) {
	provider := config.MapProvider{
		config.KeyProxyUse:      "true",
		config.KeyProxyProtocol: "http",
		config.KeyProxyHost:     "proxy.internal",
		config.KeyProxyPort:     "8080",
	}

	client := NewClient(DefaultClientConfig(), provider, nil)

	transport, ok := client.httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.Proxy)

	req, err := http.NewRequest(http.MethodGet, "https://api.dowjones.com/alpha/taxonomies", nil)
	require.NoError(t, err)
	proxyURL, err := transport.Proxy(req)
	require.NoError(t, err)
	require.NotNil(t, proxyURL)
	assert.Equal(t, "http://proxy.internal:8080", proxyURL.String())
}

func TestNewClientWithoutProxyKeepsDefaultPolicy(t *testing.T) {
	client := NewClient(DefaultClientConfig(), config.MapProvider{}, nil)

	transport, ok := client.httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	// The cloned default transport keeps the environment-based proxy policy.
	assert.NotNil(t, transport)
}
