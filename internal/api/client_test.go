package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"valid", "http://127.0.0.1:8000", false},
		{"valid with path", "http://127.0.0.1:8000/api", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"relative", "/get_article", true},
		{"unsupported scheme", "ftp://127.0.0.1:8000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := NewClient("")
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}

func TestClient_Get(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/get_article", r.URL.Path)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Go", r.URL.Query().Get("url"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, DefaultUserAgent, r.Header.Get(UserAgentHeader))

		w.Header().Set(ContentTypeHeader, ContentTypeJSON)
		_, _ = w.Write([]byte(`{"sourceArticle":"Go is a language."}`))
	})

	var out struct {
		SourceArticle string `json:"sourceArticle"`
	}
	err := c.Get(context.Background(), "/get_article", url.Values{"url": {"https://en.wikipedia.org/wiki/Go"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Go is a language.", out.SourceArticle)
}

func TestClient_Post(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, ContentTypeJSON, r.Header.Get(ContentTypeHeader))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "a", body["text"])

		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Post(context.Background(), "compare", map[string]string{"text": "a"}, &out))
	assert.True(t, out.OK)
}

func TestClient_RequestIDsAreUnique(t *testing.T) {
	seen := make(chan string, 2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Get(context.Background(), "/a", nil, nil))
	require.NoError(t, c.Get(context.Background(), "/b", nil, nil))

	first, second := <-seen, <-seen
	assert.NotEqual(t, first, second)
}

func TestClient_APIErrorWithDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Article not found."}`))
	})

	err := c.Get(context.Background(), "/get_article", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Article not found.", apiErr.Message)
	assert.Equal(t, `{"detail":"Article not found."}`, apiErr.Body)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Article not found.")
}

func TestClient_APIErrorGeneric(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	})

	err := c.Get(context.Background(), "/get_article", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "unexpected status 500", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c, err := NewClient(baseURL)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/get_article", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/get_article", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	var out map[string]any
	err := c.Get(context.Background(), "/get_article", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestClient_Endpoint(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:8000/base/")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000/base/get_article?url=x", c.endpoint("/get_article", url.Values{"url": {"x"}}))
	assert.Equal(t, "http://127.0.0.1:8000/base/symmetry/v1/articles/compare", c.endpoint("symmetry/v1/articles/compare", nil))
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"string detail", `{"detail":"Invalid article path."}`, "Invalid article path."},
		{"validation detail", `{"detail":[{"msg":"field required"},{"msg":"value is not a valid float"}]}`, "field required; value is not a valid float"},
		{"message field", `{"message":"backend busy"}`, "backend busy"},
		{"empty detail", `{"detail":""}`, "unexpected status 400"},
		{"plain text", `oops`, "unexpected status 400"},
		{"empty body", ``, "unexpected status 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDetail(http.StatusBadRequest, []byte(tt.body)))
		})
	}
}
