package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/baedariyo/internal/fallback"
)

type storeDTO struct {
	StorePublicID string `json:"storePublicId"`
	StoreName     string `json:"storeName"`
}

func TestDo_UnwrapsEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/stores/abc" {
			t.Fatalf("path = %s, want /api/stores/abc", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"storePublicId":"abc","storeName":"치킨집"}}`))
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL + "/"})

	var got storeDTO
	err := c.Do(context.Background(), http.MethodGet, "/api/stores/abc", nil, nil, &got)
	require.NoError(t, err)
	assert.Equal(t, storeDTO{StorePublicID: "abc", StoreName: "치킨집"}, got)
}

func TestDo_PlainBodyAndNullData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "plain", body: `{"storePublicId":"x","storeName":"plain"}`},
		{name: "null data", body: `{"data":null,"storePublicId":"x","storeName":"plain"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			var got storeDTO
			err := NewClient(Config{BaseURL: ts.URL}).Do(context.Background(), http.MethodGet, "/", nil, nil, &got)
			require.NoError(t, err)
			assert.Equal(t, "plain", got.StoreName)
		})
	}
}

func TestDo_SendsBodyQueryAndToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "치킨", r.URL.Query().Get("keyword"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"storeName":"created"}}`))
	}))
	defer ts.Close()

	ctx := WithAccessToken(context.Background(), "secret-token")
	q := url.Values{"keyword": {"치킨"}}

	var got storeDTO
	err := NewClient(Config{BaseURL: ts.URL}).Do(ctx, http.MethodPost, "/api/stores", q, map[string]string{"storeName": "x"}, &got)
	require.NoError(t, err)
	assert.Equal(t, "created", got.StoreName)
}

func TestDo_ResponseError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "backend message", status: http.StatusNotFound, body: `{"message":"가게를 찾을 수 없습니다."}`, message: "가게를 찾을 수 없습니다."},
		{name: "generic", status: http.StatusInternalServerError, body: `oops`, message: "request failed with status code 500"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, message: "request failed with status code 401"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := NewClient(Config{BaseURL: ts.URL, RetryMax: 3})
			err := c.Do(context.Background(), http.MethodGet, "/", nil, nil, nil)

			var respErr *ResponseError
			require.True(t, errors.As(err, &respErr), "error %v is not ResponseError", err)
			assert.Equal(t, tt.status, respErr.StatusCode())
			assert.Equal(t, tt.message, respErr.Message)
			assert.False(t, fallback.IsBackendUnavailable(err))
			assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "http statuses must not be retried")
		})
	}
}

func TestDo_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := ts.URL
	ts.Close()

	err := NewClient(Config{BaseURL: addr}).Do(context.Background(), http.MethodGet, "/", nil, nil, nil)

	var trErr *TransportError
	require.True(t, errors.As(err, &trErr), "error %v is not TransportError", err)
	assert.Equal(t, fallback.CodeConnRefused, trErr.Code())
	assert.True(t, fallback.IsBackendUnavailable(err))
}

func TestDo_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Timeout: 50 * time.Millisecond})
	err := c.Do(context.Background(), http.MethodGet, "/", nil, nil, nil)

	var trErr *TransportError
	require.True(t, errors.As(err, &trErr), "error %v is not TransportError", err)
	assert.Equal(t, fallback.CodeTimedOut, trErr.Code())
}

func TestDo_NotConfigured(t *testing.T) {
	err := NewClient(Config{}).Do(context.Background(), http.MethodGet, "/", nil, nil, nil)
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.True(t, fallback.IsBackendUnavailable(err))
}

func TestDo_DecodeErrorIsNotUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"storeName": 5}`))
	}))
	defer ts.Close()

	var got storeDTO
	err := NewClient(Config{BaseURL: ts.URL}).Do(context.Background(), http.MethodGet, "/", nil, nil, &got)
	require.Error(t, err)
	assert.False(t, fallback.IsBackendUnavailable(err))
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", normalizeBaseURL("localhost:8080/"))
	assert.Equal(t, "https://api.example.com", normalizeBaseURL(" https://api.example.com// "))
	assert.Equal(t, "", normalizeBaseURL("  "))
}
