package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "k1", r.Header.Get("apikey"))
		require.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "a=eq.1", r.URL.RawQuery)

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"echo": in["name"]})
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", time.Second)
	require.NoError(t, err)
	c.Headers = map[string]string{"apikey": "k1", "Authorization": "Bearer default"}

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "items?a=eq.1",
		map[string]string{"Authorization": "Bearer t"},
		map[string]any{"name": "Rex"}, &out)
	require.NoError(t, err)
	require.Equal(t, "Rex", out.Echo)
}

func TestDoJSON_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusConflict)
	}))
	defer ts.Close()

	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, ts.URL, nil, nil, nil)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusConflict, he.StatusCode)
	require.Equal(t, "nope", he.Body)
	require.Equal(t, http.StatusConflict, StatusCode(fmt.Errorf("wrapped: %w", err)))
}

func TestDoJSON_NoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := New(time.Second)
	var out []map[string]any
	require.NoError(t, c.DoJSON(context.Background(), http.MethodDelete, ts.URL, nil, nil, &out))
	require.Nil(t, out)
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/x")
	require.Error(t, err)

	_, err = c.resolveURL("  ")
	require.Error(t, err)

	c.BaseURL = "http://h"
	u, err := c.resolveURL("x")
	require.NoError(t, err)
	require.Equal(t, "http://h/x", u)
}
