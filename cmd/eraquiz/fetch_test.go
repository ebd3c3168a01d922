package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", t.TempDir()))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFetch_PrintsEra(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"era":"1989","image_url":"https://cdn/1989.jpg"}`))
	}))
	defer srv.Close()

	out, err := runRoot(t, "fetch", "--endpoint", srv.URL+"/api/quiz", "--email", "swiftie@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Era: 1989\n")
	assert.Contains(t, out, "Image: https://cdn/1989.jpg\n")
	assert.Empty(t, gotQuery, "the email is not sent")
}

func TestFetch_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	out, err := runRoot(t, "fetch", "--endpoint", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No result data available.")
}

func TestFetch_RequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := runRoot(t, "fetch", "--endpoint", srv.URL)
	require.Error(t, err)
	assert.Equal(t, "Request failed: 503", err.Error())
}
