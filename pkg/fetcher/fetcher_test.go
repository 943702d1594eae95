package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchParsesPage(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Hi</title></head><body><h1>Hello</h1></body></html>`))
	}))
	defer server.Close()

	f := New(5*time.Second, "blogsmith-test/1.0")
	doc, err := f.Fetch(context.Background(), server.URL+"/blog")
	require.NoError(t, err)

	assert.Equal(t, "blogsmith-test/1.0", gotUA)
	assert.Equal(t, server.URL+"/blog", doc.URL.String())
	assert.Equal(t, "Hello", doc.Root.Find("h1").Text())
	assert.Contains(t, string(doc.Body), "<title>Hi</title>")
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(5*time.Second, "blogsmith-test/1.0")
	_, err := f.Fetch(context.Background(), server.URL)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	f := New(20*time.Millisecond, "blogsmith-test/1.0")
	_, err := f.Fetch(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Moved</h1></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(5*time.Second, "blogsmith-test/1.0")
	doc, err := f.Fetch(context.Background(), server.URL+"/old")
	require.NoError(t, err)

	assert.Equal(t, "Moved", doc.Root.Find("h1").Text())
}

func TestNewDocumentInvalidURL(t *testing.T) {
	_, err := NewDocument("://bad", strings.NewReader("<html></html>"))
	assert.Error(t, err)
}
