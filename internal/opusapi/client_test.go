package opusapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Corpora(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("corpora") != "True" {
			t.Errorf("expected corpora=True query, got %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"corpora": []string{"Books", "ParaCrawl", "Tatoeba"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	corpora, err := c.Corpora(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpora) != 3 {
		t.Fatalf("expected 3 corpora, got %d", len(corpora))
	}
	if corpora[1] != "ParaCrawl" {
		t.Errorf("expected ParaCrawl, got %q", corpora[1])
	}
}

func TestClient_Languages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("languages") != "True" || q.Get("corpus") != "Books" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"languages": []string{"de", "en", "fr"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	langs, err := c.Languages(context.Background(), "Books", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(langs) != 3 {
		t.Errorf("expected 3 languages, got %d", len(langs))
	}
}

func TestClient_Languages_WithSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("source") != "en" {
			t.Errorf("expected source=en, got %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{"languages": []string{"de"}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	langs, err := c.Languages(context.Background(), "Books", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(langs) != 1 || langs[0] != "de" {
		t.Errorf("unexpected languages: %v", langs)
	}
}

func TestClient_ResolveDownloadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("preprocessing") != "tmx" || q.Get("version") != "latest" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"corpora": []map[string]any{
				{"url": "https://example.com/en-de.tmx.gz", "size": 12345},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	got, err := c.ResolveDownloadURL(context.Background(), "Books", "en", "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com/en-de.tmx.gz" {
		t.Errorf("unexpected URL: %q", got)
	}
}

func TestClient_ResolveDownloadURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"corpora": []any{}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.ResolveDownloadURL(context.Background(), "Books", "en", "xx")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Corpora(context.Background()); err == nil {
		t.Error("expected error for non-OK status")
	}
}
