package dict

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPLookupFound(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":1,"items":[{"headword":"가수","pos":"명사","definition":"노래 부르는 것을 직업으로 삼는 사람."}]}`))
	}))
	defer srv.Close()

	c := NewHTTP(Config{BaseURL: srv.URL, APIKey: "k-123"})
	res, err := c.Lookup(context.Background(), "  가수  ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !res.Exists {
		t.Fatal("expected word to exist")
	}
	if res.POS != "명사" || res.Definition == "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if gotQuery != "가수" {
		t.Fatalf("query param = %q, want trimmed 가수", gotQuery)
	}
	if gotKey != "k-123" {
		t.Fatalf("X-Api-Key = %q", gotKey)
	}
}

func TestHTTPLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":0,"items":[]}`))
	}))
	defer srv.Close()

	res, err := NewHTTP(Config{BaseURL: srv.URL}).Lookup(context.Background(), "없는말")
	if err != nil {
		t.Fatalf("a definitive miss is not an error: %v", err)
	}
	if res.Exists {
		t.Fatal("expected Exists=false")
	}
}

func TestHTTPLookupUnavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewHTTP(Config{BaseURL: srv.URL}).Lookup(context.Background(), "가수")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		_, err := NewHTTP(Config{BaseURL: srv.URL}).Lookup(context.Background(), "가수")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing is listening anymore

		_, err := NewHTTP(Config{BaseURL: srv.URL}).Lookup(context.Background(), "가수")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}
