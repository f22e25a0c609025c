package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRestyClientGetResolvesBaseURLAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.RawQuery; got != "token=abc" {
			t.Fatalf("unexpected query %q", got)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Fatalf("missing header, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != defaultUserAgent {
			t.Fatalf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewRestyClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
	resp, err := client.Get(context.Background(), "/list", map[string]string{"token": "abc"}, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != `[]` {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if resp.Header("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", resp.Header("Content-Type"))
	}
}

func TestRestyClientSendsEmptyQueryValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.RawQuery; got != "token=" {
			t.Fatalf("expected empty token parameter, got %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewRestyClient(Options{BaseURL: srv.URL})
	if _, err := client.Get(context.Background(), "/list", map[string]string{"token": ""}, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestRestyClientDoesNotRetryServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRestyClient(Options{BaseURL: srv.URL, Timeout: time.Second})
	resp, err := client.Get(context.Background(), "/list", nil, nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}
