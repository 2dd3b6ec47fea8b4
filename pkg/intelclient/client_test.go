package intelclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, Tokens: StaticToken("tkn-123")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, c
}

func TestListPublicNoAuthHeader(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/market-intelligence" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("public call sent Authorization header")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []Item{{ID: "a", Title: "Fed holds rates"}},
		})
	})

	items, err := c.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Fed holds rates" {
		t.Fatalf("items = %+v", items)
	}
}

func TestAdminCallsAttachBearerToken(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tkn-123" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		switch {
		case r.Method == http.MethodPost:
			var req CreateItemRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode create body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"item": Item{ID: "new", Title: req.Title}})
		case r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		default:
			json.NewEncoder(w).Encode(map[string]any{"items": []Item{}})
		}
	})
	ctx := context.Background()

	if _, err := c.ListAll(ctx); err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	created, err := c.Create(ctx, CreateItemRequest{Title: "CPI beats forecast"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "new" || created.Title != "CPI beats forecast" {
		t.Fatalf("created = %+v", created)
	}
	if err := c.Delete(ctx, "new"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestErrorBodyExtraction(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Invalid impact value. Must be High, Medium, or Low",
			"details": "impact = Severe",
		})
	})

	_, err := c.Create(context.Background(), CreateItemRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest ||
		apiErr.Message != "Invalid impact value. Must be High, Medium, or Low" ||
		apiErr.Details != "impact = Severe" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestErrorFallbackMessage(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gone"))
	})

	_, err := c.Update(context.Background(), "x", UpdateItemRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Message != "Failed to update market intelligence item" {
		t.Fatalf("fallback message = %q", apiErr.Message)
	}
}

func TestMissingTokenShortCircuits(t *testing.T) {
	called := false
	redirected := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		json.NewEncoder(w).Encode(map[string]any{"items": []Item{}})
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:           srv.URL,
		Tokens:            StaticToken(""),
		OnUnauthenticated: func() { redirected = true },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.ListAll(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("ListAll without token: err = %v, want ErrNotAuthenticated", err)
	}
	if called {
		t.Fatalf("request was sent despite missing token")
	}
	if !redirected {
		t.Fatalf("OnUnauthenticated callback not invoked")
	}

	// Public reads never need a token.
	if _, err := c.ListPublic(context.Background()); err != nil {
		t.Fatalf("ListPublic without token: %v", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("New without base URL succeeded")
	}
}
