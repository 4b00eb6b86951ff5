package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestActorStoresHeaderOnContext(t *testing.T) {
	var got string
	handler := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ActorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(ActorIDHeader, "admin-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "admin-1" {
		t.Fatalf("expected actor admin-1, got %q", got)
	}
}

func TestActorIDEmptyWithoutHeader(t *testing.T) {
	var got string
	handler := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ActorID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if got != "" {
		t.Fatalf("expected empty actor, got %q", got)
	}
}

func TestActorIDOnBareContext(t *testing.T) {
	if got := ActorID(context.Background()); got != "" {
		t.Fatalf("expected empty actor on bare context, got %q", got)
	}
}
