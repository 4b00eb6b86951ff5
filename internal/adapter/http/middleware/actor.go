package middleware

import (
	"context"
	"net/http"
)

// ActorIDHeader identifies the upstream caller acting on the wallet, set by
// the platform's API gateway.
const ActorIDHeader = "X-Actor-ID"

type actorKey struct{}

// Actor extracts the acting caller's ID from the request headers and stores
// it on the request context.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorID := r.Header.Get(ActorIDHeader); actorID != "" {
			r = r.WithContext(context.WithValue(r.Context(), actorKey{}, actorID))
		}
		next.ServeHTTP(w, r)
	})
}

// ActorID returns the acting caller's ID from the context, if any.
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}
