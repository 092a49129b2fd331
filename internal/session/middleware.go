package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the session id between client and server.
const Header = "X-Session-ID"

type ctxKey struct{}

// Middleware attaches a session id to every request. Clients without one
// get a fresh uuid, echoed back in the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the session id stored by Middleware, or "" outside a request.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
