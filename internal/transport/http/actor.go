package http

import (
	"context"
	"net/http"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

// Identity verification happens upstream; this layer trusts the actor
// headers the gateway forwards after authenticating the caller.
const (
	actorIDHeader    = "X-Actor-Id"
	actorEmailHeader = "X-Actor-Email"
	actorRoleHeader  = "X-Actor-Role"
	studentIDHeader  = "X-Student-Id"
)

type actorKey struct{}

// WithActor extracts the forwarded actor identity into the request
// context. Requests without identity headers pass through anonymous;
// individual routes decide what they require.
func WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{
			ID:        r.Header.Get(actorIDHeader),
			Email:     r.Header.Get(actorEmailHeader),
			StudentID: r.Header.Get(studentIDHeader),
			Role:      domain.Role(r.Header.Get(actorRoleHeader)),
		}
		if actor.Role == "" {
			actor.Role = domain.RoleStudent
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

func actorFromContext(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorKey{}).(domain.Actor)
	return actor
}

// requireActor rejects anonymous requests.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor := actorFromContext(r.Context())
	if actor.ID == "" && actor.Email == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return domain.Actor{}, false
	}
	return actor, true
}

// requireAdmin rejects anonymous and non-admin requests.
func requireAdmin(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return domain.Actor{}, false
	}
	if !actor.IsAdmin() {
		writeError(w, http.StatusForbidden, codeForbidden, domain.ErrForbidden.Error())
		return domain.Actor{}, false
	}
	return actor, true
}
