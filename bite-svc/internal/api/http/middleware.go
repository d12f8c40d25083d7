package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/service"
	"scroll-and-bite/bite-svc/internal/session"
	"scroll-and-bite/bite-svc/internal/storage"
)

type tokenKey struct{}

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticated resolves the bearer token and puts the session's holder in
// the request context. An expired token drops its holder.
func (h *Handler) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, envelope{Msg: "missing bearer token"})
			return
		}

		principal, err := h.Auth.GetSession(r.Context(), token)
		if errors.Is(err, storage.ErrSessionExpired) {
			h.Sessions.HandleAuthEvent(session.AuthEvent{Type: session.SignedOut, Token: token})
		}
		if err != nil {
			writeError(w, err)
			return
		}

		holder, ok := h.Sessions.Holder(token)
		if !ok {
			h.Sessions.HandleAuthEvent(session.AuthEvent{Type: session.SignedIn, Token: token, Principal: &principal})
			holder, _ = h.Sessions.Holder(token)
		}

		ctx := session.NewContext(r.Context(), holder)
		ctx = context.WithValue(ctx, tokenKey{}, token)
		next(w, r.WithContext(ctx))
	}
}

// creator is authenticated plus a check that the principal owns a
// restaurant account.
func (h *Handler) creator(next http.HandlerFunc) http.HandlerFunc {
	return h.authenticated(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := currentPrincipal(w, r)
		if !ok {
			return
		}
		if !principal.IsCreator {
			writeError(w, service.ErrNotCreator)
			return
		}
		next(w, r)
	})
}

// currentPrincipal writes a 401 when the session was signed out while the
// request was running.
func currentPrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	principal, ok := session.FromContext(r.Context()).Principal().Get()
	if !ok {
		writeError(w, storage.ErrSessionExpired)
	}
	return principal, ok
}

func requestToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey{}).(string)
	return token
}
