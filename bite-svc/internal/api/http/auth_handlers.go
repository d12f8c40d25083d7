package httpapi

import (
	"net/http"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/service"
	"scroll-and-bite/bite-svc/internal/session"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	sess, err := h.Auth.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, sess)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	sess, err := h.Auth.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, sess)
}

func (h *Handler) signInWithProvider(w http.ResponseWriter, r *http.Request) {
	var identity service.ProviderIdentity
	if err := decodeJSON(r, &identity); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}
	if identity.Provider == "" {
		writeBadRequest(w, "Missing provider")
		return
	}

	sess, err := h.Auth.SignInWithProvider(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, sess)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if principal, ok := session.FromContext(r.Context()).Principal().Get(); ok {
		h.Feeds.Close(principal.ID)
	}
	if err := h.Auth.SignOut(r.Context(), requestToken(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, principal)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var patch domain.PrincipalPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	updated, err := h.Auth.UpdateProfile(r.Context(), principal.ID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	address, err := h.Auth.Address(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, address)
}

func (h *Handler) setAddress(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var address domain.Address
	if err := decodeJSON(r, &address); err != nil {
		writeBadRequest(w, "Invalid payload")
		return
	}

	saved, err := h.Auth.SetAddress(r.Context(), principal.ID, address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, saved)
}
