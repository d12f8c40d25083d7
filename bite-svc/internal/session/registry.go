package session

import (
	"context"
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"
)

type AuthEventType string

const (
	SignedIn    AuthEventType = "SIGNED_IN"
	SignedOut   AuthEventType = "SIGNED_OUT"
	UserUpdated AuthEventType = "USER_UPDATED"
)

// AuthEvent is emitted by the auth service whenever a session starts, ends
// or its user changes.
type AuthEvent struct {
	Type      AuthEventType
	Token     string
	Principal *domain.Principal
}

// Registry tracks one Holder per live session token.
type Registry struct {
	mu      sync.RWMutex
	holders map[string]*Holder
}

func NewRegistry() *Registry {
	return &Registry{holders: make(map[string]*Holder)}
}

func (r *Registry) Holder(token string) (*Holder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	holder, ok := r.holders[token]
	return holder, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.holders)
}

// HandleAuthEvent keeps the holders in step with the auth state stream.
// USER_UPDATED refreshes every session of that user.
func (r *Registry) HandleAuthEvent(event AuthEvent) {
	switch event.Type {
	case SignedIn:
		r.mu.Lock()
		holder, ok := r.holders[event.Token]
		if !ok {
			holder = NewHolder()
			r.holders[event.Token] = holder
		}
		r.mu.Unlock()
		holder.SetPrincipal(event.Principal)

	case SignedOut:
		r.mu.Lock()
		holder, ok := r.holders[event.Token]
		delete(r.holders, event.Token)
		r.mu.Unlock()
		if ok {
			holder.SetPrincipal(nil)
		}

	case UserUpdated:
		if event.Principal == nil {
			return
		}
		for _, holder := range r.holdersOf(event.Principal.ID) {
			holder.SetPrincipal(event.Principal)
		}
	}
}

func (r *Registry) holdersOf(userID string) []*Holder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var holders []*Holder
	for _, holder := range r.holders {
		if principal, ok := holder.Principal().Get(); ok && principal.ID == userID {
			holders = append(holders, holder)
		}
	}
	return holders
}

type contextKey struct{}

func NewContext(ctx context.Context, holder *Holder) context.Context {
	return context.WithValue(ctx, contextKey{}, holder)
}

// FromContext returns the request's holder, or an empty one when the
// request is anonymous.
func FromContext(ctx context.Context) *Holder {
	if holder, ok := ctx.Value(contextKey{}).(*Holder); ok {
		return holder
	}
	return NewHolder()
}
