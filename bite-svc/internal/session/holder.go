package session

import (
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/samber/mo"
)

type Listener func(mo.Option[domain.Principal])

// Holder keeps the current principal of one session. The zero value is an
// empty holder ready for use.
type Holder struct {
	mu        sync.RWMutex
	principal *domain.Principal
	listeners []*Listener
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Principal() mo.Option[domain.Principal] {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.principal == nil {
		return mo.None[domain.Principal]()
	}
	return mo.Some(*h.principal)
}

// SetPrincipal replaces the held principal. nil clears it.
func (h *Holder) SetPrincipal(principal *domain.Principal) {
	h.mu.Lock()
	if principal == nil {
		h.principal = nil
	} else {
		copied := *principal
		h.principal = &copied
	}
	listeners := append([]*Listener(nil), h.listeners...)
	h.mu.Unlock()

	h.notify(listeners)
}

// MergePrincipalFields applies patch on top of the held principal. Fields
// absent from the patch are kept. It reports false and does nothing when no
// principal is held.
func (h *Holder) MergePrincipalFields(patch domain.PrincipalPatch) bool {
	h.mu.Lock()
	if h.principal == nil {
		h.mu.Unlock()
		return false
	}
	merged := patch.Apply(*h.principal)
	h.principal = &merged
	listeners := append([]*Listener(nil), h.listeners...)
	h.mu.Unlock()

	h.notify(listeners)
	return true
}

// Subscribe registers listener for every change. The returned func removes it.
func (h *Holder) Subscribe(listener Listener) func() {
	entry := &listener
	h.mu.Lock()
	h.listeners = append(h.listeners, entry)
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, l := range h.listeners {
			if l == entry {
				h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

func (h *Holder) notify(listeners []*Listener) {
	current := h.Principal()
	for _, listener := range listeners {
		(*listener)(current)
	}
}
