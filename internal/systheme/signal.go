package systheme

import (
	"sort"
	"sync"
)

// Signal reports whether the host prefers a dark appearance and notifies
// subscribers when that changes.
type Signal interface {
	PrefersDark() bool
	Subscribe(fn func(dark bool)) Subscription
}

// Subscription is a registered change listener.
type Subscription interface {
	// Cancel removes the listener. Calling it more than once is a no-op.
	Cancel()
}

type hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(bool)
}

func (h *hub) subscribe(fn func(bool)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[uint64]func(bool))
	}
	h.nextID++
	id := h.nextID
	h.subs[id] = fn
	return &subscription{hub: h, id: id}
}

func (h *hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// notify calls listeners in subscription order without holding the lock.
func (h *hub) notify(dark bool) {
	h.mu.Lock()
	ids := make([]uint64, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(bool), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

type subscription struct {
	hub  *hub
	id   uint64
	once sync.Once
}

func (s *subscription) Cancel() {
	s.once.Do(func() { s.hub.remove(s.id) })
}

// Static is an in-memory Signal whose value is changed with Set.
type Static struct {
	hub
	valueMu sync.RWMutex
	dark    bool
}

// NewStatic returns a Static signal starting at dark.
func NewStatic(dark bool) *Static {
	return &Static{dark: dark}
}

func (s *Static) PrefersDark() bool {
	s.valueMu.RLock()
	defer s.valueMu.RUnlock()
	return s.dark
}

func (s *Static) Subscribe(fn func(dark bool)) Subscription {
	return s.subscribe(fn)
}

// Set updates the value and notifies listeners when it changed.
func (s *Static) Set(dark bool) {
	s.valueMu.Lock()
	changed := s.dark != dark
	s.dark = dark
	s.valueMu.Unlock()
	if changed {
		s.notify(dark)
	}
}

// Listeners returns the number of active subscriptions.
func (s *Static) Listeners() int {
	return s.count()
}
