package navigation

import (
	"errors"
	"net/url"
	"sync"
)

// History is the session history the controller reads and writes.
type History interface {
	Location() *url.URL
	State() any
	PushState(state any, href string) error
	ReplaceState(state any, href string) error
}

type entry struct {
	location *url.URL
	state    any
}

// MemoryHistory is an in-process History with back and forward traversal.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []entry
	index   int
}

// NewMemoryHistory starts a history at rawURL, which must be absolute.
func NewMemoryHistory(rawURL string) (*MemoryHistory, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, ErrInvalidURL
	}
	return &MemoryHistory{entries: []entry{{location: u}}}, nil
}

// Location returns a copy of the current URL.
func (h *MemoryHistory) Location() *url.URL {
	h.mu.RLock()
	defer h.mu.RUnlock()
	u := *h.entries[h.index].location
	return &u
}

// State returns the state stored with the current entry.
func (h *MemoryHistory) State() any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[h.index].state
}

// PushState adds an entry after the current one and drops any forward entries.
func (h *MemoryHistory) PushState(state any, href string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	u, err := h.resolve(href)
	if err != nil {
		return err
	}
	h.entries = append(h.entries[:h.index+1], entry{location: u, state: state})
	h.index++
	return nil
}

// ReplaceState overwrites the current entry.
func (h *MemoryHistory) ReplaceState(state any, href string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	u, err := h.resolve(href)
	if err != nil {
		return err
	}
	h.entries[h.index] = entry{location: u, state: state}
	return nil
}

// Back moves to the previous entry. It reports false at the start.
func (h *MemoryHistory) Back() bool {
	return h.Go(-1)
}

// Forward moves to the next entry. It reports false at the end.
func (h *MemoryHistory) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries. Out-of-range moves leave the history unchanged.
func (h *MemoryHistory) Go(delta int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		return false
	}
	h.index = next
	return true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *MemoryHistory) resolve(href string) (*url.URL, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	current := h.entries[h.index].location
	u := current.ResolveReference(ref)
	if !sameOrigin(current, u) {
		return nil, ErrCrossOrigin
	}
	return u, nil
}

func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host
}
