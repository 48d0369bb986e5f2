package loop

import (
	"context"
	"sync"
	"time"
)

// Hub tracks the sessions hosted by one process so they can be stopped
// together on shutdown.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*ClientHandle
	nextID  int
}

// ClientHandle is one hosted session.
type ClientHandle struct {
	ID       int
	Username string
	Started  time.Time
	cancel   context.CancelFunc
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[int]*ClientHandle)}
}

// Register adds a session and returns its handle together with a context
// that is cancelled on Shutdown.
func (h *Hub) Register(parent context.Context, username string) (*ClientHandle, context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.register(parent, username)
}

// TryRegister is Register for players allowed one session at a time. It
// fails when username already has a live session.
func (h *Hub) TryRegister(parent context.Context, username string) (*ClientHandle, context.Context, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.clients {
		if c.Username == username {
			return nil, nil, false
		}
	}
	handle, ctx := h.register(parent, username)
	return handle, ctx, true
}

// register must be called with h.mu held.
func (h *Hub) register(parent context.Context, username string) (*ClientHandle, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	h.nextID++
	handle := &ClientHandle{
		ID:       h.nextID,
		Username: username,
		Started:  time.Now(),
		cancel:   cancel,
	}
	h.clients[handle.ID] = handle
	return handle, ctx
}

// Unregister removes a session.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.clients[id]; ok {
		handle.cancel()
		delete(h.clients, id)
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown stops every session, then waits until all have unregistered or
// the timeout passes.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, handle := range h.clients {
		handle.cancel()
	}
	h.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
