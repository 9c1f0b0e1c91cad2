package loop

import (
	"slices"
	"sync"
	"time"
)

// Hub tracks the clients of one process so they can be counted and told
// about a shutdown. Every client plays its own game; the hub shares no
// simulation state.
type Hub struct {
	mu       sync.Mutex
	clients  map[int]*Handle
	nextID   int
	closing  bool
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// Handle is a client's registration with a hub.
type Handle struct {
	ID       int
	Username string
	hub      *Hub
	once     sync.Once
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[int]*Handle),
		nextID:   1,
		shutdown: make(chan struct{}),
	}
}

// Register adds a client. It returns false once Shutdown has started.
func (h *Hub) Register(username string) (*Handle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return nil, false
	}
	handle := &Handle{ID: h.nextID, Username: username, hub: h}
	h.nextID++
	h.clients[handle.ID] = handle
	h.wg.Add(1)
	return handle, true
}

// Close unregisters the client. Safe to call more than once.
func (hd *Handle) Close() {
	hd.once.Do(func() {
		h := hd.hub
		h.mu.Lock()
		delete(h.clients, hd.ID)
		h.mu.Unlock()
		h.wg.Done()
	})
}

// ShuttingDown is closed when the hub starts shutting down.
func (hd *Handle) ShuttingDown() <-chan struct{} {
	return hd.hub.shutdown
}

// Players returns the number of connected clients.
func (h *Hub) Players() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Usernames returns the names of the connected clients, ordered by
// connection.
func (h *Hub) Usernames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	handles := make([]*Handle, 0, len(h.clients))
	for _, hd := range h.clients {
		handles = append(handles, hd)
	}
	slices.SortFunc(handles, func(a, b *Handle) int { return a.ID - b.ID })
	names := make([]string, len(handles))
	for i, hd := range handles {
		names[i] = hd.Username
	}
	return names
}

// Shutdown notifies every client and waits until all of them have closed
// their handles or the timeout passes. It reports whether every client left
// in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	if !h.closing {
		h.closing = true
		close(h.shutdown)
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
