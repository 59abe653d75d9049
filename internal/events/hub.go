package events

import "sync"

// Hub is an in-process Emitter that broadcasts every event to all current
// subscribers. It backs the server's event-stream endpoint and tests. A slow
// subscriber only delays delivery of later events to itself; its buffer is
// sized at subscribe time.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[<-chan Event]chan Event
	closed      bool
}

// NewHub creates a new broadcast hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[<-chan Event]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its receive channel. The
// channel is closed when the subscriber is removed or the hub shuts down.
func (h *Hub) Subscribe(buffer int) <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, buffer)
	if h.closed {
		close(ch)
		return ch
	}
	h.subscribers[ch] = ch
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if send, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(send)
	}
}

// Emit broadcasts the event to every subscriber. Subscribers whose buffer is
// full miss the event rather than block the emitting request.
func (h *Hub) Emit(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, send := range h.subscribers {
		select {
		case send <- event:
		default:
		}
	}
}

// Close removes all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for _, send := range h.subscribers {
		close(send)
	}
	clear(h.subscribers)
}
