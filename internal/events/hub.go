package events

import (
	"fmt"
	"log/slog"
	"sync"
)

const DefaultBufferSize = 16

// Message is a change notification sent to every subscriber after a
// successful mutation, so views know to refetch.
type Message struct {
	Type    string         `json:"type"`
	Entity  string         `json:"entity"`
	Action  string         `json:"action"`
	ID      string         `json:"id,omitempty"`
	ActorID string         `json:"actor_id,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action, id string, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// Subscriber receives broadcast messages on a buffered channel.
type Subscriber struct {
	hub  *Hub
	send chan Message
}

// C returns the receive channel. It is closed on Unsubscribe.
func (s *Subscriber) C() <-chan Message {
	return s.send
}

// Close unsubscribes from the hub.
func (s *Subscriber) Close() {
	s.hub.Unsubscribe(s)
}

// Hub maintains the set of subscribers and broadcasts messages.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	logger *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe registers a subscriber with the given channel buffer.
func (h *Hub) Subscribe(buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	s := &Subscriber{hub: h, send: make(chan Message, buffer)}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all subscribers without blocking.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		select {
		case s.send <- msg:
		default:
			// Subscriber buffer full, drop the message
			h.logger.Debug("dropped event", "type", msg.Type, "id", msg.ID)
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
