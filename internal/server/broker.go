package server

import (
	"encoding/json"
	"errors"
	"net/url"
	"sync"

	"github.com/alexk15655-dotcom/MCGuide/internal/navigator"
)

// LiveEvent is a frame sent to a live guide session.
type LiveEvent struct {
	Type  string                  `json:"type"`
	Style *navigator.StyleContext `json:"style,omitempty"`
	URL   string                  `json:"url,omitempty"`
	View  *navigator.View         `json:"view,omitempty"`
	HTML  string                  `json:"html,omitempty"`
	Error string                  `json:"error,omitempty"`
}

const (
	eventStyle        = "style"
	eventReplaceState = "replaceState"
	eventView         = "view"
	eventError        = "error"
)

// maxPending bounds the events queued for one subscriber. A subscriber
// that falls this far behind is cut off instead of skipping frames.
const maxPending = 1024

var errSubscriberBehind = errors.New("live subscriber fell behind")

// Mailbox is an ordered queue of encoded events for one subscriber.
// Events are never dropped: a subscriber that stops draining it is told
// so by Take once maxPending is exceeded.
type Mailbox struct {
	mu       sync.Mutex
	pending  [][]byte
	overflow bool
	ready    chan struct{}
}

func newMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

func (m *Mailbox) put(data []byte) {
	m.mu.Lock()
	if len(m.pending) >= maxPending {
		m.overflow = true
	} else {
		m.pending = append(m.pending, data)
	}
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value whenever events have been queued since the last Take.
func (m *Mailbox) Ready() <-chan struct{} { return m.ready }

// Take removes and returns every queued event, oldest first.
func (m *Mailbox) Take() ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.overflow {
		return nil, errSubscriberBehind
	}
	out := m.pending
	m.pending = nil
	return out, nil
}

// Broker is an in-process pub/sub for live events, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[*Mailbox]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[*Mailbox]struct{}),
	}
}

// Subscribe returns a mailbox that receives JSON-encoded events for the session.
func (b *Broker) Subscribe(sessionID string) *Mailbox {
	m := newMailbox()
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[*Mailbox]struct{})
	}
	b.subs[sessionID][m] = struct{}{}
	b.mu.Unlock()
	return m
}

// Unsubscribe removes a mailbox from the session's subscribers.
func (b *Broker) Unsubscribe(sessionID string, m *Mailbox) {
	b.mu.Lock()
	delete(b.subs[sessionID], m)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish queues an event for every subscriber of the session.
func (b *Broker) Publish(sessionID string, event LiveEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for m := range b.subs[sessionID] {
		m.put(data)
	}
	b.mu.RUnlock()
}

// Sessions returns the number of sessions with at least one subscriber.
func (b *Broker) Sessions() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// sessionOutbox lets a navigator publish its side effects to one session.
type sessionOutbox struct {
	broker *Broker
	id     string
}

func (o sessionOutbox) ReplaceState(u *url.URL) {
	o.broker.Publish(o.id, LiveEvent{Type: eventReplaceState, URL: u.String()})
}

func (o sessionOutbox) Publish(sc navigator.StyleContext) {
	o.broker.Publish(o.id, LiveEvent{Type: eventStyle, Style: &sc})
}
