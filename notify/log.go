// Package notify provides notification sinks for the registry: an in-memory
// append-only log with subscriber fan-out, a RabbitMQ publisher, and a
// multi-sink combinator.
package notify

import (
	"sync"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

// Log is an append-only, ordered in-memory notification log. External
// consumers (UI, indexers) either read snapshots via All or subscribe to a
// live feed.
type Log struct {
	mu      sync.Mutex
	entries []interfaces.Notification
	subs    map[int]chan interfaces.Notification
	nextSub int
}

// NewLog creates an empty notification log.
func NewLog() *Log {
	return &Log{subs: make(map[int]chan interfaces.Notification)}
}

// Emit appends the notification and fans it out to subscribers. Emit never
// blocks; a subscriber whose buffer is full misses the notification and
// must resynchronize from All.
func (l *Log) Emit(n interfaces.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, n)
	for _, ch := range l.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// All returns a snapshot of every notification emitted so far, in emission
// order.
func (l *Log) All() []interfaces.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]interfaces.Notification, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of notifications emitted so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Subscribe registers a live feed with the given buffer size. The returned
// cancel function closes the feed and must be called exactly once.
func (l *Log) Subscribe(buffer int) (<-chan interfaces.Notification, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	ch := make(chan interfaces.Notification, buffer)
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Multi fans a notification out to several sinks in order.
type Multi []interfaces.Sink

// Emit implements interfaces.Sink.
func (m Multi) Emit(n interfaces.Notification) {
	for _, sink := range m {
		sink.Emit(n)
	}
}
