// Package feed holds the bounded, newest-first list of chat events and the controller that fills it.
package feed

import (
	"sync"

	"github.com/gregriff/ytlc/internal/chat"
)

// Capacity is the maximum number of events kept in a Feed.
const Capacity = 50

// Feed is an observable list of events with the newest event at index 0.
// It is shared by the TUI, the preview server and the controller timers, so all access is locked.
type Feed struct {
	mu      sync.RWMutex
	events  []chat.Event
	version uint64

	subMu  sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New returns an empty feed.
func New() *Feed {
	return &Feed{
		events: make([]chat.Event, 0, Capacity),
		subs:   make(map[int]chan struct{}),
	}
}

// Add prepends e and evicts the oldest events beyond Capacity.
func (f *Feed) Add(e chat.Event) {
	f.mu.Lock()
	n := min(len(f.events)+1, Capacity)
	next := make([]chat.Event, n, Capacity)
	next[0] = e
	copy(next[1:], f.events)
	f.events = next
	f.version++
	f.mu.Unlock()
	f.notify()
}

// Clear removes every event.
func (f *Feed) Clear() {
	f.mu.Lock()
	f.events = make([]chat.Event, 0, Capacity)
	f.version++
	f.mu.Unlock()
	f.notify()
}

// Events returns a copy of the current list, newest first.
func (f *Feed) Events() []chat.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]chat.Event, len(f.events))
	copy(out, f.events)
	return out
}

// Len returns the number of events currently held.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.events)
}

// Version increases on every mutation. Renderers use it to skip redundant work.
func (f *Feed) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// Subscribe returns a channel that receives a value after the feed changes, and a func that
// unregisters it. Notifications coalesce: a slow reader sees one pending signal, not one per change.
func (f *Feed) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	f.subMu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	f.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.subMu.Lock()
			delete(f.subs, id)
			f.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (f *Feed) notify() {
	f.subMu.Lock()
	defer f.subMu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
