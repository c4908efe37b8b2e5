// Package events allows client goroutines to subscribe to the stream of
// noteworthy things happening inside the node: transactions accepted,
// blocks mined, chains replaced.
package events

import (
	"fmt"
	"sync"
)

// sendBuffer is how far a slow subscriber may fall behind before messages
// start being dropped for it. Websocket sends can take a while.
const sendBuffer = 100

// Events maintains a mapping of unique ids and channels so goroutines can
// subscribe and receive events.
type Events struct {
	subs map[string]chan string
	mu   sync.RWMutex
}

// New constructs an Events for subscribing and receiving events.
func New() *Events {
	return &Events{
		subs: make(map[string]chan string),
	}
}

// Shutdown closes and removes every channel that was handed out by Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used to
// receive events. Calling Acquire again with the same id returns the same
// channel.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.subs[id]; exists {
		return ch
	}

	evt.subs[id] = make(chan string, sendBuffer)
	return evt.subs[id]
}

// Release closes and removes the channel that was provided by the call to
// Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.subs, id)
	close(ch)
	return nil
}

// Send delivers a message to every subscriber. Send never blocks waiting
// for a receiver; a subscriber with a full buffer loses the message rather
// than stalling the node.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subs {
		select {
		case ch <- s:
		default:
		}
	}
}
