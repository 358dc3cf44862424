// Package event is a small in-process event bus. Services fire named
// events and decoupled subsystems (the order feed relay, tests) listen.
package event

import "sync"

// Handler receives the payload fired with an event.
type Handler func(payload any)

type bus struct {
	mu        sync.RWMutex
	listeners map[string][]Handler
}

var defaultBus = &bus{listeners: map[string][]Handler{}}

// Listen subscribes handler to the named event.
func Listen(name string, handler Handler) {
	defaultBus.mu.Lock()
	defaultBus.listeners[name] = append(defaultBus.listeners[name], handler)
	defaultBus.mu.Unlock()
}

// Fire invokes every handler subscribed to name, in registration order,
// on the calling goroutine.
func Fire(name string, payload any) {
	for _, h := range defaultBus.snapshot(name) {
		h(payload)
	}
}

// FireAsync invokes the handlers on their own goroutines and returns
// without waiting for them.
func FireAsync(name string, payload any) {
	for _, h := range defaultBus.snapshot(name) {
		go h(payload)
	}
}

// Flush drops every subscription. Tests use it to isolate listeners.
func Flush() {
	defaultBus.mu.Lock()
	defaultBus.listeners = map[string][]Handler{}
	defaultBus.mu.Unlock()
}

func (b *bus) snapshot(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.listeners[name]))
	copy(hs, b.listeners[name])
	return hs
}
