// Package stores holds the per-entity-type in-memory caches. Each store
// subscribes to its hub actions at construction and mutates state only
// inside those callbacks; readers get synchronous snapshot accessors and a
// loaded flag that distinguishes "not yet fetched" from "fetched empty".
//
// Every mutating action ends in one synchronous changed emission to all
// attached listeners. There is no batching or debouncing.
package stores

// changeEmitter is the shared observer list. Listeners attach and detach
// by handle; emission is synchronous and in registration order.
type changeEmitter struct {
	listeners []func()
}

// AttachChanged registers a listener, returning its handle.
func (c *changeEmitter) AttachChanged(fn func()) int {
	c.listeners = append(c.listeners, fn)
	return len(c.listeners) - 1
}

// DetachChanged removes the listener registered under handle.
func (c *changeEmitter) DetachChanged(handle int) {
	if handle >= 0 && handle < len(c.listeners) {
		c.listeners[handle] = nil
	}
}

func (c *changeEmitter) emitChanged() {
	for _, fn := range c.listeners {
		if fn != nil {
			fn()
		}
	}
}
