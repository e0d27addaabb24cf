// Package hub is the fixed registry of action channels connecting the
// actions creator to the stores. Each action carries one typed payload and
// fans it out synchronously to every subscriber; ordering between
// subscribers is unspecified and nothing may depend on it.
package hub

import (
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// Action is a named event channel for one state transition. Only the
// actions creator invokes actions; stores subscribe at construction and
// mutate their state exclusively inside the callbacks.
type Action[T any] struct {
	listeners []func(T)
}

// Subscribe registers a listener and returns its handle for Unsubscribe.
func (a *Action[T]) Subscribe(fn func(T)) int {
	a.listeners = append(a.listeners, fn)
	return len(a.listeners) - 1
}

// Unsubscribe detaches the listener registered under handle.
func (a *Action[T]) Unsubscribe(handle int) {
	if handle >= 0 && handle < len(a.listeners) {
		a.listeners[handle] = nil
	}
}

// Invoke fans the payload out to every subscriber, synchronously.
func (a *Action[T]) Invoke(payload T) {
	for _, fn := range a.listeners {
		if fn != nil {
			fn(payload)
		}
	}
}

// Hub holds the complete set of action channels. One instance is shared by
// the creator and all stores for the lifetime of the session.
type Hub struct {
	// Bug bash collection transitions. A nil Initialize payload means the
	// store is already loaded and should only re-emit its changed signal.
	InitializeBugBashes Action[[]*bugbash.BugBash]
	ClearBugBashes      Action[struct{}]
	BugBashAdded        Action[*bugbash.BugBash]
	BugBashUpdated      Action[*bugbash.BugBash]
	BugBashDeleted      Action[*bugbash.BugBash]

	// Reference data transitions, fetched once per store lifetime.
	InitializeFields    Action[[]bugbash.FieldDef]
	InitializeTypes     Action[[]bugbash.TypeDef]
	InitializeTemplates Action[[]bugbash.TemplateRef]
	TemplateEnsured     Action[*bugbash.Template]
}

// New returns an empty hub with no subscribers.
func New() *Hub {
	return &Hub{}
}
