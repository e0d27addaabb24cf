package stores

import (
	"strings"

	"github.com/dyluth/bugbash/internal/hub"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// BugBashStore caches the bug bash collection. A nil backing slice means
// Unloaded; Initialize allocates it (even for an empty result) and only the
// Clear action returns the store to Unloaded. ID lookup is
// case-insensitive.
type BugBashStore struct {
	changeEmitter

	items      []*bugbash.BugBash
	generation uint64
}

// NewBugBashStore constructs the store and wires its hub subscriptions.
func NewBugBashStore(h *hub.Hub) *BugBashStore {
	s := &BugBashStore{}

	h.InitializeBugBashes.Subscribe(func(items []*bugbash.BugBash) {
		if items == nil {
			// Already loaded, no-op refresh: just re-notify.
			s.emitChanged()
			return
		}
		s.onAdd(items)
	})

	h.ClearBugBashes.Subscribe(func(struct{}) {
		s.items = nil
		s.generation++
		s.emitChanged()
	})

	h.BugBashAdded.Subscribe(func(item *bugbash.BugBash) {
		s.onAdd([]*bugbash.BugBash{item})
	})

	h.BugBashUpdated.Subscribe(func(item *bugbash.BugBash) {
		s.onAdd([]*bugbash.BugBash{item})
	})

	h.BugBashDeleted.Subscribe(func(item *bugbash.BugBash) {
		s.onRemove(item)
	})

	return s
}

// IsLoaded reports whether an initial population has been received.
func (s *BugBashStore) IsLoaded() bool {
	return s.items != nil
}

// ItemExists reports whether the bash with the given id is cached.
func (s *BugBashStore) ItemExists(id string) bool {
	return s.GetItem(id) != nil
}

// GetItem returns the cached bash with the given id, or nil.
func (s *BugBashStore) GetItem(id string) *bugbash.BugBash {
	if !s.IsLoaded() {
		return nil
	}
	for _, item := range s.items {
		if strings.EqualFold(item.ID, id) {
			return item
		}
	}
	return nil
}

// GetAll returns a snapshot of the cached collection; never nil.
func (s *BugBashStore) GetAll() []*bugbash.BugBash {
	if s.items == nil {
		return []*bugbash.BugBash{}
	}
	return append([]*bugbash.BugBash(nil), s.items...)
}

// Generation is bumped on every Clear. A fetch started before a clear
// compares generations on completion and discards its stale result.
func (s *BugBashStore) Generation() uint64 {
	return s.generation
}

func (s *BugBashStore) onAdd(items []*bugbash.BugBash) {
	if s.items == nil {
		s.items = []*bugbash.BugBash{}
	}
	for _, item := range items {
		if item == nil {
			continue
		}
		s.upsert(item)
	}
	s.emitChanged()
}

func (s *BugBashStore) onRemove(item *bugbash.BugBash) {
	if item == nil || !s.IsLoaded() {
		return
	}
	for i, existing := range s.items {
		if strings.EqualFold(existing.ID, item.ID) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.emitChanged()
}

func (s *BugBashStore) upsert(item *bugbash.BugBash) {
	for i, existing := range s.items {
		if strings.EqualFold(existing.ID, item.ID) {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}
