package stores

import (
	"strings"

	"github.com/dyluth/bugbash/internal/hub"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// FieldStore caches work item field definitions and work item types. Both
// are read-only reference data, fetched once per store lifetime; loaded
// flags are tracked independently per collection.
type FieldStore struct {
	changeEmitter

	fields []bugbash.FieldDef
	types  []bugbash.TypeDef
}

// NewFieldStore constructs the store and wires its hub subscriptions.
func NewFieldStore(h *hub.Hub) *FieldStore {
	s := &FieldStore{}

	h.InitializeFields.Subscribe(func(fields []bugbash.FieldDef) {
		if fields == nil {
			s.emitChanged()
			return
		}
		s.fields = append([]bugbash.FieldDef{}, fields...)
		s.emitChanged()
	})

	h.InitializeTypes.Subscribe(func(types []bugbash.TypeDef) {
		if types == nil {
			s.emitChanged()
			return
		}
		s.types = append([]bugbash.TypeDef{}, types...)
		s.emitChanged()
	})

	return s
}

// IsLoaded reports whether field definitions have been received.
func (s *FieldStore) IsLoaded() bool {
	return s.fields != nil
}

// TypesLoaded reports whether work item types have been received.
func (s *FieldStore) TypesLoaded() bool {
	return s.types != nil
}

// Ready is the capability check consumed before manual-field editing:
// both reference collections must be populated.
func (s *FieldStore) Ready() bool {
	return s.IsLoaded() && s.TypesLoaded()
}

// ItemExists reports whether a field with the reference name is cached.
func (s *FieldStore) ItemExists(referenceName string) bool {
	return s.GetItem(referenceName) != nil
}

// GetItem returns the field definition with the given reference name
// (case-insensitive), or nil.
func (s *FieldStore) GetItem(referenceName string) *bugbash.FieldDef {
	for i := range s.fields {
		if strings.EqualFold(s.fields[i].ReferenceName, referenceName) {
			return &s.fields[i]
		}
	}
	return nil
}

// GetAll returns a snapshot of the field definitions; never nil.
func (s *FieldStore) GetAll() []bugbash.FieldDef {
	return append([]bugbash.FieldDef{}, s.fields...)
}

// GetType returns the work item type with the given name
// (case-insensitive), or nil.
func (s *FieldStore) GetType(name string) *bugbash.TypeDef {
	for i := range s.types {
		if strings.EqualFold(s.types[i].Name, name) {
			return &s.types[i]
		}
	}
	return nil
}

// GetTypes returns a snapshot of the work item types; never nil.
func (s *FieldStore) GetTypes() []bugbash.TypeDef {
	return append([]bugbash.TypeDef{}, s.types...)
}
