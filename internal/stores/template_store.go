package stores

import (
	"strings"

	"github.com/dyluth/bugbash/internal/hub"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// TemplateStore caches template references (dropdown population) and,
// separately, the full template records fetched on demand through the
// ensure pattern. A reference being cached says nothing about whether its
// full record is.
type TemplateStore struct {
	changeEmitter

	refs      []bugbash.TemplateRef
	templates map[string]*bugbash.Template
}

// NewTemplateStore constructs the store and wires its hub subscriptions.
func NewTemplateStore(h *hub.Hub) *TemplateStore {
	s := &TemplateStore{
		templates: map[string]*bugbash.Template{},
	}

	h.InitializeTemplates.Subscribe(func(refs []bugbash.TemplateRef) {
		if refs == nil {
			s.emitChanged()
			return
		}
		s.refs = append([]bugbash.TemplateRef{}, refs...)
		s.emitChanged()
	})

	h.TemplateEnsured.Subscribe(func(tpl *bugbash.Template) {
		if tpl == nil {
			return
		}
		s.templates[strings.ToLower(tpl.ID)] = tpl
		s.emitChanged()
	})

	return s
}

// IsLoaded reports whether template references have been received.
func (s *TemplateStore) IsLoaded() bool {
	return s.refs != nil
}

// ItemExists reports whether the full template record is cached.
func (s *TemplateStore) ItemExists(id string) bool {
	return s.GetItem(id) != nil
}

// GetItem returns the cached full template with the given id, or nil.
func (s *TemplateStore) GetItem(id string) *bugbash.Template {
	return s.templates[strings.ToLower(id)]
}

// GetAll returns a snapshot of the template references; never nil.
func (s *TemplateStore) GetAll() []bugbash.TemplateRef {
	return append([]bugbash.TemplateRef{}, s.refs...)
}

// GetRef returns the template reference with the given id, or nil.
func (s *TemplateStore) GetRef(id string) *bugbash.TemplateRef {
	for i := range s.refs {
		if strings.EqualFold(s.refs[i].ID, id) {
			return &s.refs[i]
		}
	}
	return nil
}
