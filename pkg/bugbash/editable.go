package bugbash

import (
	"strings"
	"time"
)

// Editable wraps a BugBash with a current/original double buffer for
// optimistic local editing. Setters mutate only the current copy; Reset
// discards edits atomically and Renew commits them as the new baseline
// after a successful save, without a re-fetch round trip.
type Editable struct {
	current  *BugBash
	original *BugBash
	onChange func()
}

// NewEditable wraps model. Both buffers start as independent deep copies,
// so the wrapper is clean immediately after construction.
func NewEditable(model *BugBash) *Editable {
	return &Editable{
		current:  model.Clone(),
		original: model.Clone(),
	}
}

// NewEditableNew returns a wrapper around an unsaved bash.
func NewEditableNew() *Editable {
	return NewEditable(New())
}

// Model returns the current (edited) copy. Callers must treat it as
// read-only; all mutation goes through the Update setters.
func (e *Editable) Model() *BugBash {
	return e.current
}

// IsNew reports whether the wrapped bash has never been persisted.
func (e *Editable) IsNew() bool {
	return e.current.IsNew()
}

// IsValid reports whether the current copy passes validation.
func (e *Editable) IsValid() bool {
	return e.current.IsValid()
}

// Validate checks the current copy's invariants.
func (e *Editable) Validate() error {
	return e.current.Validate()
}

// IsDirty reports whether any field of the current copy differs from the
// original. The comparison is structural: manual fields compare
// case-insensitively element by element, config templates compare as maps,
// times by instant.
func (e *Editable) IsDirty() bool {
	cur, orig := e.current, e.original
	return cur.Title != orig.Title ||
		cur.Description != orig.Description ||
		cur.WorkItemType != orig.WorkItemType ||
		cur.TemplateID != orig.TemplateID ||
		!timeEqual(cur.StartTime, orig.StartTime) ||
		!timeEqual(cur.EndTime, orig.EndTime) ||
		!fieldListEqual(cur.ManualFields, orig.ManualFields) ||
		!templateMapEqual(cur.ConfigTemplates, orig.ConfigTemplates)
}

// Reset discards all edits: current becomes a fresh copy of the last
// committed baseline.
func (e *Editable) Reset() {
	e.current = e.original.Clone()
	e.fireChanged()
}

// Renew commits the current edits as the new baseline. Called after a
// successful save so the wrapper reads clean against the persisted state.
func (e *Editable) Renew() {
	e.original = e.current.Clone()
	e.fireChanged()
}

// SetSaved replaces both buffers with the stored copy returned by a write,
// picking up the server-assigned id and etag in one step.
func (e *Editable) SetSaved(saved *BugBash) {
	e.current = saved.Clone()
	e.original = saved.Clone()
	e.fireChanged()
}

// AttachChanged registers the single change delegate, invoked after every
// mutating call on the wrapper.
func (e *Editable) AttachChanged(handler func()) {
	e.onChange = handler
}

// DetachChanged removes the change delegate.
func (e *Editable) DetachChanged() {
	e.onChange = nil
}

func (e *Editable) fireChanged() {
	if e.onChange != nil {
		e.onChange()
	}
}

// UpdateTitle sets the title on the current copy.
func (e *Editable) UpdateTitle(title string) {
	e.current.Title = title
	e.fireChanged()
}

// UpdateDescription sets the description on the current copy.
func (e *Editable) UpdateDescription(description string) {
	e.current.Description = description
	e.fireChanged()
}

// UpdateWorkItemType sets the work item type on the current copy.
func (e *Editable) UpdateWorkItemType(workItemType string) {
	e.current.WorkItemType = workItemType
	e.fireChanged()
}

// UpdateTemplateID sets the creation template reference on the current copy.
func (e *Editable) UpdateTemplateID(templateID string) {
	e.current.TemplateID = templateID
	e.fireChanged()
}

// UpdateManualFields replaces the manual field list on the current copy.
func (e *Editable) UpdateManualFields(fields []string) {
	e.current.ManualFields = append([]string(nil), fields...)
	e.fireChanged()
}

// UpdateStartTime sets the start instant; nil clears it.
func (e *Editable) UpdateStartTime(t *time.Time) {
	e.current.StartTime = cloneTime(t)
	e.fireChanged()
}

// UpdateEndTime sets the end instant; nil clears it.
func (e *Editable) UpdateEndTime(t *time.Time) {
	e.current.EndTime = cloneTime(t)
	e.fireChanged()
}

// UpdateConfigTemplate binds one of the fixed outcome slots to a template
// id; an empty id clears the slot.
func (e *Editable) UpdateConfigTemplate(key TemplateKey, templateID string) {
	if e.current.ConfigTemplates == nil {
		e.current.ConfigTemplates = map[TemplateKey]string{}
	}
	if templateID == "" {
		delete(e.current.ConfigTemplates, key)
	} else {
		e.current.ConfigTemplates[key] = templateID
	}
	e.fireChanged()
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func fieldListEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func templateMapEqual(a, b map[TemplateKey]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
