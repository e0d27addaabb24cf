package bugbash

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StorageCollection is the document collection holding one JSON document
// per bug bash. Scoping to project/team happens via fields inside each
// document, not via separate collections.
const StorageCollection = "bugbashes"

// URL actions recognised by the navigation state tuple.
const (
	URLActionAll  = "all"
	URLActionNew  = "new"
	URLActionEdit = "edit"
	URLActionView = "view"
)

// MaxTitleLength is the longest accepted bug bash title, in runes.
const MaxTitleLength = 128

// TemplateKey selects one of the fixed per-outcome template slots on a
// bug bash configuration.
type TemplateKey string

const (
	// TemplateKeyAccept is the template applied when a work item is accepted.
	TemplateKeyAccept TemplateKey = "Accept"

	// TemplateKeyReject is the template applied when a work item is rejected.
	TemplateKeyReject TemplateKey = "Reject"
)

// BugBash is the configuration record for one bash event. An empty ID marks
// an in-memory, not-yet-persisted instance. ETag is assigned and advanced by
// the document store on every successful write; clients never set it.
type BugBash struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description,omitempty"`
	WorkItemType    string                 `json:"workItemType"`
	TemplateID      string                 `json:"templateId,omitempty"`
	ManualFields    []string               `json:"manualFields"`
	StartTime       *time.Time             `json:"startTime,omitempty"`
	EndTime         *time.Time             `json:"endTime,omitempty"`
	ConfigTemplates map[TemplateKey]string `json:"configTemplates,omitempty"`
	ProjectID       string                 `json:"projectId"`
	TeamID          string                 `json:"teamId"`
	ETag            int                    `json:"__etag"`
}

// New returns a fresh, unsaved bug bash with empty identity and no edits.
func New() *BugBash {
	return &BugBash{
		ID:              "",
		ManualFields:    []string{},
		ConfigTemplates: map[TemplateKey]string{},
	}
}

// IsNew reports whether the bash has never been persisted.
func (b *BugBash) IsNew() bool {
	return b.ID == ""
}

// Validate checks the record invariants. Validation failures are caught
// entirely client-side - an invalid bash never reaches a collaborator.
func (b *BugBash) Validate() error {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len([]rune(b.Title)) > MaxTitleLength {
		return fmt.Errorf("title must be %d characters or fewer", MaxTitleLength)
	}
	if strings.TrimSpace(b.WorkItemType) == "" {
		return fmt.Errorf("work item type is required")
	}
	if len(b.ManualFields) == 0 {
		return fmt.Errorf("at least one manual field is required")
	}
	if b.StartTime != nil && b.EndTime != nil && !b.StartTime.Before(*b.EndTime) {
		return fmt.Errorf("start time must be before end time")
	}
	return nil
}

// IsValid reports whether Validate passes.
func (b *BugBash) IsValid() bool {
	return b.Validate() == nil
}

// Clone returns a deep copy: slices, maps and time pointers are duplicated
// so edits to the copy never leak into the receiver.
func (b *BugBash) Clone() *BugBash {
	c := *b
	c.ManualFields = append([]string(nil), b.ManualFields...)
	if b.ConfigTemplates != nil {
		c.ConfigTemplates = make(map[TemplateKey]string, len(b.ConfigTemplates))
		for k, v := range b.ConfigTemplates {
			c.ConfigTemplates[k] = v
		}
	}
	if b.StartTime != nil {
		t := *b.StartTime
		c.StartTime = &t
	}
	if b.EndTime != nil {
		t := *b.EndTime
		c.EndTime = &t
	}
	return &c
}

// Well-known work item field reference names.
const (
	FieldTitle       = "System.Title"
	FieldTags        = "System.Tags"
	FieldState       = "System.State"
	FieldCreatedBy   = "System.CreatedBy"
	FieldAssignedTo  = "System.AssignedTo"
	FieldAreaPath    = "System.AreaPath"
	FieldCreatedDate = "System.CreatedDate"
	FieldChangedBy   = "System.ChangedBy"
	FieldChangedDate = "System.ChangedDate"

	// FieldHistory is write-only: text written here becomes a discussion
	// comment on the item's next revision.
	FieldHistory = "System.History"
)

// WorkItem is the external tracking system's record, reduced to what the
// triage flow needs: integer identity, the revision counter used for
// optimistic-concurrency checks, and a reference-name-keyed field bag.
type WorkItem struct {
	ID     int               `json:"id"`
	Rev    int               `json:"rev"`
	Fields map[string]string `json:"fields"`
	URL    string            `json:"url,omitempty"`
}

// Field returns the named field value, or "" when absent.
func (w *WorkItem) Field(referenceName string) string {
	return w.Fields[referenceName]
}

// Title returns the System.Title field.
func (w *WorkItem) Title() string { return w.Field(FieldTitle) }

// Tags returns the raw semicolon-delimited System.Tags field.
func (w *WorkItem) Tags() string { return w.Field(FieldTags) }

// State returns the System.State field.
func (w *WorkItem) State() string { return w.Field(FieldState) }

// CreatedBy returns the System.CreatedBy field.
func (w *WorkItem) CreatedBy() string { return w.Field(FieldCreatedBy) }

// AssignedTo returns the System.AssignedTo field.
func (w *WorkItem) AssignedTo() string { return w.Field(FieldAssignedTo) }

// AreaPath returns the System.AreaPath field.
func (w *WorkItem) AreaPath() string { return w.Field(FieldAreaPath) }

// CreatedDate parses the System.CreatedDate field as RFC 3339. The zero
// time is returned for absent or malformed values.
func (w *WorkItem) CreatedDate() time.Time {
	t, err := time.Parse(time.RFC3339, w.Field(FieldCreatedDate))
	if err != nil {
		return time.Time{}
	}
	return t
}

// IDString returns the work item id as a decimal string, for display and
// free-text filtering.
func (w *WorkItem) IDString() string {
	return strconv.Itoa(w.ID)
}

// FieldDef describes one work item field definition from the tracking
// system. Reference data: fetched once per store lifetime and cached.
type FieldDef struct {
	Name          string `json:"name"`
	ReferenceName string `json:"referenceName"`
	Type          string `json:"type"`
}

// TypeDef describes a work item type (e.g. "Bug").
type TypeDef struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TemplateRef is the lightweight template reference used to populate
// dropdowns; the full field payload is fetched separately on demand.
type TemplateRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	WorkItemType string `json:"workItemTypeName"`
}

// Template is a full work item template: its reference data plus the
// default field values it applies.
type Template struct {
	TemplateRef
	Fields map[string]string `json:"fields"`
}

// Comment is one discussion entry on a work item. Discussion surfaces
// show comments newest first.
type Comment struct {
	Revision    int       `json:"revision"`
	Text        string    `json:"text"`
	RevisedBy   string    `json:"revisedBy"`
	RevisedDate time.Time `json:"revisedDate"`
}
