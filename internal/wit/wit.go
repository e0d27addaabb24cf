// Package wit is the work item tracking collaborator: WIQL queries, work
// item CRUD with revision-guarded updates, batched multi-item operations,
// and the read-only reference data (fields, types, templates) the editor
// surfaces need.
package wit

import (
	"context"
	"errors"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("work item entity not found")

// ErrConflict is returned when an update loses the revision check.
var ErrConflict = errors.New("work item revision conflict")

// QueryResult is the id-only result of a WIQL query, newest first.
type QueryResult struct {
	WorkItems []QueryResultItem `json:"workItems"`
}

// QueryResultItem is one id reference in a query result.
type QueryResultItem struct {
	ID int `json:"id"`
}

// IDs flattens the result into a plain id slice.
func (r *QueryResult) IDs() []int {
	ids := make([]int, len(r.WorkItems))
	for i, item := range r.WorkItems {
		ids[i] = item.ID
	}
	return ids
}

// Client is the work item service contract the actions creator consumes.
type Client interface {
	// QueryByWiql runs the query and returns matching work item ids.
	QueryByWiql(ctx context.Context, query string) (*QueryResult, error)

	// GetWorkItems fetches full work items for the given ids.
	GetWorkItems(ctx context.Context, ids []int) ([]*bugbash.WorkItem, error)

	// CreateWorkItem creates a work item of the given type from the patch.
	CreateWorkItem(ctx context.Context, workItemType string, patch PatchDocument) (*bugbash.WorkItem, error)

	// UpdateWorkItem applies the patch guarded by the expected revision.
	UpdateWorkItem(ctx context.Context, id, rev int, patch PatchDocument) (*bugbash.WorkItem, error)

	// UpdateWorkItemsBatch submits several revision-guarded updates as one
	// batched request. Partial-failure semantics belong to the service.
	UpdateWorkItemsBatch(ctx context.Context, updates []BatchUpdate) error

	// DeleteWorkItemsBatch deletes several work items as one request.
	DeleteWorkItemsBatch(ctx context.Context, ids []int) error

	// GetComments returns the item's discussion, newest first.
	GetComments(ctx context.Context, id int) ([]bugbash.Comment, error)

	// AddComment appends a discussion entry through the item's history
	// field and returns the resulting comment.
	AddComment(ctx context.Context, id int, text string) (*bugbash.Comment, error)

	// GetFields returns the project's work item field definitions.
	GetFields(ctx context.Context) ([]bugbash.FieldDef, error)

	// GetWorkItemTypes returns the project's work item types.
	GetWorkItemTypes(ctx context.Context) ([]bugbash.TypeDef, error)

	// GetTemplates returns the team's template references, optionally
	// restricted to one work item type.
	GetTemplates(ctx context.Context, workItemType string) ([]bugbash.TemplateRef, error)

	// GetTemplate returns one full template record.
	GetTemplate(ctx context.Context, id string) (*bugbash.Template, error)
}

// BatchUpdate is one revision-guarded field update inside a batch.
type BatchUpdate struct {
	ID    int
	Rev   int
	Patch PatchDocument
}

// IsNotFound reports whether err is the not-found case.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is the lost-revision case.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
