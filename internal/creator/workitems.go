package creator

import (
	"context"

	"github.com/dyluth/bugbash/internal/wit"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// Work item operations. The tag linkage in pkg/bugbash is the only place
// that knows how bash membership and triage outcome are encoded; this file
// just routes its output through the work item collaborator.

// BashWorkItems discovers the work items belonging to the bash: a WIQL
// query for the bash link tag, then a batched fetch of the resulting ids.
// Failures degrade to an empty result.
func (c *Creator) BashWorkItems(ctx context.Context, bash *bugbash.BugBash) []*bugbash.WorkItem {
	result, err := c.wit.QueryByWiql(ctx, bugbash.ItemsQuery(c.scope.ProjectID, bash))
	if err != nil {
		c.logFailure("query_bash_items", err)
		return []*bugbash.WorkItem{}
	}

	items, err := c.wit.GetWorkItems(ctx, result.IDs())
	if err != nil {
		c.logFailure("fetch_bash_items", err)
		return []*bugbash.WorkItem{}
	}
	return items
}

// CreateWorkItem creates a work item for the bash: template defaults
// first, the caller's manual field values over them, and the bash link tag
// injected into whatever tags resulted.
func (c *Creator) CreateWorkItem(ctx context.Context, bash *bugbash.BugBash, fieldValues map[string]string) *bugbash.WorkItem {
	fields := map[string]string{}
	if bash.TemplateID != "" && c.EnsureTemplate(ctx, bash.TemplateID) {
		for ref, value := range c.templates.GetItem(bash.TemplateID).Fields {
			fields[ref] = value
		}
	}
	for ref, value := range fieldValues {
		fields[ref] = value
	}
	fields[bugbash.FieldTags] = bugbash.AddBashTag(fields[bugbash.FieldTags], bash.ID)

	item, err := c.wit.CreateWorkItem(ctx, bash.WorkItemType, wit.FieldPatch(fields))
	if err != nil {
		c.logFailure("create_work_item", err)
		return nil
	}
	return item
}

// AcceptWorkItem marks the item accepted, stripping any reject marker, in
// one revision-guarded update. A lost revision check returns nil.
func (c *Creator) AcceptWorkItem(ctx context.Context, item *bugbash.WorkItem) *bugbash.WorkItem {
	return c.applyOutcome(ctx, item, bugbash.ApplyAccepted(item.Tags()), "accept_work_item")
}

// RejectWorkItem marks the item rejected, stripping any accept marker.
func (c *Creator) RejectWorkItem(ctx context.Context, item *bugbash.WorkItem) *bugbash.WorkItem {
	return c.applyOutcome(ctx, item, bugbash.ApplyRejected(item.Tags()), "reject_work_item")
}

func (c *Creator) applyOutcome(ctx context.Context, item *bugbash.WorkItem, tags, operation string) *bugbash.WorkItem {
	updated, err := c.wit.UpdateWorkItem(ctx, item.ID, item.Rev, wit.TagPatch(tags))
	if err != nil {
		c.logFailure(operation, err)
		return nil
	}
	return updated
}

// ItemComments returns the item's discussion, newest first. Failures
// degrade to an empty result.
func (c *Creator) ItemComments(ctx context.Context, item *bugbash.WorkItem) []bugbash.Comment {
	comments, err := c.wit.GetComments(ctx, item.ID)
	if err != nil {
		c.logFailure("get_item_comments", err)
		return []bugbash.Comment{}
	}
	return comments
}

// CommentOnItem appends a discussion entry. Comments are additive, so no
// revision guard applies; failures degrade to nil.
func (c *Creator) CommentOnItem(ctx context.Context, item *bugbash.WorkItem, text string) *bugbash.Comment {
	comment, err := c.wit.AddComment(ctx, item.ID, text)
	if err != nil {
		c.logFailure("comment_on_item", err)
		return nil
	}
	return comment
}

// RemoveWorkItems takes the items out of the bash: one batched,
// revision-guarded update stripping the link tag and both outcome markers
// from every item. Partial-failure semantics belong to the collaborator.
func (c *Creator) RemoveWorkItems(ctx context.Context, bash *bugbash.BugBash, items []*bugbash.WorkItem) bool {
	if len(items) == 0 {
		return true
	}

	updates := make([]wit.BatchUpdate, len(items))
	for i, item := range items {
		updates[i] = wit.BatchUpdate{
			ID:    item.ID,
			Rev:   item.Rev,
			Patch: wit.TagPatch(bugbash.StripBashTags(item.Tags(), bash.ID)),
		}
	}

	if err := c.wit.UpdateWorkItemsBatch(ctx, updates); err != nil {
		c.logFailure("remove_work_items", err)
		return false
	}
	return true
}

// DeleteWorkItems deletes the items in one batched request.
func (c *Creator) DeleteWorkItems(ctx context.Context, ids []int) bool {
	if len(ids) == 0 {
		return true
	}

	if err := c.wit.DeleteWorkItemsBatch(ctx, ids); err != nil {
		c.logFailure("delete_work_items", err)
		return false
	}
	return true
}
