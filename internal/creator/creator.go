// Package creator is the only component permitted to invoke actions. It
// encapsulates the cache-or-fetch decision for every operation: consult
// the store, call the storage or work item collaborator on a miss, and
// announce the outcome through the hub so every subscribed store updates.
//
// Collaborator failures never escape: each public method catches them and
// degrades to a safe falsy result (nil, false, empty). The error kind is
// still logged so not-found, version conflicts and transport failures stay
// distinguishable in diagnostics.
package creator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/bugbash/internal/docstore"
	"github.com/dyluth/bugbash/internal/hub"
	"github.com/dyluth/bugbash/internal/stores"
	"github.com/dyluth/bugbash/internal/wit"
	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// Scope is the caller's project/team context. Every bug bash read, write
// and delete verifies the record against it; a mismatch behaves exactly
// like not-found, so ids cannot be guessed across teams.
type Scope struct {
	ProjectID string
	TeamID    string
}

// matches reports whether the record belongs to the scope.
func (s Scope) matches(b *bugbash.BugBash) bool {
	return b != nil && b.ProjectID == s.ProjectID && b.TeamID == s.TeamID
}

// Creator orchestrates actions against the injected stores and
// collaborators. One instance serves a session.
type Creator struct {
	hub       *hub.Hub
	bashes    *stores.BugBashStore
	fields    *stores.FieldStore
	templates *stores.TemplateStore
	docs      docstore.Store
	wit       wit.Client
	scope     Scope

	// now is swappable for tests of the timestamp-based id assignment.
	now func() time.Time
}

// New wires a creator to its hub, stores and collaborators.
func New(h *hub.Hub, bashes *stores.BugBashStore, fields *stores.FieldStore, templates *stores.TemplateStore, docs docstore.Store, witClient wit.Client, scope Scope) *Creator {
	return &Creator{
		hub:       h,
		bashes:    bashes,
		fields:    fields,
		templates: templates,
		docs:      docs,
		wit:       witClient,
		scope:     scope,
		now:       time.Now,
	}
}

// InitializeBugBashes populates the bug bash store on first call. When the
// store is already loaded it invokes the action with nil, the idempotent
// no-op refresh.
func (c *Creator) InitializeBugBashes(ctx context.Context) {
	if c.bashes.IsLoaded() {
		c.hub.InitializeBugBashes.Invoke(nil)
		return
	}

	c.hub.InitializeBugBashes.Invoke(c.fetchAllBugBashes(ctx))
}

// RefreshBugBashes clears then re-populates the store. Distinct from
// initialize: it only proceeds when the store is already loaded, and it
// always refetches.
func (c *Creator) RefreshBugBashes(ctx context.Context) {
	if !c.bashes.IsLoaded() {
		return
	}

	c.hub.ClearBugBashes.Invoke(struct{}{})
	c.hub.InitializeBugBashes.Invoke(c.fetchAllBugBashes(ctx))
}

func (c *Creator) fetchAllBugBashes(ctx context.Context) []*bugbash.BugBash {
	docs, err := c.docs.GetDocuments(ctx, bugbash.StorageCollection)
	if err != nil {
		// Fetch failures degrade to "no data".
		c.logFailure("initialize_bugbashes", err)
		return []*bugbash.BugBash{}
	}

	inScope := make([]*bugbash.BugBash, 0, len(docs))
	for _, doc := range docs {
		if c.scope.matches(doc) {
			inScope = append(inScope, doc)
		}
	}
	return inScope
}

// EnsureBugBash returns true when the bash is available in the store,
// fetching it on a cache miss. Scope mismatches and fetch failures return
// false without mutating the store.
func (c *Creator) EnsureBugBash(ctx context.Context, id string) bool {
	if c.bashes.ItemExists(id) {
		return true
	}

	generation := c.bashes.Generation()
	doc, err := c.docs.GetDocument(ctx, bugbash.StorageCollection, id)
	if err != nil {
		c.logFailure("ensure_bugbash", err)
		return false
	}
	if !c.scope.matches(doc) {
		// Treated identically to not-found.
		c.logEvent("scope_mismatch", map[string]interface{}{"bugbash_id": id})
		return false
	}
	if generation != c.bashes.Generation() {
		// The store was cleared while the fetch was in flight; the result
		// belongs to a superseded view of the world.
		c.logEvent("stale_fetch_discarded", map[string]interface{}{"bugbash_id": id})
		return false
	}

	c.hub.BugBashAdded.Invoke(doc)
	return true
}

// CreateBugBash persists a new bash and announces it. A missing id is
// assigned from the clock; the stored copy (with its server etag) is
// returned, or nil on failure.
func (c *Creator) CreateBugBash(ctx context.Context, bash *bugbash.BugBash) *bugbash.BugBash {
	toSave := bash.Clone()
	if toSave.ID == "" {
		toSave.ID = fmt.Sprintf("%d", c.now().UnixMilli())
	}
	toSave.ProjectID = c.scope.ProjectID
	toSave.TeamID = c.scope.TeamID

	saved, err := c.docs.SetDocument(ctx, bugbash.StorageCollection, toSave)
	if err != nil {
		c.logFailure("create_bugbash", err)
		return nil
	}

	c.hub.BugBashAdded.Invoke(saved)
	return saved
}

// storedInScope verifies the persisted record's project and team against
// the creator scope. The caller's struct is never trusted for this: a
// guessed id with forged scope fields must behave like not-found. Cached
// records were already verified on their way into the store.
func (c *Creator) storedInScope(ctx context.Context, id string) bool {
	if c.bashes.ItemExists(id) {
		return true
	}

	doc, err := c.docs.GetDocument(ctx, bugbash.StorageCollection, id)
	if err != nil {
		c.logFailure("verify_scope", err)
		return false
	}
	if !c.scope.matches(doc) {
		c.logEvent("scope_mismatch", map[string]interface{}{"bugbash_id": id})
		return false
	}
	return true
}

// UpdateBugBash persists an edit and announces it. A stale etag surfaces
// as nil; the caller must not renew its wrapper in that case, leaving the
// edit dirty for a refresh-and-retry. Records outside the creator scope
// behave like not-found.
func (c *Creator) UpdateBugBash(ctx context.Context, bash *bugbash.BugBash) *bugbash.BugBash {
	if !c.scope.matches(bash) || !c.storedInScope(ctx, bash.ID) {
		return nil
	}

	saved, err := c.docs.SetDocument(ctx, bugbash.StorageCollection, bash)
	if err != nil {
		c.logFailure("update_bugbash", err)
		return nil
	}

	c.hub.BugBashUpdated.Invoke(saved)
	return saved
}

// DeleteBugBash persists a delete, announcing removal only on confirmed
// success. Records outside the creator scope behave like not-found.
func (c *Creator) DeleteBugBash(ctx context.Context, bash *bugbash.BugBash) bool {
	if !c.scope.matches(bash) || !c.storedInScope(ctx, bash.ID) {
		return false
	}

	if err := c.docs.DeleteDocument(ctx, bugbash.StorageCollection, bash.ID); err != nil {
		c.logFailure("delete_bugbash", err)
		return false
	}

	c.hub.BugBashDeleted.Invoke(bash)
	return true
}

// InitializeFields populates the field store on first call.
func (c *Creator) InitializeFields(ctx context.Context) {
	if c.fields.IsLoaded() {
		c.hub.InitializeFields.Invoke(nil)
		return
	}

	fields, err := c.wit.GetFields(ctx)
	if err != nil {
		c.logFailure("initialize_fields", err)
		fields = []bugbash.FieldDef{}
	}
	c.hub.InitializeFields.Invoke(fields)
}

// InitializeTypes populates the work item types on first call.
func (c *Creator) InitializeTypes(ctx context.Context) {
	if c.fields.TypesLoaded() {
		c.hub.InitializeTypes.Invoke(nil)
		return
	}

	types, err := c.wit.GetWorkItemTypes(ctx)
	if err != nil {
		c.logFailure("initialize_types", err)
		types = []bugbash.TypeDef{}
	}
	c.hub.InitializeTypes.Invoke(types)
}

// InitializeTemplates populates the template references on first call.
func (c *Creator) InitializeTemplates(ctx context.Context) {
	if c.templates.IsLoaded() {
		c.hub.InitializeTemplates.Invoke(nil)
		return
	}

	refs, err := c.wit.GetTemplates(ctx, "")
	if err != nil {
		c.logFailure("initialize_templates", err)
		refs = []bugbash.TemplateRef{}
	}
	c.hub.InitializeTemplates.Invoke(refs)
}

// InitializeReferenceData runs the dependency-ordered startup sequence the
// editor surfaces need: fields and types before templates.
func (c *Creator) InitializeReferenceData(ctx context.Context) {
	c.InitializeFields(ctx)
	c.InitializeTypes(ctx)
	c.InitializeTemplates(ctx)
}

// EnsureTemplate returns true when the full template record is available
// in the store, fetching it on a cache miss.
func (c *Creator) EnsureTemplate(ctx context.Context, id string) bool {
	if c.templates.ItemExists(id) {
		return true
	}

	tpl, err := c.wit.GetTemplate(ctx, id)
	if err != nil {
		c.logFailure("ensure_template", err)
		return false
	}

	c.hub.TemplateEnsured.Invoke(tpl)
	return true
}

func (c *Creator) logFailure(operation string, err error) {
	kind := "transport"
	switch {
	case docstore.IsNotFound(err) || wit.IsNotFound(err):
		kind = "not_found"
	case docstore.IsConflict(err) || wit.IsConflict(err):
		kind = "conflict"
	}

	c.logEvent("operation_failed", map[string]interface{}{
		"operation": operation,
		"kind":      kind,
		"error":     err.Error(),
	})
}

func (c *Creator) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "creator"
	data["event_type"] = eventType
	data["project"] = c.scope.ProjectID

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Creator] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
