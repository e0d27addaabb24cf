package wit

import (
	"context"
	"strings"
	"sync"
	"time"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

// Fake is an in-memory Client used by creator tests and scripted demos.
// It stores work items in a map, honors revision guards, and applies
// /fields/ patch paths literally.
type Fake struct {
	mu sync.Mutex

	nextID    int
	Items     map[int]*bugbash.WorkItem
	Fields    []bugbash.FieldDef
	Types     []bugbash.TypeDef
	Templates map[string]*bugbash.Template

	// Comments holds each item's discussion, newest first.
	Comments map[int][]bugbash.Comment

	// Fail, when set, makes every call return it. Used to exercise the
	// degrade-to-falsy policy.
	Fail error

	// QueryCalls counts QueryByWiql invocations; FetchCalls counts
	// GetWorkItems invocations.
	QueryCalls int
	FetchCalls int
}

// NewFake returns an empty fake.
func NewFake() *Fake {
	return &Fake{
		nextID:    1,
		Items:     map[int]*bugbash.WorkItem{},
		Templates: map[string]*bugbash.Template{},
		Comments:  map[int][]bugbash.Comment{},
	}
}

// Add seeds a work item and returns it.
func (f *Fake) Add(fields map[string]string) *bugbash.WorkItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	item := &bugbash.WorkItem{ID: f.nextID, Rev: 1, Fields: fields}
	f.Items[item.ID] = cloneItem(item)
	f.nextID++
	return item
}

// QueryByWiql returns the ids of items whose tag field contains any tag
// literal quoted in the query. Close enough to WIQL for triage tests.
func (f *Fake) QueryByWiql(ctx context.Context, query string) (*QueryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.QueryCalls++
	if f.Fail != nil {
		return nil, f.Fail
	}

	result := &QueryResult{WorkItems: []QueryResultItem{}}
	for _, item := range f.Items {
		for _, tag := range bugbash.SplitTags(item.Tags()) {
			if strings.Contains(query, "'"+tag+"'") {
				result.WorkItems = append(result.WorkItems, QueryResultItem{ID: item.ID})
				break
			}
		}
	}
	return result, nil
}

// GetWorkItems fetches the stored items for the given ids.
func (f *Fake) GetWorkItems(ctx context.Context, ids []int) ([]*bugbash.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls++
	if f.Fail != nil {
		return nil, f.Fail
	}

	items := []*bugbash.WorkItem{}
	for _, id := range ids {
		if item, ok := f.Items[id]; ok {
			items = append(items, cloneItem(item))
		}
	}
	return items, nil
}

// CreateWorkItem creates an item from the patch's field operations.
func (f *Fake) CreateWorkItem(ctx context.Context, workItemType string, patch PatchDocument) (*bugbash.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	fields := map[string]string{"System.WorkItemType": workItemType}
	applyPatch(fields, patch)

	item := &bugbash.WorkItem{ID: f.nextID, Rev: 1, Fields: fields}
	f.Items[item.ID] = item
	f.nextID++
	return cloneItem(item), nil
}

// UpdateWorkItem applies the patch if the revision guard passes.
func (f *Fake) UpdateWorkItem(ctx context.Context, id, rev int, patch PatchDocument) (*bugbash.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	item, ok := f.Items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if item.Rev != rev {
		return nil, ErrConflict
	}

	applyPatch(item.Fields, patch)
	item.Rev++
	return cloneItem(item), nil
}

// UpdateWorkItemsBatch applies each update; the first failure aborts.
func (f *Fake) UpdateWorkItemsBatch(ctx context.Context, updates []BatchUpdate) error {
	for _, u := range updates {
		if _, err := f.UpdateWorkItem(ctx, u.ID, u.Rev, u.Patch); err != nil {
			return err
		}
	}
	return nil
}

// DeleteWorkItemsBatch removes the given items.
func (f *Fake) DeleteWorkItemsBatch(ctx context.Context, ids []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}

	for _, id := range ids {
		delete(f.Items, id)
	}
	return nil
}

// GetComments returns the item's discussion, newest first.
func (f *Fake) GetComments(ctx context.Context, id int) ([]bugbash.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}
	if _, ok := f.Items[id]; !ok {
		return nil, ErrNotFound
	}
	return append([]bugbash.Comment(nil), f.Comments[id]...), nil
}

// AddComment prepends a discussion entry and bumps the item's revision,
// matching the history-field write on the real service.
func (f *Fake) AddComment(ctx context.Context, id int, text string) (*bugbash.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	item, ok := f.Items[id]
	if !ok {
		return nil, ErrNotFound
	}
	item.Rev++

	comment := bugbash.Comment{
		Revision:    item.Rev,
		Text:        text,
		RevisedBy:   "Fake Reviser",
		RevisedDate: time.Now(),
	}
	f.Comments[id] = append([]bugbash.Comment{comment}, f.Comments[id]...)
	return &comment, nil
}

// GetFields returns the seeded field definitions.
func (f *Fake) GetFields(ctx context.Context) ([]bugbash.FieldDef, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	return f.Fields, nil
}

// GetWorkItemTypes returns the seeded types.
func (f *Fake) GetWorkItemTypes(ctx context.Context) ([]bugbash.TypeDef, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	return f.Types, nil
}

// GetTemplates returns references for the seeded templates.
func (f *Fake) GetTemplates(ctx context.Context, workItemType string) ([]bugbash.TemplateRef, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	refs := []bugbash.TemplateRef{}
	for _, tpl := range f.Templates {
		if workItemType == "" || strings.EqualFold(tpl.WorkItemType, workItemType) {
			refs = append(refs, tpl.TemplateRef)
		}
	}
	return refs, nil
}

// GetTemplate returns one seeded template.
func (f *Fake) GetTemplate(ctx context.Context, id string) (*bugbash.Template, error) {
	if f.Fail != nil {
		return nil, f.Fail
	}
	tpl, ok := f.Templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return tpl, nil
}

func applyPatch(fields map[string]string, patch PatchDocument) {
	for _, op := range patch {
		if ref, ok := strings.CutPrefix(op.Path, "/fields/"); ok {
			if s, ok := op.Value.(string); ok {
				fields[ref] = s
			}
		}
	}
}

func cloneItem(item *bugbash.WorkItem) *bugbash.WorkItem {
	fields := make(map[string]string, len(item.Fields))
	for k, v := range item.Fields {
		fields[k] = v
	}
	return &bugbash.WorkItem{ID: item.ID, Rev: item.Rev, Fields: fields, URL: item.URL}
}
