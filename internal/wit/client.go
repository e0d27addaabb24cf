package wit

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	bugbash "github.com/dyluth/bugbash/pkg/bugbash"
)

const apiVersion = "7.0"

// Options configures the REST client.
type Options struct {
	// BaseURL is the organization root, e.g. https://dev.azure.com/org.
	BaseURL string

	// Project and Team scope every call.
	Project string
	Team    string

	// Token is the personal access token used as basic-auth password.
	Token string

	// Timeout bounds each request; defaults to 30s.
	Timeout time.Duration
}

// RestClient talks to an Azure-DevOps-style work item tracking API.
type RestClient struct {
	client  *resty.Client
	project string
	team    string
}

// NewRestClient builds a client from options.
func NewRestClient(opts Options) (*RestClient, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if opts.Project == "" {
		return nil, fmt.Errorf("project cannot be empty")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetBasicAuth("", opts.Token).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetQueryParam("api-version", apiVersion)

	return &RestClient{
		client:  client,
		project: opts.Project,
		team:    opts.Team,
	}, nil
}

// wire forms; field bags arrive as mixed-type JSON values and are
// flattened to strings for the model.
type wireWorkItem struct {
	ID     int            `json:"id"`
	Rev    int            `json:"rev"`
	Fields map[string]any `json:"fields"`
	URL    string         `json:"url"`
}

type wireList[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

func (w *wireWorkItem) toModel() *bugbash.WorkItem {
	fields := make(map[string]string, len(w.Fields))
	for ref, v := range w.Fields {
		fields[ref] = stringifyField(v)
	}
	return &bugbash.WorkItem{ID: w.ID, Rev: w.Rev, Fields: fields, URL: w.URL}
}

func stringifyField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		// Identity fields come back as objects; the display name is the
		// part triage surfaces care about.
		if name, ok := t["displayName"].(string); ok {
			return name
		}
		return fmt.Sprintf("%v", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// QueryByWiql runs the query and returns matching work item ids.
func (c *RestClient) QueryByWiql(ctx context.Context, query string) (*QueryResult, error) {
	var result QueryResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"query": query}).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/_apis/wit/wiql", c.project))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetWorkItems fetches full work items for the given ids.
func (c *RestClient) GetWorkItems(ctx context.Context, ids []int) ([]*bugbash.WorkItem, error) {
	if len(ids) == 0 {
		return []*bugbash.WorkItem{}, nil
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = strconv.Itoa(id)
	}

	var result wireList[wireWorkItem]
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(idStrs, ",")).
		SetResult(&result).
		Get("/_apis/wit/workitems")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	items := make([]*bugbash.WorkItem, len(result.Value))
	for i := range result.Value {
		items[i] = result.Value[i].toModel()
	}
	return items, nil
}

// CreateWorkItem creates a work item of the given type from the patch.
func (c *RestClient) CreateWorkItem(ctx context.Context, workItemType string, patch PatchDocument) (*bugbash.WorkItem, error) {
	reqID := requestID()
	log.Printf("[WitClient] create %s request=%s", workItemType, reqID)

	var result wireWorkItem
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json-patch+json").
		SetBody(patch).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/_apis/wit/workitems/$%s", c.project, workItemType))
	if err := checkResponse(resp, err); err != nil {
		log.Printf("[WitClient] create failed request=%s: %v", reqID, err)
		return nil, err
	}
	return result.toModel(), nil
}

// UpdateWorkItem applies the patch guarded by the expected revision.
func (c *RestClient) UpdateWorkItem(ctx context.Context, id, rev int, patch PatchDocument) (*bugbash.WorkItem, error) {
	reqID := requestID()
	log.Printf("[WitClient] update item=%d rev=%d request=%s", id, rev, reqID)

	var result wireWorkItem
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json-patch+json").
		SetBody(patch.WithRevGuard(rev)).
		SetResult(&result).
		Patch(fmt.Sprintf("/_apis/wit/workitems/%d", id))
	if err := checkResponse(resp, err); err != nil {
		log.Printf("[WitClient] update failed item=%d request=%s: %v", id, reqID, err)
		return nil, err
	}
	return result.toModel(), nil
}

type batchRequest struct {
	Method  string            `json:"method"`
	URI     string            `json:"uri"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    any               `json:"body,omitempty"`
}

// UpdateWorkItemsBatch submits several revision-guarded updates as one
// batched request.
func (c *RestClient) UpdateWorkItemsBatch(ctx context.Context, updates []BatchUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	requests := make([]batchRequest, len(updates))
	for i, u := range updates {
		requests[i] = batchRequest{
			Method:  http.MethodPatch,
			URI:     fmt.Sprintf("/_apis/wit/workitems/%d?api-version=%s", u.ID, apiVersion),
			Headers: map[string]string{"Content-Type": "application/json-patch+json"},
			Body:    u.Patch.WithRevGuard(u.Rev),
		}
	}
	return c.postBatch(ctx, requests)
}

// DeleteWorkItemsBatch deletes several work items as one request.
func (c *RestClient) DeleteWorkItemsBatch(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	requests := make([]batchRequest, len(ids))
	for i, id := range ids {
		requests[i] = batchRequest{
			Method: http.MethodDelete,
			URI:    fmt.Sprintf("/_apis/wit/workitems/%d?api-version=%s", id, apiVersion),
		}
	}
	return c.postBatch(ctx, requests)
}

func (c *RestClient) postBatch(ctx context.Context, requests []batchRequest) error {
	reqID := requestID()
	log.Printf("[WitClient] batch of %d request=%s", len(requests), reqID)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(requests).
		Post("/_apis/wit/$batch")
	if err := checkResponse(resp, err); err != nil {
		log.Printf("[WitClient] batch failed request=%s: %v", reqID, err)
		return err
	}
	return nil
}

// comment wire forms; revisers arrive as identity objects.
type wireComment struct {
	Revision    int       `json:"revision"`
	Text        string    `json:"text"`
	RevisedBy   any       `json:"revisedBy"`
	RevisedDate time.Time `json:"revisedDate"`
}

type wireComments struct {
	Count    int           `json:"count"`
	Comments []wireComment `json:"comments"`
}

// GetComments returns the item's discussion, newest first.
func (c *RestClient) GetComments(ctx context.Context, id int) ([]bugbash.Comment, error) {
	var result wireComments
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/_apis/wit/workItems/%d/comments", id))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	comments := make([]bugbash.Comment, len(result.Comments))
	for i, w := range result.Comments {
		comments[i] = bugbash.Comment{
			Revision:    w.Revision,
			Text:        w.Text,
			RevisedBy:   stringifyField(w.RevisedBy),
			RevisedDate: w.RevisedDate,
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].RevisedDate.After(comments[j].RevisedDate)
	})
	return comments, nil
}

// AddComment appends a discussion entry. The service has no direct write
// endpoint for comments; text written to the history field becomes a
// comment on the new revision, so the patch is not revision-guarded.
func (c *RestClient) AddComment(ctx context.Context, id int, text string) (*bugbash.Comment, error) {
	reqID := requestID()
	log.Printf("[WitClient] comment item=%d request=%s", id, reqID)

	var result wireWorkItem
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json-patch+json").
		SetBody(FieldPatch(map[string]string{bugbash.FieldHistory: text})).
		SetResult(&result).
		Patch(fmt.Sprintf("/_apis/wit/workitems/%d", id))
	if err := checkResponse(resp, err); err != nil {
		log.Printf("[WitClient] comment failed item=%d request=%s: %v", id, reqID, err)
		return nil, err
	}

	item := result.toModel()
	revised, _ := time.Parse(time.RFC3339, item.Field(bugbash.FieldChangedDate))
	return &bugbash.Comment{
		Revision:    item.Rev,
		Text:        text,
		RevisedBy:   item.Field(bugbash.FieldChangedBy),
		RevisedDate: revised,
	}, nil
}

// GetFields returns the project's work item field definitions.
func (c *RestClient) GetFields(ctx context.Context) ([]bugbash.FieldDef, error) {
	var result wireList[bugbash.FieldDef]
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/%s/_apis/wit/fields", c.project))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// GetWorkItemTypes returns the project's work item types.
func (c *RestClient) GetWorkItemTypes(ctx context.Context) ([]bugbash.TypeDef, error) {
	var result wireList[bugbash.TypeDef]
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/%s/_apis/wit/workitemtypes", c.project))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// GetTemplates returns the team's template references, optionally
// restricted to one work item type.
func (c *RestClient) GetTemplates(ctx context.Context, workItemType string) ([]bugbash.TemplateRef, error) {
	req := c.client.R().SetContext(ctx)
	if workItemType != "" {
		req.SetQueryParam("workitemtypename", workItemType)
	}

	var result wireList[bugbash.TemplateRef]
	resp, err := req.
		SetResult(&result).
		Get(fmt.Sprintf("/%s/%s/_apis/wit/templates", c.project, c.team))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// GetTemplate returns one full template record.
func (c *RestClient) GetTemplate(ctx context.Context, id string) (*bugbash.Template, error) {
	var result bugbash.Template
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/%s/%s/_apis/wit/templates/%s", c.project, c.team, id))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// checkResponse folds transport errors and HTTP status into the package's
// error kinds: 404 is not-found, 409/412 is a lost concurrency check.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		return ErrConflict
	}
	if resp.IsError() {
		return fmt.Errorf("service returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func requestID() string {
	return uuid.New().String()[:8]
}
