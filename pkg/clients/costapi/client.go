// Package costapi is a small HTTP client for the construction cost API.
package costapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is matched by an *APIError carrying a 404.
var ErrNotFound = errors.New("resource not found")

// Resource describes where a resource lives on the API.
type Resource struct {
	Name          string
	ListPath      string
	CreatePath    string
	ItemPath      string
	EntryPath     string
	ReferencePath string

	// EntryField names the amount of an entry, "price" or "value".
	EntryField string
}

// HasEntries reports whether the resource accepts entry appends.
func (r Resource) HasEntries() bool { return r.EntryPath != "" }

// HasReference reports whether the resource can be listed by parent id.
func (r Resource) HasReference() bool { return r.ReferencePath != "" }

// The resources served by the API, keyed by their command line name.
var (
	Equipment = Resource{
		Name: "equipment", ListPath: "/equipment", CreatePath: "/equipment",
		ItemPath: "/equipment/{id}", EntryPath: "/equipment/{id}/price", EntryField: "value",
	}
	EquipmentPerformance = Resource{
		Name: "equipment-performance", ListPath: "/equipment-performance", CreatePath: "/equipment-performance",
		ItemPath: "/equipment-performance/{id}", ReferencePath: "/equipment/{id}/equipment-performance",
	}
	Labour = Resource{
		Name: "labour", ListPath: "/labour", CreatePath: "/labour",
		ItemPath: "/labour/{id}", EntryPath: "/labour/{id}/rate", EntryField: "value",
	}
	Materials = Resource{
		Name: "materials", ListPath: "/materials", CreatePath: "/materials",
		ItemPath: "/materials/{id}", EntryPath: "/materials/{id}/price", EntryField: "price",
	}
	MaterialYields = Resource{
		Name: "material-yields", ListPath: "/material-yields", CreatePath: "/material-yields",
		ItemPath: "/material-yields/{id}", ReferencePath: "/material-yields/by-material/{id}",
	}
	Tools = Resource{
		Name: "tools", ListPath: "/tools", CreatePath: "/tools",
		ItemPath: "/tools/{id}", EntryPath: "/tools/{id}/price", EntryField: "price",
	}
	ToolLifespans = Resource{
		Name: "tool-lifespans", ListPath: "/tool/lifespan", CreatePath: "/tool/lifespan",
		ItemPath: "/tool/lifespan/{id}",
	}
	Jobs = Resource{
		Name: "jobs", ListPath: "/jobs", CreatePath: "/job",
		ItemPath: "/job/{id}",
	}
	Workers = Resource{
		Name: "workers", ListPath: "/worker", CreatePath: "/worker",
		ItemPath: "/worker/{id}", EntryPath: "/worker/{id}/rate", EntryField: "value",
	}
)

var resources = map[string]Resource{}

func init() {
	for _, r := range []Resource{Equipment, EquipmentPerformance, Labour, Materials, MaterialYields, Tools, ToolLifespans, Jobs, Workers} {
		resources[r.Name] = r
	}
}

// Lookup returns the resource registered under name.
func Lookup(name string) (Resource, error) {
	r, ok := resources[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Resource{}, fmt.Errorf("unknown resource %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return r, nil
}

// Names lists the known resource names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Document is a resource document as returned by the API.
type Document map[string]any

// ID returns the document id, or "" when absent.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cost api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("cost api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Error string `json:"error"`
}

// Client is a resty-backed client of the cost API.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient}
}

// HTTPClient exposes the underlying *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient.GetClient()
}

// List returns every document of r.
func (c *Client) List(ctx context.Context, r Resource) ([]Document, error) {
	var out []Document
	if err := c.do(ctx, http.MethodGet, r.ListPath, "", nil, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.Name, err)
	}
	return out, nil
}

// ListByReference returns the documents of r that reference parentID.
func (c *Client) ListByReference(ctx context.Context, r Resource, parentID string) ([]Document, error) {
	if !r.HasReference() {
		return nil, fmt.Errorf("%s cannot be listed by reference", r.Name)
	}

	var out []Document
	if err := c.do(ctx, http.MethodGet, r.ReferencePath, parentID, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s by reference: %w", r.Name, err)
	}
	return out, nil
}

// Get returns one document. A missing document yields an error matching ErrNotFound.
func (c *Client) Get(ctx context.Context, r Resource, id string) (Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodGet, r.ItemPath, id, nil, &out); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.Name, id, err)
	}
	return out, nil
}

// Create posts doc and returns the stored document.
func (c *Client) Create(ctx context.Context, r Resource, doc any) (Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodPost, r.CreatePath, "", doc, &out); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.Name, err)
	}
	return out, nil
}

// Update sends a partial update.
func (c *Client) Update(ctx context.Context, r Resource, id string, patch any) (Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodPut, r.ItemPath, id, patch, &out); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", r.Name, id, err)
	}
	return out, nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (c *Client) Delete(ctx context.Context, r Resource, id string) error {
	if err := c.do(ctx, http.MethodDelete, r.ItemPath, id, nil, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.Name, id, err)
	}
	return nil
}

// AppendEntry appends a price or rate entry to a document.
func (c *Client) AppendEntry(ctx context.Context, r Resource, id string, entry any) (Document, error) {
	if !r.HasEntries() {
		return nil, fmt.Errorf("%s has no entry list", r.Name)
	}

	var out Document
	if err := c.do(ctx, http.MethodPost, r.EntryPath, id, entry, &out); err != nil {
		return nil, fmt.Errorf("append entry to %s %s: %w", r.Name, id, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, id string, body, result any) error {
	apiErr := new(errorBody)

	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if id != "" {
		req.SetPathParam("id", id)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}
