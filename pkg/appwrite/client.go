package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/niyontwali/personal-job-at/pkg/domain"
)

// Client talks to the hosted identity service and document store.
// It holds the active session secret once a session has been created;
// all state mutation goes through SetSession/ClearSession so the client
// is safe to share across bubbletea command goroutines.
type Client struct {
	endpoint     string // e.g. https://cloud.appwrite.io/v1
	project      string
	databaseID   string
	collectionID string
	httpClient   *http.Client

	mu      sync.RWMutex
	session string
}

// New creates a client for one project and one record collection.
func New(endpoint, project, databaseID, collectionID string) *Client {
	return &Client{
		endpoint:     endpoint,
		project:      project,
		databaseID:   databaseID,
		collectionID: collectionID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetSession installs the session secret sent on subsequent requests.
func (c *Client) SetSession(secret string) {
	c.mu.Lock()
	c.session = secret
	c.mu.Unlock()
}

// ClearSession forgets the session secret.
func (c *Client) ClearSession() {
	c.SetSession("")
}

// Endpoint returns the configured API base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// --- Account methods ---

// CreateEmailSession logs in with email and password. The returned
// session carries the secret; the caller decides when to install it
// via SetSession.
func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (*domain.Session, error) {
	var s domain.Session
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/account/sessions/email", body, &s); err != nil {
		return nil, fmt.Errorf("appwrite.CreateEmailSession: %w", err)
	}
	return &s, nil
}

// GetAccount returns the currently authenticated user.
func (c *Client) GetAccount(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/account", &u); err != nil {
		return nil, fmt.Errorf("appwrite.GetAccount: %w", err)
	}
	return &u, nil
}

// ListSessions returns all sessions for the authenticated user.
func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var out struct {
		Total    int              `json:"total"`
		Sessions []domain.Session `json:"sessions"`
	}
	if err := c.get(ctx, "/account/sessions", &out); err != nil {
		return nil, fmt.Errorf("appwrite.ListSessions: %w", err)
	}
	return out.Sessions, nil
}

// DeleteCurrentSession tears down the session this client holds.
func (c *Client) DeleteCurrentSession(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/account/sessions/current", nil, nil); err != nil {
		return fmt.Errorf("appwrite.DeleteCurrentSession: %w", err)
	}
	return nil
}

// DeleteSessions tears down every session for the account.
func (c *Client) DeleteSessions(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/account/sessions", nil, nil); err != nil {
		return fmt.Errorf("appwrite.DeleteSessions: %w", err)
	}
	return nil
}

// UpdateName changes the account display name.
func (c *Client) UpdateName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPatch, "/account/name", map[string]string{"name": name}, &u); err != nil {
		return nil, fmt.Errorf("appwrite.UpdateName: %w", err)
	}
	return &u, nil
}

// UpdatePassword changes the account password. oldPassword may be empty
// for accounts created server-side.
func (c *Client) UpdatePassword(ctx context.Context, password, oldPassword string) (*domain.User, error) {
	body := map[string]string{"password": password}
	if oldPassword != "" {
		body["oldPassword"] = oldPassword
	}
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPatch, "/account/password", body, &u); err != nil {
		return nil, fmt.Errorf("appwrite.UpdatePassword: %w", err)
	}
	return &u, nil
}

// --- Document methods ---

// ApplicationList is a page of documents plus the store's total count.
type ApplicationList struct {
	Total        int                  `json:"total"`
	Applications []domain.Application `json:"documents"`
}

func (c *Client) documentsPath() string {
	return "/databases/" + url.PathEscape(c.databaseID) + "/collections/" + url.PathEscape(c.collectionID) + "/documents"
}

// CreateApplication stores a new document under the given id. The
// server assigns the timestamps.
func (c *Client) CreateApplication(ctx context.Context, id string, in domain.ApplicationInput) (*domain.Application, error) {
	body := map[string]any{"documentId": id, "data": in}
	var a domain.Application
	if err := c.post(ctx, c.documentsPath(), body, &a); err != nil {
		return nil, fmt.Errorf("appwrite.CreateApplication: %w", err)
	}
	return &a, nil
}

// GetApplication fetches a single document by id.
func (c *Client) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	var a domain.Application
	if err := c.get(ctx, c.documentsPath()+"/"+url.PathEscape(id), &a); err != nil {
		return nil, fmt.Errorf("appwrite.GetApplication: %w", err)
	}
	return &a, nil
}

// ListApplications fetches documents matching the given queries (built
// with Equal/OrderDesc) along with the total count.
func (c *Client) ListApplications(ctx context.Context, queries ...string) (*ApplicationList, error) {
	params := url.Values{}
	for _, q := range queries {
		params.Add("queries[]", q)
	}
	path := c.documentsPath()
	if len(queries) > 0 {
		path += "?" + params.Encode()
	}
	var list ApplicationList
	if err := c.get(ctx, path, &list); err != nil {
		return nil, fmt.Errorf("appwrite.ListApplications: %w", err)
	}
	return &list, nil
}

// UpdateApplication applies a partial payload to an existing document.
func (c *Client) UpdateApplication(ctx context.Context, id string, in domain.ApplicationInput) (*domain.Application, error) {
	body := map[string]any{"data": in}
	var a domain.Application
	if err := c.doRequest(ctx, http.MethodPatch, c.documentsPath()+"/"+url.PathEscape(id), body, &a); err != nil {
		return nil, fmt.Errorf("appwrite.UpdateApplication: %w", err)
	}
	return &a, nil
}

// DeleteApplication removes a document permanently.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, c.documentsPath()+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("appwrite.DeleteApplication: %w", err)
	}
	return nil
}

// --- Transport ---

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Appwrite-Project", c.project)
	req.Header.Set("X-Appwrite-Response-Format", "1.6")
	c.mu.RLock()
	if c.session != "" {
		req.Header.Set("X-Appwrite-Session", c.session)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Type: apiErr.Type, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
