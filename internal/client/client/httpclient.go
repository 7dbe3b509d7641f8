package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/common"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// WithTimeout sets a whole-request timeout. Zero keeps requests unbounded.
// The timeout is set on a copy, so a client passed with WithHTTPClient is
// left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = l
	}
}

// NewHTTPClient returns a client for the backend at baseURL
// (e.g. "http://127.0.0.1:8000").
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// request describes one outbound call.
type request struct {
	method        string
	path          string
	body          any
	form          url.Values
	token         string
	authenticated bool
	// expectStatus, when set, is the only success status accepted.
	expectStatus int
}

// call issues r and decodes a successful JSON payload into out (if non-nil).
//
// Outcomes:
//   - nil on success;
//   - ErrUnauthorized on 401, or when r is authenticated and has no token
//     (no request is sent in that case);
//   - *APIError for any other unsuccessful status;
//   - an error wrapping ErrUnavailable when the request could not complete.
func (c *HTTPClient) call(ctx context.Context, r request, out any) error {
	if r.authenticated && r.token == "" {
		return ErrUnauthorized
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.authenticated {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(r.token))
	}

	log := c.logger.With("request_id", requestID, "method", r.method, "path", r.path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request completed", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return ErrUnauthorized
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if r.expectStatus != 0 {
		ok = resp.StatusCode == r.expectStatus
	}
	if !ok {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, b)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func projectPath(id int64, suffix ...string) string {
	p := "/projects/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Ping probes the backend root endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.call(ctx, request{method: http.MethodGet, path: "/"}, nil)
}

// Login exchanges email/password for a bearer credential and the user's
// role. The backend expects an OAuth2 password form.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Credentials, error) {
	var creds models.Credentials
	err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		form:   url.Values{"username": {email}, "password": {password}},
	}, &creds)
	if errors.Is(err, ErrUnauthorized) {
		return models.Credentials{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Credentials{}, err
	}
	if creds.AccessToken == "" {
		return models.Credentials{}, fmt.Errorf("%w: login response carries no access token", ErrRequestFailed)
	}
	return creds, nil
}

// Register creates a new account tagged with role. It does not log in.
func (c *HTTPClient) Register(ctx context.Context, email, password string, role models.Role) error {
	body := struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}{email, password, role}

	return c.call(ctx, request{method: http.MethodPost, path: "/auth/register", body: body}, nil)
}

func (c *HTTPClient) list(ctx context.Context, token, path string) ([]models.Project, error) {
	var projects []models.Project
	err := c.call(ctx, request{method: http.MethodGet, path: path, token: token, authenticated: true}, &projects)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// ListApproved returns every approved project.
func (c *HTTPClient) ListApproved(ctx context.Context, token string) ([]models.Project, error) {
	return c.list(ctx, token, "/projects")
}

// ListMine returns the caller's own projects in any status.
func (c *HTTPClient) ListMine(ctx context.Context, token string) ([]models.Project, error) {
	return c.list(ctx, token, "/projects/my-projects")
}

// ListMentored returns approved projects assigned to the calling teacher.
func (c *HTTPClient) ListMentored(ctx context.Context, token string) ([]models.Project, error) {
	return c.list(ctx, token, "/projects/mentored")
}

// ListPending returns projects awaiting a decision.
func (c *HTTPClient) ListPending(ctx context.Context, token string) ([]models.Project, error) {
	return c.list(ctx, token, "/projects/pending")
}

func (c *HTTPClient) CreateProject(ctx context.Context, token string, in models.ProjectInput) (*models.Project, error) {
	var p models.Project
	err := c.call(ctx, request{method: http.MethodPost, path: "/projects", body: in, token: token, authenticated: true}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProject(ctx context.Context, token string, id int64, in models.ProjectInput) (*models.Project, error) {
	in.MentorEmail = ""

	var p models.Project
	err := c.call(ctx, request{method: http.MethodPut, path: projectPath(id), body: in, token: token, authenticated: true}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes a project. Only 204 No Content counts as success.
func (c *HTTPClient) DeleteProject(ctx context.Context, token string, id int64) error {
	return c.call(ctx, request{
		method:        http.MethodDelete,
		path:          projectPath(id),
		token:         token,
		authenticated: true,
		expectStatus:  http.StatusNoContent,
	}, nil)
}

// Decide approves or rejects a pending project.
func (c *HTTPClient) Decide(ctx context.Context, token string, id int64, action models.Action) (*models.Project, error) {
	if _, err := models.ParseAction(string(action)); err != nil {
		return nil, err
	}

	var p models.Project
	err := c.call(ctx, request{method: http.MethodPut, path: projectPath(id, string(action)), token: token, authenticated: true}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckOriginality asks the backend how similar a candidate idea is to
// existing approved projects.
func (c *HTTPClient) CheckOriginality(ctx context.Context, token, title, synopsis string) (*models.OriginalityReport, error) {
	body := struct {
		Title    string `json:"title"`
		Synopsis string `json:"synopsis"`
	}{title, synopsis}

	var report models.OriginalityReport
	err := c.call(ctx, request{method: http.MethodPost, path: "/projects/check-originality", body: body, token: token, authenticated: true}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Weather fetches the ambient weather summary. No credential is sent.
func (c *HTTPClient) Weather(ctx context.Context) (*models.Weather, error) {
	var w models.Weather
	if err := c.call(ctx, request{method: http.MethodGet, path: "/weather"}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

var _ Client = (*HTTPClient)(nil)
