package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
)

// fakeClient implements client.Client with scripted results and a call log.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	lists   map[Collection][]models.Project
	listErr map[Collection]error

	createErr error
	updateErr error
	deleteErr error
	decideErr error

	loginRet    models.Credentials
	loginErr    error
	registerErr error
	pingErr     error

	originality    *models.OriginalityReport
	originalityErr error

	lastToken string
	lastInput models.ProjectInput
	lastID    int64
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		lists:   map[Collection][]models.Project{},
		listErr: map[Collection]error{},
	}
}

func (f *fakeClient) record(call, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.lastToken = token
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeClient) list(c Collection, token string) ([]models.Project, error) {
	f.record("list:"+string(c), token)
	if token == "" {
		return nil, client.ErrUnauthorized
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[c]; err != nil {
		return nil, err
	}
	return append([]models.Project{}, f.lists[c]...), nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.record("ping", "")
	return f.pingErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.Credentials, error) {
	f.record("login", "")
	return f.loginRet, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password string, role models.Role) error {
	f.record("register:"+string(role), "")
	return f.registerErr
}

func (f *fakeClient) ListApproved(ctx context.Context, token string) ([]models.Project, error) {
	return f.list(CollectionApproved, token)
}

func (f *fakeClient) ListMine(ctx context.Context, token string) ([]models.Project, error) {
	return f.list(CollectionMine, token)
}

func (f *fakeClient) ListMentored(ctx context.Context, token string) ([]models.Project, error) {
	return f.list(CollectionMentored, token)
}

func (f *fakeClient) ListPending(ctx context.Context, token string) ([]models.Project, error) {
	return f.list(CollectionPending, token)
}

func (f *fakeClient) CreateProject(ctx context.Context, token string, in models.ProjectInput) (*models.Project, error) {
	f.record("create", token)
	f.mu.Lock()
	f.lastInput = in
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Project{ID: 100, Title: in.Title, Synopsis: in.Synopsis, Status: models.StatusPending}, nil
}

func (f *fakeClient) UpdateProject(ctx context.Context, token string, id int64, in models.ProjectInput) (*models.Project, error) {
	f.record("update", token)
	f.mu.Lock()
	f.lastInput, f.lastID = in, id
	f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Project{ID: id, Title: in.Title, Status: models.StatusPending}, nil
}

func (f *fakeClient) DeleteProject(ctx context.Context, token string, id int64) error {
	f.record("delete", token)
	f.mu.Lock()
	f.lastID = id
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeClient) Decide(ctx context.Context, token string, id int64, action models.Action) (*models.Project, error) {
	f.record("decide:"+string(action), token)
	f.mu.Lock()
	f.lastID = id
	f.mu.Unlock()
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	status := models.StatusApproved
	if action == models.ActionReject {
		status = models.StatusRejected
	}
	return &models.Project{ID: id, Status: status}, nil
}

func (f *fakeClient) CheckOriginality(ctx context.Context, token, title, synopsis string) (*models.OriginalityReport, error) {
	f.record("check", token)
	return f.originality, f.originalityErr
}

func (f *fakeClient) Weather(ctx context.Context) (*models.Weather, error) {
	f.record("weather", "")
	return &models.Weather{Temp: 20.5, Description: "clear sky", City: "Riga"}, nil
}

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	mu          sync.Mutex
	current     models.Session
	cleared     int
	clearErr    error
	established int
}

func newFakeSessions(s models.Session) *fakeSessions {
	return &fakeSessions{current: s}
}

func (f *fakeSessions) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
	f.current = models.Session{}
	return f.clearErr
}

func (f *fakeSessions) Establish(ctx context.Context, credential string, role models.Role) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.established++
	f.current = models.Session{Role: role, Credential: credential}
	return f.current, nil
}

func (f *fakeSessions) Current() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSessions) Cleared() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

var (
	student = models.Session{Role: models.RoleStudent, Credential: "student-token"}
	teacher = models.Session{Role: models.RoleTeacher, Credential: "teacher-token"}
)

func containsID(list []models.Project, id int64) bool {
	for _, p := range list {
		if p.ID == id {
			return true
		}
	}
	return false
}
