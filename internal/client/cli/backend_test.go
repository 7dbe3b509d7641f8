package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

type backendUser struct {
	id       int64
	email    string
	password string
	role     models.Role
}

type backendProject struct {
	models.Project
	mentor string
}

// fakeBackend is an in-memory stand-in for the project registry REST API.
type fakeBackend struct {
	t *testing.T

	mu       sync.Mutex
	users    map[string]*backendUser
	tokens   map[string]*backendUser
	projects map[int64]*backendProject
	nextID   int64
	hits     []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{
		t:        t,
		users:    map[string]*backendUser{},
		tokens:   map[string]*backendUser{},
		projects: map[int64]*backendProject{},
		nextID:   1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		b.json(w, http.StatusOK, map[string]string{"message": "Welcome"})
	})
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("POST /auth/register", b.register)
	mux.HandleFunc("GET /weather", func(w http.ResponseWriter, r *http.Request) {
		b.json(w, http.StatusOK, models.Weather{Temp: 18.6, Description: "few clouds", Icon: "02d", City: "Riga"})
	})
	mux.HandleFunc("GET /projects", b.authed(b.listApproved))
	mux.HandleFunc("GET /projects/my-projects", b.authed(b.listMine))
	mux.HandleFunc("GET /projects/mentored", b.authed(b.listMentored))
	mux.HandleFunc("GET /projects/pending", b.authed(b.listPending))
	mux.HandleFunc("POST /projects", b.authed(b.create))
	mux.HandleFunc("POST /projects/check-originality", b.authed(b.check))
	mux.HandleFunc("PUT /projects/{id}", b.authed(b.update))
	mux.HandleFunc("DELETE /projects/{id}", b.authed(b.remove))
	mux.HandleFunc("PUT /projects/{id}/{action}", b.authed(b.decide))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits = append(b.hits, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *fakeBackend) addUser(email, password string, role models.Role) *backendUser {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := &backendUser{id: int64(len(b.users) + 1), email: email, password: password, role: role}
	b.users[email] = u
	return u
}

func (b *fakeBackend) addProject(p models.Project, owner *backendUser, mentor string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if owner != nil {
		p.OwnerID = &owner.id
	}
	b.projects[p.ID] = &backendProject{Project: p, mentor: mentor}
	if p.ID >= b.nextID {
		b.nextID = p.ID + 1
	}
}

// revokeAll invalidates every issued token.
func (b *fakeBackend) revokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]*backendUser{}
}

func (b *fakeBackend) Hits() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.hits...)
}

func (b *fakeBackend) resetHits() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits = nil
}

func (b *fakeBackend) project(id int64) (models.Project, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[id]
	if !ok {
		return models.Project{}, false
	}
	return p.Project, true
}

func (b *fakeBackend) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) detail(w http.ResponseWriter, status int, msg string) {
	b.json(w, status, map[string]string{"detail": msg})
}

func (b *fakeBackend) authed(h func(http.ResponseWriter, *http.Request, *backendUser)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		u, ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			b.detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		h(w, r, u)
	}
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		b.detail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	u, ok := b.users[r.PostForm.Get("username")]
	b.mu.Unlock()
	if !ok || u.password != r.PostForm.Get("password") {
		b.detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.email,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		b.t.Errorf("sign token: %v", err)
		return
	}

	b.mu.Lock()
	b.tokens[token] = u
	b.mu.Unlock()
	b.json(w, http.StatusOK, models.Credentials{AccessToken: token, TokenType: "bearer", Role: u.role})
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		b.detail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	_, exists := b.users[body.Email]
	b.mu.Unlock()
	if exists {
		b.detail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	b.addUser(body.Email, body.Password, body.Role)
	b.json(w, http.StatusOK, map[string]any{"email": body.Email, "role": body.Role})
}

func (b *fakeBackend) filter(keep func(*backendProject) bool) []models.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Project{}
	for id := int64(1); id < b.nextID; id++ {
		if p, ok := b.projects[id]; ok && keep(p) {
			out = append(out, p.Project)
		}
	}
	return out
}

func (b *fakeBackend) listApproved(w http.ResponseWriter, r *http.Request, u *backendUser) {
	b.json(w, http.StatusOK, b.filter(func(p *backendProject) bool { return p.Status == models.StatusApproved }))
}

func (b *fakeBackend) listMine(w http.ResponseWriter, r *http.Request, u *backendUser) {
	b.json(w, http.StatusOK, b.filter(func(p *backendProject) bool { return p.OwnerID != nil && *p.OwnerID == u.id }))
}

func (b *fakeBackend) listMentored(w http.ResponseWriter, r *http.Request, u *backendUser) {
	b.json(w, http.StatusOK, b.filter(func(p *backendProject) bool {
		return p.mentor == u.email && p.Status == models.StatusApproved
	}))
}

func (b *fakeBackend) listPending(w http.ResponseWriter, r *http.Request, u *backendUser) {
	b.json(w, http.StatusOK, b.filter(func(p *backendProject) bool { return p.Status == models.StatusPending }))
}

func (b *fakeBackend) create(w http.ResponseWriter, r *http.Request, u *backendUser) {
	var in models.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		b.detail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if u.role == models.RoleStudent {
		b.mu.Lock()
		m, ok := b.users[in.MentorEmail]
		b.mu.Unlock()
		if !ok || m.role != models.RoleTeacher {
			b.detail(w, http.StatusBadRequest, "Mentor with email "+in.MentorEmail+" not found")
			return
		}
	}

	b.mu.Lock()
	id := b.nextID
	b.mu.Unlock()
	p := models.Project{ID: id, Title: in.Title, Synopsis: in.Synopsis, Status: models.StatusPending}
	b.addProject(p, u, in.MentorEmail)
	stored, _ := b.project(id)
	b.json(w, http.StatusCreated, stored)
}

func (b *fakeBackend) pathID(w http.ResponseWriter, r *http.Request) (*backendProject, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		b.detail(w, http.StatusUnprocessableEntity, "invalid id")
		return nil, false
	}
	b.mu.Lock()
	p, ok := b.projects[id]
	b.mu.Unlock()
	if !ok {
		b.detail(w, http.StatusNotFound, "Project not found")
		return nil, false
	}
	return p, true
}

func (b *fakeBackend) update(w http.ResponseWriter, r *http.Request, u *backendUser) {
	p, ok := b.pathID(w, r)
	if !ok {
		return
	}
	var in models.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		b.detail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.mu.Lock()
	p.Title, p.Synopsis = in.Title, in.Synopsis
	out := p.Project
	b.mu.Unlock()
	b.json(w, http.StatusOK, out)
}

func (b *fakeBackend) remove(w http.ResponseWriter, r *http.Request, u *backendUser) {
	p, ok := b.pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	delete(b.projects, p.ID)
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) decide(w http.ResponseWriter, r *http.Request, u *backendUser) {
	if u.role != models.RoleTeacher {
		b.detail(w, http.StatusForbidden, "Only teachers can approve projects")
		return
	}
	p, ok := b.pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	switch r.PathValue("action") {
	case "approve":
		p.Status = models.StatusApproved
		p.mentor = u.email
	case "reject":
		p.Status = models.StatusRejected
	}
	out := p.Project
	b.mu.Unlock()
	b.json(w, http.StatusOK, out)
}

func (b *fakeBackend) check(w http.ResponseWriter, r *http.Request, u *backendUser) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		b.detail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report := models.OriginalityReport{IsOriginal: true, Message: "Your project idea appears to be original!", SimilarProjects: []models.SimilarProject{}}
	for _, p := range b.filter(func(p *backendProject) bool { return p.Status == models.StatusApproved }) {
		if strings.EqualFold(p.Title, body.Title) {
			report.IsOriginal = false
			report.Message = "Your project is too similar to existing projects."
			report.SimilarProjects = append(report.SimilarProjects, models.SimilarProject{ID: p.ID, Title: p.Title, SimilarityScore: 0.93})
		}
	}
	b.json(w, http.StatusOK, report)
}
