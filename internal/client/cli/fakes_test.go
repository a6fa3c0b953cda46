package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/config"
	"github.com/dmitrijs2005/trainingportal/internal/client/feed"
	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/client/services"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

// ---- fake session ----

// fakeSession guards current because the feed and watcher goroutines read
// it while the REPL logs in and out.
type fakeSession struct {
	mu      sync.Mutex
	current *models.Identity
	users   []models.Identity

	loginErr   error
	loginWith  *models.Identity
	lastLogin  string
	lastPass   string
	registered []models.UserInput
	updated    []models.UserInput
	deleted    []string
	pingErr    error
	initCalled bool
}

var _ services.SessionService = (*fakeSession)(nil)

func (f *fakeSession) Init(context.Context) { f.initCalled = true }

func (f *fakeSession) Login(_ context.Context, login string, password []byte) error {
	f.lastLogin, f.lastPass = login, string(password)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	if f.loginErr != nil {
		return f.loginErr
	}
	f.current = f.loginWith
	return nil
}

func (f *fakeSession) Logout(context.Context) {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
}

func (f *fakeSession) Register(_ context.Context, in models.UserInput) (*models.Identity, error) {
	f.registered = append(f.registered, in)
	return &models.Identity{ID: "new", Name: in.Name, Role: in.Role}, nil
}

func (f *fakeSession) UpdateUser(_ context.Context, id string, in models.UserInput) (*models.Identity, error) {
	f.updated = append(f.updated, in)
	return &models.Identity{ID: id, Name: in.Name, Email: in.Email, Login: in.Login, Role: in.Role}, nil
}

func (f *fakeSession) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current != nil && f.current.ID == id {
		f.current = nil
	}
	return nil
}

func (f *fakeSession) ListUsers(context.Context) ([]models.Identity, error) { return f.users, nil }

func (f *fakeSession) GetUserByID(_ context.Context, id string) (*models.Identity, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeSession) Ping(context.Context) error { return f.pingErr }

func (f *fakeSession) Identity() *models.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return nil
	}
	c := *f.current
	return &c
}

func (f *fakeSession) IsAuthenticated() bool { return f.Identity() != nil }
func (f *fakeSession) IsAdmin() bool         { return f.Identity().IsAdmin() }

// ---- fake catalog ----

type fakeCatalog struct {
	videos     []models.Video
	categories []models.Category

	created     []models.VideoInput
	updated     map[string]models.VideoInput
	deleted     []string
	createdCats []models.CategoryInput
	updatedCats map[string]models.CategoryInput
	deletedCats []string
	createErr   error
}

var _ services.CatalogService = (*fakeCatalog)(nil)

func (f *fakeCatalog) ListVideos(context.Context, models.VideoQuery) ([]models.Video, error) {
	return f.videos, nil
}

func (f *fakeCatalog) GetVideo(_ context.Context, id string) (*models.Video, error) {
	for _, v := range f.videos {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeCatalog) CreateVideo(_ context.Context, in models.VideoInput) (*models.Video, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &models.Video{ID: "v-new", Title: in.Title}, nil
}

func (f *fakeCatalog) UpdateVideo(_ context.Context, id string, in models.VideoInput) (*models.Video, error) {
	if f.updated == nil {
		f.updated = map[string]models.VideoInput{}
	}
	f.updated[id] = in
	return &models.Video{ID: id, Title: in.Title}, nil
}

func (f *fakeCatalog) DeleteVideo(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) ListCategories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalog) GetCategory(_ context.Context, id string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeCatalog) CreateCategory(_ context.Context, in models.CategoryInput) (*models.Category, error) {
	f.createdCats = append(f.createdCats, in)
	return &models.Category{ID: "c-new", Name: in.Name}, nil
}

func (f *fakeCatalog) UpdateCategory(_ context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	if f.updatedCats == nil {
		f.updatedCats = map[string]models.CategoryInput{}
	}
	f.updatedCats[id] = in
	return &models.Category{ID: id, Name: in.Name}, nil
}

func (f *fakeCatalog) DeleteCategory(_ context.Context, id string) error {
	f.deletedCats = append(f.deletedCats, id)
	return nil
}

// ---- helpers ----

var (
	alice = &models.Identity{ID: "1", Name: "Alice", Email: "a@x.com", Login: "alice", Role: models.RoleUser}
	root  = &models.Identity{ID: "9", Name: "Root", Email: "r@x.com", Login: "root", Role: models.RoleAdmin}
)

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		videos: []models.Video{
			{ID: "v1", Title: "Fire Safety", Link: "https://youtu.be/dQw4w9WgXcQ", CategoryID: "c1", AllowedUsers: []string{"1"}},
			{ID: "v2", Title: "Welcome", Link: "https://example.com/welcome", CategoryID: "c2", AllowedUsers: []string{"2"}},
		},
		categories: []models.Category{{ID: "c1", Name: "Safety"}, {ID: "c2", Name: "Onboarding"}},
	}
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(s *fakeSession, c *fakeCatalog, in *bufio.Reader) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := logging.NewDiscardLogger()
	cfg := &config.Config{OnlineCheckInterval: time.Hour, PollInterval: time.Hour}
	return &App{
		config:  cfg,
		session: s,
		catalog: c,
		feed:    feed.NewController(c, s, time.Hour, logger),
		logger:  logger,
		reader:  in,
		out:     out,
	}, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}
