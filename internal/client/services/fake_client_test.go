package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/trainingportal/internal/client/cache"
	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/client/storage"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupCache(t *testing.T) (*cache.Cache, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, storage.RunMigrations(context.Background(), db))
	return cache.New(storage.NewSQLiteRepository(db), "test-passphrase", logging.NewDiscardLogger()), db
}

func cachedRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv_cache`).Scan(&n))
	return n
}

// ---- fake client ----

// fakeClient implements client.Client. Unset funcs return zero values.
type fakeClient struct {
	LoginFn      func(username string, password []byte) (*client.LoginResponse, error)
	PingErr      error
	LogoutCalls  int
	LastLoginPwd []byte

	Users         []models.Identity
	ListUsersErr  error
	GetUserFn     func(id string) (*models.Identity, error)
	CreateUserFn  func(in models.UserInput) (*models.Identity, error)
	UpdateUserFn  func(id string, in models.UserInput) (*models.Identity, error)
	DeleteUserErr error
	DeletedUsers  []string

	Videos         []models.Video
	ListVideosErr  error
	LastVideoQuery models.VideoQuery
	VideoCalls     int
	CreateVideoFn  func(in models.VideoInput) (*models.Video, error)
	UpdateVideoFn  func(id string, in models.VideoInput) (*models.Video, error)
	DeletedVideos  []string

	Categories        []models.Category
	ListCategoriesErr error
	CreatedCategories []models.CategoryInput
	UpdatedCategories []models.CategoryInput
	DeletedCategories []string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, username string, password []byte) (*client.LoginResponse, error) {
	f.LastLoginPwd = append([]byte(nil), password...)
	if f.LoginFn == nil {
		return nil, client.ErrUnauthorized
	}
	return f.LoginFn(username, password)
}

func (f *fakeClient) Logout() { f.LogoutCalls++ }

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) ListUsers(context.Context) ([]models.Identity, error) {
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	return f.Users, nil
}

func (f *fakeClient) GetUser(_ context.Context, id string) (*models.Identity, error) {
	if f.GetUserFn == nil {
		return nil, client.ErrNotFound
	}
	return f.GetUserFn(id)
}

func (f *fakeClient) CreateUser(_ context.Context, in models.UserInput) (*models.Identity, error) {
	if f.CreateUserFn == nil {
		return &models.Identity{ID: "new", Name: in.Name, Email: in.Email, Login: in.Login, Role: in.Role}, nil
	}
	return f.CreateUserFn(in)
}

func (f *fakeClient) UpdateUser(_ context.Context, id string, in models.UserInput) (*models.Identity, error) {
	if f.UpdateUserFn == nil {
		return &models.Identity{ID: id, Name: in.Name, Email: in.Email, Login: in.Login, Role: in.Role}, nil
	}
	return f.UpdateUserFn(id, in)
}

func (f *fakeClient) DeleteUser(_ context.Context, id string) error {
	if f.DeleteUserErr != nil {
		return f.DeleteUserErr
	}
	f.DeletedUsers = append(f.DeletedUsers, id)
	return nil
}

func (f *fakeClient) ListVideos(_ context.Context, q models.VideoQuery) ([]models.Video, error) {
	f.LastVideoQuery = q
	f.VideoCalls++
	if f.ListVideosErr != nil {
		return nil, f.ListVideosErr
	}
	return f.Videos, nil
}

func (f *fakeClient) GetVideo(_ context.Context, id string) (*models.Video, error) {
	for _, v := range f.Videos {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeClient) CreateVideo(_ context.Context, in models.VideoInput) (*models.Video, error) {
	f.VideoCalls++
	if f.CreateVideoFn == nil {
		return &models.Video{ID: "v-new", Title: in.Title, Link: in.Link, CategoryID: in.CategoryID, AllowedUsers: in.AllowedUsers}, nil
	}
	return f.CreateVideoFn(in)
}

func (f *fakeClient) UpdateVideo(_ context.Context, id string, in models.VideoInput) (*models.Video, error) {
	f.VideoCalls++
	if f.UpdateVideoFn == nil {
		return &models.Video{ID: id, Title: in.Title, Link: in.Link, CategoryID: in.CategoryID, AllowedUsers: in.AllowedUsers}, nil
	}
	return f.UpdateVideoFn(id, in)
}

func (f *fakeClient) DeleteVideo(_ context.Context, id string) error {
	f.DeletedVideos = append(f.DeletedVideos, id)
	return nil
}

func (f *fakeClient) ListCategories(context.Context) ([]models.Category, error) {
	if f.ListCategoriesErr != nil {
		return nil, f.ListCategoriesErr
	}
	return f.Categories, nil
}

func (f *fakeClient) GetCategory(_ context.Context, id string) (*models.Category, error) {
	for _, c := range f.Categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeClient) CreateCategory(_ context.Context, in models.CategoryInput) (*models.Category, error) {
	f.CreatedCategories = append(f.CreatedCategories, in)
	return &models.Category{ID: "c-new", Name: in.Name}, nil
}

func (f *fakeClient) UpdateCategory(_ context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	f.UpdatedCategories = append(f.UpdatedCategories, in)
	return &models.Category{ID: id, Name: in.Name}, nil
}

func (f *fakeClient) DeleteCategory(_ context.Context, id string) error {
	f.DeletedCategories = append(f.DeletedCategories, id)
	return nil
}
