package client

import (
	"context"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
)

// LoginResponse is the body of a successful POST /auth/login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        LoginUser `json:"user"`
}

// LoginUser is the profile embedded in LoginResponse. Every field may be
// missing on the wire.
type LoginUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Login string      `json:"login"`
	Role  models.Role `json:"role"`
}

type AuthClient interface {
	Login(ctx context.Context, username string, password []byte) (*LoginResponse, error)
	Logout()
	Ping(ctx context.Context) error
}

type UserClient interface {
	ListUsers(ctx context.Context) ([]models.Identity, error)
	GetUser(ctx context.Context, id string) (*models.Identity, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.Identity, error)
	UpdateUser(ctx context.Context, id string, in models.UserInput) (*models.Identity, error)
	DeleteUser(ctx context.Context, id string) error
}

type VideoClient interface {
	ListVideos(ctx context.Context, q models.VideoQuery) ([]models.Video, error)
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	CreateVideo(ctx context.Context, in models.VideoInput) (*models.Video, error)
	UpdateVideo(ctx context.Context, id string, in models.VideoInput) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}

type CategoryClient interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Client is the full portal API surface.
type Client interface {
	AuthClient
	UserClient
	VideoClient
	CategoryClient
}
