package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

// CatalogService covers videos and categories. Inputs are validated before
// any request is made.
type CatalogService interface {
	ListVideos(ctx context.Context, q models.VideoQuery) ([]models.Video, error)
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	CreateVideo(ctx context.Context, in models.VideoInput) (*models.Video, error)
	UpdateVideo(ctx context.Context, id string, in models.VideoInput) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type catalogService struct {
	api    client.Client
	logger logging.Logger
}

func NewCatalogService(api client.Client, logger logging.Logger) CatalogService {
	return &catalogService{api: api, logger: logger.With("component", "catalog")}
}

func (s *catalogService) ListVideos(ctx context.Context, q models.VideoQuery) ([]models.Video, error) {
	videos, err := s.api.ListVideos(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list videos error: %w", err)
	}
	return videos, nil
}

func (s *catalogService) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	video, err := s.api.GetVideo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get video error: %w", err)
	}
	return video, nil
}

func (s *catalogService) CreateVideo(ctx context.Context, in models.VideoInput) (*models.Video, error) {
	in = normalizeVideo(in)
	if err := validateStruct(in).asError(); err != nil {
		return nil, err
	}

	video, err := s.api.CreateVideo(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create video error: %w", err)
	}
	s.logger.Info(ctx, "video created", "video_id", video.ID)
	return video, nil
}

func (s *catalogService) UpdateVideo(ctx context.Context, id string, in models.VideoInput) (*models.Video, error) {
	in = normalizeVideo(in)
	if err := validateStruct(in).asError(); err != nil {
		return nil, err
	}

	video, err := s.api.UpdateVideo(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update video error: %w", err)
	}
	return video, nil
}

func (s *catalogService) DeleteVideo(ctx context.Context, id string) error {
	if err := s.api.DeleteVideo(ctx, id); err != nil {
		return fmt.Errorf("delete video error: %w", err)
	}
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories error: %w", err)
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.api.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category error: %w", err)
	}
	return category, nil
}

// CreateCategory refuses names that already exist, compared trimmed and
// case-insensitively. The server does not enforce this.
func (s *catalogService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validateCategory(ctx, "", in); err != nil {
		return nil, err
	}

	category, err := s.api.CreateCategory(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create category error: %w", err)
	}
	s.logger.Info(ctx, "category created", "category_id", category.ID)
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validateCategory(ctx, id, in); err != nil {
		return nil, err
	}

	category, err := s.api.UpdateCategory(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update category error: %w", err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category error: %w", err)
	}
	return nil
}

// validateCategory checks the name and its uniqueness against the current
// list. selfID is skipped so a category can be saved under its own name.
func (s *catalogService) validateCategory(ctx context.Context, selfID string, in models.CategoryInput) error {
	if verr := validateStruct(in); verr != nil {
		return verr
	}

	existing, err := s.api.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories error: %w", err)
	}
	if categoryNameTaken(existing, selfID, in.Name) {
		return (*ValidationError)(nil).add("name", "unique")
	}
	return nil
}

func categoryNameTaken(existing []models.Category, selfID, name string) bool {
	for _, c := range existing {
		if c.ID != selfID && strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return true
		}
	}
	return false
}

func normalizeVideo(in models.VideoInput) models.VideoInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Link = strings.TrimSpace(in.Link)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	return in
}

var youtubeID = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|embed/))([\w-]{11})`)

// EmbedURL turns a YouTube watch, short or embed link into an embeddable
// URL. Other links are returned unchanged.
func EmbedURL(link string) string {
	m := youtubeID.FindStringSubmatch(link)
	if m == nil {
		return link
	}
	return "https://www.youtube.com/embed/" + m[1]
}

// CountAllowed returns how many of users are on the allow-list of v.
// Ids of users that no longer exist are not counted.
func CountAllowed(v models.Video, users []models.Identity) int {
	allowed := make(map[string]struct{}, len(v.AllowedUsers))
	for _, id := range v.AllowedUsers {
		allowed[id] = struct{}{}
	}

	n := 0
	for _, u := range users {
		if _, ok := allowed[u.ID]; ok {
			n++
		}
	}
	return n
}
