package models

import (
	"slices"

	"github.com/dmitrijs2005/trainingportal/internal/timex"
)

// Video is a training video as returned by the API.
type Video struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Link         string          `json:"link"`
	CategoryID   string          `json:"category_id"`
	Category     *Category       `json:"category,omitempty"`
	AllowedUsers []string        `json:"allowed_users"`
	UsersCount   int             `json:"users_count,omitempty"`
	CreatedAt    timex.Timestamp `json:"created_at"`
	UpdatedAt    timex.Timestamp `json:"updated_at"`
}

// VisibleTo reports whether the video may be shown to identity.
// Administrators see everything; others need to be on the allow-list;
// an anonymous caller sees nothing.
func (v Video) VisibleTo(identity *Identity) bool {
	if identity == nil {
		return false
	}
	if identity.IsAdmin() {
		return true
	}
	return slices.Contains(v.AllowedUsers, identity.ID)
}

// VideoInput is the writable shape of a video.
type VideoInput struct {
	Title        string   `json:"title" validate:"required"`
	Link         string   `json:"link" validate:"required,url"`
	CategoryID   string   `json:"category_id" validate:"required"`
	AllowedUsers []string `json:"allowed_users"`
}

// InputFromVideo returns the writable fields of v.
func InputFromVideo(v Video) VideoInput {
	return VideoInput{
		Title:        v.Title,
		Link:         v.Link,
		CategoryID:   v.CategoryID,
		AllowedUsers: slices.Clone(v.AllowedUsers),
	}
}

// VideoQuery holds the optional server-side list filters.
type VideoQuery struct {
	CategoryID string `url:"category,omitempty"`
	UserID     string `url:"user,omitempty"`
}
