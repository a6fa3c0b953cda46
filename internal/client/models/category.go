package models

// Category groups videos.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryInput is the writable shape of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}
