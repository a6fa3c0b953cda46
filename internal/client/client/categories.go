package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
)

const categoriesPath = "/categories"

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, categoriesPath, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *HTTPClient) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := c.getJSON(ctx, resourcePath(categoriesPath, id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.sendJSON(ctx, http.MethodPost, categoriesPath, in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.sendJSON(ctx, http.MethodPut, resourcePath(categoriesPath, id), in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, resourcePath(categoriesPath, id))
}
