package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
)

const usersPath = "/users"

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.Identity, error) {
	var users []models.Identity
	if err := c.getJSON(ctx, usersPath, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.Identity, error) {
	var user models.Identity
	if err := c.getJSON(ctx, resourcePath(usersPath, id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, in models.UserInput) (*models.Identity, error) {
	var user models.Identity
	if err := c.sendJSON(ctx, http.MethodPost, usersPath, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, in models.UserInput) (*models.Identity, error) {
	var user models.Identity
	if err := c.sendJSON(ctx, http.MethodPut, resourcePath(usersPath, id), in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, resourcePath(usersPath, id))
}
