package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/google/go-querystring/query"
)

const videosPath = "/videos"

// ListVideos returns the videos matching the optional server-side filters
// in q. An empty query lists everything.
func (c *HTTPClient) ListVideos(ctx context.Context, q models.VideoQuery) ([]models.Video, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encode video query: %w", err)
	}

	var videos []models.Video
	if err := c.getJSON(ctx, videosPath, values, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *HTTPClient) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	if err := c.getJSON(ctx, resourcePath(videosPath, id), nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *HTTPClient) CreateVideo(ctx context.Context, in models.VideoInput) (*models.Video, error) {
	var video models.Video
	if err := c.sendJSON(ctx, http.MethodPost, videosPath, withAllowList(in), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *HTTPClient) UpdateVideo(ctx context.Context, id string, in models.VideoInput) (*models.Video, error) {
	var video models.Video
	if err := c.sendJSON(ctx, http.MethodPut, resourcePath(videosPath, id), withAllowList(in), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (c *HTTPClient) DeleteVideo(ctx context.Context, id string) error {
	return c.delete(ctx, resourcePath(videosPath, id))
}

// withAllowList makes sure allowed_users is sent as [] rather than null.
func withAllowList(in models.VideoInput) models.VideoInput {
	if in.AllowedUsers == nil {
		in.AllowedUsers = []string{}
	}
	return in
}
