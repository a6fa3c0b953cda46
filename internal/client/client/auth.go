package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
)

type loginForm struct {
	Username string `url:"username"`
	Password string `url:"password"`
}

// Login exchanges credentials for an access token. A 2xx response without
// a token is a failure (ErrNoAccessToken). On success the token is kept for
// subsequent requests.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*LoginResponse, error) {
	form, err := query.Values(loginForm{Username: username, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("encode login form: %w", err)
	}

	var resp LoginResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        []byte(form.Encode()),
		contentType: contentTypeForm,
	}, &resp)
	if err != nil {
		c.setToken("")
		return nil, err
	}

	if resp.AccessToken == "" {
		c.setToken("")
		c.logger.Warn(ctx, "login response without access token", "username", username)
		return nil, ErrNoAccessToken
	}

	c.setToken(resp.AccessToken)
	return &resp, nil
}

// Logout forgets the access token. The API has no server-side logout.
func (c *HTTPClient) Logout() {
	c.setToken("")
}

// Ping checks that the API root answers with a 2xx status.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.getJSON(ctx, "/", nil, nil)
}
