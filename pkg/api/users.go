package api

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"
)

// Login exchanges credentials for a bearer token. The token is returned,
// not stored; storing it is the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.request(ctx, http.MethodPost, "/api/auth", nil, LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	token := resp.get("data.accessToken")
	if token.Type != gjson.String || token.String() == "" {
		return "", malformed(resp.status, "login")
	}
	return token.String(), nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodDelete, "/api/auth", nil, nil)
	return err
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	resp, err := c.request(ctx, http.MethodPost, "/api/users", nil, req)
	if err != nil {
		return nil, err
	}
	var user User
	if resp.get("data").IsObject() {
		if err := resp.decode("data", &user); err != nil {
			return nil, malformed(resp.status, "signup")
		}
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.request(ctx, http.MethodGet, "/api/users/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(resp, "user info")
}

func (c *Client) UpdateMe(ctx context.Context, req UpdateUserRequest) (*User, error) {
	resp, err := c.request(ctx, http.MethodPatch, "/api/users/me", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeUser(resp, "update user")
}

func (c *Client) DeleteMe(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodDelete, "/api/users/me", nil, nil)
	return err
}

type emailQuery struct {
	Email string `url:"email"`
}

type nicknameQuery struct {
	Nickname string `url:"nickname"`
}

// CheckEmail reports whether email is still free.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	resp, err := c.request(ctx, http.MethodGet, "/api/users/email", emailQuery{Email: email}, nil)
	if err != nil {
		return false, err
	}
	return decodeAvailability(resp, "email check")
}

// CheckNickname reports whether nickname is still free.
func (c *Client) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	resp, err := c.request(ctx, http.MethodGet, "/api/users/nickname", nicknameQuery{Nickname: nickname}, nil)
	if err != nil {
		return false, err
	}
	return decodeAvailability(resp, "nickname check")
}

func decodeUser(resp *response, what string) (*User, error) {
	if !resp.get("data").IsObject() {
		return nil, malformed(resp.status, what)
	}
	var user User
	if err := resp.decode("data", &user); err != nil {
		return nil, malformed(resp.status, what)
	}
	return &user, nil
}

func decodeAvailability(resp *response, what string) (bool, error) {
	data := resp.get("data")
	if !data.IsBool() {
		return false, malformed(resp.status, what)
	}
	return data.Bool(), nil
}
