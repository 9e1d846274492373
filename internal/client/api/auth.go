package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/notekeeper/internal/client/session"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *session.User `json:"user"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) Result[LoginResponse] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"auth", "login"},
		body:     creds,
		fallback: "login failed",
	}, func(raw []byte) (LoginResponse, error) {
		resp, err := decodeOne[LoginResponse](raw)
		if err != nil {
			return LoginResponse{}, err
		}
		if resp.Token == "" || resp.User == nil {
			return LoginResponse{}, errors.New("login response without token or user")
		}
		return resp, nil
	})
}

// Register returns the server's confirmation message, which may be empty.
func (c *Client) Register(ctx context.Context, r Registration) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"auth", "register"},
		body:     r,
		fallback: "registration failed",
	}, decodeMessage)
}

func (c *Client) Activate(ctx context.Context, email, code string) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"auth", "activate-account"},
		query:    url.Values{"email": {email}},
		body:     map[string]string{"code": code},
		fallback: "account activation failed",
	}, decodeMessage)
}

// RequestPasswordReset asks the server to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"auth", "reset-password"},
		query:    url.Values{"email": {email}},
		fallback: "password reset request failed",
	}, decodeMessage)
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPost,
		path:     []string{"auth", "confirm-reset-password"},
		query:    url.Values{"token": {token}},
		body:     map[string]string{"newPassword": newPassword},
		fallback: "password reset failed",
	}, decodeMessage)
}

func (c *Client) ChangePassword(ctx context.Context, p PasswordChange) Result[string] {
	return send(ctx, c, call{
		method:   http.MethodPut,
		path:     []string{"auth", "change-password"},
		body:     p,
		fallback: "password change failed",
	}, decodeMessage)
}
