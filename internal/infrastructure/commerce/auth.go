package commerce

import (
	"context"
	"net/http"
	"net/url"
)

// LoginInput is the credentials payload
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the account creation payload
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: in}, &result)
	return result, err
}

// Register creates a new account. The upstream's registration route is
// /auth/daftar.
func (c *Client) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/daftar", body: in}, &result)
	return result, err
}

// VerifyEmail confirms an account's email address
func (c *Client) VerifyEmail(ctx context.Context, userID, code string) error {
	path := "/auth/verifikasi-email/" + url.PathEscape(userID) + "/" + url.PathEscape(code)
	return c.do(ctx, request{method: http.MethodGet, path: path}, nil)
}

// ResetPassword sets a new password using a reset token
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	body := map[string]string{"password": newPassword}
	path := "/auth/reset-password/" + url.PathEscape(resetToken)
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body}, nil)
}
