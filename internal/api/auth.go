package api

import "net/http"

// User represents the authenticated admin account
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Known admin roles. The login page routes on these; everything else in the
// client treats the role as an opaque string.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates the user and returns the bearer token plus the user
// record. The token is NOT persisted here; the session owns that decision.
func (c *Client) Login(email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the account the current token belongs to.
func (c *Client) Me() (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.doJSON(http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ChangePasswordRequest represents the change-password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword updates the account password. Server-side failures (wrong
// current password included) surface unchanged.
func (c *Client) ChangePassword(currentPassword, newPassword string) error {
	req := ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}
	return c.doJSON(http.MethodPut, "/auth/change-password", nil, req, nil)
}
