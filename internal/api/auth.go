package api

import "context"

// Login authenticates with email and password. The caller (session layer)
// is responsible for persisting the returned credential.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/signin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, data RegisterData) (*LoginResult, error) {
	var out LoginResult
	if err := c.post(ctx, "/auth/signup", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the account behind the current bearer token. Used at
// startup to verify a persisted credential is still valid.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a reset started by ForgotPassword.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	body := map[string]string{
		"token":           token,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.post(ctx, "/auth/reset-password", body, nil)
}

// ChangePassword changes the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.patch(ctx, "/auth/change-password", body, nil)
}

// CheckToken validates a reset token before showing the new-password form.
func (c *Client) CheckToken(ctx context.Context, token string) error {
	return c.post(ctx, "/auth/check-token", map[string]string{"token": token}, nil)
}
