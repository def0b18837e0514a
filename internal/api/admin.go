package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AdminDashboard returns the admin console summary.
func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var out AdminDashboard
	if err := c.get(ctx, "/admin/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users returns one page of the participant list. search filters by name or
// email; role narrows to one role when non-empty.
func (c *Client) Users(ctx context.Context, page, limit int, search, role string) (*UserPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("search", search)
	if role != "" {
		params.Set("role", role)
	}

	var out UserPage
	if err := c.get(ctx, "/admin/users?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockUser blocks or unblocks a participant.
func (c *Client) BlockUser(ctx context.Context, userID string, blocked bool) (*Participant, error) {
	var out Participant
	path := fmt.Sprintf("/admin/users/%s/block", userID)
	if err := c.patch(ctx, path, map[string]bool{"blocked": blocked}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserEntries sets a participant's entry count to an absolute value.
func (c *Client) UpdateUserEntries(ctx context.Context, userID string, totalEntries int) (*Participant, error) {
	var out Participant
	path := fmt.Sprintf("/admin/users/%s/entries", userID)
	if err := c.patch(ctx, path, map[string]int{"totalEntries": totalEntries}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeclareWinner declares a winner manually, bypassing the wheel.
func (c *Client) DeclareWinner(ctx context.Context, userID, prize, notes string) (*Winner, error) {
	if prize == "" {
		prize = "Mystery Prize"
	}
	body := map[string]string{"userId": userID, "prize": prize}
	if notes != "" {
		body["notes"] = notes
	}

	var out Winner
	if err := c.post(ctx, "/admin/declare-winner", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Spin triggers the wheel spin. Selection happens entirely server-side.
func (c *Client) Spin(ctx context.Context) (*SpinResult, error) {
	var out SpinResult
	if err := c.post(ctx, "/wheel/spin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminGameSettings returns the game configuration with admin-only fields.
func (c *Client) AdminGameSettings(ctx context.Context) (*GameSettings, error) {
	var out GameSettings
	if err := c.get(ctx, "/admin/game-settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGameSettings saves the game configuration.
func (c *Client) UpdateGameSettings(ctx context.Context, settings GameSettingsUpdate) (*GameSettings, error) {
	var out GameSettings
	if err := c.put(ctx, "/admin/game-settings", settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetGame clears all entries and winner state for a new round.
func (c *Client) ResetGame(ctx context.Context) error {
	return c.post(ctx, "/admin/reset-game", nil, nil)
}

// RequestPasswordChange starts the email-verified admin password change.
func (c *Client) RequestPasswordChange(ctx context.Context) error {
	return c.post(ctx, "/admin/request-password-change", nil, nil)
}

// VerifyPasswordChange completes the email-verified admin password change.
// The backend revokes every session of the account and pushes a
// password-changed-logout event to connected clients.
func (c *Client) VerifyPasswordChange(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.post(ctx, "/admin/verify-password-change", body, nil)
}
