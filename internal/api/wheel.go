package api

import "context"

// WheelEntries returns the wheel composition for the signed-in user.
func (c *Client) WheelEntries(ctx context.Context) (*WheelStats, error) {
	var out WheelStats
	if err := c.get(ctx, "/wheel/entries", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublicWheelEntries returns the wheel composition without authentication,
// for guest browsing.
func (c *Client) PublicWheelEntries(ctx context.Context) (*WheelStats, error) {
	var out WheelStats
	if err := c.get(ctx, "/wheel/public-entries", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestWinner returns the most recently declared winner.
func (c *Client) LatestWinner(ctx context.Context) (*Winner, error) {
	var out Winner
	if err := c.get(ctx, "/wheel/latest-winner", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckWinner reports whether the current user has won and whether the
// congratulations banner should be shown.
func (c *Client) CheckWinner(ctx context.Context) (*WinnerCheck, error) {
	var out WinnerCheck
	if err := c.get(ctx, "/wheel/check-winner", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkCongratsShown records that the winner banner has been displayed so it
// is not shown again.
func (c *Client) MarkCongratsShown(ctx context.Context) error {
	return c.post(ctx, "/wheel/mark-congrats-shown", nil, nil)
}

// GameSettings returns the public game configuration.
func (c *Client) GameSettings(ctx context.Context) (*GameSettings, error) {
	var out GameSettings
	if err := c.get(ctx, "/wheel/game-settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WheelActivity returns spin and winner counters across the whole game.
func (c *Client) WheelActivity(ctx context.Context) (*WheelActivity, error) {
	var out WheelActivity
	if err := c.get(ctx, "/wheel/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublicStats returns aggregate counters without authentication.
func (c *Client) PublicStats(ctx context.Context) (*PublicStats, error) {
	var out PublicStats
	if err := c.get(ctx, "/wheel/public-stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
