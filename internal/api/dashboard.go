package api

import (
	"context"
	"fmt"
)

// Dashboard returns the participant dashboard summary.
func (c *Client) Dashboard(ctx context.Context) (*DashboardData, error) {
	var out DashboardData
	if err := c.get(ctx, "/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard returns the top participants by entry count.
func (c *Client) Leaderboard(ctx context.Context, limit int) (*Leaderboard, error) {
	var out Leaderboard
	if err := c.get(ctx, fmt.Sprintf("/dashboard/leaderboard?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentWinners returns the winner history, newest first.
func (c *Client) RecentWinners(ctx context.Context, limit int) (*RecentWinners, error) {
	var out RecentWinners
	if err := c.get(ctx, fmt.Sprintf("/dashboard/winners?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
