package api

import "context"

// PlatformSettings returns the full platform configuration.
func (c *Client) PlatformSettings(ctx context.Context) (PlatformSettings, error) {
	var out PlatformSettings
	if err := c.get(ctx, "/platform-settings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePlatformSettings replaces the platform configuration.
func (c *Client) UpdatePlatformSettings(ctx context.Context, settings PlatformSettings) (PlatformSettings, error) {
	var out PlatformSettings
	if err := c.put(ctx, "/platform-settings", settings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlatformSetting returns one configuration value by key.
func (c *Client) PlatformSetting(ctx context.Context, key string) (any, error) {
	var out any
	if err := c.get(ctx, "/platform-settings/"+key, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePlatformSetting sets one configuration value by key.
func (c *Client) UpdatePlatformSetting(ctx context.Context, key string, value any) (any, error) {
	var out any
	if err := c.patch(ctx, "/platform-settings/"+key, map[string]any{"value": value}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetPlatformSettings restores the platform configuration defaults.
func (c *Client) ResetPlatformSettings(ctx context.Context) (PlatformSettings, error) {
	var out PlatformSettings
	if err := c.post(ctx, "/platform-settings/reset", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
