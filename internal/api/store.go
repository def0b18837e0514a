package api

import (
	"context"
	"fmt"
)

// StoreItems returns the purchasable items.
func (c *Client) StoreItems(ctx context.Context) ([]StoreItem, error) {
	var out []StoreItem
	if err := c.get(ctx, "/store/items", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Purchase buys the given items. Entries are awarded server-side; the result
// reports the new entry total.
func (c *Client) Purchase(ctx context.Context, items []PurchaseItem, paymentMethod string) (*PurchaseResult, error) {
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	body := map[string]any{"items": items, "paymentMethod": paymentMethod}

	var out PurchaseResult
	if err := c.post(ctx, "/store/purchase", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurchaseHistory returns one page of the user's past purchases.
func (c *Client) PurchaseHistory(ctx context.Context, page, limit int) (*PurchaseHistory, error) {
	var out PurchaseHistory
	path := fmt.Sprintf("/store/purchases?page=%d&limit=%d", page, limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
