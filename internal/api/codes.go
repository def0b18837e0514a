package api

import (
	"context"
	"fmt"
)

// VerifyPurchaseCode redeems a purchase code for bonus entries.
func (c *Client) VerifyPurchaseCode(ctx context.Context, code string) (*Redemption, error) {
	var out Redemption
	if err := c.post(ctx, "/purchase-codes/verify", map[string]string{"code": code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurchaseCodes returns one page of generated codes. status is one of
// "all", "used", "unused".
func (c *Client) PurchaseCodes(ctx context.Context, page, limit int, status string) (*CodePage, error) {
	if status == "" {
		status = "all"
	}
	path := fmt.Sprintf("/purchase-codes/admin/codes?page=%d&limit=%d&status=%s", page, limit, status)

	var out CodePage
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePurchaseCodes creates count single-use codes worth entriesPerCode
// entries each.
func (c *Client) GeneratePurchaseCodes(ctx context.Context, count, entriesPerCode int) (*GeneratedCodes, error) {
	if entriesPerCode <= 0 {
		entriesPerCode = 10
	}
	body := map[string]int{"count": count, "entriesPerCode": entriesPerCode}

	var out GeneratedCodes
	if err := c.post(ctx, "/purchase-codes/admin/generate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurchaseCodeStats summarizes code usage for the admin console.
func (c *Client) PurchaseCodeStats(ctx context.Context) (*CodeStats, error) {
	var out CodeStats
	if err := c.get(ctx, "/purchase-codes/admin/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
