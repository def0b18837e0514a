package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/rvalverde/wheelhouse/internal/api"
)

func (a *App) storeCmd(ctx context.Context) error {
	items, err := a.game.StoreItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("The store is empty right now.")
		return nil
	}

	a.println("Store items (buy <id> [quantity]):")
	for _, item := range items {
		if !item.Active {
			continue
		}
		a.printf("  %s  %-24s $%.2f  +%d entries  (%d in stock)\n",
			item.ID, item.Name, item.Price, item.EntriesPerItem, item.Stock)
	}
	return nil
}

func (a *App) buyCmd(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		a.println("Usage: buy <item-id> [quantity]")
		return nil
	}
	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil || q < 1 {
			a.println("Quantity must be a positive number.")
			return nil
		}
		quantity = q
	}

	result, err := a.game.Purchase(ctx, []api.PurchaseItem{{ItemID: args[0], Quantity: quantity}}, "")
	if err != nil {
		return err
	}

	a.printf("Purchased! Total $%.2f, earned %d entries (you now hold %d).\n",
		result.TotalAmount, result.TotalEntriesEarned, result.NewTotalEntries)
	return nil
}

func (a *App) historyCmd(ctx context.Context, args []string) error {
	page, err := optionalInt(args, 0, 1)
	if err != nil {
		a.println("Usage: history [page]")
		return nil
	}

	history, err := a.game.PurchaseHistory(ctx, page, 10)
	if err != nil {
		return err
	}
	if len(history.Purchases) == 0 {
		a.println("No purchases yet.")
		return nil
	}

	for _, p := range history.Purchases {
		a.printf("%s  $%.2f  +%d entries\n",
			p.CreatedAt.Format(time.DateOnly), p.TotalAmount, p.TotalEntriesEarned)
		for _, line := range p.Items {
			a.printf("    %dx %s\n", line.Quantity, line.ItemName)
		}
	}
	a.printf("Page %d of %d\n", history.Pagination.CurrentPage, history.Pagination.TotalPages)
	return nil
}

func (a *App) redeemCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: redeem <code>")
		return nil
	}

	redemption, err := a.game.VerifyPurchaseCode(ctx, args[0])
	if err != nil {
		return err
	}

	a.printf("Code accepted: +%d entries (you now hold %d).\n",
		redemption.EntriesAwarded, redemption.NewTotalEntries)
	return nil
}
