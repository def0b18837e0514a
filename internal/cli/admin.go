package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rvalverde/wheelhouse/internal/api"
)

// requireAdmin gates admin commands locally; the backend still re-checks.
func (a *App) requireAdmin() bool {
	if a.session.IsAdmin() {
		return true
	}
	a.println("That command needs an admin account.")
	return false
}

func (a *App) adminDashboardCmd(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	dash, err := a.admin.AdminDashboard(ctx)
	if err != nil {
		return err
	}

	a.printf("Players: %d   Entries: %d   Shirts: %d\n",
		dash.Statistics.TotalUsers, dash.Statistics.TotalEntries, dash.Statistics.TotalShirtsPurchased)
	if dash.LatestWinner != nil {
		a.printf("Latest winner: %s - %s (%s)\n",
			dash.LatestWinner.UserName, dash.LatestWinner.Prize,
			dash.LatestWinner.WinDate.Format(time.DateOnly))
	}
	return nil
}

// usersCmd lists participants: users [page] [search...]. The listing is
// cached so entries/block commands can patch it optimistically.
func (a *App) usersCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}

	page := 1
	search := ""
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
			args = args[1:]
		}
		search = strings.Join(args, " ")
	}

	result, err := a.admin.Users(ctx, page, 20, search, "")
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.users = result.Users
	a.mu.Unlock()

	for _, u := range result.Users {
		flags := ""
		if u.Blocked {
			flags = " [blocked]"
		}
		if u.IsWinner {
			flags += " [winner]"
		}
		a.printf("%s  %-24s @%-18s %4d entries%s\n",
			u.ID, u.Name, u.InstagramHandle, u.TotalEntries, flags)
	}
	a.printf("Page %d of %d (%d players)\n",
		result.Pagination.CurrentPage, result.Pagination.TotalPages, result.Pagination.TotalUsers)
	return nil
}

func (a *App) blockCmd(ctx context.Context, args []string, blocked bool) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) != 1 {
		if blocked {
			a.println("Usage: block <user-id>")
		} else {
			a.println("Usage: unblock <user-id>")
		}
		return nil
	}

	updated, err := a.admin.BlockUser(ctx, args[0], blocked)
	if err != nil {
		return err
	}

	a.patchCachedUser(updated.ID, func(u *api.Participant) { u.Blocked = updated.Blocked })
	if updated.Blocked {
		a.printf("%s is now blocked.\n", updated.Name)
	} else {
		a.printf("%s is unblocked.\n", updated.Name)
	}
	return nil
}

// entriesCmd sets a participant's entry total. The cached listing is patched
// before the request so the console reflects the change immediately; a
// failure rolls the patch back.
func (a *App) entriesCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) != 2 {
		a.println("Usage: entries <user-id> <total>")
		return nil
	}
	total, err := strconv.Atoi(args[1])
	if err != nil || total < 0 {
		a.println("Total must be a non-negative number.")
		return nil
	}
	userID := args[0]

	previous, found := a.cachedEntries(userID)
	a.patchCachedUser(userID, func(u *api.Participant) { u.TotalEntries = total })

	updated, err := a.admin.UpdateUserEntries(ctx, userID, total)
	if err != nil {
		if found {
			a.patchCachedUser(userID, func(u *api.Participant) { u.TotalEntries = previous })
		}
		return err
	}

	// Trust the server's final number over our optimistic one.
	a.patchCachedUser(updated.ID, func(u *api.Participant) { u.TotalEntries = updated.TotalEntries })
	a.printf("%s now holds %d entries.\n", updated.Name, updated.TotalEntries)
	return nil
}

func (a *App) declareWinnerCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) == 0 {
		a.println("Usage: declare <user-id> [prize...]")
		return nil
	}

	prize := strings.Join(args[1:], " ")
	winner, err := a.admin.DeclareWinner(ctx, args[0], prize, "")
	if err != nil {
		return err
	}

	a.printf("Declared %s (@%s) the winner of: %s\n",
		winner.UserName, winner.InstagramHandle, winner.Prize)
	return nil
}

func (a *App) spinCmd(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	confirm, err := getSimpleText(a.reader, "Spin the wheel now? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		a.println("Aborted.")
		return nil
	}

	result, err := a.admin.Spin(ctx)
	if err != nil {
		return err
	}
	if result.Winner == nil {
		a.printf("Spin %s started.\n", result.SpinID)
		return nil
	}
	a.printf("Spin %s landed on %s (@%s)!\n",
		result.SpinID, result.Winner.UserName, result.Winner.InstagramHandle)
	return nil
}

func (a *App) resetGameCmd(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	confirm, err := getSimpleText(a.reader, "Reset the game? This wipes all entries. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		a.println("Aborted.")
		return nil
	}

	if err := a.admin.ResetGame(ctx); err != nil {
		return err
	}
	a.println("Game reset. All entries cleared.")
	return nil
}

func (a *App) cachedEntries(userID string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.users {
		if a.users[i].ID == userID {
			return a.users[i].TotalEntries, true
		}
	}
	return 0, false
}

// patchCachedUser mutates the row with the given storage id in the last
// listing, if it is still cached.
func (a *App) patchCachedUser(userID string, patch func(*api.Participant)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.users {
		if a.users[i].ID == userID {
			patch(&a.users[i])
			return
		}
	}
}
