package cli

import (
	"context"
	"time"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/countdown"
)

// wheelCmd lists the current wheel composition. Guests see the public view.
func (a *App) wheelCmd(ctx context.Context) error {
	var stats *api.WheelStats
	var err error

	if a.session.IsAuthenticated() {
		stats, err = a.game.WheelEntries(ctx)
	} else {
		stats, err = a.game.PublicWheelEntries(ctx)
	}
	if err != nil {
		return err
	}

	a.printf("Wheel: %d entries across %d players\n", stats.TotalEntries, stats.TotalUsers)
	for _, e := range stats.Entries {
		a.printf("  %-24s @%s\n", e.UserName, e.InstagramHandle)
	}
	return nil
}

func (a *App) winnerCmd(ctx context.Context) error {
	winner, err := a.game.LatestWinner(ctx)
	if err != nil {
		return err
	}
	if winner == nil || winner.UserName == "" {
		a.println("No winner declared yet.")
		return nil
	}
	a.printf("Latest winner: %s (@%s) - %s on %s\n",
		winner.UserName, winner.InstagramHandle, winner.Prize,
		winner.WinDate.Format(time.DateOnly))
	return nil
}

// statusCmd shows the game settings and the countdown in one shot.
func (a *App) statusCmd(ctx context.Context) error {
	gs, ok := a.settings.Value()
	if !ok {
		if err := a.settings.Refresh(ctx); err != nil {
			return err
		}
		gs, _ = a.settings.Value()
	}

	a.printf("Prize: %s\n", gs.CurrentPrize)
	if gs.PrizeDescription != "" {
		a.printf("  %s\n", gs.PrizeDescription)
	}
	if !gs.IsGameActive {
		a.println("The game is currently paused.")
		return nil
	}

	v := a.ticker.Snapshot()
	switch {
	case v.Expired:
		a.println("Countdown over - the spin is imminent!")
	case v.Live && v.Urgent():
		a.printf("Next spin in %s - less than %d hours left!\n", v, 6)
	case v.Live:
		a.printf("Next spin in %s\n", v)
	default:
		a.printf("Spin schedule: every %s (countdown not started)\n", v)
	}

	if gs.ShopifyEnabled && gs.ShopifyStoreURL != "" {
		a.printf("Shop: %s\n", gs.ShopifyStoreURL)
	}

	if a.session.IsAuthenticated() {
		if act, err := a.game.WheelActivity(ctx); err == nil && act != nil {
			a.printf("%d spins so far, %d winners.\n", act.TotalSpins, act.TotalWinners)
		}
	} else if stats, err := a.game.PublicStats(ctx); err == nil {
		a.printf("%d players hold %d entries. Sign up to join!\n", stats.TotalUsers, stats.TotalEntries)
	}
	return nil
}

// watchCmd streams countdown frames until Enter is pressed.
func (a *App) watchCmd(ctx context.Context) error {
	a.println("Watching the countdown. Press Enter to stop.")

	frames := make(chan countdown.View, 4)
	unsubscribe := a.ticker.Subscribe(func(v countdown.View) {
		select {
		case frames <- v:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		_, _ = a.reader.ReadString('\n')
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case v := <-frames:
			if v.Expired {
				a.printf("\r%-24s\n", v)
				return nil
			}
			a.printf("\r%-24s", v)
		}
	}
}

func (a *App) dashboardCmd(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		a.println("Sign in to see your dashboard.")
		return nil
	}

	data, err := a.game.Dashboard(ctx)
	if err != nil {
		return err
	}

	user := a.session.User()
	a.printf("Hello %s - you hold %d entries.\n", user.Name, user.TotalEntries)
	a.printf("Community: %d players, %d entries, %d shirts sold\n",
		data.Statistics.TotalUsers, data.Statistics.TotalEntries, data.Statistics.TotalShirtsPurchased)
	return a.checkCongrats(ctx)
}

func (a *App) leaderboardCmd(ctx context.Context, args []string) error {
	limit, err := optionalInt(args, 0, 10)
	if err != nil {
		a.println("Usage: leaderboard [limit]")
		return nil
	}

	board, err := a.game.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}

	for _, row := range board.Leaderboard {
		a.printf("%3d. %-24s @%-18s %d entries\n", row.Rank, row.Name, row.InstagramHandle, row.TotalEntries)
	}
	return nil
}

func (a *App) recentWinnersCmd(ctx context.Context, args []string) error {
	limit, err := optionalInt(args, 0, 5)
	if err != nil {
		a.println("Usage: winners [limit]")
		return nil
	}

	recent, err := a.game.RecentWinners(ctx, limit)
	if err != nil {
		return err
	}
	if len(recent.Winners) == 0 {
		a.println("No winners yet.")
		return nil
	}

	for _, w := range recent.Winners {
		a.printf("%s  %-24s @%-18s %s\n",
			w.WinDate.Format(time.DateOnly), w.UserName, w.InstagramHandle, w.Prize)
	}
	return nil
}
