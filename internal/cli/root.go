package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rvalverde/wheelhouse/internal/session"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// getStatus builds the prompt suffix: who is signed in plus the countdown
// when it is running.
func (a *App) getStatus() string {
	parts := make([]string, 0, 2)
	if u := a.session.User(); u != nil {
		parts = append(parts, u.Name)
	} else if a.session.State() == session.StateGuest {
		parts = append(parts, "guest")
	}
	if v := a.ticker.Snapshot(); v.Live && !v.Expired {
		parts = append(parts, v.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the REPL until EOF or exit. Command lines come off a.reader,
// the same buffer every interactive prompt reads from; a second buffer over
// stdin would read ahead and swallow input meant for the prompts.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the wheelhouse console (type 'help' for commands)")

	for {
		a.printf("wheel %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) > 0 {
			if parts[0] == "exit" || parts[0] == "quit" {
				a.println("Bye!")
				return
			}
			a.dispatch(ctx, parts[0], parts[1:])
		}
		if err != nil {
			return
		}
	}
}

// dispatch routes one command line. Handler errors are printed, never fatal.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	var err error

	switch cmd {
	case "help":
		a.help()

	// session
	case "login":
		err = a.loginCmd(ctx)
	case "register":
		err = a.registerCmd(ctx)
	case "guest":
		err = a.guestCmd(ctx)
	case "logout":
		err = a.logoutCmd(ctx)
	case "forgot-password":
		err = a.forgotPasswordCmd(ctx)
	case "reset-password":
		err = a.resetPasswordCmd(ctx, args)
	case "password":
		err = a.changePasswordCmd(ctx)
	case "profile", "whoami":
		err = a.profileCmd(ctx)

	// participant
	case "dashboard":
		err = a.dashboardCmd(ctx)
	case "wheel":
		err = a.wheelCmd(ctx)
	case "winner":
		err = a.winnerCmd(ctx)
	case "status":
		err = a.statusCmd(ctx)
	case "watch":
		err = a.watchCmd(ctx)
	case "leaderboard":
		err = a.leaderboardCmd(ctx, args)
	case "winners":
		err = a.recentWinnersCmd(ctx, args)
	case "store":
		err = a.storeCmd(ctx)
	case "buy":
		err = a.buyCmd(ctx, args)
	case "history":
		err = a.historyCmd(ctx, args)
	case "redeem":
		err = a.redeemCmd(ctx, args)

	// admin
	case "admin":
		err = a.adminDashboardCmd(ctx)
	case "users":
		err = a.usersCmd(ctx, args)
	case "block":
		err = a.blockCmd(ctx, args, true)
	case "unblock":
		err = a.blockCmd(ctx, args, false)
	case "entries":
		err = a.entriesCmd(ctx, args)
	case "declare":
		err = a.declareWinnerCmd(ctx, args)
	case "spin":
		err = a.spinCmd(ctx)
	case "settings":
		err = a.settingsCmd(ctx, args)
	case "reset-game":
		err = a.resetGameCmd(ctx)
	case "codes":
		err = a.codesCmd(ctx, args)
	case "platform":
		err = a.platformCmd(ctx, args)
	case "admin-password":
		err = a.adminPasswordCmd(ctx, args)

	default:
		a.println("Unknown command:", cmd)
		return
	}

	if err != nil {
		a.println("Error:", friendlyError(err))
	}
}

func (a *App) help() {
	switch {
	case a.session.IsAdmin():
		a.println("Participant commands: dashboard, wheel, winner, status, watch, leaderboard, winners, store, buy, history, redeem, profile, password, logout, exit")
		a.println("Admin commands: admin, users, block, unblock, entries, declare, spin, settings, reset-game, codes, platform, admin-password")
	case a.session.IsAuthenticated():
		a.println("Available commands: dashboard, wheel, winner, status, watch, leaderboard, winners, store, buy, history, redeem, profile, password, logout, exit")
	case a.session.State() == session.StateGuest:
		a.println("Available commands: wheel, winner, status, watch, winners, login, register, exit")
	default:
		a.println("Available commands: login, register, guest, forgot-password, reset-password, exit")
	}
}
