package cli

import (
	"context"
	"strings"
	"time"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/session"
	"github.com/rvalverde/wheelhouse/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) loginCmd(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Welcome back, %s!\n", user.Name)
	if a.rt.Connected() {
		a.rt.JoinWheelRoom()
		if user.IsAdmin() {
			a.rt.JoinAdminRoom()
		}
	}
	return a.checkCongrats(ctx)
}

func (a *App) registerCmd(ctx context.Context) error {
	var data api.RegisterData
	var err error

	if data.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if data.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if data.InstagramHandle, err = getSimpleText(a.reader, "Enter Instagram handle", a.out); err != nil {
		return err
	}
	data.InstagramHandle = strings.TrimPrefix(data.InstagramHandle, "@")
	if data.Country, err = getSimpleText(a.reader, "Enter country", a.out); err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)
	data.Password = string(password)

	user, err := a.session.Register(ctx, data)
	if err != nil {
		return err
	}

	a.printf("Account created. Welcome, %s!\n", user.Name)
	if a.rt.Connected() {
		a.rt.JoinWheelRoom()
	}
	return nil
}

func (a *App) guestCmd(ctx context.Context) error {
	if err := a.session.EnterGuestMode(ctx); err != nil {
		return err
	}
	a.println("Browsing as guest. Sign in any time with 'login'.")
	return nil
}

func (a *App) logoutCmd(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Signed out.")
	return nil
}

func (a *App) forgotPasswordCmd(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your account email", a.out)
	if err != nil {
		return err
	}
	if err := a.game.ForgotPassword(ctx, email); err != nil {
		return err
	}
	a.println("If that address has an account, a reset email is on its way.")
	return nil
}

func (a *App) resetPasswordCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: reset-password <token>")
		return nil
	}
	token := args[0]

	// Reject a dead token before asking for the new password.
	if err := a.game.CheckToken(ctx, token); err != nil {
		return err
	}

	password, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		a.println("Passwords do not match.")
		return nil
	}

	if err := a.game.ResetPassword(ctx, token, string(password), string(confirm)); err != nil {
		return err
	}
	a.println("Password reset. Sign in with your new password.")
	return nil
}

func (a *App) changePasswordCmd(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(current)

	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(next)

	if err := a.game.ChangePassword(ctx, string(current), string(next)); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}

func (a *App) profileCmd(ctx context.Context) error {
	if a.session.State() == session.StateGuest {
		a.println("Browsing as guest.")
		return nil
	}
	user, err := a.session.RefreshUser(ctx)
	if err != nil {
		// Show the cached snapshot when the backend is unreachable.
		if user = a.session.User(); user == nil {
			return err
		}
	}

	a.printf("%s <%s>\n", user.Name, user.Email)
	a.printf("  Instagram:  @%s\n", user.InstagramHandle)
	a.printf("  Country:    %s\n", user.Country)
	a.printf("  Entries:    %d\n", user.TotalEntries)
	a.printf("  Shirts:     %d\n", user.TotalShirtsPurchased)
	if user.IsWinner && user.LastWinDate != nil {
		a.printf("  Last win:   %s\n", user.LastWinDate.Format(time.DateOnly))
	}
	a.printf("  Member since %s\n", user.CreatedAt.Format(time.DateOnly))
	if exp, err := a.session.TokenExpiry(ctx); err == nil {
		a.printf("  Session ends %s\n", exp.Format(time.RFC822))
	}
	return nil
}

// checkCongrats asks the backend whether a winner banner is pending for the
// user and acknowledges it once shown.
func (a *App) checkCongrats(ctx context.Context) error {
	check, err := a.game.CheckWinner(ctx)
	if err != nil {
		return err
	}
	if !check.ShowWinnerNotification || check.Winner == nil {
		return nil
	}

	a.println()
	a.println(strings.Repeat("*", 48))
	a.printf("  CONGRATULATIONS! You won: %s\n", check.Winner.Prize)
	a.println(strings.Repeat("*", 48))

	if err := a.game.MarkCongratsShown(ctx); err != nil {
		a.log.Warn(ctx, "failed to acknowledge winner banner", "err", err.Error())
	}
	return nil
}
