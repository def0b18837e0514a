package cli

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/shared"
)

// settingsCmd shows or edits the game configuration.
//
//	settings                      show current settings
//	settings prize <text...>      change the prize
//	settings schedule <d> <h> <m> change the spin offsets
//	settings start                anchor the countdown and start it
//	settings stop                 stop the countdown
//	settings game on|off          toggle the whole game
func (a *App) settingsCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}

	current, err := a.admin.AdminGameSettings(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		a.printSettings(current)
		return nil
	}

	update := api.GameSettingsUpdate{GameSettings: *current}

	switch args[0] {
	case "prize":
		if len(args) < 2 {
			a.println("Usage: settings prize <text...>")
			return nil
		}
		update.CurrentPrize = strings.Join(args[1:], " ")
	case "schedule":
		if len(args) != 4 {
			a.println("Usage: settings schedule <days> <hours> <minutes>")
			return nil
		}
		d, err1 := strconv.Atoi(args[1])
		h, err2 := strconv.Atoi(args[2])
		m, err3 := strconv.Atoi(args[3])
		if err1 != nil || err2 != nil || err3 != nil || d < 0 || h < 0 || m < 0 {
			a.println("Days, hours and minutes must be non-negative numbers.")
			return nil
		}
		update.SpinCountdownDays = d
		update.SpinCountdownHours = h
		update.SpinCountdownMinutes = m
	case "start":
		update.CountdownActive = true
		update.StartCountdown = true
	case "stop":
		update.CountdownActive = false
	case "game":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			a.println("Usage: settings game on|off")
			return nil
		}
		update.IsGameActive = args[1] == "on"
	default:
		a.println("Unknown settings action:", args[0])
		return nil
	}

	saved, err := a.admin.UpdateGameSettings(ctx, update)
	if err != nil {
		return err
	}

	// Keep the local feed and countdown in step with the change we made.
	a.settings.Push(*saved)

	a.println("Settings saved.")
	a.printSettings(saved)
	return nil
}

func (a *App) printSettings(gs *api.GameSettings) {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	a.printf("Prize:      %s\n", gs.CurrentPrize)
	if gs.PrizeDescription != "" {
		a.printf("            %s\n", gs.PrizeDescription)
	}
	a.printf("Game:       %s\n", onOff(gs.IsGameActive))
	a.printf("Countdown:  %s (every %dd %dh %dm)\n",
		onOff(gs.CountdownActive), gs.SpinCountdownDays, gs.SpinCountdownHours, gs.SpinCountdownMinutes)
	if gs.GameEndTime != nil {
		a.printf("Ends:       %s\n", gs.GameEndTime.Format(time.RFC1123))
	}
	if gs.ShopifyEnabled {
		a.printf("Shop:       %s\n", gs.ShopifyStoreURL)
	}
}

// codesCmd manages purchase codes.
//
//	codes [page] [all|used|unused]   list codes
//	codes generate <count> <entries> mint new codes
//	codes stats                      usage summary
func (a *App) codesCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}

	if len(args) > 0 && args[0] == "generate" {
		if len(args) != 3 {
			a.println("Usage: codes generate <count> <entries-per-code>")
			return nil
		}
		count, err1 := strconv.Atoi(args[1])
		entries, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil || count < 1 || entries < 1 {
			a.println("Count and entries must be positive numbers.")
			return nil
		}

		generated, err := a.admin.GeneratePurchaseCodes(ctx, count, entries)
		if err != nil {
			return err
		}
		a.printf("Generated %d codes:\n", generated.Count)
		for _, c := range generated.Codes {
			a.printf("  %s  (+%d entries)\n", c.Code, c.EntriesAwarded)
		}
		return nil
	}

	if len(args) > 0 && args[0] == "stats" {
		stats, err := a.admin.PurchaseCodeStats(ctx)
		if err != nil {
			return err
		}
		a.printf("Codes: %d total, %d used, %d unused (%.1f%% redeemed)\n",
			stats.Total, stats.Used, stats.Unused, stats.UsageRate)
		return nil
	}

	page := 1
	status := "all"
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			page = n
			continue
		}
		switch arg {
		case "all", "used", "unused":
			status = arg
		default:
			a.println("Usage: codes [page] [all|used|unused] | codes generate <count> <entries> | codes stats")
			return nil
		}
	}

	result, err := a.admin.PurchaseCodes(ctx, page, 20, status)
	if err != nil {
		return err
	}

	for _, c := range result.Codes {
		if c.IsUsed && c.UsedBy != nil {
			a.printf("%s  +%-4d used by %s on %s\n",
				c.Code, c.EntriesAwarded, c.UsedBy.Name, c.UsedDate.Format(time.DateOnly))
		} else {
			a.printf("%s  +%-4d unused\n", c.Code, c.EntriesAwarded)
		}
	}
	a.printf("Page %d of %d (%d codes)\n",
		result.Pagination.CurrentPage, result.Pagination.TotalPages, result.Pagination.TotalCodes)
	return nil
}

// platformCmd views or edits the schemaless platform settings.
//
//	platform                 list all keys
//	platform set <key> <v>   set one key (string value)
//	platform reset           restore server defaults
func (a *App) platformCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}

	if len(args) == 0 {
		settings, err := a.admin.PlatformSettings(ctx)
		if err != nil {
			return err
		}
		a.printPlatform(settings)
		return nil
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			a.println("Usage: platform set <key> <value>")
			return nil
		}
		value, err := a.admin.UpdatePlatformSetting(ctx, args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		a.printf("%s = %v\n", args[1], value)
	case "reset":
		settings, err := a.admin.ResetPlatformSettings(ctx)
		if err != nil {
			return err
		}
		a.println("Platform settings restored to defaults.")
		a.printPlatform(settings)
	default:
		a.println("Usage: platform | platform set <key> <value> | platform reset")
	}
	return nil
}

func (a *App) printPlatform(settings api.PlatformSettings) {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.printf("%-32s %v\n", k, settings[k])
	}
}

// adminPasswordCmd runs the two-step admin password change: request a
// verification token, then confirm it with the new password.
//
//	admin-password request
//	admin-password verify <token>
func (a *App) adminPasswordCmd(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) == 0 {
		a.println("Usage: admin-password request | admin-password verify <token>")
		return nil
	}

	switch args[0] {
	case "request":
		if err := a.admin.RequestPasswordChange(ctx); err != nil {
			return err
		}
		a.println("Verification token sent to the owner's email.")
	case "verify":
		if len(args) != 2 {
			a.println("Usage: admin-password verify <token>")
			return nil
		}
		password, err := getPassword("New password", a.out)
		if err != nil {
			return err
		}
		defer shared.WipeByteArray(password)

		if err := a.admin.VerifyPasswordChange(ctx, args[1], string(password)); err != nil {
			return err
		}
		a.println("Password changed. All admin sessions will be signed out.")
	default:
		a.println("Usage: admin-password request | admin-password verify <token>")
	}
	return nil
}
