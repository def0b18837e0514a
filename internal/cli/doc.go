// Package cli implements the interactive wheelhouse console.
//
// The console is a REPL with three faces, switched by session state:
//
//   - signed out: login, register, guest, forgot-password, reset-password
//   - participant: dashboard, wheel, store, buy, history, redeem, winner,
//     status, watch, leaderboard, winners, profile, password, logout
//   - admin (super_admin role): everything above plus the admin-* commands
//     for participants, winner declaration, spins, game settings,
//     purchase codes and platform settings
//
// Commands print to the App's writer and log failures through the injected
// logger. Realtime events (countdown pushes, settings updates, winner
// declarations, forced logouts) arrive over the shared socket client and are
// reflected in the countdown ticker and the settings feed.
package cli
