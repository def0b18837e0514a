package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/config"
	"github.com/rvalverde/wheelhouse/internal/countdown"
	"github.com/rvalverde/wheelhouse/internal/feed"
	"github.com/rvalverde/wheelhouse/internal/logging"
	"github.com/rvalverde/wheelhouse/internal/realtime"
	"github.com/rvalverde/wheelhouse/internal/session"
	"github.com/rvalverde/wheelhouse/internal/storage"
)

// sessionService is the slice of the session manager the console uses.
type sessionService interface {
	Startup(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*api.User, error)
	Register(ctx context.Context, data api.RegisterData) (*api.User, error)
	Logout(ctx context.Context) error
	EnterGuestMode(ctx context.Context) error
	RefreshUser(ctx context.Context) (*api.User, error)
	TokenExpiry(ctx context.Context) (time.Time, error)
	OnForcedLogout(fn func(reason string))
	State() session.State
	User() *api.User
	IsAuthenticated() bool
	IsAdmin() bool
}

// gameService is the participant-facing slice of the API client.
type gameService interface {
	WheelEntries(ctx context.Context) (*api.WheelStats, error)
	PublicWheelEntries(ctx context.Context) (*api.WheelStats, error)
	LatestWinner(ctx context.Context) (*api.Winner, error)
	CheckWinner(ctx context.Context) (*api.WinnerCheck, error)
	MarkCongratsShown(ctx context.Context) error
	GameSettings(ctx context.Context) (*api.GameSettings, error)
	WheelActivity(ctx context.Context) (*api.WheelActivity, error)
	PublicStats(ctx context.Context) (*api.PublicStats, error)
	Dashboard(ctx context.Context) (*api.DashboardData, error)
	Leaderboard(ctx context.Context, limit int) (*api.Leaderboard, error)
	RecentWinners(ctx context.Context, limit int) (*api.RecentWinners, error)
	StoreItems(ctx context.Context) ([]api.StoreItem, error)
	Purchase(ctx context.Context, items []api.PurchaseItem, paymentMethod string) (*api.PurchaseResult, error)
	PurchaseHistory(ctx context.Context, page, limit int) (*api.PurchaseHistory, error)
	VerifyPurchaseCode(ctx context.Context, code string) (*api.Redemption, error)
	ForgotPassword(ctx context.Context, email string) error
	CheckToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// adminService is the admin-console slice of the API client.
type adminService interface {
	AdminDashboard(ctx context.Context) (*api.AdminDashboard, error)
	Users(ctx context.Context, page, limit int, search, role string) (*api.UserPage, error)
	BlockUser(ctx context.Context, userID string, blocked bool) (*api.Participant, error)
	UpdateUserEntries(ctx context.Context, userID string, totalEntries int) (*api.Participant, error)
	DeclareWinner(ctx context.Context, userID, prize, notes string) (*api.Winner, error)
	Spin(ctx context.Context) (*api.SpinResult, error)
	AdminGameSettings(ctx context.Context) (*api.GameSettings, error)
	UpdateGameSettings(ctx context.Context, settings api.GameSettingsUpdate) (*api.GameSettings, error)
	ResetGame(ctx context.Context) error
	RequestPasswordChange(ctx context.Context) error
	VerifyPasswordChange(ctx context.Context, token, newPassword string) error
	PurchaseCodes(ctx context.Context, page, limit int, status string) (*api.CodePage, error)
	GeneratePurchaseCodes(ctx context.Context, count, entriesPerCode int) (*api.GeneratedCodes, error)
	PurchaseCodeStats(ctx context.Context) (*api.CodeStats, error)
	PlatformSettings(ctx context.Context) (api.PlatformSettings, error)
	UpdatePlatformSetting(ctx context.Context, key string, value any) (any, error)
	ResetPlatformSettings(ctx context.Context) (api.PlatformSettings, error)
}

// realtimeService is the slice of the socket client the console uses.
type realtimeService interface {
	Connect(ctx context.Context) error
	Connected() bool
	JoinWheelRoom()
	JoinAdminRoom()
	OnCountdownUpdate(fn func(realtime.CountdownUpdate)) string
	OnCountdownExpired(fn func()) string
	OnGameSettingsUpdated(fn func(raw json.RawMessage)) string
	OnWinnerDeclared(fn func(realtime.WinnerDeclared)) string
	OnPasswordChangedLogout(fn func()) string
	Close() error
}

// App holds the console's wired services and per-session display state.
type App struct {
	config   *config.Config
	session  sessionService
	game     gameService
	admin    adminService
	rt       realtimeService
	ticker   *countdown.Reconciler
	settings *feed.Feed[api.GameSettings]
	log      logging.Logger

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	mu sync.Mutex
	// last admin user listing, for optimistic entry updates
	users []api.Participant
}

// NewApp wires the full console: local store, transport client, session
// manager, socket client, countdown ticker and settings feed.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to open local store", "path", cfg.DatabasePath, "err", err.Error())
		return nil, err
	}

	store := session.NewCredentialStore(db)

	// The API client needs the forced-logout hook before the manager
	// exists; bind it late through the pointer.
	var mgr *session.Manager
	apiClient := api.New(cfg.APIBaseURL, log,
		api.WithTokenSource(store.TokenSource()),
		api.WithForcedLogout(func(ctx context.Context, reason string) {
			if mgr != nil {
				mgr.HandleForcedLogout(ctx, reason)
			}
		}),
	)
	mgr = session.NewManager(apiClient, store, log)

	clock := clockwork.NewRealClock()
	rt := realtime.New(cfg.APIBaseURL, log)
	ticker := countdown.NewReconciler(clock, log)
	settings := feed.New(clock, log,
		func(ctx context.Context) (api.GameSettings, error) {
			gs, err := apiClient.GameSettings(ctx)
			if err != nil {
				return api.GameSettings{}, err
			}
			return *gs, nil
		},
		cfg.PollInterval, cfg.PushStaleAfter)

	a := &App{
		config:   cfg,
		session:  mgr,
		game:     apiClient,
		admin:    apiClient,
		rt:       rt,
		ticker:   ticker,
		settings: settings,
		log:      log,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	a.wireEvents(ctx)
	return a, nil
}

// wireEvents routes socket events into the ticker, the settings feed and
// the session.
func (a *App) wireEvents(ctx context.Context) {
	a.rt.OnCountdownUpdate(func(u realtime.CountdownUpdate) {
		a.ticker.ApplyPush(u.TimeRemaining)
	})
	a.rt.OnCountdownExpired(func() {
		a.ticker.Expire()
	})
	a.rt.OnGameSettingsUpdated(func(json.RawMessage) {
		// The event signals a change; fetch the authoritative settings.
		if err := a.settings.Refresh(ctx); err != nil {
			a.log.Warn(ctx, "settings refresh after push failed", "err", err.Error())
		}
	})
	a.rt.OnWinnerDeclared(func(w realtime.WinnerDeclared) {
		a.printf("\n*** Winner declared: %s (@%s) - %s ***\n", w.UserName, w.InstagramHandle, w.Prize)
	})
	a.rt.OnPasswordChangedLogout(func() {
		if mgr, ok := a.session.(*session.Manager); ok {
			mgr.HandleForcedLogout(ctx, "password changed")
		}
	})
	a.settings.Subscribe(func(gs api.GameSettings) {
		a.ticker.ApplySettings(gs)
	})
	a.session.OnForcedLogout(func(reason string) {
		a.println()
		a.println("You have been signed out by the server:", reason)
		a.println("Please sign in again.")
	})
}

// Run restores the session, starts the background loops and enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.db.Close() }()
	defer func() { _ = a.rt.Close() }()

	if err := a.session.Startup(ctx); err != nil {
		return err
	}

	if err := a.rt.Connect(ctx); err != nil {
		a.log.Warn(ctx, "realtime unavailable, falling back to polling", "err", err.Error())
	} else {
		a.rt.JoinWheelRoom()
		if a.session.IsAdmin() {
			a.rt.JoinAdminRoom()
		}
	}

	if err := a.settings.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "initial settings fetch failed", "err", err.Error())
	}

	go a.ticker.Run(ctx)
	go a.settings.Run(ctx)

	a.Root(ctx)
	return nil
}
