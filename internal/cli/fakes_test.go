package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/countdown"
	"github.com/rvalverde/wheelhouse/internal/feed"
	"github.com/rvalverde/wheelhouse/internal/logging"
	"github.com/rvalverde/wheelhouse/internal/realtime"
	"github.com/rvalverde/wheelhouse/internal/session"
)

// stubInputs swaps the interactive prompts for canned values. Each call to
// getSimpleText pops the next text; getPassword pops the next password.
func stubInputs(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		next := texts[0]
		texts = texts[1:]
		return next, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		next := passwords[0]
		passwords = passwords[1:]
		return append([]byte(nil), next...), nil
	}
}

type fakeSession struct {
	state       session.State
	user        *api.User
	tokenExpiry time.Time

	loginEmail, loginPass string
	loginResult           *api.User
	loginErr              error

	registered  *api.RegisterData
	guestCalled bool
	logoutErr   error
}

func (f *fakeSession) Startup(context.Context) error { return nil }
func (f *fakeSession) Login(_ context.Context, email, password string) (*api.User, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.state = session.StateAuthenticated
	f.user = f.loginResult
	return f.loginResult, nil
}
func (f *fakeSession) Register(_ context.Context, data api.RegisterData) (*api.User, error) {
	f.registered = &data
	f.state = session.StateAuthenticated
	f.user = &api.User{ID: "new", Name: data.Name}
	return f.user, nil
}
func (f *fakeSession) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.state = session.StateUninitialized
	f.user = nil
	return nil
}
func (f *fakeSession) EnterGuestMode(context.Context) error {
	f.guestCalled = true
	f.state = session.StateGuest
	return nil
}
func (f *fakeSession) RefreshUser(context.Context) (*api.User, error) { return f.user, nil }
func (f *fakeSession) TokenExpiry(context.Context) (time.Time, error) {
	if f.tokenExpiry.IsZero() {
		return time.Time{}, errors.New("no access token stored")
	}
	return f.tokenExpiry, nil
}
func (f *fakeSession) OnForcedLogout(func(reason string)) {}
func (f *fakeSession) State() session.State               { return f.state }
func (f *fakeSession) User() *api.User                    { return f.user }
func (f *fakeSession) IsAuthenticated() bool              { return f.state == session.StateAuthenticated }
func (f *fakeSession) IsAdmin() bool                      { return f.user.IsAdmin() }

type fakeGame struct {
	wheelStats  *api.WheelStats
	activity    *api.WheelActivity
	publicStats *api.PublicStats
	winner      *api.Winner
	winnerCheck *api.WinnerCheck
	gameSets    *api.GameSettings
	dashboard   *api.DashboardData
	leaderboard *api.Leaderboard
	recent      *api.RecentWinners
	items       []api.StoreItem
	purchase    *api.PurchaseResult
	history     *api.PurchaseHistory
	redemption  *api.Redemption
	err         error

	congratsAcked  bool
	boughtItems    []api.PurchaseItem
	redeemedCode   string
	forgotEmail    string
	checkedToken   string
	changedCurrent string
	changedNew     string
}

func (f *fakeGame) WheelEntries(context.Context) (*api.WheelStats, error) {
	return f.wheelStats, f.err
}
func (f *fakeGame) PublicWheelEntries(context.Context) (*api.WheelStats, error) {
	return f.wheelStats, f.err
}
func (f *fakeGame) LatestWinner(context.Context) (*api.Winner, error) { return f.winner, f.err }
func (f *fakeGame) CheckWinner(context.Context) (*api.WinnerCheck, error) {
	if f.winnerCheck == nil {
		return &api.WinnerCheck{}, f.err
	}
	return f.winnerCheck, f.err
}
func (f *fakeGame) MarkCongratsShown(context.Context) error {
	f.congratsAcked = true
	return nil
}
func (f *fakeGame) GameSettings(context.Context) (*api.GameSettings, error) {
	if f.gameSets == nil {
		return &api.GameSettings{}, f.err
	}
	return f.gameSets, f.err
}
func (f *fakeGame) WheelActivity(context.Context) (*api.WheelActivity, error) {
	return f.activity, f.err
}
func (f *fakeGame) PublicStats(context.Context) (*api.PublicStats, error) {
	return f.publicStats, f.err
}
func (f *fakeGame) Dashboard(context.Context) (*api.DashboardData, error) {
	return f.dashboard, f.err
}
func (f *fakeGame) Leaderboard(context.Context, int) (*api.Leaderboard, error) {
	return f.leaderboard, f.err
}
func (f *fakeGame) RecentWinners(context.Context, int) (*api.RecentWinners, error) {
	return f.recent, f.err
}
func (f *fakeGame) StoreItems(context.Context) ([]api.StoreItem, error) { return f.items, f.err }
func (f *fakeGame) Purchase(_ context.Context, items []api.PurchaseItem, _ string) (*api.PurchaseResult, error) {
	f.boughtItems = items
	return f.purchase, f.err
}
func (f *fakeGame) PurchaseHistory(context.Context, int, int) (*api.PurchaseHistory, error) {
	return f.history, f.err
}
func (f *fakeGame) VerifyPurchaseCode(_ context.Context, code string) (*api.Redemption, error) {
	f.redeemedCode = code
	return f.redemption, f.err
}
func (f *fakeGame) ForgotPassword(_ context.Context, email string) error {
	f.forgotEmail = email
	return f.err
}
func (f *fakeGame) CheckToken(_ context.Context, token string) error {
	f.checkedToken = token
	return f.err
}
func (f *fakeGame) ResetPassword(context.Context, string, string, string) error { return f.err }
func (f *fakeGame) ChangePassword(_ context.Context, current, next string) error {
	f.changedCurrent, f.changedNew = current, next
	return f.err
}

type fakeAdmin struct {
	dashboard *api.AdminDashboard
	userPage  *api.UserPage
	winner    *api.Winner
	spin      *api.SpinResult
	settings  *api.GameSettings
	codePage  *api.CodePage
	generated *api.GeneratedCodes
	codeStats *api.CodeStats
	platform  api.PlatformSettings
	err       error

	blockedID      string
	blockedState   bool
	entriesID      string
	entriesTotal   int
	entriesResult  *api.Participant
	declaredID     string
	declaredPrize  string
	spinCalled     bool
	updatedSets    *api.GameSettingsUpdate
	resetCalled    bool
	pwReqCalled    bool
	pwVerifyToken  string
	platformSetKey string
	platformSetVal any
}

func (f *fakeAdmin) AdminDashboard(context.Context) (*api.AdminDashboard, error) {
	return f.dashboard, f.err
}
func (f *fakeAdmin) Users(context.Context, int, int, string, string) (*api.UserPage, error) {
	return f.userPage, f.err
}
func (f *fakeAdmin) BlockUser(_ context.Context, userID string, blocked bool) (*api.Participant, error) {
	f.blockedID, f.blockedState = userID, blocked
	if f.err != nil {
		return nil, f.err
	}
	return &api.Participant{ID: userID, Name: "User", Blocked: blocked}, nil
}
func (f *fakeAdmin) UpdateUserEntries(_ context.Context, userID string, total int) (*api.Participant, error) {
	f.entriesID, f.entriesTotal = userID, total
	if f.err != nil {
		return nil, f.err
	}
	if f.entriesResult != nil {
		return f.entriesResult, nil
	}
	return &api.Participant{ID: userID, Name: "User", TotalEntries: total}, nil
}
func (f *fakeAdmin) DeclareWinner(_ context.Context, userID, prize, _ string) (*api.Winner, error) {
	f.declaredID, f.declaredPrize = userID, prize
	return f.winner, f.err
}
func (f *fakeAdmin) Spin(context.Context) (*api.SpinResult, error) {
	f.spinCalled = true
	return f.spin, f.err
}
func (f *fakeAdmin) AdminGameSettings(context.Context) (*api.GameSettings, error) {
	if f.settings == nil {
		return &api.GameSettings{}, f.err
	}
	return f.settings, f.err
}
func (f *fakeAdmin) UpdateGameSettings(_ context.Context, update api.GameSettingsUpdate) (*api.GameSettings, error) {
	f.updatedSets = &update
	if f.err != nil {
		return nil, f.err
	}
	gs := update.GameSettings
	return &gs, nil
}
func (f *fakeAdmin) ResetGame(context.Context) error {
	f.resetCalled = true
	return f.err
}
func (f *fakeAdmin) RequestPasswordChange(context.Context) error {
	f.pwReqCalled = true
	return f.err
}
func (f *fakeAdmin) VerifyPasswordChange(_ context.Context, token, _ string) error {
	f.pwVerifyToken = token
	return f.err
}
func (f *fakeAdmin) PurchaseCodes(context.Context, int, int, string) (*api.CodePage, error) {
	return f.codePage, f.err
}
func (f *fakeAdmin) GeneratePurchaseCodes(context.Context, int, int) (*api.GeneratedCodes, error) {
	return f.generated, f.err
}
func (f *fakeAdmin) PurchaseCodeStats(context.Context) (*api.CodeStats, error) {
	return f.codeStats, f.err
}
func (f *fakeAdmin) PlatformSettings(context.Context) (api.PlatformSettings, error) {
	return f.platform, f.err
}
func (f *fakeAdmin) UpdatePlatformSetting(_ context.Context, key string, value any) (any, error) {
	f.platformSetKey, f.platformSetVal = key, value
	return value, f.err
}
func (f *fakeAdmin) ResetPlatformSettings(context.Context) (api.PlatformSettings, error) {
	return f.platform, f.err
}

type fakeRealtime struct {
	connected   bool
	joinedWheel bool
	joinedAdmin bool
}

func (f *fakeRealtime) Connect(context.Context) error { f.connected = true; return nil }
func (f *fakeRealtime) Connected() bool               { return f.connected }
func (f *fakeRealtime) JoinWheelRoom()                { f.joinedWheel = true }
func (f *fakeRealtime) JoinAdminRoom()                { f.joinedAdmin = true }

func (f *fakeRealtime) OnCountdownUpdate(func(realtime.CountdownUpdate)) string { return "" }
func (f *fakeRealtime) OnCountdownExpired(func()) string                        { return "" }
func (f *fakeRealtime) OnGameSettingsUpdated(func(json.RawMessage)) string      { return "" }
func (f *fakeRealtime) OnWinnerDeclared(func(realtime.WinnerDeclared)) string   { return "" }
func (f *fakeRealtime) OnPasswordChangedLogout(func()) string                   { return "" }
func (f *fakeRealtime) Close() error                                            { return nil }

// testApp builds an App over fakes with captured output.
type testApp struct {
	app     *App
	out     *bytes.Buffer
	session *fakeSession
	game    *fakeGame
	admin   *fakeAdmin
	rt      *fakeRealtime
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	out := &bytes.Buffer{}
	fs := &fakeSession{}
	fg := &fakeGame{}
	fa := &fakeAdmin{}
	fr := &fakeRealtime{}
	clock := clockwork.NewFakeClock()

	a := &App{
		session: fs,
		game:    fg,
		admin:   fa,
		rt:      fr,
		ticker:  countdown.NewReconciler(clock, logging.Nop()),
		settings: feed.New(clock, logging.Nop(), func(ctx context.Context) (api.GameSettings, error) {
			gs, err := fg.GameSettings(ctx)
			if err != nil {
				return api.GameSettings{}, err
			}
			return *gs, nil
		}, 30*time.Second, time.Minute),
		log:    logging.Nop(),
		reader: bufio.NewReader(strings.NewReader("")),
		out:    out,
	}
	a.wireEvents(context.Background())
	return &testApp{app: a, out: out, session: fs, game: fg, admin: fa, rt: fr}
}

func (ta *testApp) signIn(user *api.User) {
	ta.session.state = session.StateAuthenticated
	ta.session.user = user
}
