package api

import "time"

// Role values as reported by the backend.
const (
	RoleUser       = "user"
	RoleSuperAdmin = "super_admin"
)

// CodeUse records one redemption made by a user.
type CodeUse struct {
	Code           string    `json:"code"`
	UsedDate       time.Time `json:"usedDate"`
	EntriesAwarded int       `json:"entriesAwarded"`
}

// User is the authenticated account snapshot the backend returns from the
// auth endpoints. Guests never have one of these.
type User struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	InstagramHandle      string     `json:"instagramHandle"`
	Country              string     `json:"country"`
	Role                 string     `json:"role"`
	Owner                bool       `json:"owner,omitempty"`
	TotalEntries         int        `json:"totalEntries"`
	TotalShirtsPurchased int        `json:"totalShirtsPurchased"`
	IsWinner             bool       `json:"isWinner"`
	LastWinDate          *time.Time `json:"lastWinDate,omitempty"`
	Avatar               string     `json:"avatar,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	CongratsShown        bool       `json:"congratsShown,omitempty"`
	CodesUsed            []CodeUse  `json:"codesUsed,omitempty"`
	TotalCodesUsed       int        `json:"totalCodesUsed,omitempty"`
	TotalBonusEntries    int        `json:"totalBonusEntries,omitempty"`
}

// IsAdmin reports whether the user may access the admin console.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}

// LoginResult is the payload of sign-in and sign-up.
type LoginResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// RegisterData is the sign-up request body.
type RegisterData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	InstagramHandle string `json:"instagramHandle"`
	Country         string `json:"country"`
	Password        string `json:"password"`
}

// WheelEntry is one slot on the wheel.
type WheelEntry struct {
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	InstagramHandle string `json:"instagramHandle"`
}

// WheelStats lists the current wheel composition.
type WheelStats struct {
	Entries      []WheelEntry `json:"entries"`
	TotalEntries int          `json:"totalEntries"`
	TotalUsers   int          `json:"totalUsers"`
}

// WheelActivity counts spins and winners over the lifetime of the game.
type WheelActivity struct {
	TotalUsers   int `json:"totalUsers"`
	TotalSpins   int `json:"totalSpins"`
	TotalWinners int `json:"totalWinners"`
}

// Winner describes a declared winner.
type Winner struct {
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	InstagramHandle string    `json:"instagramHandle"`
	WinDate         time.Time `json:"winDate"`
	Prize           string    `json:"prize"`
	SpinID          string    `json:"spinId"`
}

// WinnerCheck reports whether the current user has won and whether the
// congratulations banner is still pending.
type WinnerCheck struct {
	IsWinner               bool    `json:"isWinner"`
	ShowWinnerNotification bool    `json:"showWinnerNotification"`
	Winner                 *Winner `json:"winner"`
}

// GameSettings is the read-only client view of the game configuration.
// Either the explicit start/end window or the static day/hour/minute offsets
// drive the countdown, depending on CountdownActive.
type GameSettings struct {
	CurrentPrize         string     `json:"currentPrize"`
	PrizeDescription     string     `json:"prizeDescription,omitempty"`
	IsGameActive         bool       `json:"isGameActive"`
	CountdownActive      bool       `json:"countdownActive"`
	GameStartTime        *time.Time `json:"gameStartTime,omitempty"`
	GameEndTime          *time.Time `json:"gameEndTime,omitempty"`
	SpinCountdownDays    int        `json:"spinCountdownDays"`
	SpinCountdownHours   int        `json:"spinCountdownHours"`
	SpinCountdownMinutes int        `json:"spinCountdownMinutes"`
	ShopifyStoreURL      string     `json:"shopifyStoreUrl,omitempty"`
	ShopifyEnabled       bool       `json:"shopifyEnabled,omitempty"`
}

// GameSettingsUpdate is the admin write shape. StartCountdown asks the
// backend to anchor the configured offsets into an explicit game window.
type GameSettingsUpdate struct {
	GameSettings
	StartCountdown bool `json:"startCountdown,omitempty"`
}

// Statistics is the aggregate block shared by the participant and admin
// dashboard summaries.
type Statistics struct {
	TotalUsers           int `json:"totalUsers"`
	TotalEntries         int `json:"totalEntries"`
	TotalShirtsPurchased int `json:"totalShirtsPurchased"`
}

// DashboardData is the participant dashboard summary.
type DashboardData struct {
	Statistics Statistics `json:"statistics"`
}

// LeaderboardEntry is one row of the entries leaderboard.
type LeaderboardEntry struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	InstagramHandle string `json:"instagramHandle"`
	TotalEntries    int    `json:"totalEntries"`
	Rank            int    `json:"rank"`
}

// Leaderboard is the payload of the leaderboard endpoint.
type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// RecentWinners is the payload of the winners-history endpoint.
type RecentWinners struct {
	Winners []Winner `json:"winners"`
}

// PublicStats is the unauthenticated stats view for guests.
type PublicStats struct {
	TotalUsers   int    `json:"totalUsers"`
	TotalEntries int    `json:"totalEntries"`
	CurrentPrize string `json:"currentPrize,omitempty"`
}

// StoreItem is one purchasable item.
type StoreItem struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	EntriesPerItem int     `json:"entriesPerItem"`
	Image          string  `json:"image,omitempty"`
	Category       string  `json:"category"`
	Stock          int     `json:"stock"`
	Active         bool    `json:"active"`
}

// PurchaseItem selects an item and quantity in a purchase request.
type PurchaseItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// PurchasedLine echoes one line of a completed purchase.
type PurchasedLine struct {
	StoreItemID   string  `json:"storeItemId"`
	ItemName      string  `json:"itemName"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	EntriesEarned int     `json:"entriesEarned"`
}

// PurchaseResult is the payload of a successful purchase.
type PurchaseResult struct {
	PurchaseID         string          `json:"purchaseId"`
	TotalAmount        float64         `json:"totalAmount"`
	TotalEntriesEarned int             `json:"totalEntriesEarned"`
	NewTotalEntries    int             `json:"newTotalEntries"`
	Items              []PurchasedLine `json:"items"`
}

// Pagination is the page descriptor used by list endpoints.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalUsers  int `json:"totalUsers,omitempty"`
	TotalCodes  int `json:"totalCodes,omitempty"`
	TotalItems  int `json:"totalItems,omitempty"`
}

// Purchase is one record of the purchase history.
type Purchase struct {
	ID                 string          `json:"_id"`
	Items              []PurchasedLine `json:"items"`
	TotalAmount        float64         `json:"totalAmount"`
	TotalEntriesEarned int             `json:"totalEntriesEarned"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// PurchaseHistory is the paged purchase list.
type PurchaseHistory struct {
	Purchases  []Purchase `json:"purchases"`
	Pagination Pagination `json:"pagination"`
}

// Participant is the admin view of a user record. List endpoints key it by
// the storage id, not the public one.
type Participant struct {
	ID                   string    `json:"_id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	InstagramHandle      string    `json:"instagramHandle"`
	Country              string    `json:"country"`
	Role                 string    `json:"role"`
	TotalEntries         int       `json:"totalEntries"`
	TotalShirtsPurchased int       `json:"totalShirtsPurchased"`
	IsWinner             bool      `json:"isWinner"`
	Blocked              bool      `json:"blocked"`
	CreatedAt            time.Time `json:"createdAt"`
}

// UserPage is one page of the admin participant list.
type UserPage struct {
	Users      []Participant `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// AdminDashboard is the admin console summary.
type AdminDashboard struct {
	Statistics   Statistics `json:"statistics"`
	LatestWinner *Winner    `json:"latestWinner,omitempty"`
}

// CodeOwner identifies who redeemed a purchase code.
type CodeOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PurchaseCode is one admin-generated redemption code.
type PurchaseCode struct {
	ID             string     `json:"_id"`
	Code           string     `json:"code"`
	EntriesAwarded int        `json:"entriesAwarded"`
	IsUsed         bool       `json:"isUsed"`
	UsedBy         *CodeOwner `json:"usedBy,omitempty"`
	UsedDate       *time.Time `json:"usedDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// CodePage is one page of the admin code list.
type CodePage struct {
	Codes      []PurchaseCode `json:"codes"`
	Pagination Pagination     `json:"pagination"`
}

// CodeStats summarizes redemption-code usage.
type CodeStats struct {
	Total     int     `json:"total"`
	Used      int     `json:"used"`
	Unused    int     `json:"unused"`
	UsageRate float64 `json:"usageRate"`
}

// GeneratedCodes is the payload of the bulk-generation endpoint.
type GeneratedCodes struct {
	Codes []PurchaseCode `json:"codes"`
	Count int            `json:"count"`
}

// Redemption is the payload of a successful code verification.
type Redemption struct {
	Code            string `json:"code"`
	EntriesAwarded  int    `json:"entriesAwarded"`
	NewTotalEntries int    `json:"newTotalEntries"`
}

// SpinResult is the payload of the spin trigger.
type SpinResult struct {
	SpinID string  `json:"spinId"`
	Winner *Winner `json:"winner,omitempty"`
}

// PlatformSettings is the schemaless, server-owned platform configuration.
// Keys and value shapes are defined by the backend; the client edits them
// opaquely.
type PlatformSettings map[string]any
