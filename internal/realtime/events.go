package realtime

import (
	"encoding/json"
	"time"
)

// Server-pushed event names.
const (
	EventCountdownUpdate       = "countdown-update"
	EventCountdownExpired      = "countdown-expired"
	EventGameSettingsUpdated   = "game-settings-updated"
	EventWinnerDeclared        = "winner-declared"
	EventPasswordChangedLogout = "password-changed-logout"
)

// Client-emitted room-join events.
const (
	emitJoinWheel = "join-wheel"
	emitJoinAdmin = "join-admin"
)

// message is the wire frame in both directions.
type message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// joinPayload identifies this client in a room-join emit.
type joinPayload struct {
	ClientID string `json:"clientId"`
}

// CountdownUpdate is the payload of countdown-update. TimeRemaining is in
// milliseconds; a non-positive value means the countdown is over.
type CountdownUpdate struct {
	TimeRemaining int64 `json:"timeRemaining"`
}

// WinnerDeclared is the payload of winner-declared.
type WinnerDeclared struct {
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	InstagramHandle string    `json:"instagramHandle"`
	Prize           string    `json:"prize"`
	WinDate         time.Time `json:"winDate"`
}
