package api

import "encoding/json"

// envelope is the response wrapper every backend endpoint uses.
// A non-success body may carry LogoutRequired, meaning the session is no
// longer valid and all local credentials must be discarded.
type envelope struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Data           json.RawMessage `json:"data,omitempty"`
	Error          string          `json:"error,omitempty"`
	Timestamp      string          `json:"timestamp"`
	LogoutRequired bool            `json:"logoutRequired,omitempty"`
}
