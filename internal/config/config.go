package config

import (
	"path/filepath"
	"time"

	"github.com/rvalverde/wheelhouse/internal/filex"
)

// Config holds runtime settings for the wheelhouse CLI.
//
// Fields:
//   - APIBaseURL: base URL of the giveaway backend; serves both the REST
//     endpoints and the websocket upgrade at /socket.
//   - DatabasePath: location of the local sqlite store (session credential,
//     guest flag).
//   - PollInterval: how often game settings are re-fetched when the socket
//     is quiet.
//   - PushStaleAfter: how long a realtime push keeps the poller suppressed.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	PollInterval   time.Duration
	PushStaleAfter time.Duration
}

// LoadDefaults populates c with sensible defaults. The database lands in the
// per-user config directory.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.PollInterval = 30 * time.Second
	c.PushStaleAfter = time.Minute

	if dir, err := filex.EnsureDataDir("wheelhouse"); err == nil {
		c.DatabasePath = filepath.Join(dir, "wheelhouse.db")
	} else {
		c.DatabasePath = "wheelhouse.db"
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
