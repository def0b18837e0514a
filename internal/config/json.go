package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rvalverde/wheelhouse/internal/flagx"
	"github.com/rvalverde/wheelhouse/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so JSON can specify them either as strings like "30s" or as
// integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_url"`
	DatabasePath   string         `json:"database_path"`
	PollInterval   timex.Duration `json:"poll_interval"`
	PushStaleAfter timex.Duration `json:"push_stale_after"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. Absent file path means no JSON stage. Only fields
// actually present in the file override the config; zero values are skipped
// so the JSON file may be partial.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.PushStaleAfter.Duration != 0 {
		cfg.PushStaleAfter = time.Duration(jc.PushStaleAfter.Duration)
	}
}
