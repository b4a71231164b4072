package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/hirehub/internal/flagx"
	"github.com/dmitrijs2005/hirehub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "5s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL   string         `json:"api_base_url"`
	LoginTimeout timex.Duration `json:"login_timeout"`
	TokenDBPath  string         `json:"token_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file, resolved
// through the -c/-config flags. If no file is given the function returns
// without touching cfg. Read or unmarshal errors panic; intended usage is
// defaults -> parseJson -> parseFlags, where later stages override earlier
// ones.
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
	if jc.LoginTimeout.Duration != 0 {
		cfg.LoginTimeout = time.Duration(jc.LoginTimeout.Duration)
	}
	if jc.TokenDBPath != "" {
		cfg.TokenDBPath = jc.TokenDBPath
	}
}
