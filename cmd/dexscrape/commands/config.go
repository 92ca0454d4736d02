package commands

import (
	"fmt"
	"time"

	"dexscrape/internal/components/configutil"
	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/scrapers/serebii"
)

const DEFAULT_CONFIG_PATH = "dexscrape.json5"

type Config struct {
	BaseUrl        string           `json:"base_url"`
	Output         string           `json:"output"`
	First          int              `json:"first"`
	Last           int              `json:"last"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	UserAgent      string           `json:"user_agent"`
	OnFailure      string           `json:"on_failure"`
	Database       string           `json:"database"`
	DumpDir        string           `json:"dump_dir"`
	Telemetry      telemetry.Config `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:        serebii.DEFAULT_BASE_URL,
		Output:         "pokemon.json",
		First:          serebii.DEFAULT_FIRST,
		Last:           serebii.DEFAULT_LAST,
		TimeoutSeconds: int(serebii.DEFAULT_TIMEOUT / time.Second),
		UserAgent:      serebii.DEFAULT_USER_AGENT,
		OnFailure:      string(serebii.ON_FAILURE_CONTINUE),
	}
}

// readConfig reads the config file, fields it leaves out keep their defaults.
// A missing config file is not an error.
func readConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigOr(path, defaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
