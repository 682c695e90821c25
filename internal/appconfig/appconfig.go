// Package appconfig reads the server's configuration from the environment
// into a typed struct, so the same binary serves development, CI and
// production without recompiling.
package appconfig

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration.
//
// BACKEND_URL selects the deployment variant: set, the engine delegates to
// the remote reports/auth authority and falls back locally on failure;
// empty, everything runs on the local path (offline mode).
type Config struct {
	Addr string `env:"ADDR, default=:8080"`

	BackendURL string `env:"BACKEND_URL"`

	// DATABASE_URL uses modernc.org/sqlite URI parameters:
	//   _pragma=foreign_keys(1)   — enforce FK constraints on every connection
	//   _pragma=journal_mode(WAL) — readers don't block writers
	//   _pragma=busy_timeout(5000) — wait up to 5 s instead of SQLITE_BUSY
	DatabaseURL string `env:"DATABASE_URL, default=civicsense.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"`

	// JWTSecret signs tokens for sessions created by the offline sign-in
	// path. Irrelevant when BACKEND_URL is set.
	JWTSecret string `env:"JWT_SECRET, default=changeme-use-a-real-secret-in-production"`

	RetentionDays int `env:"RETENTION_DAYS, default=7"`

	LoggerDebugOn bool `env:"LOGGER_DEBUG_ON"`
}

// Load processes the environment into a Config.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}
