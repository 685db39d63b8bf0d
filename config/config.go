// Package config loads the service configuration from TOML and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/dataset"
	"github.com/spektr-org/pokedata/observability"
)

// Environment overrides, applied after the file.
const (
	EnvData      = "POKEDATA_DATA"
	EnvAddr      = "POKEDATA_ADDR"
	EnvLogLevel  = "POKEDATA_LOG_LEVEL"
	EnvLogFormat = "POKEDATA_LOG_FORMAT"
)

// Config is the resolved service configuration.
type Config struct {
	DataPath string
	Server   Server
	Charts   Charts
	Log      Log
	Limits   dashboard.Limits
}

// Server holds the HTTP listener settings.
type Server struct {
	Addr            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Charts is the rendered image size in pixels.
type Charts struct {
	Width  int
	Height int
}

// Log selects the log level and output format.
type Log struct {
	Level  string
	Format string
}

// Default reproduces the stock behavior: the CSV next to the binary,
// port 8080, info logs to the console.
func Default() Config {
	return Config{
		DataPath: dataset.DefaultPath,
		Server: Server{
			Addr:            ":8080",
			CORSOrigins:     []string{},
			ShutdownTimeout: 5 * time.Second,
		},
		Charts: Charts{Width: 800, Height: 480},
		Log:    Log{Level: "info", Format: observability.FormatConsole},
		Limits: dashboard.DefaultLimits(),
	}
}

type fileConfig struct {
	Data struct {
		Path string `toml:"path"`
	} `toml:"data"`
	Server struct {
		Addr            string   `toml:"addr"`
		CORSOrigins     []string `toml:"cors_origins"`
		ShutdownTimeout string   `toml:"shutdown_timeout"`
	} `toml:"server"`
	Charts struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"charts"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Dashboard struct {
		TopBaseStats    int `toml:"top_base_stats"`
		TopImmune       int `toml:"top_immune"`
		TopFastest      int `toml:"top_fastest"`
		TopNormalAttack int `toml:"top_normal_attack"`
	} `toml:"dashboard"`
}

// Load overlays the keys defined in the TOML file at path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("data", "path") {
		cfg.DataPath = strings.TrimSpace(raw.Data.Path)
	}

	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CORSOrigins = normalizeOrigins(raw.Server.CORSOrigins)
	}
	if meta.IsDefined("server", "shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Server.ShutdownTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse shutdown_timeout: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if meta.IsDefined("charts", "width") {
		cfg.Charts.Width = raw.Charts.Width
	}
	if meta.IsDefined("charts", "height") {
		cfg.Charts.Height = raw.Charts.Height
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.TrimSpace(raw.Log.Format)
	}

	if meta.IsDefined("dashboard", "top_base_stats") {
		cfg.Limits.TopBaseStats = raw.Dashboard.TopBaseStats
	}
	if meta.IsDefined("dashboard", "top_immune") {
		cfg.Limits.TopImmune = raw.Dashboard.TopImmune
	}
	if meta.IsDefined("dashboard", "top_fastest") {
		cfg.Limits.TopFastest = raw.Dashboard.TopFastest
	}
	if meta.IsDefined("dashboard", "top_normal_attack") {
		cfg.Limits.TopNormalAttack = raw.Dashboard.TopNormalAttack
	}

	return cfg, nil
}

// ApplyEnv overlays the POKEDATA_* variables that are set and non-empty.
func (c *Config) ApplyEnv() {
	c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvData); ok && strings.TrimSpace(v) != "" {
		c.DataPath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogFormat); ok && strings.TrimSpace(v) != "" {
		c.Log.Format = strings.TrimSpace(v)
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.DataPath == "" {
		errs = append(errs, errors.New("data.path is required"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		errs = append(errs, fmt.Errorf("charts size must be positive, got %dx%d", c.Charts.Width, c.Charts.Height))
	}
	if _, err := observability.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case observability.FormatConsole, observability.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q",
			observability.FormatConsole, observability.FormatJSON, c.Log.Format))
	}
	limits := []struct {
		name string
		n    int
	}{
		{"dashboard.top_base_stats", c.Limits.TopBaseStats},
		{"dashboard.top_immune", c.Limits.TopImmune},
		{"dashboard.top_fastest", c.Limits.TopFastest},
		{"dashboard.top_normal_attack", c.Limits.TopNormalAttack},
	}
	for _, l := range limits {
		if l.n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", l.name, l.n))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
