package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// File locations
	ConfigPath string `short:"c" long:"config" env:"CONFIG_PATH" default:"config.yml" description:"Path to the configuration file"`
	DBPath     string `long:"db" env:"DB_PATH" default:"rss_digest.db" description:"Path to the SQLite database file"`
	CachePath  string `long:"cache" env:"CACHE_PATH" default:"feed_cache.json" description:"Path to the HTTP validator cache file"`

	// Run mode
	Once  bool `long:"once" description:"Execute a single pipeline run and exit"`
	Stats bool `long:"stats" description:"Print processing statistics and exit"`

	// Application configuration
	Port      string `long:"port" env:"PORT" description:"HTTP status server port (disabled when empty)"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"RSS Digest/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Cfg{
		ConfigPath: raw.ConfigPath,
		DBPath:     raw.DBPath,
		CachePath:  raw.CachePath,
		Once:       raw.Once,
		Stats:      raw.Stats,
		Port:       raw.Port,
		UserAgent:  raw.UserAgent,
		Debug:      raw.Debug,
		Version:    GetVersion(),
	}, nil
}
