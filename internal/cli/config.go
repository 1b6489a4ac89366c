package cli

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/layout"
	"github.com/matzehuels/prism/pkg/pipeline"
)

const configFile = "config.toml"

// Cache backends.
const (
	backendFile  = "file"
	backendNone  = "none"
	backendRedis = "redis"
	backendMongo = "mongo"
)

// Config holds user defaults read from config.toml. Command-line flags take
// precedence over every field.
//
//	chart   = "bar"
//	formats = ["svg", "json"]
//	grid    = true
//
//	[cache]
//	backend = "redis"
//	ttl     = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
type Config struct {
	Chart   string   `toml:"chart"`
	Formats []string `toml:"formats"`
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Seed    uint64   `toml:"seed"`
	Grid    bool     `toml:"grid"`
	Nearest string   `toml:"nearest"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string   `toml:"backend"` // file (default), none, redis, mongo
	TTL     duration `toml:"ttl"`
	Scope   string   `toml:"scope"` // key prefix for shared backends

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
		Prefix   string `toml:"prefix"`
	} `toml:"redis"`

	Mongo struct {
		URI        string `toml:"uri"`
		Database   string `toml:"database"`
		Collection string `toml:"collection"`
	} `toml:"mongo"`
}

// duration decodes TOML strings such as "36h" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// defaultConfigPath returns $XDG_CONFIG_HOME/prism/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func displayConfigPath() string {
	return filepath.Join("~", ".config", appName, configFile)
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Config{}, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if c.Chart != "" {
		if _, err := pipeline.ValidateChart(c.Chart); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.Nearest != "" {
		if _, err := layout.ParseNearest(c.Nearest); err != nil {
			return err
		}
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be positive")
	}
	switch c.Cache.Backend {
	case "", backendFile, backendNone, backendRedis, backendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, none, redis, mongo)", c.Cache.Backend)
	}
	if uri := c.Cache.Mongo.URI; uri != "" {
		if err := errors.ValidateURL(uri, "mongodb", "mongodb+srv"); err != nil {
			return err
		}
	}
	return nil
}
