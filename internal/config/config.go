// Package config handles loading kanban.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/kanban/internal/paths"
	log "github.com/sirupsen/logrus"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "kanban.toml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// ConfigDirEnv overrides the directory holding the global config file.
const ConfigDirEnv = "KANBAN_CONFIG_DIR"

// DefaultKey is the slot key boards are stored under.
const DefaultKey = "boards"

// Config represents the kanban.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

// Storage selects and configures the durable slot.
type Storage struct {
	// Backend is one of file, redis, or sqlite. Defaults to file.
	Backend string `toml:"backend"`

	// Path is the file or database path for the file and sqlite backends.
	// A leading "~/" is expanded.
	Path string `toml:"path"`

	// Key names the slot. Defaults to "boards".
	Key string `toml:"key"`

	// RedisURL is a redis:// URL, or a host:port address.
	RedisURL string `toml:"redis-url"`

	// WriteTimeout bounds each save, e.g. "5s".
	WriteTimeout string `toml:"write-timeout"`
}

// Log configures diagnostics.
type Log struct {
	// Level is a logrus level name. Defaults to warn.
	Level string `toml:"level"`
}

// Load loads configuration from projectDir and the global config file,
// then fills in defaults.
func Load(projectDir string) (*Config, error) {
	configDir, err := paths.ResolveWithDefault(os.Getenv(ConfigDirEnv), paths.DefaultConfigDir)
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)
	return merged.withDefaults()
}

// LoadFile loads a single config file, ignoring the global and project
// files. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg, _, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return cfg.withDefaults()
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.Storage.Key = mergeString(projectMeta.IsDefined("storage", "key"), projectCfg.Storage.Key, globalCfg.Storage.Key)
	merged.Storage.RedisURL = mergeString(projectMeta.IsDefined("storage", "redis-url"), projectCfg.Storage.RedisURL, globalCfg.Storage.RedisURL)
	merged.Storage.WriteTimeout = mergeString(projectMeta.IsDefined("storage", "write-timeout"), projectCfg.Storage.WriteTimeout, globalCfg.Storage.WriteTimeout)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (cfg *Config) withDefaults() (*Config, error) {
	out := *cfg
	out.Storage.Backend = strings.ToLower(strings.TrimSpace(out.Storage.Backend))
	if out.Storage.Backend == "" {
		out.Storage.Backend = BackendFile
	}
	if out.Storage.Key == "" {
		out.Storage.Key = DefaultKey
	}
	if out.Log.Level == "" {
		out.Log.Level = log.WarnLevel.String()
	}

	switch out.Storage.Backend {
	case BackendFile, BackendSQLite:
		path, err := out.storagePath()
		if err != nil {
			return nil, err
		}
		out.Storage.Path = path
	case BackendRedis:
		if out.Storage.RedisURL == "" {
			return nil, fmt.Errorf("storage backend redis requires redis-url")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q: must be file, redis, or sqlite", out.Storage.Backend)
	}

	if _, err := out.Storage.Timeout(); err != nil {
		return nil, err
	}
	if _, err := out.Log.ParseLevel(); err != nil {
		return nil, err
	}

	return &out, nil
}

func (cfg *Config) storagePath() (string, error) {
	if cfg.Storage.Path != "" {
		return paths.ExpandHome(cfg.Storage.Path)
	}
	stateDir, err := paths.DefaultStateDir()
	if err != nil {
		return "", err
	}
	name := cfg.Storage.Key + ".json"
	if cfg.Storage.Backend == BackendSQLite {
		name = "kanban.db"
	}
	return filepath.Join(stateDir, name), nil
}

// Timeout parses WriteTimeout. It returns zero when unset.
func (s Storage) Timeout() (time.Duration, error) {
	if s.WriteTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.WriteTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid write-timeout %q: must be a positive duration", s.WriteTimeout)
	}
	return d, nil
}

// ParseLevel parses the configured log level.
func (l Log) ParseLevel() (log.Level, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}
