package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/storage"
)

// StoreConfig holds the location of the two store tiers
type StoreConfig struct {
	GlobalFile string `toml:"global_file" json:"global_file"`
	LocalFile  string `toml:"local_file" json:"local_file"` // relative to the working directory unless absolute
	EnvPrefix  string `toml:"env_prefix" json:"env_prefix"` // "" disables the env overlay
}

// Config holds the imsctx configuration
type Config struct {
	Store       StoreConfig  `toml:"store" json:"store"`
	Keys        ims.KeyNames `toml:"keys" json:"keys"`
	HistoryFile string       `toml:"history_file" json:"history_file"`
}

// Environment variables that override config file settings.
const (
	EnvConfigFile = "IMSCTX_CONFIG"
	EnvGlobalFile = "IMSCTX_GLOBAL_FILE"
	EnvLocalFile  = "IMSCTX_LOCAL_FILE"
)

// Defaults for the store settings.
const (
	DefaultGlobalFile  = "~/.config/imsctx/store.toml"
	DefaultLocalFile   = ".imsctx.toml"
	DefaultEnvPrefix   = "IMSCTX_STORE_"
	DefaultHistoryFile = "~/.config/imsctx/history.json"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		Store: StoreConfig{
			GlobalFile: DefaultGlobalFile,
			LocalFile:  DefaultLocalFile,
			EnvPrefix:  DefaultEnvPrefix,
		},
		Keys:        ims.DefaultKeyNames(),
		HistoryFile: DefaultHistoryFile,
	}
}

// StoreOptions returns the storage options for a process running in workDir.
func (c *Config) StoreOptions(workDir string) storage.Options {
	local := c.Store.LocalFile
	if !filepath.IsAbs(local) {
		local = filepath.Join(workDir, local)
	}
	return storage.Options{
		GlobalFile: c.Store.GlobalFile,
		LocalFile:  local,
		EnvPrefix:  c.Store.EnvPrefix,
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return expandPath(p)
	}
	dir, err := storage.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from ~/.config/imsctx/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return finalize(Default())
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		def, _ := finalize(Default())
		return def, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		// Decoding into the defaults keeps every unset field at its default
		if err := toml.Unmarshal(data, &cfg); err != nil {
			def, _ := finalize(Default())
			return def, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv(EnvGlobalFile); v != "" {
		cfg.Store.GlobalFile = v
	}
	if v := os.Getenv(EnvLocalFile); v != "" {
		cfg.Store.LocalFile = v
	}

	if err := cfg.validate(); err != nil {
		def, _ := finalize(Default())
		return def, err
	}

	return finalize(cfg)
}

// finalize expands ~ in file settings (shell doesn't expand in config files)
func finalize(cfg Config) (Config, error) {
	global, err := expandPath(cfg.Store.GlobalFile)
	if err != nil {
		return cfg, fmt.Errorf("expand store.global_file: %w", err)
	}
	cfg.Store.GlobalFile = global

	local, err := expandPath(cfg.Store.LocalFile)
	if err != nil {
		return cfg, fmt.Errorf("expand store.local_file: %w", err)
	}
	cfg.Store.LocalFile = local

	history, err := expandPath(cfg.HistoryFile)
	if err != nil {
		return cfg, fmt.Errorf("expand history_file: %w", err)
	}
	cfg.HistoryFile = history

	return cfg, nil
}

const defaultConfig = `# imsctx configuration

# History of context switches, used by "imsctx use -"
# history_file = "~/.config/imsctx/history.json"

[store]
# Global store, shared by every directory
# Must be an absolute path or start with ~
global_file = "~/.config/imsctx/store.toml"

# Local store, relative to the working directory unless absolute.
# The current context is always written here.
local_file = ".imsctx.toml"

# Environment variables with this prefix overlay the merged store view:
#   IMSCTX_STORE_IMS_CONFIG_CURRENT=prod  ->  ims.config.current = "prod"
# Use a double underscore for a literal underscore. Set to "" to disable.
env_prefix = "IMSCTX_STORE_"

# Segment names of the store namespace. Only change these to share a store
# with a tool that uses different names.
[keys]
ims = "ims"
config = "config"
contexts = "contexts"
current = "current"
plugins = "plugins"
cli = "cli"
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return "", err
	}

	return path, nil
}

type configKey struct{}
type workDirKey struct{}

// WithConfig returns a new context with the config stored in it.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config from context.
// Returns the defaults if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	def, _ := finalize(Default())
	return &def
}

// WithWorkDir returns a new context with the working directory stored in it.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory from context, or "."
// if none is stored.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok {
		return dir
	}
	return "."
}
