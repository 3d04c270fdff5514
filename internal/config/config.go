// Package config holds the compositor's process-level defaults — the
// handful of settings that must exist before any client connects, and
// therefore cannot arrive over the Configuration ABI collaborator like
// everything else (shortcuts, per-seat policy) does.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the process-level configuration, seeded from jay.toml and
// environment overrides.
type Config struct {
	// RuntimeDir overrides $XDG_RUNTIME_DIR for the control socket. Empty
	// means use the environment variable. The display socket and its lock
	// file are always placed under $XDG_RUNTIME_DIR.
	RuntimeDir string `mapstructure:"runtime_dir"`

	// DisplayName is read from display_name (default "wayland-0").
	// display.Listen does not consult it; it claims the first free
	// wayland-N name.
	DisplayName string `mapstructure:"display_name"`

	// LogLevel is the initial logger level, overridden at runtime by
	// jay_compositor's set_log_level request or "jayctl set-log-level".
	LogLevel string `mapstructure:"log_level"`

	// ShortcutsPath is read from shortcuts_path. No code in this module
	// loads a shortcut table from it.
	ShortcutsPath string `mapstructure:"shortcuts_path"`
}

var (
	DefaultConfig = Config{
		RuntimeDir:    "",
		DisplayName:   "wayland-0",
		LogLevel:      "info",
		ShortcutsPath: "",
	}

	cfg *Config
)

// Init loads jay.toml from the standard config search path and unmarshals
// it over DefaultConfig.
func Init() error {
	viper.SetConfigName("jay")
	viper.SetConfigType("toml")

	// JAY_CONFIG_DIR takes priority over the default XDG config path.
	if dir := os.Getenv("JAY_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "jay"))
	}
	viper.AddConfigPath(".")

	viper.SetDefault("runtime_dir", DefaultConfig.RuntimeDir)
	viper.SetDefault("display_name", DefaultConfig.DisplayName)
	viper.SetDefault("log_level", DefaultConfig.LogLevel)
	viper.SetDefault("shortcuts_path", DefaultConfig.ShortcutsPath)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration, defaults if Init was never called.
func Get() *Config {
	if cfg == nil {
		c := DefaultConfig
		return &c
	}
	return cfg
}

// Save writes the current configuration back to GetConfigPath.
func Save() error {
	configPath := GetConfigPath()
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file actually in use, or the
// default user path if none has been loaded yet.
func GetConfigPath() string {
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}
	if dir := os.Getenv("JAY_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "jay.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jay.toml"
	}
	return filepath.Join(home, ".config", "jay", "jay.toml")
}

// RuntimeDir resolves the socket directory: the config override if set,
// otherwise $XDG_RUNTIME_DIR.
func RuntimeDir() string {
	if c := Get(); c.RuntimeDir != "" {
		return c.RuntimeDir
	}
	return os.Getenv("XDG_RUNTIME_DIR")
}
