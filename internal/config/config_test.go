package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		viper.Reset()
		cfg = nil

		tmpDir := t.TempDir()
		oldWd, _ := os.Getwd()
		os.Chdir(tmpDir)
		defer os.Chdir(oldWd)

		if err := Init(); err != nil {
			t.Errorf("Init() failed: %v", err)
		}

		config := Get()
		if config == nil {
			t.Fatal("Get() returned nil after Init()")
		}
		if config.DisplayName != "wayland-0" {
			t.Errorf("expected default display name wayland-0, got %q", config.DisplayName)
		}
		if config.LogLevel != "info" {
			t.Errorf("expected default log level info, got %q", config.LogLevel)
		}
	})

	t.Run("handles invalid TOML gracefully", func(t *testing.T) {
		tmpDir := t.TempDir()
		invalidTOML := `[server
port = 52525`
		if err := os.WriteFile(filepath.Join(tmpDir, "jay.toml"), []byte(invalidTOML), 0644); err != nil {
			t.Fatal(err)
		}

		oldWd, _ := os.Getwd()
		os.Chdir(tmpDir)
		defer os.Chdir(oldWd)

		viper.Reset()
		cfg = nil

		if err := Init(); err == nil {
			t.Error("expected an error reading invalid TOML")
		}
	})
}

func TestGetConfigPath(t *testing.T) {
	viper.Reset()

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", "/home/testuser")
	defer os.Setenv("HOME", originalHome)

	originalConfigDir := os.Getenv("JAY_CONFIG_DIR")
	os.Unsetenv("JAY_CONFIG_DIR")
	defer os.Setenv("JAY_CONFIG_DIR", originalConfigDir)

	path := GetConfigPath()
	expected := filepath.Join("/home/testuser", ".config", "jay", "jay.toml")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

func TestGetConfigPathHonorsConfigDirOverride(t *testing.T) {
	viper.Reset()

	originalConfigDir := os.Getenv("JAY_CONFIG_DIR")
	os.Setenv("JAY_CONFIG_DIR", "/etc/jay")
	defer os.Setenv("JAY_CONFIG_DIR", originalConfigDir)

	path := GetConfigPath()
	expected := filepath.Join("/etc/jay", "jay.toml")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

func TestInitReadsFromConfigDirOverride(t *testing.T) {
	viper.Reset()
	cfg = nil

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "jay.toml"), []byte(`log_level = "debug"`), 0644); err != nil {
		t.Fatal(err)
	}

	originalConfigDir := os.Getenv("JAY_CONFIG_DIR")
	os.Setenv("JAY_CONFIG_DIR", tmpDir)
	defer os.Setenv("JAY_CONFIG_DIR", originalConfigDir)

	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if got := Get().LogLevel; got != "debug" {
		t.Errorf("expected log_level from JAY_CONFIG_DIR override, got %q", got)
	}
}

func TestRuntimeDirOverride(t *testing.T) {
	cfg = &Config{RuntimeDir: "/custom/run"}
	defer func() { cfg = nil }()

	if got := RuntimeDir(); got != "/custom/run" {
		t.Errorf("expected override to take precedence, got %q", got)
	}

	cfg = &Config{RuntimeDir: ""}
	os.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	defer os.Unsetenv("XDG_RUNTIME_DIR")

	if got := RuntimeDir(); got != "/run/user/1000" {
		t.Errorf("expected fallback to env var, got %q", got)
	}
}
