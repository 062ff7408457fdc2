package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/errors"
)

// isolateHome points HOME at an empty directory so no real config is read.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// TestLoadConfig verifies defaults when no config file exists.
func TestLoadConfig(t *testing.T) {
	home := isolateHome(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	wantSession := filepath.Join(home, constants.DefaultHomeDir, constants.DefaultSessionFile)
	if config.SessionPath != wantSession {
		t.Errorf("SessionPath = %s, want %s", config.SessionPath, wantSession)
	}
	wantStore := filepath.Join(home, constants.DefaultHomeDir, constants.DefaultStoreFile)
	if config.StorePath != wantStore {
		t.Errorf("StorePath = %s, want %s", config.StorePath, wantStore)
	}
	if config.HistoryCapacity != constants.HistoryCapacity {
		t.Errorf("HistoryCapacity = %d, want %d", config.HistoryCapacity, constants.HistoryCapacity)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestLoadConfig_File verifies values from an explicit config file.
func TestLoadConfig_File(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "modeldesk.yaml")
	content := "session_path: " + filepath.Join(dir, "s.json") + "\nhistory_capacity: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
	if config.SessionPath != filepath.Join(dir, "s.json") {
		t.Errorf("SessionPath = %s", config.SessionPath)
	}
	if config.HistoryCapacity != 10 {
		t.Errorf("HistoryCapacity = %d, want 10", config.HistoryCapacity)
	}
}

// TestLoadConfig_HomeFile verifies ~/.modeldesk.yaml is found.
func TestLoadConfig_HomeFile(t *testing.T) {
	home := isolateHome(t)
	if err := os.WriteFile(filepath.Join(home, ".modeldesk.yaml"), []byte("store_path: ~/presets.json\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if want := filepath.Join(home, "presets.json"); config.StorePath != want {
		t.Errorf("StorePath = %s, want %s", config.StorePath, want)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolateHome(t)
	t.Setenv("MODELDESK_SESSION_PATH", "/var/lib/modeldesk/session.json")
	t.Setenv("MODELDESK_HISTORY_CAPACITY", "7")
	t.Setenv("LOG_FORMAT", "json")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.SessionPath != "/var/lib/modeldesk/session.json" {
		t.Errorf("SessionPath = %s", config.SessionPath)
	}
	if config.HistoryCapacity != 7 {
		t.Errorf("HistoryCapacity = %d, want 7", config.HistoryCapacity)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
}

// TestLoadConfig_Errors verifies bad configuration is rejected.
func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		isolateHome(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		var cfgErr *errors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("LoadConfig() error = %v, want ConfigError", err)
		}
	})

	t.Run("zero history capacity", func(t *testing.T) {
		isolateHome(t)
		t.Setenv("MODELDESK_HISTORY_CAPACITY", "0")
		if _, err := LoadConfig(""); err == nil {
			t.Fatal("LoadConfig() succeeded, want error")
		}
	})
}

// TestConfig_UpdateFromFlags verifies flags override loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Errorf("flags not applied: %+v", config)
	}
	if config.Format != "yaml" {
		t.Errorf("empty format flag replaced Format: %s", config.Format)
	}
	if config.LogLevel != "warn" {
		t.Errorf("empty log level flag replaced LogLevel: %s", config.LogLevel)
	}

	config.UpdateFromFlags(false, false, false, "json", "debug")
	if config.Format != "json" || config.LogLevel != "debug" {
		t.Errorf("Format = %s, LogLevel = %s", config.Format, config.LogLevel)
	}
}
