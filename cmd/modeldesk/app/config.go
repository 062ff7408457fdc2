package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/modeldesk/pkg/constants"
	"github.com/agentstation/modeldesk/pkg/errors"
)

// EnvPrefix is the prefix for environment variables read by viper,
// e.g. MODELDESK_SESSION_PATH.
const EnvPrefix = "MODELDESK"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Workspace configuration
	SessionPath     string
	StorePath       string
	HistoryCapacity int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or ~/.modeldesk.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "failed to read config file", err)
			}
		}
	}

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		SessionPath:     expandHome(v.GetString("session_path")),
		StorePath:       expandHome(v.GetString("store_path")),
		HistoryCapacity: v.GetInt("history_capacity"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}
	if config.LogLevel == "" {
		config.LogLevel = os.Getenv("LOG_LEVEL")
	}

	if config.HistoryCapacity < 1 {
		return nil, errors.NewConfigError("config", "history_capacity must be at least 1", nil)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	dir := filepath.Join("~", constants.DefaultHomeDir)
	v.SetDefault("session_path", filepath.Join(dir, constants.DefaultSessionFile))
	v.SetDefault("store_path", filepath.Join(dir, constants.DefaultStoreFile))
	v.SetDefault("history_capacity", constants.HistoryCapacity)
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// merge copies the file-backed settings of other into c, leaving the flag
// values alone.
func (c *Config) merge(other *Config) {
	c.ConfigFile = other.ConfigFile
	c.SessionPath = other.SessionPath
	c.StorePath = other.StorePath
	c.HistoryCapacity = other.HistoryCapacity
	c.LogFormat = other.LogFormat
	c.LogOutput = other.LogOutput
	if c.LogLevel == "" {
		c.LogLevel = other.LogLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// godotenv never overwrites a set variable, so .env.local wins over .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
